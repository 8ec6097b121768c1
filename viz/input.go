//go:build js
// +build js

package viz

import (
	"github.com/gopherjs/gopherjs/js"
)

// KeyMap maps alternative keys to canonical control codes.
var KeyMap = map[int]int{
	27: 80, // Esc => P
	32: 80, // Space => P
}

// TranslateKeyCode converts alternative key codes to canonical control codes.
func TranslateKeyCode(keyCode int) int {
	if mapped, ok := KeyMap[keyCode]; ok {
		return mapped
	}
	return keyCode
}

// SetupInputHandlers initializes keyboard event handlers.
func (v *Visualizer) SetupInputHandlers() {
	js.Global.Get("document").Call("addEventListener", "keydown",
		func(event *js.Object) {
			rawKeyCode := event.Get("keyCode").Int()
			keyCode := TranslateKeyCode(rawKeyCode)
			v.Keys[keyCode] = true

			// Tuning panel toggle (F9 = 120)
			if rawKeyCode == 120 {
				v.Tuning.Toggle()
				event.Call("preventDefault")
				return
			}

			// Stats overlay toggle (F10 = 121)
			if rawKeyCode == 121 {
				v.Overlay.Toggle()
				event.Call("preventDefault")
				return
			}

			// Pause toggle (P = 80, also mapped from Esc/Space)
			if keyCode == 80 {
				v.TogglePause()
				event.Call("preventDefault")
				return
			}

			// Fullscreen (F = 70)
			if keyCode == 70 {
				v.Canvas.Call("requestFullscreen")
				return
			}

			// Tuning panel controls when visible
			if v.Tuning.Visible {
				switch rawKeyCode {
				case 87: // W - Previous field
					v.Tuning.PrevField()
				case 83: // S - Next field
					v.Tuning.NextField()
				case 65: // A - Decrease value
					v.Tuning.AdjustValue(-1)
				case 68: // D - Increase value
					v.Tuning.AdjustValue(1)
				}
			}
		})

	js.Global.Get("document").Call("addEventListener", "keyup",
		func(event *js.Object) {
			keyCode := TranslateKeyCode(event.Get("keyCode").Int())
			v.Keys[keyCode] = false
		})
}

// SetupFileInput wires the file picker to the audio source. loadURL is
// called with an object URL for the chosen file.
func (v *Visualizer) SetupFileInput(inputID string, loadURL func(url string)) {
	input := js.Global.Get("document").Call("getElementById", inputID)
	if input == nil || input == js.Undefined {
		return
	}

	input.Call("addEventListener", "change", func(event *js.Object) {
		files := input.Get("files")
		if files.Get("length").Int() == 0 {
			return
		}
		url := js.Global.Get("URL").Call("createObjectURL", files.Index(0)).String()
		loadURL(url)
	})
}

// SetupResizeHandler keeps the canvas, camera, and renderer sized to the
// window.
func (v *Visualizer) SetupResizeHandler() {
	resize := func() {
		w := js.Global.Get("innerWidth").Int()
		h := js.Global.Get("innerHeight").Int()
		v.Resize(w, h)
	}
	js.Global.Call("addEventListener", "resize", func() { resize() })
	resize()
}
