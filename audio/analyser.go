//go:build js
// +build js

package audio

import (
	"github.com/gopherjs/gopherjs/js"
)

// AudioConfig holds audio settings.
var AudioConfig = struct {
	MasterVolume float64
	FFTSize      int
}{
	MasterVolume: 1.0,
	FFTSize:      256, // 128 frequency bins
}

// Analyser wraps the Web Audio API around a media element: the element's
// output is routed through an AnalyserNode so the visualizer can sample
// frequency-bin energies once per frame.
type Analyser struct {
	ctx        *js.Object
	masterGain *js.Object
	analyser   *js.Object
	element    *js.Object // <audio> element
	source     *js.Object // MediaElementAudioSourceNode

	data *js.Object // Uint8Array reused across frames
	bins []float64

	ready bool
}

// NewAnalyser creates an analyser bound to the given <audio> element. The
// AudioContext is created lazily on the first user gesture (Init).
func NewAnalyser(element *js.Object) *Analyser {
	return &Analyser{element: element}
}

// Init initializes the Web Audio context and node graph. Safe to call more
// than once. Returns false if the platform has no AudioContext.
func (a *Analyser) Init() bool {
	if a.ready {
		return true
	}

	audioCtx := js.Global.Get("AudioContext")
	if audioCtx == nil || audioCtx == js.Undefined {
		audioCtx = js.Global.Get("webkitAudioContext")
	}
	if audioCtx == nil || audioCtx == js.Undefined {
		return false
	}

	a.ctx = audioCtx.New()

	a.masterGain = a.ctx.Call("createGain")
	a.masterGain.Call("connect", a.ctx.Get("destination"))
	a.masterGain.Get("gain").Set("value", AudioConfig.MasterVolume)

	a.analyser = a.ctx.Call("createAnalyser")
	a.analyser.Set("fftSize", AudioConfig.FFTSize)

	a.source = a.ctx.Call("createMediaElementSource", a.element)
	a.source.Call("connect", a.analyser)
	a.analyser.Call("connect", a.masterGain)

	binCount := a.analyser.Get("frequencyBinCount").Int()
	a.data = js.Global.Get("Uint8Array").New(binCount)
	a.bins = make([]float64, binCount)

	a.ready = true
	return true
}

// LoadURL points the media element at a new source (typically an object URL
// from the file picker) and starts playback.
func (a *Analyser) LoadURL(url string) {
	if !a.Init() {
		return
	}
	a.element.Set("src", url)
	a.resume()
	a.element.Call("play")
}

// TogglePlay pauses or resumes the media element.
func (a *Analyser) TogglePlay() {
	if a.element == nil || a.element == js.Undefined {
		return
	}
	if a.element.Get("paused").Bool() {
		a.resume()
		a.element.Call("play")
	} else {
		a.element.Call("pause")
	}
}

// resume resumes a suspended context. Browsers suspend contexts created
// before a user gesture.
func (a *Analyser) resume() {
	if a.ctx != nil && a.ctx.Get("state").String() == "suspended" {
		a.ctx.Call("resume")
	}
}

// Active reports whether audio is currently playing. A missing or ended
// source counts as paused.
func (a *Analyser) Active() bool {
	if !a.ready || a.element == nil || a.element == js.Undefined {
		return false
	}
	return !a.element.Get("paused").Bool() && !a.element.Get("ended").Bool()
}

// Sample copies the current frequency-bin energies ([0,255] per bin) into a
// reused slice.
func (a *Analyser) Sample() []float64 {
	if !a.ready {
		return nil
	}
	a.analyser.Call("getByteFrequencyData", a.data)
	for i := range a.bins {
		a.bins[i] = a.data.Index(i).Float()
	}
	return a.bins
}
