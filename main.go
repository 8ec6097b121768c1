//go:build js
// +build js

package main

import (
	"github.com/gopherjs/gopherjs/js"

	"github.com/nvolker/laserfield/audio"
	"github.com/nvolker/laserfield/viz"
)

func main() {
	// Get the canvas element
	doc := js.Global.Get("document")
	canvas := doc.Call("getElementById", "c")
	if canvas == nil || canvas == js.Undefined {
		panic("canvas element not found")
	}
	ctx := canvas.Call("getContext", "2d")

	// Get the audio element
	player := doc.Call("getElementById", "player")
	if player == nil || player == js.Undefined {
		player = doc.Call("createElement", "audio")
		doc.Get("body").Call("appendChild", player)
	}
	analyser := audio.NewAnalyser(player)

	// Create the visualizer
	v := viz.NewVisualizer(canvas, ctx, analyser)
	v.SetupInputHandlers()
	v.SetupResizeHandler()
	v.SetupFileInput("file", analyser.LoadURL)

	// Expose API to JavaScript
	js.Global.Set("LaserField", map[string]interface{}{
		"loadUrl": func(url string) {
			analyser.LoadURL(url)
		},
		"togglePlay": func() {
			analyser.TogglePlay()
		},
		"join": func(roomID string) {
			v.Sync.JoinRoom(roomID)
		},
		"leave": func() {
			v.Sync.LeaveRoom()
		},
		"isConnected": func() bool {
			return v.Sync.Hosting() || v.Sync.Viewing()
		},
		"peerCount": func() int {
			return v.Sync.PeerCount()
		},
	})

	// Disconnect sync peers when the page closes
	js.Global.Call("addEventListener", "beforeunload", func() {
		v.Sync.LeaveRoom()
	})

	v.Start()

	select {}
}
