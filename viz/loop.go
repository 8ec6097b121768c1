//go:build js
// +build js

package viz

import (
	"github.com/gopherjs/gopherjs/js"

	"github.com/nvolker/laserfield/common"
)

// Visualizer wires the field update to the canvas, the audio analyser, and
// the session sync. It owns all mutable state; everything is driven from the
// requestAnimationFrame callback.
type Visualizer struct {
	Cfg   Config
	Field *Field

	Camera   *Camera
	Renderer *CanvasRenderer
	Source   EnergySource
	Sparks   *SparkEmitter

	Overlay *StatsOverlay
	Tuning  *TuningUI
	Sync    *SyncManager

	// Rendering
	Canvas *js.Object
	Ctx    *js.Object

	// Input
	Keys map[int]bool

	// Animation
	AnimationFrameID int
	LastFrameTime    float64
	StartTime        float64
	Paused           bool
}

// NewVisualizer creates a visualizer bound to the given canvas and energy
// source.
func NewVisualizer(canvas, ctx *js.Object, source EnergySource) *Visualizer {
	seed := uint32(js.Global.Get("Date").Call("now").Int64())
	cfg := DefaultConfig()

	v := &Visualizer{
		Cfg:    cfg,
		Field:  NewField(cfg),
		Camera: NewCamera(CameraFOV, CameraDistance),
		Source: source,
		Sparks: NewSparkEmitter(common.NewSeededRNG(common.StreamSeed(seed, 1))),
		Canvas: canvas,
		Ctx:    ctx,
		Keys:   make(map[int]bool),
	}
	v.Renderer = NewCanvasRenderer(canvas, ctx, common.NewSeededRNG(common.StreamSeed(seed, 0)))
	v.Overlay = NewStatsOverlay()
	v.Tuning = NewTuningUI(&v.Field.Cfg)
	v.Sync = NewSyncManager(v)

	return v
}

// Resize updates the canvas, camera, and renderer to new pixel dimensions.
// Laser state is untouched.
func (v *Visualizer) Resize(width, height int) {
	v.Canvas.Set("width", width)
	v.Canvas.Set("height", height)
	v.Camera.SetViewport(width, height)
	v.Renderer.SetViewport(width, height)
	v.Overlay.SetViewport(width)
}

// Start begins the render loop.
func (v *Visualizer) Start() {
	if v.AnimationFrameID > 0 {
		js.Global.Call("cancelAnimationFrame", v.AnimationFrameID)
	}
	v.StartTime = js.Global.Get("performance").Call("now").Float()
	v.Paused = false
	v.AnimationFrameID = js.Global.Call("requestAnimationFrame", v.LoopRAF).Int()
}

// TogglePause freezes or resumes the render loop.
func (v *Visualizer) TogglePause() {
	v.Paused = !v.Paused
}

// LoopRAF is the main loop using requestAnimationFrame.
func (v *Visualizer) LoopRAF(currentTime float64) {
	// Schedule next frame
	v.AnimationFrameID = js.Global.Call("requestAnimationFrame", v.LoopRAF).Int()

	// Update FPS counter
	v.Overlay.UpdateFPS(currentTime)

	// Fixed timestep
	if currentTime-v.LastFrameTime < FrameDuration {
		return
	}
	v.LastFrameTime = currentTime

	if v.Paused {
		return
	}

	v.Frame(currentTime)
}

// Frame runs one update/render cycle.
func (v *Visualizer) Frame(now float64) {
	t := (now - v.StartTime) / 1000

	if v.Sync.Viewing() {
		// A remote host drives the levels; skip local analysis.
		st := v.Sync.LatestState()
		v.Field.SetLevels(st.Bass, st.Mid)
		v.Field.Advance(t, st.Playing)
	} else {
		playing := v.Source != nil && v.Source.Active()
		var bins []float64
		if playing {
			bins = v.Source.Sample()
		}
		v.Field.Update(t, playing, bins)
	}

	v.Sparks.Update(v.Field.SmoothedBass)

	v.Field.Publish(v.Renderer)
	v.Renderer.Draw(v.Camera, v.Sparks, v.Field.SmoothedBass)

	v.Overlay.Render(v.Ctx, v)
	v.Tuning.Render(v.Ctx)

	if v.Sync.Hosting() {
		v.Sync.MaybeBroadcast(now, v.Field, v.Source != nil && v.Source.Active())
	}
}
