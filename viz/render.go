//go:build js
// +build js

package viz

import (
	"github.com/gopherjs/gopherjs/js"

	"github.com/nvolker/laserfield/common"
)

// RenderToCanvas creates an off-screen canvas and renders to it.
func RenderToCanvas(width, height int, renderFn func(canvas, ctx *js.Object)) *js.Object {
	document := js.Global.Get("document")
	canvas := document.Call("createElement", "canvas")
	canvas.Set("width", width)
	canvas.Set("height", height)
	ctx := canvas.Call("getContext", "2d")
	renderFn(canvas, ctx)
	return canvas
}

// CanvasRenderer draws the laser field onto a 2D canvas. It implements the
// Renderer sink: the field publishes endpoints, transform, and color, and
// Draw turns them into projected line strokes with additive glow.
type CanvasRenderer struct {
	canvas *js.Object
	ctx    *js.Object

	width  int
	height int

	points []Vec3
	group  Transform
	color  RGB

	background        *js.Object
	backgroundPattern *js.Object
}

// Compile-time interface check
var _ Renderer = (*CanvasRenderer)(nil)

// NewCanvasRenderer creates a renderer and pre-renders the star tile with a
// deterministic layout from the given RNG.
func NewCanvasRenderer(canvas, ctx *js.Object, rng *common.SeededRNG) *CanvasRenderer {
	r := &CanvasRenderer{
		canvas: canvas,
		ctx:    ctx,
	}

	// Background star tile
	r.background = RenderToCanvas(256, 256, func(tile, tctx *js.Object) {
		w := tile.Get("width").Float()
		h := tile.Get("height").Float()

		tctx.Set("fillStyle", Theme.BackgroundColor)
		tctx.Call("fillRect", 0, 0, w, h)

		tctx.Set("shadowBlur", Theme.StarShadowBlur)
		tctx.Set("shadowColor", Theme.StarGlow)
		tctx.Set("fillStyle", Theme.StarColor)
		for i := 0; i < 48; i++ {
			x := rng.Random() * w
			y := rng.Random() * h
			size := rng.RandomFloat(0.5, 1.8)
			tctx.Call("fillRect", x, y, size, size)
		}
	})
	r.backgroundPattern = ctx.Call("createPattern", r.background, "repeat")

	return r
}

// SetViewport updates the renderer's pixel dimensions.
func (r *CanvasRenderer) SetViewport(width, height int) {
	r.width = width
	r.height = height
}

// SetLaserEndpoints stores the start/end pairs for the next Draw.
func (r *CanvasRenderer) SetLaserEndpoints(points []Vec3) {
	r.points = points
}

// SetGroupTransform stores the group pose for the next Draw.
func (r *CanvasRenderer) SetGroupTransform(t Transform) {
	r.group = t
}

// SetLineColor stores the uniform laser color for the next Draw.
func (r *CanvasRenderer) SetLineColor(c RGB) {
	r.color = c
}

// Draw renders the background, lasers, and sparks for the current frame.
func (r *CanvasRenderer) Draw(cam *Camera, sparks *SparkEmitter, bass float64) {
	ctx := r.ctx

	// Background
	ctx.Set("fillStyle", r.backgroundPattern)
	ctx.Call("fillRect", 0, 0, r.width, r.height)

	// Additive blending for the glow layers
	ctx.Set("globalCompositeOperation", "lighter")

	// Lasers
	css := r.color.CSS()
	ctx.Set("lineWidth", Theme.LaserLineWidth)
	ctx.Set("strokeStyle", css)
	ctx.Set("shadowColor", css)
	ctx.Set("shadowBlur", Theme.LaserShadowBlur+bass*Theme.LaserGlowBoost)

	ctx.Call("beginPath")
	for i := 0; i+1 < len(r.points); i += 2 {
		sx, sy, sok := cam.Project(r.group.Apply(r.points[i]))
		ex, ey, eok := cam.Project(r.group.Apply(r.points[i+1]))
		if !sok || !eok {
			continue
		}
		ctx.Call("moveTo", sx, sy)
		ctx.Call("lineTo", ex, ey)
	}
	ctx.Call("stroke")

	// Sparks
	if sparks != nil && sparks.Pool.ActiveCount > 0 {
		ctx.Set("fillStyle", Theme.SparkColor)
		ctx.Set("shadowColor", Theme.SparkGlow)
		ctx.Set("shadowBlur", Theme.SparkShadowBlur)
		sparks.Pool.ForEachReverse(func(s *Spark, _ int) {
			x, y, ok := cam.Project(r.group.Apply(Vec3{X: s.X, Y: s.Y, Z: s.Z}))
			if !ok {
				return
			}
			ctx.Set("globalAlpha", s.Alpha)
			ctx.Call("fillRect", x-s.Size/2, y-s.Size/2, s.Size, s.Size)
		})
		ctx.Set("globalAlpha", 1)
	}

	ctx.Set("shadowBlur", 0)
	ctx.Set("globalCompositeOperation", "source-over")
}
