package viz

import "math"

// Vec3 is a point in group space.
type Vec3 struct {
	X, Y, Z float64
}

// Transform is the pose applied to the whole laser group before projection:
// rotation about X, then rotation about Y, then translation.
type Transform struct {
	Position Vec3
	RotX     float64
	RotY     float64
}

// Apply transforms a group-space point into world space.
func (tr Transform) Apply(p Vec3) Vec3 {
	cx, sx := math.Cos(tr.RotX), math.Sin(tr.RotX)
	y := p.Y*cx - p.Z*sx
	z := p.Y*sx + p.Z*cx

	cy, sy := math.Cos(tr.RotY), math.Sin(tr.RotY)
	x := p.X*cy + z*sy
	z = -p.X*sy + z*cy

	return Vec3{
		X: x + tr.Position.X,
		Y: y + tr.Position.Y,
		Z: z + tr.Position.Z,
	}
}

// EnergySource supplies per-frame frequency-bin energies. Bin values are in
// [0, 255] as delivered by the analyser.
type EnergySource interface {
	Sample() []float64
	Active() bool
}

// Renderer consumes the per-frame output of the field update.
type Renderer interface {
	SetLaserEndpoints(points []Vec3)
	SetGroupTransform(t Transform)
	SetLineColor(c RGB)
}

// Field holds the complete visualization state: the laser endpoints, the
// smoothed audio levels and the parameters derived from them, and the group
// transform. All of it is owned by the frame loop; Update is the only writer.
type Field struct {
	Cfg Config

	// Points holds start/end pairs back to back: Points[2i] is laser i's
	// fixed start, Points[2i+1] its per-frame end.
	Points []Vec3

	SmoothedBass float64
	SmoothedMid  float64

	ReachMultiplier float64
	FlowSpeed       float64
	SwayFrequency   float64

	Hue       float64
	Lightness float64
	Color     RGB

	Group Transform
}

// NewField creates a field with start points evenly spaced along X, centered
// on the origin, at fixed height and depth.
func NewField(cfg Config) *Field {
	f := &Field{
		Cfg:             cfg,
		Points:          make([]Vec3, cfg.NumLasers*2),
		ReachMultiplier: 1,
		FlowSpeed:       cfg.BaseFlowSpeed,
		SwayFrequency:   cfg.BaseSwayFrequency,
		Color:           Theme.IdleLaserColor,
	}
	half := float64(cfg.NumLasers-1) / 2
	for i := 0; i < cfg.NumLasers; i++ {
		start := Vec3{
			X: (float64(i) - half) * cfg.SourceSpread,
			Y: cfg.SourceY,
			Z: 0,
		}
		f.Points[2*i] = start
		f.Points[2*i+1] = start
	}
	return f
}

// NumLasers returns the number of line segments in the field.
func (f *Field) NumLasers() int {
	return len(f.Points) / 2
}

// BandLevels splits the analyser bins into a bass band (first eighth) and a
// mid band (next three eighths) and returns each band's mean energy
// normalized to [0, 1].
func BandLevels(bins []float64) (bass, mid float64) {
	bassEnd := len(bins) / 8
	midEnd := len(bins) / 2
	if bassEnd == 0 || midEnd <= bassEnd {
		return 0, 0
	}

	var sum float64
	for _, v := range bins[:bassEnd] {
		sum += v
	}
	bass = sum / float64(bassEnd) / 255

	sum = 0
	for _, v := range bins[bassEnd:midEnd] {
		sum += v
	}
	mid = sum / float64(midEnd-bassEnd) / 255

	return bass, mid
}

// Update runs one frame: extract band energies (zero when not playing),
// smooth them, then derive parameters and endpoints via Advance.
//
// The one-pole filter is deliberately not compensated for elapsed time; the
// fixed-timestep loop keeps the effective rate stable across displays.
func (f *Field) Update(t float64, playing bool, bins []float64) {
	var rawBass, rawMid float64
	if playing {
		rawBass, rawMid = BandLevels(bins)
	}

	f.SmoothedBass += (rawBass - f.SmoothedBass) * f.Cfg.AudioSmoothingFactor
	f.SmoothedMid += (rawMid - f.SmoothedMid) * f.Cfg.AudioSmoothingFactor

	f.Advance(t, playing)
}

// SetLevels overrides the smoothed levels directly. Used on the viewer side
// of a synced session, where the host has already done the smoothing. Values
// are clamped to [0, 1] since they arrive off the wire.
func (f *Field) SetLevels(bass, mid float64) {
	f.SmoothedBass = clamp01(bass)
	f.SmoothedMid = clamp01(mid)
}

// Advance derives the dynamic parameters, group transform, and laser
// endpoints from the current smoothed levels. Split from Update so a synced
// viewer can drive it from received levels.
func (f *Field) Advance(t float64, playing bool) {
	if playing {
		f.ReachMultiplier = 1 + f.SmoothedBass*f.Cfg.AudioMaxMultiplier
		f.FlowSpeed = f.Cfg.BaseFlowSpeed
		f.SwayFrequency = f.Cfg.BaseSwayFrequency

		f.Hue = math.Mod(0.5+f.SmoothedMid*0.5, 1)
		f.Lightness = 0.6 + f.SmoothedMid*0.2
		f.Color = HSLToRGB(f.Hue, 1, f.Lightness)
	} else {
		// Relax toward the resting pose; never overshoots since the
		// step is a fixed fraction of the remaining gap.
		f.ReachMultiplier += (1 - f.ReachMultiplier) * f.Cfg.DecayRate
		f.FlowSpeed += (f.Cfg.BaseFlowSpeed - f.FlowSpeed) * f.Cfg.DecayRate
		f.SwayFrequency += (f.Cfg.BaseSwayFrequency - f.SwayFrequency) * f.Cfg.DecayRate
		f.Color = Theme.IdleLaserColor
	}

	f.Group.RotY += f.Cfg.BaseSpinSpeed + f.SmoothedMid*f.Cfg.AudioRotationSpeed
	f.Group.RotX += f.Cfg.GroupTiltSpeed

	orbitR := f.Cfg.BaseReach * f.Cfg.SwirlRadiusFactor
	f.Group.Position = Vec3{
		X: math.Sin(t*f.Cfg.SwirlSpeed) * orbitR,
		Y: math.Cos(t*f.Cfg.SwirlSpeed) * orbitR * 0.5,
		Z: 0,
	}

	n := f.NumLasers()
	pulsatingReach := f.Cfg.BaseReach * f.ReachMultiplier
	for i := 0; i < n; i++ {
		start := f.Points[2*i]

		zig := math.Sin(float64(i)*f.Cfg.ZigZagFrequency + t*f.Cfg.ZigZagSpeed)
		baseAngle := float64(i) / float64(n) * 2 * math.Pi
		wave := f.Cfg.BaseHeight * math.Abs(math.Sin(baseAngle*5+t*0.5)) * 0.7

		f.Points[2*i+1] = Vec3{
			X: start.X + zig*f.Cfg.ZigZagAmplitude*(pulsatingReach/f.Cfg.BaseReach),
			Y: f.Cfg.SourceY + wave*f.ReachMultiplier,
			Z: math.Sin(baseAngle+t*f.FlowSpeed) * pulsatingReach * 0.5,
		}
	}
}

// Publish pushes the frame's output to the renderer sink.
func (f *Field) Publish(r Renderer) {
	r.SetLaserEndpoints(f.Points)
	r.SetGroupTransform(f.Group)
	r.SetLineColor(f.Color)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
