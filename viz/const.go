package viz

// Loop constants
const (
	FrameDuration = 16.67 // ~60 FPS fixed timestep, milliseconds
)

// Camera constants
const (
	CameraFOV      = 60.0   // Vertical field of view in degrees
	CameraDistance = 1500.0 // Distance from the group origin along +Z
	CameraNear     = 1.0    // Points closer than this are culled
)

// Spark burst constants
const (
	// SparkTriggerLevel is the smoothed bass level that fires a burst.
	SparkTriggerLevel = 0.6
	// SparkRearmLevel is the level the bass must fall below before the
	// emitter can fire again.
	SparkRearmLevel = 0.45
	// SparkBurstCount is how many sparks one burst emits.
	SparkBurstCount = 24
	// MaxSparks bounds the spark pool.
	MaxSparks = 200
)

// Config holds the laser field parameters. The defaults are fixed at startup;
// the tuning panel (F9) edits a live copy for experimentation only.
type Config struct {
	NumLasers int // Number of line segments, fixed for the process lifetime

	BaseReach  float64 // Resting radial reach of the field
	BaseHeight float64 // Resting wave height

	AudioMaxMultiplier float64 // Bass at 1.0 scales reach to 1 + this
	AudioRotationSpeed float64 // Mid contribution to the Y spin per frame
	BaseSpinSpeed      float64 // Audio-independent Y spin per frame
	GroupTiltSpeed     float64 // Fixed X tilt per frame

	ZigZagFrequency float64 // Per-index phase multiplier for the zig-zag
	ZigZagAmplitude float64 // Horizontal zig-zag extent
	ZigZagSpeed     float64 // Zig-zag phase advance per second

	BaseFlowSpeed     float64 // Baseline flow phase speed
	BaseSwayFrequency float64 // Baseline sway frequency (reserved hook)

	SourceY      float64 // Height of the fixed start points
	SourceSpread float64 // Horizontal spacing between start points

	SwirlSpeed        float64 // Orbit angular speed, rad/s
	SwirlRadiusFactor float64 // Orbit radius as a fraction of BaseReach

	AudioSmoothingFactor float64 // One-pole low-pass blend factor
	DecayRate            float64 // Idle relaxation rate toward baselines
}

// DefaultConfig returns the startup configuration.
func DefaultConfig() Config {
	return Config{
		NumLasers:            150,
		BaseReach:            30,
		BaseHeight:           40,
		AudioMaxMultiplier:   25,
		AudioRotationSpeed:   0.005,
		BaseSpinSpeed:        0.000005,
		GroupTiltSpeed:       0.0002,
		ZigZagFrequency:      25,
		ZigZagAmplitude:      15,
		ZigZagSpeed:          2.0,
		BaseFlowSpeed:        0.0005,
		BaseSwayFrequency:    0.001,
		SourceY:              -10,
		SourceSpread:         5,
		SwirlSpeed:           0.2,
		SwirlRadiusFactor:    0.5,
		AudioSmoothingFactor: 0.3,
		DecayRate:            0.4,
	}
}
