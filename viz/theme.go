package viz

// Theme holds all visual styling constants for easy customization.
var Theme = struct {
	// Background colors
	BackgroundColor string
	StarColor       string
	StarGlow        string

	// Laser colors
	IdleLaserColor RGB
	LaserGlowBoost float64 // Extra shadowBlur added per unit of bass

	// Spark colors
	SparkColor string
	SparkGlow  string

	// UI/HUD colors
	OverlayBackground string
	OverlayBorder     string
	OverlayTitleColor string
	OverlayTextColor  string
	OverlayBarColor   string
	OverlayDimColor   string

	PanelBackground string
	PanelBorder     string
	PanelTitleColor string
	PanelFieldColor string
	PanelValueColor string
	PanelHelpColor  string

	// Fonts
	OverlayFont string
	PanelFont   string

	// Line widths
	LaserLineWidth float64

	// Shadow/glow blur values
	LaserShadowBlur float64
	SparkShadowBlur float64
	StarShadowBlur  float64
}{
	// Background - deep space
	BackgroundColor: "#000",
	StarColor:       "#334",
	StarGlow:        "#668",

	// Lasers idle at a dim cyan; the playing color comes from the field
	IdleLaserColor: RGB{R: 0, G: 128, B: 153},
	LaserGlowBoost: 10.0,

	// Sparks - warm white
	SparkColor: "#FEC",
	SparkGlow:  "#F93",

	// UI/HUD colors
	OverlayBackground: "rgba(0, 0, 0, 0.75)",
	OverlayBorder:     "#00aaff",
	OverlayTitleColor: "#00aaff",
	OverlayTextColor:  "#cccccc",
	OverlayBarColor:   "#0f6",
	OverlayDimColor:   "#666666",

	PanelBackground: "rgba(0, 0, 0, 0.85)",
	PanelBorder:     "#00ff00",
	PanelTitleColor: "#00ff00",
	PanelFieldColor: "#cccccc",
	PanelValueColor: "#ffffff",
	PanelHelpColor:  "#888888",

	// Fonts
	OverlayFont: "monospace",
	PanelFont:   "monospace",

	// Line widths
	LaserLineWidth: 2.0,

	// Shadow/glow blur values
	LaserShadowBlur: 8.0,
	SparkShadowBlur: 6.0,
	StarShadowBlur:  4.0,
}
