//go:build js
// +build js

package viz

import (
	"strconv"

	"github.com/gopherjs/gopherjs/js"
)

// StatsOverlay displays real-time visualization statistics (F10).
type StatsOverlay struct {
	Visible bool

	// FPS tracking
	FrameCount    int
	LastFPSUpdate float64
	CurrentFPS    float64

	// Position and styling
	PanelX      int
	PanelY      int
	LineHeight  int
	PanelWidth  int
	PanelHeight int
}

// NewStatsOverlay creates a new stats overlay instance.
func NewStatsOverlay() *StatsOverlay {
	return &StatsOverlay{
		Visible:     false,
		PanelX:      16,
		PanelY:      16,
		LineHeight:  18,
		PanelWidth:  264,
		PanelHeight: 190,
	}
}

// SetViewport repositions the panel against the right edge.
func (s *StatsOverlay) SetViewport(width int) {
	s.PanelX = width - s.PanelWidth - 16
}

// Toggle toggles the stats overlay visibility.
func (s *StatsOverlay) Toggle() {
	s.Visible = !s.Visible
}

// UpdateFPS updates the FPS counter. Called every animation frame.
func (s *StatsOverlay) UpdateFPS(currentTime float64) {
	s.FrameCount++

	elapsed := currentTime - s.LastFPSUpdate
	if elapsed >= 1000 {
		s.CurrentFPS = float64(s.FrameCount) / (elapsed / 1000)
		s.FrameCount = 0
		s.LastFPSUpdate = currentTime
	}
}

// Render draws the stats overlay.
func (s *StatsOverlay) Render(ctx *js.Object, v *Visualizer) {
	if !s.Visible {
		return
	}

	// Panel background
	ctx.Set("fillStyle", Theme.OverlayBackground)
	ctx.Call("fillRect", s.PanelX, s.PanelY, s.PanelWidth, s.PanelHeight)

	// Panel border
	ctx.Set("strokeStyle", Theme.OverlayBorder)
	ctx.Set("lineWidth", 1)
	ctx.Call("strokeRect", s.PanelX, s.PanelY, s.PanelWidth, s.PanelHeight)

	// Title
	ctx.Set("fillStyle", Theme.OverlayTitleColor)
	ctx.Set("font", "bold 14px "+Theme.OverlayFont)
	ctx.Set("textAlign", "left")
	y := s.PanelY + 22
	ctx.Call("fillText", "LASERFIELD STATS", s.PanelX+10, y)

	ctx.Set("font", "12px "+Theme.OverlayFont)
	ctx.Set("fillStyle", Theme.OverlayTextColor)

	y += s.LineHeight + 4
	ctx.Call("fillText", "FPS: "+strconv.FormatFloat(s.CurrentFPS, 'f', 1, 64), s.PanelX+10, y)

	y += s.LineHeight
	ctx.Call("fillText", "Lasers: "+strconv.Itoa(v.Field.NumLasers()), s.PanelX+10, y)

	y += s.LineHeight
	ctx.Call("fillText", "Reach: "+strconv.FormatFloat(v.Field.ReachMultiplier, 'f', 2, 64)+"x", s.PanelX+10, y)

	y += s.LineHeight
	ctx.Call("fillText", "Sparks: "+strconv.Itoa(v.Sparks.Pool.ActiveCount), s.PanelX+10, y)

	y += s.LineHeight
	s.renderLevelBar(ctx, "Bass", v.Field.SmoothedBass, y)

	y += s.LineHeight
	s.renderLevelBar(ctx, "Mid ", v.Field.SmoothedMid, y)

	y += s.LineHeight
	status := "local"
	if v.Sync.Hosting() {
		status = "hosting (" + strconv.Itoa(v.Sync.PeerCount()) + " viewers)"
	} else if v.Sync.Viewing() {
		status = "viewing"
	}
	ctx.Set("fillStyle", Theme.OverlayDimColor)
	ctx.Call("fillText", "Sync: "+status, s.PanelX+10, y)
}

// renderLevelBar draws a labeled horizontal level bar for a [0,1] value.
func (s *StatsOverlay) renderLevelBar(ctx *js.Object, label string, level float64, y int) {
	ctx.Set("fillStyle", Theme.OverlayTextColor)
	ctx.Call("fillText", label, s.PanelX+10, y)

	barX := s.PanelX + 55
	barW := s.PanelWidth - 70
	ctx.Set("strokeStyle", Theme.OverlayDimColor)
	ctx.Call("strokeRect", barX, y-10, barW, 12)
	ctx.Set("fillStyle", Theme.OverlayBarColor)
	ctx.Call("fillRect", barX, y-10, int(float64(barW)*level), 12)
}
