//go:build js
// +build js

package viz

import (
	"strconv"

	"github.com/gopherjs/gopherjs/js"
)

var EnableDebug = false

// Debug logs a message to the browser console if debug mode is enabled.
func Debug(args ...interface{}) {
	if EnableDebug {
		js.Global.Get("console").Call("log", args...)
	}
}

// DebugWarn logs a warning to the browser console if debug mode is enabled.
func DebugWarn(args ...interface{}) {
	if EnableDebug {
		js.Global.Get("console").Call("warn", args...)
	}
}

// DebugError logs an error to the browser console if debug mode is enabled.
func DebugError(args ...interface{}) {
	if EnableDebug {
		js.Global.Get("console").Call("error", args...)
	}
}

// Render draws the tuning panel.
func (d *TuningUI) Render(ctx *js.Object) {
	if !d.Visible {
		return
	}

	// Panel background
	ctx.Set("fillStyle", Theme.PanelBackground)
	ctx.Call("fillRect", d.PanelX, d.PanelY, d.PanelWidth, d.PanelHeight)

	// Panel border
	ctx.Set("strokeStyle", Theme.PanelBorder)
	ctx.Set("lineWidth", 2)
	ctx.Call("strokeRect", d.PanelX, d.PanelY, d.PanelWidth, d.PanelHeight)

	// Title
	ctx.Set("fillStyle", Theme.PanelTitleColor)
	ctx.Set("font", "bold 16px "+Theme.PanelFont)
	ctx.Set("textAlign", "left")
	ctx.Call("fillText", "FIELD TUNING", d.PanelX+10, d.PanelY+25)

	// Instructions
	ctx.Set("fillStyle", Theme.PanelHelpColor)
	ctx.Set("font", "11px "+Theme.PanelFont)
	ctx.Call("fillText", "W/S: Field | A/D: Value | F9: Close", d.PanelX+10, d.PanelY+45)

	// Separator
	ctx.Set("strokeStyle", "#444444")
	ctx.Call("beginPath")
	ctx.Call("moveTo", d.PanelX+10, d.PanelY+55)
	ctx.Call("lineTo", d.PanelX+d.PanelWidth-10, d.PanelY+55)
	ctx.Call("stroke")

	// Fields
	ctx.Set("font", "13px "+Theme.PanelFont)
	startY := d.PanelY + 80
	lineHeight := 28

	endIdx := minInt(d.ScrollOffset+d.MaxVisibleFields, len(d.FieldNames))
	for i := d.ScrollOffset; i < endIdx; i++ {
		fieldName := d.FieldNames[i]
		value := d.GetFieldValue(fieldName)
		yPos := startY + (i-d.ScrollOffset)*lineHeight

		if i == d.SelectedField {
			ctx.Set("fillStyle", "rgba(0, 255, 0, 0.2)")
			ctx.Call("fillRect", d.PanelX+5, yPos-15, d.PanelWidth-10, lineHeight-2)
			ctx.Set("fillStyle", Theme.PanelTitleColor)
		} else {
			ctx.Set("fillStyle", Theme.PanelFieldColor)
		}

		ctx.Call("fillText", fieldName+":", d.PanelX+15, yPos)

		ctx.Set("textAlign", "right")
		if i == d.SelectedField {
			ctx.Set("fillStyle", Theme.PanelValueColor)
		}
		ctx.Call("fillText", value, d.PanelX+d.PanelWidth-15, yPos)
		ctx.Set("textAlign", "left")
	}

	// Scroll indicator
	if len(d.FieldNames) > d.MaxVisibleFields {
		ctx.Set("fillStyle", Theme.OverlayDimColor)
		ctx.Set("font", "11px "+Theme.PanelFont)
		scrollInfo := strconv.Itoa(d.ScrollOffset+1) + "-" + strconv.Itoa(endIdx) +
			" of " + strconv.Itoa(len(d.FieldNames))
		ctx.Call("fillText", scrollInfo, d.PanelX+10, d.PanelY+d.PanelHeight-10)
	}
}
