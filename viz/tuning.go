package viz

import "strconv"

// TuningUI holds the state for the parameter tuning panel (F9). It edits a
// live Config so parameter changes can be auditioned without a rebuild.
// NumLasers is deliberately absent: the field size is fixed for the process
// lifetime.
type TuningUI struct {
	Visible          bool
	Cfg              *Config
	SelectedField    int
	PanelX           int
	PanelY           int
	PanelWidth       int
	PanelHeight      int
	FieldNames       []string
	ScrollOffset     int
	MaxVisibleFields int
}

// NewTuningUI creates a tuning panel bound to the given config.
func NewTuningUI(cfg *Config) *TuningUI {
	return &TuningUI{
		Visible:     false,
		Cfg:         cfg,
		PanelX:      16,
		PanelY:      16,
		PanelWidth:  350,
		PanelHeight: 400,
		FieldNames: []string{
			"BaseReach",
			"BaseHeight",
			"AudioMaxMultiplier",
			"AudioRotationSpeed",
			"ZigZagFrequency",
			"ZigZagAmplitude",
			"ZigZagSpeed",
			"SwirlSpeed",
			"SwirlRadiusFactor",
			"AudioSmoothingFactor",
			"DecayRate",
		},
		MaxVisibleFields: 10,
	}
}

// Toggle toggles the tuning panel visibility.
func (d *TuningUI) Toggle() {
	d.Visible = !d.Visible
}

// NextField moves to the next field.
func (d *TuningUI) NextField() {
	d.SelectedField = (d.SelectedField + 1) % len(d.FieldNames)
	if d.SelectedField >= d.ScrollOffset+d.MaxVisibleFields {
		d.ScrollOffset = d.SelectedField - d.MaxVisibleFields + 1
	} else if d.SelectedField < d.ScrollOffset {
		d.ScrollOffset = d.SelectedField
	}
}

// PrevField moves to the previous field.
func (d *TuningUI) PrevField() {
	d.SelectedField--
	if d.SelectedField < 0 {
		d.SelectedField = len(d.FieldNames) - 1
	}
	if d.SelectedField >= d.ScrollOffset+d.MaxVisibleFields {
		d.ScrollOffset = d.SelectedField - d.MaxVisibleFields + 1
	} else if d.SelectedField < d.ScrollOffset {
		d.ScrollOffset = d.SelectedField
	}
}

// AdjustValue adjusts the currently selected field value. delta is +1/-1
// from the key handler; each field applies its own step.
func (d *TuningUI) AdjustValue(delta float64) {
	switch d.FieldNames[d.SelectedField] {
	case "BaseReach":
		d.Cfg.BaseReach = maxFloat(1, d.Cfg.BaseReach+delta*5)
	case "BaseHeight":
		d.Cfg.BaseHeight = maxFloat(1, d.Cfg.BaseHeight+delta*5)
	case "AudioMaxMultiplier":
		d.Cfg.AudioMaxMultiplier = maxFloat(0, d.Cfg.AudioMaxMultiplier+delta)
	case "AudioRotationSpeed":
		d.Cfg.AudioRotationSpeed = maxFloat(0, d.Cfg.AudioRotationSpeed+delta*0.001)
	case "ZigZagFrequency":
		d.Cfg.ZigZagFrequency = maxFloat(0, d.Cfg.ZigZagFrequency+delta)
	case "ZigZagAmplitude":
		d.Cfg.ZigZagAmplitude = maxFloat(0, d.Cfg.ZigZagAmplitude+delta)
	case "ZigZagSpeed":
		d.Cfg.ZigZagSpeed = maxFloat(0, d.Cfg.ZigZagSpeed+delta*0.25)
	case "SwirlSpeed":
		d.Cfg.SwirlSpeed = maxFloat(0, d.Cfg.SwirlSpeed+delta*0.05)
	case "SwirlRadiusFactor":
		d.Cfg.SwirlRadiusFactor = clamp01(d.Cfg.SwirlRadiusFactor + delta*0.05)
	case "AudioSmoothingFactor":
		d.Cfg.AudioSmoothingFactor = clamp01(d.Cfg.AudioSmoothingFactor + delta*0.05)
	case "DecayRate":
		d.Cfg.DecayRate = clamp01(d.Cfg.DecayRate + delta*0.05)
	}
}

// GetFieldValue returns the current value of a field as a string.
func (d *TuningUI) GetFieldValue(fieldName string) string {
	switch fieldName {
	case "BaseReach":
		return strconv.FormatFloat(d.Cfg.BaseReach, 'f', 1, 64)
	case "BaseHeight":
		return strconv.FormatFloat(d.Cfg.BaseHeight, 'f', 1, 64)
	case "AudioMaxMultiplier":
		return strconv.FormatFloat(d.Cfg.AudioMaxMultiplier, 'f', 0, 64)
	case "AudioRotationSpeed":
		return strconv.FormatFloat(d.Cfg.AudioRotationSpeed, 'f', 4, 64)
	case "ZigZagFrequency":
		return strconv.FormatFloat(d.Cfg.ZigZagFrequency, 'f', 0, 64)
	case "ZigZagAmplitude":
		return strconv.FormatFloat(d.Cfg.ZigZagAmplitude, 'f', 0, 64)
	case "ZigZagSpeed":
		return strconv.FormatFloat(d.Cfg.ZigZagSpeed, 'f', 2, 64)
	case "SwirlSpeed":
		return strconv.FormatFloat(d.Cfg.SwirlSpeed, 'f', 2, 64)
	case "SwirlRadiusFactor":
		return strconv.FormatFloat(d.Cfg.SwirlRadiusFactor, 'f', 2, 64)
	case "AudioSmoothingFactor":
		return strconv.FormatFloat(d.Cfg.AudioSmoothingFactor, 'f', 2, 64)
	case "DecayRate":
		return strconv.FormatFloat(d.Cfg.DecayRate, 'f', 2, 64)
	}
	return ""
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
