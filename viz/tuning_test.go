package viz

import "testing"

func TestTuningUI_Toggle(t *testing.T) {
	cfg := DefaultConfig()
	d := NewTuningUI(&cfg)

	if d.Visible {
		t.Error("Expected panel hidden initially")
	}
	d.Toggle()
	if !d.Visible {
		t.Error("Expected panel visible after toggle")
	}
}

func TestTuningUI_FieldNavigation(t *testing.T) {
	cfg := DefaultConfig()
	d := NewTuningUI(&cfg)

	d.NextField()
	if d.SelectedField != 1 {
		t.Errorf("Expected field 1, got %d", d.SelectedField)
	}

	d.PrevField()
	d.PrevField()
	if d.SelectedField != len(d.FieldNames)-1 {
		t.Errorf("Expected wrap to last field, got %d", d.SelectedField)
	}

	d.NextField()
	if d.SelectedField != 0 {
		t.Errorf("Expected wrap to first field, got %d", d.SelectedField)
	}
}

func TestTuningUI_AdjustValue(t *testing.T) {
	cfg := DefaultConfig()
	d := NewTuningUI(&cfg)

	// BaseReach steps by 5
	d.AdjustValue(1)
	if cfg.BaseReach != 35 {
		t.Errorf("Expected BaseReach 35, got %f", cfg.BaseReach)
	}
	d.AdjustValue(-1)
	if cfg.BaseReach != 30 {
		t.Errorf("Expected BaseReach 30, got %f", cfg.BaseReach)
	}

	// Floor at 1
	for i := 0; i < 20; i++ {
		d.AdjustValue(-1)
	}
	if cfg.BaseReach != 1 {
		t.Errorf("Expected BaseReach floored at 1, got %f", cfg.BaseReach)
	}
}

func TestTuningUI_SmoothingFactorClamped(t *testing.T) {
	cfg := DefaultConfig()
	d := NewTuningUI(&cfg)

	for d.FieldNames[d.SelectedField] != "AudioSmoothingFactor" {
		d.NextField()
	}

	for i := 0; i < 40; i++ {
		d.AdjustValue(1)
	}
	if cfg.AudioSmoothingFactor != 1 {
		t.Errorf("Expected smoothing factor capped at 1, got %f", cfg.AudioSmoothingFactor)
	}

	for i := 0; i < 40; i++ {
		d.AdjustValue(-1)
	}
	if cfg.AudioSmoothingFactor != 0 {
		t.Errorf("Expected smoothing factor floored at 0, got %f", cfg.AudioSmoothingFactor)
	}
}

func TestTuningUI_GetFieldValue(t *testing.T) {
	cfg := DefaultConfig()
	d := NewTuningUI(&cfg)

	cases := []struct {
		field    string
		expected string
	}{
		{"BaseReach", "30.0"},
		{"AudioMaxMultiplier", "25"},
		{"ZigZagSpeed", "2.00"},
		{"AudioSmoothingFactor", "0.30"},
		{"DecayRate", "0.40"},
		{"NoSuchField", ""},
	}

	for _, tc := range cases {
		if got := d.GetFieldValue(tc.field); got != tc.expected {
			t.Errorf("GetFieldValue(%q) = %q, expected %q", tc.field, got, tc.expected)
		}
	}
}

func TestTuningUI_EditsLiveConfig(t *testing.T) {
	cfg := DefaultConfig()
	f := NewField(cfg)
	d := NewTuningUI(&f.Cfg)

	// BaseReach is field 0; a tuning edit must land in the field's config
	d.AdjustValue(1)
	if f.Cfg.BaseReach != 35 {
		t.Errorf("Expected edit visible in field config, got %f", f.Cfg.BaseReach)
	}
}
