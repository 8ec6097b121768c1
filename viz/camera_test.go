package viz

import "testing"

func TestCamera_SetViewport(t *testing.T) {
	cam := NewCamera(CameraFOV, CameraDistance)
	cam.SetViewport(800, 600)

	if cam.Width != 800 || cam.Height != 600 {
		t.Errorf("Expected viewport 800x600, got %dx%d", cam.Width, cam.Height)
	}
	if !floatNear(cam.Aspect, 800.0/600.0, 1e-9) {
		t.Errorf("Expected aspect %f, got %f", 800.0/600.0, cam.Aspect)
	}

	cam.SetViewport(1920, 1080)
	if !floatNear(cam.Aspect, 1920.0/1080.0, 1e-9) {
		t.Errorf("Expected aspect %f after resize, got %f", 1920.0/1080.0, cam.Aspect)
	}
}

func TestCamera_ProjectCenter(t *testing.T) {
	cam := NewCamera(CameraFOV, CameraDistance)
	cam.SetViewport(800, 600)

	x, y, ok := cam.Project(Vec3{})
	if !ok {
		t.Fatal("Expected origin to be visible")
	}
	if !floatNear(x, 400, 1e-9) || !floatNear(y, 300, 1e-9) {
		t.Errorf("Expected origin at canvas center (400,300), got (%f,%f)", x, y)
	}
}

func TestCamera_ProjectOffCenter(t *testing.T) {
	cam := NewCamera(CameraFOV, CameraDistance)
	cam.SetViewport(800, 600)

	// +X maps right of center, +Y maps above center (canvas Y grows down)
	x, y, ok := cam.Project(Vec3{X: 100, Y: 50})
	if !ok {
		t.Fatal("Expected point to be visible")
	}
	if x <= 400 {
		t.Errorf("Expected +X point right of center, got x=%f", x)
	}
	if y >= 300 {
		t.Errorf("Expected +Y point above center, got y=%f", y)
	}
}

func TestCamera_NearPlaneCulling(t *testing.T) {
	cam := NewCamera(CameraFOV, CameraDistance)
	cam.SetViewport(800, 600)

	cases := []struct {
		name string
		z    float64
		ok   bool
	}{
		{"at origin", 0, true},
		{"just in front of near plane", CameraDistance - CameraNear, true},
		{"at camera", CameraDistance, false},
		{"behind camera", CameraDistance + 100, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, ok := cam.Project(Vec3{Z: tc.z})
			if ok != tc.ok {
				t.Errorf("z=%f: expected ok=%v, got %v", tc.z, tc.ok, ok)
			}
		})
	}
}

func TestCamera_ResizeLeavesFieldAlone(t *testing.T) {
	f := NewField(DefaultConfig())
	f.SetLevels(0.7, 0.4)
	f.Advance(1, true)

	before := make([]Vec3, len(f.Points))
	copy(before, f.Points)
	reach := f.ReachMultiplier

	cam := NewCamera(CameraFOV, CameraDistance)
	cam.SetViewport(640, 480)
	cam.SetViewport(2560, 1440)

	if f.ReachMultiplier != reach {
		t.Errorf("Resize changed reach: %f -> %f", reach, f.ReachMultiplier)
	}
	for i := range before {
		if f.Points[i] != before[i] {
			t.Fatalf("Resize changed point %d: %v -> %v", i, before[i], f.Points[i])
		}
	}
}

func TestTransform_Apply(t *testing.T) {
	// Identity
	id := Transform{}
	p := id.Apply(Vec3{X: 1, Y: 2, Z: 3})
	if p != (Vec3{X: 1, Y: 2, Z: 3}) {
		t.Errorf("Identity transform moved the point: %v", p)
	}

	// Quarter turn around Y carries +Z onto +X
	rot := Transform{RotY: 3.14159265358979 / 2}
	p = rot.Apply(Vec3{Z: 1})
	if !floatNear(p.X, 1, 1e-9) || !floatNear(p.Y, 0, 1e-9) || !floatNear(p.Z, 0, 1e-9) {
		t.Errorf("Expected (1,0,0) after Y quarter turn, got %v", p)
	}

	// Translation applies after rotation
	tr := Transform{Position: Vec3{X: 10, Y: -5, Z: 2}}
	p = tr.Apply(Vec3{X: 1, Y: 1, Z: 1})
	if p != (Vec3{X: 11, Y: -4, Z: 3}) {
		t.Errorf("Expected (11,-4,3), got %v", p)
	}
}
