package camera

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestNew(t *testing.T) {
	cam := New(1280, 720, 8, 75)

	if cam.Distance != 8 {
		t.Errorf("expected distance 8, got %f", cam.Distance)
	}
	if p := cam.Position(); p.X != 0 || p.Y != 0 || p.Z != 8 {
		t.Errorf("expected camera at (0, 0, 8), got %v", p)
	}
}

func TestDepth(t *testing.T) {
	cam := New(1280, 720, 8, 75)

	if d := cam.Depth(r3.Vec{}); d != 8 {
		t.Errorf("origin depth: expected 8, got %f", d)
	}
	if d := cam.Depth(r3.Vec{Z: 2}); d != 6 {
		t.Errorf("z=2 depth: expected 6, got %f", d)
	}
	if d := cam.Depth(r3.Vec{Z: 10}); d >= 0 {
		t.Errorf("point behind camera should have negative depth, got %f", d)
	}
}

func TestWorldToScreenCentered(t *testing.T) {
	cam := New(1280, 720, 8, 75)

	sx, sy, ok := cam.WorldToScreen(r3.Vec{})
	if !ok {
		t.Fatal("origin should project")
	}
	if math.Abs(sx-640) > 0.01 || math.Abs(sy-360) > 0.01 {
		t.Errorf("expected screen center (640, 360), got (%f, %f)", sx, sy)
	}
}

func TestWorldToScreenAxes(t *testing.T) {
	cam := New(1280, 720, 8, 75)

	// +X goes right, +Y goes up (screen y shrinks)
	sx, sy, _ := cam.WorldToScreen(r3.Vec{X: 1, Y: 1})
	if sx <= 640 {
		t.Errorf("expected +X right of center, got x=%f", sx)
	}
	if sy >= 360 {
		t.Errorf("expected +Y above center, got y=%f", sy)
	}

	// Closer points spread further from center
	near, _, _ := cam.WorldToScreen(r3.Vec{X: 1, Z: 4})
	far, _, _ := cam.WorldToScreen(r3.Vec{X: 1, Z: -4})
	if near-640 <= far-640 {
		t.Errorf("expected perspective: near offset %f should exceed far offset %f", near-640, far-640)
	}
}

func TestWorldToScreenBehind(t *testing.T) {
	cam := New(1280, 720, 8, 75)

	if _, _, ok := cam.WorldToScreen(r3.Vec{Z: 9}); ok {
		t.Error("point behind camera should not project")
	}
}

func TestIsVisible(t *testing.T) {
	cam := New(1280, 720, 8, 75)

	if !cam.IsVisible(r3.Vec{}, 0.1) {
		t.Error("origin should be visible")
	}
	if cam.IsVisible(r3.Vec{X: 100}, 0.1) {
		t.Error("far off-axis point should not be visible")
	}
	if cam.IsVisible(r3.Vec{Z: 20}, 1) {
		t.Error("point well behind camera should not be visible")
	}
}

func TestZoomClamp(t *testing.T) {
	cam := New(1280, 720, 8, 75)
	cam.SetLimits(4, 20)

	cam.ZoomBy(10) // Would put the camera at 0.8
	if cam.Distance != 4 {
		t.Errorf("expected distance clamped to 4, got %f", cam.Distance)
	}

	cam.ZoomBy(0.01) // Would put the camera at 400
	if cam.Distance != 20 {
		t.Errorf("expected distance clamped to 20, got %f", cam.Distance)
	}

	cam.ZoomBy(0) // Ignored
	if cam.Distance != 20 {
		t.Errorf("zero factor should be ignored, got %f", cam.Distance)
	}
}

func TestReset(t *testing.T) {
	cam := New(1280, 720, 8, 75)
	cam.SetLimits(4, 20)
	cam.SetDistance(15)

	cam.Reset()

	if cam.Distance != 8 {
		t.Errorf("expected distance 8, got %f", cam.Distance)
	}
}

func TestPixelsToWorldRoundtrip(t *testing.T) {
	cam := New(1280, 720, 8, 75)

	// A world-space segment of the computed length should project to the pixel length
	w := cam.PixelsToWorld(50, 8)
	sx, _, _ := cam.WorldToScreen(r3.Vec{X: w})
	if math.Abs((sx-640)-50) > 0.01 {
		t.Errorf("expected 50px, got %f", sx-640)
	}
}
