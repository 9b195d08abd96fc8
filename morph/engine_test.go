package morph

import (
	"bytes"
	"context"
	"image/color"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/pthm-cable/morph/config"
	"github.com/pthm-cable/morph/gesture"
	"github.com/pthm-cable/morph/layout"
)

func newTestEngine(t *testing.T, count int) (*Engine, *config.Config) {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	cfg.Particles.Count = count

	set, err := layout.NewSet(context.Background(), layout.NewGenerator(cfg, 1), 1, "Ada")
	if err != nil {
		t.Fatalf("creating layouts: %v", err)
	}
	return NewEngine(cfg, set), cfg
}

func TestEngineEndToEnd(t *testing.T) {
	e, _ := newTestEngine(t, 500)
	pink := color.RGBA{R: 255, G: 102, B: 204, A: 255}

	for i := 0; i < 50; i++ {
		e.Tick(Inputs{
			Time:    float64(i) / 60,
			Pattern: "sphere",
			Color:   pink,
			Gesture: gesture.State{Type: gesture.None, Openness: 1},
		})
	}

	u := e.Uniforms()
	if want := 1 - math.Pow(0.9, 50); math.Abs(u.Openness-want) > 1e-9 {
		t.Errorf("openness: expected %f, got %f", want, u.Openness)
	}
	if want := 1 - math.Pow(0.92, 50); math.Abs(u.Mix[layout.Sphere]-want) > 1e-9 {
		t.Errorf("sphere weight: expected %f, got %f", want, u.Mix[layout.Sphere])
	}
	for _, s := range layout.Shapes() {
		if s != layout.Sphere && u.Mix[s] != 0 {
			t.Errorf("%s weight should be 0, got %f", s, u.Mix[s])
		}
	}
	if u.Color != pink {
		t.Errorf("color should pass through, got %v", u.Color)
	}
	if u.Time != 49.0/60 {
		t.Errorf("time should track the clock, got %f", u.Time)
	}
	if e.Ticks() != 50 {
		t.Errorf("expected 50 ticks, got %d", e.Ticks())
	}
}

func TestEngineGestureOverride(t *testing.T) {
	e, _ := newTestEngine(t, 100)

	e.Tick(Inputs{Pattern: "cube", Gesture: gesture.State{Type: gesture.Heart}})
	if e.Target() != OneHot(layout.Heart) {
		t.Errorf("heart gesture should override cube, target %v", e.Target())
	}
	if w := e.Weights(); w[layout.Heart] <= 0 || w[layout.Cube] != 0 {
		t.Errorf("expected heart rising and cube at 0, got %v", w)
	}
}

func TestEngineCrossfade(t *testing.T) {
	e, _ := newTestEngine(t, 100)

	for i := 0; i < 30; i++ {
		e.Tick(Inputs{Pattern: "ring"})
	}
	ring := e.Weights()[layout.Ring]

	e.Tick(Inputs{Pattern: "wave"})
	w := e.Weights()
	if math.Abs(w[layout.Ring]-ring*0.92) > 1e-12 {
		t.Errorf("ring should decay by 0.92, got %f from %f", w[layout.Ring], ring)
	}
	if math.Abs(w[layout.Wave]-0.08) > 1e-12 {
		t.Errorf("wave should rise to 0.08, got %f", w[layout.Wave])
	}
}

func TestEngineUnknownPattern(t *testing.T) {
	e, _ := newTestEngine(t, 100)

	for i := 0; i < 20; i++ {
		e.Tick(Inputs{Pattern: "sphere"})
	}
	before := e.Weights()[layout.Sphere]

	for i := 0; i < 20; i++ {
		e.Tick(Inputs{Pattern: "nope"})
	}
	if e.Target() != (Weights{}) {
		t.Errorf("unknown pattern should give zero target, got %v", e.Target())
	}
	if want := before * math.Pow(0.92, 20); math.Abs(e.Weights()[layout.Sphere]-want) > 1e-12 {
		t.Errorf("sphere should decay toward 0: expected %f, got %f", want, e.Weights()[layout.Sphere])
	}
}

func TestEngineUnknownPatternWarnsOnce(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	defer slog.SetDefault(prev)

	e, _ := newTestEngine(t, 100)

	tests := []struct {
		patterns []string
		want     int
	}{
		{[]string{"", "", ""}, 1},
		{[]string{"nope", "nope"}, 1},
		{[]string{"", "nope", ""}, 3},
		{[]string{"sphere", "", "sphere", ""}, 2},
	}
	for _, tt := range tests {
		buf.Reset()
		for _, p := range tt.patterns {
			e.Tick(Inputs{Pattern: p})
		}
		if got := strings.Count(buf.String(), "unknown pattern"); got != tt.want {
			t.Errorf("%q: expected %d warnings, got %d", tt.patterns, tt.want, got)
		}
	}
}

func TestEngineRotation(t *testing.T) {
	e, _ := newTestEngine(t, 100)

	e.Tick(Inputs{Pattern: "sphere", Gesture: gesture.State{Rotation: gesture.Rotation{X: 0.4, Y: 0.6}}})
	c := e.Control()
	if math.Abs(c.Pitch-0.2) > 1e-12 {
		t.Errorf("pitch: expected 0.2, got %f", c.Pitch)
	}
	if math.Abs(c.Yaw+0.3) > 1e-12 {
		t.Errorf("yaw: expected -0.3, got %f", c.Yaw)
	}

	// Rotation tracks the input directly, without smoothing
	e.Tick(Inputs{Pattern: "sphere"})
	if c := e.Control(); c.Pitch != 0 || c.Yaw != 0 {
		t.Errorf("rotation should follow input immediately, got pitch=%f yaw=%f", c.Pitch, c.Yaw)
	}
}

func TestEngineOpennessClamped(t *testing.T) {
	e, _ := newTestEngine(t, 100)

	for i := 0; i < 200; i++ {
		e.Tick(Inputs{Pattern: "sphere", Gesture: gesture.State{Openness: 3}})
	}
	if o := e.Control().Openness; o > 1 {
		t.Errorf("openness should stay within [0, 1], got %f", o)
	}
}

func TestEngineBlend(t *testing.T) {
	e, cfg := newTestEngine(t, 200)

	for i := 0; i < 10; i++ {
		e.Tick(Inputs{Pattern: "cube"})
	}

	out := e.Blend(nil)
	if len(out) != cfg.Particles.Count*3 {
		t.Fatalf("expected %d floats, got %d", cfg.Particles.Count*3, len(out))
	}

	w := e.Weights()[layout.Cube]
	cube := e.Layouts().Get(layout.Cube)
	for i := range out {
		if want := float32(w) * cube[i]; math.Abs(float64(out[i]-want)) > 1e-5 {
			t.Fatalf("index %d: expected %f, got %f", i, want, out[i])
		}
	}
}
