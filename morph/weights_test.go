package morph

import (
	"math"
	"testing"

	"github.com/pthm-cable/morph/gesture"
	"github.com/pthm-cable/morph/layout"
)

func TestTargets(t *testing.T) {
	tests := []struct {
		name    string
		gesture gesture.Type
		pattern string
		want    layout.Shape
		zero    bool
	}{
		{"pattern sphere", gesture.None, "sphere", layout.Sphere, false},
		{"pattern wave", gesture.None, "wave", layout.Wave, false},
		{"other gesture uses pattern", gesture.Other, "ring", layout.Ring, false},
		{"heart overrides cube", gesture.Heart, "cube", layout.Heart, false},
		{"victory selects text", gesture.Victory, "sphere", layout.Text, false},
		{"middle finger selects glyph", gesture.MiddleFinger, "spiral", layout.Glyph, false},
		{"gesture overrides unknown pattern", gesture.Heart, "bogus", layout.Heart, false},
		{"unknown pattern", gesture.None, "bogus", 0, true},
		{"gesture-only shape is not a pattern", gesture.None, "heart", 0, true},
		{"empty pattern", gesture.None, "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := Targets(tt.gesture, tt.pattern)
			if tt.zero {
				if w != (Weights{}) {
					t.Errorf("expected all-zero target, got %v", w)
				}
				return
			}
			if w != OneHot(tt.want) {
				t.Errorf("expected one-hot %s, got %v", tt.want, w)
			}
			for i, v := range w {
				if v != 0 && v != 1 {
					t.Errorf("target %d = %f is fractional", i, v)
				}
			}
		})
	}
}

func TestOneHot(t *testing.T) {
	w := OneHot(layout.Ring)
	if w.Get(layout.Ring) != 1 || w.Sum() != 1 {
		t.Errorf("expected ring=1 and sum 1, got %v", w)
	}
	if OneHot(layout.Shape(layout.NumShapes)) != (Weights{}) {
		t.Error("out of range shape should give zero weights")
	}
}

func TestSmoothConvergence(t *testing.T) {
	const k = 0.08
	var w Weights
	target := OneHot(layout.Cube)

	for n := 1; n <= 200; n++ {
		Smooth(w[:], target[:], k)

		want := 1 - math.Pow(1-k, float64(n))
		if math.Abs(w[layout.Cube]-want) > 1e-9 {
			t.Fatalf("tick %d: expected %f, got %f", n, want, w[layout.Cube])
		}
		if w[layout.Cube] >= 1 {
			t.Fatalf("tick %d: weight reached 1", n)
		}
		for _, s := range layout.Shapes() {
			if s != layout.Cube && w[s] != 0 {
				t.Fatalf("tick %d: %s should stay 0, got %f", n, s, w[s])
			}
		}
	}
}

func TestApproach(t *testing.T) {
	if got := Approach(0, 1, 0.1); math.Abs(got-0.1) > 1e-12 {
		t.Errorf("expected 0.1, got %f", got)
	}
	if got := Approach(1, 0, 0.08); math.Abs(got-0.92) > 1e-12 {
		t.Errorf("expected 0.92, got %f", got)
	}
	if got := Approach(0.5, 0.5, 0.3); got != 0.5 {
		t.Errorf("at target should stay, got %f", got)
	}
}
