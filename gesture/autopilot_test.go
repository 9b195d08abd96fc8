package gesture

import (
	"testing"

	"github.com/pthm-cable/morph/config"
)

func TestAutopilot(t *testing.T) {
	cfg := config.DemoConfig{NoiseSpeed: 0.15, GesturePeriod: 12, GestureHold: 4, RotationRange: 1}
	a := NewAutopilot(7, cfg)

	for i := 0; i < 600; i++ {
		tm := float64(i) * 0.1
		s := a.Sample(tm)
		if s.Openness < 0 || s.Openness > 1 {
			t.Fatalf("t=%f: openness %f outside [0, 1]", tm, s.Openness)
		}
		if s.Rotation.X < -1.5 || s.Rotation.X > 1.5 || s.Rotation.Y < -1.5 || s.Rotation.Y > 1.5 {
			t.Fatalf("t=%f: rotation %+v out of range", tm, s.Rotation)
		}
	}

	// Free-running for the first part of each period, then an override
	schedule := []struct {
		t    float64
		want Type
	}{
		{0, None},
		{7.9, None},
		{8.5, Heart},
		{11.9, Heart},
		{12.5, None},
		{20.5, Victory},
		{32.5, MiddleFinger},
		{44.5, Heart},
	}
	for _, tt := range schedule {
		if got := a.Sample(tt.t).Type; got != tt.want {
			t.Errorf("t=%v: expected %v, got %v", tt.t, tt.want, got)
		}
	}

	// Same seed, same signal
	b := NewAutopilot(7, cfg)
	if a.Sample(3.3) != b.Sample(3.3) {
		t.Error("autopilot should be deterministic for a seed")
	}
}
