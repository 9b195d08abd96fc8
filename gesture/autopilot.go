package gesture

import (
	"math"

	"github.com/ojrac/opensimplex-go"

	"github.com/pthm-cable/morph/config"
)

// overrideCycle is the order in which the autopilot shows gesture overrides.
var overrideCycle = []Type{Heart, Victory, MiddleFinger}

// Autopilot synthesizes a plausible gesture signal for demos and headless
// runs: openness and rotation wander with simplex noise, and the last
// GestureHold seconds of every period hold a gesture override.
type Autopilot struct {
	openness opensimplex.Noise // Normalized to [0,1]
	rotation opensimplex.Noise // Roughly [-1,1]
	cfg      config.DemoConfig
}

// NewAutopilot creates an autopilot seeded with seed.
func NewAutopilot(seed int64, cfg config.DemoConfig) *Autopilot {
	return &Autopilot{
		openness: opensimplex.NewNormalized(seed),
		rotation: opensimplex.New(seed + 1),
		cfg:      cfg,
	}
}

// Sample returns the synthetic reading at elapsed time t seconds.
func (a *Autopilot) Sample(t float64) State {
	t = math.Max(t, 0)
	u := t * a.cfg.NoiseSpeed

	s := State{
		Openness: a.openness.Eval2(u, 0),
		Rotation: Rotation{
			X: a.rotation.Eval2(u, 17.3) * a.cfg.RotationRange,
			Y: a.rotation.Eval2(u, -42.1) * a.cfg.RotationRange,
		},
	}

	if a.cfg.GesturePeriod > 0 {
		cycle := math.Floor(t / a.cfg.GesturePeriod)
		phase := t - cycle*a.cfg.GesturePeriod
		if phase >= a.cfg.GesturePeriod-a.cfg.GestureHold {
			s.Type = overrideCycle[int(cycle)%len(overrideCycle)]
		}
	}

	return s.Clamp()
}
