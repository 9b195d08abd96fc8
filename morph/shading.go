package morph

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/morph/config"
)

// Shading turns a blended base position into a rendered position, point size
// and alpha. It mirrors what a vertex/fragment shader pair would compute.
type Shading struct {
	cfg config.ShadingConfig
}

// NewShading creates a shading model from config.
func NewShading(cfg config.ShadingConfig) Shading {
	return Shading{cfg: cfg}
}

func mix(a, b, t float64) float64 {
	return a + (b-a)*t
}

// smoothstep matches GLSL, including reversed edges.
func smoothstep(edge0, edge1, x float64) float64 {
	t := (x - edge0) / (edge1 - edge0)
	t = math.Max(0, math.Min(1, t))
	return t * t * (3 - 2*t)
}

// Expansion scales the field between MinExpansion and MaxExpansion with
// openness, pulled toward 1 as the special shapes dominate.
func (s Shading) Expansion(openness, special float64) float64 {
	return mix(mix(s.cfg.MinExpansion, s.cfg.MaxExpansion, openness), 1, special)
}

// Pulse is the global breathing factor at time t.
func (s Shading) Pulse(t float64) float64 {
	return 1 + s.cfg.PulseAmplitude*math.Sin(s.cfg.PulseFrequency*t)
}

// Noise is the radial displacement for a particle at base position p.
func (s Shading) Noise(p r3.Vec, t, openness, special float64) float64 {
	f := s.cfg.NoiseFrequency
	n := math.Sin(p.X*f+t) * math.Cos(p.Y*f+t) * s.cfg.NoiseAmplitude * openness
	return n * (1 - special*s.cfg.NoiseSuppression)
}

// Displace computes the final local position of a particle:
// base * expansion * pulse + normalize(base) * noise.
// A base at the origin stays there.
func (s Shading) Displace(base r3.Vec, u Uniforms) r3.Vec {
	special := u.Special()
	k := s.Expansion(u.Openness, special) * s.Pulse(u.Time)
	out := r3.Scale(k, base)

	norm := r3.Norm(base)
	if norm == 0 {
		return out
	}
	n := s.Noise(base, u.Time, u.Openness, special)
	return r3.Add(out, r3.Scale(n/norm, base))
}

// PointSize is the on-screen point size for a particle depth units in front
// of the camera. Points at or behind the camera get size 0.
func (s Shading) PointSize(openness, scale, depth float64) float64 {
	if depth <= 0 {
		return 0
	}
	return (s.cfg.BaseSize*scale + s.cfg.OpennessSize*openness) * (s.cfg.SizeDistanceFactor / depth)
}

// PointAlpha is the per-particle opacity before the disc falloff.
func (s Shading) PointAlpha(openness float64) float64 {
	return s.cfg.BaseAlpha + s.cfg.OpennessAlpha*openness
}

// DiscAlpha is the soft-disc coverage at point-local UV (u, v) in [0,1]².
// Beyond DiscRadius from the center the fragment is discarded (0).
func (s Shading) DiscAlpha(u, v float64) float64 {
	d := math.Hypot(u-0.5, v-0.5)
	if d > s.cfg.DiscRadius {
		return 0
	}
	return smoothstep(s.cfg.DiscRadius, s.cfg.DiscInner, d)
}

// Orientation is the model rotation for a frame: yaw about Y, then pitch about X.
type Orientation struct {
	pitch, yaw r3.Rotation
}

// NewOrientation builds the rotation for the given angles in radians.
func NewOrientation(pitch, yaw float64) Orientation {
	return Orientation{
		pitch: r3.NewRotation(pitch, r3.Vec{X: 1}),
		yaw:   r3.NewRotation(yaw, r3.Vec{Y: 1}),
	}
}

// Rotate applies the orientation to p.
func (o Orientation) Rotate(p r3.Vec) r3.Vec {
	return o.pitch.Rotate(o.yaw.Rotate(p))
}
