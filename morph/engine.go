package morph

import (
	"image/color"
	"log/slog"

	"github.com/pthm-cable/morph/config"
	"github.com/pthm-cable/morph/gesture"
	"github.com/pthm-cable/morph/layout"
)

// Inputs are the external controls read once per tick.
type Inputs struct {
	Time    float64 // Elapsed seconds from the host clock
	Pattern string
	Color   color.RGBA
	Gesture gesture.State
}

// ControlState holds the smoothed and pass-through controls.
type ControlState struct {
	Time     float64
	Openness float64
	Color    color.RGBA
	Pitch    float64 // Rotation about X in radians
	Yaw      float64 // Rotation about Y in radians
}

// Uniforms is everything the render stage needs for one frame besides the
// layout buffers.
type Uniforms struct {
	Time     float64
	Openness float64
	Scale    float64
	Color    color.RGBA
	Mix      Weights
	Pitch    float64
	Yaw      float64
}

// Special is the combined weight of the heart and text shapes, which are
// held at natural size and kept legible.
func (u Uniforms) Special() float64 {
	return u.Mix[layout.Heart] + u.Mix[layout.Text]
}

// Engine advances blend weights and controls once per tick. It is not safe
// for concurrent use; the frame loop owns it.
type Engine struct {
	cfg     config.MorphConfig
	layouts *layout.Set

	control ControlState
	weights Weights
	target  Weights
	ticks   uint64

	// lastUnknown suppresses repeated warnings for the same bad pattern.
	// It is only meaningful while unknownSet is true.
	lastUnknown string
	unknownSet  bool
}

// NewEngine creates an engine with all weights at zero.
func NewEngine(cfg *config.Config, layouts *layout.Set) *Engine {
	return &Engine{
		cfg:     cfg.Morph,
		layouts: layouts,
		control: ControlState{
			Openness: cfg.Morph.InitialOpenness,
			Color:    cfg.Derived.DefaultColor,
		},
	}
}

// Tick advances the engine by one frame.
func (e *Engine) Tick(in Inputs) {
	e.control.Time = in.Time
	e.control.Color = in.Color

	g := in.Gesture.Clamp()
	e.control.Openness = Approach(e.control.Openness, g.Openness, e.cfg.OpennessSmoothing)

	shape, ok := TargetShape(g.Type, in.Pattern)
	if ok {
		e.target = OneHot(shape)
		e.unknownSet = false
	} else {
		e.target = Weights{}
		if !e.unknownSet || in.Pattern != e.lastUnknown {
			slog.Warn("unknown pattern, fading all shapes out", "pattern", in.Pattern)
			e.lastUnknown = in.Pattern
			e.unknownSet = true
		}
	}
	Smooth(e.weights[:], e.target[:], e.cfg.BlendSmoothing)

	e.control.Pitch = g.Rotation.X * e.cfg.RotationScale
	e.control.Yaw = -g.Rotation.Y * e.cfg.RotationScale

	e.ticks++
}

// Uniforms returns the per-frame values for the render stage.
func (e *Engine) Uniforms() Uniforms {
	return Uniforms{
		Time:     e.control.Time,
		Openness: e.control.Openness,
		Scale:    e.cfg.Scale,
		Color:    e.control.Color,
		Mix:      e.weights,
		Pitch:    e.control.Pitch,
		Yaw:      e.control.Yaw,
	}
}

// Control returns the current control state.
func (e *Engine) Control() ControlState { return e.control }

// Weights returns the current blend weights.
func (e *Engine) Weights() Weights { return e.weights }

// Target returns the target weights chosen on the last tick.
func (e *Engine) Target() Weights { return e.target }

// Ticks returns the number of ticks processed.
func (e *Engine) Ticks() uint64 { return e.ticks }

// Layouts returns the layout set the engine blends.
func (e *Engine) Layouts() *layout.Set { return e.layouts }

// Blend writes the blended base positions for the current weights into dst.
func (e *Engine) Blend(dst []float32) []float32 {
	return Blend(dst, e.layouts.Count(), e.layouts.All(), e.weights)
}
