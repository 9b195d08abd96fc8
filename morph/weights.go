// Package morph blends the layout set into one particle field, driven by
// the selected pattern, the gesture signal and a handful of smoothed controls.
package morph

import (
	"github.com/pthm-cable/morph/gesture"
	"github.com/pthm-cable/morph/layout"
)

// Weights holds one blend weight per shape, indexed by layout.Shape.
// Weights are not normalized; during a crossfade several are non-zero.
type Weights [layout.NumShapes]float64

// OneHot returns weights with shape at 1 and everything else at 0.
func OneHot(shape layout.Shape) Weights {
	var w Weights
	if int(shape) < layout.NumShapes {
		w[shape] = 1
	}
	return w
}

// Get returns the weight of shape.
func (w Weights) Get(shape layout.Shape) float64 {
	return w[shape]
}

// Sum returns the total of all weights.
func (w Weights) Sum() float64 {
	var s float64
	for _, v := range w {
		s += v
	}
	return s
}

// Approach moves cur a fraction k of the way toward target.
func Approach(cur, target, k float64) float64 {
	return cur + (target-cur)*k
}

// Smooth applies Approach element-wise. cur and target must have equal length.
func Smooth(cur, target []float64, k float64) {
	for i := range cur {
		cur[i] = Approach(cur[i], target[i], k)
	}
}

// TargetShape picks the single shape that should dominate. Gesture overrides
// win over the selected pattern. ok is false when no override is active and
// pattern is not a selectable shape.
func TargetShape(g gesture.Type, pattern string) (shape layout.Shape, ok bool) {
	switch g {
	case gesture.Heart:
		return layout.Heart, true
	case gesture.Victory:
		return layout.Text, true
	case gesture.MiddleFinger:
		return layout.Glyph, true
	}
	return layout.ParsePattern(pattern)
}

// Targets returns the one-hot target weights for a gesture and pattern, or
// all zeros if the pattern is unrecognized.
func Targets(g gesture.Type, pattern string) Weights {
	shape, ok := TargetShape(g, pattern)
	if !ok {
		return Weights{}
	}
	return OneHot(shape)
}
