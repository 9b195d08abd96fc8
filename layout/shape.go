// Package layout generates the fixed-size point clouds the particle field morphs between.
package layout

// Shape identifies one of the layouts in a Set.
type Shape uint8

const (
	Sphere Shape = iota
	Cube
	Spiral
	Random
	Heart
	Ring
	Wave
	Glyph
	Text

	NumShapes = int(Text) + 1
)

var shapeNames = [NumShapes]string{
	Sphere: "sphere",
	Cube:   "cube",
	Spiral: "spiral",
	Random: "random",
	Heart:  "heart",
	Ring:   "ring",
	Wave:   "wave",
	Glyph:  "glyph",
	Text:   "text",
}

// patterns are the shapes a user can select directly.
var patterns = []Shape{Sphere, Cube, Spiral, Random, Ring, Wave}

// String returns the shape name.
func (s Shape) String() string {
	if int(s) < NumShapes {
		return shapeNames[s]
	}
	return "unknown"
}

// ParseShape looks up a shape by name.
func ParseShape(name string) (Shape, bool) {
	for i, n := range shapeNames {
		if n == name {
			return Shape(i), true
		}
	}
	return 0, false
}

// ParsePattern looks up a user-selectable shape by name.
// Gesture-only shapes (heart, glyph, text) are not patterns.
func ParsePattern(name string) (Shape, bool) {
	for _, s := range patterns {
		if s.String() == name {
			return s, true
		}
	}
	return 0, false
}

// Patterns returns the user-selectable shapes in display order.
func Patterns() []Shape {
	out := make([]Shape, len(patterns))
	copy(out, patterns)
	return out
}

// Shapes returns every shape in index order.
func Shapes() []Shape {
	out := make([]Shape, NumShapes)
	for i := range out {
		out[i] = Shape(i)
	}
	return out
}
