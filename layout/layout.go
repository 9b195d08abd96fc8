package layout

// Layout is a flat buffer of 3D points: x0, y0, z0, x1, y1, z1, ...
// Layouts are never mutated after construction; a Set swaps whole buffers.
type Layout []float32

// New returns an all-zero layout holding count points.
func New(count int) Layout {
	return make(Layout, count*3)
}

// Count returns the number of points.
func (l Layout) Count() int {
	return len(l) / 3
}

// Point returns the i-th point.
func (l Layout) Point(i int) (x, y, z float32) {
	i3 := i * 3
	return l[i3], l[i3+1], l[i3+2]
}

// set writes the i-th point.
func (l Layout) set(i int, x, y, z float64) {
	i3 := i * 3
	l[i3] = float32(x)
	l[i3+1] = float32(y)
	l[i3+2] = float32(z)
}

// IsZero reports whether every coordinate is zero (the degraded layout).
func (l Layout) IsZero() bool {
	for _, v := range l {
		if v != 0 {
			return false
		}
	}
	return true
}
