package morph

import (
	"gonum.org/v1/gonum/blas/blas32"

	"github.com/pthm-cable/morph/layout"
)

// Blend writes the unnormalized weighted sum of layouts into dst and returns
// it, growing dst if needed. Layouts whose length does not match n*3 are
// skipped, as are zero weights.
func Blend(dst []float32, n int, layouts [layout.NumShapes]layout.Layout, w Weights) []float32 {
	size := n * 3
	if cap(dst) < size {
		dst = make([]float32, size)
	}
	dst = dst[:size]
	clear(dst)
	if size == 0 {
		return dst
	}

	y := blas32.Vector{N: size, Inc: 1, Data: dst}
	for i, l := range layouts {
		if w[i] == 0 || len(l) != size {
			continue
		}
		blas32.Axpy(float32(w[i]), blas32.Vector{N: size, Inc: 1, Data: l}, y)
	}
	return dst
}
