package layout

import (
	"image"
	"math/rand"

	"github.com/pthm-cable/morph/config"
)

// Sampling controls how a mask is turned into points.
type Sampling struct {
	Stride      int     // Pixel step on both axes
	Threshold   uint8   // Pixels strictly brighter than this are kept
	WorldWidth  float64 // Mask width maps to this many world units
	WorldHeight float64 // Mask height maps to this many world units
}

// SamplingFromConfig builds sampling parameters from raster settings.
func SamplingFromConfig(cfg *config.Config) Sampling {
	return Sampling{
		Stride:      cfg.Raster.Stride,
		Threshold:   cfg.Raster.Threshold,
		WorldWidth:  cfg.Raster.WorldWidth,
		WorldHeight: cfg.Raster.WorldHeight,
	}
}

// BrightPixels collects the world-space XY coordinates of sampled ink pixels.
// The canvas center maps to the origin and canvas y grows downward.
func BrightPixels(mask *image.Gray, s Sampling) []float32 {
	b := mask.Bounds()
	w, h := b.Dx(), b.Dy()
	stride := s.Stride
	if stride < 1 {
		stride = 1
	}

	var pts []float32
	for y := 0; y < h; y += stride {
		for x := 0; x < w; x += stride {
			if mask.GrayAt(b.Min.X+x, b.Min.Y+y).Y <= s.Threshold {
				continue
			}
			px := (float64(x)/float64(w) - 0.5) * s.WorldWidth
			py := -(float64(y)/float64(h) - 0.5) * s.WorldHeight
			pts = append(pts, float32(px), float32(py))
		}
	}
	return pts
}

// FromMask builds a layout from the mask's bright pixels. See FromPoints.
func FromMask(mask *image.Gray, rng *rand.Rand, count int, s Sampling) Layout {
	if mask == nil {
		return New(count)
	}
	return FromPoints(BrightPixels(mask, s), rng, count)
}

// FromPoints builds a layout by drawing count points uniformly with
// replacement from pts (flat XY pairs), all at z = 0.
// An empty pts yields the all-zero layout.
func FromPoints(pts []float32, rng *rand.Rand, count int) Layout {
	l := New(count)
	n := len(pts) / 2
	if n == 0 {
		return l
	}

	for i := 0; i < count; i++ {
		j := rng.Intn(n) * 2
		i3 := i * 3
		l[i3] = pts[j]
		l[i3+1] = pts[j+1]
	}
	return l
}
