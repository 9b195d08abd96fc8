package layout

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/morph/config"
)

// uniform returns a value in [lo, hi).
func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// GenSphere places points on a thick spherical shell.
// The polar angle comes from acos of a uniform value so area density is even.
func GenSphere(rng *rand.Rand, count int, c config.SphereConfig) Layout {
	l := New(count)
	for i := 0; i < count; i++ {
		theta := rng.Float64() * 2 * math.Pi
		phi := math.Acos(rng.Float64()*2 - 1)
		r := uniform(rng, c.MinRadius, c.MaxRadius)
		l.set(i,
			r*math.Sin(phi)*math.Cos(theta),
			r*math.Sin(phi)*math.Sin(theta),
			r*math.Cos(phi),
		)
	}
	return l
}

// GenCube fills a solid cube centered at the origin.
func GenCube(rng *rand.Rand, count int, c config.CubeConfig) Layout {
	h := c.Size / 2
	l := New(count)
	for i := 0; i < count; i++ {
		l.set(i, uniform(rng, -h, h), uniform(rng, -h, h), uniform(rng, -h, h))
	}
	return l
}

// GenSpiral lays points along a conical helix ordered by index. It uses no randomness.
func GenSpiral(count int, c config.SpiralConfig) Layout {
	l := New(count)
	for i := 0; i < count; i++ {
		f := float64(i) / float64(count)
		angle := f * c.Sweep
		r := f * c.MaxRadius
		l.set(i, r*math.Cos(angle), (f-0.5)*c.Height, r*math.Sin(angle))
	}
	return l
}

// GenRandom fills a cube-shaped cloud.
func GenRandom(rng *rand.Rand, count int, c config.RandomConfig) Layout {
	h := c.Size / 2
	l := New(count)
	for i := 0; i < count; i++ {
		l.set(i, uniform(rng, -h, h), uniform(rng, -h, h), uniform(rng, -h, h))
	}
	return l
}

// GenHeart samples the classic parametric heart with a per-point scale and depth jitter.
func GenHeart(rng *rand.Rand, count int, c config.HeartConfig) Layout {
	l := New(count)
	for i := 0; i < count; i++ {
		t := rng.Float64() * 2 * math.Pi
		s := uniform(rng, c.MinScale, c.MaxScale)
		sin := math.Sin(t)
		hx := 16 * sin * sin * sin
		hy := 13*math.Cos(t) - 5*math.Cos(2*t) - 2*math.Cos(3*t) - math.Cos(4*t)
		l.set(i, hx*s, hy*s, uniform(rng, -c.Depth/2, c.Depth/2))
	}
	return l
}

// GenRing places points on the surface of a torus lying in the XY plane.
func GenRing(rng *rand.Rand, count int, c config.RingConfig) Layout {
	l := New(count)
	for i := 0; i < count; i++ {
		theta := rng.Float64() * 2 * math.Pi
		phi := rng.Float64() * 2 * math.Pi
		d := c.MajorRadius + c.TubeRadius*math.Cos(phi)
		l.set(i, d*math.Cos(theta), d*math.Sin(theta), c.TubeRadius*math.Sin(phi))
	}
	return l
}

// GenWave samples a rippled plane y = (sin(fx) + cos(fz)) * amplitude.
func GenWave(rng *rand.Rand, count int, c config.WaveConfig) Layout {
	h := c.Size / 2
	l := New(count)
	for i := 0; i < count; i++ {
		x := uniform(rng, -h, h)
		z := uniform(rng, -h, h)
		y := (math.Sin(x*c.Frequency) + math.Cos(z*c.Frequency)) * c.Amplitude
		l.set(i, x, y, z)
	}
	return l
}
