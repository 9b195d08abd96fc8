package layout

import (
	"log/slog"
	"math/rand"
	"sync"

	"github.com/pthm-cable/morph/config"
)

// Generator produces layouts from configuration. Procedural shapes take an
// injected rng; label layouts use the generator's own rng.
type Generator struct {
	cfg      *config.Config
	sampling Sampling
	text     Rasterizer
	glyph    Rasterizer

	mu  sync.Mutex // guards rng
	rng *rand.Rand
}

// NewGenerator creates a generator with the default rasterizers: Go Bold for
// text, and for the glyph the configured glyph font, Go Bold, or the built-in
// pictograph, whichever first covers the glyph label.
func NewGenerator(cfg *config.Config, seed int64) *Generator {
	canvas := CanvasFromConfig(cfg)
	g := &Generator{
		cfg:      cfg,
		sampling: SamplingFromConfig(cfg),
		rng:      rand.New(rand.NewSource(seed)),
	}

	bold, err := NewBoldRasterizer(canvas)
	if err != nil {
		slog.Warn("text rasterizer unavailable", "error", err)
		g.text = failingRasterizer{err: err}
	} else {
		g.text = bold
	}
	g.glyph = glyphRasterizer(cfg, canvas, bold)

	return g
}

func glyphRasterizer(cfg *config.Config, canvas Canvas, bold *FontRasterizer) Rasterizer {
	label := cfg.Raster.GlyphLabel
	if path := cfg.Raster.GlyphFont; path != "" {
		fr, err := LoadFontRasterizer(path, canvas)
		switch {
		case err != nil:
			slog.Warn("glyph font unavailable", "path", path, "error", err)
		case fr.Covers(label):
			return fr
		default:
			slog.Warn("glyph font does not cover label", "path", path, "label", label)
		}
	}
	if bold != nil && bold.Covers(label) {
		return bold
	}
	return NewPictographRasterizer(canvas)
}

// SetRasterizers replaces the text and glyph rasterizers. Nil leaves a slot unchanged.
func (g *Generator) SetRasterizers(text, glyph Rasterizer) {
	if text != nil {
		g.text = text
	}
	if glyph != nil {
		g.glyph = glyph
	}
}

// Count returns the number of points in every generated layout.
func (g *Generator) Count() int {
	return g.cfg.Particles.Count
}

// Static generates one of the layouts that never changes after startup.
// Text is dynamic; asking for it here returns the all-zero layout.
func (g *Generator) Static(shape Shape, rng *rand.Rand) Layout {
	n := g.cfg.Particles.Count
	sc := g.cfg.Shapes

	switch shape {
	case Sphere:
		return GenSphere(rng, n, sc.Sphere)
	case Cube:
		return GenCube(rng, n, sc.Cube)
	case Spiral:
		return GenSpiral(n, sc.Spiral)
	case Random:
		return GenRandom(rng, n, sc.Random)
	case Heart:
		return GenHeart(rng, n, sc.Heart)
	case Ring:
		return GenRing(rng, n, sc.Ring)
	case Wave:
		return GenWave(rng, n, sc.Wave)
	case Glyph:
		return g.fromLabel(g.glyph, g.cfg.Raster.GlyphLabel, g.cfg.Raster.GlyphMaxFont, rng)
	default:
		return New(n)
	}
}

// TextLayout generates the text layout for a custom name.
func (g *Generator) TextLayout(name string) Layout {
	return g.Label(g.cfg.TextLabel(name))
}

// Label rasterizes an arbitrary label with the text rasterizer.
func (g *Generator) Label(label string) Layout {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.fromLabel(g.text, label, g.cfg.Raster.TextMaxFont, g.rng)
}

// fromLabel never fails: a rasterizer error or an empty mask degrades to
// the all-zero layout.
func (g *Generator) fromLabel(r Rasterizer, label string, maxFont float64, rng *rand.Rand) Layout {
	n := g.cfg.Particles.Count

	mask, err := r.Rasterize(label, maxFont)
	if err != nil {
		slog.Warn("rasterization failed, using empty layout", "label", label, "error", err)
		return New(n)
	}

	pts := BrightPixels(mask, g.sampling)
	if len(pts) == 0 {
		slog.Warn("label has no bright pixels, using empty layout", "label", label)
		return New(n)
	}
	return FromPoints(pts, rng, n)
}
