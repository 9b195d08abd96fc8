package layout

import (
	"errors"
	"fmt"
	"image"
	"math"
	"os"
	"strings"
	"unicode"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/pthm-cable/morph/config"
)

// ErrNoSurface is returned when a rasterizer cannot produce a drawing surface.
var ErrNoSurface = errors.New("layout: no drawing surface")

// Rasterizer renders a label onto a grayscale occupancy mask.
// White pixels are ink, black pixels are background.
type Rasterizer interface {
	Rasterize(label string, maxFontSize float64) (*image.Gray, error)
}

// Canvas describes the off-screen bitmap labels are drawn onto.
type Canvas struct {
	Width, Height int
	FillRatio     float64 // Widest line may occupy this fraction of Width
	LineSpacing   float64 // Line advance as a multiple of font size
}

// CanvasFromConfig builds the canvas description from raster settings.
func CanvasFromConfig(cfg *config.Config) Canvas {
	return Canvas{
		Width:       cfg.Derived.CanvasWidth,
		Height:      cfg.Derived.CanvasHeight,
		FillRatio:   cfg.Raster.FillRatio,
		LineSpacing: cfg.Raster.LineSpacing,
	}
}

func (c Canvas) surface() (*image.Gray, error) {
	if c.Width <= 0 || c.Height <= 0 {
		return nil, fmt.Errorf("%w: canvas %dx%d", ErrNoSurface, c.Width, c.Height)
	}
	return image.NewGray(image.Rect(0, 0, c.Width, c.Height)), nil
}

// FontRasterizer draws labels with an OpenType font, bold weight by default.
type FontRasterizer struct {
	font   *opentype.Font
	canvas Canvas
}

// NewFontRasterizer parses the given font data.
func NewFontRasterizer(ttf []byte, canvas Canvas) (*FontRasterizer, error) {
	f, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("parsing font: %w", err)
	}
	return &FontRasterizer{font: f, canvas: canvas}, nil
}

// NewBoldRasterizer uses the embedded Go Bold font.
func NewBoldRasterizer(canvas Canvas) (*FontRasterizer, error) {
	return NewFontRasterizer(gobold.TTF, canvas)
}

// LoadFontRasterizer reads a font file from disk.
func LoadFontRasterizer(path string, canvas Canvas) (*FontRasterizer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading font file: %w", err)
	}
	return NewFontRasterizer(data, canvas)
}

// Covers reports whether the font has a glyph for every visible rune of label.
func (r *FontRasterizer) Covers(label string) bool {
	var buf sfnt.Buffer
	for _, ru := range label {
		if !unicode.IsSpace(ru) && !r.hasGlyph(&buf, ru) {
			return false
		}
	}
	return true
}

func (r *FontRasterizer) face(size float64) (font.Face, error) {
	face, err := opentype.NewFace(r.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("creating face at %.0fpx: %w", size, err)
	}
	return face, nil
}

// Rasterize draws each line of label horizontally centered, with the block
// vertically centered. The font shrinks from maxFontSize until the widest
// line fits within FillRatio of the canvas width.
func (r *FontRasterizer) Rasterize(label string, maxFontSize float64) (*image.Gray, error) {
	img, err := r.canvas.surface()
	if err != nil {
		return nil, err
	}

	lines := strings.Split(label, "\n")

	size := maxFontSize
	face, err := r.face(size)
	if err != nil {
		return nil, err
	}

	limit := float64(r.canvas.Width) * r.canvas.FillRatio
	if widest := r.widestLine(face, lines); widest > limit {
		face.Close()
		size = math.Max(1, math.Floor(size*limit/widest))
		if face, err = r.face(size); err != nil {
			return nil, err
		}
	}
	defer face.Close()

	m := face.Metrics()
	// Offset from the vertical middle of the em box to the baseline.
	middle := float64(m.Ascent-m.Descent) / 128

	h := float64(r.canvas.Height)
	lineHeight := size * r.canvas.LineSpacing
	startY := (h-float64(len(lines))*lineHeight)/2 + lineHeight/2

	d := &font.Drawer{Dst: img, Src: image.White, Face: face}
	for i, line := range lines {
		y := h / 2
		if len(lines) > 1 {
			y = startY + float64(i)*lineHeight
		}
		w := fixedToFloat(r.lineAdvance(face, line, nil))
		x := (float64(r.canvas.Width) - w) / 2
		d.Dot = fixed.Point26_6{X: floatToFixed(x), Y: floatToFixed(y + middle)}
		r.lineAdvance(face, line, d)
	}

	return img, nil
}

func (r *FontRasterizer) widestLine(face font.Face, lines []string) float64 {
	var widest float64
	for _, line := range lines {
		if w := fixedToFloat(r.lineAdvance(face, line, nil)); w > widest {
			widest = w
		}
	}
	return widest
}

// lineAdvance measures line and, when d is non-nil, draws it at d.Dot.
// Whitespace only advances the pen and runes the font has no glyph for are
// skipped, so neither leaves ink.
func (r *FontRasterizer) lineAdvance(face font.Face, line string, d *font.Drawer) fixed.Int26_6 {
	var buf sfnt.Buffer
	space, _ := face.GlyphAdvance(' ')

	var total fixed.Int26_6
	prev := rune(-1)
	for _, ru := range line {
		switch {
		case unicode.IsSpace(ru):
			if d != nil {
				d.Dot.X += space
			}
			total += space
			prev = -1
		case r.hasGlyph(&buf, ru):
			var kern fixed.Int26_6
			if prev >= 0 {
				kern = face.Kern(prev, ru)
			}
			adv, _ := face.GlyphAdvance(ru)
			if d != nil {
				d.Dot.X += kern
				d.DrawString(string(ru))
			}
			total += kern + adv
			prev = ru
		}
	}
	return total
}

func (r *FontRasterizer) hasGlyph(buf *sfnt.Buffer, ru rune) bool {
	idx, err := r.font.GlyphIndex(buf, ru)
	return err == nil && idx != 0
}

func fixedToFloat(v fixed.Int26_6) float64 { return float64(v) / 64 }
func floatToFixed(v float64) fixed.Int26_6 { return fixed.Int26_6(math.Round(v * 64)) }

// PictographRasterizer draws the built-in hand pictograph used for the glyph
// layout when no available font covers the glyph label. The label is ignored;
// maxFontSize sets the pictograph height in pixels.
type PictographRasterizer struct {
	canvas Canvas
}

// NewPictographRasterizer creates a pictograph rasterizer for the canvas.
func NewPictographRasterizer(canvas Canvas) *PictographRasterizer {
	return &PictographRasterizer{canvas: canvas}
}

// handParts are rounded rectangles in a unit box (x right, y down, height 1).
// A raised middle finger over a fist of folded fingers, with a thumb across.
var handParts = []struct {
	x0, y0, x1, y1, r float64
}{
	{0.38, 0.00, 0.58, 0.62, 0.10}, // middle finger
	{0.16, 0.40, 0.38, 0.66, 0.09}, // index, folded
	{0.58, 0.42, 0.76, 0.68, 0.08}, // ring, folded
	{0.76, 0.48, 0.90, 0.72, 0.07}, // pinky, folded
	{0.14, 0.58, 0.90, 1.00, 0.14}, // palm
	{0.02, 0.60, 0.48, 0.78, 0.09}, // thumb
}

// Rasterize fills the pictograph centered on the canvas.
func (p *PictographRasterizer) Rasterize(_ string, maxFontSize float64) (*image.Gray, error) {
	img, err := p.canvas.surface()
	if err != nil {
		return nil, err
	}

	size := math.Min(maxFontSize, float64(p.canvas.Height)*p.canvas.FillRatio)
	if size <= 0 {
		return img, nil
	}
	ox := (float64(p.canvas.Width) - size) / 2
	oy := (float64(p.canvas.Height) - size) / 2

	z := vector.NewRasterizer(p.canvas.Width, p.canvas.Height)
	for _, part := range handParts {
		roundedRect(z,
			ox+part.x0*size, oy+part.y0*size,
			ox+part.x1*size, oy+part.y1*size,
			part.r*size,
		)
	}
	z.Draw(img, img.Bounds(), image.White, image.Point{})

	return img, nil
}

func roundedRect(z *vector.Rasterizer, x0, y0, x1, y1, r float64) {
	r = math.Min(r, math.Min((x1-x0)/2, (y1-y0)/2))
	f := func(v float64) float32 { return float32(v) }

	z.MoveTo(f(x0+r), f(y0))
	z.LineTo(f(x1-r), f(y0))
	z.QuadTo(f(x1), f(y0), f(x1), f(y0+r))
	z.LineTo(f(x1), f(y1-r))
	z.QuadTo(f(x1), f(y1), f(x1-r), f(y1))
	z.LineTo(f(x0+r), f(y1))
	z.QuadTo(f(x0), f(y1), f(x0), f(y1-r))
	z.LineTo(f(x0), f(y0+r))
	z.QuadTo(f(x0), f(y0), f(x0+r), f(y0))
	z.ClosePath()
}

// failingRasterizer always reports a missing surface.
type failingRasterizer struct{ err error }

func (f failingRasterizer) Rasterize(string, float64) (*image.Gray, error) {
	return nil, f.err
}
