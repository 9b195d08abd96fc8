package renderer

import (
	"testing"

	"github.com/pthm-cable/morph/config"
	"github.com/pthm-cable/morph/morph"
)

func TestDiscImage(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}

	img := DiscImage(morph.NewShading(cfg.Shading), 32)
	if b := img.Bounds(); b.Dx() != 32 || b.Dy() != 32 {
		t.Fatalf("expected 32x32, got %v", b)
	}

	if a := img.NRGBAAt(16, 16).A; a != 255 {
		t.Errorf("center should be opaque, got %d", a)
	}
	for _, p := range [][2]int{{0, 0}, {31, 0}, {0, 31}, {31, 31}} {
		if a := img.NRGBAAt(p[0], p[1]).A; a != 0 {
			t.Errorf("corner %v should be transparent, got %d", p, a)
		}
	}

	// Falloff is symmetric
	if l, r := img.NRGBAAt(2, 16).A, img.NRGBAAt(29, 16).A; l != r {
		t.Errorf("expected symmetric falloff, got %d vs %d", l, r)
	}
}
