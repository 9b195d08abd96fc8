package systems

import (
	"math"
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/morph/camera"
	"github.com/pthm-cable/morph/components"
	"github.com/pthm-cable/morph/config"
	"github.com/pthm-cable/morph/morph"
)

type shaded struct {
	pos   components.Position
	shade components.Shade
}

// collect reads back every particle keyed by slot index.
func collect(w *ecs.World) map[int32]shaded {
	out := make(map[int32]shaded)
	filter := ecs.NewFilter3[components.Slot, components.Position, components.Shade](w)
	query := filter.Query()
	for query.Next() {
		slot, pos, shade := query.Get()
		out[slot.Index] = shaded{pos: *pos, shade: *shade}
	}
	return out
}

func TestSpawnParticles(t *testing.T) {
	w := ecs.NewWorld()
	SpawnParticles(w, 25)

	got := collect(w)
	if len(got) != 25 {
		t.Fatalf("expected 25 particles, got %d", len(got))
	}
	for i := int32(0); i < 25; i++ {
		if _, ok := got[i]; !ok {
			t.Errorf("missing slot %d", i)
		}
	}
}

func TestShadeSystemUpdate(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	shading := morph.NewShading(cfg.Shading)

	w := ecs.NewWorld()
	SpawnParticles(w, 3)
	sys := NewShadeSystem(w, shading)
	cam := camera.New(1280, 720, 8, 75)

	// Slot 0 in front, slot 1 behind the camera once contracted, slot 2 past the buffer
	blended := []float32{
		2, 0, 0,
		0, 0, 40,
	}
	u := morph.Uniforms{Openness: 0, Scale: 1}

	visible := sys.Update(u, blended, cam)
	if visible != 1 {
		t.Errorf("expected 1 visible particle, got %d", visible)
	}

	got := collect(w)

	p0 := got[0]
	if math.Abs(float64(p0.pos.X)-0.6) > 1e-6 || p0.pos.Y != 0 || p0.pos.Z != 0 {
		t.Errorf("slot 0: expected (0.6, 0, 0), got %+v", p0.pos)
	}
	if !p0.shade.Visible {
		t.Error("slot 0 should be visible")
	}
	// (4*1 + 2*0) * 10/8
	if math.Abs(float64(p0.shade.Size)-5) > 1e-5 {
		t.Errorf("slot 0: expected size 5, got %f", p0.shade.Size)
	}
	if math.Abs(float64(p0.shade.Alpha)-0.6) > 1e-6 {
		t.Errorf("slot 0: expected alpha 0.6, got %f", p0.shade.Alpha)
	}

	p1 := got[1]
	if math.Abs(float64(p1.pos.Z)-12) > 1e-5 {
		t.Errorf("slot 1: expected z 12, got %f", p1.pos.Z)
	}
	if p1.shade.Visible || p1.shade.Size != 0 {
		t.Errorf("slot 1 behind the camera should be hidden with size 0, got %+v", p1.shade)
	}

	if got[2].shade.Visible {
		t.Error("slot 2 has no blended position and should be hidden")
	}
}

func TestShadeSystemRotation(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}

	w := ecs.NewWorld()
	SpawnParticles(w, 1)
	sys := NewShadeSystem(w, morph.NewShading(cfg.Shading))
	cam := camera.New(1280, 720, 8, 75)

	// Quarter turn of yaw carries +X to -Z
	u := morph.Uniforms{Scale: 1, Yaw: math.Pi / 2}
	sys.Update(u, []float32{2, 0, 0}, cam)

	p := collect(w)[0].pos
	if math.Abs(float64(p.X)) > 1e-5 || math.Abs(float64(p.Z)+0.6) > 1e-5 {
		t.Errorf("expected (0, 0, -0.6), got %+v", p)
	}
}

func TestShadeSystemSeesLaterSpawns(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}

	w := ecs.NewWorld()
	sys := NewShadeSystem(w, morph.NewShading(cfg.Shading))
	cam := camera.New(1280, 720, 8, 75)
	u := morph.Uniforms{Scale: 1}
	blended := []float32{0, 0, 0, 1, 0, 0, 0, 1, 0, 1, 1, 0}

	if n := sys.Update(u, blended, cam); n != 0 {
		t.Errorf("empty world: expected 0 visible, got %d", n)
	}

	SpawnParticles(w, 2)
	if n := sys.Update(u, blended, cam); n != 2 {
		t.Errorf("after first spawn: expected 2 visible, got %d", n)
	}

	SpawnParticles(w, 2)
	if n := sys.Update(u, blended, cam); n != 4 {
		t.Errorf("after second spawn: expected 4 visible, got %d", n)
	}
}
