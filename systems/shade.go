package systems

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/morph/camera"
	"github.com/pthm-cable/morph/components"
	"github.com/pthm-cable/morph/morph"
)

// SpawnParticles creates one entity per layout slot.
func SpawnParticles(w *ecs.World, count int) {
	mapper := ecs.NewMap3[components.Slot, components.Position, components.Shade](w)
	for i := 0; i < count; i++ {
		slot := components.Slot{Index: int32(i)}
		pos := components.Position{}
		shade := components.Shade{}
		mapper.NewEntity(&slot, &pos, &shade)
	}
}

// ShadeSystem applies the shading model to every particle entity.
type ShadeSystem struct {
	filter  *ecs.Filter3[components.Slot, components.Position, components.Shade]
	shading morph.Shading
}

// NewShadeSystem creates a new shade system.
func NewShadeSystem(w *ecs.World, shading morph.Shading) *ShadeSystem {
	return &ShadeSystem{
		filter:  ecs.NewFilter3[components.Slot, components.Position, components.Shade](w),
		shading: shading,
	}
}

// Update recomputes world position, size and alpha for all particles from the
// blended base positions. It returns the number of particles in front of the camera.
func (s *ShadeSystem) Update(u morph.Uniforms, blended []float32, cam *camera.Camera) int {
	orient := morph.NewOrientation(u.Pitch, u.Yaw)
	alpha := float32(s.shading.PointAlpha(u.Openness))
	visible := 0

	query := s.filter.Query()
	for query.Next() {
		slot, pos, shade := query.Get()

		i3 := int(slot.Index) * 3
		if i3+2 >= len(blended) {
			shade.Visible = false
			continue
		}
		base := r3.Vec{
			X: float64(blended[i3]),
			Y: float64(blended[i3+1]),
			Z: float64(blended[i3+2]),
		}

		p := orient.Rotate(s.shading.Displace(base, u))
		pos.X, pos.Y, pos.Z = float32(p.X), float32(p.Y), float32(p.Z)

		depth := cam.Depth(p)
		shade.Visible = depth > 0
		shade.Size = float32(s.shading.PointSize(u.Openness, u.Scale, depth))
		shade.Alpha = alpha
		if shade.Visible {
			visible++
		}
	}
	return visible
}
