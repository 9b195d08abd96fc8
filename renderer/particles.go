package renderer

import (
	"image"
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/morph/camera"
	"github.com/pthm-cable/morph/components"
	"github.com/pthm-cable/morph/morph"
)

// spriteSize is the edge length of the soft-disc sprite texture.
const spriteSize = 32

// DiscImage renders the soft-disc falloff into an image.
func DiscImage(shading morph.Shading, size int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			u := (float64(x) + 0.5) / float64(size)
			v := (float64(y) + 0.5) / float64(size)
			a := shading.DiscAlpha(u, v)
			img.SetNRGBA(x, y, color.NRGBA{R: 255, G: 255, B: 255, A: uint8(a*255 + 0.5)})
		}
	}
	return img
}

// ParticleRenderer draws particle entities as additive soft-disc billboards.
type ParticleRenderer struct {
	sprite rl.Texture2D
	filter *ecs.Filter2[components.Position, components.Shade]
}

// NewParticleRenderer creates a particle renderer. Requires an open window.
func NewParticleRenderer(w *ecs.World, shading morph.Shading) *ParticleRenderer {
	img := rl.NewImageFromImage(DiscImage(shading, spriteSize))
	sprite := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	rl.SetTextureFilter(sprite, rl.FilterBilinear)

	return &ParticleRenderer{
		sprite: sprite,
		filter: ecs.NewFilter2[components.Position, components.Shade](w),
	}
}

// Camera3D converts the field camera to a raylib camera.
func Camera3D(cam *camera.Camera) rl.Camera3D {
	p := cam.Position()
	return rl.Camera3D{
		Position:   rl.NewVector3(float32(p.X), float32(p.Y), float32(p.Z)),
		Target:     rl.NewVector3(0, 0, 0),
		Up:         rl.NewVector3(0, 1, 0),
		Fovy:       float32(cam.Fovy),
		Projection: rl.CameraPerspective,
	}
}

// Draw renders all visible particles tinted with the frame color.
func (r *ParticleRenderer) Draw(cam *camera.Camera, u morph.Uniforms) {
	rc := Camera3D(cam)

	rl.BeginMode3D(rc)
	rl.BeginBlendMode(rl.BlendAdditive)

	query := r.filter.Query()
	for query.Next() {
		pos, shade := query.Get()
		if !shade.Visible || shade.Size <= 0 {
			continue
		}

		p := r3.Vec{X: float64(pos.X), Y: float64(pos.Y), Z: float64(pos.Z)}
		size := float32(cam.PixelsToWorld(float64(shade.Size), cam.Depth(p)))
		tint := rl.NewColor(u.Color.R, u.Color.G, u.Color.B, uint8(clamp01(shade.Alpha)*255))
		rl.DrawBillboard(rc, r.sprite, rl.NewVector3(pos.X, pos.Y, pos.Z), size, tint)
	}

	rl.EndBlendMode()
	rl.EndMode3D()
}

// Unload releases GPU resources.
func (r *ParticleRenderer) Unload() {
	rl.UnloadTexture(r.sprite)
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
