package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/morph/morph"
	"github.com/pthm-cable/morph/renderer"
	"github.com/pthm-cable/morph/ui"
)

const inputLegend = "[1] heart  [2] victory  [3] middle finger  [0] none  [Up/Down/O] openness  " +
	"[RMB] rotate  [P] pattern  [Tab] controls  [Space] pause"

// Update handles input and advances one tick on the window clock.
func (g *Game) Update() {
	g.handleInput()

	if g.paused {
		return
	}
	g.clock = rl.GetTime()
	g.step(g.clock)
}

// Draw renders the particle field and UI.
func (g *Game) Draw() {
	g.profiler.RecordFrame()

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	g.DrawScene()
	g.drawHUD()
	g.controls.Draw()

	rl.EndDrawing()
}

// DrawScene renders the particles and debug guides without the UI.
// Callers own the surrounding BeginDrawing or BeginTextureMode.
func (g *Game) DrawScene() {
	u := g.engine.Uniforms()
	g.particles.Draw(g.camera, u)

	if g.overlays.IsEnabled(ui.OverlayAxes) || g.overlays.IsEnabled(ui.OverlayBounds) {
		g.drawGuides(u)
	}
}

// drawGuides renders the debug geometry rotated with the model.
func (g *Game) drawGuides(u morph.Uniforms) {
	orient := morph.NewOrientation(u.Pitch, u.Yaw)
	line := func(a, b r3.Vec, c rl.Color) {
		a, b = orient.Rotate(a), orient.Rotate(b)
		rl.DrawLine3D(
			rl.NewVector3(float32(a.X), float32(a.Y), float32(a.Z)),
			rl.NewVector3(float32(b.X), float32(b.Y), float32(b.Z)),
			c,
		)
	}

	rl.BeginMode3D(renderer.Camera3D(g.camera))

	if g.overlays.IsEnabled(ui.OverlayAxes) {
		line(r3.Vec{}, r3.Vec{X: 2}, rl.Red)
		line(r3.Vec{}, r3.Vec{Y: 2}, rl.Green)
		line(r3.Vec{}, r3.Vec{Z: 2}, rl.Blue)
	}

	if g.overlays.IsEnabled(ui.OverlayBounds) {
		hw := g.cfg.Raster.WorldWidth / 2
		hh := g.cfg.Raster.WorldHeight / 2
		corners := []r3.Vec{{X: -hw, Y: -hh}, {X: hw, Y: -hh}, {X: hw, Y: hh}, {X: -hw, Y: hh}}
		for i := range corners {
			line(corners[i], corners[(i+1)%len(corners)], rl.DarkGray)
		}
	}

	rl.EndMode3D()
}

// drawHUD renders the enabled HUD overlays.
func (g *Game) drawHUD() {
	gs, _ := g.latch.Snapshot()
	st := g.store.Snapshot()
	u := g.engine.Uniforms()

	data := ui.HUDData{
		Title:    "Particle Morph",
		Tick:     g.tick,
		FPS:      rl.GetFPS(),
		Paused:   g.paused,
		Gesture:  gs.Type.String(),
		Pattern:  st.Pattern,
		Name:     st.Name,
		Openness: u.Openness,
		Mix:      u.Mix,
		Target:   g.engine.Target(),
		Visible:  g.visible,
	}

	screenW := int32(rl.GetScreenWidth())
	screenH := int32(rl.GetScreenHeight())

	for _, id := range g.overlays.EnabledOverlays() {
		switch id {
		case ui.OverlayStatus:
			g.hud.DrawStatus(data)
		case ui.OverlayBlend:
			g.hud.DrawBlend(data, screenW)
		case ui.OverlayPerf:
			g.hud.DrawPerf(g.profiler.Window().Lines())
		case ui.OverlayLegend:
			g.hud.DrawControls(screenH, append([]string{inputLegend}, g.overlays.Legend()...))
		}
	}
}
