package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/morph/gesture"
	"github.com/pthm-cable/morph/layout"
)

// opennessRate is how far the Up/Down keys move target openness per frame.
const opennessRate = 0.02

// inputState is the gesture built from keyboard and mouse.
type inputState struct {
	gesture  gesture.Type
	openness float64
	rotation gesture.Rotation
}

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	g.handleCameraInput()

	// The name box owns the keyboard while editing
	if g.controls.Editing() {
		return
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		g.controls.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyP) {
		g.cyclePattern()
	}
	g.overlays.HandleKeyPress(rl.GetKeyPressed())

	if g.autopilot == nil && !g.external {
		g.handleGestureInput()
		g.latch.Publish(gesture.State{
			Type:     g.input.gesture,
			Openness: g.input.openness,
			Rotation: g.input.rotation,
		})
	}
}

// handleGestureInput maps keys to gestures and right-drag to hand rotation.
func (g *Game) handleGestureInput() {
	switch {
	case rl.IsKeyPressed(rl.KeyOne):
		g.input.gesture = gesture.Heart
	case rl.IsKeyPressed(rl.KeyTwo):
		g.input.gesture = gesture.Victory
	case rl.IsKeyPressed(rl.KeyThree):
		g.input.gesture = gesture.MiddleFinger
	case rl.IsKeyPressed(rl.KeyZero):
		g.input.gesture = gesture.None
	}

	if rl.IsKeyDown(rl.KeyUp) {
		g.input.openness = min(1, g.input.openness+opennessRate)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		g.input.openness = max(0, g.input.openness-opennessRate)
	}
	if rl.IsKeyPressed(rl.KeyO) {
		if g.input.openness < 0.5 {
			g.input.openness = 1
		} else {
			g.input.openness = 0
		}
	}

	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		m := rl.GetMousePosition()
		r := g.cfg.Demo.RotationRange
		nx := float64(m.X)/g.camera.ViewportW*2 - 1
		ny := float64(m.Y)/g.camera.ViewportH*2 - 1
		g.input.rotation = gesture.Rotation{X: ny * r, Y: nx * r}
	}
	if rl.IsKeyPressed(rl.KeyR) {
		g.input.rotation = gesture.Rotation{}
	}
}

// cyclePattern selects the next named pattern.
func (g *Game) cyclePattern() {
	patterns := layout.Patterns()
	cur, _ := layout.ParsePattern(g.store.Snapshot().Pattern)
	next := patterns[0]
	for i, p := range patterns {
		if p == cur {
			next = patterns[(i+1)%len(patterns)]
			break
		}
	}
	g.store.SetPattern(next.String())
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float64(rl.GetScreenWidth())
	h := float64(rl.GetScreenHeight())
	if w == g.camera.ViewportW && h == g.camera.ViewportH {
		return
	}
	g.camera.Resize(w, h)
}

// handleCameraInput processes zoom controls.
func (g *Game) handleCameraInput() {
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		g.camera.ZoomBy(1 + float64(wheel)*0.1)
	}

	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		g.camera.ZoomBy(1.25)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		g.camera.ZoomBy(0.8)
	}

	if rl.IsKeyPressed(rl.KeyHome) {
		g.camera.Reset()
	}
}
