package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/morph/layout"
)

// HUDData holds all the data needed to render the HUD.
type HUDData struct {
	Title    string
	Tick     uint64
	FPS      int32
	Paused   bool
	Gesture  string
	Pattern  string
	Name     string
	Openness float64
	Mix      [layout.NumShapes]float64
	Target   [layout.NumShapes]float64
	Visible  int
}

// HUD renders the heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// DrawStatus renders the title and status lines at the top-left.
func (h *HUD) DrawStatus(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)
	rl.DrawText(
		fmt.Sprintf("Tick: %d | FPS: %d | Particles: %d | Gesture: %s", data.Tick, data.FPS, data.Visible, data.Gesture),
		10, 35, 16, rl.LightGray,
	)
	rl.DrawText(
		fmt.Sprintf("Pattern: %s | Name: %q", data.Pattern, data.Name),
		10, 55, 16, rl.LightGray,
	)
	if data.Paused {
		rl.DrawText("PAUSED", 10, 75, 16, rl.Yellow)
	}
}

// DrawBlend renders the blend weight panel anchored top-right.
// Bars for shapes the engine is heading towards are highlighted.
func (h *HUD) DrawBlend(data HUDData, screenWidth int32) {
	r := h.renderer
	width := int32(240)
	x := screenWidth - width - 10
	y := int32(10)
	height := r.Theme.Padding*2 + r.Theme.LineHeight*2 + int32(layout.NumShapes+1)*(r.Theme.LineHeight+2) + r.Theme.LineHeight
	r.DrawPanel(x, y, width, height)

	cx := x + r.Theme.Padding
	cy := r.DrawSectionHeader(cx, y+r.Theme.Padding, "Blend")
	cy = r.DrawBar(cx, cy, "openness", float32(data.Openness), width-r.Theme.Padding*2, false)
	for _, s := range layout.Shapes() {
		cy = r.DrawBar(cx, cy, s.String(), float32(data.Mix[s]), width-r.Theme.Padding*2, data.Target[s] > 0)
	}

	// Weights are not normalized; a sum above 1 means the field overshoots
	var sum float64
	for _, w := range data.Mix {
		sum += w
	}
	r.DrawLabelValue(cx, cy, "sum", fmt.Sprintf("%.3f", sum))
}

// DrawPerf renders per-phase timing lines below the status block.
func (h *HUD) DrawPerf(lines []string) {
	y := int32(100)
	for _, line := range lines {
		rl.DrawText(line, 10, y, 14, rl.SkyBlue)
		y += 16
	}
}

// DrawControls renders the control legend at the bottom of the screen.
// The last line sits on the bottom edge.
func (h *HUD) DrawControls(screenHeight int32, lines []string) {
	y := screenHeight - 25 - int32(len(lines)-1)*18
	for _, line := range lines {
		rl.DrawText(line, 10, y, 14, rl.Gray)
		y += 18
	}
}
