package ui

import (
	"image/color"
	"log/slog"
	"strings"
	"sync/atomic"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/morph/layout"
)

// ControlsPanel renders the pattern, color and name controls and writes
// changes to the store.
type ControlsPanel struct {
	renderer *Renderer
	store    *Store
	x, y     int32
	width    int32
	visible  bool

	patterns []layout.Shape
	items    string // raygui toggle group items, ';' separated

	nameBuf   string
	nameEdit  bool
	prompting atomic.Bool
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(store *Store, x, y, width int32) *ControlsPanel {
	patterns := layout.Patterns()
	names := make([]string, len(patterns))
	for i, p := range patterns {
		names[i] = p.String()
	}
	return &ControlsPanel{
		renderer: NewRenderer(),
		store:    store,
		x:        x,
		y:        y,
		width:    width,
		visible:  true,
		patterns: patterns,
		items:    strings.Join(names, ";"),
		nameBuf:  store.Snapshot().Name,
	}
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// IsVisible returns whether the panel is shown.
func (c *ControlsPanel) IsVisible() bool {
	return c.visible
}

// Editing reports whether the name text box has keyboard focus.
func (c *ControlsPanel) Editing() bool {
	return c.nameEdit
}

// Draw renders the panel and applies any user changes to the store.
func (c *ControlsPanel) Draw() {
	if !c.visible {
		return
	}

	r := c.renderer
	padding := r.Theme.Padding
	inner := float32(c.width - padding*2)
	x := float32(c.x + padding)

	r.DrawPanel(c.x, c.y, c.width, 360)
	y := r.DrawSectionHeader(c.x+padding, c.y+padding, "Pattern")

	state := c.store.Snapshot()

	// Pattern toggle group, two buttons per row
	active := int32(-1)
	for i, p := range c.patterns {
		if p.String() == state.Pattern {
			active = int32(i)
		}
	}
	btnH := float32(22)
	selected := gui.ToggleGroup(rl.Rectangle{X: x, Y: float32(y), Width: (inner - 4) / 2, Height: btnH}, toggleRows(c.items), active)
	if selected != active && selected >= 0 && int(selected) < len(c.patterns) {
		c.store.SetPattern(c.patterns[selected].String())
	}
	y += int32(btnH+2)*3 + 8

	// Color
	y = r.DrawSectionHeader(c.x+padding, y, "Color")
	cur := rl.NewColor(state.Color.R, state.Color.G, state.Color.B, 255)
	picked := gui.ColorPicker(rl.Rectangle{X: x, Y: float32(y), Width: inner - 30, Height: 100}, "", cur)
	if picked != cur {
		c.store.SetColor(color.RGBA{R: picked.R, G: picked.G, B: picked.B, A: 255})
	}
	y += 110

	// Custom name
	y = r.DrawSectionHeader(c.x+padding, y, "Name")
	if !c.nameEdit {
		c.nameBuf = state.Name
	}
	if gui.TextBox(rl.Rectangle{X: x, Y: float32(y), Width: inner, Height: 24}, &c.nameBuf, 32, c.nameEdit) {
		if c.nameEdit {
			c.store.SetName(c.nameBuf)
		}
		c.nameEdit = !c.nameEdit
	}
	y += 30

	label := "Ask..."
	if c.prompting.Load() {
		label = "Waiting..."
	}
	if gui.Button(rl.Rectangle{X: x, Y: float32(y), Width: inner, Height: 24}, label) {
		c.promptAsync(state.Name)
	}
}

// promptAsync opens the native name dialog off the frame loop.
func (c *ControlsPanel) promptAsync(current string) {
	if !c.prompting.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer c.prompting.Store(false)
		name, ok, err := PromptName(current)
		if err != nil {
			slog.Warn("name prompt failed", "error", err)
			return
		}
		if ok {
			c.store.SetName(name)
		}
	}()
}

// toggleRows lays raygui toggle items out two per row.
func toggleRows(items string) string {
	parts := strings.Split(items, ";")
	var b strings.Builder
	for i, p := range parts {
		if i > 0 {
			if i%2 == 0 {
				b.WriteByte('\n')
			} else {
				b.WriteByte(';')
			}
		}
		b.WriteString(p)
	}
	return b.String()
}
