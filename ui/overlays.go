package ui

import (
	"fmt"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// OverlayID uniquely identifies an overlay.
type OverlayID string

// Standard overlay IDs.
const (
	OverlayStatus OverlayID = "status"
	OverlayBlend  OverlayID = "blend"
	OverlayPerf   OverlayID = "perf"
	OverlayAxes   OverlayID = "axes"
	OverlayBounds OverlayID = "bounds"
	OverlayLegend OverlayID = "legend"
)

// OverlayDescriptor defines an overlay that can be toggled.
type OverlayDescriptor struct {
	ID          OverlayID   // Unique identifier
	Name        string      // Display name
	Description string      // What this overlay shows
	Key         int32       // Keyboard key to toggle (0 = no key)
	KeyLabel    string      // Key label for display (e.g., "S", "V")
	Category    string      // Grouping (e.g., "visual", "debug", "ai")
	Exclusive   []OverlayID // Other overlays to disable when this is enabled
}

// OverlayRegistry manages overlay state and metadata.
type OverlayRegistry struct {
	descriptors []OverlayDescriptor
	byID        map[OverlayID]OverlayDescriptor
	enabled     map[OverlayID]bool
	order       []OverlayID // Maintains insertion order for display
}

// NewOverlayRegistry creates a registry with default overlays.
func NewOverlayRegistry() *OverlayRegistry {
	reg := &OverlayRegistry{
		byID:    make(map[OverlayID]OverlayDescriptor),
		enabled: make(map[OverlayID]bool),
	}
	reg.registerDefaults()
	return reg
}

// registerDefaults adds standard overlays.
func (r *OverlayRegistry) registerDefaults() {
	r.Register(OverlayDescriptor{
		ID:          OverlayStatus,
		Name:        "Status",
		Description: "Tick, FPS, gesture and pattern readout",
		Key:         rl.KeyH,
		KeyLabel:    "H",
		Category:    "hud",
	})

	r.Register(OverlayDescriptor{
		ID:          OverlayBlend,
		Name:        "Blend Weights",
		Description: "Per-shape blend weight bars",
		Key:         rl.KeyB,
		KeyLabel:    "B",
		Category:    "hud",
	})

	r.Register(OverlayDescriptor{
		ID:          OverlayLegend,
		Name:        "Key Legend",
		Description: "Keyboard controls at the bottom of the screen",
		Key:         rl.KeyL,
		KeyLabel:    "L",
		Category:    "hud",
	})

	r.Register(OverlayDescriptor{
		ID:          OverlayPerf,
		Name:        "Performance",
		Description: "Per-phase tick timing",
		Key:         rl.KeyF,
		KeyLabel:    "F",
		Category:    "debug",
	})

	r.Register(OverlayDescriptor{
		ID:          OverlayAxes,
		Name:        "Axes",
		Description: "World axes rotated with the model",
		Key:         rl.KeyX,
		KeyLabel:    "X",
		Category:    "debug",
		Exclusive:   []OverlayID{OverlayBounds},
	})

	r.Register(OverlayDescriptor{
		ID:          OverlayBounds,
		Name:        "Text Bounds",
		Description: "World rectangle text and glyph layouts are mapped into",
		Key:         rl.KeyG,
		KeyLabel:    "G",
		Category:    "debug",
		Exclusive:   []OverlayID{OverlayAxes},
	})
}

// Register adds an overlay to the registry.
func (r *OverlayRegistry) Register(desc OverlayDescriptor) {
	r.descriptors = append(r.descriptors, desc)
	r.byID[desc.ID] = desc
	r.order = append(r.order, desc.ID)
	r.enabled[desc.ID] = false
}

// Toggle switches an overlay on/off and handles exclusivity.
func (r *OverlayRegistry) Toggle(id OverlayID) bool {
	desc, ok := r.byID[id]
	if !ok {
		return false
	}

	newState := !r.enabled[id]
	r.enabled[id] = newState

	// If enabling, disable exclusive overlays
	if newState {
		for _, excl := range desc.Exclusive {
			r.enabled[excl] = false
		}
	}

	return newState
}

// SetEnabled explicitly sets an overlay's state.
func (r *OverlayRegistry) SetEnabled(id OverlayID, enabled bool) {
	desc, ok := r.byID[id]
	if !ok {
		return
	}

	r.enabled[id] = enabled

	// If enabling, disable exclusive overlays
	if enabled {
		for _, excl := range desc.Exclusive {
			r.enabled[excl] = false
		}
	}
}

// IsEnabled returns whether an overlay is active.
func (r *OverlayRegistry) IsEnabled(id OverlayID) bool {
	return r.enabled[id]
}

// ByCategory returns overlays filtered by category.
func (r *OverlayRegistry) ByCategory(category string) []OverlayDescriptor {
	var result []OverlayDescriptor
	for _, desc := range r.descriptors {
		if desc.Category == category {
			result = append(result, desc)
		}
	}
	return result
}

// Categories returns all unique categories in order.
func (r *OverlayRegistry) Categories() []string {
	seen := make(map[string]bool)
	var cats []string
	for _, desc := range r.descriptors {
		if !seen[desc.Category] {
			seen[desc.Category] = true
			cats = append(cats, desc.Category)
		}
	}
	return cats
}

// HandleKeyPress checks if a key corresponds to an overlay toggle.
// Returns the overlay ID and new state if a toggle occurred.
func (r *OverlayRegistry) HandleKeyPress(key int32) (OverlayID, bool, bool) {
	for _, desc := range r.descriptors {
		if desc.Key == key {
			newState := r.Toggle(desc.ID)
			return desc.ID, newState, true
		}
	}
	return "", false, false
}

// EnabledOverlays returns a list of currently enabled overlay IDs.
func (r *OverlayRegistry) EnabledOverlays() []OverlayID {
	var result []OverlayID
	for _, id := range r.order {
		if r.enabled[id] {
			result = append(result, id)
		}
	}
	return result
}

// Legend returns one line per category listing its toggle keys.
// Enabled overlays are marked with a trailing '*'.
func (r *OverlayRegistry) Legend() []string {
	var lines []string
	for _, cat := range r.Categories() {
		var b strings.Builder
		b.WriteString(cat + ":")
		for _, desc := range r.ByCategory(cat) {
			if desc.KeyLabel == "" {
				continue
			}
			fmt.Fprintf(&b, "  [%s] %s", desc.KeyLabel, desc.Name)
			if r.IsEnabled(desc.ID) {
				b.WriteByte('*')
			}
		}
		lines = append(lines, b.String())
	}
	return lines
}
