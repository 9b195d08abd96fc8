// Package components defines ECS components for the particle field.
package components

// Slot ties a particle entity to its index in every layout buffer.
type Slot struct {
	Index int32
}

// Position is a particle's world position after displacement and model rotation.
type Position struct {
	X, Y, Z float32
}

// Shade holds per-particle render parameters.
type Shade struct {
	Size    float32 // Point size in pixels
	Alpha   float32 // Opacity before disc falloff
	Visible bool    // False when at or behind the camera
}
