// Package camera provides the perspective camera the particle field is viewed through.
package camera

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Camera sits on the +Z axis looking at the origin with +Y up.
// Zooming moves it along the axis.
type Camera struct {
	// Distance from the origin along +Z
	Distance float64

	// Vertical field of view in degrees
	Fovy float64

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float64

	// Distance constraints
	MinDistance, MaxDistance float64

	home float64
}

// New creates a camera at the given distance.
func New(viewportW, viewportH, distance, fovy float64) *Camera {
	return &Camera{
		Distance:    distance,
		Fovy:        fovy,
		ViewportW:   viewportW,
		ViewportH:   viewportH,
		MinDistance: distance,
		MaxDistance: distance,
		home:        distance,
	}
}

// SetLimits sets the zoom range and clamps the current distance into it.
func (c *Camera) SetLimits(minDistance, maxDistance float64) {
	if maxDistance < minDistance {
		maxDistance = minDistance
	}
	c.MinDistance = minDistance
	c.MaxDistance = maxDistance
	c.SetDistance(c.Distance)
}

// Position returns the camera position in world coordinates.
func (c *Camera) Position() r3.Vec {
	return r3.Vec{Z: c.Distance}
}

// Depth returns how far in front of the camera p lies along the view axis.
// Points behind the camera have negative depth.
func (c *Camera) Depth(p r3.Vec) float64 {
	return c.Distance - p.Z
}

// focal returns the projection scale in pixels per world unit at depth 1.
func (c *Camera) focal() float64 {
	return (c.ViewportH / 2) / math.Tan(c.Fovy*math.Pi/360)
}

// WorldToScreen projects p to screen coordinates. ok is false for points
// at or behind the camera.
func (c *Camera) WorldToScreen(p r3.Vec) (sx, sy float64, ok bool) {
	d := c.Depth(p)
	if d <= 0 {
		return 0, 0, false
	}
	f := c.focal() / d
	return c.ViewportW/2 + p.X*f, c.ViewportH/2 - p.Y*f, true
}

// PixelsToWorld converts a screen-space length at the given depth to world units.
func (c *Camera) PixelsToWorld(pixels, depth float64) float64 {
	return pixels * depth / c.focal()
}

// IsVisible returns true if a sphere at p with the given world radius could
// be on screen (conservative check for culling).
func (c *Camera) IsVisible(p r3.Vec, radius float64) bool {
	d := c.Depth(p)
	if d+radius <= 0 {
		return false
	}
	if d <= 0 {
		return true
	}
	sx, sy, _ := c.WorldToScreen(p)
	r := radius * c.focal() / d
	return sx+r >= 0 && sx-r <= c.ViewportW && sy+r >= 0 && sy-r <= c.ViewportH
}

// Resize updates viewport dimensions.
func (c *Camera) Resize(viewportW, viewportH float64) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
}

// SetDistance sets the distance, clamped to min/max.
func (c *Camera) SetDistance(distance float64) {
	c.Distance = clamp(distance, c.MinDistance, c.MaxDistance)
}

// ZoomBy magnifies the view by factor (2 halves the distance).
func (c *Camera) ZoomBy(factor float64) {
	if factor <= 0 {
		return
	}
	c.SetDistance(c.Distance / factor)
}

// Reset returns the camera to its initial distance.
func (c *Camera) Reset() {
	c.SetDistance(c.home)
}

// clamp restricts a value to a range.
func clamp(x, min, max float64) float64 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
