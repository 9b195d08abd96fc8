// Package config provides configuration loading and access for the particle field.
package config

import (
	_ "embed"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all particle field configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Camera    CameraConfig    `yaml:"camera"`
	Particles ParticlesConfig `yaml:"particles"`
	Morph     MorphConfig     `yaml:"morph"`
	Shapes    ShapesConfig    `yaml:"shapes"`
	Raster    RasterConfig    `yaml:"raster"`
	Shading   ShadingConfig   `yaml:"shading"`
	Defaults  DefaultsConfig  `yaml:"defaults"`
	Demo      DemoConfig      `yaml:"demo"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// CameraConfig holds the perspective camera placement.
// The camera sits on the +Z axis and looks at the origin.
type CameraConfig struct {
	Distance    float64 `yaml:"distance"`
	MinDistance float64 `yaml:"min_distance"`
	MaxDistance float64 `yaml:"max_distance"`
	Fovy        float64 `yaml:"fovy"` // Vertical field of view in degrees
}

// ParticlesConfig holds the particle budget.
type ParticlesConfig struct {
	Count int `yaml:"count"` // Points in every layout
}

// MorphConfig holds the per-tick smoothing factors of the morph engine.
type MorphConfig struct {
	OpennessSmoothing float64 `yaml:"openness_smoothing"` // openness += (target - openness) * this
	BlendSmoothing    float64 `yaml:"blend_smoothing"`    // weight += (target - weight) * this
	RotationScale     float64 `yaml:"rotation_scale"`     // Gesture rotation input multiplier
	InitialOpenness   float64 `yaml:"initial_openness"`
	Scale             float64 `yaml:"scale"` // Point size multiplier
}

// ShapesConfig holds the generator constants for every procedural layout.
type ShapesConfig struct {
	Sphere SphereConfig `yaml:"sphere"`
	Cube   CubeConfig   `yaml:"cube"`
	Spiral SpiralConfig `yaml:"spiral"`
	Random RandomConfig `yaml:"random"`
	Heart  HeartConfig  `yaml:"heart"`
	Ring   RingConfig   `yaml:"ring"`
	Wave   WaveConfig   `yaml:"wave"`
}

// SphereConfig describes a thick spherical shell.
type SphereConfig struct {
	MinRadius float64 `yaml:"min_radius"`
	MaxRadius float64 `yaml:"max_radius"`
}

// CubeConfig describes a solid cube centered at the origin.
type CubeConfig struct {
	Size float64 `yaml:"size"` // Edge length
}

// SpiralConfig describes a conical helix.
type SpiralConfig struct {
	Sweep     float64 `yaml:"sweep"`      // Total angle swept in radians
	MaxRadius float64 `yaml:"max_radius"` // Radius at the last particle
	Height    float64 `yaml:"height"`     // Total vertical span
}

// RandomConfig describes a uniform cloud.
type RandomConfig struct {
	Size float64 `yaml:"size"` // Edge length of the bounding cube
}

// HeartConfig describes the parametric heart curve.
type HeartConfig struct {
	MinScale float64 `yaml:"min_scale"`
	MaxScale float64 `yaml:"max_scale"`
	Depth    float64 `yaml:"depth"` // Total z jitter span
}

// RingConfig describes a torus in the XY plane.
type RingConfig struct {
	MajorRadius float64 `yaml:"major_radius"`
	TubeRadius  float64 `yaml:"tube_radius"`
}

// WaveConfig describes a rippled plane.
type WaveConfig struct {
	Size      float64 `yaml:"size"`      // Edge length of the XZ square
	Frequency float64 `yaml:"frequency"` // Angular frequency of the ripples
	Amplitude float64 `yaml:"amplitude"` // Height multiplier of sin + cos
}

// RasterConfig holds text/glyph rasterization and sampling parameters.
type RasterConfig struct {
	Height       int     `yaml:"height"`        // Canvas height in pixels
	Aspect       int     `yaml:"aspect"`        // Canvas width = height * aspect
	Stride       int     `yaml:"stride"`        // Pixel sampling stride on both axes
	Threshold    uint8   `yaml:"threshold"`     // Pixels brighter than this are sampled
	FillRatio    float64 `yaml:"fill_ratio"`    // Widest line may occupy this fraction of width
	LineSpacing  float64 `yaml:"line_spacing"`  // Line height = font size * this
	WorldWidth   float64 `yaml:"world_width"`   // Canvas width maps to this many world units
	WorldHeight  float64 `yaml:"world_height"`  // Canvas height maps to this many world units
	TextPrefix   string  `yaml:"text_prefix"`   // Prepended to the custom name
	TextMaxFont  float64 `yaml:"text_max_font"` // Starting font size for the text layout
	GlyphLabel   string  `yaml:"glyph_label"`
	GlyphMaxFont float64 `yaml:"glyph_max_font"`
	GlyphFont    string  `yaml:"glyph_font"` // Optional TTF/OTF path able to draw GlyphLabel
}

// ShadingConfig holds the constants of the position/size/alpha model.
type ShadingConfig struct {
	MinExpansion       float64 `yaml:"min_expansion"` // Expansion at openness 0
	MaxExpansion       float64 `yaml:"max_expansion"` // Expansion at openness 1
	PulseAmplitude     float64 `yaml:"pulse_amplitude"`
	PulseFrequency     float64 `yaml:"pulse_frequency"`
	NoiseFrequency     float64 `yaml:"noise_frequency"`
	NoiseAmplitude     float64 `yaml:"noise_amplitude"`
	NoiseSuppression   float64 `yaml:"noise_suppression"` // Fraction of noise removed for heart/text
	BaseSize           float64 `yaml:"base_size"`
	OpennessSize       float64 `yaml:"openness_size"`
	SizeDistanceFactor float64 `yaml:"size_distance_factor"`
	BaseAlpha          float64 `yaml:"base_alpha"`
	OpennessAlpha      float64 `yaml:"openness_alpha"`
	DiscRadius         float64 `yaml:"disc_radius"` // Hard cutoff in point UV space
	DiscInner          float64 `yaml:"disc_inner"`  // Fully opaque inside this radius
}

// DefaultsConfig holds the initial UI state.
type DefaultsConfig struct {
	Pattern string `yaml:"pattern"`
	Color   string `yaml:"color"` // Hex RGB, e.g. "#ff66cc"
	Name    string `yaml:"name"`
}

// DemoConfig holds autopilot gesture source parameters.
type DemoConfig struct {
	NoiseSpeed    float64 `yaml:"noise_speed"`    // Noise domain units per second
	GesturePeriod float64 `yaml:"gesture_period"` // Seconds between gesture changes
	GestureHold   float64 `yaml:"gesture_hold"`   // Seconds a gesture override is held
	RotationRange float64 `yaml:"rotation_range"` // Peak rotation input magnitude
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	SampleInterval int `yaml:"sample_interval"` // Ticks between CSV rows
	PerfWindow     int `yaml:"perf_window"`     // Ticks averaged per perf row
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	BufferLen    int        // Particles.Count * 3
	CanvasWidth  int        // Raster.Height * Raster.Aspect
	CanvasHeight int        // Raster.Height
	DefaultColor color.RGBA // Defaults.Color parsed
	ScreenW32    float32    // Screen.Width as float32
	ScreenH32    float32    // Screen.Height as float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// validate rejects values that would make layout buffers or the canvas degenerate.
func (c *Config) validate() error {
	if c.Particles.Count <= 0 {
		return fmt.Errorf("particles.count must be positive, got %d", c.Particles.Count)
	}
	if c.Raster.Height <= 0 || c.Raster.Aspect <= 0 {
		return fmt.Errorf("raster canvas must be positive, got height=%d aspect=%d", c.Raster.Height, c.Raster.Aspect)
	}
	if c.Raster.Stride <= 0 {
		return fmt.Errorf("raster.stride must be positive, got %d", c.Raster.Stride)
	}
	if _, err := ParseHexColor(c.Defaults.Color); err != nil {
		return fmt.Errorf("defaults.color: %w", err)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.BufferLen = c.Particles.Count * 3
	c.Derived.CanvasHeight = c.Raster.Height
	c.Derived.CanvasWidth = c.Raster.Height * c.Raster.Aspect
	c.Derived.DefaultColor, _ = ParseHexColor(c.Defaults.Color)
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)

	if c.Camera.MinDistance == 0 {
		c.Camera.MinDistance = c.Camera.Distance
	}
	if c.Camera.MaxDistance < c.Camera.MinDistance {
		c.Camera.MaxDistance = c.Camera.MinDistance
	}
	if c.Telemetry.SampleInterval < 1 {
		c.Telemetry.SampleInterval = 1
	}
	if c.Telemetry.PerfWindow < 1 {
		c.Telemetry.PerfWindow = 60
	}
}

// TextLabel builds the label rasterized for the text layout.
func (c *Config) TextLabel(name string) string {
	return c.Raster.TextPrefix + name
}

// ParseHexColor parses "#rrggbb" or "rrggbb" into an opaque color.
func ParseHexColor(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
