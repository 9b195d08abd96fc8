package game

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/morph/camera"
	"github.com/pthm-cable/morph/config"
	"github.com/pthm-cable/morph/gesture"
	"github.com/pthm-cable/morph/layout"
	"github.com/pthm-cable/morph/morph"
	"github.com/pthm-cable/morph/renderer"
	"github.com/pthm-cable/morph/systems"
	"github.com/pthm-cable/morph/telemetry"
	"github.com/pthm-cable/morph/ui"
)

// DT is the fixed clock step used by headless runs.
const DT = 1.0 / 60.0

// Options configures game creation.
type Options struct {
	Seed      int64
	Headless  bool
	OutputDir string // Empty disables CSV output
	LogStats  bool   // Log sampled ticks and perf windows via slog

	Pattern string // Empty uses defaults.pattern
	Color   string // Empty uses defaults.color
	Name    string // Empty uses defaults.name

	// Autopilot drives gestures from noise instead of local input.
	Autopilot bool
	// ExternalGestures leaves the gesture latch to an outside publisher.
	ExternalGestures bool
}

// Game holds the complete particle field state.
type Game struct {
	cfg   *config.Config
	world *ecs.World

	// Layouts and morphing
	layouts    *layout.Set
	textWorker *layout.TextWorker
	engine     *morph.Engine
	shading    morph.Shading
	blended    []float32

	// Particles
	shadeSystem *systems.ShadeSystem
	visible     int

	// Inputs
	latch     *gesture.Latch
	autopilot *gesture.Autopilot
	external  bool
	input     inputState
	store     *ui.Store

	camera *camera.Camera

	// Rendering (nil in headless mode)
	particles *renderer.ParticleRenderer
	hud       *ui.HUD
	controls  *ui.ControlsPanel
	overlays  *ui.OverlayRegistry

	// Telemetry
	profiler      *telemetry.Profiler
	outputManager *telemetry.OutputManager
	logStats      bool

	// State
	tick     uint64
	clock    float64
	paused   bool
	headless bool
}

// NewGameWithOptions creates a game. Graphical mode requires an open window.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := config.Cfg()

	pattern := opts.Pattern
	if pattern == "" {
		pattern = cfg.Defaults.Pattern
	}
	if _, ok := layout.ParsePattern(pattern); !ok {
		slog.Warn("unknown pattern, particles will fade out", "pattern", pattern)
	}

	col := cfg.Derived.DefaultColor
	if opts.Color != "" {
		c, err := config.ParseHexColor(opts.Color)
		if err != nil {
			return nil, fmt.Errorf("parsing color: %w", err)
		}
		col = c
	}

	name := opts.Name
	if name == "" {
		name = cfg.Defaults.Name
	}

	gen := layout.NewGenerator(cfg, opts.Seed)
	layouts, err := layout.NewSet(context.Background(), gen, opts.Seed, name)
	if err != nil {
		return nil, fmt.Errorf("generating layouts: %w", err)
	}

	world := ecs.NewWorld()
	systems.SpawnParticles(world, cfg.Particles.Count)

	shading := morph.NewShading(cfg.Shading)

	cam := camera.New(float64(cfg.Screen.Width), float64(cfg.Screen.Height), cfg.Camera.Distance, cfg.Camera.Fovy)
	cam.SetLimits(cfg.Camera.MinDistance, cfg.Camera.MaxDistance)

	g := &Game{
		cfg:           cfg,
		world:         world,
		layouts:       layouts,
		textWorker:    layout.NewTextWorker(layouts),
		engine:        morph.NewEngine(cfg, layouts),
		shading:       shading,
		blended:       make([]float32, cfg.Derived.BufferLen),
		shadeSystem:   systems.NewShadeSystem(world, shading),
		latch:         gesture.NewLatch(gesture.State{Openness: cfg.Morph.InitialOpenness}),
		external:      opts.ExternalGestures,
		input:         inputState{openness: cfg.Morph.InitialOpenness},
		store:         ui.NewStore(ui.State{Pattern: pattern, Color: col, Name: name}),
		camera:        cam,
		profiler:      telemetry.NewProfiler(cfg.Telemetry.PerfWindow),
		logStats:      opts.LogStats,
		headless:      opts.Headless,
	}

	if opts.Autopilot {
		g.autopilot = gesture.NewAutopilot(opts.Seed, cfg.Demo)
	}

	g.store.OnNameChange(g.textWorker.Request)

	g.outputManager, err = telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		g.textWorker.Close()
		return nil, fmt.Errorf("creating output: %w", err)
	}
	if err := g.outputManager.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config", "error", err)
	}

	if !opts.Headless {
		g.particles = renderer.NewParticleRenderer(world, shading)
		g.hud = ui.NewHUD()
		g.controls = ui.NewControlsPanel(g.store, 10, int32(cfg.Screen.Height)-380, 220)
		g.overlays = ui.NewOverlayRegistry()
		g.overlays.SetEnabled(ui.OverlayStatus, true)
		g.overlays.SetEnabled(ui.OverlayBlend, true)
		g.overlays.SetEnabled(ui.OverlayLegend, true)
	}

	slog.Info("game created",
		"particles", cfg.Particles.Count,
		"pattern", pattern,
		"name", name,
		"autopilot", opts.Autopilot,
		"external_gestures", opts.ExternalGestures,
		"headless", opts.Headless,
	)

	return g, nil
}

// Latch returns the gesture latch read once per tick.
func (g *Game) Latch() *gesture.Latch { return g.latch }

// Store returns the UI control store.
func (g *Game) Store() *ui.Store { return g.store }

// Engine returns the morph engine.
func (g *Game) Engine() *morph.Engine { return g.engine }

// Layouts returns the layout set.
func (g *Game) Layouts() *layout.Set { return g.layouts }

// Tick returns the number of engine ticks run.
func (g *Game) Tick() uint64 { return g.tick }

// Visible returns how many particles were in front of the camera last tick.
func (g *Game) Visible() int { return g.visible }

// UpdateHeadless advances one tick on the fixed clock.
func (g *Game) UpdateHeadless() {
	g.clock = float64(g.tick) * DT
	g.step(g.clock)
}

// step runs one engine tick at time t.
func (g *Game) step(t float64) {
	g.profiler.BeginTick()

	g.profiler.Enter(telemetry.PhaseGesture)
	if g.autopilot != nil {
		g.latch.Publish(g.autopilot.Sample(t))
	}
	gs, _ := g.latch.Snapshot()
	st := g.store.Snapshot()

	g.profiler.Enter(telemetry.PhaseMorph)
	g.engine.Tick(morph.Inputs{
		Time:    t,
		Pattern: st.Pattern,
		Color:   st.Color,
		Gesture: gs,
	})

	g.profiler.Enter(telemetry.PhaseBlend)
	g.blended = g.engine.Blend(g.blended)

	g.profiler.Enter(telemetry.PhaseShade)
	g.visible = g.shadeSystem.Update(g.engine.Uniforms(), g.blended, g.camera)

	g.tick++

	g.profiler.Enter(telemetry.PhaseTelemetry)
	g.recordTelemetry(gs, st)

	g.profiler.EndTick(g.cfg.Particles.Count)
}

// Unload stops background work and releases resources.
func (g *Game) Unload() {
	g.textWorker.Close()
	if g.particles != nil {
		g.particles.Unload()
	}
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
	slog.Info("game stopped", "ticks", g.tick, "text_generations", g.layouts.TextGenerations())
}
