package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/morph/config"
	"github.com/pthm-cable/morph/game"
	"github.com/pthm-cable/morph/gesture"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output sampled ticks and perf via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	pattern := flag.String("pattern", "", "Initial pattern (empty = use config)")
	colorHex := flag.String("color", "", "Initial particle color as #rrggbb (empty = use config)")
	name := flag.String("name", "", "Custom name shown by the victory gesture")
	gestureFeed := flag.Bool("gesture-feed", false, "Read JSON gesture lines from stdin")
	autopilot := flag.Bool("autopilot", false, "Drive gestures from a noise autopilot")
	verbose := flag.Bool("v", false, "Enable debug logging")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	if *gestureFeed && *autopilot {
		slog.Error("-gesture-feed and -autopilot are mutually exclusive")
		os.Exit(2)
	}

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := game.Options{
		Seed:             rngSeed,
		Headless:         *headless,
		OutputDir:        *outputDir,
		LogStats:         *logStats,
		Pattern:          *pattern,
		Color:            *colorHex,
		Name:             *name,
		Autopilot:        *autopilot,
		ExternalGestures: *gestureFeed,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if !*headless {
		rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Particle Morph")
		defer rl.CloseWindow()
		rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))
	}

	g, err := game.NewGameWithOptions(opts)
	if err != nil {
		slog.Error("failed to create game", "error", err)
		os.Exit(1)
	}
	defer g.Unload()

	if *gestureFeed {
		go func() {
			if err := gesture.ReadFeed(ctx, os.Stdin, g.Latch()); err != nil {
				slog.Error("gesture feed stopped", "error", err)
			}
		}()
	}

	if *headless {
		slog.Info("starting headless run",
			"seed", rngSeed,
			"max_ticks", *maxTicks,
			"autopilot", *autopilot,
			"gesture_feed", *gestureFeed,
		)

		for ctx.Err() == nil {
			g.UpdateHeadless()

			if *maxTicks > 0 && int(g.Tick()) >= *maxTicks {
				slog.Info("max ticks reached", "tick", g.Tick())
				return
			}
		}
		return
	}

	for !rl.WindowShouldClose() && ctx.Err() == nil {
		g.Update()
		g.Draw()

		if *maxTicks > 0 && int(g.Tick()) >= *maxTicks {
			break
		}
	}
}
