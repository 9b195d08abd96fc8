// Frame dump tool - runs the engine for N ticks and renders the field to a PNG.
//
// Usage: go run ./cmd/framedump -pattern ring -gesture victory -name Ada -ticks 120 -out frame.png
package main

import (
	"flag"
	"fmt"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/morph/config"
	"github.com/pthm-cable/morph/game"
	"github.com/pthm-cable/morph/gesture"
)

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	outPath := flag.String("out", "frame.png", "Output PNG path")
	pattern := flag.String("pattern", "", "Pattern name (empty = use config)")
	gestureName := flag.String("gesture", "none", "Held gesture: none, heart, victory, middle_finger")
	openness := flag.Float64("openness", 0.5, "Held hand openness in [0, 1]")
	name := flag.String("name", "", "Custom name for the text layout")
	ticks := flag.Int("ticks", 120, "Ticks to run before rendering")
	seed := flag.Int64("seed", 1, "RNG seed")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	width, height := int32(cfg.Screen.Width), int32(cfg.Screen.Height)

	// Initialize raylib with hidden window
	rl.SetConfigFlags(rl.FlagWindowHidden)
	rl.InitWindow(width, height, "Frame Dump")
	defer rl.CloseWindow()

	g, err := game.NewGameWithOptions(game.Options{
		Seed:             *seed,
		Pattern:          *pattern,
		Name:             *name,
		ExternalGestures: true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create game: %v\n", err)
		os.Exit(1)
	}
	defer g.Unload()

	g.Latch().Publish(gesture.State{
		Type:     gesture.ParseType(*gestureName),
		Openness: *openness,
	})
	for i := 0; i < *ticks; i++ {
		g.UpdateHeadless()
	}

	// Create render texture
	target := rl.LoadRenderTexture(width, height)
	defer rl.UnloadRenderTexture(target)

	rl.BeginTextureMode(target)
	rl.ClearBackground(rl.Black)
	g.DrawScene()
	rl.EndTextureMode()

	// Get image from texture and flip it (OpenGL convention)
	img := rl.LoadImageFromTexture(target.Texture)
	rl.ImageFlipVertical(img)

	success := rl.ExportImage(*img, *outPath)
	rl.UnloadImage(img)

	if success {
		fmt.Printf("Frame rendered to: %s (%dx%d, tick %d)\n", *outPath, width, height, g.Tick())
	} else {
		fmt.Fprintf(os.Stderr, "Failed to export image\n")
		os.Exit(1)
	}
}
