// Raster preview tool - interactive view of label masks and sampled points with sliders.
//
// Usage: go run ./cmd/rasterpreview -label "I Love You\nAda"
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"math/rand"
	"strings"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/morph/config"
	"github.com/pthm-cable/morph/layout"
)

const (
	windowWidth  = 1100
	windowHeight = 720
	previewW     = 768
	previewH     = 192
	panelX       = previewW + 30
	panelWidth   = windowWidth - panelX - 10
)

// RasterParams holds the tunable raster settings.
type RasterParams struct {
	MaxFont     float32
	FillRatio   float32
	LineSpacing float32
	Threshold   float32
	Stride      float32
}

func defaultParams(cfg *config.Config) RasterParams {
	return RasterParams{
		MaxFont:     float32(cfg.Raster.TextMaxFont),
		FillRatio:   float32(cfg.Raster.FillRatio),
		LineSpacing: float32(cfg.Raster.LineSpacing),
		Threshold:   float32(cfg.Raster.Threshold),
		Stride:      float32(cfg.Raster.Stride),
	}
}

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	label := flag.String("label", "I Love You\\nFriend", "Label to rasterize (\\n separates lines)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(err)
	}
	text := strings.ReplaceAll(*label, `\n`, "\n")

	rl.InitWindow(windowWidth, windowHeight, "Raster Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	params := defaultParams(cfg)

	canvas := layout.CanvasFromConfig(cfg)
	img := rl.GenImageColor(canvas.Width, canvas.Height, rl.Black)
	maskTex := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	defer rl.UnloadTexture(maskTex)

	var points []float32
	var rasterErr error
	needsRegen := true
	showPoints := true

	for !rl.WindowShouldClose() {
		if needsRegen {
			points, rasterErr = regenerate(cfg, text, params, maskTex)
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		// Mask preview
		rl.DrawTexturePro(
			maskTex,
			rl.Rectangle{X: 0, Y: 0, Width: float32(canvas.Width), Height: float32(canvas.Height)},
			rl.Rectangle{X: 10, Y: 10, Width: previewW, Height: previewH},
			rl.Vector2{X: 0, Y: 0},
			0,
			rl.White,
		)
		rl.DrawRectangleLines(10, 10, previewW, previewH, rl.DarkGray)

		// Sampled points in world space
		worldY := int32(previewH + 30)
		worldH := int32(previewW / 4)
		rl.DrawRectangle(10, worldY, previewW, worldH, rl.Black)
		if showPoints {
			sx := float32(previewW) / float32(cfg.Raster.WorldWidth)
			sy := float32(worldH) / float32(cfg.Raster.WorldHeight)
			for i := 0; i+1 < len(points); i += 2 {
				px := 10 + float32(previewW)/2 + points[i]*sx
				py := float32(worldY) + float32(worldH)/2 - points[i+1]*sy
				rl.DrawPixelV(rl.Vector2{X: px, Y: py}, rl.Pink)
			}
		}

		statsY := worldY + worldH + 15
		rl.DrawText(fmt.Sprintf("Canvas: %dx%d  Sampled pixels: %d", canvas.Width, canvas.Height, len(points)/2), 15, statsY, 16, rl.DarkGray)
		if rasterErr != nil {
			rl.DrawText(fmt.Sprintf("Rasterizer error: %v", rasterErr), 15, statsY+20, 16, rl.Red)
		} else if len(points) == 0 {
			rl.DrawText("No ink above threshold: layout collapses to the origin", 15, statsY+20, 16, rl.Maroon)
		}

		// Control panel
		y := float32(10)
		rl.DrawText("Raster Parameters", panelX, int32(y), 20, rl.DarkGray)
		y += 35

		needsRegen = slider(&y, "Max font size (px)", "20", "250", &params.MaxFont, 20, 250, "%.0f") || needsRegen
		needsRegen = slider(&y, "Fill ratio (of canvas width)", "0.3", "1.0", &params.FillRatio, 0.3, 1.0, "%.2f") || needsRegen
		needsRegen = slider(&y, "Line spacing (x font size)", "0.8", "2.0", &params.LineSpacing, 0.8, 2.0, "%.2f") || needsRegen
		needsRegen = slider(&y, "Brightness threshold", "0", "254", &params.Threshold, 0, 254, "%.0f") || needsRegen
		needsRegen = slider(&y, "Sample stride (px)", "1", "8", &params.Stride, 1, 8, "%.0f") || needsRegen

		rl.DrawLine(panelX, int32(y), panelX+panelWidth-20, int32(y), rl.LightGray)
		y += 15

		if gui.Button(rl.Rectangle{X: panelX, Y: y, Width: 120, Height: 30}, toggleText(showPoints, "Hide Points", "Show Points")) {
			showPoints = !showPoints
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: y, Width: 120, Height: 30}, "Reset All") {
			params = defaultParams(cfg)
			needsRegen = true
		}
		y += 55

		// Output YAML
		rl.DrawText("YAML Config:", panelX, int32(y), 16, rl.DarkGray)
		y += 25
		for _, line := range strings.Split(yamlSnippet(params), "\n") {
			rl.DrawText(line, panelX, int32(y), 14, rl.Gray)
			y += 16
		}

		rl.DrawText("Press C to copy YAML to clipboard", panelX, windowHeight-30, 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(yamlSnippet(params))
		}

		rl.EndDrawing()
	}
}

// slider draws a labelled slider bar and reports whether the value changed.
func slider(y *float32, title, minLabel, maxLabel string, value *float32, lo, hi float32, format string) bool {
	rl.DrawText(title, panelX, int32(*y), 14, rl.Gray)
	*y += 18
	next := gui.SliderBar(
		rl.Rectangle{X: panelX, Y: *y, Width: float32(panelWidth - 80), Height: 20},
		minLabel, maxLabel,
		*value, lo, hi,
	)
	rl.DrawText(fmt.Sprintf(format, *value), int32(panelX+float32(panelWidth-70)), int32(*y+2), 16, rl.DarkGray)
	*y += 35
	if next == *value {
		return false
	}
	*value = next
	return true
}

// regenerate rasterizes the label with params and uploads the mask to tex.
func regenerate(cfg *config.Config, text string, params RasterParams, tex rl.Texture2D) ([]float32, error) {
	canvas := layout.CanvasFromConfig(cfg)
	canvas.FillRatio = float64(params.FillRatio)
	canvas.LineSpacing = float64(params.LineSpacing)

	r, err := layout.NewBoldRasterizer(canvas)
	if err != nil {
		return nil, err
	}
	mask, err := r.Rasterize(text, float64(params.MaxFont))
	if err != nil {
		return nil, err
	}

	rl.UpdateTexture(tex, maskColors(mask))

	sampling := layout.SamplingFromConfig(cfg)
	sampling.Threshold = uint8(params.Threshold)
	sampling.Stride = int(params.Stride)

	// Points shown are a with-replacement draw, as the engine sees them
	pts := layout.BrightPixels(mask, sampling)
	l := layout.FromPoints(pts, rand.New(rand.NewSource(1)), len(pts)/2)
	out := make([]float32, 0, len(pts))
	for i := 0; i < l.Count(); i++ {
		x, y, _ := l.Point(i)
		out = append(out, x, y)
	}
	return out, nil
}

func maskColors(mask *image.Gray) []color.RGBA {
	b := mask.Bounds()
	out := make([]color.RGBA, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			v := mask.GrayAt(x, y).Y
			out = append(out, color.RGBA{R: v, G: v, B: v, A: 255})
		}
	}
	return out
}

func yamlSnippet(p RasterParams) string {
	return fmt.Sprintf(`raster:
  text_max_font: %.0f
  fill_ratio: %.2f
  line_spacing: %.2f
  threshold: %.0f
  stride: %.0f`,
		p.MaxFont, p.FillRatio, p.LineSpacing, p.Threshold, p.Stride)
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}
