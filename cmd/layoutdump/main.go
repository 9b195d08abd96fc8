// Layout dump tool - writes every generated layout to CSV for inspection.
//
// Usage: go run ./cmd/layoutdump -out layouts -name "Ada"
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/morph/config"
	"github.com/pthm-cable/morph/layout"
)

// PointRow is one layout point.
type PointRow struct {
	Index int     `csv:"index"`
	X     float32 `csv:"x"`
	Y     float32 `csv:"y"`
	Z     float32 `csv:"z"`
}

// SummaryRow describes one layout.
type SummaryRow struct {
	Shape      string  `csv:"shape"`
	Count      int     `csv:"count"`
	Zero       bool    `csv:"zero"`
	MinX       float64 `csv:"min_x"`
	MaxX       float64 `csv:"max_x"`
	MinY       float64 `csv:"min_y"`
	MaxY       float64 `csv:"max_y"`
	MinZ       float64 `csv:"min_z"`
	MaxZ       float64 `csv:"max_z"`
	MeanRadius float64 `csv:"mean_radius"`
	StdRadius  float64 `csv:"std_radius"`
}

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	outDir := flag.String("out", "layouts", "Output directory")
	seed := flag.Int64("seed", 1, "RNG seed")
	name := flag.String("name", "", "Custom name for the text layout")
	points := flag.Bool("points", true, "Write per-layout point files")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		slog.Error("failed to create output directory", "error", err)
		os.Exit(1)
	}

	set, err := layout.NewSet(context.Background(), layout.NewGenerator(cfg, *seed), *seed, *name)
	if err != nil {
		slog.Error("failed to generate layouts", "error", err)
		os.Exit(1)
	}

	var summary []SummaryRow
	for _, shape := range layout.Shapes() {
		l := set.Get(shape)
		summary = append(summary, summarize(shape, l))

		if !*points {
			continue
		}
		path := filepath.Join(*outDir, shape.String()+".csv")
		if err := writeCSV(path, pointRows(l)); err != nil {
			slog.Error("failed to write layout", "shape", shape, "error", err)
			os.Exit(1)
		}
	}

	if err := writeCSV(filepath.Join(*outDir, "summary.csv"), summary); err != nil {
		slog.Error("failed to write summary", "error", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %d layouts of %d points to %s\n", len(summary), set.Count(), *outDir)
}

func pointRows(l layout.Layout) []PointRow {
	rows := make([]PointRow, l.Count())
	for i := range rows {
		x, y, z := l.Point(i)
		rows[i] = PointRow{Index: i, X: x, Y: y, Z: z}
	}
	return rows
}

func summarize(shape layout.Shape, l layout.Layout) SummaryRow {
	row := SummaryRow{
		Shape: shape.String(),
		Count: l.Count(),
		Zero:  l.IsZero(),
	}
	if row.Count == 0 {
		return row
	}
	row.MinX, row.MinY, row.MinZ = math.Inf(1), math.Inf(1), math.Inf(1)
	row.MaxX, row.MaxY, row.MaxZ = math.Inf(-1), math.Inf(-1), math.Inf(-1)

	radii := make([]float64, row.Count)
	for i := range radii {
		x, y, z := l.Point(i)
		fx, fy, fz := float64(x), float64(y), float64(z)
		row.MinX, row.MaxX = math.Min(row.MinX, fx), math.Max(row.MaxX, fx)
		row.MinY, row.MaxY = math.Min(row.MinY, fy), math.Max(row.MaxY, fy)
		row.MinZ, row.MaxZ = math.Min(row.MinZ, fz), math.Max(row.MaxZ, fz)
		radii[i] = math.Sqrt(fx*fx + fy*fy + fz*fz)
	}
	row.MeanRadius, row.StdRadius = stat.MeanStdDev(radii, nil)
	return row
}

func writeCSV[T any](path string, rows []T) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := gocsv.MarshalFile(&rows, f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
