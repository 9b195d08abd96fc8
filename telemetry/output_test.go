package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/morph/config"
	"github.com/pthm-cable/morph/gesture"
	"github.com/pthm-cable/morph/layout"
	"github.com/pthm-cable/morph/morph"
)

func TestNewOutputManager_Disabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if om != nil {
		t.Fatal("expected nil manager for empty dir")
	}

	// Nil manager methods are no-ops
	if err := om.WriteTick(TickRecord{}); err != nil {
		t.Errorf("nil WriteTick: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Errorf("nil Close: %v", err)
	}
	if om.Dir() != "" {
		t.Errorf("expected empty dir, got %q", om.Dir())
	}
}

func TestOutputManager_WriteTicks(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("creating output manager: %v", err)
	}

	u := morph.Uniforms{Time: 0.5, Openness: 0.25, Mix: morph.OneHot(layout.Heart)}
	g := gesture.State{Type: gesture.Heart}
	for tick := uint64(1); tick <= 3; tick++ {
		if err := om.WriteTick(NewTickRecord(tick, u, g, "sphere", "Ada", 100, 1500*time.Microsecond)); err != nil {
			t.Fatalf("writing tick %d: %v", tick, err)
		}
	}
	if err := om.Close(); err != nil {
		t.Fatalf("closing: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "ticks.csv"))
	if err != nil {
		t.Fatalf("reading ticks.csv: %v", err)
	}
	if n := strings.Count(string(data), "tick,time"); n != 1 {
		t.Errorf("expected exactly one header, got %d", n)
	}

	var rows []TickRecord
	if err := gocsv.UnmarshalBytes(data, &rows); err != nil {
		t.Fatalf("parsing ticks.csv: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	last := rows[2]
	if last.Tick != 3 || last.Gesture != "heart" || last.Heart != 1 || last.WeightSum != 1 || last.TickUS != 1500 {
		t.Errorf("unexpected row: %+v", last)
	}
}

func TestOutputManager_WriteConfig(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("creating output manager: %v", err)
	}
	defer om.Close()

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	if err := om.WriteConfig(cfg); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	reloaded, err := config.Load(filepath.Join(dir, "config.yaml"))
	if err != nil {
		t.Fatalf("reloading written config: %v", err)
	}
	if reloaded.Particles.Count != cfg.Particles.Count {
		t.Errorf("expected count %d, got %d", cfg.Particles.Count, reloaded.Particles.Count)
	}
}

func TestOutputManager_WritePerf(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("creating output manager: %v", err)
	}

	clock := newStepClock()
	p := NewProfilerWithClock(4, clock.now)
	for i := 0; i < 4; i++ {
		p.BeginTick()
		p.Enter(PhaseShade)
		clock.advance(2 * time.Millisecond)
		p.EndTick(1000)
	}
	for _, end := range []uint64{60, 120} {
		if err := om.WritePerf(p.Window(), end); err != nil {
			t.Fatalf("writing perf: %v", err)
		}
	}
	if err := om.Close(); err != nil {
		t.Fatalf("closing: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "perf.csv"))
	if err != nil {
		t.Fatalf("reading perf.csv: %v", err)
	}
	var rows []PerfRow
	if err := gocsv.UnmarshalBytes(data, &rows); err != nil {
		t.Fatalf("parsing perf.csv: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[1].WindowEnd != 120 || rows[1].ShadeUS != 2000 || rows[1].ShadeNsPerPart != 2000 {
		t.Errorf("unexpected row: %+v", rows[1])
	}
}
