package game

import (
	"log/slog"

	"github.com/pthm-cable/morph/gesture"
	"github.com/pthm-cable/morph/telemetry"
	"github.com/pthm-cable/morph/ui"
)

// recordTelemetry writes sampled ticks and, once per perf window, timing stats.
func (g *Game) recordTelemetry(gs gesture.State, st ui.State) {
	cfg := g.cfg.Telemetry

	if g.tick%uint64(cfg.SampleInterval) == 0 {
		rec := telemetry.NewTickRecord(g.tick, g.engine.Uniforms(), gs, st.Pattern, st.Name, g.visible, g.profiler.Last())
		if g.logStats {
			slog.Info("tick", "record", rec)
		}
		if err := g.outputManager.WriteTick(rec); err != nil {
			slog.Error("failed to write tick", "error", err)
		}
	}

	if g.tick%uint64(cfg.PerfWindow) == 0 {
		w := g.profiler.Window()
		if g.logStats {
			slog.Info("perf", "window", w)
		}
		if err := g.outputManager.WritePerf(w, g.tick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}
