// Package telemetry records per-tick engine state and timing to CSV.
package telemetry

import (
	"log/slog"
	"time"

	"github.com/pthm-cable/morph/gesture"
	"github.com/pthm-cable/morph/layout"
	"github.com/pthm-cable/morph/morph"
)

// TickRecord is one sampled engine tick, flattened for CSV export.
type TickRecord struct {
	Tick      uint64  `csv:"tick"`
	Time      float64 `csv:"time"`
	Gesture   string  `csv:"gesture"`
	Pattern   string  `csv:"pattern"`
	Name      string  `csv:"name"`
	Openness  float64 `csv:"openness"`
	Pitch     float64 `csv:"pitch"`
	Yaw       float64 `csv:"yaw"`
	Sphere    float64 `csv:"w_sphere"`
	Cube      float64 `csv:"w_cube"`
	Spiral    float64 `csv:"w_spiral"`
	Random    float64 `csv:"w_random"`
	Heart     float64 `csv:"w_heart"`
	Ring      float64 `csv:"w_ring"`
	Wave      float64 `csv:"w_wave"`
	Glyph     float64 `csv:"w_glyph"`
	Text      float64 `csv:"w_text"`
	WeightSum float64 `csv:"weight_sum"`
	Visible   int     `csv:"visible"`
	TickUS    int64   `csv:"tick_us"` // Duration of the previous tick
}

// NewTickRecord flattens the engine state after a tick.
// tickTime is the most recent completed tick duration.
func NewTickRecord(tick uint64, u morph.Uniforms, g gesture.State, pattern, name string, visible int, tickTime time.Duration) TickRecord {
	w := u.Mix
	return TickRecord{
		Tick:      tick,
		Time:      u.Time,
		Gesture:   g.Type.String(),
		Pattern:   pattern,
		Name:      name,
		Openness:  u.Openness,
		Pitch:     u.Pitch,
		Yaw:       u.Yaw,
		Sphere:    w[layout.Sphere],
		Cube:      w[layout.Cube],
		Spiral:    w[layout.Spiral],
		Random:    w[layout.Random],
		Heart:     w[layout.Heart],
		Ring:      w[layout.Ring],
		Wave:      w[layout.Wave],
		Glyph:     w[layout.Glyph],
		Text:      w[layout.Text],
		WeightSum: w.Sum(),
		Visible:   visible,
		TickUS:    tickTime.Microseconds(),
	}
}

// LogValue implements slog.LogValuer for structured logging.
func (r TickRecord) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("tick", r.Tick),
		slog.String("gesture", r.Gesture),
		slog.String("pattern", r.Pattern),
		slog.Float64("openness", r.Openness),
		slog.Float64("weight_sum", r.WeightSum),
		slog.Int("visible", r.Visible),
		slog.Int64("tick_us", r.TickUS),
	)
}
