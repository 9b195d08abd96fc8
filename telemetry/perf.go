package telemetry

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Phase is one stage of an engine tick.
type Phase uint8

const (
	PhaseGesture Phase = iota
	PhaseMorph
	PhaseBlend
	PhaseShade
	PhaseTelemetry
	NumPhases
)

var phaseNames = [NumPhases]string{
	PhaseGesture:   "gesture",
	PhaseMorph:     "morph",
	PhaseBlend:     "blend",
	PhaseShade:     "shade",
	PhaseTelemetry: "telemetry",
}

func (p Phase) String() string {
	if p < NumPhases {
		return phaseNames[p]
	}
	return "unknown"
}

// tickSample is the timing of one completed tick.
type tickSample struct {
	total     time.Duration
	phases    [NumPhases]time.Duration
	particles int
}

// Profiler times the phases of each engine tick over a rolling window of ticks.
// It is driven from the frame loop only and is not safe for concurrent use.
type Profiler struct {
	now     func() time.Time
	samples []tickSample
	next    int
	filled  int

	cur        tickSample
	tickStart  time.Time
	phaseStart time.Time
	phase      Phase
	open       bool // a phase is being timed

	lastFrame time.Time
	frame     time.Duration
}

// NewProfiler creates a profiler on the wall clock averaging over window ticks.
func NewProfiler(window int) *Profiler {
	return NewProfilerWithClock(window, time.Now)
}

// NewProfilerWithClock is NewProfiler with an injected clock.
func NewProfilerWithClock(window int, now func() time.Time) *Profiler {
	if window < 1 {
		window = 60
	}
	return &Profiler{
		now:     now,
		samples: make([]tickSample, window),
	}
}

// BeginTick starts timing a tick.
func (p *Profiler) BeginTick() {
	p.cur = tickSample{}
	p.tickStart = p.now()
	p.open = false
}

// Enter closes the running phase, if any, and starts timing ph.
// Entering a phase twice in one tick accumulates.
func (p *Profiler) Enter(ph Phase) {
	now := p.now()
	p.closePhase(now)
	p.phase = ph
	p.phaseStart = now
	p.open = true
}

func (p *Profiler) closePhase(now time.Time) {
	if p.open && p.phase < NumPhases {
		p.cur.phases[p.phase] += now.Sub(p.phaseStart)
	}
	p.open = false
}

// EndTick closes the tick. particles is how many particles the shade phase processed.
func (p *Profiler) EndTick(particles int) {
	now := p.now()
	p.closePhase(now)
	p.cur.total = now.Sub(p.tickStart)
	p.cur.particles = particles

	p.samples[p.next] = p.cur
	p.next = (p.next + 1) % len(p.samples)
	if p.filled < len(p.samples) {
		p.filled++
	}
}

// Last returns the duration of the most recent completed tick.
func (p *Profiler) Last() time.Duration {
	if p.filled == 0 {
		return 0
	}
	i := (p.next - 1 + len(p.samples)) % len(p.samples)
	return p.samples[i].total
}

// RecordFrame marks a presented frame.
func (p *Profiler) RecordFrame() {
	now := p.now()
	if !p.lastFrame.IsZero() {
		p.frame = now.Sub(p.lastFrame)
	}
	p.lastFrame = now
}

// Window summarizes the ticks currently held by a profiler.
type Window struct {
	Ticks  int
	Mean   time.Duration
	StdDev time.Duration
	P95    time.Duration
	Max    time.Duration

	Phase [NumPhases]time.Duration // Mean time per phase
	Share [NumPhases]float64       // Phase mean over tick mean, in [0,1]

	// Mean shade time per particle
	ShadePerParticle time.Duration

	FPS float64
}

// Window computes the summary of the rolling window.
func (p *Profiler) Window() Window {
	var w Window
	if p.frame > 0 {
		w.FPS = float64(time.Second) / float64(p.frame)
	}
	if p.filled == 0 {
		return w
	}

	totals := make([]float64, p.filled)
	var phaseSum [NumPhases]time.Duration
	var shadeNs, particles float64
	for i, s := range p.samples[:p.filled] {
		totals[i] = float64(s.total)
		for ph, d := range s.phases {
			phaseSum[ph] += d
		}
		shadeNs += float64(s.phases[PhaseShade])
		particles += float64(s.particles)
	}

	mean, std := stat.MeanStdDev(totals, nil)
	if p.filled == 1 {
		std = 0
	}
	sort.Float64s(totals)

	w.Ticks = p.filled
	w.Mean = time.Duration(mean)
	w.StdDev = time.Duration(std)
	w.P95 = time.Duration(stat.Quantile(0.95, stat.Empirical, totals, nil))
	w.Max = time.Duration(totals[len(totals)-1])

	for ph := range phaseSum {
		w.Phase[ph] = phaseSum[ph] / time.Duration(p.filled)
		if w.Mean > 0 {
			w.Share[ph] = float64(w.Phase[ph]) / float64(w.Mean)
		}
	}
	if particles > 0 {
		w.ShadePerParticle = time.Duration(shadeNs / particles)
	}
	return w
}

// LogValue implements slog.LogValuer for structured logging.
func (w Window) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("ticks", w.Ticks),
		slog.Int64("mean_us", w.Mean.Microseconds()),
		slog.Int64("p95_us", w.P95.Microseconds()),
		slog.Int64("max_us", w.Max.Microseconds()),
		slog.Int64("shade_ns_per_particle", w.ShadePerParticle.Nanoseconds()),
	}
	if w.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", w.FPS))
	}
	for ph := Phase(0); ph < NumPhases; ph++ {
		attrs = append(attrs, slog.Int64(ph.String()+"_us", w.Phase[ph].Microseconds()))
	}
	return slog.GroupValue(attrs...)
}

// Lines formats the window for on-screen display.
func (w Window) Lines() []string {
	lines := []string{
		fmt.Sprintf("tick %dus  sd %d  p95 %d  max %d", w.Mean.Microseconds(),
			w.StdDev.Microseconds(), w.P95.Microseconds(), w.Max.Microseconds()),
	}
	for ph := Phase(0); ph < NumPhases; ph++ {
		lines = append(lines, fmt.Sprintf("%-9s %6dus %5.1f%%", ph, w.Phase[ph].Microseconds(), w.Share[ph]*100))
	}
	return append(lines, fmt.Sprintf("shade %dns/particle", w.ShadePerParticle.Nanoseconds()))
}

// PerfRow is one perf window flattened for CSV export.
type PerfRow struct {
	WindowEnd      uint64  `csv:"window_end"`
	Ticks          int     `csv:"ticks"`
	MeanUS         int64   `csv:"mean_us"`
	StdDevUS       int64   `csv:"std_us"`
	P95US          int64   `csv:"p95_us"`
	MaxUS          int64   `csv:"max_us"`
	GestureUS      int64   `csv:"gesture_us"`
	MorphUS        int64   `csv:"morph_us"`
	BlendUS        int64   `csv:"blend_us"`
	ShadeUS        int64   `csv:"shade_us"`
	TelemetryUS    int64   `csv:"telemetry_us"`
	ShadeNsPerPart int64   `csv:"shade_ns_per_particle"`
	FPS            float64 `csv:"fps"`
}

// Row flattens the window ending at tick windowEnd.
func (w Window) Row(windowEnd uint64) PerfRow {
	return PerfRow{
		WindowEnd:      windowEnd,
		Ticks:          w.Ticks,
		MeanUS:         w.Mean.Microseconds(),
		StdDevUS:       w.StdDev.Microseconds(),
		P95US:          w.P95.Microseconds(),
		MaxUS:          w.Max.Microseconds(),
		GestureUS:      w.Phase[PhaseGesture].Microseconds(),
		MorphUS:        w.Phase[PhaseMorph].Microseconds(),
		BlendUS:        w.Phase[PhaseBlend].Microseconds(),
		ShadeUS:        w.Phase[PhaseShade].Microseconds(),
		TelemetryUS:    w.Phase[PhaseTelemetry].Microseconds(),
		ShadeNsPerPart: w.ShadePerParticle.Nanoseconds(),
		FPS:            w.FPS,
	}
}
