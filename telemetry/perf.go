package telemetry

import (
	"log/slog"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Phase identifies one stage of Pond.Step.
type Phase uint8

const (
	PhaseMigration Phase = iota
	PhasePredators
	PhaseFeeding
	PhaseFish
	PhaseApply
	PhaseTelemetry

	numPhases
)

var phaseNames = [numPhases]string{"migration", "predators", "feeding", "fish", "apply", "telemetry"}

// String returns the phase name used in logs.
func (ph Phase) String() string {
	if ph < numPhases {
		return phaseNames[ph]
	}
	return "unknown"
}

// tickTiming is the wall time of one step, split by phase.
type tickTiming struct {
	total  time.Duration
	phases [numPhases]time.Duration
}

// PerfCollector keeps the step timings of the last windowSize ticks.
type PerfCollector struct {
	ring    []tickTiming
	next    int
	filled  int
	current tickTiming

	tickStart  time.Time
	phaseStart time.Time
	phase      Phase
	inPhase    bool
}

// NewPerfCollector creates a collector averaging over windowSize ticks.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{ring: make([]tickTiming, windowSize)}
}

// StartTick begins timing a step.
func (p *PerfCollector) StartTick() {
	p.tickStart = time.Now()
	p.current = tickTiming{}
	p.inPhase = false
}

// StartPhase closes the running phase, if any, and starts ph.
func (p *PerfCollector) StartPhase(ph Phase) {
	now := time.Now()
	p.closePhase(now)
	p.phase = ph
	p.phaseStart = now
	p.inPhase = true
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.inPhase && p.phase < numPhases {
		p.current.phases[p.phase] += now.Sub(p.phaseStart)
	}
	p.inPhase = false
}

// EndTick closes the step and stores it in the window.
func (p *PerfCollector) EndTick() {
	now := time.Now()
	p.closePhase(now)
	p.current.total = now.Sub(p.tickStart)

	p.ring[p.next] = p.current
	p.next = (p.next + 1) % len(p.ring)
	if p.filled < len(p.ring) {
		p.filled++
	}
}

// PerfStats summarizes step timings over the window.
type PerfStats struct {
	Ticks int

	AvgTick time.Duration
	MinTick time.Duration
	MaxTick time.Duration
	P95Tick time.Duration

	PhaseAvg [numPhases]time.Duration
	PhasePct [numPhases]float64 // share of the average step

	TicksPerSecond float64
}

// Stats aggregates the ticks currently held in the window.
func (p *PerfCollector) Stats() PerfStats {
	n := p.filled
	if n == 0 {
		return PerfStats{}
	}

	totals := make([]float64, n)
	var phaseSum [numPhases]time.Duration
	for i, tt := range p.ring[:n] {
		totals[i] = float64(tt.total)
		for ph, d := range tt.phases {
			phaseSum[ph] += d
		}
	}
	sort.Float64s(totals)

	s := PerfStats{
		Ticks:   n,
		AvgTick: time.Duration(stat.Mean(totals, nil)),
		MinTick: time.Duration(totals[0]),
		MaxTick: time.Duration(totals[n-1]),
		P95Tick: time.Duration(stat.Quantile(0.95, stat.Empirical, totals, nil)),
	}
	for ph := range phaseSum {
		s.PhaseAvg[ph] = phaseSum[ph] / time.Duration(n)
		if s.AvgTick > 0 {
			s.PhasePct[ph] = float64(s.PhaseAvg[ph]) / float64(s.AvgTick) * 100
		}
	}
	if s.AvgTick > 0 {
		s.TicksPerSecond = float64(time.Second) / float64(s.AvgTick)
	}
	return s
}

// LogStats logs the timing summary. Phases under 0.1% are omitted.
func (s PerfStats) LogStats() {
	attrs := []any{
		"avg_tick_us", s.AvgTick.Microseconds(),
		"p95_tick_us", s.P95Tick.Microseconds(),
		"max_tick_us", s.MaxTick.Microseconds(),
		"ticks_per_sec", int(s.TicksPerSecond),
	}
	for ph := Phase(0); ph < numPhases; ph++ {
		if pct := s.PhasePct[ph]; pct > 0.1 {
			attrs = append(attrs, ph.String()+"_pct", float64(int(pct*10))/10.0)
		}
	}
	slog.Info("perf", attrs...)
}

// PerfRow is one line of perf.csv.
type PerfRow struct {
	WindowEnd    int     `csv:"window_end"`
	AvgTickUS    int64   `csv:"avg_tick_us"`
	MinTickUS    int64   `csv:"min_tick_us"`
	MaxTickUS    int64   `csv:"max_tick_us"`
	P95TickUS    int64   `csv:"p95_tick_us"`
	TicksPerSec  float64 `csv:"ticks_per_sec"`
	MigrationPct float64 `csv:"migration_pct"`
	PredatorsPct float64 `csv:"predators_pct"`
	FeedingPct   float64 `csv:"feeding_pct"`
	FishPct      float64 `csv:"fish_pct"`
	ApplyPct     float64 `csv:"apply_pct"`
	TelemetryPct float64 `csv:"telemetry_pct"`
}

// Row flattens the stats for perf.csv.
func (s PerfStats) Row(windowEnd int) PerfRow {
	return PerfRow{
		WindowEnd:    windowEnd,
		AvgTickUS:    s.AvgTick.Microseconds(),
		MinTickUS:    s.MinTick.Microseconds(),
		MaxTickUS:    s.MaxTick.Microseconds(),
		P95TickUS:    s.P95Tick.Microseconds(),
		TicksPerSec:  s.TicksPerSecond,
		MigrationPct: s.PhasePct[PhaseMigration],
		PredatorsPct: s.PhasePct[PhasePredators],
		FeedingPct:   s.PhasePct[PhaseFeeding],
		FishPct:      s.PhasePct[PhaseFish],
		ApplyPct:     s.PhasePct[PhaseApply],
		TelemetryPct: s.PhasePct[PhaseTelemetry],
	}
}
