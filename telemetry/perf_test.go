package telemetry

import (
	"testing"
	"time"
)

func TestPerfCollector(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseFeeding)
		time.Sleep(20 * time.Microsecond)
		pc.StartPhase(PhaseFish)
		time.Sleep(300 * time.Microsecond)
		pc.EndTick()
	}

	s := pc.Stats()
	if s.Ticks != 5 {
		t.Fatalf("Ticks = %d, want 5", s.Ticks)
	}
	if s.AvgTick <= 0 || s.TicksPerSecond <= 0 {
		t.Errorf("avg = %v, tps = %v, want positive", s.AvgTick, s.TicksPerSecond)
	}
	if s.MinTick > s.AvgTick || s.AvgTick > s.MaxTick {
		t.Errorf("min/avg/max out of order: %v %v %v", s.MinTick, s.AvgTick, s.MaxTick)
	}
	if s.P95Tick < s.MinTick || s.P95Tick > s.MaxTick {
		t.Errorf("p95 %v outside [%v, %v]", s.P95Tick, s.MinTick, s.MaxTick)
	}
	if s.PhasePct[PhaseFish] <= s.PhasePct[PhaseFeeding] {
		t.Errorf("fish %.1f%% should exceed feeding %.1f%%", s.PhasePct[PhaseFish], s.PhasePct[PhaseFeeding])
	}
	if s.PhaseAvg[PhaseMigration] != 0 {
		t.Errorf("untimed phase has %v", s.PhaseAvg[PhaseMigration])
	}
}

func TestPerfCollectorWindowWraps(t *testing.T) {
	pc := NewPerfCollector(3)
	for i := 0; i < 10; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseApply)
		pc.EndTick()
	}
	if s := pc.Stats(); s.Ticks != 3 {
		t.Errorf("Ticks = %d, want window size 3", s.Ticks)
	}
}

func TestPerfCollectorEmpty(t *testing.T) {
	s := NewPerfCollector(10).Stats()
	if s.Ticks != 0 || s.AvgTick != 0 || s.TicksPerSecond != 0 {
		t.Errorf("empty stats = %+v", s)
	}
}

func TestPerfRow(t *testing.T) {
	var s PerfStats
	s.AvgTick = 250 * time.Microsecond
	s.MinTick = 100 * time.Microsecond
	s.MaxTick = 900 * time.Microsecond
	s.P95Tick = 800 * time.Microsecond
	s.PhasePct[PhasePredators] = 40
	s.PhasePct[PhaseFish] = 35

	row := s.Row(120)
	if row.WindowEnd != 120 {
		t.Errorf("WindowEnd = %d, want 120", row.WindowEnd)
	}
	if row.AvgTickUS != 250 || row.MinTickUS != 100 || row.MaxTickUS != 900 || row.P95TickUS != 800 {
		t.Errorf("timings = %+v", row)
	}
	if row.PredatorsPct != 40 || row.FishPct != 35 || row.FeedingPct != 0 {
		t.Errorf("phase pct = %v/%v/%v, want 40/35/0", row.PredatorsPct, row.FishPct, row.FeedingPct)
	}
}

func TestPhaseString(t *testing.T) {
	if PhaseTelemetry.String() != "telemetry" || Phase(99).String() != "unknown" {
		t.Errorf("names: %q %q", PhaseTelemetry.String(), Phase(99).String())
	}
}
