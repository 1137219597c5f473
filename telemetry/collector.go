package telemetry

import "github.com/pthm-cable/aquarium/components"

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationTicks int
	dt                  float64

	// Current window tracking
	windowStartTick int

	// Event counters for current window, indexed by components.Kind
	births [3]int
	deaths [3]int
	meals  [3]int

	fishEaten   int
	migrantsIn  int
	migrantsOut int
	bounced     int

	// Lifespans of agents that died this window, by kind
	lifespans [3][]float64
}

// NewCollector creates a new stats collector.
// windowTicks: how many ticks each stats window lasts
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowTicks int, dt float64) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{
		windowDurationTicks: windowTicks,
		dt:                  dt,
	}
}

// RecordBirth records a birth.
func (c *Collector) RecordBirth(kind components.Kind) {
	c.births[kind]++
}

// RecordDeath records an agent leaving the pond along with how long it lived.
func (c *Collector) RecordDeath(kind components.Kind, cause DeathCause, lifespanTicks int) {
	switch cause {
	case CauseEaten:
		c.fishEaten++
	case CauseMigrate:
		c.migrantsOut++
		return // not a death
	}
	c.deaths[kind]++
	c.lifespans[kind] = append(c.lifespans[kind], float64(lifespanTicks))
}

// RecordMeal records a fish eaten by a predator of the given kind.
func (c *Collector) RecordMeal(kind components.Kind) {
	c.meals[kind]++
}

// RecordArrival records a fish that joined from another pond.
func (c *Collector) RecordArrival() {
	c.migrantsIn++
}

// RecordBounce records an arrival turned away because the pond was full.
func (c *Collector) RecordBounce() {
	c.bounced++
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// PopulationSample holds the population counts at one tick.
type PopulationSample struct {
	Tick     int `csv:"tick"`
	Fish     int `csv:"fish"`
	Dolphins int `csv:"dolphins"`
	Sharks   int `csv:"sharks"`
}

// Predators returns the combined predator count.
func (p PopulationSample) Predators() int {
	return p.Dolphins + p.Sharks
}

// Flush produces a WindowStats and resets counters for the next window.
// The caller provides the population at window end and the ages and sizes of
// the live fish for distribution statistics.
func (c *Collector) Flush(currentTick int, pop PopulationSample, fishAges, fishSizes []float64) WindowStats {
	ageDist := ComputeDistribution(fishAges)
	sizeDist := ComputeDistribution(fishSizes)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * c.dt,

		FishCount:    pop.Fish,
		DolphinCount: pop.Dolphins,
		SharkCount:   pop.Sharks,

		FishBirths:    c.births[components.KindFish],
		DolphinBirths: c.births[components.KindDolphin],
		SharkBirths:   c.births[components.KindShark],

		FishDeaths:    c.deaths[components.KindFish],
		DolphinDeaths: c.deaths[components.KindDolphin],
		SharkDeaths:   c.deaths[components.KindShark],
		FishEaten:     c.fishEaten,

		DolphinMeals: c.meals[components.KindDolphin],
		SharkMeals:   c.meals[components.KindShark],

		MigrantsIn:  c.migrantsIn,
		MigrantsOut: c.migrantsOut,
		Bounced:     c.bounced,

		FishAgeMean: ageDist.Mean,
		FishAgeP10:  ageDist.P10,
		FishAgeP50:  ageDist.P50,
		FishAgeP90:  ageDist.P90,

		FishSizeMean: sizeDist.Mean,
		FishSizeStd:  sizeDist.Std,

		FishLifespanMean:    ComputeDistribution(c.lifespans[components.KindFish]).Mean,
		DolphinLifespanMean: ComputeDistribution(c.lifespans[components.KindDolphin]).Mean,
		SharkLifespanMean:   ComputeDistribution(c.lifespans[components.KindShark]).Mean,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.births = [3]int{}
	c.deaths = [3]int{}
	c.meals = [3]int{}
	c.fishEaten = 0
	c.migrantsIn = 0
	c.migrantsOut = 0
	c.bounced = 0
	for i := range c.lifespans {
		c.lifespans[i] = c.lifespans[i][:0]
	}

	return stats
}
