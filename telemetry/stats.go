package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int     `csv:"-"`
	WindowEndTick   int     `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Population counts at window end
	FishCount    int `csv:"fish"`
	DolphinCount int `csv:"dolphins"`
	SharkCount   int `csv:"sharks"`

	// Events during window
	FishBirths    int `csv:"fish_births"`
	DolphinBirths int `csv:"dolphin_births"`
	SharkBirths   int `csv:"shark_births"`
	FishDeaths    int `csv:"fish_deaths"` // includes eaten fish
	DolphinDeaths int `csv:"dolphin_deaths"`
	SharkDeaths   int `csv:"shark_deaths"`
	FishEaten     int `csv:"fish_eaten"`

	// Hunting
	DolphinMeals int `csv:"dolphin_meals"`
	SharkMeals   int `csv:"shark_meals"`

	// Migration
	MigrantsIn  int `csv:"migrants_in"`
	MigrantsOut int `csv:"migrants_out"`
	Bounced     int `csv:"bounced"`

	// Fish age distribution (ticks, sampled at window end)
	FishAgeMean float64 `csv:"fish_age_mean"`
	FishAgeP10  float64 `csv:"fish_age_p10"`
	FishAgeP50  float64 `csv:"fish_age_p50"`
	FishAgeP90  float64 `csv:"fish_age_p90"`

	// Fish size distribution (pixels, sampled at window end)
	FishSizeMean float64 `csv:"fish_size_mean"`
	FishSizeStd  float64 `csv:"fish_size_std"`

	// Mean lifespan (ticks) of agents that died during the window
	FishLifespanMean    float64 `csv:"fish_lifespan_mean"`
	DolphinLifespanMean float64 `csv:"dolphin_lifespan_mean"`
	SharkLifespanMean   float64 `csv:"shark_lifespan_mean"`
}

// Distribution summarizes a sample.
type Distribution struct {
	Mean, Std     float64
	P10, P50, P90 float64
}

// ComputeDistribution calculates mean, population standard deviation and
// empirical percentiles. Returns the zero value for an empty sample.
func ComputeDistribution(values []float64) Distribution {
	if len(values) == 0 {
		return Distribution{}
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mean, std := stat.PopMeanStdDev(sorted, nil)

	return Distribution{
		Mean: mean,
		Std:  std,
		P10:  stat.Quantile(0.10, stat.Empirical, sorted, nil),
		P50:  stat.Quantile(0.50, stat.Empirical, sorted, nil),
		P90:  stat.Quantile(0.90, stat.Empirical, sorted, nil),
	}
}

// CoefficientOfVariation returns std/mean of the sample, or 0 when the mean is 0.
func CoefficientOfVariation(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean, std := stat.PopMeanStdDev(values, nil)
	if mean == 0 {
		return 0
	}
	return std / mean
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"fish", s.FishCount,
		"dolphins", s.DolphinCount,
		"sharks", s.SharkCount,
		"fish_births", s.FishBirths,
		"dolphin_births", s.DolphinBirths,
		"shark_births", s.SharkBirths,
		"fish_deaths", s.FishDeaths,
		"dolphin_deaths", s.DolphinDeaths,
		"shark_deaths", s.SharkDeaths,
		"fish_eaten", s.FishEaten,
		"dolphin_meals", s.DolphinMeals,
		"shark_meals", s.SharkMeals,
		"migrants_in", s.MigrantsIn,
		"migrants_out", s.MigrantsOut,
		"bounced", s.Bounced,
		"fish_age_mean", s.FishAgeMean,
		"fish_age_p10", s.FishAgeP10,
		"fish_age_p50", s.FishAgeP50,
		"fish_age_p90", s.FishAgeP90,
		"fish_size_mean", s.FishSizeMean,
		"fish_size_std", s.FishSizeStd,
		"fish_lifespan_mean", s.FishLifespanMean,
		"dolphin_lifespan_mean", s.DolphinLifespanMean,
		"shark_lifespan_mean", s.SharkLifespanMean,
	)
}
