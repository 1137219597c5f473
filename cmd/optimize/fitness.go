package main

import (
	"math"
	"sync"

	"github.com/pthm-cable/aquarium/config"
	"github.com/pthm-cable/aquarium/pond"
	"github.com/pthm-cable/aquarium/telemetry"
)

// FitnessEvaluator runs headless ponds and computes fitness.
type FitnessEvaluator struct {
	params     *ParamVector
	maxTicks   int
	seeds      []int64
	baseConfig *config.Config

	// Best run tracking
	mu          sync.Mutex
	bestFitness float64
	bestHistory []telemetry.PopulationSample
	lastQuality float64 // quality from most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxTicks:    maxTicks,
		seeds:       seeds,
		baseConfig:  baseCfg,
		bestFitness: math.Inf(1),
	}
}

// BestHistory returns the population history of the best seed of the best evaluation.
func (fe *FitnessEvaluator) BestHistory() []telemetry.PopulationSample {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.bestHistory
}

// LastQuality returns the quality score from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// runResult holds the results from a single pond run.
type runResult struct {
	survivalTicks int                     // ticks before the first species died out (or maxTicks)
	windowStats   []telemetry.WindowStats // collected via the stats callback each window
	history       []telemetry.PopulationSample
	err           error
}

// seedResult holds the result from one seed evaluation.
type seedResult struct {
	fitness float64
	quality float64
	history []telemetry.PopulationSample
}

// invalidFitness scores parameter sets the pond rejects.
const invalidFitness = 0

// Evaluate computes fitness for a parameter vector (lower = better).
// Fitness is negative survival ticks: longer coexistence = lower (better) fitness.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			result := fe.runSimulation(x, s)
			if result.err != nil {
				results[idx] = seedResult{fitness: invalidFitness}
				return
			}
			results[idx] = seedResult{
				fitness: fe.computeFitness(result),
				quality: fe.computeQuality(result.windowStats),
				history: result.history,
			}
		}(i, seed)
	}
	wg.Wait()

	var totalFitness, totalQuality float64
	bestSeedFitness := math.Inf(1)
	var bestSeedHistory []telemetry.PopulationSample

	for _, r := range results {
		totalFitness += r.fitness
		totalQuality += r.quality
		if r.fitness < bestSeedFitness {
			bestSeedFitness = r.fitness
			bestSeedHistory = r.history
		}
	}

	n := float64(len(fe.seeds))
	avgFitness := totalFitness / n

	fe.mu.Lock()
	if avgFitness < fe.bestFitness {
		fe.bestFitness = avgFitness
		fe.bestHistory = bestSeedHistory
	}
	fe.lastQuality = totalQuality / n
	fe.mu.Unlock()

	return avgFitness
}

// runSimulation executes a single headless pond run.
// Runs until fish, dolphins or sharks die out, or maxTicks, whichever comes first.
func (fe *FitnessEvaluator) runSimulation(x []float64, seed int64) *runResult {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	result := &runResult{}

	p, err := pond.New(cfg, pond.Options{Seed: seed})
	if err != nil {
		result.err = err
		return result
	}
	defer p.Close()
	p.SetStatsCallback(func(stats telemetry.WindowStats) {
		result.windowStats = append(result.windowStats, stats)
	})

	result.survivalTicks = fe.maxTicks
	for p.Tick() < fe.maxTicks {
		p.Step()

		c := p.Counts()
		if c.Fish == 0 || c.Dolphins == 0 || c.Sharks == 0 {
			result.survivalTicks = c.Tick
			break
		}
	}

	result.history = p.History()
	return result
}

// copyConfig creates a copy of the base config.
// Config holds only value fields, so a struct copy is deep.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	return &cfg
}

// computeFitness calculates the scalar fitness (lower = better).
// Formula: -(survivalTicks × (1.0 + 0.2 × quality))
func (fe *FitnessEvaluator) computeFitness(r *runResult) float64 {
	survival := float64(r.survivalTicks)
	quality := fe.computeQuality(r.windowStats)
	return -(survival * (1.0 + 0.2*quality))
}

// Quality component weights.
const (
	qualityWeightRatio     = 0.40
	qualityWeightStability = 0.35
	qualityWeightHunting   = 0.25

	qualityWarmupWindows = 1  // skip first N windows (warmup)
	qualityTargetRatio   = 10 // fish per predator
)

// computeQuality computes pond quality in [0, 1] from window stats.
func (fe *FitnessEvaluator) computeQuality(windows []telemetry.WindowStats) float64 {
	if len(windows) <= qualityWarmupWindows {
		return 0
	}
	valid := windows[qualityWarmupWindows:]

	var ratioSum, huntSum float64
	var ratioCount, huntCount int
	fishCounts := make([]float64, 0, len(valid))
	predCounts := make([]float64, 0, len(valid))

	for _, w := range valid {
		preds := w.DolphinCount + w.SharkCount
		if w.FishCount == 0 || preds == 0 {
			continue
		}
		fishCounts = append(fishCounts, float64(w.FishCount))
		predCounts = append(predCounts, float64(preds))

		// 1. Population ratio score
		logErr := math.Log(float64(w.FishCount) / float64(preds) / qualityTargetRatio)
		ratioSum += math.Exp(-logErr * logErr)
		ratioCount++

		// 2. Both predator kinds get fed
		if w.DolphinMeals+w.SharkMeals > 0 {
			share := float64(w.DolphinMeals) / float64(w.DolphinMeals+w.SharkMeals)
			huntSum += 1 - math.Abs(share-0.5)*2
			huntCount++
		}
	}

	if ratioCount == 0 {
		return 0
	}

	ratioScore := ratioSum / float64(ratioCount)

	stabilityScore := 0.0
	if len(fishCounts) >= 2 {
		cvFish := telemetry.CoefficientOfVariation(fishCounts)
		cvPred := telemetry.CoefficientOfVariation(predCounts)
		stabilityScore = math.Exp(-(cvFish*cvFish + cvPred*cvPred))
	}

	huntScore := 0.0
	if huntCount > 0 {
		huntScore = huntSum / float64(huntCount)
	}

	quality := qualityWeightRatio*ratioScore +
		qualityWeightStability*stabilityScore +
		qualityWeightHunting*huntScore

	return min(max(quality, 0), 1)
}
