// Package main searches pond parameters under which fish, dolphins and sharks
// coexist for as long as possible.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/aquarium/config"
)

// formatDuration formats a duration as HH:MM:SS or MM:SS for shorter durations.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

// evalRecord is one row of optimize_log.csv.
type evalRecord struct {
	Eval          int     `csv:"eval"`
	Fitness       float64 `csv:"fitness"`
	Quality       float64 `csv:"quality"`
	FishProcAge   float64 `csv:"fish_procreation_age"`
	FishLifetime  float64 `csv:"fish_lifetime_max"`
	DolphinMeals  float64 `csv:"dolphin_procreation_meals"`
	DolphinVision float64 `csv:"dolphin_vision_radius"`
	SharkMeals    float64 `csv:"shark_procreation_meals"`
	SharkVision   float64 `csv:"shark_vision_radius"`
	MaxFish       float64 `csv:"max_fish"`
}

func newEvalRecord(eval int, fitness, quality float64, v []float64) evalRecord {
	return evalRecord{
		Eval:          eval,
		Fitness:       fitness,
		Quality:       quality,
		FishProcAge:   v[0],
		FishLifetime:  v[1],
		DolphinMeals:  v[2],
		DolphinVision: v[3],
		SharkMeals:    v[4],
		SharkVision:   v[5],
		MaxFish:       v[6],
	}
}

func newMethod(name string, dim, population int) (optimize.Method, error) {
	switch name {
	case "cmaes":
		if population == 0 {
			population = 4 + int(3.0*float64(dim)/2.0)
		}
		return &optimize.CmaEsChol{InitStepSize: 0.3, Population: population}, nil
	case "neldermead":
		return &optimize.NelderMead{InitialVertices: nil, SimplexSize: 0.3}, nil
	}
	return nil, fmt.Errorf("unknown method %q (want cmaes or neldermead)", name)
}

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	maxTicks := flag.Int("max-ticks", 20000, "Maximum pond run length in ticks (cap)")
	seeds := flag.Int("seeds", 3, "Number of seeds per evaluation")
	maxEvals := flag.Int("max-evals", 200, "Maximum number of evaluations")
	population := flag.Int("population", 0, "CMA-ES population size (0 = auto)")
	methodName := flag.String("method", "cmaes", "Optimization method: cmaes or neldermead")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}

	// Pond runs log creation and shutdown; keep only warnings
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	baseCfg := config.Cfg()

	params := NewParamVector()

	evalSeeds := make([]int64, *seeds)
	for i := range evalSeeds {
		evalSeeds[i] = int64(i*1000 + 42)
	}

	evaluator := NewFitnessEvaluator(params, *maxTicks, evalSeeds, baseCfg)

	dim := params.Dim()
	initX := params.Normalize(params.ExtractFromConfig(baseCfg))

	method, err := newMethod(*methodName, dim, *population)
	if err != nil {
		log.Fatal(err)
	}

	settings := &optimize.Settings{
		FuncEvaluations: *maxEvals,
		Concurrent:      0, // Sequential evaluation
	}

	logPath := filepath.Join(*outputDir, "optimize_log.csv")
	logFile, err := os.Create(logPath)
	if err != nil {
		log.Fatalf("failed to create log file: %v", err)
	}
	defer logFile.Close()
	headerWritten := false

	evalCount := 0
	bestFitness := 1e9
	var bestParams []float64
	startTime := time.Now()

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			raw := params.Denormalize(x)
			fitness := evaluator.Evaluate(raw)
			evalCount++

			// Log clamped values (these are the values actually used)
			clamped := params.Clamp(raw)
			if fitness < bestFitness {
				bestFitness = fitness
				bestParams = clamped
			}

			quality := evaluator.LastQuality()
			records := []evalRecord{newEvalRecord(evalCount, fitness, quality, clamped)}
			if !headerWritten {
				err = gocsv.Marshal(records, logFile)
				headerWritten = true
			} else {
				err = gocsv.MarshalWithoutHeaders(records, logFile)
			}
			if err != nil {
				log.Printf("failed to write eval log: %v", err)
			}

			elapsed := time.Since(startTime)
			avgPerEval := elapsed / time.Duration(evalCount)
			remaining := time.Duration(*maxEvals-evalCount) * avgPerEval

			// Fitness = -(survivalTicks × (1 + 0.2×quality))
			survivalTicks := -fitness / (1.0 + 0.2*quality)
			fmt.Printf("Eval %d/%d: survived=%.0f ticks quality=%.2f (best=%.0f) | elapsed: %s, ETA: %s\n",
				evalCount, *maxEvals, survivalTicks, quality, bestFitness,
				formatDuration(elapsed), formatDuration(remaining))

			return fitness
		},
	}

	fmt.Printf("Starting %s optimization with %d parameters, max_evals=%d\n", *methodName, dim, *maxEvals)
	fmt.Printf("Seeds per evaluation: %d, ticks per run: %d\n", *seeds, *maxTicks)

	result, err := optimize.Minimize(problem, initX, settings, method)
	if err != nil {
		log.Printf("optimization ended: %v", err)
	}

	// Use best params found (may be from any evaluation, not just final)
	if bestParams == nil && result != nil {
		bestParams = params.Clamp(params.Denormalize(result.X))
	}
	if bestParams == nil {
		log.Fatal("no evaluation completed")
	}

	fmt.Printf("\nOptimization complete after %d evaluations in %s\n", evalCount, formatDuration(time.Since(startTime)))
	fmt.Printf("Best fitness: %.0f\n", bestFitness)

	fmt.Println("\nBest parameters:")
	for i, spec := range params.Specs {
		fmt.Printf("  %s (%s): %.3f\n", spec.Name, spec.Path, bestParams[i])
	}

	bestCfg := *baseCfg
	params.ApplyToConfig(&bestCfg, bestParams)

	configOutPath := filepath.Join(*outputDir, "best_config.yaml")
	if err := bestCfg.WriteYAML(configOutPath); err != nil {
		log.Printf("failed to write best config: %v", err)
	} else {
		fmt.Printf("\nBest config saved to: %s\n", configOutPath)
	}

	// Population curve of the best run
	if history := evaluator.BestHistory(); len(history) > 0 {
		histPath := filepath.Join(*outputDir, "best_population.csv")
		f, err := os.Create(histPath)
		if err != nil {
			log.Printf("failed to create %s: %v", histPath, err)
			return
		}
		defer f.Close()
		if err := gocsv.Marshal(history, f); err != nil {
			log.Printf("failed to write best population: %v", err)
		} else {
			fmt.Printf("Best population history saved to: %s\n", histPath)
		}
	}
}
