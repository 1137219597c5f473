package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pthm-cable/aquarium/config"
	"github.com/pthm-cable/aquarium/migration"
	"github.com/pthm-cable/aquarium/pond"
)

// runOptions carries CLI settings shared by every pond in a run.
type runOptions struct {
	seed        int64
	maxTicks    int
	logStats    bool
	outputDir   string
	snapshotDir string
}

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	snapshotDir := flag.String("snapshot-dir", "", "Directory for snapshot files")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = use sim.max_ticks)")
	ponds := flag.String("ponds", "", "Comma-separated pond names to run linked in a ring (empty = single pond)")
	edgeChance := flag.Float64("edge-chance", -1, "Probability a fish at the edge asks to migrate (-1 = use config)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Use config stats window if not overridden by CLI
	if *statsWindow > 0 {
		cfg.Telemetry.StatsWindow = *statsWindow
	}
	if *edgeChance >= 0 {
		cfg.Migration.EdgeChance = *edgeChance
	}
	cfg.ComputeDerived()

	opts := runOptions{
		seed:        *seed,
		maxTicks:    *maxTicks,
		logStats:    *logStats,
		outputDir:   *outputDir,
		snapshotDir: *snapshotDir,
	}
	if opts.seed == 0 {
		opts.seed = time.Now().UnixNano()
	}
	if opts.maxTicks == 0 {
		opts.maxTicks = cfg.Sim.MaxTicks
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	names := splitNames(*ponds)
	if len(names) <= 1 {
		if len(names) == 1 {
			cfg.Migration.PondName = names[0]
		}
		err = runSingle(ctx, cfg, opts)
	} else {
		err = runLinked(ctx, cfg, names, opts)
	}
	if err != nil {
		slog.Error("simulation failed", "error", err)
		os.Exit(1)
	}
}

func splitNames(list string) []string {
	var names []string
	for _, n := range strings.Split(list, ",") {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	return names
}

// runSingle runs one pond headless with migration disabled.
func runSingle(ctx context.Context, cfg *config.Config, opts runOptions) error {
	p, err := pond.New(cfg, pond.Options{
		Seed:        opts.seed,
		LogStats:    opts.logStats,
		OutputDir:   opts.outputDir,
		SnapshotDir: opts.snapshotDir,
	})
	if err != nil {
		return err
	}

	slog.Info("simulation_start",
		"pond", p.Name(),
		"seed", opts.seed,
		"stats_window", cfg.Telemetry.StatsWindow,
		"max_ticks", opts.maxTicks,
	)

	runErr := runPond(ctx, p, opts.maxTicks)
	if err := p.Close(); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}

// runLinked runs several ponds concurrently, each migrating to the next
// name in the list and the last one back to the first.
func runLinked(ctx context.Context, base *config.Config, names []string, opts runOptions) error {
	router := migration.NewRouter()
	ponds := make([]*pond.Pond, 0, len(names))
	defer func() {
		for _, p := range ponds {
			if err := p.Close(); err != nil {
				slog.Warn("close failed", "pond", p.Name(), "error", err)
			}
		}
	}()

	for i, name := range names {
		cfg := *base
		cfg.Migration.PondName = name
		cfg.Migration.Neighbor = names[(i+1)%len(names)]

		ep := migration.NewEndpoint(name, cfg.Migration.BufferSize)
		if err := router.Register(ep); err != nil {
			return err
		}

		outDir := ""
		if opts.outputDir != "" {
			outDir = filepath.Join(opts.outputDir, name)
		}

		p, err := pond.New(&cfg, pond.Options{
			Seed:        opts.seed + int64(i),
			Endpoint:    ep,
			LogStats:    opts.logStats,
			OutputDir:   outDir,
			SnapshotDir: opts.snapshotDir,
		})
		if err != nil {
			return fmt.Errorf("pond %s: %w", name, err)
		}
		ponds = append(ponds, p)
	}

	slog.Info("simulation_start",
		"ponds", names,
		"seed", opts.seed,
		"stats_window", base.Telemetry.StatsWindow,
		"edge_chance", base.Migration.EdgeChance,
		"max_ticks", opts.maxTicks,
	)

	routerCtx, stopRouter := context.WithCancel(ctx)
	defer stopRouter()
	routerDone := make(chan error, 1)
	go func() { routerDone <- router.Run(routerCtx) }()

	g, gctx := errgroup.WithContext(ctx)
	for _, p := range ponds {
		g.Go(func() error { return runPond(gctx, p, opts.maxTicks) })
	}
	err := g.Wait()

	stopRouter()
	if rerr := <-routerDone; rerr != nil && err == nil {
		err = rerr
	}
	return err
}

// runPond steps p until maxTicks (0 = unlimited) or ctx is cancelled.
func runPond(ctx context.Context, p *pond.Pond, maxTicks int) error {
	for {
		select {
		case <-ctx.Done():
			slog.Info("simulation interrupted", "pond", p.Name(), "tick", p.Tick())
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()
		default:
		}

		p.Step()

		if maxTicks > 0 && p.Tick() >= maxTicks {
			slog.Info("max ticks reached", "pond", p.Name(), "tick", p.Tick())
			return nil
		}
	}
}
