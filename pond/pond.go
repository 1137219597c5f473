// Package pond runs one aquarium: fish, dolphins and sharks in a bounded field.
//
// A Pond owns every agent in an ark ECS world. Step advances the population
// by one tick; births, deaths and departures are collected while the ECS
// queries run and applied together at the end of the tick.
package pond

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/google/uuid"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/aquarium/components"
	"github.com/pthm-cable/aquarium/config"
	"github.com/pthm-cable/aquarium/migration"
	"github.com/pthm-cable/aquarium/systems"
	"github.com/pthm-cable/aquarium/telemetry"
)

// GridCellSize is the spatial grid cell size in pixels.
const GridCellSize = 64

var (
	// ErrUnknownFish is returned when no live fish has the requested id.
	ErrUnknownFish = errors.New("unknown fish")
	// ErrNotLocal is returned when a fish is pending approval or already leaving.
	ErrNotLocal = errors.New("fish is not local")
	// ErrNoRoute is returned when migration is requested on a pond without a channel.
	ErrNoRoute = errors.New("pond has no migration channel")
	// ErrInvalidDestination is returned for an empty destination or the pond itself.
	ErrInvalidDestination = errors.New("invalid migration destination")
	// ErrPopulationFull is returned by explicit spawns at capacity.
	ErrPopulationFull = errors.New("population at capacity")
	// ErrNotPredator is returned when SpawnPredator is given a non-predator kind.
	ErrNotPredator = errors.New("kind is not a predator")
	// ErrNoSnapshotDir is returned by SaveSnapshot when snapshots are disabled.
	ErrNoSnapshotDir = errors.New("no snapshot directory")
)

// Options configures a Pond beyond its Config.
type Options struct {
	Seed        int64
	Endpoint    *migration.Endpoint // nil disables migration
	LogStats    bool
	OutputDir   string // CSV and config output (empty = disabled)
	SnapshotDir string // JSON snapshots on bookmarks (empty = disabled)
}

// birth is a queued agent insertion.
type birth struct {
	kind     components.Kind
	parentID uint32
	pos      components.Position
}

// removal is a queued agent removal.
type removal struct {
	entity ecs.Entity
	kind   components.Kind
	id     uint32
	cause  telemetry.DeathCause
}

// Pond holds the complete state of one aquarium.
type Pond struct {
	cfg   *config.Config
	name  string
	seed  int64
	world *ecs.World
	rng   *rand.Rand
	field systems.Field

	fishMapper *ecs.Map5[
		components.Position,
		components.Motion,
		components.Body,
		components.Life,
		components.Fish,
	]
	fishFilter *ecs.Filter5[
		components.Position,
		components.Motion,
		components.Body,
		components.Life,
		components.Fish,
	]
	predMapper *ecs.Map5[
		components.Position,
		components.Motion,
		components.Body,
		components.Life,
		components.Hunter,
	]
	predFilter *ecs.Filter5[
		components.Position,
		components.Motion,
		components.Body,
		components.Life,
		components.Hunter,
	]

	posMap  *ecs.Map1[components.Position]
	motMap  *ecs.Map1[components.Motion]
	bodyMap *ecs.Map1[components.Body]
	lifeMap *ecs.Map1[components.Life]
	fishMap *ecs.Map1[components.Fish]

	// Spatial index of fish, rebuilt every tick
	fishGrid *systems.SpatialGrid
	overlap  *systems.OverlapQuery

	fishByID map[uuid.UUID]ecs.Entity

	// Migration
	endpoint *migration.Endpoint
	outQueue []migration.Event
	inbox    []migration.Event

	// Intents for the current tick
	births    []birth
	removals  []removal
	neighbors []systems.Neighbor
	hits      []ecs.Entity
	fishDelta int // queued fish births minus queued fish removals
	predDelta int // same for predators

	// State
	tick        int
	nextID      uint32
	nextFishNum int
	numFish     int
	numDolphins int
	numSharks   int
	history     []telemetry.PopulationSample

	// Telemetry
	collector        *telemetry.Collector
	lifetimeTracker  *telemetry.LifetimeTracker
	bookmarkDetector *telemetry.BookmarkDetector
	perfCollector    *telemetry.PerfCollector
	outputManager    *telemetry.OutputManager
	logStats         bool
	snapshotDir      string
	statsCallback    func(telemetry.WindowStats)
}

// New creates a pond, seeds its RNG and spawns the starting population.
func New(cfg *config.Config, opts Options) (*Pond, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.ComputeDerived()

	world := ecs.NewWorld()
	field := systems.Field{Width: cfg.Field.Width, Height: cfg.Field.Height}

	p := &Pond{
		cfg:   cfg,
		name:  cfg.Migration.PondName,
		seed:  opts.Seed,
		world: world,
		rng:   rand.New(rand.NewSource(opts.Seed)),
		field: field,
		fishMapper: ecs.NewMap5[
			components.Position,
			components.Motion,
			components.Body,
			components.Life,
			components.Fish,
		](world),
		fishFilter: ecs.NewFilter5[
			components.Position,
			components.Motion,
			components.Body,
			components.Life,
			components.Fish,
		](world),
		predMapper: ecs.NewMap5[
			components.Position,
			components.Motion,
			components.Body,
			components.Life,
			components.Hunter,
		](world),
		predFilter: ecs.NewFilter5[
			components.Position,
			components.Motion,
			components.Body,
			components.Life,
			components.Hunter,
		](world),
		posMap:   ecs.NewMap1[components.Position](world),
		motMap:   ecs.NewMap1[components.Motion](world),
		bodyMap:  ecs.NewMap1[components.Body](world),
		lifeMap:  ecs.NewMap1[components.Life](world),
		fishMap:  ecs.NewMap1[components.Fish](world),
		fishByID: make(map[uuid.UUID]ecs.Entity),
		endpoint: opts.Endpoint,

		collector:        telemetry.NewCollector(cfg.Derived.WindowTicks, cfg.Derived.DT),
		lifetimeTracker:  telemetry.NewLifetimeTracker(),
		bookmarkDetector: telemetry.NewBookmarkDetector(cfg.Telemetry.BookmarkHistorySize, cfg.Population.MaxFish),
		perfCollector:    telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		logStats:         opts.LogStats,
		snapshotDir:      opts.SnapshotDir,
	}

	p.fishGrid = systems.NewSpatialGrid(field, GridCellSize)
	p.overlap = systems.NewOverlapQuery(p.fishGrid, p.posMap, p.bodyMap, cfg.Fish.MaxSize)

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("pond %s: %w", p.name, err)
	}
	p.outputManager = om
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, fmt.Errorf("pond %s: writing config: %w", p.name, err)
	}

	p.spawnInitialPopulation()
	p.recordPopulation()

	slog.Info("pond created",
		"pond", p.name,
		"seed", p.seed,
		"fish", p.numFish,
		"dolphins", p.numDolphins,
		"sharks", p.numSharks,
	)

	return p, nil
}

// Name returns the pond's name on the migration channel.
func (p *Pond) Name() string { return p.name }

// Tick returns the number of completed steps.
func (p *Pond) Tick() int { return p.tick }

// Seed returns the RNG seed the pond was created with.
func (p *Pond) Seed() int64 { return p.seed }

// Counts returns the current population.
func (p *Pond) Counts() telemetry.PopulationSample {
	return telemetry.PopulationSample{
		Tick:     p.tick,
		Fish:     p.numFish,
		Dolphins: p.numDolphins,
		Sharks:   p.numSharks,
	}
}

// History returns the population recorded after every tick, starting with
// the initial population at tick 0.
func (p *Pond) History() []telemetry.PopulationSample {
	out := make([]telemetry.PopulationSample, len(p.history))
	copy(out, p.history)
	return out
}

// SetStatsCallback registers a function called with each flushed stats window.
func (p *Pond) SetStatsCallback(fn func(telemetry.WindowStats)) {
	p.statsCallback = fn
}

// Close flushes output files and logs a run summary.
func (p *Pond) Close() error {
	attrs := []any{"pond", p.name, "tick", p.tick, "fish", p.numFish, "dolphins", p.numDolphins, "sharks", p.numSharks}
	if id, top := p.lifetimeTracker.TopHunter(); top != nil {
		attrs = append(attrs, "top_hunter", id, "top_hunter_kind", top.Kind.String(), "top_hunter_meals", top.Meals)
	}
	slog.Info("pond closed", attrs...)
	return p.outputManager.Close()
}
