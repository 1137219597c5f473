package pond

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/aquarium/components"
	"github.com/pthm-cable/aquarium/config"
	"github.com/pthm-cable/aquarium/migration"
	"github.com/pthm-cable/aquarium/systems"
)

// minMigrantLifetime floors arriving lifetimes so growth and procreation
// thresholds stay positive.
const minMigrantLifetime = 2

// spawnInitialPopulation creates the starting fish and predators.
func (p *Pond) spawnInitialPopulation() {
	pop := p.cfg.Population
	for i := 0; i < pop.InitialFish; i++ {
		p.spawnFish(p.field.RandomPosition(p.rng), systems.RandomHeading(p.rng))
	}
	for i := 0; i < pop.InitialDolphins; i++ {
		p.spawnPredator(components.KindDolphin, p.field.RandomPosition(p.rng), systems.RandomHeading(p.rng))
	}
	for i := 0; i < pop.InitialSharks; i++ {
		p.spawnPredator(components.KindShark, p.field.RandomPosition(p.rng), systems.RandomHeading(p.rng))
	}
}

// SpawnFish adds a newborn fish at (x, y). Its position is clamped into the field.
func (p *Pond) SpawnFish(x, y int, heading float64) (uuid.UUID, error) {
	if p.numFish >= p.cfg.Population.MaxFish {
		return uuid.Nil, fmt.Errorf("spawning fish: %w", ErrPopulationFull)
	}
	pos := p.clampPosition(x, y)
	e := p.spawnFish(pos, heading)
	return p.fishMap.Get(e).ID, nil
}

// SpawnPredator adds a predator of the given kind at (x, y).
func (p *Pond) SpawnPredator(kind components.Kind, x, y int, heading float64) error {
	if !kind.IsPredator() {
		return fmt.Errorf("spawning %s: %w", kind, ErrNotPredator)
	}
	if p.numDolphins+p.numSharks >= p.cfg.Population.MaxPredator {
		return fmt.Errorf("spawning %s: %w", kind, ErrPopulationFull)
	}
	p.spawnPredator(kind, p.clampPosition(x, y), heading)
	return nil
}

func (p *Pond) clampPosition(x, y int) components.Position {
	pos := components.Position{X: x, Y: y}
	pos.X = max(0, min(pos.X, p.field.Width))
	pos.Y = max(0, min(pos.Y, p.field.Height))
	return pos
}

// newID returns the next pond-local agent id.
func (p *Pond) newID() uint32 {
	id := p.nextID
	p.nextID++
	return id
}

// spawnFish creates a newborn fish with a lifetime drawn from the config range.
func (p *Pond) spawnFish(pos components.Position, heading float64) ecs.Entity {
	cfg := &p.cfg.Fish
	lifetime := systems.ChildLifetime(p.rng, cfg.LifetimeMin, cfg.LifetimeMax)

	p.nextFishNum++
	fish := components.Fish{
		ID:      uuid.New(),
		Name:    fmt.Sprintf("%s-%d", p.name, p.nextFishNum),
		Genesis: p.name,
		Size:    cfg.StartSize,
		Status:  components.StatusLocal,
	}
	return p.addFish(pos, heading, 0, lifetime, fish)
}

// spawnMigrant admits a fish that arrived from another pond. It stays pending
// until its approval arrives.
func (p *Pond) spawnMigrant(m migration.Migrant) ecs.Entity {
	lifetime := max(m.Lifetime, minMigrantLifetime)
	size := m.Size
	if size <= 0 {
		size = p.cfg.Fish.StartSize
	}
	size = min(size, p.cfg.Fish.MaxSize)

	fish := components.Fish{
		ID:      m.ID,
		Name:    m.Name,
		Genesis: m.Genesis,
		Size:    size,
		Status:  components.StatusPending,
	}
	return p.addFish(p.field.RandomPosition(p.rng), m.Heading, m.Age, lifetime, fish)
}

// addFish inserts a fish entity and updates bookkeeping.
func (p *Pond) addFish(pos components.Position, heading float64, age, lifetime int, fish components.Fish) ecs.Entity {
	cfg := &p.cfg.Fish
	fish.GrowthRate = systems.GrowthRate(cfg.MaxSize, lifetime)
	fish.ProcreationAge = systems.FishProcreationAge(cfg.ProcreationAge, lifetime)

	mot := components.Motion{Heading: heading, Speed: cfg.Speed}
	body := components.Body{Width: fish.Size, Height: fish.Size}
	life := components.Life{ID: p.newID(), Age: age, Lifetime: lifetime, Alive: true}

	e := p.fishMapper.NewEntity(&pos, &mot, &body, &life, &fish)
	p.fishByID[fish.ID] = e
	p.numFish++
	p.lifetimeTracker.Register(life.ID, components.KindFish, p.tick)

	return e
}

// spawnPredator creates a predator of the given kind.
func (p *Pond) spawnPredator(kind components.Kind, pos components.Position, heading float64) ecs.Entity {
	cfg := p.predatorConfig(kind)

	mot := components.Motion{Heading: heading, Speed: cfg.Speed}
	body := components.Body{Width: cfg.Width, Height: cfg.Height}
	life := components.Life{ID: p.newID(), Lifetime: cfg.Lifetime, Alive: true}
	hunter := components.Hunter{
		Kind:             kind,
		VisionRadius:     cfg.VisionRadius,
		ProcreationMeals: cfg.ProcreationMeals,
	}

	e := p.predMapper.NewEntity(&pos, &mot, &body, &life, &hunter)
	if kind == components.KindDolphin {
		p.numDolphins++
	} else {
		p.numSharks++
	}
	p.lifetimeTracker.Register(life.ID, kind, p.tick)

	return e
}

func (p *Pond) predatorConfig(kind components.Kind) *config.PredatorConfig {
	return p.cfg.Predator(kind.String())
}
