package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfiguration is wrapped by every error returned from Validate.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// minLifetime keeps lifetime/2 at or above one tick so the fish growth rate is defined.
const minLifetime = 2

// Validate checks the configuration and returns the first problem found.
func (c *Config) Validate() error {
	positiveInts := []struct {
		name  string
		value int
	}{
		{"field.width", c.Field.Width},
		{"field.height", c.Field.Height},
		{"sim.tps", c.Sim.TPS},
		{"population.max_fish", c.Population.MaxFish},
		{"population.max_predator", c.Population.MaxPredator},
		{"fish.lifetime_min", c.Fish.LifetimeMin},
		{"fish.lifetime_max", c.Fish.LifetimeMax},
		{"dolphin.lifetime", c.Dolphin.Lifetime},
		{"shark.lifetime", c.Shark.Lifetime},
	}
	for _, p := range positiveInts {
		if p.value <= 0 {
			return invalid("%s must be positive, got %d", p.name, p.value)
		}
	}

	positiveFloats := []struct {
		name  string
		value float64
	}{
		{"fish.speed", c.Fish.Speed},
		{"fish.start_size", c.Fish.StartSize},
		{"fish.max_size", c.Fish.MaxSize},
		{"dolphin.speed", c.Dolphin.Speed},
		{"dolphin.vision_radius", c.Dolphin.VisionRadius},
		{"dolphin.width", c.Dolphin.Width},
		{"dolphin.height", c.Dolphin.Height},
		{"shark.speed", c.Shark.Speed},
		{"shark.vision_radius", c.Shark.VisionRadius},
		{"shark.width", c.Shark.Width},
		{"shark.height", c.Shark.Height},
		{"telemetry.stats_window", c.Telemetry.StatsWindow},
	}
	for _, p := range positiveFloats {
		if p.value <= 0 {
			return invalid("%s must be positive, got %g", p.name, p.value)
		}
	}

	if c.Fish.LifetimeMin < minLifetime {
		return invalid("fish.lifetime_min must be at least %d, got %d", minLifetime, c.Fish.LifetimeMin)
	}
	if c.Fish.LifetimeMin > c.Fish.LifetimeMax {
		return invalid("fish.lifetime_min (%d) exceeds fish.lifetime_max (%d)", c.Fish.LifetimeMin, c.Fish.LifetimeMax)
	}
	if c.Fish.ProcreationAge < 0 {
		return invalid("fish.procreation_age must not be negative, got %d", c.Fish.ProcreationAge)
	}
	if c.Fish.StartSize > c.Fish.MaxSize {
		return invalid("fish.start_size (%g) exceeds fish.max_size (%g)", c.Fish.StartSize, c.Fish.MaxSize)
	}
	if c.Dolphin.ProcreationMeals < 0 || c.Shark.ProcreationMeals < 0 {
		return invalid("procreation_meals must not be negative")
	}

	if c.Population.InitialFish < 0 || c.Population.InitialDolphins < 0 || c.Population.InitialSharks < 0 {
		return invalid("initial population counts must not be negative")
	}
	if c.Population.InitialFish > c.Population.MaxFish {
		return invalid("population.initial_fish (%d) exceeds population.max_fish (%d)",
			c.Population.InitialFish, c.Population.MaxFish)
	}
	if preds := c.Population.InitialDolphins + c.Population.InitialSharks; preds > c.Population.MaxPredator {
		return invalid("initial predators (%d) exceed population.max_predator (%d)", preds, c.Population.MaxPredator)
	}

	if c.Migration.BufferSize < 0 {
		return invalid("migration.buffer_size must not be negative, got %d", c.Migration.BufferSize)
	}
	if c.Migration.EdgeChance < 0 || c.Migration.EdgeChance > 1 {
		return invalid("migration.edge_chance must be in [0, 1], got %g", c.Migration.EdgeChance)
	}

	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfiguration, fmt.Sprintf(format, args...))
}
