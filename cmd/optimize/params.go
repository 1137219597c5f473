package main

import (
	"github.com/pthm-cable/aquarium/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Fish
			{Name: "fish_procreation_age", Path: "fish.procreation_age", Min: 10, Max: 150, Default: 50},
			{Name: "fish_lifetime_max", Path: "fish.lifetime_max", Min: 100, Max: 500, Default: 250},
			// Dolphins
			{Name: "dolphin_procreation_meals", Path: "dolphin.procreation_meals", Min: 2, Max: 60, Default: 30},
			{Name: "dolphin_vision_radius", Path: "dolphin.vision_radius", Min: 30, Max: 250, Default: 100},
			// Sharks
			{Name: "shark_procreation_meals", Path: "shark.procreation_meals", Min: 2, Max: 60, Default: 30},
			{Name: "shark_vision_radius", Path: "shark.vision_radius", Min: 30, Max: 250, Default: 80},
			// Population
			{Name: "max_fish", Path: "population.max_fish", Min: 50, Max: 400, Default: 100},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = min(max(v[i], spec.Min), spec.Max)
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct.
// Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	c := pv.Clamp(values)

	cfg.Fish.ProcreationAge = int(c[0])
	cfg.Fish.LifetimeMax = max(int(c[1]), cfg.Fish.LifetimeMin)

	cfg.Dolphin.ProcreationMeals = int(c[2])
	cfg.Dolphin.VisionRadius = c[3]

	cfg.Shark.ProcreationMeals = int(c[4])
	cfg.Shark.VisionRadius = c[5]

	cfg.Population.MaxFish = max(int(c[6]), cfg.Population.InitialFish)
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		float64(cfg.Fish.ProcreationAge),
		float64(cfg.Fish.LifetimeMax),
		float64(cfg.Dolphin.ProcreationMeals),
		cfg.Dolphin.VisionRadius,
		float64(cfg.Shark.ProcreationMeals),
		cfg.Shark.VisionRadius,
		float64(cfg.Population.MaxFish),
	}
}
