// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Field      FieldConfig      `yaml:"field"`
	Sim        SimConfig        `yaml:"sim"`
	Population PopulationConfig `yaml:"population"`
	Fish       FishConfig       `yaml:"fish"`
	Dolphin    PredatorConfig   `yaml:"dolphin"`
	Shark      PredatorConfig   `yaml:"shark"`
	Migration  MigrationConfig  `yaml:"migration"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// FieldConfig holds the pond dimensions in pixels.
type FieldConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// SimConfig holds tick pacing and run length.
type SimConfig struct {
	TPS      int `yaml:"tps"`       // ticks per simulated second
	MaxTicks int `yaml:"max_ticks"` // stop after N ticks (0 = unlimited)
}

// PopulationConfig holds starting counts and capacities.
type PopulationConfig struct {
	InitialFish     int `yaml:"initial_fish"`
	InitialDolphins int `yaml:"initial_dolphins"`
	InitialSharks   int `yaml:"initial_sharks"`
	MaxFish         int `yaml:"max_fish"`
	MaxPredator     int `yaml:"max_predator"` // dolphins and sharks together
}

// FishConfig holds fish parameters.
type FishConfig struct {
	Speed          float64 `yaml:"speed"`
	LifetimeMin    int     `yaml:"lifetime_min"` // child lifetime drawn from [min, max]
	LifetimeMax    int     `yaml:"lifetime_max"`
	ProcreationAge int     `yaml:"procreation_age"` // 0 = lifetime/2
	StartSize      float64 `yaml:"start_size"`
	MaxSize        float64 `yaml:"max_size"`
}

// PredatorConfig holds parameters shared by dolphins and sharks.
type PredatorConfig struct {
	Speed            float64 `yaml:"speed"`
	VisionRadius     float64 `yaml:"vision_radius"`
	Lifetime         int     `yaml:"lifetime"`
	ProcreationMeals int     `yaml:"procreation_meals"` // procreate once meals exceed this
	Width            float64 `yaml:"width"`
	Height           float64 `yaml:"height"`
}

// MigrationConfig holds pond identity and channel sizing.
type MigrationConfig struct {
	PondName   string  `yaml:"pond_name"`
	BufferSize int     `yaml:"buffer_size"` // inbox/outbox capacity
	EdgeChance float64 `yaml:"edge_chance"` // probability a fish hitting the edge asks to migrate
	Neighbor   string  `yaml:"neighbor"`    // destination for edge migrations
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"` // seconds of simulated time
	BookmarkHistorySize int     `yaml:"bookmark_history_size"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT          float64 // seconds per tick (1 / TPS)
	WindowTicks int     // ticks per telemetry window
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are broken: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.ComputeDerived()

	return cfg, nil
}

// ComputeDerived calculates values derived from loaded config.
// Call it again after editing a Config in code.
func (c *Config) ComputeDerived() {
	if c.Sim.TPS > 0 {
		c.Derived.DT = 1.0 / float64(c.Sim.TPS)
	}
	c.Derived.WindowTicks = int(c.Telemetry.StatsWindow * float64(c.Sim.TPS))
	if c.Derived.WindowTicks < 1 {
		c.Derived.WindowTicks = 1
	}

	if c.Migration.PondName == "" {
		c.Migration.PondName = "pond"
	}
}

// Predator returns the config block for a predator variant name ("dolphin" or "shark").
func (c *Config) Predator(name string) *PredatorConfig {
	switch name {
	case "dolphin":
		return &c.Dolphin
	case "shark":
		return &c.Shark
	}
	return nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
