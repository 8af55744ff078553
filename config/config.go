// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Poison phase regions accepted in zones.poison_phases.
const (
	PhaseNone  = "none"
	PhaseLeft  = "left"
	PhaseRight = "right"
)

// MaxSpeed is the upper bound of the controller speed multiplier.
const MaxSpeed = 256

// Config holds all simulation configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	World      WorldConfig      `yaml:"world"`
	Population PopulationConfig `yaml:"population"`
	Genome     GenomeConfig     `yaml:"genome"`
	Generation GenerationConfig `yaml:"generation"`
	Mutation   MutationConfig   `yaml:"mutation"`
	Zones      ZonesConfig      `yaml:"zones"`
	Speed      SpeedConfig      `yaml:"speed"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// WorldConfig holds the grid dimensions in cells.
type WorldConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// PopulationConfig holds population parameters.
type PopulationConfig struct {
	Cells int `yaml:"cells"` // Fixed cell count, must be smaller than the grid area
}

// GenomeConfig holds genome encoding parameters.
type GenomeConfig struct {
	Genes           int     `yaml:"genes"`            // Genes per genome
	WeightAmplitude float64 `yaml:"weight_amplitude"` // Decoded weights lie in [-A, A]
}

// GenerationConfig holds generation pacing parameters.
type GenerationConfig struct {
	Steps int `yaml:"steps"` // Simulate ticks per generation
}

// MutationConfig holds mutation parameters.
type MutationConfig struct {
	Rarity int `yaml:"rarity"` // Each gene bit flips with probability 1/rarity
}

// ZonesConfig holds food and poison zone parameters.
type ZonesConfig struct {
	FoodDivisor       int      `yaml:"food_divisor"`        // Food strip is col < width/food_divisor
	PoisonDeathRarity int      `yaml:"poison_death_rarity"` // Death chance per tick on poison is 1/rarity
	PoisonPhases      []string `yaml:"poison_phases"`       // Equal slices of a generation: none, left, right
}

// SpeedConfig holds the initial controller speed.
type SpeedConfig struct {
	Initial int `yaml:"initial"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	Plot bool `yaml:"plot"` // Render survivors.png when the output directory is closed
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Amplitude32 float32 // Genome.WeightAmplitude as float32
	Area        int     // World.Width * World.Height
	FoodCols    int     // Columns [0, FoodCols) are food
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

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Defaults returns a fresh copy of the embedded defaults.
func Defaults() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

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

// Validate rejects configurations the simulation cannot run.
func (c *Config) Validate() error {
	var errs []error
	if c.World.Width < 1 || c.World.Height < 1 {
		errs = append(errs, fmt.Errorf("world: size %dx%d must be positive", c.World.Width, c.World.Height))
	}
	if c.Population.Cells < 1 {
		errs = append(errs, fmt.Errorf("population: cells must be positive, got %d", c.Population.Cells))
	}
	// Placement is rejection sampling; the grid must always keep a free position.
	if area := c.World.Width * c.World.Height; c.Population.Cells >= area {
		errs = append(errs, fmt.Errorf("population: %d cells do not fit a grid of %d positions", c.Population.Cells, area))
	}
	if c.Genome.Genes < 1 {
		errs = append(errs, fmt.Errorf("genome: genes must be positive, got %d", c.Genome.Genes))
	}
	if c.Genome.WeightAmplitude <= 0 {
		errs = append(errs, fmt.Errorf("genome: weight_amplitude must be positive, got %v", c.Genome.WeightAmplitude))
	}
	if c.Generation.Steps < 1 {
		errs = append(errs, fmt.Errorf("generation: steps must be positive, got %d", c.Generation.Steps))
	}
	if c.Mutation.Rarity < 1 {
		errs = append(errs, fmt.Errorf("mutation: rarity must be at least 1, got %d", c.Mutation.Rarity))
	}
	if c.Zones.FoodDivisor < 1 {
		errs = append(errs, fmt.Errorf("zones: food_divisor must be at least 1, got %d", c.Zones.FoodDivisor))
	} else if c.World.Width/c.Zones.FoodDivisor < 1 {
		errs = append(errs, fmt.Errorf("zones: food_divisor %d leaves no food column in a world %d wide", c.Zones.FoodDivisor, c.World.Width))
	}
	if c.Zones.PoisonDeathRarity < 1 {
		errs = append(errs, fmt.Errorf("zones: poison_death_rarity must be at least 1, got %d", c.Zones.PoisonDeathRarity))
	}
	for _, phase := range c.Zones.PoisonPhases {
		switch phase {
		case PhaseNone, PhaseLeft, PhaseRight:
		default:
			errs = append(errs, fmt.Errorf("zones: unknown poison phase %q", phase))
		}
	}
	if c.Speed.Initial < 0 || c.Speed.Initial > MaxSpeed {
		errs = append(errs, fmt.Errorf("speed: initial must be in [0, %d], got %d", MaxSpeed, c.Speed.Initial))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// ComputeDerived calculates values derived from loaded config.
// Call it again after modifying a loaded Config in code.
func (c *Config) ComputeDerived() {
	c.Derived.Amplitude32 = float32(c.Genome.WeightAmplitude)
	c.Derived.Area = c.World.Width * c.World.Height
	c.Derived.FoodCols = 0
	if c.Zones.FoodDivisor > 0 {
		c.Derived.FoodCols = c.World.Width / c.Zones.FoodDivisor
	}
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
