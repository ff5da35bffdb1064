// Package config provides configuration loading for the simulation.
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
	World      WorldConfig      `yaml:"world"`
	Agent      AgentConfig      `yaml:"agent"`
	Population PopulationConfig `yaml:"population"`
	Evolution  EvolutionConfig  `yaml:"evolution"`
	Pheromone  PheromoneConfig  `yaml:"pheromone"`
	Neural     NeuralConfig     `yaml:"neural"`
}

// WorldConfig holds voxel grid dimensions and headless seeding densities.
// Width and Depth are the footprint; Height is the vertical extent (ceiling).
type WorldConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	Depth  int `yaml:"depth"`

	// SurfaceY is the top of the initial soil fill (bedrock is always y=0).
	SurfaceY int `yaml:"surface_y"`

	// Seeding densities for the headless runner's world setup.
	FoodDensity   float64 `yaml:"food_density"`
	HazardDensity float64 `yaml:"hazard_density"`
}

// AgentConfig holds the per-agent health economy parameters.
type AgentConfig struct {
	MaxHealth   float64 `yaml:"max_health"`
	StepDrain   float64 `yaml:"step_drain"`   // health lost per tick (doubled on hazard cells)
	FoodRestore float64 `yaml:"food_restore"` // health restored by a successful eat
}

// PopulationConfig holds colony sizing parameters.
type PopulationConfig struct {
	Size    int `yaml:"size"`     // agents per generation (1 queen + size-1 workers)
	StepCap int `yaml:"step_cap"` // max ticks per generation
}

// EvolutionConfig holds selection and mutation parameters.
type EvolutionConfig struct {
	ArchiveSize      int     `yaml:"archive_size"`
	MutationRate     float64 `yaml:"mutation_rate"`
	MutationStrength float64 `yaml:"mutation_strength"`

	// Spawn-time jitter applied once to each worker's copy of the base genome.
	SpawnMutationRate     float64 `yaml:"spawn_mutation_rate"`
	SpawnMutationStrength float64 `yaml:"spawn_mutation_strength"`
}

// PheromoneConfig holds trail field parameters.
type PheromoneConfig struct {
	DecayRate   float64 `yaml:"decay_rate"`
	MoveDeposit float64 `yaml:"move_deposit"`
	EatDeposit  float64 `yaml:"eat_deposit"`
}

// NeuralConfig holds policy network topology.
// Input and output counts are fixed by the sensor layout and action set.
type NeuralConfig struct {
	Hidden int `yaml:"hidden"`
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used. The returned Config is
// owned by the caller; there is no global configuration state.
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
		// Unmarshal into the same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the configuration can drive a simulation.
func (c *Config) Validate() error {
	if c.World.Width < 1 || c.World.Height < 2 || c.World.Depth < 1 {
		return fmt.Errorf("config: world dimensions %dx%dx%d too small",
			c.World.Width, c.World.Height, c.World.Depth)
	}
	if c.World.SurfaceY < 1 || c.World.SurfaceY >= c.World.Height {
		return fmt.Errorf("config: surface_y %d outside (0, height)", c.World.SurfaceY)
	}
	if c.Population.Size < 1 {
		return fmt.Errorf("config: population size %d < 1", c.Population.Size)
	}
	if c.Population.StepCap < 1 {
		return fmt.Errorf("config: step cap %d < 1", c.Population.StepCap)
	}
	if c.Evolution.ArchiveSize < 1 {
		return fmt.Errorf("config: archive size %d < 1", c.Evolution.ArchiveSize)
	}
	if c.Neural.Hidden < 1 {
		return fmt.Errorf("config: hidden layer size %d < 1", c.Neural.Hidden)
	}
	if c.Agent.MaxHealth <= 0 {
		return fmt.Errorf("config: max health %v <= 0", c.Agent.MaxHealth)
	}
	for name, rate := range map[string]float64{
		"mutation_rate":       c.Evolution.MutationRate,
		"spawn_mutation_rate": c.Evolution.SpawnMutationRate,
		"decay_rate":          c.Pheromone.DecayRate,
	} {
		if rate < 0 || rate > 1 {
			return fmt.Errorf("config: %s %v outside [0,1]", name, rate)
		}
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
