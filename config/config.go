// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Arena      ArenaConfig      `yaml:"arena"`
	Agent      AgentConfig      `yaml:"agent"`
	Neural     NeuralConfig     `yaml:"neural"`
	Population PopulationConfig `yaml:"population"`
	Mutation   MutationConfig   `yaml:"mutation"`
	Course     CourseConfig     `yaml:"course"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width      int `yaml:"width"`
	Height     int `yaml:"height"`
	TargetFPS  int `yaml:"target_fps"`
	PanelWidth int `yaml:"panel_width"` // HUD column to the right of the arena
}

// ArenaConfig holds the bounds agents must stay inside.
type ArenaConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// AgentConfig holds rocket physics and sensing parameters.
type AgentConfig struct {
	Gravity       float64 `yaml:"gravity"`
	ThrustPower   float64 `yaml:"thrust_power"`
	RotationSpeed float64 `yaml:"rotation_speed"` // Degrees per tick
	Damping       float64 `yaml:"damping"`
	HalfWidth     float64 `yaml:"half_width"`
	HalfHeight    float64 `yaml:"half_height"`

	SensorRange  float64   `yaml:"sensor_range"`
	SensorAngles []float64 `yaml:"sensor_angles"` // Degrees relative to heading

	VelocityScale float64 `yaml:"velocity_scale"`
	DistanceScale float64 `yaml:"distance_scale"`

	StuckInterval  int     `yaml:"stuck_interval"`
	StuckThreshold float64 `yaml:"stuck_threshold"`
	StuckLimit     int     `yaml:"stuck_limit"`

	TargetRadius float64 `yaml:"target_radius"`
}

// NeuralConfig holds neural network parameters.
type NeuralConfig struct {
	HiddenLayers []int `yaml:"hidden_layers"` // Sizes of hidden layers, e.g. [8]
	NumOutputs   int   `yaml:"num_outputs"`
}

// PopulationConfig holds generation parameters.
type PopulationConfig struct {
	Size           int `yaml:"size"`
	Lifetime       int `yaml:"lifetime"` // Ticks per generation
	EliteCount     int `yaml:"elite_count"`
	TournamentSize int `yaml:"tournament_size"`
}

// MutationConfig holds mutation parameters.
type MutationConfig struct {
	Rate     float64 `yaml:"rate"`
	Strength float64 `yaml:"strength"`
}

// Point is a position in arena coordinates.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// RectSpec is an axis-aligned rectangle, top-left corner plus size.
type RectSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// CourseConfig holds the course layout.
type CourseConfig struct {
	Start            Point      `yaml:"start"`
	Target           Point      `yaml:"target"`
	TargetDrawRadius float64    `yaml:"target_draw_radius"`
	CheckpointRadius float64    `yaml:"checkpoint_radius"`
	Checkpoints      []Point    `yaml:"checkpoints"`
	Obstacles        []RectSpec `yaml:"obstacles"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	LogInterval   int    `yaml:"log_interval"` // Generations between progress log lines
	GenerationCSV string `yaml:"generation_csv"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	NumInputs int     // len(Agent.SensorAngles) + 5
	Topology  []int   // NumInputs, hidden layers..., NumOutputs
	ScreenW32 float32 // Screen.Width as float32
	ScreenH32 float32 // Screen.Height as float32
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

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Clone returns a deep copy, so callers can tweak one run's settings
// without touching the original.
func (c *Config) Clone() *Config {
	out := *c
	out.Agent.SensorAngles = slices.Clone(c.Agent.SensorAngles)
	out.Neural.HiddenLayers = slices.Clone(c.Neural.HiddenLayers)
	out.Course.Checkpoints = slices.Clone(c.Course.Checkpoints)
	out.Course.Obstacles = slices.Clone(c.Course.Obstacles)
	out.Derived.Topology = slices.Clone(c.Derived.Topology)
	return &out
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
		// Only overwrites fields present in the file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	cfg.computeDerived()

	return cfg, nil
}

// Validate reports settings the simulation cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Population.Size < 1 {
		errs = append(errs, fmt.Errorf("population.size must be positive, got %d", c.Population.Size))
	}
	if c.Population.Lifetime < 1 {
		errs = append(errs, fmt.Errorf("population.lifetime must be positive, got %d", c.Population.Lifetime))
	}
	if c.Population.EliteCount < 0 || c.Population.EliteCount > c.Population.Size {
		errs = append(errs, fmt.Errorf("population.elite_count must be in [0, %d], got %d",
			c.Population.Size, c.Population.EliteCount))
	}
	if c.Population.TournamentSize < 1 {
		errs = append(errs, fmt.Errorf("population.tournament_size must be positive, got %d", c.Population.TournamentSize))
	}
	if c.Mutation.Rate < 0 || c.Mutation.Rate > 1 {
		errs = append(errs, fmt.Errorf("mutation.rate must be in [0, 1], got %v", c.Mutation.Rate))
	}
	if c.Neural.NumOutputs != 3 {
		errs = append(errs, fmt.Errorf("neural.num_outputs must be 3 (left, right, thrust), got %d", c.Neural.NumOutputs))
	}
	for i, h := range c.Neural.HiddenLayers {
		if h < 1 {
			errs = append(errs, fmt.Errorf("neural.hidden_layers[%d] must be positive, got %d", i, h))
		}
	}
	if c.Agent.StuckInterval < 1 {
		errs = append(errs, fmt.Errorf("agent.stuck_interval must be positive, got %d", c.Agent.StuckInterval))
	}
	return errors.Join(errs...)
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.NumInputs = len(c.Agent.SensorAngles) + 5 // sensors + vx, vy, distance, heading error, bias
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)

	topo := make([]int, 0, len(c.Neural.HiddenLayers)+2)
	topo = append(topo, c.Derived.NumInputs)
	topo = append(topo, c.Neural.HiddenLayers...)
	topo = append(topo, c.Neural.NumOutputs)
	c.Derived.Topology = topo
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
