// Package envconfig provides configuration structs for configuring
// DICE environments with model parameters and tasks. Environment
// configurations in this package are YAML and JSON serializable.
package envconfig

import (
	"bytes"
	"fmt"
	"os"

	env "github.com/samuelfneumann/godice/environment"
	"github.com/samuelfneumann/godice/environment/dice"
	ts "github.com/samuelfneumann/godice/timestep"
	"gopkg.in/yaml.v3"
)

// TaskName stores the tasks that can be configured with this package
type TaskName string

// Tasks available for configuration
const (
	Welfare            TaskName = "Welfare"
	TemperatureCeiling TaskName = "TemperatureCeiling"
)

// Config implements a specific configuration of the DICE environment
// and a specific task
type Config struct {
	Task     TaskName `yaml:"task" json:"task"`
	Horizon  int      `yaml:"horizon" json:"horizon"`
	Discount float64  `yaml:"discount" json:"discount"`

	// TemperatureBound is the atmospheric temperature which ends
	// episodes of the TemperatureCeiling task
	TemperatureBound float64 `yaml:"temperature_bound" json:"temperature_bound"`

	// StartNoise is the relative width of the uniform box that
	// starting states are sampled from. A StartNoise of 0 always
	// starts in the calibrated initial state.
	StartNoise float64 `yaml:"start_noise" json:"start_noise"`

	Params dice.Params `yaml:"params" json:"params"`
}

// Default returns the configuration of the standard DICE-2007 run
func Default() Config {
	return Config{
		Task:     Welfare,
		Horizon:  dice.DefaultHorizon,
		Discount: 1.0,
		Params:   dice.DefaultParams(),
	}
}

// Load reads a YAML configuration file. Fields missing from the file
// keep their default values, unknown fields are an error.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load: could not read config: %w", err)
	}
	return Parse(data)
}

// Parse parses a YAML configuration. Fields missing from data keep
// their default values, unknown fields are an error.
func Parse(data []byte) (Config, error) {
	c := Default()

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&c); err != nil {
		return Config{}, fmt.Errorf("parse: could not decode config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("parse: %w", err)
	}
	return c, nil
}

// Validate returns an error if the configuration cannot create an
// environment
func (c Config) Validate() error {
	switch c.Task {
	case Welfare:
	case TemperatureCeiling:
		if c.TemperatureBound <= 0 {
			return fmt.Errorf("validate: task %v needs a positive "+
				"temperature_bound", c.Task)
		}
	default:
		return fmt.Errorf("validate: no such task %v", c.Task)
	}

	if c.Horizon <= 0 {
		return fmt.Errorf("validate: horizon must be positive \n\thave(%v)",
			c.Horizon)
	}
	if c.StartNoise < 0 {
		return fmt.Errorf("validate: start_noise must be non-negative")
	}
	return c.Params.Validate()
}

// Starter returns the starting state distribution described by the
// Config
func (c Config) Starter(seed uint64) (env.Starter, error) {
	start := c.Params.InitialState()
	if c.StartNoise == 0 {
		return env.NewConstantStarter(start), nil
	}

	// The time index always starts at 0
	noisy, err := env.NewPerturbedStarter(start, c.StartNoise, seed)
	if err != nil {
		return nil, fmt.Errorf("starter: %v", err)
	}
	return noisy, nil
}

// CreateTask returns the Task described by the Config
func (c Config) CreateTask(seed uint64) (dice.Task, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("createTask: %v", err)
	}

	s, err := c.Starter(seed)
	if err != nil {
		return nil, fmt.Errorf("createTask: %v", err)
	}

	var task dice.Task
	switch c.Task {
	case TemperatureCeiling:
		task, err = dice.NewTemperatureCeiling(s, c.Params, c.Horizon,
			c.TemperatureBound)
	default:
		task, err = dice.NewWelfare(s, c.Params, c.Horizon)
	}
	if err != nil {
		return nil, fmt.Errorf("createTask: %v", err)
	}
	return task, nil
}

// Create returns the environment described by the Config as well as
// the first timestep of the environment.
func (c Config) Create(seed uint64) (*dice.Dice, ts.TimeStep, error) {
	task, err := c.CreateTask(seed)
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("create: %v", err)
	}
	return dice.New(task, c.Discount)
}

// CreateEnv is Create returning the environment as an
// environment.Environment
func (c Config) CreateEnv(seed uint64) (env.Environment, ts.TimeStep, error) {
	d, step, err := c.Create(seed)
	if err != nil {
		return nil, step, err
	}
	return d, step, nil
}
