package optimizer

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Method is an optimization method
type Method string

// Available optimization methods
const (
	LBFGS           Method = "LBFGS"
	BFGS            Method = "BFGS"
	GradientDescent Method = "GradientDescent"
	NelderMead      Method = "NelderMead"
	Grid            Method = "Grid"
)

// Naming determines how checkpoint files are named
type Naming string

// Available checkpoint namings
const (
	// Overwrite writes every checkpoint to CheckpointPath
	Overwrite Naming = "overwrite"

	// Enumerate keeps every checkpoint, suffixing CheckpointPath with a
	// counter before its extension
	Enumerate Naming = "enumerate"

	// Timestamp keeps every checkpoint, suffixing CheckpointPath with
	// the time of the checkpoint in nanoseconds
	Timestamp Naming = "timestamp"
)

// Config configures a search for the optimal abatement schedule
type Config struct {
	// Stepsize is the number of years each decision is held for. It
	// must divide the horizon of the task.
	Stepsize int    `yaml:"stepsize" json:"stepsize"`
	Method   Method `yaml:"method" json:"method"`

	// MaxIterations bounds the number of major iterations, or sweeps
	// of the Grid method. Zero means no bound for gonum methods.
	MaxIterations int `yaml:"max_iterations" json:"max_iterations"`

	// FTol is the absolute objective tolerance for convergence
	FTol float64 `yaml:"ftol" json:"ftol"`

	// InitialGuess is the abatement rate every decision starts at
	InitialGuess float64 `yaml:"initial_guess" json:"initial_guess"`

	// The objective minimized is -(U/Scale1) + Scale2, where U is the
	// total discounted utility of the schedule
	Scale1 float64 `yaml:"scale1" json:"scale1"`
	Scale2 float64 `yaml:"scale2" json:"scale2"`

	// Penalty weighs the squared distance of decisions outside [0, 1]
	// from the feasible box
	Penalty float64 `yaml:"penalty" json:"penalty"`

	// GradientStep is the finite difference step for gradients
	GradientStep float64 `yaml:"gradient_step" json:"gradient_step"`

	// GridPoints is the number of points evaluated per decision in each
	// sweep of the Grid method
	GridPoints int `yaml:"grid_points" json:"grid_points"`

	// CheckpointEvery saves the incumbent every CheckpointEvery
	// iterations to CheckpointPath, named according to
	// CheckpointNaming. Zero disables checkpointing.
	CheckpointEvery  int    `yaml:"checkpoint_every" json:"checkpoint_every"`
	CheckpointPath   string `yaml:"checkpoint_path" json:"checkpoint_path"`
	CheckpointNaming Naming `yaml:"checkpoint_naming" json:"checkpoint_naming"`
}

// DefaultConfig returns the default optimizer configuration: ten year
// decisions starting at an abatement rate of 0.99
func DefaultConfig() Config {
	return Config{
		Stepsize:      10,
		Method:        LBFGS,
		MaxIterations: 200,
		FTol:          1e-8,
		InitialGuess:  0.99,
		Scale1:        194,
		Scale2:        381800,
		Penalty:       1e3,
		GradientStep:  1e-6,
		GridPoints:    11,

		CheckpointNaming: Overwrite,
	}
}

// LoadConfig reads a YAML optimizer configuration file. Fields missing
// from the file keep their default values, unknown fields are an error.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("loadConfig: could not read config: %w",
			err)
	}

	c := DefaultConfig()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&c); err != nil {
		return Config{}, fmt.Errorf("loadConfig: could not decode config: "+
			"%w", err)
	}

	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("loadConfig: %w", err)
	}
	return c, nil
}

// Validate returns an error if the configuration is invalid
func (c Config) Validate() error {
	switch c.Method {
	case LBFGS, BFGS, GradientDescent, NelderMead, Grid:
	default:
		return fmt.Errorf("validate: no such method %v", c.Method)
	}

	if c.Stepsize <= 0 {
		return fmt.Errorf("validate: stepsize must be positive "+
			"\n\thave(%v)", c.Stepsize)
	}
	if c.MaxIterations < 0 {
		return fmt.Errorf("validate: max_iterations must be non-negative")
	}
	if c.FTol < 0 {
		return fmt.Errorf("validate: ftol must be non-negative")
	}
	if c.InitialGuess < 0 || c.InitialGuess > 1 {
		return fmt.Errorf("validate: initial_guess must be in [0, 1] "+
			"\n\thave(%v)", c.InitialGuess)
	}
	if c.Scale1 <= 0 {
		return fmt.Errorf("validate: scale1 must be positive "+
			"\n\thave(%v)", c.Scale1)
	}
	if c.Penalty < 0 {
		return fmt.Errorf("validate: penalty must be non-negative")
	}
	if c.GradientStep <= 0 {
		return fmt.Errorf("validate: gradient_step must be positive")
	}
	if c.Method == Grid && c.GridPoints < 2 {
		return fmt.Errorf("validate: grid_points must be at least 2 "+
			"\n\thave(%v)", c.GridPoints)
	}
	if c.CheckpointEvery < 0 {
		return fmt.Errorf("validate: checkpoint_every must be non-negative")
	}
	if c.CheckpointEvery > 0 && c.CheckpointPath == "" {
		return fmt.Errorf("validate: checkpoint_path must be set to " +
			"checkpoint")
	}
	switch c.CheckpointNaming {
	case "", Overwrite, Enumerate, Timestamp:
	default:
		return fmt.Errorf("validate: no such checkpoint naming %v",
			c.CheckpointNaming)
	}
	return nil
}
