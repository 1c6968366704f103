// Package experiment implements functionality for evaluating fixed
// policies on an environment and comparing their performance
package experiment

import (
	"context"

	"github.com/samuelfneumann/godice/experiment/trackers"
)

// Experiment runs episodes of a fixed policy on an environment. Each
// TimeStep is sent to the registered Trackers, which cache the data
// they track until Save() is called, usually after the experiment has
// been run.
type Experiment interface {
	// RunEpisode runs a single episode and returns its Trajectory
	RunEpisode(ctx context.Context) (Trajectory, error)

	// Register adds a new Tracker to the experiment
	Register(t trackers.Tracker)

	// Save saves all tracked data to disk
	Save() error
}
