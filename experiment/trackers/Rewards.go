package trackers

import (
	ts "github.com/samuelfneumann/godice/timestep"
)

// Rewards tracks the reward of every step in an experiment. The first
// TimeStep of an episode carries no reward and is not tracked.
type Rewards struct {
	rewards  []float64
	filename string
}

// NewRewards returns a new Rewards Tracker which will save its data at
// filename
func NewRewards(filename string) *Rewards {
	return &Rewards{filename: filename}
}

// Track tracks the reward of t
func (r *Rewards) Track(t ts.TimeStep) {
	if !t.First() {
		r.rewards = append(r.rewards, t.Reward)
	}
}

// Data returns the tracked rewards
func (r *Rewards) Data() []float64 {
	return append([]float64(nil), r.rewards...)
}

// Save saves the tracked rewards to disk
func (r *Rewards) Save() error {
	return save(r.filename, r.rewards)
}
