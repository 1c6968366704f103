package trackers

import (
	"github.com/samuelfneumann/godice/environment"
	ts "github.com/samuelfneumann/godice/timestep"
)

// registeredTracker registers an Environment with some Tracker so
// that the Tracker tracks data from the registered Environment only.
// registeredTracker itself is a Tracker.
//
// The Track() and Save() methods of a registeredTracker call those of
// the embedded Tracker, but Track() ignores its argument and tracks the
// current TimeStep of the registered Environment instead.
//
// This is useful when an experiment is run on an Environment wrapper
// but the data of the wrapped Environment should be tracked. For
// example, if a policy is run on a wrappers.Normalize Environment,
// registering a States Tracker with the wrapped Environment records
// the raw states rather than the normalized observations.
type registeredTracker struct {
	Tracker
	env environment.Environment
}

// Register registers a new Tracker with an Environment, to track data
// from the registered Environment only.
//
// Note: the underlying concrete type of the registered Tracker is
// lost when registering an Environment with a Tracker.
func Register(t Tracker, env environment.Environment) Tracker {
	return &registeredTracker{t, env}
}

// Track calls Track() on the embedded Tracker using the current
// TimeStep of the registered Environment.
func (r *registeredTracker) Track(ts.TimeStep) {
	r.Tracker.Track(r.env.CurrentTimeStep())
}
