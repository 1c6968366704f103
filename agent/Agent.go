// Package agent defines the interfaces of the controllers that are
// evaluated on an environment
package agent

import (
	ts "github.com/samuelfneumann/godice/timestep"
	"gonum.org/v1/gonum/mat"
)

// Policy represents a policy that an agent can have.
//
// Policies determine how agents select actions. All policies here are
// fixed: they are only ever evaluated, never trained.
type Policy interface {
	SelectAction(t ts.TimeStep) (*mat.VecDense, error)
}

// Critic scores state-action pairs, usually with an estimate of the
// action value Q(s, a)
type Critic interface {
	Value(state, action mat.Vector) (float64, error)
}

// Closer is a Policy or Critic which holds resources that must be
// released once it is no longer needed
type Closer interface {
	Close() error
}
