// Package wrappers implements wrappers around environments
package wrappers

import (
	"fmt"

	env "github.com/samuelfneumann/godice/environment"
	ts "github.com/samuelfneumann/godice/timestep"
	"gonum.org/v1/gonum/mat"
)

// Normalize standardizes the observations of a wrapped environment
// with a fixed mean and standard deviation per feature, so that
// policies trained on standardized observations can be run on the raw
// environment. Rewards, discounts and episode termination are those
// of the wrapped environment; tasks still see raw observations.
type Normalize struct {
	env.Environment

	mean *mat.VecDense
	std  *mat.VecDense

	currentTimeStep ts.TimeStep
}

// NewNormalize returns a new Normalize environment wrapper
func NewNormalize(e env.Environment, mean,
	std []float64) (*Normalize, ts.TimeStep, error) {
	features := e.ObservationSpec().Shape.Len()
	if len(mean) != features || len(std) != features {
		return nil, ts.TimeStep{}, fmt.Errorf("newNormalize: mean and "+
			"standard deviation must have one entry per feature "+
			"\n\twant(%v) \n\thave(%v, %v)", features, len(mean), len(std))
	}
	for i, s := range std {
		if s <= 0 {
			return nil, ts.TimeStep{}, fmt.Errorf("newNormalize: standard "+
				"deviation of feature %v must be positive \n\thave(%v)", i, s)
		}
	}

	n := &Normalize{
		Environment: e,
		mean:        mat.NewVecDense(features, append([]float64(nil), mean...)),
		std:         mat.NewVecDense(features, append([]float64(nil), std...)),
	}

	step, err := n.Reset()
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("newNormalize: %v", err)
	}
	return n, step, nil
}

// Reset resets the environment to some starting state
func (n *Normalize) Reset() (ts.TimeStep, error) {
	step, err := n.Environment.Reset()
	if err != nil {
		return ts.TimeStep{}, err
	}

	step.Observation = n.normalize(step.Observation)
	n.currentTimeStep = step
	return step, nil
}

// Step takes one environmental step given some action
func (n *Normalize) Step(action *mat.VecDense) (ts.TimeStep, bool, error) {
	step, last, err := n.Environment.Step(action)
	if err != nil {
		return ts.TimeStep{}, true, err
	}

	step.Observation = n.normalize(step.Observation)
	n.currentTimeStep = step
	return step, last, nil
}

// CurrentTimeStep returns the current time step in the environment
// with a standardized observation
func (n *Normalize) CurrentTimeStep() ts.TimeStep {
	return n.currentTimeStep
}

// Unwrap returns the wrapped environment
func (n *Normalize) Unwrap() env.Environment {
	return n.Environment
}

// ObservationSpec returns the observation specification of the
// environment with standardized bounds
func (n *Normalize) ObservationSpec() env.Spec {
	spec := n.Environment.ObservationSpec()
	low := n.normalize(mat.VecDenseCopyOf(spec.LowerBound))
	high := n.normalize(mat.VecDenseCopyOf(spec.UpperBound))

	return env.NewSpec(spec.Shape, env.Observation, low, high,
		spec.Cardinality)
}

// normalize returns (obs - mean) / std
func (n *Normalize) normalize(obs *mat.VecDense) *mat.VecDense {
	out := mat.NewVecDense(obs.Len(), nil)
	out.SubVec(obs, n.mean)
	out.DivElemVec(out, n.std)
	return out
}

// String returns the string representation of the environment
func (n *Normalize) String() string {
	return fmt.Sprintf("Normalize: %v", n.Environment)
}
