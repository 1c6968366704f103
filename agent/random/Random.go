// Package random implements a policy which selects actions uniformly
// at random within the action bounds of an environment
package random

import (
	"fmt"
	"math"

	"github.com/samuelfneumann/godice/environment"
	ts "github.com/samuelfneumann/godice/timestep"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Random implements a uniform random policy over a continuous, bounded
// action space
type Random struct {
	dists []distuv.Uniform
	seed  uint64
}

// New returns a new Random policy which samples each action dimension
// uniformly between the bounds of actionSpec
func New(actionSpec environment.Spec, seed uint64) (*Random, error) {
	if actionSpec.Type != environment.Action {
		return nil, fmt.Errorf("new: cannot use non-action spec "+
			"\n\twant(%v) \n\thave(%v)", environment.Action, actionSpec.Type)
	}
	if actionSpec.Cardinality != environment.Continuous {
		return nil, fmt.Errorf("new: random policy requires continuous " +
			"actions")
	}

	source := rand.NewSource(seed)
	dims := actionSpec.Shape.Len()
	dists := make([]distuv.Uniform, dims)
	for i := 0; i < dims; i++ {
		bounds := actionSpec.Bounds(i)
		if math.IsInf(bounds.Min, 0) || math.IsInf(bounds.Max, 0) ||
			bounds.Min > bounds.Max {
			return nil, fmt.Errorf("new: action dimension %v must have "+
				"finite bounds \n\thave(%v)", i, bounds)
		}
		dists[i] = distuv.Uniform{Min: bounds.Min, Max: bounds.Max,
			Src: source}
	}

	return &Random{dists: dists, seed: seed}, nil
}

// SelectAction selects an action uniformly at random, independent of
// the TimeStep
func (r *Random) SelectAction(_ ts.TimeStep) (*mat.VecDense, error) {
	action := make([]float64, len(r.dists))
	for i := range r.dists {
		action[i] = r.dists[i].Rand()
	}
	return mat.NewVecDense(len(action), action), nil
}

// Seed returns the seed of the policy's random number generator
func (r *Random) Seed() uint64 {
	return r.seed
}
