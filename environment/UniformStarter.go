package environment

import (
	"fmt"

	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
	"gonum.org/v1/gonum/stat/distmv"
)

// UniformStarter samples starting states uniformly from a box
type UniformStarter struct {
	features int
	seed     uint64
	rand     *distmv.Uniform
}

// NewUniformStarter returns a new UniformStarter sampling feature i
// uniformly from bounds[i]
func NewUniformStarter(bounds []r1.Interval, seed uint64) *UniformStarter {
	source := rand.NewSource(seed)
	rand := distmv.NewUniform(bounds, source)

	return &UniformStarter{len(bounds), seed, rand}
}

// NewPerturbedStarter returns a UniformStarter which samples starting
// states within a relative distance of a nominal starting state. Each
// feature i is sampled from [(1-noise)*start[i], (1+noise)*start[i]].
func NewPerturbedStarter(start []float64, noise float64,
	seed uint64) (*UniformStarter, error) {
	if noise < 0 {
		return nil, fmt.Errorf("newPerturbedStarter: noise must be "+
			"non-negative \n\thave(%v)", noise)
	}

	bounds := make([]r1.Interval, len(start))
	for i, v := range start {
		low, high := v*(1-noise), v*(1+noise)
		if low > high {
			low, high = high, low
		}
		bounds[i] = r1.Interval{Min: low, Max: high}
	}
	return NewUniformStarter(bounds, seed), nil
}

// Start returns a starting state vector
func (u *UniformStarter) Start() *mat.VecDense {
	return mat.NewVecDense(u.features, u.rand.Rand(nil))
}

// ConstantStarter always starts episodes in the same state
type ConstantStarter struct {
	start []float64
}

// NewConstantStarter returns a new ConstantStarter
func NewConstantStarter(start []float64) *ConstantStarter {
	s := make([]float64, len(start))
	copy(s, start)
	return &ConstantStarter{s}
}

// Start returns a copy of the constant starting state
func (c *ConstantStarter) Start() *mat.VecDense {
	s := make([]float64, len(c.start))
	copy(s, c.start)
	return mat.NewVecDense(len(s), s)
}
