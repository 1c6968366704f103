package timestep

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestStepTypes(t *testing.T) {
	obs := mat.NewVecDense(1, []float64{0})

	first := New(First, 0, 0.99, obs, 0)
	assert.True(t, first.First())
	assert.False(t, first.Mid())
	assert.False(t, first.Last())
	assert.Equal(t, Unknown, first.EndType)

	last := New(Last, 1, 0.99, obs, 10)
	last.SetEnd(Timeout)
	assert.True(t, last.Last())
	assert.Equal(t, Timeout, last.EndType)
	assert.Equal(t, "Timeout", last.EndType.String())
}

func TestNewTransition(t *testing.T) {
	s := mat.NewVecDense(2, []float64{1, 2})
	next := mat.NewVecDense(2, []float64{3, 4})
	a := mat.NewVecDense(1, []float64{0.5})

	step := New(First, 0, 1, s, 0)
	nextStep := New(Mid, -2.5, 0.9, next, 1)

	tr := NewTransition(step, a, nextStep)
	assert.Equal(t, s, tr.State)
	assert.Equal(t, next, tr.NextState)
	assert.Equal(t, a, tr.Action)
	assert.Equal(t, -2.5, tr.Reward)
	assert.Equal(t, 0.9, tr.Discount)
}
