package random

import (
	"testing"

	"github.com/samuelfneumann/godice/environment"
	"github.com/samuelfneumann/godice/environment/dice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestSelectAction(t *testing.T) {
	env, step := dice.NewDefault()

	p, err := New(env.ActionSpec(), 42)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), p.Seed())

	var sum float64
	n := 1000
	for i := 0; i < n; i++ {
		action, err := p.SelectAction(step)
		require.NoError(t, err)
		require.Equal(t, 1, action.Len())
		assert.GreaterOrEqual(t, action.AtVec(0), 0.0)
		assert.LessOrEqual(t, action.AtVec(0), 1.0)
		sum += action.AtVec(0)
	}
	assert.InDelta(t, 0.5, sum/float64(n), 0.05)
}

func TestSeeded(t *testing.T) {
	env, step := dice.NewDefault()

	p1, err := New(env.ActionSpec(), 7)
	require.NoError(t, err)
	p2, err := New(env.ActionSpec(), 7)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		a1, _ := p1.SelectAction(step)
		a2, _ := p2.SelectAction(step)
		assert.Equal(t, a1.AtVec(0), a2.AtVec(0))
	}
}

func TestNewErrors(t *testing.T) {
	env, _ := dice.NewDefault()
	_, err := New(env.ObservationSpec(), 1)
	assert.Error(t, err)

	discrete := environment.NewSpec(
		mat.NewVecDense(1, nil),
		environment.Action,
		mat.NewVecDense(1, []float64{0}),
		mat.NewVecDense(1, []float64{3}),
		environment.Discrete,
	)
	_, err = New(discrete, 1)
	assert.Error(t, err)
}
