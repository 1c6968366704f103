package actorcritic

import (
	"path/filepath"
	"testing"

	"github.com/samuelfneumann/godice/environment/dice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	G "gorgonia.org/gorgonia"
)

func TestActorZeroWeights(t *testing.T) {
	env, step := dice.NewDefault()

	actor, err := NewActor(dice.ObservationDims, dice.ActionDims,
		[]int{64, 64}, G.Zeroes())
	require.NoError(t, err)
	defer actor.Close()

	for i := 0; i < 5; i++ {
		action, err := actor.SelectAction(step)
		require.NoError(t, err)
		require.Equal(t, dice.ActionDims, action.Len())
		assert.InDelta(t, 0.5, action.AtVec(0), 1e-12)

		step, _, err = env.Step(action)
		require.NoError(t, err)
	}
}

func TestActorBounded(t *testing.T) {
	_, step := dice.NewDefault()

	actor, err := NewActor(dice.ObservationDims, dice.ActionDims,
		[]int{32}, G.GlorotU(1.0))
	require.NoError(t, err)
	defer actor.Close()

	action, err := actor.SelectAction(step)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, action.AtVec(0), 0.0)
	assert.LessOrEqual(t, action.AtVec(0), 1.0)

	step.Observation = mat.NewVecDense(3, nil)
	_, err = actor.SelectAction(step)
	assert.Error(t, err)
}

func TestCriticZeroWeights(t *testing.T) {
	_, step := dice.NewDefault()

	critic, err := NewCritic(dice.ObservationDims, dice.ActionDims,
		[]int{16}, G.Zeroes())
	require.NoError(t, err)
	defer critic.Close()

	q, err := critic.Value(step.Observation, mat.NewVecDense(1, []float64{0.3}))
	require.NoError(t, err)
	assert.InDelta(t, 0.0, q, 1e-12)

	_, err = critic.Value(step.Observation, mat.NewVecDense(2, nil))
	assert.Error(t, err)
}

func TestSaveLoad(t *testing.T) {
	_, step := dice.NewDefault()
	dir := t.TempDir()

	actor, err := NewActor(dice.ObservationDims, dice.ActionDims,
		[]int{8, 8}, G.GlorotN(1.0))
	require.NoError(t, err)
	defer actor.Close()
	critic, err := NewCritic(dice.ObservationDims, dice.ActionDims,
		[]int{8}, G.GlorotN(1.0))
	require.NoError(t, err)
	defer critic.Close()

	actorPath := filepath.Join(dir, "1_actor.bin")
	criticPath := filepath.Join(dir, "1_critic.bin")
	require.NoError(t, actor.Save(actorPath))
	require.NoError(t, critic.Save(criticPath))

	loadedActor, err := LoadActor(actorPath)
	require.NoError(t, err)
	defer loadedActor.Close()
	loadedCritic, err := LoadCritic(criticPath, dice.ActionDims)
	require.NoError(t, err)
	defer loadedCritic.Close()

	want, err := actor.SelectAction(step)
	require.NoError(t, err)
	have, err := loadedActor.SelectAction(step)
	require.NoError(t, err)
	assert.InDelta(t, want.AtVec(0), have.AtVec(0), 1e-12)

	wantQ, err := critic.Value(step.Observation, want)
	require.NoError(t, err)
	haveQ, err := loadedCritic.Value(step.Observation, have)
	require.NoError(t, err)
	assert.InDelta(t, wantQ, haveQ, 1e-9)

	// An actor checkpoint has 7 inputs and so cannot hold a critic of
	// a 7-dimensional state
	_, err = LoadCritic(actorPath, 7)
	assert.Error(t, err)
}
