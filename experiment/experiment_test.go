package experiment

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/samuelfneumann/godice/agent/random"
	"github.com/samuelfneumann/godice/agent/schedule"
	"github.com/samuelfneumann/godice/environment/dice"
	"github.com/samuelfneumann/godice/experiment/trackers"
	ts "github.com/samuelfneumann/godice/timestep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// shortEnv returns a Dice environment with a horizon of the given
// number of years
func shortEnv(t *testing.T, horizon int) *dice.Dice {
	task, err := dice.NewWelfare(nil, dice.DefaultParams(), horizon)
	require.NoError(t, err)
	d, _, err := dice.New(task, 1.0)
	require.NoError(t, err)
	return d
}

// constantCritic scores every action with the action itself
type constantCritic struct{}

func (constantCritic) Value(_, action mat.Vector) (float64, error) {
	return action.AtVec(0), nil
}

func TestRolloutSchedule(t *testing.T) {
	env := shortEnv(t, 30)
	s, err := schedule.New([]float64{0.1, 0.2, 0.3}, 10, schedule.Linear)
	require.NoError(t, err)

	traj, err := Rollout(context.Background(), "schedule", env, s, nil, 0)
	require.NoError(t, err)

	assert.Equal(t, 30, traj.Len())
	assert.Len(t, traj.States, 30)
	assert.Empty(t, traj.QValues)
	assert.Equal(t, ts.Timeout, traj.End)
	assert.InDeltaSlice(t, s.Expand(30), traj.Action(0), 1e-12)

	// The last state is 30 years after the start
	assert.InDelta(t, 30.0, traj.States[29][dice.Time], 1e-12)

	// The same schedule on the same environment gives the same rewards
	again, err := Rollout(context.Background(), "schedule", env, s, nil, 0)
	require.NoError(t, err)
	assert.Equal(t, traj.Rewards, again.Rewards)
}

func TestRolloutWithCritic(t *testing.T) {
	env := shortEnv(t, 600)
	p, err := random.New(env.ActionSpec(), 1)
	require.NoError(t, err)

	traj, err := Rollout(context.Background(), "random", env, p,
		constantCritic{}, 20)
	require.NoError(t, err)

	// maxSteps cuts the episode short
	assert.Equal(t, 20, traj.Len())
	assert.Equal(t, ts.Unknown, traj.End)
	assert.Equal(t, traj.Action(0), traj.QValues)
}

func TestEvaluationTrackers(t *testing.T) {
	dir := t.TempDir()
	env := shortEnv(t, 10)
	s, err := schedule.New([]float64{0.5}, 10, schedule.Hold)
	require.NoError(t, err)

	ret := trackers.NewReturn(filepath.Join(dir, "return.bin"))
	length := trackers.NewEpisodeLength(filepath.Join(dir, "length.bin"))
	eval, err := NewEvaluation("hold", env, s, 0, ret)
	require.NoError(t, err)
	eval.Register(length)

	var steps int
	eval.OnStep = func(ts.TimeStep) { steps++ }

	traj, err := eval.RunEpisode(context.Background())
	require.NoError(t, err)
	require.NoError(t, eval.Save())

	assert.Equal(t, 10, steps)
	returns, err := trackers.LoadData(filepath.Join(dir, "return.bin"))
	require.NoError(t, err)
	require.Len(t, returns, 1)
	assert.InDelta(t, traj.Return(), returns[0], 1e-9)

	lengths, err := trackers.LoadIntData(filepath.Join(dir, "length.bin"))
	require.NoError(t, err)
	assert.Equal(t, []int{10}, lengths)
}

func TestRolloutCancelled(t *testing.T) {
	env := shortEnv(t, 10)
	s, err := schedule.New([]float64{0.5}, 10, schedule.Hold)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Rollout(ctx, "hold", env, s, nil, 0)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCompare(t *testing.T) {
	policy := Trajectory{
		Name:    "policy",
		Rewards: []float64{1, 2, 3},
		Actions: [][]float64{{0.1}, {0.2}, {0.3}},
		States:  [][]float64{{1, 10}, {2, 10}, {3, 10}},
		QValues: []float64{5, 4, 3},
		End:     ts.Timeout,
	}
	rand := Trajectory{
		Name:    "random",
		Rewards: []float64{0, 1, 1},
		Actions: [][]float64{{0.9}, {0.5}, {0.4}},
		States:  [][]float64{{1, 1}, {1, 1}, {1, 1}},
	}
	sched := Trajectory{
		Name:    "schedule",
		Rewards: []float64{1, 1, 1},
		Actions: [][]float64{{0.5}, {0.5}, {0.5}},
		States:  [][]float64{{0, 0}, {0, 0}, {0, 0}},
	}

	report, err := Compare(policy, rand, &sched, []string{"K"})
	require.NoError(t, err)

	assert.NotEmpty(t, report.ID)
	assert.InDelta(t, 6.0, report.Policy.Return, 1e-12)
	assert.InDelta(t, 2.0, report.Random.Return, 1e-12)
	assert.InDelta(t, 3.0, report.Schedule.Return, 1e-12)
	assert.Equal(t, []float64{0, 1, 2}, report.PolicyMinusSchedule)
	assert.Equal(t, []float64{-1, 0, 0}, report.RandomMinusSchedule)
	assert.Equal(t, []float64{0.1, 0.2, 0.3}, report.Policy.Actions)

	// Population statistics, the second feature is unnamed
	require.Len(t, report.Policy.States, 2)
	assert.Equal(t, "K", report.Policy.States[0].Name)
	assert.Equal(t, "x1", report.Policy.States[1].Name)
	assert.InDelta(t, 2.0, report.Policy.States[0].Mean, 1e-12)
	assert.InDelta(t, 0.816496580927726, report.Policy.States[0].Std, 1e-12)
	assert.InDelta(t, 0.0, report.Policy.States[1].Std, 1e-12)

	report.StartYear = 2005
	assert.Equal(t, []int{2005, 2006, 2007}, report.Years())
	assert.Contains(t, report.String(), "sum of rewards of the policy policy")

	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, report.Save(path))
	loaded, err := LoadReport(path)
	require.NoError(t, err)
	assert.Equal(t, report.ID, loaded.ID)
	assert.Equal(t, report.PolicyMinusSchedule, loaded.PolicyMinusSchedule)
	assert.Equal(t, report.Policy.QValues, loaded.Policy.QValues)
	require.NotNil(t, loaded.Schedule)
	assert.Equal(t, 2005, loaded.StartYear)
}

func TestCompareWithoutSchedule(t *testing.T) {
	policy := Trajectory{Name: "policy", Rewards: []float64{1},
		Actions: [][]float64{{0}}, States: [][]float64{{0}}}
	rand := Trajectory{Name: "random", Rewards: []float64{1, 2},
		Actions: [][]float64{{0}, {0}}, States: [][]float64{{0}, {0}}}

	report, err := Compare(policy, rand, nil, nil)
	require.NoError(t, err)
	assert.Nil(t, report.Schedule)
	assert.Nil(t, report.PolicyMinusSchedule)

	// Inconsistent trajectories are rejected
	policy.States = nil
	_, err = Compare(policy, rand, nil, nil)
	assert.Error(t, err)
}

func TestCompareEpisodesOfDifferentLengths(t *testing.T) {
	policy := Trajectory{Name: "policy", Rewards: []float64{3, 2},
		Actions: [][]float64{{0}, {0}}, States: [][]float64{{0}, {0}},
		End: ts.TerminalStateReached}
	rand := Trajectory{Name: "random", Rewards: []float64{1},
		Actions: [][]float64{{0}}, States: [][]float64{{0}},
		End: ts.TerminalStateReached}
	sched := Trajectory{Name: "schedule", Rewards: []float64{1, 1, 1, 1},
		Actions: [][]float64{{1}, {1}, {1}, {1}},
		States:  [][]float64{{0}, {0}, {0}, {0}}, End: ts.Timeout}

	report, err := Compare(policy, rand, &sched, nil)
	require.NoError(t, err)
	require.NotNil(t, report.Schedule)
	assert.Equal(t, []float64{2, 1}, report.PolicyMinusSchedule)
	assert.Equal(t, []float64{0}, report.RandomMinusSchedule)
	assert.Equal(t, 4, report.Schedule.Steps)
	assert.Equal(t, ts.Timeout.String(), report.Schedule.End)
	assert.Equal(t, ts.TerminalStateReached.String(), report.Random.End)
	assert.Contains(t, report.String(), "(first 2 steps)")

	// Episodes which end on their first step share no steps
	empty := Trajectory{Name: "empty"}
	report, err = Compare(empty, rand, &sched, nil)
	require.NoError(t, err)
	assert.Empty(t, report.PolicyMinusSchedule)
	assert.Contains(t, report.String(), "no common steps of empty")
}

func TestCompareOnTemperatureCeiling(t *testing.T) {
	p := dice.DefaultParams()
	newEnv := func() *dice.Dice {
		task, err := dice.NewTemperatureCeiling(nil, p, 100, p.TAT0+0.1)
		require.NoError(t, err)
		d, _, err := dice.New(task, 1.0)
		require.NoError(t, err)
		return d
	}

	ctx := context.Background()
	hot, err := schedule.New([]float64{0}, 100, schedule.Hold)
	require.NoError(t, err)
	hotTraj, err := Rollout(ctx, "unabated", newEnv(), hot, nil, 0)
	require.NoError(t, err)

	e := newEnv()
	r, err := random.New(e.ActionSpec(), 1)
	require.NoError(t, err)
	randTraj, err := Rollout(ctx, "random", e, r, nil, 0)
	require.NoError(t, err)

	cool, err := schedule.New([]float64{1}, 100, schedule.Hold)
	require.NoError(t, err)
	coolTraj, err := Rollout(ctx, "abated", newEnv(), cool, nil, 0)
	require.NoError(t, err)

	require.Equal(t, ts.TerminalStateReached, hotTraj.End)
	require.Less(t, hotTraj.Len(), 100)

	report, err := Compare(hotTraj, randTraj, &coolTraj, dice.FeatureNames)
	require.NoError(t, err)
	common := hotTraj.Len()
	if coolTraj.Len() < common {
		common = coolTraj.Len()
	}
	assert.Len(t, report.PolicyMinusSchedule, common)
	assert.Equal(t, coolTraj.Len(), report.Schedule.Steps)
}
