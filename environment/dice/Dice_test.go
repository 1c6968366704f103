package dice

import (
	"math"
	"testing"

	"github.com/samuelfneumann/godice/environment"
	ts "github.com/samuelfneumann/godice/timestep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

func action(mu float64) *mat.VecDense {
	return mat.NewVecDense(ActionDims, []float64{mu})
}

func newTestDice(t *testing.T, horizon int) *Dice {
	t.Helper()
	task, err := NewWelfare(nil, DefaultParams(), horizon)
	require.NoError(t, err)

	d, step, err := New(task, 1.0)
	require.NoError(t, err)
	require.True(t, step.First())
	return d
}

func TestResetReturnsInitialState(t *testing.T) {
	d := newTestDice(t, 10)
	for i := 0; i < 5; i++ {
		_, _, err := d.Step(action(0.3))
		require.NoError(t, err)
	}

	step, err := d.Reset()
	require.NoError(t, err)
	assert.True(t, step.First())
	assert.Equal(t, 0, step.Number)
	assert.Equal(t, DefaultParams().InitialState(), step.Observation.RawVector().Data)
}

func TestStepIsDeterministic(t *testing.T) {
	first := newTestDice(t, 50)
	second := newTestDice(t, 50)

	for i := 0; i < 50; i++ {
		mu := float64(i%10) / 10
		s1, done1, err := first.Step(action(mu))
		require.NoError(t, err)
		s2, done2, err := second.Step(action(mu))
		require.NoError(t, err)

		assert.Equal(t, s1.Observation.RawVector().Data,
			s2.Observation.RawVector().Data)
		assert.Equal(t, s1.Reward, s2.Reward)
		assert.Equal(t, done1, done2)
	}
}

func TestTransitionConservesCarbon(t *testing.T) {
	p := DefaultParams()
	state := mat.NewVecDense(ObservationDims, p.InitialState())

	for i := 0; i < 100; i++ {
		next, d := Transition(p, state, 0.25)

		before := state.AtVec(AtmosphericCarbon) +
			state.AtVec(UpperOceanCarbon) + state.AtVec(LowerOceanCarbon)
		after := next.AtVec(AtmosphericCarbon) +
			next.AtVec(UpperOceanCarbon) + next.AtVec(LowerOceanCarbon)

		assert.InDelta(t, d.Emissions, after-before, 1e-8)
		assert.Equal(t, state.AtVec(Time)+1, next.AtVec(Time))
		state = next
	}
}

func TestInitialCalibration(t *testing.T) {
	p := DefaultParams()
	state := mat.NewVecDense(ObservationDims, p.InitialState())

	_, d := Transition(p, state, 0)
	assert.Equal(t, 2005.0, d.Year)
	assert.InDelta(t, 6514, d.Population, 1e-9)
	assert.InDelta(t, 62.0, d.GrossOutput, 0.5)
	assert.Equal(t, 0.0, d.AbatementCost)
	assert.InDelta(t, p.Sigma0*d.GrossOutput+p.ELand0, d.Emissions, 1e-9)
	assert.InDelta(t, d.Utility, d.Reward, 1e-9)
	assert.Less(t, d.DamageFactor, 1.0)
}

func TestAbatementTradeOff(t *testing.T) {
	p := DefaultParams()
	state := mat.NewVecDense(ObservationDims, p.InitialState())

	_, none := Transition(p, state, 0)
	_, full := Transition(p, state, 1)

	assert.Less(t, full.Emissions, none.Emissions)
	assert.InDelta(t, full.LandEmissions, full.Emissions, 1e-12)
	assert.Greater(t, full.AbatementCost, none.AbatementCost)
	assert.Less(t, full.Consumption, none.Consumption)
	assert.Less(t, full.Reward, none.Reward)
}

func TestActionsAreClipped(t *testing.T) {
	tests := []struct {
		name    string
		action  float64
		clipped float64
	}{
		{"above", 1.7, 1},
		{"below", -0.4, 0},
		{"inside", 0.4, 0.4},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			raw := newTestDice(t, 5)
			ref := newTestDice(t, 5)

			s1, _, err := raw.Step(action(test.action))
			require.NoError(t, err)
			s2, _, err := ref.Step(action(test.clipped))
			require.NoError(t, err)

			assert.Equal(t, s2.Observation.RawVector().Data,
				s1.Observation.RawVector().Data)
			assert.Equal(t, s2.Reward, s1.Reward)
			assert.Equal(t, test.clipped, raw.Diagnostics().Abatement)
		})
	}
}

func TestEpisodeEndsAtHorizon(t *testing.T) {
	d := newTestDice(t, 5)

	var step ts.TimeStep
	var done bool
	var err error
	for i := 1; i <= 5; i++ {
		step, done, err = d.Step(action(0.5))
		require.NoError(t, err)
		assert.Equal(t, i, step.Number)
		assert.Equal(t, i == 5, done)
	}
	assert.True(t, step.Last())
	assert.Equal(t, ts.Timeout, step.EndType)

	_, _, err = d.Step(action(0.5))
	assert.Error(t, err)
}

func TestStepRejectsInvalidActions(t *testing.T) {
	d := newTestDice(t, 5)

	_, _, err := d.Step(mat.NewVecDense(2, []float64{0.1, 0.2}))
	assert.Error(t, err)

	for _, mu := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, _, err = d.Step(action(mu))
		assert.Error(t, err, "action %v", mu)
	}

	// Rejected actions leave the environment where it was
	assert.Equal(t, 0, d.CurrentTimeStep().Number)
}

func TestStateStaysFinite(t *testing.T) {
	d := newTestDice(t, DefaultHorizon)

	for _, mu := range []float64{0, 1} {
		_, err := d.Reset()
		require.NoError(t, err)

		done := false
		for !done {
			var step ts.TimeStep
			var err error
			step, done, err = d.Step(action(mu))
			require.NoError(t, err)

			data := step.Observation.RawVector().Data
			assert.False(t, floats.HasNaN(data))
			assert.False(t, math.IsNaN(step.Reward) || math.IsInf(step.Reward, 0))
		}
	}
}

func TestTemperatureCeiling(t *testing.T) {
	task, err := NewTemperatureCeiling(nil, DefaultParams(), 600, 1.0)
	require.NoError(t, err)

	d, _, err := New(task, 1.0)
	require.NoError(t, err)

	var step ts.TimeStep
	done := false
	for !done {
		step, done, err = d.Step(action(0))
		require.NoError(t, err)
	}
	assert.Less(t, step.Number, 600)
	assert.Equal(t, ts.TerminalStateReached, step.EndType)
	assert.Greater(t, step.Observation.AtVec(AtmosphericTemp), task.MaxTemp())
}

func TestParamsValidate(t *testing.T) {
	require.NoError(t, DefaultParams().Validate())

	p := DefaultParams()
	p.Savings = 1
	assert.Error(t, p.Validate())

	p = DefaultParams()
	p.B12 = 1.5
	assert.Error(t, p.Validate())

	_, err := NewWelfare(nil, DefaultParams(), 0)
	assert.Error(t, err)
}

func TestLogUtility(t *testing.T) {
	assert.InDelta(t, math.Log(5), utilityOf(5, 1), 1e-12)
	assert.InDelta(t, 1-1/5.0, utilityOf(5, 2), 1e-12)
}

func TestSpecs(t *testing.T) {
	d := newTestDice(t, 600)
	var _ environment.Environment = d

	assert.Equal(t, ObservationDims, d.ObservationSpec().Shape.Len())
	assert.Equal(t, 600.0, d.ObservationSpec().UpperBound.AtVec(Time))
	assert.Equal(t, 1.0, d.ActionSpec().UpperBound.AtVec(0))
	assert.Equal(t, 0.0, d.ActionSpec().LowerBound.AtVec(0))
	assert.Equal(t, environment.Continuous, d.ActionSpec().Cardinality)
}

func BenchmarkStep(b *testing.B) {
	d, _ := NewDefault()
	a := action(0.5)

	for i := 0; i < b.N; i++ {
		if _, done, _ := d.Step(a); done {
			d.Reset()
		}
	}
}
