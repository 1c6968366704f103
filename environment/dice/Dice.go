// Package dice implements the annual DICE-2007 integrated
// climate-economy model as an environment.
//
// State feature vectors are 7-dimensional and consist of, in order:
//
//	K     capital stock (trillions of 2005 USD)
//	M_AT  atmospheric carbon (GtC)
//	M_UP  upper ocean and biosphere carbon (GtC)
//	M_LO  lower ocean carbon (GtC)
//	T_AT  atmosphere and land surface temperature (°C above 1900)
//	T_LO  lower ocean temperature (°C above 1900)
//	t     years elapsed since the start year
//
// Actions are continuous and 1-dimensional: the emissions abatement
// rate μ. Actions outside of [0, 1] are clipped to stay within these
// bounds. Each step advances the model by one year, and the reward
// is computed by the Task, usually the discounted utility of
// consumption in the year the action was taken.
package dice

import (
	"fmt"
	"math"

	"github.com/samuelfneumann/godice/environment"
	ts "github.com/samuelfneumann/godice/timestep"
	"github.com/samuelfneumann/godice/utils/floatutils"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
)

// Abatement bounds
const (
	MinAbatement float64 = 0.0
	MaxAbatement float64 = 1.0
)

// Dice implements the environment.Environment interface
type Dice struct {
	Task
	params      Params
	discount    float64
	abatement   r1.Interval
	currentStep ts.TimeStep
	diagnostics Diagnostics
}

// New creates and returns a new Dice environment, ready to use, as
// well as the first TimeStep of the first episode
func New(t Task, discount float64) (*Dice, ts.TimeStep, error) {
	if t == nil {
		return nil, ts.TimeStep{}, fmt.Errorf("new: task must not be nil")
	}
	if discount < 0 || discount > 1 {
		return nil, ts.TimeStep{}, fmt.Errorf("new: discount must be in "+
			"[0, 1] \n\thave(%v)", discount)
	}

	d := &Dice{
		Task:      t,
		params:    t.Params(),
		discount:  discount,
		abatement: r1.Interval{Min: MinAbatement, Max: MaxAbatement},
	}

	step, err := d.Reset()
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("new: %v", err)
	}
	return d, step, nil
}

// NewDefault returns a Dice environment with the DICE-2007
// calibration, the 2005 starting state, a 600 year horizon and no
// additional discounting of rewards
func NewDefault() (*Dice, ts.TimeStep) {
	d, step, err := New(NewDefaultWelfare(), 1.0)
	if err != nil {
		panic(fmt.Sprintf("newDefault: %v", err))
	}
	return d, step
}

// Reset resets the environment to a starting state drawn from the
// Task and returns the first TimeStep of the new episode
func (d *Dice) Reset() (ts.TimeStep, error) {
	state := d.Start()
	if err := validateState(state); err != nil {
		return ts.TimeStep{}, fmt.Errorf("reset: %v", err)
	}

	startStep := ts.New(ts.First, 0, d.discount, state, 0)
	d.currentStep = startStep
	d.diagnostics = Diagnostics{}

	return startStep, nil
}

// Step takes one environmental step given the abatement rate in
// action and returns the next TimeStep and whether the episode has
// ended. Finite actions outside [0, 1] are clipped.
func (d *Dice) Step(action *mat.VecDense) (ts.TimeStep, bool, error) {
	if action.Len() != ActionDims {
		return ts.TimeStep{}, true, fmt.Errorf("step: actions should be "+
			"%v-dimensional \n\thave(%v)", ActionDims, action.Len())
	}
	if d.currentStep.Last() {
		return ts.TimeStep{}, true, fmt.Errorf("step: episode has " +
			"ended, reset the environment first")
	}

	mu := action.AtVec(0)
	if math.IsNaN(mu) || math.IsInf(mu, 0) {
		return ts.TimeStep{}, true, fmt.Errorf("step: action must be "+
			"finite \n\thave(%v)", mu)
	}
	mu = floatutils.ClipInterval(mu, d.abatement)
	clipped := mat.NewVecDense(ActionDims, []float64{mu})

	state := d.currentStep.Observation
	nextState, diagnostics := Transition(d.params, state, mu)

	reward := d.GetReward(state, clipped, nextState)
	nextStep := ts.New(ts.Mid, reward, d.discount, nextState,
		d.currentStep.Number+1)

	// Check if the step is the last in the episode and adjust step type
	// if necessary
	d.End(&nextStep)

	d.currentStep = nextStep
	d.diagnostics = diagnostics
	return nextStep, nextStep.Last(), nil
}

// CurrentTimeStep returns the current TimeStep of the environment
func (d *Dice) CurrentTimeStep() ts.TimeStep {
	return d.currentStep
}

// Diagnostics returns the diagnostics of the most recent transition
func (d *Dice) Diagnostics() Diagnostics {
	return d.diagnostics
}

// ActionSpec returns the action specification of the environment
func (d *Dice) ActionSpec() environment.Spec {
	shape := mat.NewVecDense(ActionDims, nil)
	lowerBound := mat.NewVecDense(ActionDims, []float64{d.abatement.Min})
	upperBound := mat.NewVecDense(ActionDims, []float64{d.abatement.Max})

	return environment.NewSpec(shape, environment.Action, lowerBound,
		upperBound, environment.Continuous)
}

// ObservationSpec returns the observation specification of the
// environment
func (d *Dice) ObservationSpec() environment.Spec {
	shape := mat.NewVecDense(ObservationDims, nil)

	inf := math.Inf(1)
	lowerBound := mat.NewVecDense(ObservationDims, []float64{0, 0, 0, 0,
		-inf, -inf, 0})
	upperBound := mat.NewVecDense(ObservationDims, []float64{inf, inf, inf,
		inf, inf, inf, float64(d.Horizon())})

	return environment.NewSpec(shape, environment.Observation, lowerBound,
		upperBound, environment.Continuous)
}

// DiscountSpec returns the discount specification of the environment
func (d *Dice) DiscountSpec() environment.Spec {
	shape := mat.NewVecDense(1, nil)
	lowerBound := mat.NewVecDense(1, []float64{d.discount})
	upperBound := mat.NewVecDense(1, []float64{d.discount})

	return environment.NewSpec(shape, environment.Discount, lowerBound,
		upperBound, environment.Continuous)
}

// String implements the fmt.Stringer interface
func (d *Dice) String() string {
	s := d.currentStep.Observation
	str := "Dice  |  year: %v  |  K: %.2f  |  M_AT: %.2f  |  M_UP: %.2f  |" +
		"  M_LO: %.2f  |  T_AT: %.4f  |  T_LO: %.4f"

	return fmt.Sprintf(str, d.params.Year0+int(s.AtVec(Time)),
		s.AtVec(Capital), s.AtVec(AtmosphericCarbon),
		s.AtVec(UpperOceanCarbon), s.AtVec(LowerOceanCarbon),
		s.AtVec(AtmosphericTemp), s.AtVec(LowerOceanTemp))
}

// validateState ensures a state vector can be simulated
func validateState(state *mat.VecDense) error {
	if l := state.Len(); l != ObservationDims {
		return fmt.Errorf("illegal state length \n\twant(%v) \n\thave(%v)",
			ObservationDims, l)
	}
	for i := 0; i < state.Len(); i++ {
		if v := state.AtVec(i); math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("state feature %v is not finite", i)
		}
	}
	for _, i := range []int{Capital, AtmosphericCarbon, UpperOceanCarbon,
		LowerOceanCarbon} {
		if state.AtVec(i) <= 0 {
			return fmt.Errorf("state feature %v must be positive", i)
		}
	}
	if state.AtVec(Time) < 0 {
		return fmt.Errorf("time index must be non-negative")
	}
	return nil
}
