package dice

import (
	"fmt"
	"math"

	"github.com/samuelfneumann/godice/environment"
	ts "github.com/samuelfneumann/godice/timestep"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
)

// DefaultHorizon is the default number of years simulated per episode
const DefaultHorizon int = 600

// Task is an environment.Task over the DICE dynamics. The Task owns
// the model parameters so that rewards and transitions are always
// computed with the same calibration.
type Task interface {
	environment.Task
	Params() Params
	Horizon() int
}

// Welfare implements the social planner's task: the reward on each
// step is the discounted utility of consumption, β^t·L·u(c), and
// episodes end after a fixed number of years.
type Welfare struct {
	environment.Starter
	stepLimit *environment.StepLimit
	params    Params
}

// NewWelfare returns a new Welfare task starting episodes at states
// drawn from s and ending them after horizon years
func NewWelfare(s environment.Starter, p Params,
	horizon int) (*Welfare, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("newWelfare: %v", err)
	}
	if horizon <= 0 {
		return nil, fmt.Errorf("newWelfare: horizon must be positive "+
			"\n\thave(%v)", horizon)
	}
	if s == nil {
		s = environment.NewConstantStarter(p.InitialState())
	}

	return &Welfare{
		Starter:   s,
		stepLimit: environment.NewStepLimit(horizon),
		params:    p,
	}, nil
}

// NewDefaultWelfare returns the Welfare task with the DICE-2007
// calibration, the 2005 initial state and the default horizon
func NewDefaultWelfare() *Welfare {
	w, err := NewWelfare(nil, DefaultParams(), DefaultHorizon)
	if err != nil {
		panic(fmt.Sprintf("newDefaultWelfare: %v", err))
	}
	return w
}

// Params returns the model parameters of the task
func (w *Welfare) Params() Params {
	return w.params
}

// Horizon returns the number of years in an episode
func (w *Welfare) Horizon() int {
	return w.stepLimit.Limit()
}

// End ends the episode once the horizon is reached
func (w *Welfare) End(t *ts.TimeStep) bool {
	return w.stepLimit.End(t)
}

// GetReward returns the discounted utility of consumption in state
// when abating at the rate given by action
func (w *Welfare) GetReward(state, action, _ mat.Vector) float64 {
	return economy(w.params, state, action.AtVec(0)).Reward
}

// RewardSpec returns the reward specification of the task
func (w *Welfare) RewardSpec() environment.Spec {
	shape := mat.NewVecDense(1, nil)
	lowerBound := mat.NewVecDense(1, []float64{math.Inf(-1)})
	upperBound := mat.NewVecDense(1, []float64{math.Inf(1)})

	return environment.NewSpec(shape, environment.Reward, lowerBound,
		upperBound, environment.Continuous)
}

// TemperatureCeiling is a Welfare task which additionally ends the
// episode as soon as the atmospheric temperature leaves some interval
type TemperatureCeiling struct {
	*Welfare
	ceiling *environment.IntervalLimit
	bound   r1.Interval
}

// NewTemperatureCeiling returns a new TemperatureCeiling task which
// ends episodes when the atmospheric temperature exceeds maxTemp
func NewTemperatureCeiling(s environment.Starter, p Params, horizon int,
	maxTemp float64) (*TemperatureCeiling, error) {
	w, err := NewWelfare(s, p, horizon)
	if err != nil {
		return nil, fmt.Errorf("newTemperatureCeiling: %v", err)
	}

	bound := r1.Interval{Min: math.Inf(-1), Max: maxTemp}
	ceiling, err := environment.NewIntervalLimit([]r1.Interval{bound},
		[]int{AtmosphericTemp}, ts.TerminalStateReached)
	if err != nil {
		return nil, fmt.Errorf("newTemperatureCeiling: %v", err)
	}

	return &TemperatureCeiling{w, ceiling, bound}, nil
}

// End ends the episode if the temperature ceiling is crossed or the
// horizon is reached
func (c *TemperatureCeiling) End(t *ts.TimeStep) bool {
	if ended := c.ceiling.End(t); ended {
		return true
	}
	return c.Welfare.End(t)
}

// MaxTemp returns the temperature ceiling of the task
func (c *TemperatureCeiling) MaxTemp() float64 {
	return c.bound.Max
}
