package optimizer

import (
	"context"
	"fmt"
	"math"

	env "github.com/samuelfneumann/godice/environment"
	"github.com/samuelfneumann/godice/environment/dice"
	"github.com/samuelfneumann/godice/utils/floatutils"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
)

// unit is the feasible interval of every decision
var unit = r1.Interval{Min: dice.MinAbatement, Max: dice.MaxAbatement}

// Utility returns the total discounted utility of holding each decision
// of x for stepsize years, starting from the Task's starting state.
// Decisions are clipped to [0, 1]. The schedule must cover the Task's
// horizon exactly.
func Utility(task dice.Task, x []float64, stepsize int) (float64, error) {
	if stepsize <= 0 || len(x)*stepsize != task.Horizon() {
		return 0, fmt.Errorf("utility: %v decisions of %v years do not "+
			"cover the horizon of %v years", len(x), stepsize, task.Horizon())
	}

	d, _, err := dice.New(task, 1.0)
	if err != nil {
		return 0, fmt.Errorf("utility: %v", err)
	}

	var utility float64
	action := mat.NewVecDense(dice.ActionDims, nil)
	for i := range x {
		if math.IsNaN(x[i]) {
			return 0, fmt.Errorf("utility: decision %v is NaN", i)
		}
		action.SetVec(0, floatutils.ClipInterval(x[i], unit))

		for j := 0; j < stepsize; j++ {
			step, done, err := d.Step(action)
			if err != nil {
				return 0, fmt.Errorf("utility: %v", err)
			}
			utility += step.Reward

			// Tasks may end episodes before the horizon, e.g. when a
			// temperature ceiling is exceeded
			if done {
				return utility, nil
			}
		}
	}
	return utility, nil
}

// problem is the minimization problem of a single search
type problem struct {
	ctx         context.Context
	task        dice.Task
	cfg         Config
	dims        int
	evaluations int
	err         error
}

// fixedStart is a Task whose episodes all start in the same state
type fixedStart struct {
	dice.Task
	starter env.Starter
}

// Start returns a copy of the fixed starting state
func (f fixedStart) Start() *mat.VecDense {
	return f.starter.Start()
}

// newProblem returns the problem of finding the optimal schedule for
// task, or an error if the stepsize does not divide the task's horizon.
// The starting state of task is sampled once, so that every evaluation
// of the objective rolls out from the same state.
func newProblem(ctx context.Context, task dice.Task,
	cfg Config) (*problem, error) {
	if task == nil {
		return nil, fmt.Errorf("newProblem: task must not be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("newProblem: %v", err)
	}
	if task.Horizon()%cfg.Stepsize != 0 {
		return nil, fmt.Errorf("newProblem: stepsize must divide the "+
			"horizon \n\thorizon(%v) \n\tstepsize(%v)", task.Horizon(),
			cfg.Stepsize)
	}

	start := task.Start()
	fixed := fixedStart{
		Task:    task,
		starter: env.NewConstantStarter(start.RawVector().Data),
	}

	return &problem{
		ctx:  ctx,
		task: fixed,
		cfg:  cfg,
		dims: task.Horizon() / cfg.Stepsize,
	}, nil
}

// initial returns the initial guess
func (p *problem) initial() []float64 {
	return floatutils.Fill(p.dims, p.cfg.InitialGuess)
}

// scale returns the objective value of a total utility
func (p *problem) scale(utility float64) float64 {
	return -(utility / p.cfg.Scale1) + p.cfg.Scale2
}

// unscale returns the total utility of an objective value
func (p *problem) unscale(objective float64) float64 {
	return (p.cfg.Scale2 - objective) * p.cfg.Scale1
}

// objective returns the scaled objective value of x projected onto the
// feasible box. Failed rollouts have an infinite objective and the
// first failure is recorded.
func (p *problem) objective(x []float64) float64 {
	p.evaluations++
	u, err := Utility(p.task, x, p.cfg.Stepsize)
	if err != nil {
		if p.err == nil {
			p.err = err
		}
		return math.Inf(1)
	}
	return p.scale(u)
}

// penalized returns the objective of x plus the quadratic penalty of
// the distance of x from the feasible box
func (p *problem) penalized(x []float64) float64 {
	var penalty float64
	for _, xi := range x {
		d := xi - floatutils.ClipInterval(xi, unit)
		penalty += d * d
	}
	return p.objective(x) + p.cfg.Penalty*penalty
}

// project returns x projected onto the feasible box
func project(x []float64) []float64 {
	return floatutils.ClipSlice(append([]float64(nil), x...), unit)
}
