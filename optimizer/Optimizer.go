// Package optimizer searches directly for the emissions abatement
// schedule which maximizes the total discounted utility of a DICE
// task. A schedule holds one abatement rate for a fixed number of
// years, and the search is over these piecewise constant rates.
package optimizer

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/samuelfneumann/godice/environment/dice"
	"github.com/samuelfneumann/godice/utils/floatutils"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/optimize"
)

// FindOptimalPolicy searches for the abatement schedule of maximal
// total discounted utility on task. Each decision must lie in [0, 1];
// gonum methods search an unconstrained problem in which decisions are
// projected onto [0, 1] and penalized quadratically for leaving it.
// The search stops early with the context's error if ctx is done.
func FindOptimalPolicy(ctx context.Context, task dice.Task,
	cfg Config) (*Result, error) {
	p, err := newProblem(ctx, task, cfg)
	if err != nil {
		return nil, fmt.Errorf("findOptimalPolicy: %w", err)
	}

	rec, err := newRecorder(p)
	if err != nil {
		return nil, fmt.Errorf("findOptimalPolicy: %w", err)
	}

	logrus.Infof("searching for %v decisions of %v years with %v", p.dims,
		cfg.Stepsize, cfg.Method)
	start := time.Now()

	var result *Result
	if cfg.Method == Grid {
		result, err = p.grid(rec)
	} else {
		result, err = p.minimize(rec)
	}
	if err != nil {
		return nil, fmt.Errorf("findOptimalPolicy: %w", err)
	}
	result.Runtime = time.Since(start)

	logrus.Infof("search finished: %v", result)
	return result, nil
}

// method returns the gonum method of the problem's configuration
func (p *problem) method() (optimize.Method, error) {
	switch p.cfg.Method {
	case LBFGS:
		return &optimize.LBFGS{}, nil
	case BFGS:
		return &optimize.BFGS{}, nil
	case GradientDescent:
		return &optimize.GradientDescent{}, nil
	case NelderMead:
		return &optimize.NelderMead{}, nil
	}
	return nil, fmt.Errorf("method: %v is not a gonum method", p.cfg.Method)
}

// minimize searches for the optimal schedule using a gonum method
func (p *problem) minimize(rec *recorder) (*Result, error) {
	method, err := p.method()
	if err != nil {
		return nil, fmt.Errorf("minimize: %v", err)
	}

	prob := optimize.Problem{Func: p.penalized}
	if p.cfg.Method != NelderMead {
		settings := &fd.Settings{Formula: fd.Central, Step: p.cfg.GradientStep}
		prob.Grad = func(grad, x []float64) {
			fd.Gradient(grad, p.penalized, x, settings)
		}
	}

	settings := &optimize.Settings{
		MajorIterations: p.cfg.MaxIterations,
		Converger: &optimize.FunctionConverge{
			Absolute:   p.cfg.FTol,
			Iterations: 10,
		},
		Recorder: rec,
	}

	res, err := optimize.Minimize(prob, p.initial(), settings, method)
	if ctxErr := p.ctx.Err(); ctxErr != nil {
		return nil, fmt.Errorf("minimize: %w", ctxErr)
	}
	if res == nil {
		return nil, fmt.Errorf("minimize: %v", err)
	}
	if p.err != nil && math.IsInf(res.F, 1) {
		return nil, fmt.Errorf("minimize: %v", p.err)
	}

	status := res.Status.String()
	if err != nil {
		// Line searches may fail on a noisy finite difference gradient,
		// the best location found so far is still valid
		logrus.Warnf("%v stopped early: %v", p.cfg.Method, err)
		status = fmt.Sprintf("%v: %v", status, err)
	}

	return p.result(project(res.X), status, res.MajorIterations)
}

// grid searches for the optimal schedule by coordinate-wise grid
// refinement. Each sweep evaluates GridPoints equally spaced values of
// each decision in a window around its current value and keeps the
// best. The window shrinks after every sweep.
func (p *problem) grid(rec *recorder) (*Result, error) {
	x := p.initial()
	best := p.objective(x)
	points := p.cfg.GridPoints
	width := unit.Max - unit.Min
	shrink := gridShrink(points)

	status := optimize.NotTerminated
	var sweep int
	for status == optimize.NotTerminated {
		sweep++
		prev := best

		for i := range x {
			if err := p.ctx.Err(); err != nil {
				return nil, fmt.Errorf("grid: %w", err)
			}

			lo := math.Max(unit.Min, x[i]-width/2)
			hi := math.Min(unit.Max, x[i]+width/2)
			xi := x[i]
			for k := 0; k < points; k++ {
				x[i] = floatutils.Lerp(lo, hi, float64(k)/float64(points-1))
				if f := p.objective(x); f < best {
					best = f
					xi = x[i]
				}
			}
			x[i] = xi
		}

		if p.err != nil && math.IsInf(best, 1) {
			return nil, fmt.Errorf("grid: %v", p.err)
		}
		if err := rec.iterate(x, best, sweep); err != nil {
			return nil, fmt.Errorf("grid: %w", err)
		}

		width *= shrink
		if prev-best <= p.cfg.FTol {
			status = optimize.FunctionConvergence
		} else if p.cfg.MaxIterations > 0 && sweep >= p.cfg.MaxIterations {
			status = optimize.IterationLimit
		}
	}

	return p.result(x, status.String(), sweep)
}

// gridShrink returns the factor the window of the Grid method shrinks
// by after each sweep of points evaluations. The window spans two grid
// spacings around the incumbent, but shrinks at least by half.
func gridShrink(points int) float64 {
	return math.Min(2.0/float64(points-1), 0.5)
}

// result returns the Result of a search which ended at x
func (p *problem) result(x []float64, status string,
	iterations int) (*Result, error) {
	u, err := Utility(p.task, x, p.cfg.Stepsize)
	if err != nil {
		return nil, fmt.Errorf("result: %v", err)
	}

	return &Result{
		X:           append([]float64(nil), x...),
		Stepsize:    p.cfg.Stepsize,
		Horizon:     p.task.Horizon(),
		Method:      p.cfg.Method,
		Utility:     u,
		Objective:   p.scale(u),
		Status:      status,
		Iterations:  iterations,
		Evaluations: p.evaluations,
	}, nil
}
