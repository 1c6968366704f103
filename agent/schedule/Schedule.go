// Package schedule implements open-loop policies which follow a
// piecewise decision vector, such as the trajectory found by the
// optimizer, regardless of the observed state.
package schedule

import (
	"fmt"
	"math"

	ts "github.com/samuelfneumann/godice/timestep"
	"gonum.org/v1/gonum/mat"
)

// Interpolation determines how actions are chosen between the years at
// which decisions are made
type Interpolation string

const (
	// Hold repeats each decision for stepsize years
	Hold Interpolation = "hold"

	// Linear interpolates linearly between consecutive decisions. Within
	// the final segment, the slope of the previous segment is continued.
	Linear Interpolation = "linear"
)

// Schedule is a Policy which selects actions from a fixed sequence of
// decisions, one decision every stepsize years. The year is read from
// the Number of the TimeStep.
type Schedule struct {
	decisions     []float64
	stepsize      int
	interpolation Interpolation
}

// New returns a new Schedule
func New(decisions []float64, stepsize int,
	interpolation Interpolation) (*Schedule, error) {
	if len(decisions) == 0 {
		return nil, fmt.Errorf("new: schedule must have at least one " +
			"decision")
	}
	if stepsize <= 0 {
		return nil, fmt.Errorf("new: stepsize must be positive "+
			"\n\thave(%v)", stepsize)
	}
	if interpolation != Hold && interpolation != Linear {
		return nil, fmt.Errorf("new: unknown interpolation %q",
			interpolation)
	}
	for i, d := range decisions {
		if math.IsNaN(d) || math.IsInf(d, 0) {
			return nil, fmt.Errorf("new: decision %v is not finite", i)
		}
	}

	return &Schedule{
		decisions:     append([]float64(nil), decisions...),
		stepsize:      stepsize,
		interpolation: interpolation,
	}, nil
}

// Len returns the number of years covered by the Schedule
func (s *Schedule) Len() int {
	return len(s.decisions) * s.stepsize
}

// Stepsize returns the number of years between decisions
func (s *Schedule) Stepsize() int {
	return s.stepsize
}

// Decisions returns a copy of the decision vector
func (s *Schedule) Decisions() []float64 {
	return append([]float64(nil), s.decisions...)
}

// ActionAt returns the action taken year years after the start of the
// Schedule. Years past the end of the Schedule repeat the action of
// its final year.
func (s *Schedule) ActionAt(year int) float64 {
	if year < 0 {
		year = 0
	}
	if year >= s.Len() {
		year = s.Len() - 1
	}
	segment := year / s.stepsize
	offset := year % s.stepsize

	x := s.decisions[segment]
	if s.interpolation == Hold || offset == 0 {
		return x
	}

	var slope float64
	switch {
	case segment < len(s.decisions)-1:
		slope = s.decisions[segment+1] - x
	case segment > 0:
		slope = x - s.decisions[segment-1]
	}
	return x + float64(offset)*slope/float64(s.stepsize)
}

// Expand returns the actions of the first years years of the Schedule
func (s *Schedule) Expand(years int) []float64 {
	actions := make([]float64, years)
	for i := range actions {
		actions[i] = s.ActionAt(i)
	}
	return actions
}

// SelectAction returns the action of the Schedule at the year given
// by the TimeStep's Number
func (s *Schedule) SelectAction(t ts.TimeStep) (*mat.VecDense, error) {
	if t.Number < 0 {
		return nil, fmt.Errorf("selectAction: invalid step number %v",
			t.Number)
	}
	return mat.NewVecDense(1, []float64{s.ActionAt(t.Number)}), nil
}
