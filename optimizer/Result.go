package optimizer

import (
	"fmt"
	"time"

	"github.com/samuelfneumann/godice/agent/schedule"
	"github.com/samuelfneumann/godice/utils/fileutils"
)

// Result is the outcome of a search for the optimal abatement schedule.
// Decision i of X is the abatement rate held for Stepsize years,
// starting Stepsize·i years after the first year.
type Result struct {
	X        []float64
	Stepsize int
	Horizon  int
	Method   Method

	// Utility is the total discounted utility of X and Objective the
	// scaled objective value of X
	Utility   float64
	Objective float64

	Status      string
	Iterations  int
	Evaluations int
	Runtime     time.Duration
}

// Years returns the first year of each decision, when the schedule
// starts in year start
func (r *Result) Years(start int) []int {
	years := make([]int, len(r.X))
	for i := range years {
		years[i] = start + i*r.Stepsize
	}
	return years
}

// Schedule returns an open-loop policy following the decisions of the
// Result
func (r *Result) Schedule(interp schedule.Interpolation) (*schedule.Schedule,
	error) {
	return schedule.New(r.X, r.Stepsize, interp)
}

// Save saves the Result to a file at filename
func (r *Result) Save(filename string) error {
	if err := fileutils.SaveGob(filename, r); err != nil {
		return fmt.Errorf("save: %v", err)
	}
	return nil
}

// LoadResult loads a Result saved with Save
func LoadResult(filename string) (*Result, error) {
	var r Result
	if err := fileutils.LoadGob(filename, &r); err != nil {
		return nil, fmt.Errorf("loadResult: %v", err)
	}
	return &r, nil
}

// String implements the fmt.Stringer interface
func (r *Result) String() string {
	return fmt.Sprintf("{%v decisions, stepsize %v, method %v, utility "+
		"%.6f, objective %.6f, status %v, %v iterations, %v evaluations, "+
		"%v}", len(r.X), r.Stepsize, r.Method, r.Utility, r.Objective,
		r.Status, r.Iterations, r.Evaluations, r.Runtime)
}
