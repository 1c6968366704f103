package optimizer

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/samuelfneumann/godice/experiment/checkpointer"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/optimize"
)

// recorder implements the optimize.Recorder interface. It tracks the
// incumbent of a search, checkpoints it periodically, and stops the
// search when the problem's context is done.
type recorder struct {
	p            *problem
	checkpointer checkpointer.Checkpointer

	x         []float64
	iteration int
}

// newRecorder returns a new recorder for the problem p
func newRecorder(p *problem) (*recorder, error) {
	r := &recorder{p: p, x: p.initial()}

	if p.cfg.CheckpointEvery > 0 {
		c, err := checkpointer.NewNStep(p.cfg.CheckpointEvery, r,
			filenames(p.cfg.CheckpointPath, p.cfg.CheckpointNaming))
		if err != nil {
			return nil, fmt.Errorf("newRecorder: %v", err)
		}
		r.checkpointer = c
	}
	return r, nil
}

// filenames returns the checkpoint filename generator for naming
func filenames(path string, naming Naming) func() string {
	ext := filepath.Ext(path)
	name := strings.TrimSuffix(path, ext)

	switch naming {
	case Enumerate:
		return checkpointer.FilenameEnumerator(0, name+"_", ext)
	case Timestamp:
		return checkpointer.FileTimer(name, ext)
	default:
		return checkpointer.Constant(path)
	}
}

// Init implements the optimize.Recorder interface
func (r *recorder) Init() error {
	return r.p.ctx.Err()
}

// Record implements the optimize.Recorder interface
func (r *recorder) Record(loc *optimize.Location, op optimize.Operation,
	stats *optimize.Stats) error {
	if err := r.p.ctx.Err(); err != nil {
		return err
	}
	if op != optimize.MajorIteration {
		return nil
	}
	return r.iterate(loc.X, loc.F, stats.MajorIterations)
}

// iterate records a new incumbent x with objective f
func (r *recorder) iterate(x []float64, f float64, iteration int) error {
	logrus.Infof("iteration %v: objective %.6f (utility %.6f)", iteration,
		f, r.p.unscale(f))

	r.x = project(x)
	r.iteration = iteration

	if r.checkpointer != nil {
		return r.checkpointer.Checkpoint(iteration)
	}
	return nil
}

// Save saves the incumbent as a Result to filename
func (r *recorder) Save(filename string) error {
	result, err := r.p.result(r.x, "Checkpoint", r.iteration)
	if err != nil {
		return fmt.Errorf("save: %v", err)
	}
	logrus.Debugf("checkpointing iteration %v to %v", r.iteration, filename)
	return result.Save(filename)
}
