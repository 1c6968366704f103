// Package trackers implements Trackers, which track and save data in
// an experiment
package trackers

import (
	"fmt"

	ts "github.com/samuelfneumann/godice/timestep"
	"github.com/samuelfneumann/godice/utils/fileutils"
	"gonum.org/v1/gonum/mat"
)

// Tracker keeps track of experiment data and saves the data after the
// experiment has finished
type Tracker interface {
	Track(t ts.TimeStep)
	Save() error
}

// ActionTracker is a Tracker which also tracks the actions taken. An
// experiment calls TrackAction with the action taken in the previous
// TimeStep before calling Track with the resulting TimeStep.
type ActionTracker interface {
	Tracker
	TrackAction(action mat.Vector)
}

// ValueTracker is a Tracker which also tracks the value estimates of
// a critic, one for each action taken
type ValueTracker interface {
	Tracker
	TrackValue(v float64)
}

// save encodes data to a new file at filename
func save(filename string, data interface{}) error {
	if err := fileutils.SaveGob(filename, data); err != nil {
		return fmt.Errorf("save: %v", err)
	}
	return nil
}

// load decodes the data in the file at filename into data
func load(filename string, data interface{}) error {
	if err := fileutils.LoadGob(filename, data); err != nil {
		return fmt.Errorf("load: %v", err)
	}
	return nil
}

// LoadData loads and returns the data saved by a Tracker of scalars,
// such as Rewards, Return, or QValues
func LoadData(filename string) ([]float64, error) {
	var data []float64
	if err := load(filename, &data); err != nil {
		return nil, fmt.Errorf("loadData: %v", err)
	}
	return data, nil
}

// LoadIntData loads and returns the data saved by an EpisodeLength
// Tracker
func LoadIntData(filename string) ([]int, error) {
	var data []int
	if err := load(filename, &data); err != nil {
		return nil, fmt.Errorf("loadIntData: %v", err)
	}
	return data, nil
}

// LoadVectorData loads and returns the data saved by a Tracker of
// vectors, such as Actions or States. Each row of the returned data is
// a single vector.
func LoadVectorData(filename string) ([][]float64, error) {
	var data [][]float64
	if err := load(filename, &data); err != nil {
		return nil, fmt.Errorf("loadVectorData: %v", err)
	}
	return data, nil
}

// toSlice returns the elements of v as a new slice
func toSlice(v mat.Vector) []float64 {
	data := make([]float64, v.Len())
	for i := range data {
		data[i] = v.AtVec(i)
	}
	return data
}
