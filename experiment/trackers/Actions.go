package trackers

import (
	ts "github.com/samuelfneumann/godice/timestep"
	"gonum.org/v1/gonum/mat"
)

// Actions tracks every action taken in an experiment
type Actions struct {
	actions  [][]float64
	filename string
}

// NewActions returns a new Actions Tracker which will save its data at
// filename
func NewActions(filename string) *Actions {
	return &Actions{filename: filename}
}

// TrackAction tracks a single action
func (a *Actions) TrackAction(action mat.Vector) {
	a.actions = append(a.actions, toSlice(action))
}

// Track does nothing, actions are tracked through TrackAction
func (a *Actions) Track(ts.TimeStep) {}

// Data returns the tracked actions, one row per action
func (a *Actions) Data() [][]float64 {
	data := make([][]float64, len(a.actions))
	for i := range a.actions {
		data[i] = append([]float64(nil), a.actions[i]...)
	}
	return data
}

// Dimension returns dimension i of every tracked action
func (a *Actions) Dimension(i int) []float64 {
	return column(a.actions, i)
}

// Save saves the tracked actions to disk
func (a *Actions) Save() error {
	return save(a.filename, a.actions)
}

// column returns column i of data
func column(data [][]float64, i int) []float64 {
	col := make([]float64, len(data))
	for j := range data {
		col[j] = data[j][i]
	}
	return col
}
