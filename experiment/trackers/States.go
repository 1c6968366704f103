package trackers

import (
	ts "github.com/samuelfneumann/godice/timestep"
)

// States tracks the observation of every TimeStep that follows an
// action. The starting observation of an episode is not tracked, so
// that the i-th state is the one reached by the i-th action.
type States struct {
	states   [][]float64
	filename string
}

// NewStates returns a new States Tracker which will save its data at
// filename
func NewStates(filename string) *States {
	return &States{filename: filename}
}

// Track tracks the observation of t
func (s *States) Track(t ts.TimeStep) {
	if t.First() || t.Observation == nil {
		return
	}
	s.states = append(s.states, toSlice(t.Observation))
}

// Data returns the tracked states, one row per state
func (s *States) Data() [][]float64 {
	data := make([][]float64, len(s.states))
	for i := range s.states {
		data[i] = append([]float64(nil), s.states[i]...)
	}
	return data
}

// Feature returns feature i of every tracked state
func (s *States) Feature(i int) []float64 {
	return column(s.states, i)
}

// Save saves the tracked states to disk
func (s *States) Save() error {
	return save(s.filename, s.states)
}
