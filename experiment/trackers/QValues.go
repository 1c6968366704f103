package trackers

import (
	ts "github.com/samuelfneumann/godice/timestep"
)

// QValues tracks the value a critic assigns to each action taken
type QValues struct {
	values   []float64
	filename string
}

// NewQValues returns a new QValues Tracker which will save its data at
// filename
func NewQValues(filename string) *QValues {
	return &QValues{filename: filename}
}

// TrackValue tracks a single value estimate
func (q *QValues) TrackValue(v float64) {
	q.values = append(q.values, v)
}

// Track does nothing, values are tracked through TrackValue
func (q *QValues) Track(ts.TimeStep) {}

// Data returns the tracked values
func (q *QValues) Data() []float64 {
	return append([]float64(nil), q.values...)
}

// Save saves the tracked values to disk
func (q *QValues) Save() error {
	return save(q.filename, q.values)
}
