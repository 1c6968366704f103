package experiment

import (
	"fmt"

	ts "github.com/samuelfneumann/godice/timestep"
	"gonum.org/v1/gonum/floats"
)

// Trajectory holds the data generated by a single evaluation episode.
// For index i, Actions[i] was taken in the state preceding States[i],
// resulting in reward Rewards[i]. QValues is empty if no critic scored
// the actions.
type Trajectory struct {
	Name    string
	Rewards []float64
	Actions [][]float64
	States  [][]float64
	QValues []float64
	End     ts.EndType
}

// Len returns the number of steps in the Trajectory
func (t Trajectory) Len() int {
	return len(t.Rewards)
}

// Return returns the sum of rewards of the Trajectory
func (t Trajectory) Return() float64 {
	return floats.Sum(t.Rewards)
}

// Action returns dimension i of all actions in the Trajectory
func (t Trajectory) Action(i int) []float64 {
	col := make([]float64, len(t.Actions))
	for j := range t.Actions {
		col[j] = t.Actions[j][i]
	}
	return col
}

// Feature returns feature i of all states in the Trajectory
func (t Trajectory) Feature(i int) []float64 {
	col := make([]float64, len(t.States))
	for j := range t.States {
		col[j] = t.States[j][i]
	}
	return col
}

// validate checks that the series of the Trajectory are consistent
func (t Trajectory) validate() error {
	if len(t.Actions) != len(t.Rewards) || len(t.States) != len(t.Rewards) {
		return fmt.Errorf("validate: trajectory %q has %v rewards, %v "+
			"actions and %v states", t.Name, len(t.Rewards), len(t.Actions),
			len(t.States))
	}
	if len(t.QValues) != 0 && len(t.QValues) != len(t.Rewards) {
		return fmt.Errorf("validate: trajectory %q has %v rewards but %v "+
			"values", t.Name, len(t.Rewards), len(t.QValues))
	}
	return nil
}
