// Package checkpointer implements periodic saving of objects during
// long running experiments and optimizations
package checkpointer

// Saver is an object which can save itself to a file
type Saver interface {
	Save(filename string) error
}

// Checkpointer checkpoints/saves objects based on a step count, such as
// the current TimeStep number or optimizer iteration
type Checkpointer interface {
	Checkpoint(step int) error
}
