package checkpointer

import "fmt"

// nStep implements checkpointing every N steps
type nStep struct {
	interval int
	object   Saver // Object to save

	// filename returns the string filename of the file to save the object
	// in.
	//
	// If each checkpoint should be saved in a separate file with each
	// file having an incremented number as a suffix (e.g. file1.bin,
	// file2.bin, ..., fileK.bin), then use FilenameEnumerator. If the
	// filename does not matter, use FileTimer. For example:
	//
	// n := NewNStep(10, object, FileTimer("filename", ".bin"))
	//
	// To overwrite a single file, return a constant.
	filename func() string
}

// NewNStep returns a checkpointer that checkpoints every n steps.
func NewNStep(n int, object Saver,
	filename func() string) (Checkpointer, error) {
	if n <= 0 {
		return nil, fmt.Errorf("newNStep: checkpoint interval must be "+
			"positive \n\thave(%v)", n)
	}
	if object == nil || filename == nil {
		return nil, fmt.Errorf("newNStep: object and filename must not " +
			"be nil")
	}
	return &nStep{
		interval: n,
		object:   object,
		filename: filename,
	}, nil
}

// Checkpoint checkpoints the Checkpointer's tracked object by calling
// its Save() method if step is a multiple of the interval
func (n *nStep) Checkpoint(step int) error {
	if step > 0 && step%n.interval == 0 {
		return n.object.Save(n.filename())
	}
	return nil
}
