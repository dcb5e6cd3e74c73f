package checkpointer

import ts "github.com/gopherrl/tabular/timestep"

// nStep implements checkpointing every N steps
type nStep struct {
	interval int
	object   Serializable // Object to save

	// filename returns the filename of the file to save the object in.
	// Use FileEnumerator to keep every checkpoint in its own file, or
	// Fixed to overwrite a single file on every checkpoint.
	filename func() string
}

// NewNStep returns a checkpointer that checkpoints every n steps
func NewNStep(n int, object Serializable, filename func() string) Checkpointer {
	return &nStep{
		interval: n,
		object:   object,
		filename: filename,
	}
}

// Checkpoint checkpoints the tracked object by calling its Save()
// method whenever the timestep number is a multiple of the interval
func (n *nStep) Checkpoint(t ts.TimeStep) error {
	if t.Number > 0 && t.Number%n.interval == 0 {
		return n.object.Save(n.filename())
	}
	return nil
}
