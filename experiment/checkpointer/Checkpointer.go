// Package checkpointer implements periodic saving of serializable
// objects, such as an agent's Q-table, during an experiment
package checkpointer

import (
	"fmt"

	ts "github.com/gopherrl/tabular/timestep"
)

// Serializable is an object that can save itself to a file
type Serializable interface {
	Save(filename string) error
}

// Checkpointer checkpoints/saves Serializable objects based on
// timestep.TimeSteps
type Checkpointer interface {
	Checkpoint(ts.TimeStep) error
}

// FileEnumerator returns a naming function that enumerates filenames
// with an incrementing suffix: base1.ext, base2.ext, ..., baseK.ext
func FileEnumerator(base, ext string) func() string {
	count := 0
	return func() string {
		count++
		return fmt.Sprintf("%s%d.%s", base, count, ext)
	}
}

// Fixed returns a naming function that always names the same file, so
// that each checkpoint overwrites the last
func Fixed(filename string) func() string {
	return func() string {
		return filename
	}
}
