package checkpointer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	ts "github.com/gopherrl/tabular/timestep"
)

// spy records the filenames it was asked to save itself to
type spy struct {
	saves []string
}

func (s *spy) Save(filename string) error {
	s.saves = append(s.saves, filename)
	return nil
}

func step(number int) ts.TimeStep {
	obs := mat.NewVecDense(1, []float64{1})
	return ts.New(ts.Mid, 0, 1.0, obs, number)
}

func TestNStepCheckpointsEveryNSteps(t *testing.T) {
	object := &spy{}
	c := NewNStep(3, object, Fixed("table.gob"))

	for i := 0; i <= 9; i++ {
		require.NoError(t, c.Checkpoint(step(i)))
	}

	// Steps 3, 6, and 9 trigger a checkpoint; step 0 does not
	assert.Equal(t, []string{"table.gob", "table.gob", "table.gob"},
		object.saves)
}

func TestFileEnumerator(t *testing.T) {
	object := &spy{}
	c := NewNStep(1, object, FileEnumerator("table", "gob"))

	for i := 1; i <= 3; i++ {
		require.NoError(t, c.Checkpoint(step(i)))
	}

	assert.Equal(t, []string{"table1.gob", "table2.gob", "table3.gob"},
		object.saves)
}
