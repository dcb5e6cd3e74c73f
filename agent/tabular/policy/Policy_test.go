package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/gopherrl/tabular/timestep"
)

// stateStep returns a timestep observing a one-hot encoding of the
// argument state
func stateStep(states, state int) timestep.TimeStep {
	obs := mat.NewVecDense(states, nil)
	obs.SetVec(state, 1.0)
	return timestep.New(timestep.Mid, 0, 1.0, obs, 1)
}

// newTable returns a 2 action x 3 state table where action 1 is
// greedy in states 0 and 2 and action 0 is greedy in state 1
func newTable() *mat.Dense {
	return mat.NewDense(2, 3, []float64{
		0.0, 5.0, -1.0,
		1.0, 2.0, 0.5,
	})
}

func TestGreedySelectsTheLargestActionValue(t *testing.T) {
	p := NewGreedy(newTable())

	assert.Equal(t, 1.0, p.SelectAction(stateStep(3, 0)).AtVec(0))
	assert.Equal(t, 0.0, p.SelectAction(stateStep(3, 1)).AtVec(0))
	assert.Equal(t, 1.0, p.SelectAction(stateStep(3, 2)).AtVec(0))
}

func TestEGreedyWithZeroEpsilonIsGreedy(t *testing.T) {
	p := NewEGreedy(0.0, 14, newTable())

	for i := 0; i < 100; i++ {
		assert.Equal(t, 1.0, p.SelectAction(stateStep(3, 0)).AtVec(0))
	}
}

func TestEGreedyWithFullEpsilonExplores(t *testing.T) {
	p := NewEGreedy(1.0, 14, newTable())

	selected := make(map[float64]int)
	for i := 0; i < 1000; i++ {
		selected[p.SelectAction(stateStep(3, 0)).AtVec(0)]++
	}

	// Both actions should be selected roughly uniformly
	assert.Len(t, selected, 2)
	assert.Greater(t, selected[0.0], 300)
	assert.Greater(t, selected[1.0], 300)
}

func TestSetWeightsSharesTables(t *testing.T) {
	behaviour := NewEGreedy(0.1, 14, newTable())
	target := NewGreedy(mat.NewDense(2, 3, nil))

	require.NoError(t, target.SetWeights(behaviour.Weights()))
	assert.Equal(t, 1.0, target.SelectAction(stateStep(3, 0)).AtVec(0))

	assert.Error(t, target.SetWeights(map[string]*mat.Dense{}))
}
