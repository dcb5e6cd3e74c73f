// Package policy implements policies over tabular action values
package policy

import (
	"fmt"

	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/gopherrl/tabular/timestep"
	"github.com/gopherrl/tabular/utils/matutils"
)

const (
	// Key for weights map: map[string]*mat.Dense
	WeightsKey string = "weights"
)

// EGreedy implements an ε-greedy policy over a table of action values.
// The table has one row per action and one column per state, and
// observations are one-hot state vectors, so looking up the action
// values of a state is a column lookup on the table.
type EGreedy struct {
	table   *mat.Dense
	epsilon float64
	seed    rand.Source // Seed for random number generation
}

// NewEGreedy constructs a new EGreedy policy over the argument action
// value table, where e = epsilon is the probability with which a
// random action is selected
func NewEGreedy(e float64, seed uint64, table *mat.Dense) *EGreedy {
	source := rand.NewSource(seed)
	return &EGreedy{table, e, source}
}

// Weights gets and returns the action value table of the EGreedy
// policy as a map of string description -> weights
func (p *EGreedy) Weights() map[string]*mat.Dense {
	weights := make(map[string]*mat.Dense)
	weights[WeightsKey] = p.table

	return weights
}

// SelectAction selects an action from an ε-greedy policy
func (p *EGreedy) SelectAction(t timestep.TimeStep) mat.Vector {
	state := matutils.OneHotIndex(t.Observation)

	// Look up the action values of the current state
	numActions, _ := p.table.Dims()
	actionValues := mat.NewVecDense(numActions, nil)
	for a := 0; a < numActions; a++ {
		actionValues.SetVec(a, p.table.At(a, state))
	}

	// Find the greedy action
	greedyAction := matutils.MaxVec(actionValues)

	// Calculate the ε probability of choosing any action at random
	prob := p.epsilon / float64(numActions)
	actionProbabilities := make([]float64, numActions)
	for i := 0; i < numActions; i++ {
		actionProbabilities[i] = prob
	}

	// Adjust the probability of choosing the greedy action
	actionProbabilities[greedyAction] += (1.0 - p.epsilon)

	// Sample an action from the categorical distribution over actions
	dist := distuv.NewCategorical(actionProbabilities, p.seed)

	return mat.NewVecDense(1, []float64{dist.Rand()})
}

// SetWeights sets the table pointer to point to a new action value
// table. The SetWeights function can take the output of a call to
// Weights() on another policy directly.
func (p *EGreedy) SetWeights(weights map[string]*mat.Dense) error {
	newTable, ok := weights[WeightsKey]
	if !ok {
		return fmt.Errorf("setWeights: no weights named %q", WeightsKey)
	}

	p.table = newTable
	return nil
}
