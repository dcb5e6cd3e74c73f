package policy

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/gopherrl/tabular/timestep"
	"github.com/gopherrl/tabular/utils/matutils"
)

// Greedy implements a greedy policy over a table of action values.
// Greedy policies always choose the action with the highest value in
// the current state, breaking ties by the lowest action index.
type Greedy struct {
	table *mat.Dense
}

// NewGreedy constructs a new Greedy policy over the argument action
// value table
func NewGreedy(table *mat.Dense) *Greedy {
	return &Greedy{table}
}

// Weights gets and returns the action value table of the Greedy policy
// as a map of string description -> weights
func (p *Greedy) Weights() map[string]*mat.Dense {
	weights := make(map[string]*mat.Dense)
	weights[WeightsKey] = p.table

	return weights
}

// SelectAction selects the greedy action in the current state
func (p *Greedy) SelectAction(t timestep.TimeStep) mat.Vector {
	state := matutils.OneHotIndex(t.Observation)

	numActions, _ := p.table.Dims()
	actionValues := mat.NewVecDense(numActions, nil)
	for a := 0; a < numActions; a++ {
		actionValues.SetVec(a, p.table.At(a, state))
	}

	greedyAction := matutils.MaxVec(actionValues)

	return mat.NewVecDense(1, []float64{float64(greedyAction)})
}

// SetWeights sets the table pointer to point to a new action value
// table
func (p *Greedy) SetWeights(weights map[string]*mat.Dense) error {
	newTable, ok := weights[WeightsKey]
	if !ok {
		return fmt.Errorf("setWeights: no weights named %q", WeightsKey)
	}

	p.table = newTable
	return nil
}
