package qlearning

import (
	"fmt"
	"os"

	"gonum.org/v1/gonum/mat"

	"github.com/gopherrl/tabular/timestep"
	"github.com/gopherrl/tabular/utils/matutils"
)

// QLearner implements the update functionality for the Q-Learning
// algorithm on a table of action values. The table has one row per
// action and one column per state, and observations are one-hot state
// vectors.
type QLearner struct {
	table        *mat.Dense
	step         timestep.TimeStep
	action       int
	nextStep     timestep.TimeStep
	learningRate float64
}

// NewQLearner creates a new QLearner struct. The table argument is the
// action value table of the policy to learn.
func NewQLearner(table *mat.Dense, learningRate float64) *QLearner {
	return &QLearner{
		table:        table,
		learningRate: learningRate,
	}
}

// ObserveFirst observes and records the first episodic timestep
func (q *QLearner) ObserveFirst(t timestep.TimeStep) {
	if !t.First() {
		fmt.Fprintf(os.Stderr, "Warning: ObserveFirst() should only be "+
			"called on the first timestep (current timestep = %d)\n", t.Number)
	}
	q.step = timestep.TimeStep{}
	q.nextStep = t
}

// Observe observes and records any timestep other than the first
func (q *QLearner) Observe(action mat.Vector, nextStep timestep.TimeStep) {
	if action.Len() != 1 {
		fmt.Fprintf(os.Stderr, "Warning: value-based methods should not "+
			"have multi-dimensional actions (action dim = %d)\n", action.Len())
	}
	q.step = q.nextStep
	q.action = int(action.AtVec(0))
	q.nextStep = nextStep
}

// Step updates the action value table for the last observed transition:
//
//	Q(s, a) += α * (r + γ * max_a' Q(s', a') - Q(s, a))
//
// The bootstrapped term is dropped when the next state is terminal.
func (q *QLearner) Step() {
	state := matutils.OneHotIndex(q.step.Observation)
	nextState := matutils.OneHotIndex(q.nextStep.Observation)

	// Find the maximum action value in the next state. Terminal states
	// have no future value; episodes cut off at a step limit still
	// bootstrap.
	var maxNext float64
	if !q.nextStep.Last() || q.nextStep.End() == timestep.Timeout {
		numActions, _ := q.table.Dims()
		maxNext = q.table.At(0, nextState)
		for a := 1; a < numActions; a++ {
			if value := q.table.At(a, nextState); value > maxNext {
				maxNext = value
			}
		}
	}

	// Create the update target and move the current estimate toward it
	discount := q.nextStep.Discount
	target := q.nextStep.Reward + discount*maxNext

	currentEstimate := q.table.At(q.action, state)
	q.table.Set(q.action, state,
		currentEstimate+q.learningRate*(target-currentEstimate))
}

// EndEpisode performs cleanup at the end of an episode
func (q *QLearner) EndEpisode() {}

// TdError returns the TD error on the argument transition
func (q *QLearner) TdError(t timestep.Transition) float64 {
	state := matutils.OneHotIndex(t.State)
	nextState := matutils.OneHotIndex(t.NextState)
	action := int(t.Action.AtVec(0))

	numActions, _ := q.table.Dims()
	maxNext := q.table.At(0, nextState)
	for a := 1; a < numActions; a++ {
		if value := q.table.At(a, nextState); value > maxNext {
			maxNext = value
		}
	}

	target := t.Reward + t.Discount*maxNext
	return target - q.table.At(action, state)
}

// Weights gets and returns the action value table of the learner
func (q *QLearner) Weights() map[string]*mat.Dense {
	weights := make(map[string]*mat.Dense)
	weights["weights"] = q.table

	return weights
}
