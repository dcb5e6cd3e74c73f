// Package qlearning implements the tabular Q-Learning algorithm.
//
// Q-Learning is an off-policy temporal difference control algorithm.
// The agent follows an ε-greedy behaviour policy over a table of
// action values while learning about the greedy target policy over the
// same table.
package qlearning

import (
	"encoding/gob"
	"fmt"
	"os"

	"gonum.org/v1/gonum/mat"

	"github.com/gopherrl/tabular/agent"
	"github.com/gopherrl/tabular/agent/tabular/policy"
	"github.com/gopherrl/tabular/environment"
)

// QLearning implements the tabular Q-Learning algorithm. The learner,
// the behaviour policy, and the target policy all share a single
// action value table.
type QLearning struct {
	*QLearner
	agent.Policy
	target agent.Policy
	seed   uint64
}

// New creates a new QLearning agent for the argument environment. The
// environment must have 1-dimensional discrete actions and one-hot
// discrete observations (e.g. FrozenLake, or a continuous-state
// environment wrapped in wrappers.Discretize).
func New(e environment.Environment, c Config, seed uint64) (*QLearning,
	error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("new: %v", err)
	}

	// Ensure actions are 1-dimensional and discrete
	actionSpec := e.ActionSpec()
	if actionSpec.Shape.Len() != 1 {
		return nil, fmt.Errorf("new: QLearning can only be used with " +
			"1-dimensional actions")
	}
	if actionSpec.Cardinality != environment.Discrete {
		return nil, fmt.Errorf("new: QLearning can only be used with " +
			"discrete actions")
	}

	obsSpec := e.ObservationSpec()
	if obsSpec.Cardinality != environment.Discrete {
		return nil, fmt.Errorf("new: QLearning requires discrete one-hot " +
			"observations; wrap continuous environments in a Discretize " +
			"wrapper")
	}

	numActions := int(actionSpec.UpperBound.AtVec(0)) + 1
	numStates := obsSpec.Shape.Len()

	// The learner and both policies share this table
	table := mat.NewDense(numActions, numStates, nil)

	behaviour := policy.NewEGreedy(c.Epsilon, seed, table)
	target := policy.NewGreedy(table)
	learner := NewQLearner(table, c.LearningRate)

	return &QLearning{learner, behaviour, target, seed}, nil
}

// GreedyPolicy returns the greedy target policy over the agent's
// action value table, e.g. for evaluation runs
func (q *QLearning) GreedyPolicy() agent.Policy {
	return q.target
}

// tableData is the serialized form of an action value table
type tableData struct {
	Actions int
	States  int
	Data    []float64
}

// Save serializes the agent's action value table to the argument file
func (q *QLearning) Save(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("save: could not create file: %v", err)
	}
	defer file.Close()

	actions, states := q.table.Dims()
	data := tableData{
		Actions: actions,
		States:  states,
		Data:    q.table.RawMatrix().Data,
	}

	en := gob.NewEncoder(file)
	if err := en.Encode(data); err != nil {
		return fmt.Errorf("save: could not encode table: %v", err)
	}
	return nil
}

// Load deserializes an action value table from the argument file into
// the agent's table. The learner and both policies see the loaded
// values, since all three share the table.
func (q *QLearning) Load(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("load: could not open file: %v", err)
	}
	defer file.Close()

	var data tableData
	de := gob.NewDecoder(file)
	if err := de.Decode(&data); err != nil {
		return fmt.Errorf("load: could not decode table: %v", err)
	}

	actions, states := q.table.Dims()
	if data.Actions != actions || data.States != states {
		return fmt.Errorf("load: table shape (%d, %d) does not match "+
			"agent's table shape (%d, %d)", data.Actions, data.States,
			actions, states)
	}

	loaded := mat.NewDense(data.Actions, data.States, data.Data)
	q.table.Copy(loaded)
	return nil
}
