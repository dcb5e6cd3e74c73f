// Package baseline implements simple non-learning agents.
//
// Baseline agents implement the full agent.Agent interface so that
// they can be swapped for learning agents anywhere an Agent is
// expected, but their Learner methods are no-ops.
package baseline

import (
	"fmt"

	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/gopherrl/tabular/environment"
	"github.com/gopherrl/tabular/timestep"
)

// Random implements an agent that selects actions uniformly at random
// from a discrete action range, ignoring the observation
type Random struct {
	numActions int
	rng        *rand.Rand
}

// NewRandom creates a new Random agent for the argument environment,
// which must have 1-dimensional discrete actions
func NewRandom(e environment.Environment, seed uint64) (*Random, error) {
	actionSpec := e.ActionSpec()
	if actionSpec.Shape.Len() != 1 {
		return nil, fmt.Errorf("newRandom: Random can only be used with " +
			"1-dimensional actions")
	}
	if actionSpec.Cardinality != environment.Discrete {
		return nil, fmt.Errorf("newRandom: Random can only be used with " +
			"discrete actions")
	}

	numActions := int(actionSpec.UpperBound.AtVec(0)) + 1

	return &Random{
		numActions: numActions,
		rng:        rand.New(rand.NewSource(seed)),
	}, nil
}

// SelectAction selects a random action, ignoring the observation
func (r *Random) SelectAction(t timestep.TimeStep) mat.Vector {
	action := r.rng.Intn(r.numActions)
	return mat.NewVecDense(1, []float64{float64(action)})
}

// Step is a no-op: Random does not learn
func (r *Random) Step() {}

// Observe is a no-op: Random does not learn
func (r *Random) Observe(action mat.Vector, nextObs timestep.TimeStep) {}

// ObserveFirst is a no-op: Random does not learn
func (r *Random) ObserveFirst(t timestep.TimeStep) {}

// EndEpisode is a no-op: Random does not learn
func (r *Random) EndEpisode() {}
