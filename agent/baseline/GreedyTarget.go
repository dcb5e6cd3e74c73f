package baseline

import (
	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/gopherrl/tabular/environment/warehouse"
	"github.com/gopherrl/tabular/timestep"
)

// GreedyTarget implements a heuristic agent for the Warehouse
// environments. It assumes the first four observation features are
// [robotRow, robotCol, targetRow, targetCol] and always tries to move
// closer to the target: it aligns rows first (down if the robot is
// above the target, up if below), then columns (right if left of the
// target, left if right of it). When the robot is already on the
// target coordinates, a random action is selected. GreedyTarget knows
// nothing about obstacles, so on the Advanced environment it may walk
// into them repeatedly.
type GreedyTarget struct {
	rng *rand.Rand
}

// NewGreedyTarget creates a new GreedyTarget agent
func NewGreedyTarget(seed uint64) *GreedyTarget {
	return &GreedyTarget{rng: rand.New(rand.NewSource(seed))}
}

// SelectAction selects an action that greedily moves the robot closer
// to the target
func (g *GreedyTarget) SelectAction(t timestep.TimeStep) mat.Vector {
	obs := t.Observation
	robotRow, robotCol := obs.AtVec(0), obs.AtVec(1)
	targetRow, targetCol := obs.AtVec(2), obs.AtVec(3)

	var candidates []int

	// Vertical movement: align rows first
	if robotRow < targetRow {
		candidates = append(candidates, warehouse.ActionDown)
	} else if robotRow > targetRow {
		candidates = append(candidates, warehouse.ActionUp)
	}

	// Horizontal movement: align columns once on the same row
	if robotRow == targetRow {
		if robotCol < targetCol {
			candidates = append(candidates, warehouse.ActionRight)
		} else if robotCol > targetCol {
			candidates = append(candidates, warehouse.ActionLeft)
		}
	}

	// No clear greedy action exists: fall back to a random action
	if len(candidates) == 0 {
		action := g.rng.Intn(warehouse.NumActions)
		return mat.NewVecDense(1, []float64{float64(action)})
	}

	action := candidates[g.rng.Intn(len(candidates))]
	return mat.NewVecDense(1, []float64{float64(action)})
}

// Step is a no-op: GreedyTarget does not learn
func (g *GreedyTarget) Step() {}

// Observe is a no-op: GreedyTarget does not learn
func (g *GreedyTarget) Observe(action mat.Vector, nextObs timestep.TimeStep) {}

// ObserveFirst is a no-op: GreedyTarget does not learn
func (g *GreedyTarget) ObserveFirst(t timestep.TimeStep) {}

// EndEpisode is a no-op: GreedyTarget does not learn
func (g *GreedyTarget) EndEpisode() {}
