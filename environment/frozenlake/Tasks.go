package frozenlake

import (
	"gonum.org/v1/gonum/mat"

	env "github.com/gopherrl/tabular/environment"
	"github.com/gopherrl/tabular/timestep"
	"github.com/gopherrl/tabular/utils/matutils"
)

// Reach implements the task of crossing the lake from the start tile
// to a goal tile.
//
// Rewards are +1 for the action which transitions the agent onto a
// goal tile and 0 otherwise. Episodes end when the agent falls into a
// hole, reaches a goal, or after a step limit.
type Reach struct {
	env.Starter
	lakeMap   []string
	stepEnder env.Ender
}

// NewReach creates and returns a new Reach task on the argument lake
// map with the argument step limit. Episodes always start on the
// map's start tile.
func NewReach(lakeMap []string, episodeSteps int) (*Reach, error) {
	if err := validateMap(lakeMap); err != nil {
		return nil, err
	}

	cells := len(lakeMap) * len(lakeMap[0])
	start := mat.NewVecDense(cells, nil)
	start.SetVec(startIndex(lakeMap), 1.0)

	return &Reach{
		Starter:   env.NewSingleStarter(start),
		lakeMap:   lakeMap,
		stepEnder: env.NewStepLimit(episodeSteps),
	}, nil
}

// AtGoal returns whether the argument state is a goal state
func (r *Reach) AtGoal(state mat.Matrix) bool {
	obs, ok := state.(mat.Vector)
	if !ok {
		return false
	}
	return tileAt(r.lakeMap, matutils.OneHotIndex(obs)) == TileGoal
}

// GetReward returns the reward for a given state and action, resulting
// in a given next state: +1 for transitions onto a goal tile and 0
// otherwise. Falling into a hole yields no reward.
func (r *Reach) GetReward(state, action, nextState mat.Vector) float64 {
	if tileAt(r.lakeMap, matutils.OneHotIndex(nextState)) == TileGoal {
		return 1.0
	}
	return 0.0
}

// Min returns the minimum attainable reward over all timesteps
func (r *Reach) Min() float64 { return 0.0 }

// Max returns the maximum attainable reward over all timesteps
func (r *Reach) Max() float64 { return 1.0 }

// RewardSpec returns the reward specification of the task
func (r *Reach) RewardSpec() env.Spec {
	shape := mat.NewVecDense(1, nil)
	lowerBound := mat.NewVecDense(1, []float64{r.Min()})
	upperBound := mat.NewVecDense(1, []float64{r.Max()})

	return env.NewSpec(shape, env.Reward, lowerBound, upperBound,
		env.Discrete)
}

// End determines if a timestep is the last in the episode: holes and
// goal tiles are terminal states, and episodes are cut off at the step
// limit. If the episode has ended, the TimeStep's StepType is changed
// to timestep.Last and its EndType is set appropriately.
func (r *Reach) End(t *timestep.TimeStep) bool {
	tile := tileAt(r.lakeMap, matutils.OneHotIndex(t.Observation))
	if tile == TileGoal || tile == TileHole {
		t.StepType = timestep.Last
		t.SetEnd(timestep.TerminalStateReached)
		return true
	}

	return r.stepEnder.End(t)
}
