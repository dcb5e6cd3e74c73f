package warehouse

import (
	"gonum.org/v1/gonum/mat"

	env "github.com/gopherrl/tabular/environment"
	"github.com/gopherrl/tabular/timestep"
)

// Deliver implements the task of reaching the target package. Rewards
// are +1 for the action which moves the robot onto the target cell and
// 0 otherwise. Episodes end at the target or after a step limit.
//
// The task's Starter places the robot at (0, 0) and the target
// uniformly at random in rows [1, rows-1] and columns [1, cols-1], so
// the target never spawns on the robot's starting cell.
type Deliver struct {
	env.Starter
	stepEnder env.Ender
}

// NewDeliver creates and returns a new Deliver task on a rows x cols
// grid with the argument step limit
func NewDeliver(rows, cols, episodeSteps int, seed uint64) *Deliver {
	return &Deliver{
		Starter:   newTargetStarter(rows, cols, seed),
		stepEnder: env.NewStepLimit(episodeSteps),
	}
}

// AtGoal returns whether the robot is on the target cell in the
// argument state
func (d *Deliver) AtGoal(state mat.Matrix) bool {
	obs, ok := state.(mat.Vector)
	if !ok {
		return false
	}
	return atTarget(obs)
}

// GetReward returns the reward for a given state and action, resulting
// in a given next state: +1 when the robot reaches the target and 0
// otherwise
func (d *Deliver) GetReward(state, action, nextState mat.Vector) float64 {
	if atTarget(nextState) {
		return 1.0
	}
	return 0.0
}

// Min returns the minimum attainable reward over all timesteps
func (d *Deliver) Min() float64 { return 0.0 }

// Max returns the maximum attainable reward over all timesteps
func (d *Deliver) Max() float64 { return 1.0 }

// RewardSpec returns the reward specification of the task
func (d *Deliver) RewardSpec() env.Spec {
	shape := mat.NewVecDense(1, nil)
	lowerBound := mat.NewVecDense(1, []float64{d.Min()})
	upperBound := mat.NewVecDense(1, []float64{d.Max()})

	return env.NewSpec(shape, env.Reward, lowerBound, upperBound,
		env.Discrete)
}

// End determines if a timestep is the last in the episode: the target
// cell is terminal, and episodes are cut off at the step limit
func (d *Deliver) End(t *timestep.TimeStep) bool {
	if atTarget(t.Observation) {
		t.StepType = timestep.Last
		t.SetEnd(timestep.TerminalStateReached)
		return true
	}

	return d.stepEnder.End(t)
}

// atTarget returns whether the robot and target positions coincide in
// an observation vector
func atTarget(obs mat.Vector) bool {
	return obs.AtVec(0) == obs.AtVec(2) && obs.AtVec(1) == obs.AtVec(3)
}

// targetStarter starts episodes with the robot at (0, 0) and the
// target drawn uniformly at random from rows [1, rows-1] x columns
// [1, cols-1]
type targetStarter struct {
	target env.CategoricalStarter
}

func newTargetStarter(rows, cols int, seed uint64) targetStarter {
	return targetStarter{
		target: env.NewCategoricalStarter([]int{rows - 1, cols - 1}, seed),
	}
}

// Start returns a starting observation [0, 0, targetRow, targetCol]
func (t targetStarter) Start() mat.Vector {
	target := t.target.Start()

	// The categorical starter samples in [0, rows-2] x [0, cols-2];
	// shifting by 1 keeps the target off the robot's start row/column
	return mat.NewVecDense(4, []float64{
		0, 0,
		target.AtVec(0) + 1,
		target.AtVec(1) + 1,
	})
}
