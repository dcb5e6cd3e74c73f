// Package frozenlake implements the discrete "FrozenLake" environment.
//
// The agent walks across a frozen lake from a start tile to a goal
// tile. Some tiles are holes in the ice: walking into a hole ends the
// episode with no reward. When the lake is slippery, the agent's moves
// only sometimes go in the intended direction.
package frozenlake

import (
	"fmt"

	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/mat"

	env "github.com/gopherrl/tabular/environment"
	ts "github.com/gopherrl/tabular/timestep"
	"github.com/gopherrl/tabular/utils/matutils"
)

const (
	ActionLeft int = iota
	ActionDown
	ActionRight
	ActionUp

	ActionDims int = 1
	NumActions int = 4
)

// FrozenLake implements the FrozenLake environment on a rectangular
// lake map. Observations are one-hot vectors of length rows*cols with
// the non-zero element marking the agent's tile. Actions are
// 1-dimensional and discrete in {0, 1, 2, 3} = {left, down, right,
// up}. Moves that would leave the grid keep the agent in place.
//
// When the lake is slippery, the executed move is the intended
// direction or either perpendicular direction, each with probability
// 1/3.
//
// FrozenLake implements the environment.Environment interface.
type FrozenLake struct {
	env.Task
	lakeMap     []string
	rows, cols  int
	position    int
	slippery    bool
	rng         *rand.Rand
	discount    float64
	currentStep ts.TimeStep
}

// New creates a new FrozenLake environment on the argument lake map
// with the argument task. The seed is used only when slippery is true.
func New(lakeMap []string, t env.Task, discount float64, slippery bool,
	seed uint64) (*FrozenLake, ts.TimeStep, error) {
	if err := validateMap(lakeMap); err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("new: %v", err)
	}

	lake := &FrozenLake{
		Task:     t,
		lakeMap:  lakeMap,
		rows:     len(lakeMap),
		cols:     len(lakeMap[0]),
		slippery: slippery,
		rng:      rand.New(rand.NewSource(seed)),
		discount: discount,
	}

	return lake, lake.Reset(), nil
}

// Dims returns the rows and columns of the lake map
func (f *FrozenLake) Dims() (rows, cols int) {
	return f.rows, f.cols
}

// Reset resets the environment and returns the first timestep of the
// new episode
func (f *FrozenLake) Reset() ts.TimeStep {
	start := f.Start()
	f.position = matutils.OneHotIndex(start)

	startStep := ts.New(ts.First, 0, f.discount, start, 0)
	f.currentStep = startStep
	return startStep
}

// Step takes one environmental step given action a and returns the
// next timestep and a bool indicating whether or not the episode has
// ended. Legal actions are in the set {0, 1, 2, 3}. Actions outside
// this range will cause the environment to panic.
func (f *FrozenLake) Step(a mat.Vector) (ts.TimeStep, bool) {
	if a.Len() > ActionDims {
		panic("actions should be 1-dimensional")
	}

	action := int(a.AtVec(0))
	if action < ActionLeft || action > ActionUp {
		panic(fmt.Sprintf("illegal action %v ∉ {0, 1, 2, 3}", action))
	}

	// On a slippery lake the executed move is the intended direction
	// or either perpendicular direction, each with probability 1/3
	if f.slippery {
		switch f.rng.Intn(3) {
		case 0:
			action = (action + 3) % NumActions
		case 1: // Intended direction
		case 2:
			action = (action + 1) % NumActions
		}
	}

	f.position = f.nextPosition(f.position, action)
	obs := f.observation()

	reward := f.GetReward(f.currentStep.Observation, a, obs)
	nextStep := ts.New(ts.Mid, reward, f.discount, obs,
		f.currentStep.Number+1)

	f.End(&nextStep)

	f.currentStep = nextStep
	return nextStep, nextStep.Last()
}

// ObservationSpec returns the observation specification of the
// environment
func (f *FrozenLake) ObservationSpec() env.Spec {
	length := f.rows * f.cols
	shape := mat.NewVecDense(length, nil)
	lowerBound := mat.NewVecDense(length, nil)
	upperBound := matutils.VecOnes(length)

	return env.NewSpec(shape, env.Observation, lowerBound, upperBound,
		env.Discrete)
}

// ActionSpec returns the action specification of the environment
func (f *FrozenLake) ActionSpec() env.Spec {
	shape := mat.NewVecDense(ActionDims, nil)
	lowerBound := mat.NewVecDense(ActionDims, []float64{float64(ActionLeft)})
	upperBound := mat.NewVecDense(ActionDims, []float64{float64(ActionUp)})

	return env.NewSpec(shape, env.Action, lowerBound, upperBound,
		env.Discrete)
}

// DiscountSpec returns the discounting specification of the environment
func (f *FrozenLake) DiscountSpec() env.Spec {
	shape := mat.NewVecDense(1, nil)
	bound := mat.NewVecDense(1, []float64{f.discount})

	return env.NewSpec(shape, env.Discount, bound, bound, env.Continuous)
}

// String returns a string representation of the environment
func (f *FrozenLake) String() string {
	row, col := f.position/f.cols, f.position%f.cols
	return fmt.Sprintf("FrozenLake | At: (%d, %d)  |  Bounds: (%d, %d)",
		row, col, f.rows, f.cols)
}

// nextPosition returns the flattened position reached by taking the
// argument action from the argument flattened position. Moves that
// would leave the grid return the current position.
func (f *FrozenLake) nextPosition(position, action int) int {
	row, col := position/f.cols, position%f.cols

	switch action {
	case ActionLeft:
		if col > 0 {
			col--
		}
	case ActionDown:
		if row < f.rows-1 {
			row++
		}
	case ActionRight:
		if col < f.cols-1 {
			col++
		}
	case ActionUp:
		if row > 0 {
			row--
		}
	}

	return row*f.cols + col
}

// observation returns the one-hot observation of the current position
func (f *FrozenLake) observation() *mat.VecDense {
	obs := mat.NewVecDense(f.rows*f.cols, nil)
	obs.SetVec(f.position, 1.0)
	return obs
}
