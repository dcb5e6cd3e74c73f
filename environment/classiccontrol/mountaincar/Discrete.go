package mountaincar

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	env "github.com/gopherrl/tabular/environment"
	ts "github.com/gopherrl/tabular/timestep"
)

// Discrete implements the classic control Mountain Car environment
// with discrete actions. In this environment, the agent controls a car
// in a valley between two hills. The car is underpowered and cannot
// drive up the hill unless it rocks back and forth from hill to hill,
// using its momentum to gradually climb higher.
//
// State features consist of the x position of the car and its
// velocity, bounded by the MinPosition, MaxPosition, and MaxSpeed
// constants defined in this package. The sign of the velocity feature
// denotes direction, with negative meaning that the car is travelling
// left. Upon reaching the minimum position, the velocity of the car is
// set to 0.
//
// Actions are 1-dimensional and discrete in {0, 1, 2}:
//
//	Action	Meaning
//	  0		Accelerate left
//	  1		Do nothing
//	  2		Accelerate right
//
// Actions other than 0, 1, or 2 result in a panic.
//
// Discrete implements the environment.Environment interface.
type Discrete struct {
	*base
}

// NewDiscrete creates a new discrete action Mountain Car environment
// with the argument task
func NewDiscrete(t env.Task, discount float64) (*Discrete, ts.TimeStep) {
	baseEnv, firstStep := newBase(t, discount)
	return &Discrete{baseEnv}, firstStep
}

// ActionSpec returns the action specification of the environment
func (m *Discrete) ActionSpec() env.Spec {
	shape := mat.NewVecDense(ActionDims, nil)
	lowerBound := mat.NewVecDense(ActionDims,
		[]float64{float64(MinDiscreteAction)})
	upperBound := mat.NewVecDense(ActionDims,
		[]float64{float64(MaxDiscreteAction)})

	return env.NewSpec(shape, env.Action, lowerBound, upperBound,
		env.Discrete)
}

// Step takes one environmental step given action a and returns the
// next timestep and a bool indicating whether or not the episode has
// ended. Legal actions are in the set {0, 1, 2}. Actions outside this
// range will cause the environment to panic.
func (m *Discrete) Step(a mat.Vector) (ts.TimeStep, bool) {
	if a.Len() > ActionDims {
		panic("actions should be 1-dimensional")
	}

	action := a.AtVec(0)

	intAction := int(action)
	if intAction > MaxDiscreteAction || intAction < MinDiscreteAction {
		panic(fmt.Sprintf("illegal action %v ∉ {0, 1, 2}", intAction))
	}

	// Actions {0, 1, 2} map to forces {-1, 0, 1}
	force := action - 1.0

	newState := m.nextState(force)

	return m.update(a, newState)
}
