// Package environment outlines the interfaces and structs needed to
// implement concrete environments
package environment

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/gopherrl/tabular/timestep"
)

// Starter implements a distribution of starting states and samples
// starting states for environments
type Starter interface {
	Start() mat.Vector
}

// Ender determines when and why episodes end. If an episode should
// end, an Ender modifies the timestep so that its StepType field is
// timestep.Last and sets the appropriate EndType.
type Ender interface {
	End(*timestep.TimeStep) bool
}

// Task implements the reward scheme for taking actions in some
// environment. A Task also determines the starting states of an
// environment and when episodes end.
type Task interface {
	Starter
	Ender

	// GetReward returns the reward for taking an action in some state,
	// resulting in some next state
	GetReward(state, action, nextState mat.Vector) float64

	// AtGoal returns whether the argument state is a goal state
	AtGoal(state mat.Matrix) bool

	// Min and Max return the minimum and maximum attainable rewards
	Min() float64
	Max() float64

	RewardSpec() Spec
}

// Environment implements a simulated environment, which includes a
// Task to complete
type Environment interface {
	Task
	fmt.Stringer

	// Reset resets the environment between episodes, returning the
	// first timestep of the new episode
	Reset() timestep.TimeStep

	// Step takes one environmental step given an action, returning the
	// next timestep and whether it is the last in the episode
	Step(action mat.Vector) (timestep.TimeStep, bool)

	DiscountSpec() Spec
	ObservationSpec() Spec
	ActionSpec() Spec
}
