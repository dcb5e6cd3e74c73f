// Package warehouse implements a custom "Warehouse Robot" environment.
//
// A robot works in a warehouse divided into a rectangular grid. On
// every episode a target package is placed at a random grid cell, and
// the robot's goal is to reach it. The basic Warehouse environment
// rewards the robot only for reaching the target. The Advanced
// environment adds obstacles and a battery constraint on top of the
// basic environment by struct embedding.
package warehouse

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	env "github.com/gopherrl/tabular/environment"
	ts "github.com/gopherrl/tabular/timestep"
)

// Actions the robot is capable of performing (move in a direction)
const (
	ActionLeft int = iota
	ActionDown
	ActionRight
	ActionUp

	ActionDims int = 1
	NumActions int = 4
)

// Commonly used grid dimensions
const (
	DefaultRows int = 4
	DefaultCols int = 5
)

// actionNames maps actions to human-readable names for rendering
var actionNames = [NumActions]string{"LEFT", "DOWN", "RIGHT", "UP"}

// Warehouse implements the basic warehouse robot environment. The
// robot starts each episode at cell (0, 0) and must reach a randomly
// placed target. Observations are 4-dimensional vectors
// [robotRow, robotCol, targetRow, targetCol]. Actions are
// 1-dimensional and discrete in {0, 1, 2, 3} = {left, down, right,
// up}. Moves that would leave the grid keep the robot in place.
//
// Warehouse implements the environment.Environment interface.
type Warehouse struct {
	env.Task
	rows, cols           int
	robotRow, robotCol   int
	targetRow, targetCol int
	lastAction           int
	discount             float64
	currentStep          ts.TimeStep
}

// New creates a new Warehouse environment with the argument grid
// dimensions and task
func New(rows, cols int, t env.Task, discount float64) (*Warehouse,
	ts.TimeStep, error) {
	if rows < 2 || cols < 2 {
		return nil, ts.TimeStep{}, fmt.Errorf("new: grid must be at least "+
			"2x2, got %dx%d", rows, cols)
	}

	w := &Warehouse{
		Task:       t,
		rows:       rows,
		cols:       cols,
		lastAction: -1,
		discount:   discount,
	}

	return w, w.Reset(), nil
}

// Dims returns the rows and columns of the warehouse grid
func (w *Warehouse) Dims() (rows, cols int) {
	return w.rows, w.cols
}

// Reset resets the environment, placing the robot back at (0, 0) and
// drawing a new target position from the Task's Starter
func (w *Warehouse) Reset() ts.TimeStep {
	start := w.Start()
	w.setState(start)
	w.lastAction = -1

	startStep := ts.New(ts.First, 0, w.discount, start, 0)
	w.currentStep = startStep
	return startStep
}

// Step takes one environmental step given action a and returns the
// next timestep and a bool indicating whether or not the episode has
// ended. Legal actions are in the set {0, 1, 2, 3}. Actions outside
// this range will cause the environment to panic.
func (w *Warehouse) Step(a mat.Vector) (ts.TimeStep, bool) {
	action := validateAction(a)

	w.robotRow, w.robotCol = w.move(w.robotRow, w.robotCol, action)
	w.lastAction = action
	obs := w.observation()

	reward := w.GetReward(w.currentStep.Observation, a, obs)
	nextStep := ts.New(ts.Mid, reward, w.discount, obs,
		w.currentStep.Number+1)

	w.End(&nextStep)

	w.currentStep = nextStep
	return nextStep, nextStep.Last()
}

// ObservationSpec returns the observation specification of the
// environment
func (w *Warehouse) ObservationSpec() env.Spec {
	shape := mat.NewVecDense(4, nil)
	lowerBound := mat.NewVecDense(4, nil)
	upperBound := mat.NewVecDense(4, []float64{
		float64(w.rows - 1), float64(w.cols - 1),
		float64(w.rows - 1), float64(w.cols - 1),
	})

	return env.NewSpec(shape, env.Observation, lowerBound, upperBound,
		env.Discrete)
}

// ActionSpec returns the action specification of the environment
func (w *Warehouse) ActionSpec() env.Spec {
	shape := mat.NewVecDense(ActionDims, nil)
	lowerBound := mat.NewVecDense(ActionDims, []float64{float64(ActionLeft)})
	upperBound := mat.NewVecDense(ActionDims, []float64{float64(ActionUp)})

	return env.NewSpec(shape, env.Action, lowerBound, upperBound,
		env.Discrete)
}

// DiscountSpec returns the discounting specification of the environment
func (w *Warehouse) DiscountSpec() env.Spec {
	shape := mat.NewVecDense(1, nil)
	bound := mat.NewVecDense(1, []float64{w.discount})

	return env.NewSpec(shape, env.Discount, bound, bound, env.Continuous)
}

// String returns a string representation of the environment
func (w *Warehouse) String() string {
	return fmt.Sprintf("Warehouse | Robot: (%d, %d)  |  Target: (%d, %d)"+
		"  |  Bounds: (%d, %d)", w.robotRow, w.robotCol, w.targetRow,
		w.targetCol, w.rows, w.cols)
}

// move returns the cell reached by taking the argument action from the
// argument cell. Moves that would leave the grid return the current
// cell.
func (w *Warehouse) move(row, col, action int) (int, int) {
	switch action {
	case ActionLeft:
		if col > 0 {
			col--
		}
	case ActionDown:
		if row < w.rows-1 {
			row++
		}
	case ActionRight:
		if col < w.cols-1 {
			col++
		}
	case ActionUp:
		if row > 0 {
			row--
		}
	}
	return row, col
}

// observation returns the current 4-dimensional observation vector
func (w *Warehouse) observation() *mat.VecDense {
	return mat.NewVecDense(4, []float64{
		float64(w.robotRow), float64(w.robotCol),
		float64(w.targetRow), float64(w.targetCol),
	})
}

// setState sets the robot and target positions from an observation
func (w *Warehouse) setState(obs mat.Vector) {
	w.robotRow = int(obs.AtVec(0))
	w.robotCol = int(obs.AtVec(1))
	w.targetRow = int(obs.AtVec(2))
	w.targetCol = int(obs.AtVec(3))
}

// validateAction panics on malformed or illegal actions, returning the
// action as an int otherwise
func validateAction(a mat.Vector) int {
	if a.Len() > ActionDims {
		panic("actions should be 1-dimensional")
	}

	action := int(a.AtVec(0))
	if action < ActionLeft || action > ActionUp {
		panic(fmt.Sprintf("illegal action %v ∉ {0, 1, 2, 3}", action))
	}
	return action
}
