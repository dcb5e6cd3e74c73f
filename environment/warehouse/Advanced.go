package warehouse

import (
	"fmt"

	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/mat"

	env "github.com/gopherrl/tabular/environment"
	ts "github.com/gopherrl/tabular/timestep"
)

// Rewards and penalties specific to the advanced environment
const (
	ObstaclePenalty float64 = -0.2
	BatteryPenalty  float64 = -1.0

	DefaultMaxBattery   int = 30
	DefaultNumObstacles int = 4
)

// cell is a grid coordinate
type cell struct {
	row, col int
}

// Advanced extends the basic Warehouse environment with obstacles and
// a battery constraint. On every Reset, numObstacles obstacles are
// placed at random cells, never on the robot's start or the target,
// and the battery is recharged to maxBattery.
//
// Observations gain a 5th feature, the remaining battery charge:
// [robotRow, robotCol, targetRow, targetCol, battery].
//
// Moving into an obstacle cancels the move and yields a reward of
// ObstaclePenalty. Every step drains one unit of battery; when the
// battery is empty the episode ends with a reward of BatteryPenalty.
// Reaching the target still yields +1 and ends the episode, even on
// the step that empties the battery.
//
// Advanced implements the environment.Environment interface.
type Advanced struct {
	*Warehouse
	maxBattery   int
	numObstacles int
	battery      int
	obstacles    map[cell]bool
	rng          *rand.Rand
}

// NewAdvanced creates a new Advanced warehouse environment with the
// argument grid dimensions, task, battery capacity, and obstacle count
func NewAdvanced(rows, cols int, t env.Task, discount float64, maxBattery,
	numObstacles int, seed uint64) (*Advanced, ts.TimeStep, error) {
	if maxBattery < 1 {
		return nil, ts.TimeStep{}, fmt.Errorf("newAdvanced: battery "+
			"capacity must be positive, got %d", maxBattery)
	}
	if numObstacles >= rows*cols-2 {
		return nil, ts.TimeStep{}, fmt.Errorf("newAdvanced: too many "+
			"obstacles (%d) for a %dx%d grid", numObstacles, rows, cols)
	}

	base, _, err := New(rows, cols, t, discount)
	if err != nil {
		return nil, ts.TimeStep{}, err
	}

	a := &Advanced{
		Warehouse:    base,
		maxBattery:   maxBattery,
		numObstacles: numObstacles,
		rng:          rand.New(rand.NewSource(seed)),
	}

	return a, a.Reset(), nil
}

// Battery returns the remaining battery charge
func (a *Advanced) Battery() int {
	return a.battery
}

// Obstacles returns the obstacle cells as (row, col) pairs
func (a *Advanced) Obstacles() [][2]int {
	out := make([][2]int, 0, len(a.obstacles))
	for c := range a.obstacles {
		out = append(out, [2]int{c.row, c.col})
	}
	return out
}

// Reset resets the environment, recharging the battery and placing a
// new set of random obstacles
func (a *Advanced) Reset() ts.TimeStep {
	a.Warehouse.Reset()
	a.battery = a.maxBattery
	a.placeObstacles()

	startStep := ts.New(ts.First, 0, a.discount, a.observation(), 0)
	a.currentStep = startStep
	return startStep
}

// Step takes one environmental step given action a with obstacle and
// battery constraints, returning the next timestep and a bool
// indicating whether or not the episode has ended
func (a *Advanced) Step(act mat.Vector) (ts.TimeStep, bool) {
	action := validateAction(act)

	oldRow, oldCol := a.robotRow, a.robotCol
	a.robotRow, a.robotCol = a.move(a.robotRow, a.robotCol, action)
	a.lastAction = action

	var reward float64
	terminal := false

	// Obstacle collision: cancel the move and apply the penalty
	if a.obstacles[cell{a.robotRow, a.robotCol}] {
		a.robotRow, a.robotCol = oldRow, oldCol
		reward = ObstaclePenalty
	}

	// Battery consumption
	a.battery--
	if a.battery <= 0 {
		reward = BatteryPenalty
		terminal = true
	}

	// Reaching the target always counts as a success, even on the
	// step that empties the battery
	atGoal := a.robotRow == a.targetRow && a.robotCol == a.targetCol
	if atGoal {
		reward = 1.0
		terminal = true
	}

	obs := a.observation()
	nextStep := ts.New(ts.Mid, reward, a.discount, obs,
		a.currentStep.Number+1)

	if terminal {
		// Both the target and an empty battery are terminal states
		nextStep.StepType = ts.Last
		nextStep.SetEnd(ts.TerminalStateReached)
	} else {
		a.End(&nextStep)
	}

	a.currentStep = nextStep
	return nextStep, nextStep.Last()
}

// ObservationSpec returns the observation specification of the
// environment
func (a *Advanced) ObservationSpec() env.Spec {
	shape := mat.NewVecDense(5, nil)
	lowerBound := mat.NewVecDense(5, nil)
	upperBound := mat.NewVecDense(5, []float64{
		float64(a.rows - 1), float64(a.cols - 1),
		float64(a.rows - 1), float64(a.cols - 1),
		float64(a.maxBattery),
	})

	return env.NewSpec(shape, env.Observation, lowerBound, upperBound,
		env.Discrete)
}

// String returns a string representation of the environment
func (a *Advanced) String() string {
	return fmt.Sprintf("%v  |  Battery: %d  |  Obstacles: %d",
		a.Warehouse, a.battery, len(a.obstacles))
}

// observation returns the current 5-dimensional observation vector
func (a *Advanced) observation() *mat.VecDense {
	return mat.NewVecDense(5, []float64{
		float64(a.robotRow), float64(a.robotCol),
		float64(a.targetRow), float64(a.targetCol),
		float64(a.battery),
	})
}

// placeObstacles randomly places obstacles on the grid, avoiding the
// robot's cell, the target cell, and cells already holding an obstacle
func (a *Advanced) placeObstacles() {
	a.obstacles = make(map[cell]bool, a.numObstacles)

	for len(a.obstacles) < a.numObstacles {
		c := cell{a.rng.Intn(a.rows), a.rng.Intn(a.cols)}

		if c.row == a.robotRow && c.col == a.robotCol {
			continue
		}
		if c.row == a.targetRow && c.col == a.targetCol {
			continue
		}
		if a.obstacles[c] {
			continue
		}

		a.obstacles[c] = true
	}
}
