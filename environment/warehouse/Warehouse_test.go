package warehouse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/gopherrl/tabular/timestep"
)

func action(a int) mat.Vector {
	return mat.NewVecDense(1, []float64{float64(a)})
}

// robotAt returns the robot's cell in an observation
func robotAt(obs mat.Vector) (int, int) {
	return int(obs.AtVec(0)), int(obs.AtVec(1))
}

// targetAt returns the target's cell in an observation
func targetAt(obs mat.Vector) (int, int) {
	return int(obs.AtVec(2)), int(obs.AtVec(3))
}

func TestResetPlacesRobotAtDepot(t *testing.T) {
	task := NewDeliver(4, 5, 200, 42)
	w, first, err := New(4, 5, task, 1.0)
	require.NoError(t, err)

	for i := 0; i < 50; i++ {
		row, col := robotAt(first.Observation)
		assert.Equal(t, 0, row)
		assert.Equal(t, 0, col)

		// The target never spawns on the robot's start row or column
		targetRow, targetCol := targetAt(first.Observation)
		assert.GreaterOrEqual(t, targetRow, 1)
		assert.LessOrEqual(t, targetRow, 3)
		assert.GreaterOrEqual(t, targetCol, 1)
		assert.LessOrEqual(t, targetCol, 4)

		first = w.Reset()
	}
}

func TestMovesOffTheGridKeepTheRobotInPlace(t *testing.T) {
	task := NewDeliver(4, 5, 200, 42)
	w, _, err := New(4, 5, task, 1.0)
	require.NoError(t, err)

	step, last := w.Step(action(ActionUp))
	require.False(t, last)
	row, col := robotAt(step.Observation)
	assert.Equal(t, 0, row)
	assert.Equal(t, 0, col)

	step, _ = w.Step(action(ActionLeft))
	row, col = robotAt(step.Observation)
	assert.Equal(t, 0, row)
	assert.Equal(t, 0, col)
}

func TestDeliveryRewardsAndTermination(t *testing.T) {
	task := NewDeliver(4, 5, 200, 42)
	w, first, err := New(4, 5, task, 1.0)
	require.NoError(t, err)

	targetRow, targetCol := targetAt(first.Observation)

	// Walk straight to the target: down until the rows align, then
	// right until the columns do
	var step timestep.TimeStep
	var last bool
	for i := 0; i < targetRow; i++ {
		step, last = w.Step(action(ActionDown))
		assert.Equal(t, 0.0, step.Reward)
		require.False(t, last)
	}
	for i := 0; i < targetCol; i++ {
		step, last = w.Step(action(ActionRight))
	}

	assert.True(t, last)
	assert.True(t, step.Last())
	assert.Equal(t, timestep.TerminalStateReached, step.End())
	assert.Equal(t, 1.0, step.Reward)
	assert.Equal(t, targetRow+targetCol, step.Number)
	assert.True(t, w.AtGoal(step.Observation))
}

func TestStepLimitCutsOffEpisodes(t *testing.T) {
	cutoff := 10
	task := NewDeliver(4, 5, cutoff, 42)
	w, _, err := New(4, 5, task, 1.0)
	require.NoError(t, err)

	var step timestep.TimeStep
	var last bool
	for i := 0; i < cutoff; i++ {
		require.False(t, last)
		// Bouncing off the top wall never reaches the target
		step, last = w.Step(action(ActionUp))
	}

	assert.True(t, last)
	assert.Equal(t, timestep.Timeout, step.End())
}

func TestGridValidation(t *testing.T) {
	task := NewDeliver(4, 5, 200, 42)

	_, _, err := New(1, 5, task, 1.0)
	assert.Error(t, err)

	_, _, err = New(4, 1, task, 1.0)
	assert.Error(t, err)
}

func TestIllegalActionPanics(t *testing.T) {
	task := NewDeliver(4, 5, 200, 42)
	w, _, err := New(4, 5, task, 1.0)
	require.NoError(t, err)

	assert.Panics(t, func() { w.Step(action(4)) })
	assert.Panics(t, func() { w.Step(action(-1)) })
}
