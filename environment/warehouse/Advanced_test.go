package warehouse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gopherrl/tabular/timestep"
)

func TestAdvancedObservationIncludesBattery(t *testing.T) {
	task := NewDeliver(4, 5, 200, 42)
	a, first, err := NewAdvanced(4, 5, task, 1.0, 30, 4, 42)
	require.NoError(t, err)

	assert.Equal(t, 5, first.Observation.Len())
	assert.Equal(t, 30.0, first.Observation.AtVec(4))
	assert.Equal(t, 30, a.Battery())
	assert.Len(t, a.Obstacles(), 4)
}

func TestAdvancedObstaclesAvoidRobotAndTarget(t *testing.T) {
	task := NewDeliver(4, 5, 200, 42)
	a, _, err := NewAdvanced(4, 5, task, 1.0, 30, 10, 42)
	require.NoError(t, err)

	for i := 0; i < 50; i++ {
		first := a.Reset()
		targetRow, targetCol := targetAt(first.Observation)

		for _, c := range a.Obstacles() {
			assert.NotEqual(t, [2]int{0, 0}, c)
			assert.NotEqual(t, [2]int{targetRow, targetCol}, c)
		}
	}
}

func TestAdvancedObstacleCollision(t *testing.T) {
	// On a 2x2 grid the target is always (1, 1), so the single
	// obstacle lands on (0, 1) or (1, 0)
	task := NewDeliver(2, 2, 200, 42)
	a, _, err := NewAdvanced(2, 2, task, 1.0, 30, 1, 42)
	require.NoError(t, err)

	obstacles := a.Obstacles()
	require.Len(t, obstacles, 1)

	blocked := ActionRight
	if obstacles[0] == [2]int{1, 0} {
		blocked = ActionDown
	}

	step, last := a.Step(action(blocked))

	assert.False(t, last)
	assert.Equal(t, ObstaclePenalty, step.Reward)

	// The move was cancelled
	row, col := robotAt(step.Observation)
	assert.Equal(t, 0, row)
	assert.Equal(t, 0, col)
}

func TestAdvancedBatteryDepletionEndsEpisode(t *testing.T) {
	task := NewDeliver(4, 5, 200, 42)
	a, _, err := NewAdvanced(4, 5, task, 1.0, 1, 0, 42)
	require.NoError(t, err)

	// Bouncing off the top wall does not reach the target, so the
	// single unit of battery runs out immediately
	step, last := a.Step(action(ActionUp))

	assert.True(t, last)
	assert.True(t, step.Last())
	assert.Equal(t, timestep.TerminalStateReached, step.End())
	assert.Equal(t, BatteryPenalty, step.Reward)
	assert.Equal(t, 0, a.Battery())
	assert.Equal(t, 0.0, step.Observation.AtVec(4))
}

func TestAdvancedReachingTargetOverridesEmptyBattery(t *testing.T) {
	// On a 2x2 grid the target is always (1, 1): down then right
	// reaches it on the exact step the battery empties
	task := NewDeliver(2, 2, 200, 42)
	a, _, err := NewAdvanced(2, 2, task, 1.0, 2, 0, 42)
	require.NoError(t, err)

	step, last := a.Step(action(ActionDown))
	require.False(t, last)
	require.Equal(t, 0.0, step.Reward)

	step, last = a.Step(action(ActionRight))
	assert.True(t, last)
	assert.Equal(t, timestep.TerminalStateReached, step.End())
	assert.Equal(t, 1.0, step.Reward)
	assert.Equal(t, 0, a.Battery())
}

func TestAdvancedResetRechargesAndReplacesObstacles(t *testing.T) {
	task := NewDeliver(4, 5, 200, 42)
	a, _, err := NewAdvanced(4, 5, task, 1.0, 10, 3, 42)
	require.NoError(t, err)

	a.Step(action(ActionDown))
	a.Step(action(ActionDown))
	require.Equal(t, 8, a.Battery())

	first := a.Reset()
	assert.Equal(t, 10, a.Battery())
	assert.Equal(t, 10.0, first.Observation.AtVec(4))
	assert.Len(t, a.Obstacles(), 3)
}

func TestAdvancedValidation(t *testing.T) {
	task := NewDeliver(4, 5, 200, 42)

	// Battery capacity must be positive
	_, _, err := NewAdvanced(4, 5, task, 1.0, 0, 4, 42)
	assert.Error(t, err)

	// Too many obstacles for the grid
	_, _, err = NewAdvanced(4, 5, task, 1.0, 30, 18, 42)
	assert.Error(t, err)
}
