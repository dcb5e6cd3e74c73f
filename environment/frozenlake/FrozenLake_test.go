package frozenlake

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/gopherrl/tabular/timestep"
	"github.com/gopherrl/tabular/utils/matutils"
)

// newLake creates a FrozenLake on the argument map for testing,
// failing the test on error
func newLake(t *testing.T, lakeMap []string, slippery bool,
	cutoff int) (*FrozenLake, timestep.TimeStep) {
	t.Helper()

	task, err := NewReach(lakeMap, cutoff)
	require.NoError(t, err)

	lake, first, err := New(lakeMap, task, 0.99, slippery, 14)
	require.NoError(t, err)

	return lake, first
}

func action(a int) mat.Vector {
	return mat.NewVecDense(1, []float64{float64(a)})
}

func TestResetStartsOnStartTile(t *testing.T) {
	lake, first := newLake(t, FourByFour, false, 100)

	assert.True(t, first.First())
	assert.Equal(t, 0, matutils.OneHotIndex(first.Observation))
	assert.Equal(t, 16, first.Observation.Len())

	step := lake.Reset()
	assert.Equal(t, 0, matutils.OneHotIndex(step.Observation))
}

func TestDeterministicMoves(t *testing.T) {
	lake, _ := newLake(t, FourByFour, false, 100)

	step, last := lake.Step(action(ActionRight))
	assert.False(t, last)
	assert.Equal(t, 1, matutils.OneHotIndex(step.Observation))
	assert.Equal(t, 0.0, step.Reward)

	step, _ = lake.Step(action(ActionRight))
	assert.Equal(t, 2, matutils.OneHotIndex(step.Observation))

	step, _ = lake.Step(action(ActionDown))
	assert.Equal(t, 6, matutils.OneHotIndex(step.Observation))
}

func TestMovesOffTheGridKeepTheAgentInPlace(t *testing.T) {
	lake, _ := newLake(t, FourByFour, false, 100)

	step, last := lake.Step(action(ActionUp))
	assert.False(t, last)
	assert.Equal(t, 0, matutils.OneHotIndex(step.Observation))

	step, _ = lake.Step(action(ActionLeft))
	assert.Equal(t, 0, matutils.OneHotIndex(step.Observation))
}

func TestHoleEndsEpisodeWithNoReward(t *testing.T) {
	lake, _ := newLake(t, FourByFour, false, 100)

	// (1, 1) on the 4x4 map is a hole
	lake.Step(action(ActionRight))
	step, last := lake.Step(action(ActionDown))

	assert.True(t, last)
	assert.True(t, step.Last())
	assert.Equal(t, timestep.TerminalStateReached, step.End())
	assert.Equal(t, 0.0, step.Reward)
}

func TestGoalEndsEpisodeWithReward(t *testing.T) {
	lakeMap := []string{
		"SF",
		"FG",
	}
	lake, _ := newLake(t, lakeMap, false, 100)

	step, last := lake.Step(action(ActionRight))
	require.False(t, last)
	require.Equal(t, 0.0, step.Reward)

	step, last = lake.Step(action(ActionDown))
	assert.True(t, last)
	assert.Equal(t, timestep.TerminalStateReached, step.End())
	assert.Equal(t, 1.0, step.Reward)
	assert.True(t, lake.AtGoal(step.Observation))
}

func TestStepLimitCutsOffEpisodes(t *testing.T) {
	cutoff := 5
	lake, _ := newLake(t, FourByFour, false, cutoff)

	var step timestep.TimeStep
	var last bool
	for i := 0; i < cutoff; i++ {
		require.False(t, last)
		step, last = lake.Step(action(ActionUp))
	}

	assert.True(t, last)
	assert.Equal(t, timestep.Timeout, step.End())
	assert.Equal(t, cutoff, step.Number)
}

func TestSlipperyMovesPerpendicular(t *testing.T) {
	lake, _ := newLake(t, FourByFour, true, 100)

	// Moving down from the start tile can slip left (clamped back to
	// the start tile) or right; over many trials all three outcomes
	// should occur
	outcomes := make(map[int]bool)
	for i := 0; i < 300; i++ {
		lake.Reset()
		step, _ := lake.Step(action(ActionDown))
		outcomes[matutils.OneHotIndex(step.Observation)] = true
	}

	assert.True(t, outcomes[4], "never moved in the intended direction")
	assert.True(t, outcomes[0] || outcomes[1],
		"never slipped perpendicular to the intended direction")
}

func TestIllegalActionPanics(t *testing.T) {
	lake, _ := newLake(t, FourByFour, false, 100)

	assert.Panics(t, func() { lake.Step(action(4)) })
	assert.Panics(t, func() { lake.Step(action(-1)) })
}

func TestMapByName(t *testing.T) {
	lakeMap, err := MapByName("4x4")
	require.NoError(t, err)
	assert.Equal(t, FourByFour, lakeMap)

	lakeMap, err = MapByName("8x8")
	require.NoError(t, err)
	assert.Equal(t, EightByEight, lakeMap)

	_, err = MapByName("16x16")
	assert.Error(t, err)
}

func TestMapValidation(t *testing.T) {
	// Jagged map
	_, err := NewReach([]string{"SF", "FFG"}, 10)
	assert.Error(t, err)

	// No start tile
	_, err = NewReach([]string{"FF", "FG"}, 10)
	assert.Error(t, err)

	// No goal tile
	_, err = NewReach([]string{"SF", "FF"}, 10)
	assert.Error(t, err)

	// Illegal tile
	_, err = NewReach([]string{"SF", "XG"}, 10)
	assert.Error(t, err)
}
