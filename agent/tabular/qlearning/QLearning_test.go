package qlearning

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/gopherrl/tabular/environment/frozenlake"
	"github.com/gopherrl/tabular/timestep"
)

// A 2x2 lake with no holes: states are indexed 0..3 with the goal at 3
var tinyLake = []string{
	"SF",
	"FG",
}

// newTinyLake creates a deterministic FrozenLake for testing,
// failing the test on error
func newTinyLake(t *testing.T) (*frozenlake.FrozenLake, timestep.TimeStep) {
	t.Helper()

	task, err := frozenlake.NewReach(tinyLake, 10)
	require.NoError(t, err)

	lake, first, err := frozenlake.New(tinyLake, task, 0.9, false, 14)
	require.NoError(t, err)

	return lake, first
}

func action(a int) mat.Vector {
	return mat.NewVecDense(1, []float64{float64(a)})
}

// oneHot returns a one-hot vector of the argument length with element
// i set
func oneHot(length, i int) mat.Vector {
	v := mat.NewVecDense(length, nil)
	v.SetVec(i, 1.0)
	return v
}

func TestNewSizesTheTableFromTheEnvironment(t *testing.T) {
	lake, _ := newTinyLake(t)

	q, err := New(lake, Config{Epsilon: 0.1, LearningRate: 0.5}, 14)
	require.NoError(t, err)

	table := q.Weights()["weights"]
	actions, states := table.Dims()
	assert.Equal(t, 4, actions)
	assert.Equal(t, 4, states)
	assert.Equal(t, 0.0, mat.Sum(table))
}

func TestStepMovesTheEstimateTowardTheTarget(t *testing.T) {
	lake, first := newTinyLake(t)

	q, err := New(lake, Config{Epsilon: 0.1, LearningRate: 0.5}, 14)
	require.NoError(t, err)

	// Walk right then down onto the goal, updating after each
	// transition
	q.ObserveFirst(first)

	a := action(frozenlake.ActionRight)
	step, _ := lake.Step(a)
	q.Observe(a, step)
	q.Step()

	a = action(frozenlake.ActionDown)
	step, last := lake.Step(a)
	require.True(t, last)
	require.Equal(t, 1.0, step.Reward)
	q.Observe(a, step)
	q.Step()
	q.EndEpisode()

	// The first transition had no reward and an all-zero table, so
	// only the terminal transition changes the table:
	// Q(1, down) = 0 + 0.5 * (1 + 0 - 0) = 0.5
	table := q.Weights()["weights"]
	assert.Equal(t, 0.5, table.At(frozenlake.ActionDown, 1))
	assert.Equal(t, 0.5, mat.Sum(table))
}

func TestStepBootstrapsUnlessTerminal(t *testing.T) {
	table := mat.NewDense(2, 2, nil)
	table.Set(0, 1, 2.0)
	table.Set(1, 1, 3.0)

	// A transition from state 0 to state 1 with reward 1
	transition := func(end timestep.EndType) *QLearner {
		learner := NewQLearner(table, 1.0)

		first := timestep.New(timestep.First, 0, 0.5, oneHot(2, 0), 0)
		learner.ObserveFirst(first)

		next := timestep.New(timestep.Last, 1.0, 0.5, oneHot(2, 1), 1)
		next.SetEnd(end)
		learner.Observe(action(0), next)
		return learner
	}

	// Cut off at a step limit: the target bootstraps off
	// max_a' Q(s', a') = 3
	learner := transition(timestep.Timeout)
	learner.Step()
	assert.Equal(t, 1.0+0.5*3.0, table.At(0, 0))

	// Terminal state: no bootstrapping
	table.Set(0, 0, 0.0)
	learner = transition(timestep.TerminalStateReached)
	learner.Step()
	assert.Equal(t, 1.0, table.At(0, 0))
}

func TestTdError(t *testing.T) {
	table := mat.NewDense(2, 2, nil)
	table.Set(0, 0, 0.25)
	table.Set(1, 1, 2.0)

	learner := NewQLearner(table, 0.1)

	transition := timestep.Transition{
		State:     oneHot(2, 0),
		Action:    action(0),
		Reward:    1.0,
		Discount:  0.5,
		NextState: oneHot(2, 1),
	}

	// target = 1 + 0.5 * max(0, 2) = 2; estimate = 0.25
	assert.Equal(t, 1.75, learner.TdError(transition))
}

func TestSaveLoadRoundTrip(t *testing.T) {
	lake, _ := newTinyLake(t)

	q, err := New(lake, Config{Epsilon: 0.1, LearningRate: 0.5}, 14)
	require.NoError(t, err)

	table := q.Weights()["weights"]
	table.Set(2, 1, 0.75)
	table.Set(0, 3, -0.5)

	filename := filepath.Join(t.TempDir(), "table.gob")
	require.NoError(t, q.Save(filename))

	loaded, err := New(lake, Config{Epsilon: 0.1, LearningRate: 0.5}, 14)
	require.NoError(t, err)
	require.NoError(t, loaded.Load(filename))

	assert.True(t, mat.Equal(table, loaded.Weights()["weights"]))
}

func TestLoadRejectsMismatchedTableShapes(t *testing.T) {
	lake, _ := newTinyLake(t)
	q, err := New(lake, Config{Epsilon: 0.1, LearningRate: 0.5}, 14)
	require.NoError(t, err)

	filename := filepath.Join(t.TempDir(), "table.gob")
	require.NoError(t, q.Save(filename))

	// An agent on the 4x4 map has a larger table
	task, err := frozenlake.NewReach(frozenlake.FourByFour, 100)
	require.NoError(t, err)
	bigLake, _, err := frozenlake.New(frozenlake.FourByFour, task, 0.9,
		false, 14)
	require.NoError(t, err)

	big, err := New(bigLake, Config{Epsilon: 0.1, LearningRate: 0.5}, 14)
	require.NoError(t, err)

	assert.Error(t, big.Load(filename))
}

func TestConfigValidation(t *testing.T) {
	lake, _ := newTinyLake(t)

	_, err := New(lake, Config{Epsilon: -0.1, LearningRate: 0.5}, 14)
	assert.Error(t, err)

	_, err = New(lake, Config{Epsilon: 1.1, LearningRate: 0.5}, 14)
	assert.Error(t, err)

	_, err = New(lake, Config{Epsilon: 0.1, LearningRate: 0.0}, 14)
	assert.Error(t, err)
}
