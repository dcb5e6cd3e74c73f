package envconfig

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	env "github.com/gopherrl/tabular/environment"
)

func TestNewConfigDefaults(t *testing.T) {
	c := NewConfig(FrozenLake, 100, 0.99)
	assert.Equal(t, Reach, c.Task)
	assert.Equal(t, "4x4", c.Map)
	assert.True(t, c.Slippery)

	c = NewConfig(MountainCar, 1000, 1.0)
	assert.Equal(t, Goal, c.Task)
	assert.Equal(t, []int{20, 20}, c.Bins)

	c = NewConfig(WarehouseAdvanced, 200, 0.99)
	assert.Equal(t, Deliver, c.Task)
	assert.Equal(t, 4, c.Rows)
	assert.Equal(t, 5, c.Cols)

	assert.Panics(t, func() { NewConfig("CartPole", 100, 0.99) })
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	c := NewConfig(FrozenLake, 100, 0.95)
	c.Map = "8x8"
	c.Slippery = false
	require.NoError(t, c.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, c, loaded)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestCreateMountainCar(t *testing.T) {
	c := NewConfig(MountainCar, 1000, 1.0)
	e, first, err := c.Create(14)
	require.NoError(t, err)

	// Discretized into a 20x20 one-hot grid
	assert.Equal(t, 400, first.Observation.Len())
	assert.Equal(t, env.Discrete, e.ObservationSpec().Cardinality)
	assert.Equal(t, 2.0, e.ActionSpec().UpperBound.AtVec(0))
}

func TestCreateFrozenLake(t *testing.T) {
	c := NewConfig(FrozenLake, 100, 0.99)
	e, first, err := c.Create(14)
	require.NoError(t, err)

	assert.Equal(t, 16, first.Observation.Len())
	assert.Equal(t, 16, e.ObservationSpec().Shape.Len())

	c.Map = "8x8"
	e, _, err = c.Create(14)
	require.NoError(t, err)
	assert.Equal(t, 64, e.ObservationSpec().Shape.Len())

	c.Map = "16x16"
	_, _, err = c.Create(14)
	assert.Error(t, err)
}

func TestCreateWarehouse(t *testing.T) {
	c := NewConfig(Warehouse, 200, 0.99)
	_, first, err := c.Create(14)
	require.NoError(t, err)
	assert.Equal(t, 4, first.Observation.Len())

	c = NewConfig(WarehouseAdvanced, 200, 0.99)
	e, first, err := c.Create(14)
	require.NoError(t, err)
	assert.Equal(t, 5, first.Observation.Len())
	assert.Equal(t, 3.0, e.ActionSpec().UpperBound.AtVec(0))
}

func TestCreateAppliesDefaultsToSparseConfigs(t *testing.T) {
	// A config naming only the environment, as a minimal YAML file
	// would produce
	c := Config{Environment: MountainCar, EpisodeCutoff: 1000, Discount: 1.0}
	_, first, err := c.Create(14)
	require.NoError(t, err)
	assert.Equal(t, 400, first.Observation.Len())

	c = Config{Environment: FrozenLake, EpisodeCutoff: 100, Discount: 0.99}
	_, first, err = c.Create(14)
	require.NoError(t, err)
	assert.Equal(t, 16, first.Observation.Len())

	c = Config{Environment: WarehouseAdvanced, EpisodeCutoff: 200,
		Discount: 0.99}
	_, first, err = c.Create(14)
	require.NoError(t, err)
	require.Equal(t, 5, first.Observation.Len())
	assert.Equal(t, 30.0, first.Observation.AtVec(4))
}

func TestCreateRejectsUnknownEnvironmentsAndTasks(t *testing.T) {
	_, _, err := Config{Environment: "CartPole"}.Create(14)
	assert.Error(t, err)

	c := NewConfig(FrozenLake, 100, 0.99)
	c.Task = Goal
	_, _, err = c.Create(14)
	assert.Error(t, err)

	c = NewConfig(Warehouse, 200, 0.99)
	c.Task = Reach
	_, _, err = c.Create(14)
	assert.Error(t, err)
}
