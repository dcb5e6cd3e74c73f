// Package envconfig provides configuration structs for configuring
// environments with default physical parameters and tasks. Environment
// configurations in this package are YAML serializable.
package envconfig

import (
	"fmt"
	"os"

	"gonum.org/v1/gonum/spatial/r1"
	"gopkg.in/yaml.v3"

	env "github.com/gopherrl/tabular/environment"
	"github.com/gopherrl/tabular/environment/classiccontrol/mountaincar"
	"github.com/gopherrl/tabular/environment/frozenlake"
	"github.com/gopherrl/tabular/environment/warehouse"
	"github.com/gopherrl/tabular/environment/wrappers"
	ts "github.com/gopherrl/tabular/timestep"
)

// EnvName stores the name of environments that can be configured with
// this package
type EnvName string

// Environments available for configuration
const (
	MountainCar       EnvName = "MountainCar"
	FrozenLake        EnvName = "FrozenLake"
	Warehouse         EnvName = "Warehouse"
	WarehouseAdvanced EnvName = "WarehouseAdvanced"
)

// TaskName stores the tasks that can be configured with this package.
// Note that not all tasks can be used with all environments. The tasks
// that can be used with each environment are as follows:
//
//	Environment			Task
//	MountainCar			Goal
//	FrozenLake			Reach
//	Warehouse			Deliver
//	WarehouseAdvanced	Deliver
type TaskName string

// Tasks available for configuration
const (
	Goal    TaskName = "Goal"
	Reach   TaskName = "Reach"
	Deliver TaskName = "Deliver"
)

// Config implements a specific configuration of a specific environment
// and specific task. Not all environments can have all tasks, and not
// all fields apply to all environments: Bins applies to MountainCar
// only, Map and Slippery to FrozenLake only, Rows and Cols to the
// warehouse environments, and MaxBattery and NumObstacles to
// WarehouseAdvanced only. When the environment is created, zero-valued
// fields fall back to the same defaults NewConfig sets, so a YAML
// config needs only the fields it overrides. Slippery is the
// exception: false means the ice is not slippery.
type Config struct {
	Environment   EnvName  `yaml:"environment"`
	Task          TaskName `yaml:"task"`
	EpisodeCutoff uint     `yaml:"episode_cutoff"`
	Discount      float64  `yaml:"discount"`

	// MountainCar: observation discretization bins per dimension
	Bins []int `yaml:"bins,omitempty"`

	// FrozenLake
	Map      string `yaml:"map,omitempty"`
	Slippery bool   `yaml:"slippery,omitempty"`

	// Warehouse and WarehouseAdvanced
	Rows         int `yaml:"rows,omitempty"`
	Cols         int `yaml:"cols,omitempty"`
	MaxBattery   int `yaml:"max_battery,omitempty"`
	NumObstacles int `yaml:"num_obstacles,omitempty"`
}

// NewConfig returns a new environment Config with the default task and
// default parameters for the argument environment
func NewConfig(envName EnvName, episodeCutoff uint, discount float64) Config {
	c := Config{
		Environment:   envName,
		EpisodeCutoff: episodeCutoff,
		Discount:      discount,
	}

	switch envName {
	case MountainCar, Warehouse, WarehouseAdvanced:

	case FrozenLake:
		c.Slippery = true

	default:
		panic(fmt.Sprintf("newConfig: cannot configure environment %v, "+
			"no such environment", envName))
	}

	return c.withDefaults()
}

// withDefaults returns the Config with the NewConfig defaults filled
// in for any zero-valued field. Slippery is left alone: false selects
// a non-slippery lake.
func (c Config) withDefaults() Config {
	if c.Task == "" {
		switch c.Environment {
		case MountainCar:
			c.Task = Goal

		case FrozenLake:
			c.Task = Reach

		case Warehouse, WarehouseAdvanced:
			c.Task = Deliver
		}
	}

	switch c.Environment {
	case MountainCar:
		if len(c.Bins) == 0 {
			c.Bins = []int{20, 20}
		}

	case FrozenLake:
		if c.Map == "" {
			c.Map = "4x4"
		}

	case Warehouse, WarehouseAdvanced:
		if c.Rows == 0 {
			c.Rows = warehouse.DefaultRows
		}
		if c.Cols == 0 {
			c.Cols = warehouse.DefaultCols
		}
		if c.MaxBattery == 0 {
			c.MaxBattery = warehouse.DefaultMaxBattery
		}
		if c.NumObstacles == 0 {
			c.NumObstacles = warehouse.DefaultNumObstacles
		}
	}

	return c
}

// Load reads a Config from the YAML file at the argument path
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load: could not read config file: %v",
			err)
	}

	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("load: could not unmarshal config: %v",
			err)
	}
	return c, nil
}

// Save writes the Config to the YAML file at the argument path
func (c Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("save: could not marshal config: %v", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Create returns the environment described by the Config as well as
// the first timestep of the environment. Zero-valued Config fields are
// replaced by the NewConfig defaults before the environment is built.
func (c Config) Create(seed uint64) (env.Environment, ts.TimeStep, error) {
	c = c.withDefaults()

	switch c.Environment {
	case MountainCar:
		return CreateMountainCar(c.Task, int(c.EpisodeCutoff), seed,
			c.Discount, c.Bins)

	case FrozenLake:
		return CreateFrozenLake(c.Task, int(c.EpisodeCutoff), seed,
			c.Discount, c.Map, c.Slippery)

	case Warehouse:
		return CreateWarehouse(c.Task, int(c.EpisodeCutoff), seed,
			c.Discount, c.Rows, c.Cols)

	case WarehouseAdvanced:
		return CreateWarehouseAdvanced(c.Task, int(c.EpisodeCutoff), seed,
			c.Discount, c.Rows, c.Cols, c.MaxBattery, c.NumObstacles)
	}

	return nil, ts.TimeStep{}, fmt.Errorf("create: cannot create "+
		"environment %v, no such environment", c.Environment)
}

// CreateMountainCar is a factory for creating the MountainCar
// environment with default physical parameters and default task
// parameters. The returned environment is wrapped so that its
// continuous observations are discretized into bins[i] bins along
// dimension i and emitted as one-hot vectors.
func CreateMountainCar(taskName TaskName, cutoff int, seed uint64,
	discount float64, bins []int) (env.Environment, ts.TimeStep, error) {
	position := r1.Interval{Min: -0.6, Max: -0.4}
	velocity := r1.Interval{Min: 0.0, Max: 0.0}

	s := env.NewUniformStarter([]r1.Interval{position, velocity}, seed)

	var task env.Task
	switch taskName {
	case Goal:
		task = mountaincar.NewGoal(s, cutoff, mountaincar.GoalPosition)

	default:
		return nil, ts.TimeStep{}, fmt.Errorf("createMountainCar: "+
			"MountainCar environment has no task %v", taskName)
	}

	car, _ := mountaincar.NewDiscrete(task, discount)
	return wrappers.NewDiscretize(car, bins)
}

// CreateFrozenLake is a factory for creating the FrozenLake
// environment on one of the standard maps ("4x4" or "8x8").
func CreateFrozenLake(taskName TaskName, cutoff int, seed uint64,
	discount float64, mapName string, slippery bool) (env.Environment,
	ts.TimeStep, error) {
	lakeMap, err := frozenlake.MapByName(mapName)
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("createFrozenLake: %v", err)
	}

	var task env.Task
	switch taskName {
	case Reach:
		task, err = frozenlake.NewReach(lakeMap, cutoff)
		if err != nil {
			return nil, ts.TimeStep{}, fmt.Errorf("createFrozenLake: %v", err)
		}

	default:
		return nil, ts.TimeStep{}, fmt.Errorf("createFrozenLake: "+
			"FrozenLake environment has no task %v", taskName)
	}

	return frozenlake.New(lakeMap, task, discount, slippery, seed)
}

// CreateWarehouse is a factory for creating the Warehouse environment
// on a rows x cols grid.
func CreateWarehouse(taskName TaskName, cutoff int, seed uint64,
	discount float64, rows, cols int) (env.Environment, ts.TimeStep, error) {
	task, err := warehouseTask(taskName, cutoff, seed, rows, cols)
	if err != nil {
		return nil, ts.TimeStep{}, err
	}
	return warehouse.New(rows, cols, task, discount)
}

// CreateWarehouseAdvanced is a factory for creating the Warehouse
// environment with obstacles and a battery.
func CreateWarehouseAdvanced(taskName TaskName, cutoff int, seed uint64,
	discount float64, rows, cols, maxBattery, numObstacles int) (
	env.Environment, ts.TimeStep, error) {
	task, err := warehouseTask(taskName, cutoff, seed, rows, cols)
	if err != nil {
		return nil, ts.TimeStep{}, err
	}
	return warehouse.NewAdvanced(rows, cols, task, discount, maxBattery,
		numObstacles, seed)
}

func warehouseTask(taskName TaskName, cutoff int, seed uint64, rows,
	cols int) (env.Task, error) {
	switch taskName {
	case Deliver:
		return warehouse.NewDeliver(rows, cols, cutoff, seed), nil
	}
	return nil, fmt.Errorf("createWarehouse: Warehouse environment has "+
		"no task %v", taskName)
}
