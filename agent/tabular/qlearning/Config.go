package qlearning

import "fmt"

// Config represents a configuration for the QLearning agent
type Config struct {
	// Epsilon is the exploration rate of the behaviour policy
	Epsilon float64 `yaml:"epsilon"`

	// LearningRate is the step size of the Q-table update
	LearningRate float64 `yaml:"learning_rate"`
}

// Validate returns an error if the configuration does not describe a
// valid agent
func (c Config) Validate() error {
	if c.Epsilon < 0 || c.Epsilon > 1 {
		return fmt.Errorf("epsilon must be in [0, 1], got %v", c.Epsilon)
	}
	if c.LearningRate <= 0 {
		return fmt.Errorf("learning rate must be positive, got %v",
			c.LearningRate)
	}
	return nil
}
