package cmd

import (
	"github.com/spf13/cobra"

	"github.com/gopherrl/tabular/agent/tabular/qlearning"
	"github.com/gopherrl/tabular/environment/envconfig"
)

var (
	mountainCarCutoff uint
	mountainCarBins   []int
)

var mountainCarCmd = &cobra.Command{
	Use:   "mountaincar",
	Short: "Train Q-Learning on MountainCar with discretized observations",
	Long: `Mountaincar trains a tabular Q-Learning agent on the Mountain
Car environment. The car's continuous position and velocity are
discretized into a uniform grid of bins and encoded as one-hot
observations, so the agent learns an action value table with one entry
per grid cell and action.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := envConfig(func() envconfig.Config {
			c := envconfig.NewConfig(envconfig.MountainCar,
				mountainCarCutoff, discount)
			c.Bins = mountainCarBins
			return c
		})
		if err != nil {
			return err
		}

		return trainQLearning(config, "mountaincar")
	},
}

func init() {
	mountainCarCmd.Flags().UintVar(&mountainCarCutoff, "cutoff", 1000,
		"maximum steps per episode")
	mountainCarCmd.Flags().IntSliceVar(&mountainCarBins, "bins",
		[]int{20, 20}, "discretization bins per observation dimension")

	rootCmd.AddCommand(mountainCarCmd)
}

// trainQLearning creates the environment described by the argument
// config, trains a Q-Learning agent on it, evaluates the learned
// greedy policy, and saves the action value table
func trainQLearning(config envconfig.Config, name string) error {
	e, _, err := config.Create(seed)
	if err != nil {
		return err
	}

	agentConfig := qlearning.Config{
		Epsilon:      epsilon,
		LearningRate: learningRate,
	}
	q, err := qlearning.New(e, agentConfig, seed)
	if err != nil {
		return err
	}

	success := successFor(config.Environment)

	logger.Infow("training", "environment", e.String(), "steps", steps,
		"seed", seed, "epsilon", epsilon, "learningRate", learningRate)
	summary := train(e, q, name, success)
	logger.Infof("training:   %v", summary)

	if err := q.Save(dataPath(name + "_table.gob")); err != nil {
		return err
	}

	// Fresh environment for evaluation so that training and evaluation
	// episodes do not interleave
	evalEnv, _, err := config.Create(seed + 1)
	if err != nil {
		return err
	}

	evalSummary := evaluate(evalEnv, q.GreedyPolicy(), evalEpisodes, success)
	logger.Infof("evaluation: %v", evalSummary)

	if render {
		renderEpisode(evalEnv, q.GreedyPolicy())
	}
	return nil
}
