// Package cmd implements the command line interface for training and
// evaluating agents on the environments in this module
package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gopherrl/tabular/environment/envconfig"
)

var (
	seed            uint64
	steps           uint
	discount        float64
	epsilon         float64
	learningRate    float64
	dataDir         string
	plotFile        string
	configPath      string
	checkpointEvery int
	evalEpisodes    uint
	render          bool

	logger *zap.SugaredLogger
)

var rootCmd = &cobra.Command{
	Use:   "tabular",
	Short: "Train and evaluate tabular reinforcement learning agents",
	Long: `Tabular trains and evaluates tabular reinforcement learning
agents on a set of small environments: MountainCar with discretized
observations, FrozenLake, and a Warehouse gridworld with a delivery
robot.

Training runs a Q-Learning agent online for a budget of environmental
steps, then evaluates the learned greedy policy and reports the success
rate, average return, and average episode length.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := zap.NewDevelopment()
		if err != nil {
			return err
		}
		logger = l.Sugar()

		return os.MkdirAll(dataDir, 0o755)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.Uint64Var(&seed, "seed", 192382, "random seed")
	flags.UintVar(&steps, "steps", 100_000,
		"total environmental steps to train for")
	flags.Float64Var(&discount, "discount", 0.99, "discount factor")
	flags.Float64Var(&epsilon, "epsilon", 0.1,
		"exploration rate of the behaviour policy")
	flags.Float64Var(&learningRate, "learning-rate", 0.1,
		"step size of the Q-Learning update")
	flags.StringVar(&dataDir, "data", "data",
		"directory to save experiment data in")
	flags.StringVar(&plotFile, "plot", "",
		"render a learning curve to this HTML file")
	flags.StringVar(&configPath, "config", "",
		"load the environment configuration from this YAML file, "+
			"overriding environment flags")
	flags.IntVar(&checkpointEvery, "checkpoint-every", 0,
		"checkpoint the action value table every N steps (0 disables)")
	flags.UintVar(&evalEpisodes, "eval-episodes", 100,
		"episodes to evaluate the learned policy for")
	flags.BoolVar(&render, "render", false,
		"render one episode of the final policy to the terminal")
}

// Execute runs the command line interface
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// dataPath returns the path of a data file inside the data directory
func dataPath(name string) string {
	return filepath.Join(dataDir, name)
}

// envConfig returns the environment configuration to run: the YAML
// file named by --config when given, otherwise the configuration built
// from the command's flags
func envConfig(build func() envconfig.Config) (envconfig.Config, error) {
	if configPath == "" {
		return build(), nil
	}
	return envconfig.Load(configPath)
}
