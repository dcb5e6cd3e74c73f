package cmd

import (
	"github.com/spf13/cobra"

	"github.com/gopherrl/tabular/environment/envconfig"
)

var (
	frozenLakeCutoff   uint
	frozenLakeMap      string
	frozenLakeSlippery bool
)

var frozenLakeCmd = &cobra.Command{
	Use:   "frozenlake",
	Short: "Train Q-Learning on the FrozenLake gridworld",
	Long: `Frozenlake trains a tabular Q-Learning agent on the FrozenLake
gridworld. The agent crosses a frozen lake from the start tile to the
goal tile without falling into any holes. On slippery ice the agent
moves in the intended direction or either perpendicular direction with
equal probability.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := envConfig(func() envconfig.Config {
			c := envconfig.NewConfig(envconfig.FrozenLake,
				frozenLakeCutoff, discount)
			c.Map = frozenLakeMap
			c.Slippery = frozenLakeSlippery
			return c
		})
		if err != nil {
			return err
		}

		return trainQLearning(config, "frozenlake")
	},
}

func init() {
	frozenLakeCmd.Flags().UintVar(&frozenLakeCutoff, "cutoff", 100,
		"maximum steps per episode")
	frozenLakeCmd.Flags().StringVar(&frozenLakeMap, "map", "4x4",
		"lake map to use (4x4 or 8x8)")
	frozenLakeCmd.Flags().BoolVar(&frozenLakeSlippery, "slippery", true,
		"whether the ice is slippery")

	rootCmd.AddCommand(frozenLakeCmd)
}
