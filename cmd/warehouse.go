package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gopherrl/tabular/agent"
	"github.com/gopherrl/tabular/agent/baseline"
	env "github.com/gopherrl/tabular/environment"
	"github.com/gopherrl/tabular/environment/envconfig"
)

var (
	warehouseCutoff    uint
	warehouseRows      int
	warehouseCols      int
	warehouseAgent     string
	warehouseAdvanced  bool
	warehouseBattery   int
	warehouseObstacles int
	warehouseFrameDir  string
)

var warehouseCmd = &cobra.Command{
	Use:   "warehouse",
	Short: "Run a baseline agent on the Warehouse delivery gridworld",
	Long: `Warehouse runs a baseline agent on the Warehouse gridworld,
in which a robot delivers a package from the depot in the top left
corner to a randomly placed target cell. The advanced variant adds
obstacle cells that block movement and a battery that drains on every
step.

Two baseline agents are available: a random agent that picks actions
uniformly, and a greedy agent that always moves toward the target.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := envConfig(func() envconfig.Config {
			envName := envconfig.Warehouse
			if warehouseAdvanced {
				envName = envconfig.WarehouseAdvanced
			}

			c := envconfig.NewConfig(envName, warehouseCutoff, discount)
			c.Rows = warehouseRows
			c.Cols = warehouseCols
			c.MaxBattery = warehouseBattery
			c.NumObstacles = warehouseObstacles
			return c
		})
		if err != nil {
			return err
		}

		e, _, err := config.Create(seed)
		if err != nil {
			return err
		}

		ag, err := warehouseBaseline(e, warehouseAgent)
		if err != nil {
			return err
		}

		logger.Infow("running baseline", "environment", e.String(),
			"agent", warehouseAgent, "steps", steps, "seed", seed)
		summary := train(e, ag, "warehouse_"+warehouseAgent,
			successFor(config.Environment))
		logger.Infof("%v agent: %v", warehouseAgent, summary)

		if render {
			renderEpisode(e, ag)
		}
		if warehouseFrameDir != "" {
			return renderFrames(e, ag, warehouseFrameDir)
		}
		return nil
	},
}

func init() {
	flags := warehouseCmd.Flags()
	flags.UintVar(&warehouseCutoff, "cutoff", 200,
		"maximum steps per episode")
	flags.IntVar(&warehouseRows, "rows", 4, "grid rows")
	flags.IntVar(&warehouseCols, "cols", 5, "grid columns")
	flags.StringVar(&warehouseAgent, "agent", "greedy",
		"baseline agent to run (random or greedy)")
	flags.BoolVar(&warehouseAdvanced, "advanced", false,
		"run the advanced variant with obstacles and a battery")
	flags.IntVar(&warehouseBattery, "battery", 30,
		"battery capacity of the advanced variant")
	flags.IntVar(&warehouseObstacles, "obstacles", 4,
		"number of obstacles of the advanced variant")
	flags.StringVar(&warehouseFrameDir, "frames", "",
		"render one episode as PNG frames into this directory")

	rootCmd.AddCommand(warehouseCmd)
}

// warehouseBaseline returns the baseline agent selected by name
func warehouseBaseline(e env.Environment, name string) (agent.Agent, error) {
	switch name {
	case "random":
		return baseline.NewRandom(e, seed)

	case "greedy":
		return baseline.NewGreedyTarget(seed), nil
	}
	return nil, fmt.Errorf("warehouse: no baseline agent named %q", name)
}

// pngRenderer is implemented by environments that can draw themselves
// to a PNG file
type pngRenderer interface {
	RenderPNG(path string) error
}

// renderFrames runs a single episode of the argument agent's policy,
// saving each state as a PNG frame in the argument directory
func renderFrames(e env.Environment, p agent.Policy, dir string) error {
	r, ok := e.(pngRenderer)
	if !ok {
		return fmt.Errorf("renderFrames: environment %v cannot render "+
			"PNG frames", e.String())
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	frame := func(i int) string {
		return filepath.Join(dir, fmt.Sprintf("frame_%03d.png", i))
	}

	step := e.Reset()
	if err := r.RenderPNG(frame(0)); err != nil {
		return err
	}

	for i := 1; !step.Last(); i++ {
		action := p.SelectAction(step)
		step, _ = e.Step(action)
		if err := r.RenderPNG(frame(i)); err != nil {
			return err
		}
	}
	return nil
}
