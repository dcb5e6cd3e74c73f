package cmd

import (
	"math"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/gopherrl/tabular/agent"
	env "github.com/gopherrl/tabular/environment"
	"github.com/gopherrl/tabular/environment/envconfig"
	"github.com/gopherrl/tabular/experiment"
	"github.com/gopherrl/tabular/experiment/checkpointer"
	"github.com/gopherrl/tabular/experiment/plot"
	"github.com/gopherrl/tabular/experiment/tracker"
	ts "github.com/gopherrl/tabular/timestep"
	"github.com/gopherrl/tabular/utils/progressbar"
)

// movingAverageWindow is the window of the smoothed series on learning
// curve plots
const movingAverageWindow = 50

// policyAgent adapts a fixed agent.Policy into an agent.Agent that
// never learns, so that a learned policy can be run through an
// experiment for evaluation
type policyAgent struct {
	agent.Policy
}

func (policyAgent) Step()                               {}
func (policyAgent) Observe(_ mat.Vector, _ ts.TimeStep) {}
func (policyAgent) ObserveFirst(_ ts.TimeStep)          {}
func (policyAgent) EndEpisode()                         {}

// successFor returns the success criterion of the argument
// environment. MountainCar is a cost-to-goal task whose only terminal
// state is the goal; the other environments signal reaching the goal
// with a positive terminal reward.
func successFor(name envconfig.EnvName) tracker.Success {
	if name == envconfig.MountainCar {
		return tracker.TerminalState
	}
	return tracker.PositiveReward
}

// train runs the argument agent on the argument environment for the
// configured step budget, tracking episodic returns and aggregate
// statistics. The tracked data is saved in the data directory and, if
// requested, plotted as a learning curve.
func train(e env.Environment, ag agent.Agent, name string,
	success tracker.Success) tracker.Summary {
	returns := tracker.NewReturn(dataPath(name + "_returns.gob"))
	lengths := tracker.NewEpisodeLength(dataPath(name + "_lengths.gob"))
	stats := tracker.NewStatsWith(success)
	trackers := []tracker.Tracker{returns, lengths, stats}

	var checkpointers []checkpointer.Checkpointer
	if s, ok := ag.(checkpointer.Serializable); ok && checkpointEvery > 0 {
		checkpointers = append(checkpointers, checkpointer.NewNStep(
			checkpointEvery, s, checkpointer.Fixed(dataPath(name+"_table.gob")),
		))
	}

	exp := experiment.NewOnline(e, ag, steps, trackers, checkpointers)

	pbar := progressbar.New(80, int(steps), time.Second, false)
	pbar.Display()

	done := false
	for !done {
		before := exp.CurrentSteps()
		done = exp.RunEpisode()
		for i := before; i < exp.CurrentSteps(); i++ {
			pbar.Increment()
		}
	}
	pbar.Close()

	exp.Save()

	if plotFile != "" {
		err := plot.LearningCurve(plotFile, name, returns.Returns(),
			movingAverageWindow)
		if err != nil {
			logger.Errorw("could not plot learning curve", "error", err)
		} else {
			logger.Infow("saved learning curve", "file", plotFile)
		}
	}

	return stats.Summary()
}

// evaluate runs the argument policy on the argument environment for a
// number of episodes without learning and returns the aggregate
// statistics
func evaluate(e env.Environment, p agent.Policy, episodes uint,
	success tracker.Success) tracker.Summary {
	stats := tracker.NewStatsWith(success)
	exp := experiment.NewOnline(e, policyAgent{p}, math.MaxUint32,
		[]tracker.Tracker{stats}, nil)

	for ep := uint(0); ep < episodes; ep++ {
		if exp.RunEpisode() {
			break
		}
	}

	return stats.Summary()
}

// renderer is implemented by environments that can draw themselves to
// the terminal
type renderer interface {
	Render()
}

// renderEpisode runs a single episode of the argument policy on the
// argument environment, drawing each state to the terminal
func renderEpisode(e env.Environment, p agent.Policy) {
	r, ok := e.(renderer)
	if !ok {
		logger.Warnw("environment does not support rendering",
			"environment", e.String())
		return
	}

	step := e.Reset()
	r.Render()

	for !step.Last() {
		action := p.SelectAction(step)
		step, _ = e.Step(action)
		r.Render()
		time.Sleep(100 * time.Millisecond)
	}
}
