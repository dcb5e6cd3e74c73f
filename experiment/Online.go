// Package experiment implements functionality for running an experiment
package experiment

import (
	"log"

	"github.com/gopherrl/tabular/agent"
	env "github.com/gopherrl/tabular/environment"
	"github.com/gopherrl/tabular/experiment/checkpointer"
	"github.com/gopherrl/tabular/experiment/tracker"
	ts "github.com/gopherrl/tabular/timestep"
)

// Experiment outlines structs that can run experiments. Experiments
// run episodes of the agent-environment interaction until a step
// budget is exhausted, sending every environmental TimeStep to their
// tracker.Trackers. The Save() method takes all data cached by the
// Trackers and saves it to disk, usually after the experiment has
// finished.
type Experiment interface {
	Run()
	RunEpisode() bool // Returns whether the step budget is exhausted
	Save()

	// Register adds a new tracker.Tracker to the (possibly already
	// running) experiment
	Register(t tracker.Tracker)
}

// Online is an Experiment that runs an agent online only. No offline
// evaluation is performed.
type Online struct {
	env.Environment
	agent.Agent
	maxSteps      uint
	currentSteps  uint
	trackers      []tracker.Tracker
	checkpointers []checkpointer.Checkpointer
}

// NewOnline creates and returns a new online experiment on a given
// environment with a given agent. The steps parameter determines the
// total timestep budget of the experiment, and the trackers determine
// which data generated during the experiment is saved.
func NewOnline(e env.Environment, a agent.Agent, steps uint,
	trackers []tracker.Tracker,
	checkpointers []checkpointer.Checkpointer) *Online {
	return &Online{
		Environment:   e,
		Agent:         a,
		maxSteps:      steps,
		trackers:      trackers,
		checkpointers: checkpointers,
	}
}

// Register registers a tracker.Tracker with the experiment so that
// data generated during the experiment can be tracked and saved
func (o *Online) Register(t tracker.Tracker) {
	o.trackers = append(o.trackers, t)
}

// CurrentSteps returns the number of environmental steps taken so far
func (o *Online) CurrentSteps() uint {
	return o.currentSteps
}

// RunEpisode runs a single episode, returning whether the experiment's
// step budget has been exhausted
func (o *Online) RunEpisode() bool {
	step := o.Environment.Reset()
	o.Agent.ObserveFirst(step)
	o.track(step)

	for !step.Last() && o.currentSteps < o.maxSteps {
		o.currentSteps++

		// Select an action and take one environmental step
		action := o.Agent.SelectAction(step)
		step, _ = o.Environment.Step(action)

		// Cache the environmental step in each Tracker
		o.track(step)

		// Observe the timestep and step the agent
		o.Agent.Observe(action, step)
		o.Agent.Step()

		o.checkpoint(step)
	}

	o.Agent.EndEpisode()

	// Return whether or not the step budget has been exhausted
	return o.currentSteps >= o.maxSteps
}

// Run runs the entire experiment for all timesteps
func (o *Online) Run() {
	ended := false

	for !ended {
		ended = o.RunEpisode()
	}
}

// Save saves all the data cached by the Trackers to disk
func (o *Online) Save() {
	for _, t := range o.trackers {
		t.Save()
	}
}

// track caches the current timestep's data in each Tracker
func (o *Online) track(t ts.TimeStep) {
	for _, tr := range o.trackers {
		tr.Track(t)
	}
}

// checkpoint saves the current state of the experiment's serializable
// objects
func (o *Online) checkpoint(t ts.TimeStep) {
	for _, c := range o.checkpointers {
		if err := c.Checkpoint(t); err != nil {
			log.Printf("could not checkpoint: %v", err)
		}
	}
}
