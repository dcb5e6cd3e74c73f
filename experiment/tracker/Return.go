package tracker

import (
	"fmt"

	ts "github.com/gopherrl/tabular/timestep"
)

// Return tracks and saves the episodic return in an experiment. When
// an environment returns a TimeStep, this Tracker will extract the
// reward and accumulate the return for each episode in the experiment.
//
// Note: An episode must finish for this Tracker to save its data.
// If the last episode in an experiment does not finish, that episode's
// return will not be saved.
type Return struct {
	lastTimeStep   int
	currentReturn  float64
	episodeReturns []float64
	filename       string
}

// NewReturn creates and returns a new *Return Tracker which saves its
// data at the argument filename
func NewReturn(filename string) *Return {
	var t Return
	t.lastTimeStep = -1
	t.filename = filename
	return &t
}

// Track tracks the reward seen on a timestep. By calling this method
// on every timestep, the Tracker accumulates the return of the current
// episode and caches it when the episode finishes. When a new episode
// starts, this method automatically starts accumulating the rewards of
// the new episode separately.
//
// Track panics if it is called for non-sequential timesteps.
func (r *Return) Track(step ts.TimeStep) {
	// Ensure that Track is called on sequential timesteps
	if r.lastTimeStep+1 != step.Number {
		panic(fmt.Sprintf("track: last two timesteps tracked are not "+
			"sequential: timestep %v --> timestep %v were tracked",
			r.lastTimeStep, step.Number))
	}

	r.currentReturn += step.Reward

	if step.Last() {
		// Episode has ended, cache the return and begin tracking the
		// return of the next episode
		r.episodeReturns = append(r.episodeReturns, r.currentReturn)
		r.currentReturn = 0.0
		r.lastTimeStep = -1
	} else {
		r.lastTimeStep = step.Number
	}
}

// Returns returns the episodic returns cached so far
func (r *Return) Returns() []float64 {
	return r.episodeReturns
}

// Save saves the data tracked by the Return Tracker to disk
func (r *Return) Save() {
	saveGob(r.filename, r.episodeReturns)
}
