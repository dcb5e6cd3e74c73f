package tracker

import (
	ts "github.com/gopherrl/tabular/timestep"
)

// EpisodeLength tracks and saves the lengths of episodes in an
// experiment.
//
// Note: an episode must finish for this Tracker to save its data.
// If the last episode in an experiment does not finish, that episode's
// length will not be saved.
type EpisodeLength struct {
	episodeLengths []int
	filename       string
}

// NewEpisodeLength returns a new EpisodeLength Tracker which will save
// its data at the argument filename
func NewEpisodeLength(filename string) *EpisodeLength {
	var t EpisodeLength
	t.filename = filename
	return &t
}

// Track caches the episode length whenever the timestep passed to it
// is the last timestep in an episode
func (e *EpisodeLength) Track(t ts.TimeStep) {
	if t.Last() {
		e.episodeLengths = append(e.episodeLengths, t.Number)
	}
}

// Lengths returns the episode lengths cached so far
func (e *EpisodeLength) Lengths() []int {
	return e.episodeLengths
}

// Save saves the data tracked by the EpisodeLength Tracker to disk
func (e *EpisodeLength) Save() {
	saveGob(e.filename, e.episodeLengths)
}
