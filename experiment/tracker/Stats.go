package tracker

import (
	"fmt"

	ts "github.com/gopherrl/tabular/timestep"
)

// Summary aggregates per-episode statistics over an experiment
type Summary struct {
	Episodes    int
	SuccessRate float64
	AvgReturn   float64
	AvgSteps    float64
}

func (s Summary) String() string {
	return fmt.Sprintf("Episodes: %d  |  Success rate: %.2f%%  |  "+
		"Average return: %.3f  |  Average steps: %.2f", s.Episodes,
		s.SuccessRate*100, s.AvgReturn, s.AvgSteps)
}

// Success decides whether the final timestep of an episode counts the
// episode as a success
type Success func(t ts.TimeStep) bool

// PositiveReward counts an episode as a success when it ends in a
// terminal state with a positive reward. This suits tasks that signal
// reaching the goal with a positive terminal reward, such as crossing
// a frozen lake or delivering a package.
func PositiveReward(t ts.TimeStep) bool {
	return t.End() == ts.TerminalStateReached && t.Reward > 0
}

// TerminalState counts an episode as a success whenever it ends in a
// terminal state rather than at the step limit. This suits
// cost-to-goal tasks whose only terminal state is the goal, such as
// Mountain Car, where the terminal reward is 0.
func TerminalState(t ts.TimeStep) bool {
	return t.End() == ts.TerminalStateReached
}

// Stats tracks aggregate statistics over the episodes of an
// experiment: the number of finished episodes, the success rate, the
// average return, and the average episode length. Which episodes count
// as successes is decided by the Stats' Success criterion.
//
// Stats keeps its data in memory only; Save is a no-op.
type Stats struct {
	currentReturn float64
	totalReturn   float64
	totalSteps    int
	episodes      int
	successes     int
	success       Success
}

// NewStats creates and returns a new *Stats Tracker that counts
// successes with the PositiveReward criterion
func NewStats() *Stats {
	return NewStatsWith(PositiveReward)
}

// NewStatsWith creates and returns a new *Stats Tracker that counts
// successes with the argument criterion
func NewStatsWith(success Success) *Stats {
	return &Stats{success: success}
}

// Track tracks the timesteps of an experiment, aggregating statistics
// whenever an episode finishes
func (s *Stats) Track(t ts.TimeStep) {
	s.currentReturn += t.Reward

	if !t.Last() {
		return
	}

	s.episodes++
	s.totalReturn += s.currentReturn
	s.totalSteps += t.Number
	s.currentReturn = 0.0

	if s.success(t) {
		s.successes++
	}
}

// Summary returns the aggregated statistics of all finished episodes
func (s *Stats) Summary() Summary {
	if s.episodes == 0 {
		return Summary{}
	}

	episodes := float64(s.episodes)
	return Summary{
		Episodes:    s.episodes,
		SuccessRate: float64(s.successes) / episodes,
		AvgReturn:   s.totalReturn / episodes,
		AvgSteps:    float64(s.totalSteps) / episodes,
	}
}

// Save is a no-op: Stats keeps its data in memory only
func (s *Stats) Save() {}
