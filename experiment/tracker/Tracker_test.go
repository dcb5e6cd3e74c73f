package tracker

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"

	ts "github.com/gopherrl/tabular/timestep"
)

// episode sends a fabricated episode with the argument rewards through
// the argument trackers. The final timestep ends the episode with the
// argument EndType.
func episode(rewards []float64, end ts.EndType, trackers ...Tracker) {
	obs := mat.NewVecDense(1, []float64{1})

	for _, tr := range trackers {
		tr.Track(ts.New(ts.First, 0, 1.0, obs, 0))
	}

	for i, r := range rewards {
		stepType := ts.Mid
		if i == len(rewards)-1 {
			stepType = ts.Last
		}

		step := ts.New(stepType, r, 1.0, obs, i+1)
		step.SetEnd(end)

		for _, tr := range trackers {
			tr.Track(step)
		}
	}
}

func TestReturnAccumulatesEpisodicReturns(t *testing.T) {
	r := NewReturn(filepath.Join(t.TempDir(), "returns.gob"))

	episode([]float64{1, 2, 3}, ts.TerminalStateReached, r)
	episode([]float64{-1, -1}, ts.Timeout, r)

	assert.Equal(t, []float64{6, -2}, r.Returns())
}

func TestReturnPanicsOnNonSequentialTimesteps(t *testing.T) {
	r := NewReturn(filepath.Join(t.TempDir(), "returns.gob"))

	obs := mat.NewVecDense(1, []float64{1})
	r.Track(ts.New(ts.First, 0, 1.0, obs, 0))
	r.Track(ts.New(ts.Mid, 1, 1.0, obs, 1))

	assert.Panics(t, func() {
		r.Track(ts.New(ts.Mid, 1, 1.0, obs, 3))
	})
}

func TestReturnSaveLoadRoundTrip(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "returns.gob")
	r := NewReturn(filename)

	episode([]float64{1, 0, 0.5}, ts.TerminalStateReached, r)
	r.Save()

	assert.Equal(t, []float64{1.5}, LoadFloats(filename))
}

func TestEpisodeLength(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "lengths.gob")
	e := NewEpisodeLength(filename)

	episode([]float64{0, 0, 0}, ts.TerminalStateReached, e)
	episode([]float64{0}, ts.Timeout, e)

	assert.Equal(t, []int{3, 1}, e.Lengths())

	e.Save()
	assert.Equal(t, []int{3, 1}, LoadInts(filename))
}

func TestStatsSummary(t *testing.T) {
	s := NewStats()

	// A success: terminal state with a positive final reward
	episode([]float64{0, 0, 1}, ts.TerminalStateReached, s)

	// A failure: cut off at the step limit
	episode([]float64{0}, ts.Timeout, s)

	// A failure: terminal state with no reward (e.g. falling into a
	// hole)
	episode([]float64{0, 0}, ts.TerminalStateReached, s)

	summary := s.Summary()
	assert.Equal(t, 3, summary.Episodes)
	assert.InDelta(t, 1.0/3.0, summary.SuccessRate, 1e-12)
	assert.InDelta(t, 1.0/3.0, summary.AvgReturn, 1e-12)
	assert.InDelta(t, 2.0, summary.AvgSteps, 1e-12)
}

func TestStatsTerminalStateCriterion(t *testing.T) {
	s := NewStatsWith(TerminalState)

	// A cost-to-goal episode: -1 per step, 0 on the step that reaches
	// the goal. A success even though the terminal reward is not
	// positive.
	episode([]float64{-1, -1, 0}, ts.TerminalStateReached, s)

	// Cut off at the step limit: not a success
	episode([]float64{-1, -1}, ts.Timeout, s)

	summary := s.Summary()
	assert.Equal(t, 2, summary.Episodes)
	assert.InDelta(t, 0.5, summary.SuccessRate, 1e-12)

	// The default criterion counts neither episode
	d := NewStats()
	episode([]float64{-1, -1, 0}, ts.TerminalStateReached, d)
	episode([]float64{-1, -1}, ts.Timeout, d)
	assert.Zero(t, d.Summary().SuccessRate)
}

func TestStatsSummaryWithNoEpisodes(t *testing.T) {
	s := NewStats()
	assert.Equal(t, Summary{}, s.Summary())
}
