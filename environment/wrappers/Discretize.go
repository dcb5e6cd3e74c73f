// Package wrappers provides wrappers for environments
package wrappers

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	env "github.com/gopherrl/tabular/environment"
	ts "github.com/gopherrl/tabular/timestep"
	"github.com/gopherrl/tabular/utils/matutils"
)

// Discretize wraps an environment with bounded continuous observations
// and emits one-hot observations over a uniform grid of bins. Each
// observation dimension i is cut into bins[i] equally sized bins
// between the wrapped environment's observation bounds, and the
// resulting grid cell is encoded as a one-hot vector of length
// prod(bins). Observations outside the bounds clip into the edge bins.
//
// Discretizing the observations turns an environment with continuous
// states, such as Mountain Car, into one a tabular agent can learn on.
//
// Discretize itself implements the environment.Environment interface
// and is therefore itself an environment.
type Discretize struct {
	env.Environment
	bins       []int
	minDims    mat.Vector
	binLengths []float64
	features   int
}

// NewDiscretize creates and returns a new Discretize environment,
// wrapping an existing environment. The bins argument determines how
// many bins each observation dimension is cut into and must have one
// entry per observation dimension. The wrapped environment is reset
// when wrapped, and the first timestep of the discretized environment
// is returned.
func NewDiscretize(e env.Environment, bins []int) (*Discretize,
	ts.TimeStep, error) {
	envSpec := e.ObservationSpec()

	if envSpec.Cardinality != env.Continuous {
		return nil, ts.TimeStep{}, fmt.Errorf("newDiscretize: wrapped " +
			"environment must have continuous observations")
	}
	if len(bins) != envSpec.LowerBound.Len() {
		return nil, ts.TimeStep{}, fmt.Errorf("newDiscretize: got %d bin "+
			"counts for %d observation dimensions", len(bins),
			envSpec.LowerBound.Len())
	}

	minDims := envSpec.LowerBound
	maxDims := envSpec.UpperBound

	features := 1
	binLengths := make([]float64, len(bins))
	for i := range bins {
		if bins[i] < 1 {
			return nil, ts.TimeStep{}, fmt.Errorf("newDiscretize: bin "+
				"count for dimension %d must be positive, got %d", i, bins[i])
		}

		binLengths[i] = (maxDims.AtVec(i) - minDims.AtVec(i)) /
			float64(bins[i])
		features *= bins[i]
	}

	d := &Discretize{
		Environment: e,
		bins:        bins,
		minDims:     minDims,
		binLengths:  binLengths,
		features:    features,
	}

	step := e.Reset()
	step.Observation = d.Encode(step.Observation)

	return d, step, nil
}

// Encode returns the one-hot encoding of a continuous observation
func (d *Discretize) Encode(v mat.Vector) *mat.VecDense {
	index := 0

	for i := 0; i < len(d.bins); i++ {
		tile := math.Floor((v.AtVec(i) - d.minDims.AtVec(i)) /
			d.binLengths[i])

		// Clip into the edge bins
		tile = math.Min(tile, float64(d.bins[i]-1))
		tile = math.Max(tile, 0)

		index = index*d.bins[i] + int(tile)
	}

	encoded := mat.NewVecDense(d.features, nil)
	encoded.SetVec(index, 1.0)
	return encoded
}

// Reset resets the environment to some starting state
func (d *Discretize) Reset() ts.TimeStep {
	step := d.Environment.Reset()
	step.Observation = d.Encode(step.Observation)
	return step
}

// Step takes one environmental step given action a and returns the
// next state as a timestep.TimeStep and a bool indicating whether or
// not the episode has ended
func (d *Discretize) Step(a mat.Vector) (ts.TimeStep, bool) {
	step, last := d.Environment.Step(a)
	step.Observation = d.Encode(step.Observation)
	return step, last
}

// ObservationSpec returns the observation specification of the
// environment
func (d *Discretize) ObservationSpec() env.Spec {
	shape := mat.NewVecDense(d.features, nil)
	lowerBound := mat.NewVecDense(d.features, nil)
	upperBound := matutils.VecOnes(d.features)

	return env.NewSpec(shape, env.Observation, lowerBound, upperBound,
		env.Discrete)
}

// Render draws the wrapped environment to the terminal if the wrapped
// environment supports rendering and is a no-op otherwise
func (d *Discretize) Render() {
	if r, ok := d.Environment.(interface{ Render() }); ok {
		r.Render()
	}
}

// String returns a string representation of the Discretize environment
func (d *Discretize) String() string {
	return fmt.Sprintf("Discretize: %v", d.Environment)
}
