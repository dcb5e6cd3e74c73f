package floatutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r1"
)

func TestClip(t *testing.T) {
	assert.Equal(t, 1.0, Clip(2.0, -1, 1))
	assert.Equal(t, -1.0, Clip(-2.0, -1, 1))
	assert.Equal(t, 0.5, Clip(0.5, -1, 1))

	assert.Equal(t, 1.0, ClipInterval(2.0, r1.Interval{Min: -1, Max: 1}))
}

func TestMaxSlice(t *testing.T) {
	max, indices := MaxSlice([]float64{1, 3, 2, 3})
	assert.Equal(t, 3.0, max)
	assert.Equal(t, []int{1, 3}, indices)

	max, indices = MaxSlice([]float64{5, 3, 2})
	assert.Equal(t, 5.0, max)
	assert.Equal(t, []int{0}, indices)
}

func TestMinMax(t *testing.T) {
	assert.Equal(t, -1.0, Min(3, -1, 2))
	assert.Equal(t, 3.0, Max(3, -1, 2))
}
