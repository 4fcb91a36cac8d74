package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMean(t *testing.T) {
	assert.InDelta(t, 3.0, Mean([]float64{1, 2, 3, 4, 5}), 1e-9)
	assert.InDelta(t, 2.5, Mean([]float64{2.5}), 1e-9)
	assert.Equal(t, 0.0, Mean(nil))
}

func TestVarianceAndStdDev(t *testing.T) {
	// Sample variance of {2, 4, 4, 4, 5, 5, 7, 9} is 32/7
	values := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	assert.InDelta(t, 32.0/7.0, Variance(values), 1e-9)
	assert.InDelta(t, 2.138089935, StdDev(values), 1e-6)

	assert.Equal(t, 0.0, Variance([]float64{42}))
	assert.Equal(t, 0.0, Variance(nil))
}

func TestMedian(t *testing.T) {
	assert.InDelta(t, 3.0, Median([]float64{5, 1, 3}), 1e-9)
	assert.InDelta(t, 2.5, Median([]float64{4, 1, 2, 3}), 1e-9)
	assert.Equal(t, 0.0, Median(nil))

	// Input must stay unsorted
	values := []float64{3, 1, 2}
	Median(values)
	assert.Equal(t, []float64{3, 1, 2}, values)
}

func TestMinMaxSum(t *testing.T) {
	values := []float64{4, -1, 7, 2}
	assert.Equal(t, -1.0, Min(values))
	assert.Equal(t, 7.0, Max(values))
	assert.Equal(t, 12.0, Sum(values))
	assert.Equal(t, 0.0, Min(nil))
	assert.Equal(t, 0.0, Max(nil))
	assert.Equal(t, 0.0, Sum(nil))
}

func TestQuantile(t *testing.T) {
	values := []float64{10, 20, 30, 40}

	assert.InDelta(t, 10.0, Quantile(values, 0), 1e-9)
	assert.InDelta(t, 40.0, Quantile(values, 1), 1e-9)
	assert.InDelta(t, 25.0, Quantile(values, 0.5), 1e-9)
	assert.InDelta(t, 17.5, Quantile(values, 0.25), 1e-9)
	assert.InDelta(t, 32.5, Quantile(values, 0.75), 1e-9)

	// Out-of-range q clamps
	assert.InDelta(t, 10.0, Quantile(values, -0.5), 1e-9)
	assert.InDelta(t, 40.0, Quantile(values, 2), 1e-9)
	assert.Equal(t, 0.0, Quantile(nil, 0.5))
}

func TestNormalize(t *testing.T) {
	got := Normalize([]float64{0, 5, 10})
	assert.InDelta(t, 0.0, got[0], 1e-6)
	assert.InDelta(t, 0.5, got[1], 1e-6)
	assert.InDelta(t, 1.0, got[2], 1e-6)

	// Constant input maps to zeros instead of dividing by zero
	flat := Normalize([]float64{3, 3, 3})
	for _, v := range flat {
		assert.InDelta(t, 0.0, v, 1e-6)
	}

	assert.Nil(t, Normalize(nil))
}

func TestPercentShare(t *testing.T) {
	got := PercentShare([]float64{1, 3})
	assert.InDelta(t, 25.0, got[0], 1e-9)
	assert.InDelta(t, 75.0, got[1], 1e-9)

	zero := PercentShare([]float64{0, 0})
	assert.Equal(t, []float64{0, 0}, zero)
}
