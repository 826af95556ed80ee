package common

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGuard(t *testing.T) {
	tests := []struct {
		name       string
		input      float64
		degenerate bool
	}{
		{"positive", 2.5, false},
		{"negative", -0.1, false},
		{"zero", 0.0, true},
		{"nan", math.NaN(), true},
		{"inf", math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			safe, degenerate := Guard(tt.input)
			assert.Equal(t, tt.degenerate, degenerate)
			if degenerate {
				assert.Equal(t, Epsilon, safe)
			} else {
				assert.Equal(t, tt.input, safe)
			}
		})
	}
}

func TestMomentsOnKnownData(t *testing.T) {
	data := []float64{2, 4, 4, 4, 5, 5, 7, 9}

	assert.InDelta(t, 5.0, Mean(data), 1e-12)
	assert.InDelta(t, 4.0, Variance(data), 1e-12) // population variance
	assert.InDelta(t, 2.0, StandardDeviation(data), 1e-12)
}

func TestMomentsDegenerateInputs(t *testing.T) {
	assert.Equal(t, 0.0, Mean(nil))
	assert.Equal(t, 0.0, Variance([]float64{}))
	assert.Equal(t, 0.0, Skewness([]float64{3, 3, 3}))
	assert.Equal(t, 0.0, Kurtosis([]float64{3, 3, 3}))
	assert.Equal(t, 0.0, MAD([]float64{5, 5, 5, 5}))
}

func TestSkewnessSign(t *testing.T) {
	rightTailed := []float64{1, 1, 1, 1, 2, 2, 3, 10}
	leftTailed := []float64{-10, -3, -2, -2, -1, -1, -1, -1}

	assert.Positive(t, Skewness(rightTailed))
	assert.Negative(t, Skewness(leftTailed))
}

func TestRMS(t *testing.T) {
	assert.InDelta(t, 2.0, RMS([]float64{2, -2, 2, -2}), 1e-12)
	assert.Equal(t, 0.0, RMS(nil))
}

func TestMedianAndMAD(t *testing.T) {
	data := []float64{1, 2, 3, 4, 100}
	assert.InDelta(t, 3.0, Median(data), 1e-12)
	// Deviations about 3: {2, 1, 0, 1, 97} -> median 1
	assert.InDelta(t, 1.0, MAD(data), 1e-12)
}

func TestFirstDifference(t *testing.T) {
	assert.Equal(t, []float64{1, 2, -3}, FirstDifference([]float64{0, 1, 3, 0}))
	assert.Empty(t, FirstDifference([]float64{5}))
}
