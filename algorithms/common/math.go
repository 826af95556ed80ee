package common

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Basic statistical functions shared across the pipeline, built on gonum.
// Population (n-denominator) moments are used throughout: that is what the
// clinical feature definitions expect, and constant channels then degrade
// to exact zeros instead of NaN.

// Mean calculates the arithmetic mean of a slice
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return stat.Mean(data, nil)
}

// Variance calculates the population variance
func Variance(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return stat.MomentAbout(2, data, stat.Mean(data, nil), nil)
}

// StandardDeviation calculates the population standard deviation
func StandardDeviation(data []float64) float64 {
	return math.Sqrt(Variance(data))
}

// Min returns the smallest value, 0 for empty input
func Min(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return floats.Min(data)
}

// Max returns the largest value, 0 for empty input
func Max(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return floats.Max(data)
}

// RMS calculates the root mean square
func RMS(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}

	sumSquares := 0.0
	for _, v := range data {
		sumSquares += v * v
	}
	return math.Sqrt(sumSquares / float64(len(data)))
}

// Percentile calculates the p-th percentile (p between 0 and 1) with
// linear interpolation between closest ranks
func Percentile(data []float64, p float64) float64 {
	if len(data) == 0 || p < 0 || p > 1 {
		return 0.0
	}

	sorted := make([]float64, len(data))
	copy(sorted, data)
	sort.Float64s(sorted)

	return stat.Quantile(p, stat.LinInterp, sorted, nil)
}

// Median returns the middle value, averaging the two central values for
// even-length input
func Median(data []float64) float64 {
	n := len(data)
	if n == 0 {
		return 0.0
	}

	sorted := make([]float64, n)
	copy(sorted, data)
	sort.Float64s(sorted)

	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2.0
	}
	return sorted[n/2]
}

// MAD returns the median absolute deviation about the median
func MAD(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}

	median := Median(data)
	deviations := make([]float64, len(data))
	for i, v := range data {
		deviations[i] = math.Abs(v - median)
	}
	return Median(deviations)
}

// Skewness calculates the population third standardized moment
func Skewness(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}

	mean := stat.Mean(data, nil)
	variance := stat.MomentAbout(2, data, mean, nil)
	std := math.Sqrt(variance)
	if denom, degenerate := Guard(std * std * std); !degenerate {
		return stat.MomentAbout(3, data, mean, nil) / denom
	}
	return 0.0
}

// Kurtosis calculates the population excess kurtosis
func Kurtosis(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}

	mean := stat.Mean(data, nil)
	variance := stat.MomentAbout(2, data, mean, nil)
	if denom, degenerate := Guard(variance * variance); !degenerate {
		return stat.MomentAbout(4, data, mean, nil)/denom - 3.0
	}
	return 0.0
}

// FirstDifference returns the sample-to-sample difference sequence
func FirstDifference(data []float64) []float64 {
	if len(data) < 2 {
		return []float64{}
	}

	diff := make([]float64, len(data)-1)
	for i := 1; i < len(data); i++ {
		diff[i-1] = data[i] - data[i-1]
	}
	return diff
}
