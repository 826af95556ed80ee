package spectral

import (
	"math"

	"github.com/cardiolab/ecgpipe/algorithms/common"
)

// Centroid computes the spectral centroid, the magnitude-weighted mean
// frequency. A silent spectrum has centroid 0.
func Centroid(s *Spectrum) float64 {
	numerator := 0.0
	for i, mag := range s.Magnitudes {
		numerator += s.Frequencies[i] * mag
	}

	denom, degenerate := common.Guard(s.TotalMagnitude())
	if degenerate {
		return 0.0
	}
	return numerator / denom
}

// Bandwidth computes the magnitude-weighted standard deviation of
// frequency about the centroid
func Bandwidth(s *Spectrum) float64 {
	centroid := Centroid(s)

	numerator := 0.0
	for i, mag := range s.Magnitudes {
		diff := s.Frequencies[i] - centroid
		numerator += diff * diff * mag
	}

	denom, degenerate := common.Guard(s.TotalMagnitude())
	if degenerate {
		return 0.0
	}
	return math.Sqrt(numerator / denom)
}
