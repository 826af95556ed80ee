package spectral

// Flux sums the squared differences between consecutive magnitude bins of a
// single spectrum, a measure of how unevenly energy is distributed across
// frequency
func Flux(s *Spectrum) float64 {
	if len(s.Magnitudes) < 2 {
		return 0.0
	}

	sum := 0.0
	for i := 1; i < len(s.Magnitudes); i++ {
		diff := s.Magnitudes[i] - s.Magnitudes[i-1]
		sum += diff * diff
	}
	return sum
}

// DominantFrequency returns the frequency of the global magnitude maximum
func DominantFrequency(s *Spectrum) float64 {
	if len(s.Magnitudes) == 0 {
		return 0.0
	}

	maxIdx := 0
	for i, mag := range s.Magnitudes {
		if mag > s.Magnitudes[maxIdx] {
			maxIdx = i
		}
	}
	return s.Frequencies[maxIdx]
}
