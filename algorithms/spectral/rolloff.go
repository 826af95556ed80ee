package spectral

// DefaultRolloffThreshold is the cumulative-energy fraction used for the
// rolloff frequency
const DefaultRolloffThreshold = 0.85

// Rolloff returns the lowest frequency at which cumulative spectral energy
// reaches the given fraction of total energy. Returns 0 for a silent
// spectrum.
func Rolloff(s *Spectrum, threshold float64) float64 {
	totalEnergy := s.TotalEnergy()
	if totalEnergy == 0 {
		return 0.0
	}

	targetEnergy := threshold * totalEnergy
	cumulativeEnergy := 0.0

	for i, mag := range s.Magnitudes {
		cumulativeEnergy += mag * mag
		if cumulativeEnergy >= targetEnergy {
			return s.Frequencies[i]
		}
	}

	if len(s.Frequencies) > 0 {
		return s.Frequencies[len(s.Frequencies)-1]
	}
	return 0.0
}
