package spectral

// Clinical ECG band limits in Hz. Content below 0.5 Hz is baseline wander,
// content above 45 Hz is mains interference and muscle noise.
const (
	DefaultBandLow  = 0.5
	DefaultBandHigh = 45.0
)

// BandEnergy sums squared magnitudes over bins whose frequency lies inside
// [low, high]
func BandEnergy(s *Spectrum, low, high float64) float64 {
	energy := 0.0
	for i, mag := range s.Magnitudes {
		f := s.Frequencies[i]
		if f >= low && f <= high {
			energy += mag * mag
		}
	}
	return energy
}
