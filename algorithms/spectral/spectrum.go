package spectral

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// Spectrum is a one-sided magnitude spectrum with its frequency bins.
// Bin i sits at i*sampleRate/N where N is the original signal length; only
// non-negative frequencies are kept.
type Spectrum struct {
	Magnitudes  []float64
	Frequencies []float64
}

// Compute runs a discrete Fourier transform over the signal and returns the
// one-sided magnitude spectrum. go-dsp handles arbitrary (non-power-of-two)
// lengths.
func Compute(signal []float64, sampleRate float64) *Spectrum {
	n := len(signal)
	if n == 0 {
		return &Spectrum{Magnitudes: []float64{}, Frequencies: []float64{}}
	}

	coeffs := fft.FFTReal(signal)

	half := n / 2
	if half == 0 {
		half = 1
	}

	s := &Spectrum{
		Magnitudes:  make([]float64, half),
		Frequencies: make([]float64, half),
	}
	for i := 0; i < half; i++ {
		s.Magnitudes[i] = cmplx.Abs(coeffs[i])
		s.Frequencies[i] = float64(i) * sampleRate / float64(n)
	}

	return s
}

// TotalMagnitude sums all magnitude bins
func (s *Spectrum) TotalMagnitude() float64 {
	total := 0.0
	for _, mag := range s.Magnitudes {
		total += mag
	}
	return total
}

// TotalEnergy sums squared magnitudes over all bins
func (s *Spectrum) TotalEnergy() float64 {
	total := 0.0
	for _, mag := range s.Magnitudes {
		total += mag * mag
	}
	return total
}

// MeanMagnitude returns the average bin magnitude
func (s *Spectrum) MeanMagnitude() float64 {
	if len(s.Magnitudes) == 0 {
		return 0.0
	}
	return s.TotalMagnitude() / float64(len(s.Magnitudes))
}
