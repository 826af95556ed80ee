package spectral

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sine(freq, sampleRate float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Sin(2 * math.Pi * freq * float64(i) / sampleRate)
	}
	return out
}

func TestComputeBinLayout(t *testing.T) {
	s := Compute(sine(5.0, 100.0, 1000), 100.0)

	require.Len(t, s.Magnitudes, 500)
	require.Len(t, s.Frequencies, 500)
	assert.Equal(t, 0.0, s.Frequencies[0])
	assert.InDelta(t, 0.1, s.Frequencies[1], 1e-12) // fs/N = 100/1000
	assert.InDelta(t, 49.9, s.Frequencies[499], 1e-9)
}

func TestDominantFrequencyOfPureSine(t *testing.T) {
	// 5 Hz sine over 10 s at 100 Hz: bin width 0.1 Hz, expect the global
	// maximum exactly at 5.0
	s := Compute(sine(5.0, 100.0, 1000), 100.0)
	assert.InDelta(t, 5.0, DominantFrequency(s), 0.1)
}

func TestCentroidOfPureSine(t *testing.T) {
	s := Compute(sine(5.0, 100.0, 1000), 100.0)
	// Leakage spreads a little energy across neighbouring bins, so allow
	// a modest tolerance around the true frequency
	assert.InDelta(t, 5.0, Centroid(s), 0.5)
}

func TestBandwidthOfPureSineIsNarrow(t *testing.T) {
	s := Compute(sine(5.0, 100.0, 1000), 100.0)
	assert.Less(t, Bandwidth(s), 2.0)
}

func TestRolloffOfPureSine(t *testing.T) {
	s := Compute(sine(5.0, 100.0, 1000), 100.0)
	assert.InDelta(t, 5.0, Rolloff(s, DefaultRolloffThreshold), 0.5)
}

func TestSilentSpectrumDegradesToZero(t *testing.T) {
	s := Compute(make([]float64, 256), 100.0)

	assert.Equal(t, 0.0, Centroid(s))
	assert.Equal(t, 0.0, Bandwidth(s))
	assert.Equal(t, 0.0, Rolloff(s, DefaultRolloffThreshold))
	assert.Equal(t, 0.0, Flux(s))
	assert.Equal(t, 0.0, DominantFrequency(s))
	assert.Equal(t, 0.0, BandEnergy(s, DefaultBandLow, DefaultBandHigh))
}

func TestBandEnergyRespectsLimits(t *testing.T) {
	inBand := Compute(sine(5.0, 100.0, 1000), 100.0)
	outOfBand := Compute(sine(48.0, 100.0, 1000), 100.0)

	assert.Greater(t, BandEnergy(inBand, 0.5, 45.0), 0.0)
	// A 48 Hz tone carries almost nothing inside [0.5, 45]
	assert.Less(t,
		BandEnergy(outOfBand, 0.5, 45.0),
		0.01*BandEnergy(inBand, 0.5, 45.0))
}

func TestFluxMeasuresBinUnevenness(t *testing.T) {
	peaked := Compute(sine(5.0, 100.0, 1000), 100.0)
	assert.Greater(t, Flux(peaked), 0.0)
}

func TestComputeEmptyInput(t *testing.T) {
	s := Compute(nil, 100.0)
	assert.Empty(t, s.Magnitudes)
	assert.Equal(t, 0.0, s.TotalMagnitude())
	assert.Equal(t, 0.0, s.MeanMagnitude())
}
