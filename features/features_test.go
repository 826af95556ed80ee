package features

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardiolab/ecgpipe/ecg"
)

var timeKeys = []string{
	"mean", "std", "variance", "min", "max", "range", "rms",
	"skewness", "kurtosis", "iqr", "zero_crossings", "num_peaks",
}

var frequencyKeys = []string{
	"spectral_centroid", "spectral_bandwidth", "spectral_rolloff",
	"spectral_flux", "dominant_frequency", "fft_mean", "fft_std",
	"band_energy",
}

func sine(freq, sampleRate float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Sin(2 * math.Pi * freq * float64(i) / sampleRate)
	}
	return out
}

func TestTimeFeaturesOnSine(t *testing.T) {
	// 1 Hz sine, 100 Hz, 10 s: 10 crests, 20 sign changes, rms 1/sqrt(2)
	sig := ecg.NewSingleChannel(sine(1.0, 100.0, 1000))

	v, err := Time(sig)
	require.NoError(t, err)
	assert.Equal(t, timeKeys, v.Names())

	mean, _ := v.Get("mean")
	assert.InDelta(t, 0.0, mean, 1e-9)

	rms, _ := v.Get("rms")
	assert.InDelta(t, 1.0/math.Sqrt2, rms, 0.01)

	peaks, _ := v.Get("num_peaks")
	assert.Equal(t, 10.0, peaks)

	crossings, _ := v.Get("zero_crossings")
	assert.InDelta(t, 20.0, crossings, 1.0)

	rng, _ := v.Get("range")
	assert.InDelta(t, 2.0, rng, 0.01)

	skew, _ := v.Get("skewness")
	assert.InDelta(t, 0.0, skew, 0.01)
}

func TestTimeFeaturesOnConstantChannel(t *testing.T) {
	data := make([]float64, 500)
	for i := range data {
		data[i] = 3.0
	}

	v, err := Time(ecg.NewSingleChannel(data))
	require.NoError(t, err)

	// Every key present, moments degrade to 0.0 rather than NaN
	for _, key := range []string{"std", "variance", "skewness", "kurtosis", "range", "iqr"} {
		val, ok := v.Get(key)
		require.True(t, ok, key)
		assert.Equal(t, 0.0, val, key)
	}
	mean, _ := v.Get("mean")
	assert.Equal(t, 3.0, mean)
}

func TestTimeRejectsMultiChannel(t *testing.T) {
	sig, err := ecg.NewSignalFromChannels([][]float64{
		sine(1.0, 100.0, 200),
		sine(2.0, 100.0, 200),
	})
	require.NoError(t, err)

	_, err = Time(sig)
	require.Error(t, err)

	var shapeErr *ecg.ShapeError
	assert.True(t, errors.As(err, &shapeErr))
}

func TestFrequencyFeaturesOnSine(t *testing.T) {
	// 1 Hz tone over 10 s: bin width 0.1 Hz puts the dominant bin at 1.0
	sig := ecg.NewSingleChannel(sine(1.0, 100.0, 1000))

	v, err := Frequency(sig, 100.0, DefaultFrequencyOptions())
	require.NoError(t, err)
	assert.Equal(t, frequencyKeys, v.Names())

	dominant, _ := v.Get("dominant_frequency")
	assert.InDelta(t, 1.0, dominant, 0.1)

	centroid, _ := v.Get("spectral_centroid")
	assert.InDelta(t, 1.0, centroid, 0.5)

	band, _ := v.Get("band_energy")
	assert.Greater(t, band, 0.0)
}

func TestFrequencyRejectsTooShortSignal(t *testing.T) {
	_, err := Frequency(ecg.NewSingleChannel([]float64{1.0}), 100.0, DefaultFrequencyOptions())
	require.Error(t, err)

	var cfgErr *ecg.ConfigurationError
	assert.True(t, errors.As(err, &cfgErr))
}

func TestFrequencyWindowingDoesNotMutateInput(t *testing.T) {
	original := sine(5.0, 100.0, 512)
	sig := ecg.NewSingleChannel(original)

	_, err := Frequency(sig, 100.0, DefaultFrequencyOptions())
	require.NoError(t, err)

	assert.Equal(t, original, sig.Channel(0))
}

func TestExtractChannelFullVector(t *testing.T) {
	sig := ecg.NewSingleChannel(sine(1.0, 100.0, 1000))
	p := NewPipeline(nil)

	v, err := p.ExtractChannel(sig, 0, 100.0)
	require.NoError(t, err)
	require.Equal(t, TotalFeatures, v.Len())

	// Fixed key order: time domain, then frequency domain, then entropy
	want := append(append([]string{}, timeKeys...), frequencyKeys...)
	want = append(want, "shannon_entropy")
	assert.Equal(t, want, v.Names())
}

func TestExtractChannelZeroSignal(t *testing.T) {
	// An all-zero channel still yields a complete vector of defined values
	sig := ecg.NewSingleChannel(make([]float64, 1000))
	p := NewPipeline(nil)

	v, err := p.ExtractChannel(sig, 0, 100.0)
	require.NoError(t, err)
	require.Equal(t, TotalFeatures, v.Len())

	for _, name := range v.Names() {
		val, _ := v.Get(name)
		assert.False(t, math.IsNaN(val), "%s is NaN", name)
		assert.False(t, math.IsInf(val, 0), "%s is Inf", name)
	}
}

func TestExtractChannelOutOfRange(t *testing.T) {
	sig := ecg.NewSingleChannel(sine(1.0, 100.0, 200))
	p := NewPipeline(nil)

	_, err := p.ExtractChannel(sig, 3, 100.0)
	require.Error(t, err)

	var cfgErr *ecg.ConfigurationError
	assert.True(t, errors.As(err, &cfgErr))
}

func TestExtractRecordMetadata(t *testing.T) {
	sig := ecg.NewSingleChannel(sine(1.0, 100.0, 1000))
	p := NewPipeline(nil)

	rec, err := p.ExtractRecord(sig, ecg.SamplingMetadata{
		SampleRate: 100.0,
		RecordID:   42,
	}, 0)
	require.NoError(t, err)

	assert.Equal(t, 42, rec.RecordID)
	assert.Equal(t, 0, rec.Channel)
	assert.Equal(t, 100.0, rec.SampleRate)
	assert.Equal(t, 1000, rec.Samples)
	assert.Equal(t, 1, rec.Channels)
	assert.Regexp(t, `^\d{8}_\d{6}$`, rec.ExtractedAt)
	assert.Equal(t, TotalFeatures, rec.Features.Len())
}

func TestExtractAllIsolatesCorruptChannel(t *testing.T) {
	good := sine(1.0, 100.0, 1000)
	corrupt := sine(2.0, 100.0, 1000)
	corrupt[500] = math.NaN()
	alsoGood := sine(3.0, 100.0, 1000)

	sig, err := ecg.NewSignalFromChannels([][]float64{good, corrupt, alsoGood})
	require.NoError(t, err)

	p := NewPipeline(nil)
	results := p.ExtractAll(sig, ecg.SamplingMetadata{SampleRate: 100.0, RecordID: 9})
	require.Len(t, results, 3)

	assert.True(t, results[0].OK())
	assert.Equal(t, TotalFeatures, results[0].Features.Len())

	assert.False(t, results[1].OK())
	assert.Equal(t, 1, results[1].Channel)
	assert.Equal(t, 0, results[1].Features.Len(), "failed channel carries an empty vector")

	assert.True(t, results[2].OK())
	assert.Equal(t, TotalFeatures, results[2].Features.Len())
}

func TestExtractAllOrderedByChannel(t *testing.T) {
	channels := make([][]float64, 12)
	for ch := range channels {
		channels[ch] = sine(1.0+float64(ch), 500.0, 2000)
	}
	sig, err := ecg.NewSignalFromChannels(channels)
	require.NoError(t, err)

	cfg := DefaultConfig()
	cfg.Workers = 4
	p := NewPipeline(cfg)

	results := p.ExtractAll(sig, ecg.SamplingMetadata{SampleRate: 500.0, RecordID: 1})
	require.Len(t, results, 12)

	for ch, r := range results {
		assert.Equal(t, ch, r.Channel)
		assert.True(t, r.OK(), "channel %d", ch)
	}
}
