package features

import (
	"github.com/cardiolab/ecgpipe/algorithms/common"
	"github.com/cardiolab/ecgpipe/algorithms/spectral"
	"github.com/cardiolab/ecgpipe/algorithms/windowing"
	"github.com/cardiolab/ecgpipe/ecg"
)

// FrequencyOptions controls the spectral descriptor computation
type FrequencyOptions struct {
	ApplyWindow      bool           `json:"apply_window"`
	WindowKind       windowing.Kind `json:"window_kind"`
	RolloffThreshold float64        `json:"rolloff_threshold"`
	BandLow          float64        `json:"band_low"`
	BandHigh         float64        `json:"band_high"`
}

// DefaultFrequencyOptions returns the standard spectral settings for
// cardiac recordings
func DefaultFrequencyOptions() FrequencyOptions {
	return FrequencyOptions{
		ApplyWindow:      true,
		WindowKind:       windowing.KindHann,
		RolloffThreshold: spectral.DefaultRolloffThreshold,
		BandLow:          spectral.DefaultBandLow,
		BandHigh:         spectral.DefaultBandHigh,
	}
}

// Frequency extracts the 8 spectral descriptors from a single-channel
// signal. The signal is tapered before the transform when the options ask
// for it, reducing spectral leakage; the tapered copy is local to this
// call. Signals shorter than 2 samples have no spectrum to analyze.
func Frequency(sig *ecg.Signal, sampleRate float64, opts FrequencyOptions) (*ecg.FeatureVector, error) {
	if sig.Channels() != 1 {
		return nil, ecg.Shapef("frequency-domain extractor takes a single channel, got %d", sig.Channels())
	}
	if sig.Samples() < 2 {
		return nil, ecg.Configf("frequency analysis needs at least 2 samples, got %d", sig.Samples())
	}

	data := sig.Channel(0)

	if opts.ApplyWindow {
		windowed, err := windowing.ApplyToChannel(data, opts.WindowKind)
		if err != nil {
			return nil, err
		}
		data = windowed
	}

	s := spectral.Compute(data, sampleRate)

	v := ecg.NewFeatureVector()
	v.Set("spectral_centroid", spectral.Centroid(s))
	v.Set("spectral_bandwidth", spectral.Bandwidth(s))
	v.Set("spectral_rolloff", spectral.Rolloff(s, opts.RolloffThreshold))
	v.Set("spectral_flux", spectral.Flux(s))
	v.Set("dominant_frequency", spectral.DominantFrequency(s))
	v.Set("fft_mean", s.MeanMagnitude())
	v.Set("fft_std", common.StandardDeviation(s.Magnitudes))
	v.Set("band_energy", spectral.BandEnergy(s, opts.BandLow, opts.BandHigh))
	return v, nil
}
