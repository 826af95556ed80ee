package features

import (
	"github.com/cardiolab/ecgpipe/algorithms/common"
	"github.com/cardiolab/ecgpipe/algorithms/stats"
	"github.com/cardiolab/ecgpipe/ecg"
)

// Time extracts the 12 time-domain descriptors from a single-channel
// signal. Multi-channel input is a shape error; the multi-channel pipeline
// selects channels before calling in here.
func Time(sig *ecg.Signal) (*ecg.FeatureVector, error) {
	if sig.Channels() != 1 {
		return nil, ecg.Shapef("time-domain extractor takes a single channel, got %d", sig.Channels())
	}
	return timeFromSamples(sig.Channel(0)), nil
}

// timeFromSamples computes the descriptors over one channel's samples.
// Degenerate inputs produce defined 0.0 values, never missing keys.
func timeFromSamples(data []float64) *ecg.FeatureVector {
	minVal := common.Min(data)
	maxVal := common.Max(data)

	v := ecg.NewFeatureVector()
	v.Set("mean", common.Mean(data))
	v.Set("std", common.StandardDeviation(data))
	v.Set("variance", common.Variance(data))
	v.Set("min", minVal)
	v.Set("max", maxVal)
	v.Set("range", maxVal-minVal)
	v.Set("rms", common.RMS(data))
	v.Set("skewness", common.Skewness(data))
	v.Set("kurtosis", common.Kurtosis(data))
	v.Set("iqr", common.Percentile(data, 0.75)-common.Percentile(data, 0.25))
	v.Set("zero_crossings", float64(countSignChanges(data)))
	v.Set("num_peaks", float64(stats.CountPeaks(data)))
	return v
}

// countSignChanges counts sample transitions that change sign
func countSignChanges(data []float64) int {
	crossings := 0
	for i := 1; i < len(data); i++ {
		if (data[i-1] >= 0 && data[i] < 0) || (data[i-1] < 0 && data[i] >= 0) {
			crossings++
		}
	}
	return crossings
}
