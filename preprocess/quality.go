package preprocess

import (
	"math"

	"github.com/cardiolab/ecgpipe/algorithms/common"
	"github.com/cardiolab/ecgpipe/ecg"
)

// SaturationLevel is the fraction of peak amplitude at or above which a
// sample counts as saturated
const SaturationLevel = 0.95

// AssessQuality computes per-channel advisory quality metrics. The report
// annotates processing; it never blocks it. Degenerate channels (constant,
// silent) report 0.0 for the affected metrics.
func AssessQuality(sig *ecg.Signal, sampleRate float64) ecg.QualityReport {
	report := make(ecg.QualityReport, sig.Channels())

	for ch := 0; ch < sig.Channels(); ch++ {
		data := sig.Channel(ch)
		report[ch] = ecg.ChannelQuality{
			SNREstimate:        snrEstimate(data),
			AmplitudeMax:       amplitudeMax(data),
			SaturationFraction: saturationFraction(data),
			ZeroCrossingRate:   zeroCrossingRate(data),
			RMS:                common.RMS(data),
		}
	}

	return report
}

// snrEstimate compares overall variability against sample-to-sample
// difference variability:
//
//	snr = 20*log10(std(x) / (std(diff(x)) + epsilon))
//
// A smooth dominant waveform changes slowly relative to its spread, so
// noisy channels score lower. A constant channel scores 0.
func snrEstimate(data []float64) float64 {
	std, degenerate := common.Guard(common.StandardDeviation(data))
	if degenerate {
		return 0.0
	}

	diffStd := common.StandardDeviation(common.FirstDifference(data))
	return 20.0 * math.Log10(std/(diffStd+common.Epsilon))
}

func amplitudeMax(data []float64) float64 {
	peak := 0.0
	for _, v := range data {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}
	return peak
}

// saturationFraction is the fraction of samples at or above
// SaturationLevel of the channel's peak amplitude; 0 for a silent channel
func saturationFraction(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}

	peak, degenerate := common.Guard(amplitudeMax(data))
	if degenerate {
		return 0.0
	}

	saturated := 0
	for _, v := range data {
		if math.Abs(v) >= SaturationLevel*peak {
			saturated++
		}
	}
	return float64(saturated) / float64(len(data))
}

// zeroCrossingRate is the fraction of sample transitions that change sign
func zeroCrossingRate(data []float64) float64 {
	if len(data) < 2 {
		return 0.0
	}

	crossings := 0
	for i := 1; i < len(data); i++ {
		if (data[i-1] >= 0 && data[i] < 0) || (data[i-1] < 0 && data[i] >= 0) {
			crossings++
		}
	}
	return float64(crossings) / float64(len(data)-1)
}
