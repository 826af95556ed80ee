package preprocess

import (
	"github.com/cardiolab/ecgpipe/algorithms/common"
	"github.com/cardiolab/ecgpipe/ecg"
)

// Method selects an amplitude normalization scheme
type Method string

const (
	// ZScore centers on the mean and scales by the standard deviation
	ZScore Method = "zscore"

	// MinMax rescales into [0, 1]
	MinMax Method = "minmax"

	// Robust centers on the median and scales by the median absolute
	// deviation, insensitive to outlier beats
	Robust Method = "robust"
)

// Normalize rescales every channel independently with the given method.
// Degenerate channels never fail: a constant channel is centered but not
// divided under zscore/robust and returned unchanged under minmax.
func Normalize(sig *ecg.Signal, method Method) (*ecg.Signal, error) {
	switch method {
	case ZScore, MinMax, Robust:
	default:
		return nil, ecg.Configf("unsupported normalization method %q", method)
	}

	normalized := make([][]float64, sig.Channels())
	for ch := 0; ch < sig.Channels(); ch++ {
		normalized[ch] = normalizeChannel(sig.Channel(ch), method)
	}

	return ecg.NewSignalFromChannels(normalized)
}

func normalizeChannel(data []float64, method Method) []float64 {
	out := make([]float64, len(data))

	switch method {
	case ZScore:
		mean := common.Mean(data)
		std, degenerate := common.Guard(common.StandardDeviation(data))
		for i, v := range data {
			if degenerate {
				out[i] = v - mean
			} else {
				out[i] = (v - mean) / std
			}
		}

	case MinMax:
		lo := common.Min(data)
		span, degenerate := common.Guard(common.Max(data) - lo)
		if degenerate {
			copy(out, data)
			break
		}
		for i, v := range data {
			out[i] = (v - lo) / span
		}

	case Robust:
		median := common.Median(data)
		mad, degenerate := common.Guard(common.MAD(data))
		for i, v := range data {
			if degenerate {
				out[i] = v - median
			} else {
				out[i] = (v - median) / mad
			}
		}
	}

	return out
}
