package stats

import (
	"math"

	"github.com/cardiolab/ecgpipe/algorithms/common"
)

// DefaultEntropyBins is the histogram resolution for amplitude entropy
const DefaultEntropyBins = 100

// ShannonEntropy measures the unpredictability of the amplitude
// distribution in bits. The amplitude histogram is normalized to a
// probability distribution with a small floor added to every bucket so
// log(0) never occurs.
//
// H(X) = -sum p(x) * log2(p(x))
//
// A signal concentrated in one bucket scores near 0 bits; one spread
// uniformly over all buckets scores near log2(bins) bits.
func ShannonEntropy(data []float64, bins int) float64 {
	if len(data) == 0 || bins <= 0 {
		return 0.0
	}

	histogram := amplitudeHistogram(data, bins)

	total := 0.0
	for _, count := range histogram {
		total += count
	}

	entropy := 0.0
	for _, count := range histogram {
		p := count/total + common.Epsilon
		entropy -= p * math.Log2(p)
	}
	return entropy
}

// amplitudeHistogram counts samples into equal-width buckets spanning the
// amplitude range. A constant signal collapses into the first bucket.
func amplitudeHistogram(data []float64, bins int) []float64 {
	lo := common.Min(data)
	hi := common.Max(data)

	histogram := make([]float64, bins)

	width, degenerate := common.Guard((hi - lo) / float64(bins))
	if degenerate {
		histogram[0] = float64(len(data))
		return histogram
	}

	for _, v := range data {
		idx := int((v - lo) / width)
		if idx >= bins {
			idx = bins - 1
		}
		if idx < 0 {
			idx = 0
		}
		histogram[idx]++
	}

	return histogram
}
