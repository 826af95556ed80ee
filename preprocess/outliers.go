package preprocess

import (
	"math"

	"github.com/cardiolab/ecgpipe/algorithms/common"
	"github.com/cardiolab/ecgpipe/ecg"
)

// DefaultOutlierThreshold is the z-score magnitude above which a sample is
// flagged
const DefaultOutlierThreshold = 3.0

// OutlierMask flags individual samples, indexed [channel][sample] to match
// the signal's canonical layout
type OutlierMask [][]bool

// FlaggedCount returns the number of flagged samples in one channel
func (m OutlierMask) FlaggedCount(ch int) int {
	count := 0
	for _, flagged := range m[ch] {
		if flagged {
			count++
		}
	}
	return count
}

// DetectOutliers flags samples whose z-score magnitude exceeds threshold,
// per channel. A constant channel has undefined z-scores, so none of its
// samples are flagged.
func DetectOutliers(sig *ecg.Signal, threshold float64) OutlierMask {
	mask := make(OutlierMask, sig.Channels())

	for ch := 0; ch < sig.Channels(); ch++ {
		data := sig.Channel(ch)
		mask[ch] = make([]bool, len(data))

		mean := common.Mean(data)
		std, degenerate := common.Guard(common.StandardDeviation(data))
		if degenerate {
			continue
		}

		for i, v := range data {
			if math.Abs((v-mean)/std) > threshold {
				mask[ch][i] = true
			}
		}
	}

	return mask
}
