package stats

import (
	"sort"

	"github.com/cardiolab/ecgpipe/algorithms/common"
)

// Peak detection policy tuned for cardiac-cycle-scale periodicity: the
// separation floor keeps one detection per physiological cycle and the
// height floor rejects sub-threshold noise peaks.
const (
	// MinPeakDistance is the minimum horizontal separation in samples
	MinPeakDistance = 50

	// PeakHeightFactor scales the channel standard deviation into the
	// minimum peak height
	PeakHeightFactor = 0.5
)

// DetectPeaks finds local maxima at least MinPeakDistance samples apart and
// at least PeakHeightFactor*std(data) high. Returns peak sample indices in
// ascending order. When neighbouring candidates conflict, the taller one
// wins.
func DetectPeaks(data []float64) []int {
	if len(data) < 3 {
		return []int{}
	}

	minHeight := PeakHeightFactor * common.StandardDeviation(data)

	var candidates []int
	for i := 1; i < len(data)-1; i++ {
		if data[i] > data[i-1] && data[i] > data[i+1] && data[i] >= minHeight {
			candidates = append(candidates, i)
		}
	}

	// Resolve distance conflicts tallest-first
	sort.Slice(candidates, func(a, b int) bool {
		return data[candidates[a]] > data[candidates[b]]
	})

	suppressed := make(map[int]bool)
	var kept []int
	for _, idx := range candidates {
		if suppressed[idx] {
			continue
		}
		kept = append(kept, idx)
		for _, other := range candidates {
			if other != idx && abs(other-idx) < MinPeakDistance {
				suppressed[other] = true
			}
		}
	}

	sort.Ints(kept)
	if kept == nil {
		return []int{}
	}
	return kept
}

// CountPeaks returns the number of detected peaks
func CountPeaks(data []float64) int {
	return len(DetectPeaks(data))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
