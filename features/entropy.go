package features

import (
	"github.com/cardiolab/ecgpipe/algorithms/stats"
	"github.com/cardiolab/ecgpipe/ecg"
)

// Entropy extracts the Shannon entropy of the amplitude distribution of a
// single-channel signal, in bits
func Entropy(sig *ecg.Signal, bins int) (*ecg.FeatureVector, error) {
	if sig.Channels() != 1 {
		return nil, ecg.Shapef("entropy extractor takes a single channel, got %d", sig.Channels())
	}
	if bins <= 0 {
		bins = stats.DefaultEntropyBins
	}

	v := ecg.NewFeatureVector()
	v.Set("shannon_entropy", stats.ShannonEntropy(sig.Channel(0), bins))
	return v, nil
}
