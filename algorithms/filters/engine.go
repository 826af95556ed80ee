package filters

import (
	"github.com/cardiolab/ecgpipe/ecg"
)

// DefaultOrder is the design order used when callers do not override it
const DefaultOrder = 4

// DefaultBaselineCutoff is the highpass corner for baseline drift removal,
// below the lowest clinically relevant ECG content
const DefaultBaselineCutoff = 0.5

// Apply designs a Butterworth filter and runs it zero-phase over every
// channel independently. The input signal is never modified; a new Signal
// of identical shape is returned.
func Apply(sig *ecg.Signal, sampleRate float64, family Family, cutoffs []float64, order int) (*ecg.Signal, error) {
	bw, err := NewButterworth(sampleRate, family, cutoffs, order)
	if err != nil {
		return nil, err
	}

	filtered := make([][]float64, sig.Channels())
	for ch := 0; ch < sig.Channels(); ch++ {
		filtered[ch] = bw.FiltFilt(sig.Channel(ch))
	}

	return ecg.NewSignalFromChannels(filtered)
}

// RemoveBaselineDrift strips very-low-frequency wander with a zero-phase
// highpass at the given cutoff (0.5 Hz when cutoff is 0)
func RemoveBaselineDrift(sig *ecg.Signal, sampleRate, cutoff float64) (*ecg.Signal, error) {
	if cutoff == 0 {
		cutoff = DefaultBaselineCutoff
	}
	return Apply(sig, sampleRate, Highpass, []float64{cutoff}, DefaultOrder)
}
