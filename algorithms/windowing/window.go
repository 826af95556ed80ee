package windowing

import (
	"github.com/cardiolab/ecgpipe/ecg"
)

// Kind identifies a supported window function
type Kind string

const (
	KindHann     Kind = "hann"
	KindHamming  Kind = "hamming"
	KindBlackman Kind = "blackman"
	KindKaiser   Kind = "kaiser"
)

// Window is the common surface of the tapering window generators
type Window interface {
	Coefficients() []float64
	Size() int
	Type() Kind
}

// New creates a window of the given kind and size. Unsupported kinds are a
// configuration error, not silently replaced.
func New(kind Kind, size int) (Window, error) {
	if size <= 0 {
		return nil, ecg.Configf("window size must be positive, got %d", size)
	}

	switch kind {
	case KindHann:
		return NewHann(size), nil
	case KindHamming:
		return NewHamming(size), nil
	case KindBlackman:
		return NewBlackman(size), nil
	case KindKaiser:
		return NewKaiser(size, KaiserBeta), nil
	default:
		return nil, ecg.Configf("unsupported window kind %q", kind)
	}
}

// ApplyToChannel multiplies one channel elementwise by a freshly generated
// window of matching length
func ApplyToChannel(data []float64, kind Kind) ([]float64, error) {
	w, err := New(kind, len(data))
	if err != nil {
		return nil, err
	}

	coeffs := w.Coefficients()
	windowed := make([]float64, len(data))
	for i, v := range data {
		windowed[i] = v * coeffs[i]
	}
	return windowed, nil
}

// Apply tapers every channel of a signal with the same coefficient
// sequence. Used to precondition signals before spectral analysis; the
// tapered signal is local to that analysis and never persisted as a
// conditioned result.
func Apply(sig *ecg.Signal, kind Kind) (*ecg.Signal, error) {
	w, err := New(kind, sig.Samples())
	if err != nil {
		return nil, err
	}

	coeffs := w.Coefficients()
	windowed := make([][]float64, sig.Channels())
	for ch := 0; ch < sig.Channels(); ch++ {
		data := sig.Channel(ch)
		for i := range data {
			data[i] *= coeffs[i]
		}
		windowed[ch] = data
	}

	return ecg.NewSignalFromChannels(windowed)
}
