package filters

import (
	"math"

	"github.com/cardiolab/ecgpipe/ecg"
)

// Family selects the filter response type
type Family string

const (
	Bandpass Family = "bandpass"
	Lowpass  Family = "lowpass"
	Highpass Family = "highpass"
)

// biquad is one normalized second-order section (a0 = 1).
// First-order sections are represented with b2 = a2 = 0.
type biquad struct {
	b0, b1, b2 float64
	a1, a2     float64
}

// Butterworth is an order-N Butterworth filter realized as a cascade of
// second-order sections. Sections use the cookbook formulas from Robert
// Bristow-Johnson's "Cookbook formulae for audio EQ biquad filter
// coefficients", with section Q values taken from the Butterworth pole
// angles so the cascade has a maximally flat passband.
//
// Reference: https://webaudio.github.io/Audio-EQ-Cookbook/audio-eq-cookbook.html
type Butterworth struct {
	sampleRate float64
	family     Family
	cutoffs    []float64
	order      int
	sections   []biquad
}

// NewButterworth designs a Butterworth filter. Cutoffs must lie strictly
// inside (0, Nyquist); bandpass takes two cutoffs with low < high, lowpass
// and highpass take one.
func NewButterworth(sampleRate float64, family Family, cutoffs []float64, order int) (*Butterworth, error) {
	if sampleRate <= 0 {
		return nil, ecg.Configf("sampling rate must be positive, got %g", sampleRate)
	}
	if order < 1 {
		return nil, ecg.Configf("filter order must be positive, got %d", order)
	}

	nyquist := sampleRate / 2.0
	for _, fc := range cutoffs {
		if fc <= 0 || fc >= nyquist {
			return nil, ecg.Configf("cutoff %g Hz outside (0, %g) Nyquist interval", fc, nyquist)
		}
	}

	bw := &Butterworth{
		sampleRate: sampleRate,
		family:     family,
		cutoffs:    append([]float64(nil), cutoffs...),
		order:      order,
	}

	switch family {
	case Lowpass:
		if len(cutoffs) != 1 {
			return nil, ecg.Configf("lowpass filter takes one cutoff, got %d", len(cutoffs))
		}
		bw.sections = designSections(sampleRate, Lowpass, cutoffs[0], order)

	case Highpass:
		if len(cutoffs) != 1 {
			return nil, ecg.Configf("highpass filter takes one cutoff, got %d", len(cutoffs))
		}
		bw.sections = designSections(sampleRate, Highpass, cutoffs[0], order)

	case Bandpass:
		if len(cutoffs) != 2 {
			return nil, ecg.Configf("bandpass filter takes two cutoffs, got %d", len(cutoffs))
		}
		if cutoffs[0] >= cutoffs[1] {
			return nil, ecg.Configf("bandpass low cutoff %g must be below high cutoff %g", cutoffs[0], cutoffs[1])
		}
		// Highpass at the low edge cascaded with lowpass at the high edge
		bw.sections = append(
			designSections(sampleRate, Highpass, cutoffs[0], order),
			designSections(sampleRate, Lowpass, cutoffs[1], order)...)

	default:
		return nil, ecg.Configf("unsupported filter family %q", family)
	}

	return bw, nil
}

// designSections builds the section cascade for one band edge.
// Butterworth pole pair angles: phi_k = pi*(2k+1)/(2N) for even N,
// giving section Q = 1/(2*cos(phi_k)); odd N adds one real pole.
func designSections(sampleRate float64, family Family, cutoff float64, order int) []biquad {
	var sections []biquad

	pairs := order / 2
	for k := 0; k < pairs; k++ {
		var phi float64
		if order%2 == 0 {
			phi = math.Pi * float64(2*k+1) / float64(2*order)
		} else {
			phi = math.Pi * float64(k+1) / float64(order)
		}
		q := 1.0 / (2.0 * math.Cos(phi))
		sections = append(sections, cookbookSection(sampleRate, family, cutoff, q))
	}

	if order%2 == 1 {
		sections = append(sections, firstOrderSection(sampleRate, family, cutoff))
	}

	return sections
}

// cookbookSection computes one second-order section from the cookbook
// formulas
func cookbookSection(sampleRate float64, family Family, cutoff, q float64) biquad {
	w0 := 2.0 * math.Pi * cutoff / sampleRate
	cosW0 := math.Cos(w0)
	sinW0 := math.Sin(w0)
	alpha := sinW0 / (2.0 * q)

	a0 := 1.0 + alpha
	s := biquad{
		a1: -2.0 * cosW0 / a0,
		a2: (1.0 - alpha) / a0,
	}

	if family == Highpass {
		s.b0 = (1.0 + cosW0) / 2.0 / a0
		s.b1 = -(1.0 + cosW0) / a0
		s.b2 = (1.0 + cosW0) / 2.0 / a0
	} else {
		s.b0 = (1.0 - cosW0) / 2.0 / a0
		s.b1 = (1.0 - cosW0) / a0
		s.b2 = (1.0 - cosW0) / 2.0 / a0
	}

	return s
}

// firstOrderSection computes the real-pole section for odd orders via the
// bilinear transform
func firstOrderSection(sampleRate float64, family Family, cutoff float64) biquad {
	k := math.Tan(math.Pi * cutoff / sampleRate)
	norm := 1.0 / (k + 1.0)

	if family == Highpass {
		return biquad{
			b0: norm,
			b1: -norm,
			a1: (k - 1.0) * norm,
		}
	}
	return biquad{
		b0: k * norm,
		b1: k * norm,
		a1: (k - 1.0) * norm,
	}
}

// process runs the full cascade over a buffer, each section in transposed
// direct form II with state local to the call
func (bw *Butterworth) process(input []float64) []float64 {
	output := make([]float64, len(input))
	copy(output, input)

	for _, s := range bw.sections {
		var z1, z2 float64
		for i, x := range output {
			y := s.b0*x + z1
			z1 = s.b1*x - s.a1*y + z2
			z2 = s.b2*x - s.a2*y
			output[i] = y
		}
	}

	return output
}

// Order returns the design order of the filter
func (bw *Butterworth) Order() int {
	return bw.order
}

// Family returns the filter family
func (bw *Butterworth) Family() Family {
	return bw.family
}
