package windowing

import "math"

// KaiserBeta is the fixed shape parameter used for spectral
// preconditioning. 8.6 puts sidelobes near -90 dB, well below any
// physiological component.
const KaiserBeta = 8.6

// Kaiser represents a symmetric Kaiser window
type Kaiser struct {
	size         int
	beta         float64
	coefficients []float64
}

// NewKaiser creates a new Kaiser window of the given size and shape
// parameter
func NewKaiser(size int, beta float64) *Kaiser {
	k := &Kaiser{size: size, beta: beta}
	k.generate()
	return k
}

func (k *Kaiser) generate() {
	k.coefficients = make([]float64, k.size)

	if k.size == 1 {
		k.coefficients[0] = 1.0
		return
	}

	denominator := float64(k.size - 1)
	i0Beta := besselI0(k.beta)

	for i := 0; i < k.size; i++ {
		arg := 2.0*float64(i)/denominator - 1.0
		k.coefficients[i] = besselI0(k.beta*math.Sqrt(1-arg*arg)) / i0Beta
	}
}

// besselI0 computes the zero-order modified Bessel function of the first
// kind by series expansion
func besselI0(x float64) float64 {
	sum := 1.0
	term := 1.0

	for i := 1; i < 50; i++ {
		term *= (x / (2.0 * float64(i))) * (x / (2.0 * float64(i)))
		sum += term

		if term < 1e-12 {
			break
		}
	}

	return sum
}

// Coefficients returns a copy of the window coefficients
func (k *Kaiser) Coefficients() []float64 {
	coeffs := make([]float64, len(k.coefficients))
	copy(coeffs, k.coefficients)
	return coeffs
}

// Size returns the window size
func (k *Kaiser) Size() int {
	return k.size
}

// Type returns the window type
func (k *Kaiser) Type() Kind {
	return KindKaiser
}
