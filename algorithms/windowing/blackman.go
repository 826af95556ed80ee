package windowing

import "math"

// Blackman represents a symmetric Blackman window
type Blackman struct {
	size         int
	coefficients []float64
}

// NewBlackman creates a new Blackman window of the given size
func NewBlackman(size int) *Blackman {
	b := &Blackman{size: size}
	b.generate()
	return b
}

func (b *Blackman) generate() {
	b.coefficients = make([]float64, b.size)

	if b.size == 1 {
		b.coefficients[0] = 1.0
		return
	}

	denominator := float64(b.size - 1)
	for i := 0; i < b.size; i++ {
		phase := 2 * math.Pi * float64(i) / denominator
		b.coefficients[i] = 0.42 - 0.5*math.Cos(phase) + 0.08*math.Cos(2*phase)
	}
}

// Coefficients returns a copy of the window coefficients
func (b *Blackman) Coefficients() []float64 {
	coeffs := make([]float64, len(b.coefficients))
	copy(coeffs, b.coefficients)
	return coeffs
}

// Size returns the window size
func (b *Blackman) Size() int {
	return b.size
}

// Type returns the window type
func (b *Blackman) Type() Kind {
	return KindBlackman
}
