package filters

// FiltFilt applies the filter forward, then backward over the reversed
// output, cancelling the phase response of the two passes. Output sample k
// is therefore not shifted in time relative to input sample k, which keeps
// waveform morphology intact for the downstream feature extractors.
//
// Edge transients are suppressed the usual way: the signal is extended at
// both ends with an odd reflection before filtering and the extension is
// stripped afterwards.
func (bw *Butterworth) FiltFilt(input []float64) []float64 {
	n := len(input)
	if n == 0 {
		return []float64{}
	}

	padLen := 3 * (2*len(bw.sections) + 1)
	if padLen > n-1 {
		padLen = n - 1
	}

	extended := oddExtension(input, padLen)

	extended = bw.process(extended)
	reverse(extended)
	extended = bw.process(extended)
	reverse(extended)

	output := make([]float64, n)
	copy(output, extended[padLen:padLen+n])
	return output
}

// oddExtension mirrors padLen samples at each end, reflected through the
// end point value so the extension is continuous in value and slope
func oddExtension(input []float64, padLen int) []float64 {
	n := len(input)
	extended := make([]float64, padLen+n+padLen)

	for i := 0; i < padLen; i++ {
		extended[i] = 2*input[0] - input[padLen-i]
	}
	copy(extended[padLen:], input)
	for i := 0; i < padLen; i++ {
		extended[padLen+n+i] = 2*input[n-1] - input[n-2-i]
	}

	return extended
}

func reverse(data []float64) {
	for i, j := 0, len(data)-1; i < j; i, j = i+1, j-1 {
		data[i], data[j] = data[j], data[i]
	}
}
