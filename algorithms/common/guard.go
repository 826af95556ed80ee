package common

import "math"

// Epsilon is the substitute divisor used when a spread or magnitude is
// exactly zero. Matches the guard value of the reference preprocessing
// formulas (1e-10).
const Epsilon = 1e-10

// Guard checks a candidate denominator. A zero or non-finite value is
// degenerate: the returned substitute is Epsilon and the flag is true, so
// callers can either divide safely or fall back to a documented default.
// Constant or silent channels are a valid clinical occurrence, never an
// error, which is why every division in the pipeline routes through here.
func Guard(denom float64) (float64, bool) {
	if denom == 0 || math.IsNaN(denom) || math.IsInf(denom, 0) {
		return Epsilon, true
	}
	return denom, false
}
