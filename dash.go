package canvas

import "math"

// normalizeDash validates a dash array and repeats odd-length arrays to
// even length. An empty array disables dashing.
func normalizeDash(segments []float64) ([]float64, bool) {
	for _, v := range segments {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, false
		}
	}
	if len(segments) == 0 {
		return nil, true
	}
	out := make([]float64, 0, 2*len(segments))
	out = append(out, segments...)
	if len(segments)%2 != 0 {
		out = append(out, segments...)
	}
	return out, true
}
