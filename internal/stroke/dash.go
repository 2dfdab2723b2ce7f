package stroke

import "math"

// Dash splits polylines into open dash pieces. The pattern must have an
// even number of non-negative entries with a positive sum; otherwise the
// input is returned unchanged.
func Dash(lines []Polyline, pattern []float64, offset float64) []Polyline {
	total := 0.0
	for _, v := range pattern {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return lines
		}
		total += v
	}
	if len(pattern) == 0 || len(pattern)%2 != 0 || total <= 0 {
		return lines
	}

	start := math.Mod(offset, total)
	if start < 0 {
		start += total
	}

	var out []Polyline
	for _, l := range lines {
		out = dashOne(out, l, pattern, start)
	}
	return out
}

func dashOne(out []Polyline, l Polyline, pattern []float64, start float64) []Polyline {
	pts := l.Points
	if l.Closed && len(pts) > 1 {
		pts = append(append([]Point(nil), pts...), pts[0])
	}

	// Locate the starting dash interval.
	idx := 0
	remaining := pattern[0]
	for start > 0 {
		if start < remaining {
			remaining -= start
			break
		}
		start -= remaining
		idx = (idx + 1) % len(pattern)
		remaining = pattern[idx]
	}

	on := idx%2 == 0
	var cur []Point
	if on && len(pts) > 0 {
		cur = []Point{pts[0]}
	}
	for i := 0; i+1 < len(pts); i++ {
		a, b := pts[i], pts[i+1]
		segLen := b.Sub(a).Length()
		pos := 0.0
		for segLen-pos > remaining {
			pos += remaining
			p := a.Add(b.Sub(a).Scale(pos / segLen))
			if on {
				cur = append(cur, p)
				out = append(out, Polyline{Points: cur})
				cur = nil
			} else {
				cur = []Point{p}
			}
			on = !on
			idx = (idx + 1) % len(pattern)
			remaining = pattern[idx]
		}
		remaining -= segLen - pos
		if on {
			cur = append(cur, b)
		}
	}
	if on && len(cur) > 1 {
		out = append(out, Polyline{Points: cur})
	}
	return out
}
