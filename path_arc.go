package canvas

import "math"

const halfCircleDegrees = 180.0

func radiansToDegrees(r float64) float64 { return r * 180 / math.Pi }
func degreesToRadians(d float64) float64 { return d * math.Pi / 180 }

// ArcSweeps normalizes an arc request and returns the start angle and the
// signed sweep of every segment to emit, all in degrees.
//
// The sweep end-start is made negative for anticlockwise arcs and positive
// for clockwise arcs by one turn. A whole number of turns with distinct
// start and end is emitted as two half circles; any other sweep larger
// than a turn is emitted as two half circles plus the remainder.
func ArcSweeps(startAngle, endAngle float64, anticlockwise bool) (start float64, sweeps []float64) {
	start = radiansToDegrees(startAngle)
	end := radiansToDegrees(endAngle)
	sweep := end - start
	if anticlockwise {
		if sweep > 0 {
			sweep -= 360
		}
	} else if sweep < 0 {
		sweep += 360
	}
	sweep = snapTurns(sweep)

	half := math.Copysign(halfCircleDegrees, sweep)
	switch {
	case math.Mod(sweep, 360) == 0 && start != end:
		return start, []float64{half, half}
	case math.Mod(sweep, 360) != 0 && math.Abs(sweep) > 360:
		// Beyond two turns the remainder is itself over a turn and
		// appendArc rejects it, so only the two half circles are drawn.
		return start, []float64{half, half, sweep - 2*half}
	default:
		return start, []float64{sweep}
	}
}

// snapTurns rounds sweeps within radian conversion error of a whole
// number of turns onto that number of turns.
func snapTurns(sweep float64) float64 {
	turns := math.Round(sweep / 360)
	if math.Abs(sweep-turns*360) > 1e-9 {
		return sweep
	}
	if turns == 0 {
		return 0
	}
	return turns * 360
}

// arcSegments appends the sweeps produced by ArcSweeps as consecutive
// elliptical arcs. It reports false if any segment was rejected.
func (p *Path) arcSegments(cx, cy, rx, ry, start float64, sweeps []float64) bool {
	angle := start
	for _, s := range sweeps {
		if !p.appendArc(cx, cy, rx, ry, angle, s) {
			return false
		}
		angle += s
	}
	return true
}

// appendArc appends an elliptical arc of sweepDeg starting at startDeg,
// connecting from the current point with a line. A full-turn sweep is
// rejected, matching the arc primitive of the target renderers.
func (p *Path) appendArc(cx, cy, rx, ry, startDeg, sweepDeg float64) bool {
	if math.Abs(sweepDeg) >= 360 || math.IsNaN(sweepDeg) {
		return false
	}
	a0 := degreesToRadians(startDeg)
	sx := cx + rx*math.Cos(a0)
	sy := cy + ry*math.Sin(a0)
	if p.hasPoint {
		if p.current.Distance(Pt(sx, sy)) > 1e-9 {
			p.LineTo(sx, sy)
		}
	} else {
		p.MoveTo(sx, sy)
	}
	if sweepDeg == 0 {
		return true
	}

	sweep := degreesToRadians(sweepDeg)
	n := int(math.Ceil(math.Abs(sweep) / (math.Pi / 2)))
	step := sweep / float64(n)
	for i := 0; i < n; i++ {
		a1 := a0 + float64(i)*step
		p.arcSegment(cx, cy, rx, ry, a1, a1+step)
	}
	return true
}

// arcSegment adds a single elliptical arc piece of at most 90 degrees.
func (p *Path) arcSegment(cx, cy, rx, ry, a1, a2 float64) {
	k := 4.0 / 3.0 * math.Tan((a2-a1)/4)
	sin1, cos1 := math.Sincos(a1)
	sin2, cos2 := math.Sincos(a2)

	x1, y1 := cx+rx*cos1, cy+ry*sin1
	x2, y2 := cx+rx*cos2, cy+ry*sin2

	p.CubicTo(
		x1-k*rx*sin1, y1+k*ry*cos1,
		x2+k*rx*sin2, y2-k*ry*cos2,
		x2, y2,
	)
}

// Arc adds a circular arc centered at (cx, cy).
func (p *Path) Arc(cx, cy, r, startAngle, endAngle float64, anticlockwise bool) {
	if r < 0 || math.IsNaN(r) {
		return
	}
	start, sweeps := ArcSweeps(startAngle, endAngle, anticlockwise)
	// A rejected remainder leaves the segments already appended in place.
	p.arcSegments(cx, cy, r, r, start, sweeps)
}

// Ellipse adds an elliptical arc rotated by rotation radians around its
// center. Equal start and end angles draw nothing.
func (p *Path) Ellipse(cx, cy, rx, ry, rotation, startAngle, endAngle float64, anticlockwise bool) {
	if startAngle == endAngle || rx < 0 || ry < 0 {
		return
	}
	rotated := rotation != 0
	if rotated {
		p.ApplyTransform(rotateAbout(-rotation, cx, cy))
	}
	start, sweeps := ArcSweeps(startAngle, endAngle, anticlockwise)
	p.arcSegments(cx, cy, rx, ry, start, sweeps)
	if rotated {
		p.ApplyTransform(rotateAbout(rotation, cx, cy))
	}
}

// ArcTo adds a circular arc tangent to the lines (current, p1) and (p1, p2).
func (p *Path) ArcTo(x1, y1, x2, y2, r float64) {
	if r < 0 || math.IsNaN(r) {
		return
	}
	if !p.hasPoint {
		p.MoveTo(x1, y1)
	}
	p0 := p.current
	p1 := Pt(x1, y1)
	p2 := Pt(x2, y2)

	v1 := p0.Sub(p1)
	v2 := p2.Sub(p1)
	l1, l2 := v1.Length(), v2.Length()
	if r == 0 || l1 == 0 || l2 == 0 || math.Abs(v1.Cross(v2)) < 1e-12*l1*l2 {
		p.LineTo(x1, y1)
		return
	}
	u1 := v1.Mul(1 / l1)
	u2 := v2.Mul(1 / l2)

	theta := math.Acos(math.Max(-1, math.Min(1, u1.Dot(u2))))
	tangentDist := r / math.Tan(theta/2)
	t1 := p1.Add(u1.Mul(tangentDist))
	t2 := p1.Add(u2.Mul(tangentDist))

	bis := u1.Add(u2)
	bis = bis.Mul(1 / bis.Length())
	c := p1.Add(bis.Mul(r / math.Sin(theta/2)))

	a0 := math.Atan2(t1.Y-c.Y, t1.X-c.X)
	a1 := math.Atan2(t2.Y-c.Y, t2.X-c.X)
	sweep := a1 - a0
	for sweep > math.Pi {
		sweep -= 2 * math.Pi
	}
	for sweep < -math.Pi {
		sweep += 2 * math.Pi
	}
	p.appendArc(c.X, c.Y, r, r, radiansToDegrees(a0), radiansToDegrees(sweep))
}

func rotateAbout(angle, cx, cy float64) Matrix {
	return Translate(cx, cy).Multiply(Rotate(angle)).Multiply(Translate(-cx, -cy))
}
