// Package path provides internal path processing utilities.
package path

import "math"

// Point represents a 2D point (internal copy to avoid import cycle).
type Point struct {
	X, Y float64
}

// Lerp performs linear interpolation between two points.
func (p Point) Lerp(q Point, t float64) Point {
	return Point{
		X: p.X + (q.X-p.X)*t,
		Y: p.Y + (q.Y-p.Y)*t,
	}
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Mul scales p by s.
func (p Point) Mul(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Dot returns the dot product.
func (p Point) Dot(q Point) float64 {
	return p.X*q.X + p.Y*q.Y
}

// Length returns the vector length.
func (p Point) Length() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y)
}

// Distance returns the distance between p and q.
func (p Point) Distance(q Point) float64 {
	return p.Sub(q).Length()
}

// DefaultTolerance is the maximum distance from the curve for flattening,
// in device pixels.
const DefaultTolerance = 0.1

// maxDepth bounds the recursive subdivision.
const maxDepth = 16

// Subpath is a flattened polyline. Closed subpaths do not repeat the
// first point at the end.
type Subpath struct {
	Points []Point
	Closed bool
}

// Flattener accumulates move/line/curve commands into polylines.
type Flattener struct {
	Tolerance float64

	subpaths []Subpath
	cur      *Subpath
	last     Point
}

// NewFlattener creates a flattener with the given tolerance.
// A non-positive tolerance selects DefaultTolerance.
func NewFlattener(tolerance float64) *Flattener {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	return &Flattener{Tolerance: tolerance}
}

// MoveTo starts a new subpath.
func (f *Flattener) MoveTo(p Point) {
	f.flush()
	f.subpaths = append(f.subpaths, Subpath{Points: []Point{p}})
	f.cur = &f.subpaths[len(f.subpaths)-1]
	f.last = p
}

// LineTo appends a straight segment.
func (f *Flattener) LineTo(p Point) {
	f.ensure()
	f.cur.Points = append(f.cur.Points, p)
	f.last = p
}

// QuadTo flattens a quadratic Bezier curve.
func (f *Flattener) QuadTo(c, p Point) {
	f.ensure()
	flattenQuadraticRec(f.last, c, p, f.Tolerance, 0, &f.cur.Points)
	f.last = p
}

// CubicTo flattens a cubic Bezier curve.
func (f *Flattener) CubicTo(c1, c2, p Point) {
	f.ensure()
	flattenCubicRec(f.last, c1, c2, p, f.Tolerance, 0, &f.cur.Points)
	f.last = p
}

// Close marks the current subpath closed. A following drawing command
// continues from the subpath start in a fresh subpath.
func (f *Flattener) Close() {
	if f.cur == nil {
		return
	}
	f.cur.Closed = true
	start := f.cur.Points[0]
	f.cur = nil
	f.last = start
}

// Subpaths returns the flattened polylines.
func (f *Flattener) Subpaths() []Subpath {
	f.flush()
	return f.subpaths
}

func (f *Flattener) ensure() {
	if f.cur == nil {
		f.subpaths = append(f.subpaths, Subpath{Points: []Point{f.last}})
		f.cur = &f.subpaths[len(f.subpaths)-1]
	}
}

// flush drops a trailing lone MoveTo; it contributes no geometry.
func (f *Flattener) flush() {
	n := len(f.subpaths)
	if n > 0 && len(f.subpaths[n-1].Points) < 2 && !f.subpaths[n-1].Closed {
		f.subpaths = f.subpaths[:n-1]
		f.cur = nil
	}
}

// flattenQuadraticRec recursively subdivides a quadratic Bezier curve.
func flattenQuadraticRec(p0, p1, p2 Point, tolerance float64, depth int, points *[]Point) {
	if depth >= maxDepth || distanceToLine(p1, p0, p2) < tolerance {
		*points = append(*points, p2)
		return
	}

	q0 := p0.Lerp(p1, 0.5)
	q1 := p1.Lerp(p2, 0.5)
	q2 := q0.Lerp(q1, 0.5)

	flattenQuadraticRec(p0, q0, q2, tolerance, depth+1, points)
	flattenQuadraticRec(q2, q1, p2, tolerance, depth+1, points)
}

// flattenCubicRec recursively subdivides a cubic Bezier curve using
// de Casteljau's algorithm.
func flattenCubicRec(p0, p1, p2, p3 Point, tolerance float64, depth int, points *[]Point) {
	d1 := distanceToLine(p1, p0, p3)
	d2 := distanceToLine(p2, p0, p3)
	if depth >= maxDepth || math.Max(d1, d2) < tolerance {
		*points = append(*points, p3)
		return
	}

	q0 := p0.Lerp(p1, 0.5)
	q1 := p1.Lerp(p2, 0.5)
	q2 := p2.Lerp(p3, 0.5)
	r0 := q0.Lerp(q1, 0.5)
	r1 := q1.Lerp(q2, 0.5)
	s := r0.Lerp(r1, 0.5)

	flattenCubicRec(p0, q0, r0, s, tolerance, depth+1, points)
	flattenCubicRec(s, r1, q2, p3, tolerance, depth+1, points)
}

// distanceToLine calculates the perpendicular distance from point p to line segment (a, b).
func distanceToLine(p, a, b Point) float64 {
	ab := b.Sub(a)
	abLen := ab.Length()

	if abLen < 1e-10 {
		return p.Distance(a)
	}

	ap := p.Sub(a)
	t := ap.Dot(ab) / (abLen * abLen)

	if t < 0 {
		return p.Distance(a)
	}
	if t > 1 {
		return p.Distance(b)
	}

	closest := a.Add(ab.Mul(t))
	return p.Distance(closest)
}
