package stroke

import "math"

// Point represents a 2D point (internal copy to avoid import cycle).
type Point struct {
	X, Y float64
}

// Vec2 represents a 2D vector.
type Vec2 struct {
	X, Y float64
}

// Sub returns the vector from q to p.
func (p Point) Sub(q Point) Vec2 {
	return Vec2{X: p.X - q.X, Y: p.Y - q.Y}
}

// Add translates p by v.
func (p Point) Add(v Vec2) Point {
	return Point{X: p.X + v.X, Y: p.Y + v.Y}
}

// Scale returns the vector scaled by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Add returns v + w.
func (v Vec2) Add(w Vec2) Vec2 {
	return Vec2{X: v.X + w.X, Y: v.Y + w.Y}
}

// Dot returns the dot product of two vectors.
func (v Vec2) Dot(w Vec2) float64 {
	return v.X*w.X + v.Y*w.Y
}

// Cross returns the 2D cross product (z-component of 3D cross).
func (v Vec2) Cross(w Vec2) float64 {
	return v.X*w.Y - v.Y*w.X
}

// Length returns the length of the vector.
func (v Vec2) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// Normalize returns a unit vector in the same direction.
func (v Vec2) Normalize() Vec2 {
	l := v.Length()
	if l < 1e-12 {
		return Vec2{}
	}
	return Vec2{X: v.X / l, Y: v.Y / l}
}

// Perp returns the perpendicular vector (rotated 90 degrees).
func (v Vec2) Perp() Vec2 {
	return Vec2{X: -v.Y, Y: v.X}
}

// LineCap specifies the shape of line endpoints.
type LineCap int

const (
	// LineCapButt specifies a flat line cap.
	LineCapButt LineCap = iota
	// LineCapRound specifies a rounded line cap.
	LineCapRound
	// LineCapSquare specifies a square line cap.
	LineCapSquare
)

// LineJoin specifies the shape of line joins.
type LineJoin int

const (
	// LineJoinMiter specifies a sharp (mitered) join.
	LineJoinMiter LineJoin = iota
	// LineJoinRound specifies a rounded join.
	LineJoinRound
	// LineJoinBevel specifies a beveled join.
	LineJoinBevel
)

// Style defines the stroke geometry.
type Style struct {
	Width      float64
	Cap        LineCap
	Join       LineJoin
	MiterLimit float64

	// Tolerance bounds the chord error of round joins and caps.
	Tolerance float64
}

// DefaultStyle returns the canvas defaults: width 1, butt caps,
// miter joins with limit 10.
func DefaultStyle() Style {
	return Style{
		Width:      1,
		Cap:        LineCapButt,
		Join:       LineJoinMiter,
		MiterLimit: 10,
		Tolerance:  0.1,
	}
}

// Polyline is a flattened subpath.
type Polyline struct {
	Points []Point
	Closed bool
}

// Expander accumulates stroke pieces.
type Expander struct {
	style Style
	hw    float64
	out   [][]Point
}

// NewExpander creates an expander for the given style.
func NewExpander(style Style) *Expander {
	if style.Tolerance <= 0 {
		style.Tolerance = 0.1
	}
	if style.MiterLimit <= 0 {
		style.MiterLimit = 10
	}
	return &Expander{style: style, hw: style.Width / 2}
}

// Expand strokes the polylines and returns polygons to be filled with
// the non-zero rule.
func Expand(lines []Polyline, style Style) [][]Point {
	e := NewExpander(style)
	for _, l := range lines {
		e.Add(l)
	}
	return e.Polygons()
}

// Polygons returns the accumulated pieces.
func (e *Expander) Polygons() [][]Point {
	return e.out
}

// Add strokes a single polyline.
func (e *Expander) Add(line Polyline) {
	if e.hw <= 0 || math.IsNaN(e.hw) {
		return
	}
	pts := dedupe(line.Points)
	if line.Closed && len(pts) > 1 && pts[0] == pts[len(pts)-1] {
		pts = pts[:len(pts)-1]
	}

	if len(pts) == 1 {
		if !line.Closed {
			e.zeroLength(pts[0])
		}
		return
	}
	if len(pts) == 0 {
		return
	}

	n := len(pts)
	segs := n - 1
	if line.Closed {
		segs = n
	}
	for i := 0; i < segs; i++ {
		e.segment(pts[i], pts[(i+1)%n])
	}

	if line.Closed {
		for i := 0; i < n; i++ {
			prev := pts[(i-1+n)%n]
			e.join(prev, pts[i], pts[(i+1)%n])
		}
		return
	}
	for i := 1; i < n-1; i++ {
		e.join(pts[i-1], pts[i], pts[i+1])
	}
	e.cap(pts[0], pts[0].Sub(pts[1]).Normalize())
	e.cap(pts[n-1], pts[n-1].Sub(pts[n-2]).Normalize())
}

func (e *Expander) emit(poly []Point) {
	if len(poly) < 3 {
		return
	}
	if signedArea(poly) < 0 {
		for i, j := 0, len(poly)-1; i < j; i, j = i+1, j-1 {
			poly[i], poly[j] = poly[j], poly[i]
		}
	}
	e.out = append(e.out, poly)
}

func (e *Expander) segment(a, b Point) {
	n := b.Sub(a).Normalize().Perp().Scale(e.hw)
	e.emit([]Point{a.Add(n), b.Add(n), b.Add(n.Scale(-1)), a.Add(n.Scale(-1))})
}

func (e *Expander) join(prev, p, next Point) {
	d0 := p.Sub(prev).Normalize()
	d1 := next.Sub(p).Normalize()
	cross := d0.Cross(d1)
	if math.Abs(cross) < 1e-9 && d0.Dot(d1) > 0 {
		return
	}

	switch e.style.Join {
	case LineJoinRound:
		e.emit(e.circle(p))
		return
	case LineJoinBevel:
		e.bevel(p, d0, d1, cross)
		return
	}

	s := -1.0
	if cross < 0 {
		s = 1
	}
	n0 := d0.Perp()
	n1 := d1.Perp()
	m := n0.Add(n1).Normalize()
	cosHalf := m.Dot(n0)
	if cosHalf < 1e-9 || 1/cosHalf > e.style.MiterLimit {
		e.bevel(p, d0, d1, cross)
		return
	}
	e.emit([]Point{
		p,
		p.Add(n0.Scale(s * e.hw)),
		p.Add(m.Scale(s * e.hw / cosHalf)),
		p.Add(n1.Scale(s * e.hw)),
	})
}

func (e *Expander) bevel(p Point, d0, d1 Vec2, cross float64) {
	s := -1.0
	if cross < 0 {
		s = 1
	}
	e.emit([]Point{
		p,
		p.Add(d0.Perp().Scale(s * e.hw)),
		p.Add(d1.Perp().Scale(s * e.hw)),
	})
}

// cap adds the end cap at p; dir points outward from the line.
func (e *Expander) cap(p Point, dir Vec2) {
	switch e.style.Cap {
	case LineCapRound:
		e.emit(e.circle(p))
	case LineCapSquare:
		n := dir.Perp().Scale(e.hw)
		ext := dir.Scale(e.hw)
		far := p.Add(ext)
		e.emit([]Point{p.Add(n), far.Add(n), far.Add(n.Scale(-1)), p.Add(n.Scale(-1))})
	}
}

// zeroLength draws the caps of a degenerate subpath. Butt caps draw nothing.
func (e *Expander) zeroLength(p Point) {
	switch e.style.Cap {
	case LineCapRound:
		e.emit(e.circle(p))
	case LineCapSquare:
		h := e.hw
		e.emit([]Point{{p.X - h, p.Y - h}, {p.X + h, p.Y - h}, {p.X + h, p.Y + h}, {p.X - h, p.Y + h}})
	}
}

func (e *Expander) circle(c Point) []Point {
	n := CircleSegments(e.hw, e.style.Tolerance)
	pts := make([]Point, n)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = Point{X: c.X + e.hw*math.Cos(a), Y: c.Y + e.hw*math.Sin(a)}
	}
	return pts
}

// CircleSegments returns the number of chords needed to approximate a
// circle of radius r within tolerance tol.
func CircleSegments(r, tol float64) int {
	if r <= tol {
		return 8
	}
	n := int(math.Ceil(math.Pi / math.Acos(1-tol/r)))
	return min(max(n, 8), 1024)
}

func signedArea(poly []Point) float64 {
	var a float64
	for i := range poly {
		j := (i + 1) % len(poly)
		a += poly[i].X*poly[j].Y - poly[j].X*poly[i].Y
	}
	return a / 2
}

func dedupe(pts []Point) []Point {
	out := make([]Point, 0, len(pts))
	for i, p := range pts {
		if i > 0 && p == out[len(out)-1] {
			continue
		}
		out = append(out, p)
	}
	return out
}
