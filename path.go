package canvas

import (
	"math"

	"github.com/gogpu/canvas/internal/path"
)

// PathElement represents a single element in a path.
type PathElement interface {
	isPathElement()
}

// MoveTo moves to a point without drawing.
type MoveTo struct {
	Point Point
}

func (MoveTo) isPathElement() {}

// LineTo draws a line to a point.
type LineTo struct {
	Point Point
}

func (LineTo) isPathElement() {}

// QuadTo draws a quadratic Bezier curve.
type QuadTo struct {
	Control Point
	Point   Point
}

func (QuadTo) isPathElement() {}

// CubicTo draws a cubic Bezier curve.
type CubicTo struct {
	Control1 Point
	Control2 Point
	Point    Point
}

func (CubicTo) isPathElement() {}

// Close closes the current subpath.
type Close struct{}

func (Close) isPathElement() {}

// Path represents a vector path in user space. Arcs and ellipses are
// stored as cubic Bezier segments.
type Path struct {
	elements []PathElement
	start    Point // Starting point of current subpath
	current  Point // Current point
	hasPoint bool
}

// NewPath creates a new empty path.
func NewPath() *Path {
	return &Path{
		elements: make([]PathElement, 0, 16),
	}
}

// MoveTo starts a new subpath at (x, y).
func (p *Path) MoveTo(x, y float64) {
	pt := Pt(x, y)
	p.elements = append(p.elements, MoveTo{Point: pt})
	p.start = pt
	p.current = pt
	p.hasPoint = true
}

// LineTo draws a line to (x, y). On an empty path it behaves as MoveTo.
func (p *Path) LineTo(x, y float64) {
	if !p.hasPoint {
		p.MoveTo(x, y)
		return
	}
	pt := Pt(x, y)
	p.elements = append(p.elements, LineTo{Point: pt})
	p.current = pt
}

// QuadraticTo draws a quadratic Bezier curve.
func (p *Path) QuadraticTo(cx, cy, x, y float64) {
	p.ensureSubpath(cx, cy)
	pt := Pt(x, y)
	p.elements = append(p.elements, QuadTo{Control: Pt(cx, cy), Point: pt})
	p.current = pt
}

// QuadraticCurveTo is the Canvas API name for QuadraticTo.
func (p *Path) QuadraticCurveTo(cx, cy, x, y float64) {
	p.QuadraticTo(cx, cy, x, y)
}

// CubicTo draws a cubic Bezier curve.
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	p.ensureSubpath(c1x, c1y)
	pt := Pt(x, y)
	p.elements = append(p.elements, CubicTo{
		Control1: Pt(c1x, c1y),
		Control2: Pt(c2x, c2y),
		Point:    pt,
	})
	p.current = pt
}

// BezierCurveTo is the Canvas API name for CubicTo.
func (p *Path) BezierCurveTo(c1x, c1y, c2x, c2y, x, y float64) {
	p.CubicTo(c1x, c1y, c2x, c2y, x, y)
}

// Close closes the current subpath by drawing a line to the start point.
func (p *Path) Close() {
	if !p.hasPoint {
		return
	}
	p.elements = append(p.elements, Close{})
	p.current = p.start
}

// ClosePath is the Canvas API name for Close.
func (p *Path) ClosePath() {
	p.Close()
}

// Reset removes all elements from the path.
func (p *Path) Reset() {
	p.elements = p.elements[:0]
	p.start = Point{}
	p.current = Point{}
	p.hasPoint = false
}

// Rect adds a closed rectangle subpath.
func (p *Path) Rect(x, y, w, h float64) {
	p.MoveTo(x, y)
	p.LineTo(x+w, y)
	p.LineTo(x+w, y+h)
	p.LineTo(x, y+h)
	p.Close()
}

// Elements returns the path elements.
func (p *Path) Elements() []PathElement {
	return p.elements
}

// IsEmpty reports whether the path has no elements.
func (p *Path) IsEmpty() bool {
	return len(p.elements) == 0
}

// CurrentPoint returns the current point.
func (p *Path) CurrentPoint() Point {
	return p.current
}

// HasCurrentPoint returns true if the path has a current point.
func (p *Path) HasCurrentPoint() bool {
	return p.hasPoint
}

func (p *Path) ensureSubpath(x, y float64) {
	if !p.hasPoint {
		p.MoveTo(x, y)
	}
}

// ApplyTransform transforms every point of the path in place.
func (p *Path) ApplyTransform(m Matrix) {
	for i, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			p.elements[i] = MoveTo{Point: m.TransformPoint(e.Point)}
		case LineTo:
			p.elements[i] = LineTo{Point: m.TransformPoint(e.Point)}
		case QuadTo:
			p.elements[i] = QuadTo{Control: m.TransformPoint(e.Control), Point: m.TransformPoint(e.Point)}
		case CubicTo:
			p.elements[i] = CubicTo{
				Control1: m.TransformPoint(e.Control1),
				Control2: m.TransformPoint(e.Control2),
				Point:    m.TransformPoint(e.Point),
			}
		}
	}
	p.start = m.TransformPoint(p.start)
	p.current = m.TransformPoint(p.current)
}

// AddPath appends other's elements transformed by m.
func (p *Path) AddPath(other *Path, m Matrix) {
	if other == nil {
		return
	}
	c := other.Clone()
	c.ApplyTransform(m)
	p.elements = append(p.elements, c.elements...)
	if c.hasPoint {
		p.start = c.start
		p.current = c.current
		p.hasPoint = true
	}
}

// Clone creates a deep copy of the path.
func (p *Path) Clone() *Path {
	result := &Path{
		elements: make([]PathElement, len(p.elements)),
		start:    p.start,
		current:  p.current,
		hasPoint: p.hasPoint,
	}
	copy(result.elements, p.elements)
	return result
}

// Flatten converts the path to polylines after applying m. The tolerance
// is in the target space of m.
func (p *Path) Flatten(m Matrix, tolerance float64) []path.Subpath {
	f := path.NewFlattener(tolerance)
	tp := func(pt Point) path.Point {
		q := m.TransformPoint(pt)
		return path.Point{X: q.X, Y: q.Y}
	}
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			f.MoveTo(tp(e.Point))
		case LineTo:
			f.LineTo(tp(e.Point))
		case QuadTo:
			f.QuadTo(tp(e.Control), tp(e.Point))
		case CubicTo:
			f.CubicTo(tp(e.Control1), tp(e.Control2), tp(e.Point))
		case Close:
			f.Close()
		}
	}
	return f.Subpaths()
}

// Bounds returns the bounding box of all control points.
func (p *Path) Bounds() Rect {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	add := func(pt Point) {
		minX, minY = math.Min(minX, pt.X), math.Min(minY, pt.Y)
		maxX, maxY = math.Max(maxX, pt.X), math.Max(maxY, pt.Y)
	}
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			add(e.Point)
		case LineTo:
			add(e.Point)
		case QuadTo:
			add(e.Control)
			add(e.Point)
		case CubicTo:
			add(e.Control1)
			add(e.Control2)
			add(e.Point)
		}
	}
	if minX > maxX {
		return Rect{}
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
