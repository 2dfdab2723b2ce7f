package canvas

import (
	"math"
	"sort"
)

// GradientKind identifies the gradient geometry.
type GradientKind int

const (
	// GradientLinear interpolates along the line (X0,Y0)-(X1,Y1).
	GradientLinear GradientKind = iota
	// GradientRadial interpolates between two circles.
	GradientRadial
	// GradientConic sweeps around (X0,Y0) from StartAngle.
	GradientConic
)

// ColorStop represents a color at a specific position in a gradient.
type ColorStop struct {
	Offset float64 // Position in gradient, 0.0 to 1.0
	Color  RGBA    // Color at this position
}

// Gradient is a canvas gradient in user space.
type Gradient struct {
	Kind       GradientKind
	X0, Y0, R0 float64
	X1, Y1, R1 float64
	StartAngle float64

	stops []ColorStop
}

// NewLinearGradient creates a gradient along (x0,y0)-(x1,y1).
func NewLinearGradient(x0, y0, x1, y1 float64) *Gradient {
	return &Gradient{Kind: GradientLinear, X0: x0, Y0: y0, X1: x1, Y1: y1}
}

// NewRadialGradient creates a gradient between the circles (x0,y0,r0)
// and (x1,y1,r1).
func NewRadialGradient(x0, y0, r0, x1, y1, r1 float64) *Gradient {
	return &Gradient{Kind: GradientRadial, X0: x0, Y0: y0, R0: r0, X1: x1, Y1: y1, R1: r1}
}

// NewConicGradient creates a gradient sweeping clockwise around (x, y)
// starting at startAngle radians.
func NewConicGradient(startAngle, x, y float64) *Gradient {
	return &Gradient{Kind: GradientConic, X0: x, Y0: y, StartAngle: startAngle}
}

// AddColorStop adds a stop. Offsets outside [0, 1] are ignored.
func (g *Gradient) AddColorStop(offset float64, c RGBA) {
	if offset < 0 || offset > 1 || math.IsNaN(offset) {
		return
	}
	g.stops = append(g.stops, ColorStop{Offset: offset, Color: c})
}

// Stops returns the stops in insertion order.
func (g *Gradient) Stops() []ColorStop {
	return append([]ColorStop(nil), g.stops...)
}

// sortStops returns a copy of stops stable-sorted ascending by offset.
func sortStops(stops []ColorStop) []ColorStop {
	sorted := make([]ColorStop, len(stops))
	copy(sorted, stops)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Offset < sorted[j].Offset
	})
	return sorted
}

// pureRadial reports whether the radial gradient degenerates to a single
// circle around a shared center.
func (g *Gradient) pureRadial() bool {
	return g.R0 <= 0 && g.X0 == g.X1 && g.Y0 == g.Y1
}

// Shader builds a device-space shader. toUser maps device pixels back to
// the user space the gradient was defined in.
func (g *Gradient) Shader(toUser Matrix) Shader {
	gs := &gradientShader{g: *g, toUser: toUser, stops: sortStops(g.stops)}
	gs.g.stops = nil
	return gs
}

type gradientShader struct {
	g      Gradient
	toUser Matrix
	stops  []ColorStop
}

// ColorAt implements Shader.
func (s *gradientShader) ColorAt(x, y float64) RGBA {
	if len(s.stops) == 0 {
		return Transparent
	}
	p := s.toUser.TransformPoint(Pt(x, y))
	t, ok := s.param(p)
	if !ok {
		return Transparent
	}
	return colorAtStops(s.stops, t)
}

func (s *gradientShader) param(p Point) (float64, bool) {
	g := &s.g
	switch g.Kind {
	case GradientLinear:
		dx, dy := g.X1-g.X0, g.Y1-g.Y0
		l2 := dx*dx + dy*dy
		if l2 == 0 {
			return 0, false
		}
		return ((p.X-g.X0)*dx + (p.Y-g.Y0)*dy) / l2, true
	case GradientRadial:
		if g.pureRadial() {
			if g.R1 <= 0 {
				return 0, false
			}
			return math.Hypot(p.X-g.X1, p.Y-g.Y1) / g.R1, true
		}
		return twoPointConical(g, p)
	case GradientConic:
		a := math.Atan2(p.Y-g.Y0, p.X-g.X0) - g.StartAngle
		t := a / (2 * math.Pi)
		return t - math.Floor(t), true
	}
	return 0, false
}

// twoPointConical solves for the largest t whose circle
// (c0 + t(c1-c0), r0 + t(r1-r0)) passes through p with a non-negative
// radius.
func twoPointConical(g *Gradient, p Point) (float64, bool) {
	cdx, cdy := g.X1-g.X0, g.Y1-g.Y0
	dr := g.R1 - g.R0
	px, py := p.X-g.X0, p.Y-g.Y0

	a := cdx*cdx + cdy*cdy - dr*dr
	b := px*cdx + py*cdy + g.R0*dr
	c := px*px + py*py - g.R0*g.R0

	valid := func(t float64) bool { return g.R0+t*dr >= 0 }

	if math.Abs(a) < 1e-12 {
		if b == 0 {
			return 0, false
		}
		t := c / (2 * b)
		return t, valid(t)
	}
	disc := b*b - a*c
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	t1 := (b + sq) / a
	t2 := (b - sq) / a
	if t1 < t2 {
		t1, t2 = t2, t1
	}
	if valid(t1) {
		return t1, true
	}
	if valid(t2) {
		return t2, true
	}
	return 0, false
}

// colorAtStops interpolates sorted stops in premultiplied space with pad
// extension.
func colorAtStops(stops []ColorStop, t float64) RGBA {
	if t <= stops[0].Offset {
		return stops[0].Color
	}
	last := stops[len(stops)-1]
	if t >= last.Offset {
		return last.Color
	}
	for i := 1; i < len(stops); i++ {
		s0, s1 := stops[i-1], stops[i]
		if t > s1.Offset {
			continue
		}
		span := s1.Offset - s0.Offset
		if span <= 0 {
			return s1.Color
		}
		f := (t - s0.Offset) / span
		return unpremultiply(s0.Color.Premultiply().Lerp(s1.Color.Premultiply(), f))
	}
	return last.Color
}

func unpremultiply(c RGBA) RGBA {
	if c.A <= 0 {
		return Transparent
	}
	return RGBA{R: c.R / c.A, G: c.G / c.A, B: c.B / c.A, A: c.A}
}
