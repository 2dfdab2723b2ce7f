package canvas

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func deg(d float64) float64 { return d * math.Pi / 180 }

func TestArcSweeps(t *testing.T) {
	tests := []struct {
		name          string
		start, end    float64 // degrees
		anticlockwise bool
		want          []float64
	}{
		{"quarter clockwise", 0, 90, false, []float64{90}},
		{"quarter anticlockwise", 90, 0, true, []float64{-90}},
		{"clockwise wraps", 90, 0, false, []float64{270}},
		{"anticlockwise wraps", 0, 90, true, []float64{-270}},
		{"full circle", 0, 360, false, []float64{180, 180}},
		{"full circle anticlockwise", 0, -360, true, []float64{-180, -180}},
		{"two turns", 0, 720, false, []float64{180, 180}},
		{"more than a turn", 0, 450, false, []float64{180, 180, 90}},
		{"more than a turn anticlockwise", 0, -450, true, []float64{-180, -180, -90}},
		{"equal angles", 30, 30, false, []float64{0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, sweeps := ArcSweeps(deg(tt.start), deg(tt.end), tt.anticlockwise)
			if math.Abs(start-tt.start) > 1e-9 {
				t.Errorf("start = %v, want %v", start, tt.start)
			}
			if diff := cmp.Diff(tt.want, sweeps, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
				t.Errorf("sweeps mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestArcSweepsTotal(t *testing.T) {
	for _, anticlockwise := range []bool{false, true} {
		for s := -720.0; s <= 720; s += 45 {
			for e := -720.0; e <= 720; e += 45 {
				_, sweeps := ArcSweeps(deg(s), deg(e), anticlockwise)
				if n := len(sweeps); n < 1 || n > 3 {
					t.Fatalf("start=%v end=%v: %d segments", s, e, n)
				}
				want := e - s
				if anticlockwise && want > 0 {
					want -= 360
				} else if !anticlockwise && want < 0 {
					want += 360
				}
				if math.Mod(want, 360) == 0 && s != e {
					want = math.Copysign(360, want)
				}
				total := 0.0
				for _, v := range sweeps {
					total += v
				}
				if math.Abs(total-want) > 1e-6 {
					t.Errorf("start=%v end=%v ccw=%v: total %v, want %v", s, e, anticlockwise, total, want)
				}
			}
		}
	}
}

func TestArcFullCircle(t *testing.T) {
	p := NewPath()
	p.Arc(50, 50, 10, 0, 2*math.Pi, false)

	cubics := 0
	for _, e := range p.Elements() {
		if _, ok := e.(CubicTo); ok {
			cubics++
		}
	}
	if cubics != 4 {
		t.Errorf("full circle produced %d cubics, want 4", cubics)
	}
	if got := p.CurrentPoint(); !pointNear(got, Pt(60, 50)) {
		t.Errorf("end point = %v, want (60,50)", got)
	}
	b := p.Bounds()
	if math.Abs(b.X-40) > 0.1 || math.Abs(b.Right()-60) > 0.1 {
		t.Errorf("bounds = %+v", b)
	}
}

func TestArcBeyondTwoTurns(t *testing.T) {
	tests := []struct {
		name          string
		end           float64 // degrees
		anticlockwise bool
		wantSweeps    []float64
		wantCubics    int
		wantEnd       Point
	}{
		{"two and a quarter turns", 810, false, []float64{180, 180, 450}, 4, Pt(60, 50)},
		{"two and a quarter turns anticlockwise", -810, true, []float64{-180, -180, -450}, 4, Pt(60, 50)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, sweeps := ArcSweeps(0, deg(tt.end), tt.anticlockwise)
			if diff := cmp.Diff(tt.wantSweeps, sweeps, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
				t.Errorf("sweeps mismatch (-want +got):\n%s", diff)
			}

			p := NewPath()
			p.Arc(50, 50, 10, 0, deg(tt.end), tt.anticlockwise)
			cubics := 0
			for _, e := range p.Elements() {
				if _, ok := e.(CubicTo); ok {
					cubics++
				}
			}
			if cubics != tt.wantCubics {
				t.Errorf("cubics = %d, want %d", cubics, tt.wantCubics)
			}
			if got := p.CurrentPoint(); !pointNear(got, tt.wantEnd) {
				t.Errorf("end point = %v, want %v", got, tt.wantEnd)
			}
		})
	}
}

func TestArcConnectsWithLine(t *testing.T) {
	p := NewPath()
	p.MoveTo(0, 0)
	p.Arc(20, 0, 5, 0, math.Pi/2, false)
	if _, ok := p.Elements()[1].(LineTo); !ok {
		t.Fatalf("second element = %T, want LineTo", p.Elements()[1])
	}
}

func TestEllipseEqualAnglesIsNoop(t *testing.T) {
	p := NewPath()
	p.Ellipse(10, 10, 5, 3, 0.5, 1, 1, false)
	if !p.IsEmpty() {
		t.Errorf("ellipse with equal angles added %d elements", len(p.Elements()))
	}
}

func TestEllipseRotation(t *testing.T) {
	p := NewPath()
	p.Ellipse(0, 0, 10, 5, math.Pi/2, 0, math.Pi/2, false)
	// The start point (10, 0) rotated by 90 degrees.
	start := p.Elements()[0].(MoveTo).Point
	if !pointNear(start, Pt(0, 10)) {
		t.Errorf("start = %v, want (0,10)", start)
	}
	if end := p.CurrentPoint(); !pointNear(end, Pt(-5, 0)) {
		t.Errorf("end = %v, want (-5,0)", end)
	}
}

func TestEllipseKeepsEarlierGeometry(t *testing.T) {
	p := NewPath()
	p.MoveTo(100, 0)
	p.LineTo(100, 50)
	p.Ellipse(0, 0, 10, 5, 0.7, 0, math.Pi, false)
	if got := p.Elements()[0].(MoveTo).Point; !pointNear(got, Pt(100, 0)) {
		t.Errorf("first point moved to %v", got)
	}
}

func TestArcTo(t *testing.T) {
	t.Run("corner", func(t *testing.T) {
		p := NewPath()
		p.MoveTo(0, 0)
		p.ArcTo(10, 0, 10, 10, 5)
		// Tangent points are (5,0) and (10,5).
		if _, ok := p.Elements()[1].(LineTo); !ok {
			t.Fatalf("element 1 = %T, want LineTo", p.Elements()[1])
		}
		if got := p.Elements()[1].(LineTo).Point; !pointNear(got, Pt(5, 0)) {
			t.Errorf("line to %v, want (5,0)", got)
		}
		if got := p.CurrentPoint(); !pointNear(got, Pt(10, 5)) {
			t.Errorf("end = %v, want (10,5)", got)
		}
	})
	t.Run("collinear", func(t *testing.T) {
		p := NewPath()
		p.MoveTo(0, 0)
		p.ArcTo(10, 0, 20, 0, 5)
		if got := p.CurrentPoint(); !pointNear(got, Pt(10, 0)) {
			t.Errorf("end = %v, want (10,0)", got)
		}
	})
	t.Run("zero radius", func(t *testing.T) {
		p := NewPath()
		p.MoveTo(0, 0)
		p.ArcTo(10, 0, 10, 10, 0)
		if len(p.Elements()) != 2 {
			t.Errorf("got %d elements, want 2", len(p.Elements()))
		}
	})
}

func TestParseSVGPath(t *testing.T) {
	tests := []struct {
		name string
		d    string
		want []PathElement
	}{
		{
			name: "absolute",
			d:    "M10 10 L20 10 H30 V20 Z",
			want: []PathElement{
				MoveTo{Pt(10, 10)}, LineTo{Pt(20, 10)}, LineTo{Pt(30, 10)}, LineTo{Pt(30, 20)}, Close{},
			},
		},
		{
			name: "relative with implicit lineto",
			d:    "m1,1 2,0 0,2z",
			want: []PathElement{
				MoveTo{Pt(1, 1)}, LineTo{Pt(3, 1)}, LineTo{Pt(3, 3)}, Close{},
			},
		},
		{
			name: "smooth cubic reflects control",
			d:    "M0 0 C0 10 10 10 10 0 S20 -10 20 0",
			want: []PathElement{
				MoveTo{Pt(0, 0)},
				CubicTo{Pt(0, 10), Pt(10, 10), Pt(10, 0)},
				CubicTo{Pt(10, -10), Pt(20, -10), Pt(20, 0)},
			},
		},
		{
			name: "smooth quad",
			d:    "M0 0 Q5 5 10 0 T20 0",
			want: []PathElement{
				MoveTo{Pt(0, 0)},
				QuadTo{Pt(5, 5), Pt(10, 0)},
				QuadTo{Pt(15, -5), Pt(20, 0)},
			},
		},
		{
			name: "exponent and signs",
			d:    "M1e1-5L.5.5",
			want: []PathElement{MoveTo{Pt(10, -5)}, LineTo{Pt(0.5, 0.5)}},
		},
		{
			name: "signed exponents",
			d:    "M1E+2,2e-1l+3-.25",
			want: []PathElement{MoveTo{Pt(100, 0.2)}, LineTo{Pt(103, -0.05)}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ParseSVGPath(tt.d)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, p.Elements(), cmpopts.EquateApprox(0, 1e-9)); diff != "" {
				t.Errorf("elements mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseSVGPathArc(t *testing.T) {
	p, err := ParseSVGPath("M0 0 A10 10 0 0 1 20 0")
	if err != nil {
		t.Fatal(err)
	}
	if got := p.CurrentPoint(); !pointNear(got, Pt(20, 0)) {
		t.Errorf("end = %v, want (20,0)", got)
	}
	// Clockwise sweep in y-down space bulges toward negative y.
	if b := p.Bounds(); b.Y > -9 {
		t.Errorf("bounds %+v do not reach the top of the half circle", b)
	}

	compact, err := ParseSVGPath("M0 0a10 10 0 1020 0")
	if err != nil {
		t.Fatal(err)
	}
	if got := compact.CurrentPoint(); !pointNear(got, Pt(20, 0)) {
		t.Errorf("compact flags end = %v, want (20,0)", got)
	}
}

func TestParseSVGPathErrors(t *testing.T) {
	for _, d := range []string{"10 10", "M10", "M0 0 A1 1 0 2 0 5 5", "M0 0 L x", "M0 0 L1 e5", "M0 0 C1 2 3"} {
		if _, err := ParseSVGPath(d); err == nil {
			t.Errorf("ParseSVGPath(%q) succeeded, want error", d)
		}
	}
}

func TestPath2DTransform(t *testing.T) {
	p := NewPath2D()
	p.Rect(0, 0, 10, 10)
	p.Transform(2, 0, 0, 2, 5, 5)
	b := p.Bounds()
	want := Rect{X: 5, Y: 5, Width: 20, Height: 20}
	if diff := cmp.Diff(want, b, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("bounds mismatch (-want +got):\n%s", diff)
	}
}

func TestPathFlattenAppliesMatrix(t *testing.T) {
	p := NewPath()
	p.MoveTo(0, 0)
	p.LineTo(1, 0)
	p.LineTo(1, 1)
	p.Close()
	subs := p.Flatten(Scale(10, 10), 0.1)
	if len(subs) != 1 || !subs[0].Closed {
		t.Fatalf("got %d subpaths", len(subs))
	}
	last := subs[0].Points[2]
	if last.X != 10 || last.Y != 10 {
		t.Errorf("point = %v, want (10,10)", last)
	}
}
