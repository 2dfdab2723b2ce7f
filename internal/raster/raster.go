// Package raster provides scanline rasterization for 2D polygons.
//
// An anti-aliasing rasterizer samples each pixel row at SubScanlines evenly
// spaced heights and accumulates exact horizontal span coverage, producing
// a coverage Mask in [0, 1] per pixel. With anti-aliasing off a pixel is
// either fully covered or not, decided by its center with the top-left
// rule: a center on a top or left edge is inside, on a bottom or right
// edge outside.
package raster

import (
	"math"
	"sort"
)

// Point is a polygon vertex in device pixels.
type Point struct {
	X, Y float64
}

// FillRule specifies how to determine which areas are inside a path.
type FillRule int

const (
	// FillRuleNonZero uses the non-zero winding rule.
	FillRuleNonZero FillRule = iota
	// FillRuleEvenOdd uses the even-odd rule.
	FillRuleEvenOdd
)

// SubScanlines is the number of vertical samples per pixel row.
const SubScanlines = 4

// edge is a non-horizontal polygon edge with y0 < y1.
type edge struct {
	x0, y0 float64
	x1, y1 float64
	dxdy   float64
	dir    int
}

func newEdge(p0, p1 Point) edge {
	dir := 1
	if p0.Y > p1.Y {
		p0, p1 = p1, p0
		dir = -1
	}
	return edge{
		x0: p0.X, y0: p0.Y,
		x1: p1.X, y1: p1.Y,
		dxdy: (p1.X - p0.X) / (p1.Y - p0.Y),
		dir:  dir,
	}
}

func (e *edge) xAt(y float64) float64 {
	return e.x0 + (y-e.y0)*e.dxdy
}

// crossing is an intersection of a sample line with an edge.
type crossing struct {
	x   float64
	dir int
}

// Rasterizer converts polygons into coverage masks.
// A Rasterizer reuses its scratch buffers and is not safe for concurrent use.
type Rasterizer struct {
	width   int
	height  int
	aliased bool

	edges     []edge
	active    []*edge
	crossings []crossing
	acc       []float32
}

// NewRasterizer creates a new rasterizer for the given dimensions.
func NewRasterizer(width, height int) *Rasterizer {
	return &Rasterizer{
		width:  width,
		height: height,
		acc:    make([]float32, width+1),
	}
}

// SetAntialias switches between fractional coverage (the default) and
// pixel-center sampling.
func (r *Rasterizer) SetAntialias(on bool) { r.aliased = !on }

// Antialias reports whether fractional coverage is produced.
func (r *Rasterizer) Antialias() bool { return !r.aliased }

// Width returns the target width.
func (r *Rasterizer) Width() int { return r.width }

// Height returns the target height.
func (r *Rasterizer) Height() int { return r.height }

// Fill rasterizes closed polygons and returns their coverage.
// Every polygon is implicitly closed back to its first vertex.
func (r *Rasterizer) Fill(polygons [][]Point, rule FillRule) *Mask {
	mask := NewMask(r.width, r.height)
	r.FillInto(mask, polygons, rule)
	return mask
}

// FillInto rasterizes polygons into an existing mask, replacing its content.
func (r *Rasterizer) FillInto(mask *Mask, polygons [][]Point, rule FillRule) {
	mask.Clear()
	r.edges = r.edges[:0]
	for _, poly := range polygons {
		n := len(poly)
		if n < 2 {
			continue
		}
		for i := 0; i < n; i++ {
			p0 := poly[i]
			p1 := poly[(i+1)%n]
			if p0.Y == p1.Y || !finite(p0) || !finite(p1) {
				continue
			}
			r.edges = append(r.edges, newEdge(p0, p1))
		}
	}
	if len(r.edges) == 0 {
		return
	}

	sort.Slice(r.edges, func(i, j int) bool { return r.edges[i].y0 < r.edges[j].y0 })

	yMin := int(math.Floor(r.edges[0].y0))
	yMax := 0
	for i := range r.edges {
		if y := int(math.Ceil(r.edges[i].y1)); y > yMax {
			yMax = y
		}
	}
	yMin = max(yMin, 0)
	yMax = min(yMax, r.height)

	samples := SubScanlines
	if r.aliased {
		samples = 1
	}
	weight := float32(1) / float32(samples)
	next := 0
	r.active = r.active[:0]
	for y := yMin; y < yMax; y++ {
		clear(r.acc)
		touched := false
		for s := 0; s < samples; s++ {
			sy := float64(y) + (float64(s)+0.5)/float64(samples)

			for next < len(r.edges) && r.edges[next].y0 <= sy {
				r.active = append(r.active, &r.edges[next])
				next++
			}
			kept := r.active[:0]
			for _, e := range r.active {
				if e.y1 > sy {
					kept = append(kept, e)
				}
			}
			r.active = kept

			r.crossings = r.crossings[:0]
			for _, e := range r.active {
				if e.y0 <= sy {
					r.crossings = append(r.crossings, crossing{x: e.xAt(sy), dir: e.dir})
				}
			}
			if len(r.crossings) < 2 {
				continue
			}
			sort.Slice(r.crossings, func(i, j int) bool { return r.crossings[i].x < r.crossings[j].x })
			if r.spans(rule, weight) {
				touched = true
			}
		}
		if touched {
			row := mask.Data[y*r.width : (y+1)*r.width]
			for x := range row {
				row[x] = min(r.acc[x], 1)
			}
		}
	}
}

// spans walks the sorted crossings and accumulates inside spans.
func (r *Rasterizer) spans(rule FillRule, w float32) bool {
	hit := false
	winding := 0
	for i := 0; i+1 < len(r.crossings); i++ {
		c := r.crossings[i]
		if rule == FillRuleEvenOdd {
			winding ^= 1
		} else {
			winding += c.dir
		}
		if winding != 0 {
			r.addSpan(c.x, r.crossings[i+1].x, w)
			hit = true
		}
	}
	return hit
}

// addSpan adds w of coverage over [xa, xb), with fractional end pixels.
func (r *Rasterizer) addSpan(xa, xb float64, w float32) {
	xa = math.Max(xa, 0)
	xb = math.Min(xb, float64(r.width))
	if xb <= xa {
		return
	}
	if r.aliased {
		// Pixels whose centers lie in [xa, xb).
		ia := int(math.Ceil(xa - 0.5))
		ib := int(math.Ceil(xb - 0.5))
		for i := ia; i < ib; i++ {
			r.acc[i] += w
		}
		return
	}
	ia := int(xa)
	ib := int(xb)
	if ia == ib {
		r.acc[ia] += w * float32(xb-xa)
		return
	}
	r.acc[ia] += w * float32(float64(ia+1)-xa)
	for i := ia + 1; i < ib; i++ {
		r.acc[i] += w
	}
	if ib < r.width {
		r.acc[ib] += w * float32(xb-float64(ib))
	}
}

func finite(p Point) bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}
