package canvas

import (
	"math"

	"github.com/gogpu/canvas/internal/path"
	"github.com/gogpu/canvas/internal/raster"
	"github.com/gogpu/canvas/internal/stroke"
)

// BeginPath discards the current path.
func (r *Renderer) BeginPath() {
	r.exec(r.builder.BeginPath)
}

// MoveTo starts a new subpath of the current path.
func (r *Renderer) MoveTo(x, y float64) {
	r.exec(func() { r.builder.path.MoveTo(x, y) })
}

// LineTo adds a line to the current path.
func (r *Renderer) LineTo(x, y float64) {
	r.exec(func() { r.builder.path.LineTo(x, y) })
}

// BezierCurveTo adds a cubic Bezier curve to the current path.
func (r *Renderer) BezierCurveTo(c1x, c1y, c2x, c2y, x, y float64) {
	r.exec(func() { r.builder.path.BezierCurveTo(c1x, c1y, c2x, c2y, x, y) })
}

// QuadraticCurveTo adds a quadratic Bezier curve to the current path.
func (r *Renderer) QuadraticCurveTo(cx, cy, x, y float64) {
	r.exec(func() { r.builder.path.QuadraticCurveTo(cx, cy, x, y) })
}

// Arc adds a circular arc to the current path.
func (r *Renderer) Arc(cx, cy, radius, startAngle, endAngle float64, anticlockwise bool) {
	r.exec(func() { r.builder.path.Arc(cx, cy, radius, startAngle, endAngle, anticlockwise) })
}

// ArcTo adds a tangent arc to the current path.
func (r *Renderer) ArcTo(x1, y1, x2, y2, radius float64) {
	r.exec(func() { r.builder.path.ArcTo(x1, y1, x2, y2, radius) })
}

// Ellipse adds an elliptical arc to the current path.
func (r *Renderer) Ellipse(cx, cy, rx, ry, rotation, startAngle, endAngle float64, anticlockwise bool) {
	r.exec(func() {
		r.builder.path.Ellipse(cx, cy, rx, ry, rotation, startAngle, endAngle, anticlockwise)
	})
}

// Rect adds a closed rectangle to the current path.
func (r *Renderer) Rect(x, y, w, h float64) {
	r.exec(func() { r.builder.path.Rect(x, y, w, h) })
}

// ClosePath closes the current subpath.
func (r *Renderer) ClosePath() {
	r.exec(func() { r.builder.path.ClosePath() })
}

// AddPath appends SVG path data to the current path. Malformed data is
// logged; the commands before the error are kept.
func (r *Renderer) AddPath(svg string) {
	r.exec(func() {
		if err := r.builder.path.AddSVGPath(svg); err != nil {
			Logger().Warn("canvas: add path", "err", err)
		}
	})
}

// SetFillRuleForPath sets the fill rule used by Fill, Stroke and Clip.
func (r *Renderer) SetFillRuleForPath(rule FillRule) {
	r.exec(func() { r.builder.SetFillRuleForPath(rule) })
}

// SetFillRuleForPath2D sets the fill rule used by the Path2D variants.
func (r *Renderer) SetFillRuleForPath2D(rule FillRule) {
	r.exec(func() { r.builder.SetFillRuleForPath2D(rule) })
}

// PathBuilder returns the builder holding the current path and the
// Path2D slot after flushing.
func (r *Renderer) PathBuilder() *PathBuilder {
	r.Flush()
	return r.builder
}

// Fill fills the current path.
func (r *Renderer) Fill() {
	r.exec(func() {
		r.fillPath(r.builder.path, r.builder.pathRule, r.state.paint.FillPaint(), passBoth)
	})
}

// FillPath2D fills p. The Path2D slot is reset afterwards.
func (r *Renderer) FillPath2D(p *Path2D) {
	snap := snapshotPath2D(p)
	r.exec(func() {
		r.builder.LoadPath2D(snap)
		r.fillPath(r.builder.path2d, r.builder.path2dRule, r.state.paint.FillPaint(), passBoth)
		r.builder.ResetPath2D()
	})
}

// Stroke strokes the current path.
func (r *Renderer) Stroke() {
	r.exec(func() {
		r.strokePath(r.builder.path, r.state.paint.StrokePaint(), passBoth)
	})
}

// StrokePath2D strokes p. The Path2D slot is reset afterwards.
func (r *Renderer) StrokePath2D(p *Path2D) {
	snap := snapshotPath2D(p)
	r.exec(func() {
		r.builder.LoadPath2D(snap)
		r.strokePath(r.builder.path2d, r.state.paint.StrokePaint(), passBoth)
		r.builder.ResetPath2D()
	})
}

// Clip intersects the clip region with the current path.
func (r *Renderer) Clip() {
	r.exec(func() { r.clipPath(r.builder.path, r.builder.pathRule) })
}

// ClipPath2D intersects the clip region with p.
func (r *Renderer) ClipPath2D(p *Path2D) {
	snap := snapshotPath2D(p)
	r.exec(func() {
		r.builder.LoadPath2D(snap)
		r.clipPath(r.builder.path2d, r.builder.path2dRule)
		r.builder.ResetPath2D()
	})
}

// FillRect fills a rectangle without touching the current path.
func (r *Renderer) FillRect(x, y, w, h float64) {
	r.exec(func() {
		p := NewPath()
		p.Rect(x, y, w, h)
		r.fillPath(p, FillRuleNonZero, r.state.paint.FillPaint(), passBoth)
	})
}

// StrokeRect strokes a rectangle without touching the current path.
func (r *Renderer) StrokeRect(x, y, w, h float64) {
	r.exec(func() {
		p := NewPath()
		p.Rect(x, y, w, h)
		r.strokePath(p, r.state.paint.StrokePaint(), passBoth)
	})
}

// ClearRect sets the pixels of a rectangle to transparent black inside
// the clip region. Composite, alpha and shadow do not apply.
func (r *Renderer) ClearRect(x, y, w, h float64) {
	r.exec(func() {
		if !r.hasPixels() {
			return
		}
		p := NewPath()
		p.Rect(x, y, w, h)
		mask := r.fillMask(p, FillRuleNonZero)
		if mask == nil {
			return
		}
		mask.Intersect(r.state.clip)
		r.canvas.Erase(newCoverage(mask))
	})
}

func snapshotPath2D(p *Path2D) *Path2D {
	if p == nil || p.Path == nil {
		return nil
	}
	return &Path2D{Path: p.Clone()}
}

// fillMask rasterizes p in device space.
func (r *Renderer) fillMask(p *Path, rule FillRule) *raster.Mask {
	m := r.deviceMatrix()
	if m.Determinant() == 0 || p.IsEmpty() {
		return nil
	}
	subs := p.Flatten(m, path.DefaultTolerance)
	polys := make([][]raster.Point, 0, len(subs))
	for _, s := range subs {
		polys = append(polys, toRasterPoints(s.Points))
	}
	return r.raster.Fill(polys, rasterRule(rule))
}

func (r *Renderer) fillPath(p *Path, rule FillRule, paint Paint, pass shadowPass) {
	if !r.hasPixels() {
		return
	}
	mask := r.fillMask(p, rule)
	if mask == nil {
		return
	}
	r.paint(mask, paint, r.shaderFor(paint.Style), pass)
}

// strokeMask expands p into stroke polygons in user space and rasterizes
// them in device space.
func (r *Renderer) strokeMask(p *Path, paint Paint) *raster.Mask {
	m := r.deviceMatrix()
	scale := m.ScaleFactor()
	if scale == 0 || m.Determinant() == 0 || p.IsEmpty() || paint.LineWidth <= 0 {
		return nil
	}
	tol := path.DefaultTolerance / scale

	subs := p.Flatten(Identity(), tol)
	lines := make([]stroke.Polyline, 0, len(subs))
	for _, s := range subs {
		pts := make([]stroke.Point, len(s.Points))
		for i, pt := range s.Points {
			pts[i] = stroke.Point{X: pt.X, Y: pt.Y}
		}
		lines = append(lines, stroke.Polyline{Points: pts, Closed: s.Closed})
	}
	if len(paint.Dash) > 0 {
		lines = stroke.Dash(lines, paint.Dash, paint.DashOffset)
	}

	polys := stroke.Expand(lines, stroke.Style{
		Width:      paint.LineWidth,
		Cap:        stroke.LineCap(paint.LineCap),
		Join:       stroke.LineJoin(paint.LineJoin),
		MiterLimit: paint.MiterLimit,
		Tolerance:  tol,
	})
	dev := make([][]raster.Point, len(polys))
	for i, poly := range polys {
		out := make([]raster.Point, len(poly))
		for j, pt := range poly {
			q := m.TransformPoint(Pt(pt.X, pt.Y))
			out[j] = raster.Point{X: q.X, Y: q.Y}
		}
		dev[i] = out
	}
	return r.raster.Fill(dev, raster.FillRuleNonZero)
}

func (r *Renderer) strokePath(p *Path, paint Paint, pass shadowPass) {
	if !r.hasPixels() {
		return
	}
	mask := r.strokeMask(p, paint)
	if mask == nil {
		return
	}
	r.paint(mask, paint, r.shaderFor(paint.Style), pass)
}

func (r *Renderer) clipPath(p *Path, rule FillRule) {
	if !r.hasPixels() {
		return
	}
	mask := r.fillMask(p, rule)
	if mask == nil {
		// An empty or degenerate path clips everything away.
		mask = raster.NewMask(r.bmpW, r.bmpH)
	}
	mask.Intersect(r.state.clip)
	r.state.clip = mask
}

func toRasterPoints(pts []path.Point) []raster.Point {
	out := make([]raster.Point, len(pts))
	for i, p := range pts {
		out[i] = raster.Point{X: p.X, Y: p.Y}
	}
	return out
}

func rasterRule(rule FillRule) raster.FillRule {
	if rule == FillRuleEvenOdd {
		return raster.FillRuleEvenOdd
	}
	return raster.FillRuleNonZero
}

// degenerate reports whether a value cannot be drawn.
func degenerate(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}
