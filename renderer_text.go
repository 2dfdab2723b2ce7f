package canvas

import (
	"math"

	"github.com/gogpu/canvas/text"
	textcache "github.com/gogpu/canvas/text/cache"
)

// FillText fills s at (x, y) using the current font, alignment and
// baseline. With a maxWidth narrower than the text, the text is condensed
// horizontally to fit.
func (r *Renderer) FillText(s string, x, y float64, maxWidth ...float64) {
	mw := optionalMaxWidth(maxWidth)
	r.exec(func() { r.paintText(s, x, y, mw, false) })
}

// StrokeText strokes s at (x, y). With a shadow set, the shadow is
// painted in a separate pass before the unshadowed stroke.
func (r *Renderer) StrokeText(s string, x, y float64, maxWidth ...float64) {
	mw := optionalMaxWidth(maxWidth)
	r.exec(func() { r.paintText(s, x, y, mw, true) })
}

func optionalMaxWidth(v []float64) float64 {
	if len(v) == 0 || math.IsNaN(v[0]) {
		return math.Inf(1)
	}
	return v[0]
}

// MeasureText returns the advance width of s in the current font.
func (r *Renderer) MeasureText(s string) float64 {
	p := r.paragraph(s)
	if p == nil {
		return 0
	}
	return p.LongestLine()
}

// MeasureTextHeight returns the line height of s in the current font.
func (r *Renderer) MeasureTextHeight(s string) float64 {
	p := r.paragraph(s)
	if p == nil {
		return 0
	}
	return p.Height()
}

// MeasureTextMetrics returns the full metrics of s for the current font,
// alignment and baseline.
func (r *Renderer) MeasureTextMetrics(s string) text.TextMetrics {
	p := r.paragraph(s)
	if p == nil {
		return text.TextMetrics{}
	}
	ps := &r.state.paint
	return text.Measure(p, ps.TextAlign, ps.TextBaseline)
}

// paragraph flushes and lays out s in the current font.
func (r *Renderer) paragraph(s string) *text.Paragraph {
	r.Flush()
	return r.layoutText(s)
}

// layoutText returns the paragraph for s in the current font, shaping it
// only on a shaping cache miss.
func (r *Renderer) layoutText(s string) *text.Paragraph {
	ps := &r.state.paint
	face, err := r.fonts.Face(ps.Font)
	if err != nil {
		Logger().Warn("canvas: layout text", "err", err)
		return nil
	}
	key := textcache.NewShapingKey(s, face.ID(), ps.Font, ps.Direction)
	p, err := r.shaping.GetOrCreate(key, func() (*text.Paragraph, error) {
		return text.NewParagraphFace(face, s, ps.Font, ps.Direction)
	})
	if err != nil {
		Logger().Warn("canvas: layout text", "err", err)
		return nil
	}
	return p
}

func (r *Renderer) paintText(s string, x, y, maxWidth float64, strokeText bool) {
	if !r.hasPixels() || s == "" || maxWidth <= 0 {
		return
	}
	p := r.layoutText(s)
	if p == nil {
		return
	}
	width := p.LongestLine()
	scaleX := 1.0
	if maxWidth < width {
		scaleX = maxWidth / width
		width = maxWidth
	}

	ps := &r.state.paint
	ox := x + text.AlignOffset(ps.TextAlign, p.Direction(), width)
	oy := y + text.BaselineOffset(ps.TextBaseline, p)

	outline := NewPath()
	if err := p.Outline(outline, ox, oy, scaleX); err != nil {
		Logger().Warn("canvas: text outline", "err", err)
		return
	}

	if !strokeText {
		r.fillPath(outline, FillRuleNonZero, ps.FillPaint(), passBoth)
		return
	}
	paint := ps.StrokePaint()
	if paint.Shadow.visible() {
		r.strokePath(outline, paint, passShadowOnly)
		r.strokePath(outline, paint, passShapeOnly)
		return
	}
	r.strokePath(outline, paint, passBoth)
}
