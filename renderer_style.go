package canvas

import (
	"image"

	"github.com/gogpu/canvas/text"
)

// SetFillStyle sets the fill style.
func (r *Renderer) SetFillStyle(s Style) {
	r.exec(func() { r.state.paint.FillStyle = s })
}

// SetStrokeStyle sets the stroke style.
func (r *Renderer) SetStrokeStyle(s Style) {
	r.exec(func() { r.state.paint.StrokeStyle = s })
}

// SetFillColor sets the fill style from a CSS color string. Unparsable
// strings are ignored.
func (r *Renderer) SetFillColor(color string) {
	if c, ok := ParseColor(color); ok {
		r.SetFillStyle(ColorStyle(c))
	}
}

// SetStrokeColor sets the stroke style from a CSS color string.
// Unparsable strings are ignored.
func (r *Renderer) SetStrokeColor(color string) {
	if c, ok := ParseColor(color); ok {
		r.SetStrokeStyle(ColorStyle(c))
	}
}

// SetFillARGB sets the fill style from a packed 0xAARRGGBB color.
func (r *Renderer) SetFillARGB(argb uint32) {
	r.SetFillStyle(ColorStyle(FromARGB(argb)))
}

// SetStrokeARGB sets the stroke style from a packed 0xAARRGGBB color.
func (r *Renderer) SetStrokeARGB(argb uint32) {
	r.SetStrokeStyle(ColorStyle(FromARGB(argb)))
}

// SetFont sets the font from a CSS font shorthand.
func (r *Renderer) SetFont(font string) {
	style := text.ParseFont(font)
	r.exec(func() { r.state.paint.Font = style })
}

// SetLineWidth sets the stroke width. Non-positive values are ignored.
func (r *Renderer) SetLineWidth(w float64) {
	if w <= 0 || degenerate(w) {
		return
	}
	r.exec(func() { r.state.paint.LineWidth = w })
}

// SetLineCap sets the line cap.
func (r *Renderer) SetLineCap(c LineCap) {
	r.exec(func() { r.state.paint.LineCap = c })
}

// SetLineJoin sets the line join.
func (r *Renderer) SetLineJoin(j LineJoin) {
	r.exec(func() { r.state.paint.LineJoin = j })
}

// SetMiterLimit sets the miter limit. Non-positive values are ignored.
func (r *Renderer) SetMiterLimit(limit float64) {
	if limit <= 0 || degenerate(limit) {
		return
	}
	r.exec(func() { r.state.paint.MiterLimit = limit })
}

// SetLineDash sets the dash array; see PaintState.SetLineDash.
func (r *Renderer) SetLineDash(segments []float64) {
	d := append([]float64(nil), segments...)
	r.exec(func() { r.state.paint.SetLineDash(d) })
}

// LineDash returns the normalized dash array after flushing.
func (r *Renderer) LineDash() []float64 {
	r.Flush()
	return r.state.paint.LineDash()
}

// SetLineDashOffset sets the dash phase.
func (r *Renderer) SetLineDashOffset(offset float64) {
	if degenerate(offset) {
		return
	}
	r.exec(func() { r.state.paint.LineDashOffset = offset })
}

// SetGlobalAlpha sets the global alpha. Values outside [0, 1] are ignored.
func (r *Renderer) SetGlobalAlpha(a float64) {
	r.exec(func() { r.state.paint.Global.SetAlpha(a) })
}

// SetGlobalCompositeOperation sets the composite operation.
func (r *Renderer) SetGlobalCompositeOperation(op CompositeOperation) {
	r.exec(func() { r.state.paint.Global.Composite = op })
}

// SetShadowBlur sets the shadow blur. Negative values are ignored.
func (r *Renderer) SetShadowBlur(blur float64) {
	if blur < 0 || degenerate(blur) {
		return
	}
	r.exec(func() { r.state.paint.Shadow.Blur = blur })
}

// SetShadowColor sets the shadow color.
func (r *Renderer) SetShadowColor(c RGBA) {
	r.exec(func() { r.state.paint.Shadow.Color = c })
}

// SetShadowOffsetX sets the horizontal shadow offset.
func (r *Renderer) SetShadowOffsetX(x float64) {
	if degenerate(x) {
		return
	}
	r.exec(func() { r.state.paint.Shadow.OffsetX = x })
}

// SetShadowOffsetY sets the vertical shadow offset.
func (r *Renderer) SetShadowOffsetY(y float64) {
	if degenerate(y) {
		return
	}
	r.exec(func() { r.state.paint.Shadow.OffsetY = y })
}

// SetTextAlign sets the text alignment.
func (r *Renderer) SetTextAlign(a text.Align) {
	r.exec(func() { r.state.paint.TextAlign = a })
}

// SetTextBaseline sets the text baseline.
func (r *Renderer) SetTextBaseline(b text.Baseline) {
	r.exec(func() { r.state.paint.TextBaseline = b })
}

// SetDirection sets the text direction.
func (r *Renderer) SetDirection(d text.Direction) {
	r.exec(func() { r.state.paint.Direction = d })
}

// SetImageSmoothingEnabled toggles filtering of scaled images.
func (r *Renderer) SetImageSmoothingEnabled(enabled bool) {
	r.exec(func() { r.state.paint.ImageSmoothingEnabled = enabled })
}

// SetImageSmoothingQuality selects the filter of scaled images.
func (r *Renderer) SetImageSmoothingQuality(q ImageSmoothingQuality) {
	r.exec(func() { r.state.paint.ImageSmoothingQuality = q })
}

// CreateLinearGradient creates a linear gradient.
func (r *Renderer) CreateLinearGradient(x0, y0, x1, y1 float64) *Gradient {
	return NewLinearGradient(x0, y0, x1, y1)
}

// CreateRadialGradient creates a radial gradient.
func (r *Renderer) CreateRadialGradient(x0, y0, r0, x1, y1, r1 float64) *Gradient {
	return NewRadialGradient(x0, y0, r0, x1, y1, r1)
}

// CreateConicGradient creates a conic gradient.
func (r *Renderer) CreateConicGradient(startAngle, x, y float64) *Gradient {
	return NewConicGradient(startAngle, x, y)
}

// CreatePattern registers a pattern in this renderer's arena and returns
// its handle. The handle is valid only for this renderer.
func (r *Renderer) CreatePattern(img image.Image, repetition string) PatternID {
	return r.patterns.add(NewPattern(img, repetition))
}

// Pattern returns the pattern registered under id.
func (r *Renderer) Pattern(id PatternID) (*Pattern, bool) {
	return r.patterns.get(id)
}
