package canvas

import "github.com/gogpu/canvas/text"

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

// ParseLineCap parses "butt", "round" or "square".
func ParseLineCap(s string) (LineCap, bool) {
	switch s {
	case "butt":
		return LineCapButt, true
	case "round":
		return LineCapRound, true
	case "square":
		return LineCapSquare, true
	}
	return LineCapButt, false
}

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

// ParseLineJoin parses "miter", "round" or "bevel".
func ParseLineJoin(s string) (LineJoin, bool) {
	switch s {
	case "miter":
		return LineJoinMiter, true
	case "round":
		return LineJoinRound, true
	case "bevel":
		return LineJoinBevel, true
	}
	return LineJoinMiter, false
}

// FillRule specifies how to determine which areas are inside a path.
type FillRule int

const (
	// FillRuleNonZero uses the non-zero winding rule.
	FillRuleNonZero FillRule = iota
	// FillRuleEvenOdd uses the even-odd rule.
	FillRuleEvenOdd
)

// ParseFillRule parses "nonzero" or "evenodd".
func ParseFillRule(s string) (FillRule, bool) {
	switch s {
	case "nonzero":
		return FillRuleNonZero, true
	case "evenodd":
		return FillRuleEvenOdd, true
	}
	return FillRuleNonZero, false
}

// ImageSmoothingQuality selects the resampling filter for scaled images.
type ImageSmoothingQuality int

const (
	// SmoothingLow uses nearest-neighbor sampling.
	SmoothingLow ImageSmoothingQuality = iota
	// SmoothingMedium uses bilinear sampling.
	SmoothingMedium
	// SmoothingHigh uses Catmull-Rom sampling.
	SmoothingHigh
)

// ParseImageSmoothingQuality parses "low", "medium" or "high".
func ParseImageSmoothingQuality(s string) (ImageSmoothingQuality, bool) {
	switch s {
	case "low":
		return SmoothingLow, true
	case "medium":
		return SmoothingMedium, true
	case "high":
		return SmoothingHigh, true
	}
	return SmoothingLow, false
}

type styleKind uint8

const (
	styleColor styleKind = iota
	styleGradient
	stylePattern
)

// Style is a fill or stroke source: a color, a gradient or a pattern.
type Style struct {
	kind     styleKind
	color    RGBA
	gradient *Gradient
	pattern  PatternID
}

// ColorStyle returns a solid color style.
func ColorStyle(c RGBA) Style {
	return Style{kind: styleColor, color: c}
}

// GradientStyle returns a gradient style. A nil gradient yields black.
func GradientStyle(g *Gradient) Style {
	if g == nil {
		return ColorStyle(Black)
	}
	return Style{kind: styleGradient, gradient: g}
}

// PatternStyle returns a style that paints with a renderer pattern.
func PatternStyle(id PatternID) Style {
	return Style{kind: stylePattern, pattern: id}
}

// Color returns the style color and whether the style is a solid color.
func (s Style) Color() (RGBA, bool) { return s.color, s.kind == styleColor }

// Gradient returns the style gradient, or nil.
func (s Style) Gradient() *Gradient { return s.gradient }

// Pattern returns the pattern id and whether the style is a pattern.
func (s Style) Pattern() (PatternID, bool) { return s.pattern, s.kind == stylePattern }

// Shadow is the drop-shadow configuration.
type Shadow struct {
	OffsetX float64
	OffsetY float64
	Blur    float64
	Color   RGBA
}

// HasShadow reports whether the shadow has any offset or blur.
func (s Shadow) HasShadow() bool {
	return !(s.OffsetX == 0 && s.OffsetY == 0 && s.Blur == 0)
}

// visible reports whether drawing the shadow can change any pixel.
func (s Shadow) visible() bool {
	return s.HasShadow() && s.Color.A > 0
}

// GlobalState holds the cross-cutting paint modifiers.
type GlobalState struct {
	alpha     float64
	alphaSet  bool
	Composite CompositeOperation
}

// Alpha returns the global alpha, 1 when never set.
func (g GlobalState) Alpha() float64 {
	if !g.alphaSet {
		return 1
	}
	return g.alpha
}

// SetAlpha sets the global alpha. Values outside [0, 1] are ignored.
func (g *GlobalState) SetAlpha(a float64) {
	if a < 0 || a > 1 || a != a {
		return
	}
	g.alpha = a
	g.alphaSet = true
}

// PaintState is the complete style state saved and restored by the
// renderer.
type PaintState struct {
	FillStyle      Style
	StrokeStyle    Style
	LineWidth      float64
	LineCap        LineCap
	LineJoin       LineJoin
	MiterLimit     float64
	LineDashOffset float64
	lineDash       []float64

	Shadow Shadow
	Global GlobalState

	Font         text.FontStyle
	TextAlign    text.Align
	TextBaseline text.Baseline
	Direction    text.Direction

	ImageSmoothingEnabled bool
	ImageSmoothingQuality ImageSmoothingQuality
}

// NewPaintState returns the canvas defaults.
func NewPaintState() PaintState {
	return PaintState{
		FillStyle:             ColorStyle(Black),
		StrokeStyle:           ColorStyle(Black),
		LineWidth:             1,
		MiterLimit:            10,
		Shadow:                Shadow{Color: Transparent},
		Font:                  text.DefaultFontStyle(),
		TextAlign:             text.AlignStart,
		TextBaseline:          text.BaselineAlphabetic,
		Direction:             text.DirectionInherit,
		ImageSmoothingEnabled: true,
	}
}

// SetLineDash sets the dash array. Odd-length arrays are repeated to even
// length; arrays with negative or non-finite entries are ignored.
func (s *PaintState) SetLineDash(segments []float64) {
	if d, ok := normalizeDash(segments); ok {
		s.lineDash = d
	}
}

// LineDash returns a copy of the normalized dash array.
func (s *PaintState) LineDash() []float64 {
	return append([]float64(nil), s.lineDash...)
}

// clone returns a deep copy for the save stack.
func (s PaintState) clone() PaintState {
	c := s
	c.lineDash = append([]float64(nil), s.lineDash...)
	c.Font.Families = append([]string(nil), s.Font.Families...)
	return c
}

// Paint is the per-draw paint derived from a PaintState.
type Paint struct {
	Style      Style
	Stroke     bool
	LineWidth  float64
	LineCap    LineCap
	LineJoin   LineJoin
	MiterLimit float64
	Dash       []float64
	DashOffset float64

	// Alpha multiplies the source after its color. It is 1 unless the
	// global alpha was set.
	Alpha     float64
	Composite CompositeOperation
	Shadow    Shadow
}

// StrokePaint builds the paint for a stroke operation.
func (s *PaintState) StrokePaint() Paint {
	p := Paint{
		Style:      s.StrokeStyle,
		Stroke:     true,
		LineWidth:  s.LineWidth,
		LineCap:    s.LineCap,
		LineJoin:   s.LineJoin,
		MiterLimit: s.MiterLimit,
		Alpha:      1,
		Composite:  s.Global.Composite,
		Shadow:     s.Shadow,
	}
	if len(s.lineDash) > 0 {
		p.Dash = s.LineDash()
		p.DashOffset = s.LineDashOffset
	}
	if s.Global.alphaSet {
		p.Alpha = s.Global.alpha
	}
	return p
}

// FillPaint builds the paint for a fill operation.
func (s *PaintState) FillPaint() Paint {
	p := Paint{
		Style:     s.FillStyle,
		Alpha:     1,
		Composite: s.Global.Composite,
		Shadow:    s.Shadow,
	}
	if s.Global.alphaSet {
		p.Alpha = s.Global.alpha
	}
	return p
}
