package text

// hangingRatio places the hanging baseline relative to the part of the
// line box above the alphabetic baseline.
const hangingRatio = 0.8

// AlignOffset returns the horizontal offset from the anchor x to the left
// edge of a line of the given width.
func AlignOffset(align Align, dir Direction, width float64) float64 {
	switch align {
	case AlignLeft:
		return 0
	case AlignRight:
		return -width
	case AlignCenter:
		return -width / 2
	case AlignStart:
		if dir == DirectionRTL {
			return -width
		}
		return 0
	case AlignEnd:
		if dir == DirectionRTL {
			return 0
		}
		return -width
	}
	return 0
}

// BaselineOffset returns the vertical offset from the anchor y to the top
// of the paragraph line box.
func BaselineOffset(baseline Baseline, p *Paragraph) float64 {
	switch baseline {
	case BaselineIdeographic:
		return -p.IdeographicBaseline()
	case BaselineBottom:
		return -p.Height()
	case BaselineTop:
		return 0
	case BaselineMiddle:
		return -p.Height() / 2
	case BaselineHanging:
		return -hangingRatio * (p.Height() - p.AlphabeticBaseline())
	default:
		return -p.AlphabeticBaseline()
	}
}

// TextMetrics is the result of measureText. Vertical distances are
// measured from the textBaseline, positive upward for ascents and
// downward for descents and baselines.
type TextMetrics struct {
	Width  float64
	Height float64

	ActualBoundingBoxLeft    float64
	ActualBoundingBoxRight   float64
	ActualBoundingBoxAscent  float64
	ActualBoundingBoxDescent float64

	FontBoundingBoxAscent  float64
	FontBoundingBoxDescent float64
	EmHeightAscent         float64
	EmHeightDescent        float64

	AlphabeticBaseline  float64
	HangingBaseline     float64
	IdeographicBaseline float64
}

// Measure computes the metrics of p for the given alignment.
func Measure(p *Paragraph, align Align, baseline Baseline) TextMetrics {
	width := p.LongestLine()
	height := p.Height()
	left := -AlignOffset(align, p.Direction(), width)
	top := BaselineOffset(baseline, p)
	ascent := -top

	return TextMetrics{
		Width:                    width,
		Height:                   height,
		ActualBoundingBoxLeft:    left,
		ActualBoundingBoxRight:   width - left,
		ActualBoundingBoxAscent:  ascent,
		ActualBoundingBoxDescent: height - ascent,
		FontBoundingBoxAscent:    ascent,
		FontBoundingBoxDescent:   height - ascent,
		EmHeightAscent:           ascent,
		EmHeightDescent:          height - ascent,
		AlphabeticBaseline:       p.AlphabeticBaseline() + top,
		HangingBaseline:          top - BaselineOffset(BaselineHanging, p),
		IdeographicBaseline:      p.IdeographicBaseline() + top,
	}
}
