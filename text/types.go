package text

// unknownStr is the string returned for unknown enum values.
const unknownStr = "Unknown"

// Direction specifies text direction.
type Direction int

const (
	// DirectionInherit resolves the direction from the text itself.
	DirectionInherit Direction = iota
	// DirectionLTR is left-to-right text.
	DirectionLTR
	// DirectionRTL is right-to-left text.
	DirectionRTL
)

// String returns the canvas name of the direction.
func (d Direction) String() string {
	switch d {
	case DirectionInherit:
		return "inherit"
	case DirectionLTR:
		return "ltr"
	case DirectionRTL:
		return "rtl"
	default:
		return unknownStr
	}
}

// ParseDirection parses "inherit", "ltr" or "rtl".
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "inherit":
		return DirectionInherit, true
	case "ltr":
		return DirectionLTR, true
	case "rtl":
		return DirectionRTL, true
	}
	return DirectionInherit, false
}

// Align is the canvas textAlign.
type Align int

const (
	AlignStart Align = iota
	AlignEnd
	AlignLeft
	AlignRight
	AlignCenter
)

// String returns the canvas name of the alignment.
func (a Align) String() string {
	switch a {
	case AlignStart:
		return "start"
	case AlignEnd:
		return "end"
	case AlignLeft:
		return "left"
	case AlignRight:
		return "right"
	case AlignCenter:
		return "center"
	default:
		return unknownStr
	}
}

// ParseAlign parses a canvas textAlign value.
func ParseAlign(s string) (Align, bool) {
	switch s {
	case "start":
		return AlignStart, true
	case "end":
		return AlignEnd, true
	case "left":
		return AlignLeft, true
	case "right":
		return AlignRight, true
	case "center":
		return AlignCenter, true
	}
	return AlignStart, false
}

// Baseline is the canvas textBaseline.
type Baseline int

const (
	BaselineAlphabetic Baseline = iota
	BaselineIdeographic
	BaselineBottom
	BaselineTop
	BaselineMiddle
	BaselineHanging
)

// String returns the canvas name of the baseline.
func (b Baseline) String() string {
	switch b {
	case BaselineAlphabetic:
		return "alphabetic"
	case BaselineIdeographic:
		return "ideographic"
	case BaselineBottom:
		return "bottom"
	case BaselineTop:
		return "top"
	case BaselineMiddle:
		return "middle"
	case BaselineHanging:
		return "hanging"
	default:
		return unknownStr
	}
}

// ParseBaseline parses a canvas textBaseline value.
func ParseBaseline(s string) (Baseline, bool) {
	switch s {
	case "alphabetic":
		return BaselineAlphabetic, true
	case "ideographic":
		return BaselineIdeographic, true
	case "bottom":
		return BaselineBottom, true
	case "top":
		return BaselineTop, true
	case "middle":
		return BaselineMiddle, true
	case "hanging":
		return BaselineHanging, true
	}
	return BaselineAlphabetic, false
}

// Slant is the font-style of a FontStyle.
type Slant int

const (
	SlantNormal Slant = iota
	SlantItalic
	SlantOblique
)

// String returns the CSS keyword of the slant.
func (s Slant) String() string {
	switch s {
	case SlantNormal:
		return "normal"
	case SlantItalic:
		return "italic"
	case SlantOblique:
		return "oblique"
	default:
		return unknownStr
	}
}

// Weight constants for common CSS keywords.
const (
	WeightNormal = 400
	WeightBold   = 700
)

// FontStyle is a parsed font shorthand.
type FontStyle struct {
	Slant         Slant
	Weight        int
	Size          float64
	Families      []string
	LetterSpacing float64
}

// DefaultFontStyle returns "normal 400 14px sans-serif".
func DefaultFontStyle() FontStyle {
	return FontStyle{
		Slant:    SlantNormal,
		Weight:   WeightNormal,
		Size:     14,
		Families: []string{"sans-serif"},
	}
}

// Bold reports whether the weight selects a bold face.
func (f FontStyle) Bold() bool { return f.Weight >= 600 }

// Italic reports whether the slant selects an italic face.
func (f FontStyle) Italic() bool { return f.Slant != SlantNormal }
