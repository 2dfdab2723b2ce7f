package text

import (
	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// shapedGlyph is a positioned glyph. X is the pen position plus the
// shaper offset; Y is the baseline-relative offset with y pointing down.
type shapedGlyph struct {
	id      sfnt.GlyphIndex
	x, y    float64
	advance float64
}

// shape runs the HarfBuzz shaper over runes and returns the glyphs in
// visual order together with the total advance.
func shape(face *Face, runes []rune, dir Direction, size, letterSpacing float64) ([]shapedGlyph, float64) {
	if len(runes) == 0 || face == nil {
		return nil, 0
	}
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: mapDirection(dir),
		Face:      font.NewFace(face.shaping),
		Size:      floatToFixed(size),
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	}
	var hb shaping.HarfbuzzShaper
	out := hb.Shape(input)

	glyphs := make([]shapedGlyph, len(out.Glyphs))
	pen := 0.0
	for i, g := range out.Glyphs {
		adv := fixedToFloat(g.Advance) + letterSpacing
		glyphs[i] = shapedGlyph{
			id:      sfnt.GlyphIndex(g.GlyphID), //nolint:gosec // glyph ids of sfnt fonts fit in uint16
			x:       pen + fixedToFloat(g.XOffset),
			y:       -fixedToFloat(g.YOffset),
			advance: adv,
		}
		pen += adv
	}
	return glyphs, pen
}

func mapDirection(d Direction) di.Direction {
	if d == DirectionRTL {
		return di.DirectionRTL
	}
	return di.DirectionLTR
}

// detectScript returns the script of the first non-space rune.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64.0
}
