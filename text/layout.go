package text

import (
	"errors"
	"strings"

	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// PathSink receives glyph outlines.
type PathSink interface {
	MoveTo(x, y float64)
	LineTo(x, y float64)
	QuadraticTo(cx, cy, x, y float64)
	CubicTo(c1x, c1y, c2x, c2y, x, y float64)
	Close()
}

// Paragraph is a single line of shaped text laid out with unbounded
// width. Its origin is the top-left corner of the line box.
type Paragraph struct {
	text      string
	style     FontStyle
	direction Direction
	face      *Face

	glyphs  []shapedGlyph
	width   float64
	ascent  float64
	descent float64
}

// NewParagraph shapes s with the face fonts select for style. Canvas
// whitespace (tab, newline, form feed, carriage return) becomes a space.
func NewParagraph(fonts *Fonts, s string, style FontStyle, dir Direction) (*Paragraph, error) {
	if fonts == nil {
		return nil, ErrFontNotFound
	}
	face, err := fonts.Face(style)
	if err != nil {
		return nil, err
	}
	return NewParagraphFace(face, s, style, dir)
}

// NewParagraphFace shapes s with face. Only the size and letter spacing
// of style are used.
func NewParagraphFace(face *Face, s string, style FontStyle, dir Direction) (*Paragraph, error) {
	if face == nil {
		return nil, ErrFontNotFound
	}
	s = normalizeSpace(s)
	p := &Paragraph{
		text:      s,
		style:     style,
		direction: ResolveDirection(s, dir),
		face:      face,
	}

	var buf sfnt.Buffer
	m, err := face.outlines.Metrics(&buf, floatToFixed(style.Size), xfont.HintingNone)
	if err != nil {
		return nil, err
	}
	p.ascent = fixedToFloat(m.Ascent)
	p.descent = fixedToFloat(m.Descent)
	p.glyphs, p.width = shape(face, []rune(s), p.direction, style.Size, style.LetterSpacing)
	return p, nil
}

func normalizeSpace(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '\t', '\n', '\f', '\r':
			return ' '
		}
		return r
	}, s)
}

// Text returns the laid out text.
func (p *Paragraph) Text() string { return p.text }

// Style returns the font style the paragraph was built with.
func (p *Paragraph) Style() FontStyle { return p.style }

// Direction returns the resolved direction, never DirectionInherit.
func (p *Paragraph) Direction() Direction { return p.direction }

// LongestLine returns the advance width of the line.
func (p *Paragraph) LongestLine() float64 { return p.width }

// Height returns ascent plus descent.
func (p *Paragraph) Height() float64 { return p.ascent + p.descent }

// Ascent returns the font ascent in pixels.
func (p *Paragraph) Ascent() float64 { return p.ascent }

// Descent returns the font descent in pixels, positive downward.
func (p *Paragraph) Descent() float64 { return p.descent }

// AlphabeticBaseline returns the distance from the top of the line box
// to the alphabetic baseline.
func (p *Paragraph) AlphabeticBaseline() float64 { return p.ascent }

// IdeographicBaseline returns the distance from the top of the line box
// to the ideographic baseline.
func (p *Paragraph) IdeographicBaseline() float64 { return p.ascent + p.descent }

// Outline emits the glyph outlines with the line box origin at (x, y).
// Horizontal positions are multiplied by scaleX.
func (p *Paragraph) Outline(sink PathSink, x, y, scaleX float64) error {
	var buf sfnt.Buffer
	ppem := floatToFixed(p.style.Size)
	baseline := y + p.ascent
	for _, g := range p.glyphs {
		segs, err := p.face.outlines.LoadGlyph(&buf, g.id, ppem, nil)
		if err != nil {
			if errors.Is(err, sfnt.ErrColoredGlyph) || errors.Is(err, sfnt.ErrNotFound) {
				continue
			}
			return err
		}
		gx := g.x
		pt := func(v fixed.Point26_6) (float64, float64) {
			return x + (gx+fixedToFloat(v.X))*scaleX, baseline + g.y + fixedToFloat(v.Y)
		}
		open := false
		for _, s := range segs {
			switch s.Op {
			case sfnt.SegmentOpMoveTo:
				if open {
					sink.Close()
				}
				sink.MoveTo(pt(s.Args[0]))
				open = true
			case sfnt.SegmentOpLineTo:
				sink.LineTo(pt(s.Args[0]))
			case sfnt.SegmentOpQuadTo:
				cx, cy := pt(s.Args[0])
				ex, ey := pt(s.Args[1])
				sink.QuadraticTo(cx, cy, ex, ey)
			case sfnt.SegmentOpCubeTo:
				c1x, c1y := pt(s.Args[0])
				c2x, c2y := pt(s.Args[1])
				ex, ey := pt(s.Args[2])
				sink.CubicTo(c1x, c1y, c2x, c2y, ex, ey)
			}
		}
		if open {
			sink.Close()
		}
	}
	return nil
}
