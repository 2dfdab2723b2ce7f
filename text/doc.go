// Package text lays out and measures single-line canvas text.
//
// A Paragraph is shaped once with the HarfBuzz shaper of
// go-text/typesetting and read back for metrics and glyph outlines:
//
//	fonts := text.NewFonts()
//	style := text.ParseFont("italic bold 16px sans-serif")
//	p, err := text.NewParagraph(fonts, "Hello", style, text.DirectionInherit)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	w := p.LongestLine()
//
// Outlines come from golang.org/x/image/font/sfnt in pixels with y
// pointing down, so they can be fed straight into a canvas path.
//
// The default Fonts registry serves the Go font family for every generic
// family name; "monospace" maps to Go Mono.
package text
