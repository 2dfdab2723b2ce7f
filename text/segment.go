package text

import "golang.org/x/text/unicode/bidi"

// ResolveDirection returns d, or for DirectionInherit the direction of the
// bidi run holding the first rune of s. Text without strong characters
// resolves to left-to-right.
func ResolveDirection(s string, d Direction) Direction {
	if d != DirectionInherit {
		return d
	}
	var p bidi.Paragraph
	if _, err := p.SetString(s); err != nil {
		return DirectionLTR
	}
	o, err := p.Order()
	if err != nil || o.NumRuns() == 0 {
		return DirectionLTR
	}
	// Runs are in logical order.
	first := o.Run(0)
	if first.Direction() == bidi.RightToLeft {
		return DirectionRTL
	}
	return DirectionLTR
}
