package text

import "errors"

// Sentinel errors for text package.
var (
	// ErrFontNotFound is returned when no registered family matches a style.
	ErrFontNotFound = errors.New("text: font not found")

	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("text: empty font data")
)
