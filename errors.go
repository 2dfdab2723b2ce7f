package canvas

import "errors"

// Sentinel errors returned by the fallible helpers. Draw calls never
// return errors; they log and leave the bitmap unchanged.
var (
	// ErrInvalidSize is returned when a pixel buffer size is non-positive
	// or its byte length would overflow.
	ErrInvalidSize = errors.New("canvas: invalid size")

	// ErrNoPixels is returned when the canvas bitmap has not been allocated.
	ErrNoPixels = errors.New("canvas: bitmap has no pixels")

	// ErrEncode is returned when an image encoder fails.
	ErrEncode = errors.New("canvas: encode failed")

	// ErrDataURLTooLong is returned when an encoded data URL exceeds
	// MaxDataURLLength.
	ErrDataURLTooLong = errors.New("canvas: data URL too long")

	// ErrImageNotFound is returned by loaders for unknown sources.
	ErrImageNotFound = errors.New("canvas: image not found")
)
