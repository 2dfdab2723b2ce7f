package canvas

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/draw"
)

const (
	// MaxDataURLLength is the longest data URL ToDataURL returns.
	MaxDataURLLength = 2048 * 2048 * 4

	// DefaultImageQuality is used for JPEG and WebP when no valid quality
	// is given.
	DefaultImageQuality = 0.92

	// dataURLFallback is returned when encoding fails.
	dataURLFallback = "data:image/png"

	mimePNG  = "image/png"
	mimeJPEG = "image/jpeg"
	mimeWebP = "image/webp"
)

// parseDataURLArgs parses a toDataURL argument list such as
// `"image/jpeg", 0.8`. Quotes and brackets around arguments are ignored.
// Unknown or missing types select PNG. Quality applies to JPEG and WebP
// only and falls back to DefaultImageQuality outside [0, 1].
func parseDataURLArgs(args string) (mime string, quality float64) {
	parts := strings.Split(args, ",")
	for i := range parts {
		parts[i] = strings.Trim(strings.TrimSpace(parts[i]), "[]\"' ")
	}

	mime = strings.ToLower(parts[0])
	switch mime {
	case mimePNG, mimeJPEG, mimeWebP:
	default:
		mime = mimePNG
	}

	quality = DefaultImageQuality
	if mime != mimePNG && len(parts) > 1 {
		q, err := strconv.ParseFloat(parts[1], 64)
		if err == nil && q >= 0 && q <= 1 {
			quality = q
		}
	}
	return mime, quality
}

// ToDataURL encodes the canvas, resampled to its layout size, as a data
// URL. args is the raw argument list of toDataURL. On failure or when
// the result exceeds MaxDataURLLength it returns "data:image/png".
func (r *Renderer) ToDataURL(args string) string {
	r.Flush()
	mime, quality := parseDataURLArgs(args)
	if !r.hasPixels() {
		return dataURLFallback
	}

	w := int(math.Round(r.width))
	h := int(math.Round(r.height))
	var img image.Image = r.canvas.Image()
	if w != r.bmpW || h != r.bmpH {
		if w <= 0 || h <= 0 {
			return dataURLFallback
		}
		scaled := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.CatmullRom.Scale(scaled, scaled.Bounds(), img, img.Bounds(), draw.Src, nil)
		img = scaled
	}

	url, err := encodeDataURL(img, mime, quality, MaxDataURLLength)
	if err != nil {
		Logger().Warn("canvas: to data url", "mime", mime, "err", err)
		return dataURLFallback
	}
	return url
}

// encodeDataURL encodes img and wraps it as a base64 data URL of at most
// limit bytes. WebP has no encoder in the image stack and is served as
// PNG, the canvas fallback for unsupported types.
func encodeDataURL(img image.Image, mime string, quality float64, limit int) (string, error) {
	var buf bytes.Buffer
	switch mime {
	case mimeJPEG:
		q := int(math.Round(quality * 100))
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: max(q, 1)}); err != nil {
			return "", fmt.Errorf("%w: %w", ErrEncode, err)
		}
	default:
		mime = mimePNG
		if err := png.Encode(&buf, img); err != nil {
			return "", fmt.Errorf("%w: %w", ErrEncode, err)
		}
	}

	prefix := "data:" + mime + ";base64,"
	n := len(prefix) + base64.StdEncoding.EncodedLen(buf.Len())
	if n > limit {
		return "", fmt.Errorf("%w: %d > %d", ErrDataURLTooLong, n, limit)
	}
	var sb strings.Builder
	sb.Grow(n)
	sb.WriteString(prefix)
	sb.WriteString(base64.StdEncoding.EncodeToString(buf.Bytes()))
	return sb.String(), nil
}

// EncodePNG writes the device-resolution canvas as PNG to w.
func (r *Renderer) EncodePNG(w io.Writer) error {
	r.Flush()
	if !r.hasPixels() {
		return ErrNoPixels
	}
	return png.Encode(w, r.canvas.Image())
}

// EncodeJPEG writes the device-resolution canvas as JPEG with the given
// quality (1-100).
func (r *Renderer) EncodeJPEG(w io.Writer, quality int) error {
	r.Flush()
	if !r.hasPixels() {
		return ErrNoPixels
	}
	return jpeg.Encode(w, r.canvas.Image(), &jpeg.Options{Quality: quality})
}
