package canvas

import (
	"fmt"
	"image"
	"math"
)

// maxImageDataBytes bounds the pixel buffer of a single ImageData.
const maxImageDataBytes = math.MaxInt32

// ImageData is a block of unpremultiplied RGBA pixels in row-major order.
// X and Y give the position of the block on the canvas in layout units.
type ImageData struct {
	X, Y          int
	Width, Height int
	Data          []byte
}

// NewImageData allocates a transparent width x height block.
func NewImageData(width, height int) (*ImageData, error) {
	n, err := imageDataLen(width, height)
	if err != nil {
		return nil, err
	}
	return &ImageData{Width: width, Height: height, Data: make([]byte, n)}, nil
}

// imageDataLen returns width*height*4, rejecting negative sizes and
// products that overflow maxImageDataBytes.
func imageDataLen(width, height int) (int, error) {
	if width < 0 || height < 0 {
		return 0, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	if width == 0 || height == 0 {
		return 0, nil
	}
	if width > maxImageDataBytes/4/height {
		return 0, fmt.Errorf("%w: %dx%d overflows", ErrInvalidSize, width, height)
	}
	return width * height * 4, nil
}

// Valid reports whether Data holds exactly Width*Height pixels.
func (d *ImageData) Valid() bool {
	return d != nil && d.Width >= 0 && d.Height >= 0 && len(d.Data) == d.Width*d.Height*4
}

// NRGBA wraps the pixels as an image without copying.
func (d *ImageData) NRGBA() *image.NRGBA {
	return &image.NRGBA{
		Pix:    d.Data,
		Stride: d.Width * 4,
		Rect:   image.Rect(0, 0, d.Width, d.Height),
	}
}
