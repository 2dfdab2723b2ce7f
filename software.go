package canvas

import (
	"image"

	"github.com/gogpu/canvas/internal/blend"
	"github.com/gogpu/canvas/internal/raster"
)

// Coverage is a per-pixel coverage mask in device pixels.
type Coverage struct {
	mask *raster.Mask
}

func newCoverage(m *raster.Mask) *Coverage {
	if m == nil {
		return nil
	}
	return &Coverage{mask: m}
}

// Width returns the mask width.
func (c *Coverage) Width() int { return c.mask.Width }

// Height returns the mask height.
func (c *Coverage) Height() int { return c.mask.Height }

// At returns the coverage of pixel (x, y) in [0, 1].
func (c *Coverage) At(x, y int) float32 { return c.mask.At(x, y) }

// Surface is a raster target of a Backend. Pixels are premultiplied RGBA.
type Surface interface {
	Width() int
	Height() int

	// Clear sets every pixel to transparent black.
	Clear()

	// FillCoverage paints sh source-over where cov is non-zero.
	FillCoverage(cov *Coverage, sh Shader)

	// Erase scales pixels toward transparent by cov.
	Erase(cov *Coverage)

	// Composite blends src onto the surface at (0, 0) with op. Pixels
	// outside clip keep their value; a nil clip covers everything.
	Composite(src Surface, op CompositeOperation, clip *Coverage)

	// Image returns the live pixel buffer.
	Image() *image.RGBA
}

// Backend creates surfaces. A renderer uses one backend for its canvas
// and blend cache surfaces.
type Backend interface {
	Name() string
	NewSurface(width, height int) Surface
}

// SoftwareBackend renders on the CPU into image.RGBA buffers.
type SoftwareBackend struct{}

// Name implements Backend.
func (SoftwareBackend) Name() string { return "software" }

// NewSurface implements Backend.
func (SoftwareBackend) NewSurface(width, height int) Surface {
	return &softwareSurface{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

type softwareSurface struct {
	img *image.RGBA
}

func (s *softwareSurface) Width() int         { return s.img.Rect.Dx() }
func (s *softwareSurface) Height() int        { return s.img.Rect.Dy() }
func (s *softwareSurface) Image() *image.RGBA { return s.img }

func (s *softwareSurface) Clear() {
	clear(s.img.Pix)
}

func (s *softwareSurface) FillCoverage(cov *Coverage, sh Shader) {
	if cov == nil || sh == nil {
		return
	}
	over := blend.GetFunc(blend.SourceOver)
	solid, isSolid := sh.(SolidShader)
	w, h := min(s.Width(), cov.Width()), min(s.Height(), cov.Height())
	for y := 0; y < h; y++ {
		row := cov.mask.Data[y*cov.mask.Width:]
		for x := 0; x < w; x++ {
			c := row[x]
			if c <= 0 {
				continue
			}
			var col RGBA
			if isSolid {
				col = solid.Color
			} else {
				col = sh.ColorAt(float64(x)+0.5, float64(y)+0.5)
			}
			a := col.A * float64(c)
			if a <= 0 {
				continue
			}
			sr, sg, sb, sa := premulBytes(col, a)
			i := s.img.PixOffset(x, y)
			p := s.img.Pix[i : i+4 : i+4]
			p[0], p[1], p[2], p[3] = over(sr, sg, sb, sa, p[0], p[1], p[2], p[3])
		}
	}
}

func (s *softwareSurface) Erase(cov *Coverage) {
	if cov == nil {
		return
	}
	w, h := min(s.Width(), cov.Width()), min(s.Height(), cov.Height())
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := cov.mask.Data[y*cov.mask.Width+x]
			if c <= 0 {
				continue
			}
			k := byte(clamp255(float64(c) * 255))
			i := s.img.PixOffset(x, y)
			for j := 0; j < 4; j++ {
				s.img.Pix[i+j] = blend.Lerp(s.img.Pix[i+j], 0, k)
			}
		}
	}
}

func (s *softwareSurface) Composite(src Surface, op CompositeOperation, clip *Coverage) {
	f := blend.GetFunc(op.blendMode())
	sp := src.Image()
	w, h := min(s.Width(), sp.Rect.Dx()), min(s.Height(), sp.Rect.Dy())
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			k := byte(255)
			if clip != nil {
				k = byte(clamp255(float64(clip.At(x, y)) * 255))
				if k == 0 {
					continue
				}
			}
			si := sp.PixOffset(x, y)
			di := s.img.PixOffset(x, y)
			sPix := sp.Pix[si : si+4 : si+4]
			d := s.img.Pix[di : di+4 : di+4]
			r, g, b, a := f(sPix[0], sPix[1], sPix[2], sPix[3], d[0], d[1], d[2], d[3])
			d[0] = blend.Lerp(d[0], r, k)
			d[1] = blend.Lerp(d[1], g, k)
			d[2] = blend.Lerp(d[2], b, k)
			d[3] = blend.Lerp(d[3], a, k)
		}
	}
}

// premulBytes converts a straight color with effective alpha a to
// premultiplied bytes.
func premulBytes(c RGBA, a float64) (r, g, b, alpha byte) {
	a = clamp01(a)
	return byte(clamp255(clamp01(c.R) * a * 255)),
		byte(clamp255(clamp01(c.G) * a * 255)),
		byte(clamp255(clamp01(c.B) * a * 255)),
		byte(clamp255(a * 255))
}
