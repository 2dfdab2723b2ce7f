package canvas

import (
	"image"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// DrawImageOptions selects the source and destination rectangles of a
// drawImage call. The zero value draws the whole image at its natural
// size at (0, 0).
type DrawImageOptions struct {
	Src Rect
	Dst Rect

	hasSrc  bool
	hasSize bool
}

// ImageAt is the 3-argument form: natural size at (dx, dy).
func ImageAt(dx, dy float64) DrawImageOptions {
	return DrawImageOptions{Dst: Rect{X: dx, Y: dy}}
}

// ImageScaled is the 5-argument form: the whole image scaled into the
// destination rectangle.
func ImageScaled(dx, dy, dw, dh float64) DrawImageOptions {
	return DrawImageOptions{Dst: Rect{X: dx, Y: dy, Width: dw, Height: dh}, hasSize: true}
}

// ImageCropped is the 9-argument form: a source rectangle scaled into a
// destination rectangle.
func ImageCropped(sx, sy, sw, sh, dx, dy, dw, dh float64) DrawImageOptions {
	return DrawImageOptions{
		Src:     Rect{X: sx, Y: sy, Width: sw, Height: sh},
		Dst:     Rect{X: dx, Y: dy, Width: dw, Height: dh},
		hasSrc:  true,
		hasSize: true,
	}
}

// resolve fills in the defaults for img and normalizes negative sizes.
func (o DrawImageOptions) resolve(img image.Image) (src, dst Rect) {
	b := img.Bounds()
	src = Rect{X: float64(b.Min.X), Y: float64(b.Min.Y), Width: float64(b.Dx()), Height: float64(b.Dy())}
	if o.hasSrc {
		src = normalizeRect(o.Src)
		src.X += float64(b.Min.X)
		src.Y += float64(b.Min.Y)
	}
	dst = o.Dst
	if !o.hasSize {
		dst.Width, dst.Height = src.Width, src.Height
	}
	return src, normalizeRect(dst)
}

func normalizeRect(r Rect) Rect {
	if r.Width < 0 {
		r.X += r.Width
		r.Width = -r.Width
	}
	if r.Height < 0 {
		r.Y += r.Height
		r.Height = -r.Height
	}
	return r
}

// DrawImage draws img with the current transform, clip, alpha, shadow
// and composite operation.
func (r *Renderer) DrawImage(img image.Image, opts DrawImageOptions) {
	if img == nil {
		return
	}
	r.exec(func() { r.drawImage(img, opts) })
}

// DrawImageSource draws the image named by src. A cached image is drawn
// in order; otherwise the image is loaded and, once decoded, the draw is
// appended to the task queue with the state of this call and
// NeedsRepaint reports true. Failed loads draw nothing.
func (r *Renderer) DrawImageSource(src string, opts DrawImageOptions) {
	r.exec(func() {
		if img, ok := r.images.Get(src); ok {
			r.drawImage(img, opts)
			return
		}
		snap := r.state.clone()
		r.images.request(src, r.opts.loader, func(img image.Image) {
			r.queue.push(func() {
				saved := r.state
				r.state = snap
				r.drawImage(img, opts)
				r.state = saved
			})
			r.needsRepaint = true
		})
	})
}

// ImageCache returns the renderer's decoded image cache.
func (r *Renderer) ImageCache() *ImageCache {
	return r.images
}

func (r *Renderer) interpolator() draw.Interpolator {
	ps := &r.state.paint
	if !ps.ImageSmoothingEnabled {
		return draw.NearestNeighbor
	}
	switch ps.ImageSmoothingQuality {
	case SmoothingMedium:
		return draw.BiLinear
	case SmoothingHigh:
		return draw.CatmullRom
	default:
		return draw.NearestNeighbor
	}
}

func (r *Renderer) drawImage(img image.Image, opts DrawImageOptions) {
	if !r.hasPixels() {
		return
	}
	src, dst := opts.resolve(img)
	if src.IsEmpty() || dst.IsEmpty() {
		return
	}
	m := r.deviceMatrix()
	if m.Determinant() == 0 {
		return
	}

	// Image pixels -> device pixels.
	s2d := m.Multiply(Translate(dst.X, dst.Y)).
		Multiply(Scale(dst.Width/src.Width, dst.Height/src.Height)).
		Multiply(Translate(-src.X, -src.Y))

	sr := image.Rect(
		int(math.Floor(src.X)), int(math.Floor(src.Y)),
		int(math.Ceil(src.Right())), int(math.Ceil(src.Bottom())),
	).Intersect(img.Bounds())
	if sr.Empty() {
		return
	}

	layer := image.NewRGBA(image.Rect(0, 0, r.bmpW, r.bmpH))
	aff := f64.Aff3{s2d.A, s2d.B, s2d.C, s2d.D, s2d.E, s2d.F}
	r.interpolator().Transform(layer, aff, img, sr, draw.Src, nil)

	p := NewPath()
	p.Rect(dst.X, dst.Y, dst.Width, dst.Height)
	mask := r.fillMask(p, FillRuleNonZero)
	if mask == nil {
		return
	}
	r.paint(mask, r.state.paint.FillPaint(), layerShader{img: layer}, passBoth)
}

// GetImageData returns the pixels of the layout rectangle (left, top,
// width, height) as a width x height block. Coordinates are scaled by
// the view scale and sampled from the canvas. Negative or zero sizes
// yield an empty block. It returns nil when the canvas has no pixels or
// the block size overflows.
func (r *Renderer) GetImageData(left, top, width, height float64) *ImageData {
	r.Flush()
	if !r.hasPixels() {
		return nil
	}
	w := clampSize(width)
	h := clampSize(height)
	n, err := imageDataLen(w, h)
	if err != nil {
		Logger().Warn("canvas: get image data", "err", err)
		return nil
	}
	out := &ImageData{X: int(left), Y: int(top), Width: w, Height: h, Data: make([]byte, n)}
	if n == 0 {
		return out
	}

	// Canvas device pixels -> block pixels.
	vs := r.viewScale
	sx, sy := width/float64(w), height/float64(h)
	aff := f64.Aff3{
		1 / (vs * sx), 0, -left / sx,
		0, 1 / (vs * sy), -top / sy,
	}
	draw.NearestNeighbor.Transform(out.NRGBA(), aff, r.canvas.Image(), r.canvas.Image().Bounds(), draw.Src, nil)
	return out
}

func clampSize(v float64) int {
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	if v >= math.MaxInt32 {
		return math.MaxInt32
	}
	return int(v)
}

// PutImageData writes data at (dx, dy) in layout units, bypassing the
// transform, clip, alpha, shadow and composite operation. An optional
// dirty rectangle (x, y, width, height) in data pixels limits the write.
func (r *Renderer) PutImageData(data *ImageData, dx, dy float64, dirty ...float64) {
	if !data.Valid() {
		Logger().Warn("canvas: put image data: pixel count does not match size")
		return
	}
	// Copy so later mutation by the caller does not leak into a deferred
	// write.
	snap := &ImageData{Width: data.Width, Height: data.Height, Data: append([]byte(nil), data.Data...)}
	r.exec(func() { r.putImageData(snap, dx, dy, dirty) })
}

func (r *Renderer) putImageData(data *ImageData, dx, dy float64, dirty []float64) {
	if !r.hasPixels() || data.Width == 0 || data.Height == 0 {
		return
	}
	d := Rect{Width: float64(data.Width), Height: float64(data.Height)}
	if len(dirty) == 4 {
		d = normalizeRect(Rect{X: dirty[0], Y: dirty[1], Width: dirty[2], Height: dirty[3]})
	}
	sr := image.Rect(int(d.X), int(d.Y), int(d.Right()), int(d.Bottom())).
		Intersect(image.Rect(0, 0, data.Width, data.Height))
	if sr.Empty() {
		return
	}

	vs := r.viewScale
	dr := image.Rect(
		int(math.Round((dx+float64(sr.Min.X))*vs)), int(math.Round((dy+float64(sr.Min.Y))*vs)),
		int(math.Round((dx+float64(sr.Max.X))*vs)), int(math.Round((dy+float64(sr.Max.Y))*vs)),
	)
	draw.NearestNeighbor.Scale(r.canvas.Image(), dr, data.NRGBA(), sr, draw.Src, nil)
}
