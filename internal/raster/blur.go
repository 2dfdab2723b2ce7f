package raster

import "math"

// BoxSizes returns three box-filter widths whose successive application
// approximates a Gaussian with standard deviation sigma.
func BoxSizes(sigma float64) [3]int {
	const n = 3
	wIdeal := math.Sqrt(12*sigma*sigma/n + 1)
	wl := int(math.Floor(wIdeal))
	if wl%2 == 0 {
		wl--
	}
	wu := wl + 2
	mIdeal := (12*sigma*sigma - n*float64(wl*wl) - 4*n*float64(wl) - 3*n) / (-4*float64(wl) - 4)
	m := int(math.Round(mIdeal))

	var sizes [3]int
	for i := range sizes {
		if i < m {
			sizes[i] = wl
		} else {
			sizes[i] = wu
		}
	}
	return sizes
}

// GaussianBlur blurs the mask in place with three box passes per axis.
// Non-positive sigma is a no-op.
func (m *Mask) GaussianBlur(sigma float64) {
	if sigma <= 0 || m.Width == 0 || m.Height == 0 {
		return
	}
	tmp := make([]float32, len(m.Data))
	for _, size := range BoxSizes(sigma) {
		radius := (size - 1) / 2
		if radius <= 0 {
			continue
		}
		boxH(m.Data, tmp, m.Width, m.Height, radius)
		boxV(tmp, m.Data, m.Width, m.Height, radius)
	}
}

func boxH(src, dst []float32, w, h, r int) {
	scale := 1 / float32(2*r+1)
	for y := 0; y < h; y++ {
		row := src[y*w : (y+1)*w]
		out := dst[y*w : (y+1)*w]
		var sum float32
		for x := -r; x <= r; x++ {
			if x >= 0 && x < w {
				sum += row[x]
			}
		}
		for x := 0; x < w; x++ {
			out[x] = sum * scale
			if in := x + r + 1; in < w {
				sum += row[in]
			}
			if outIdx := x - r; outIdx >= 0 {
				sum -= row[outIdx]
			}
		}
	}
}

func boxV(src, dst []float32, w, h, r int) {
	scale := 1 / float32(2*r+1)
	for x := 0; x < w; x++ {
		var sum float32
		for y := -r; y <= r; y++ {
			if y >= 0 && y < h {
				sum += src[y*w+x]
			}
		}
		for y := 0; y < h; y++ {
			dst[y*w+x] = sum * scale
			if in := y + r + 1; in < h {
				sum += src[in*w+x]
			}
			if outIdx := y - r; outIdx >= 0 {
				sum -= src[outIdx*w+x]
			}
		}
	}
}
