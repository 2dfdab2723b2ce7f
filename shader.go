package canvas

import "image"

// Shader computes the straight-alpha source color of a device pixel.
type Shader interface {
	ColorAt(x, y float64) RGBA
}

// SolidShader paints a single color.
type SolidShader struct {
	Color RGBA
}

// ColorAt implements Shader.
func (s SolidShader) ColorAt(_, _ float64) RGBA {
	return s.Color
}

// alphaShader multiplies the alpha of another shader.
type alphaShader struct {
	Shader
	alpha float64
}

func (s alphaShader) ColorAt(x, y float64) RGBA {
	return s.Shader.ColorAt(x, y).WithAlpha(s.alpha)
}

func withAlpha(sh Shader, alpha float64) Shader {
	if alpha >= 1 {
		return sh
	}
	if s, ok := sh.(SolidShader); ok {
		return SolidShader{Color: s.Color.WithAlpha(alpha)}
	}
	return alphaShader{Shader: sh, alpha: alpha}
}

// layerShader samples a premultiplied device-space layer pixel by pixel.
type layerShader struct {
	img *image.RGBA
}

func (s layerShader) ColorAt(x, y float64) RGBA {
	ix, iy := int(x), int(y)
	if !(image.Point{ix, iy}.In(s.img.Rect)) {
		return Transparent
	}
	i := s.img.PixOffset(ix, iy)
	a := s.img.Pix[i+3]
	if a == 0 {
		return Transparent
	}
	af := float64(a)
	return RGBA{
		R: float64(s.img.Pix[i]) / af,
		G: float64(s.img.Pix[i+1]) / af,
		B: float64(s.img.Pix[i+2]) / af,
		A: af / 255,
	}
}
