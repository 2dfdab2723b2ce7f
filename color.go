package canvas

import (
	"image/color"
	"math"
	"strconv"
	"strings"
)

// RGBA represents a color with red, green, blue, and alpha components.
// Each component is in the range [0, 1] and is not premultiplied.
type RGBA struct {
	R, G, B, A float64
}

// Color converts RGBA to the standard color.Color interface.
func (c RGBA) Color() color.Color {
	return color.NRGBA{
		R: uint8(clamp255(c.R * 255)),
		G: uint8(clamp255(c.G * 255)),
		B: uint8(clamp255(c.B * 255)),
		A: uint8(clamp255(c.A * 255)),
	}
}

// FromColor converts a standard color.Color to RGBA.
func FromColor(c color.Color) RGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGBA{
		R: float64(n.R) / 255,
		G: float64(n.G) / 255,
		B: float64(n.B) / 255,
		A: float64(n.A) / 255,
	}
}

// FromARGB converts a packed 0xAARRGGBB value, the numeric color form
// accepted by fillStyle and strokeStyle.
func FromARGB(v uint32) RGBA {
	return RGBA{
		R: float64(v>>16&0xff) / 255,
		G: float64(v>>8&0xff) / 255,
		B: float64(v&0xff) / 255,
		A: float64(v>>24&0xff) / 255,
	}
}

// RGB creates an opaque color from RGB components.
func RGB(r, g, b float64) RGBA {
	return RGBA{R: r, G: g, B: b, A: 1.0}
}

// RGBA2 creates a color from RGBA components.
func RGBA2(r, g, b, a float64) RGBA {
	return RGBA{R: r, G: g, B: b, A: a}
}

// Hex creates a color from a hex string.
// Supports formats: "RGB", "RGBA", "RRGGBB", "RRGGBBAA", with or without '#'.
// Malformed input yields opaque black.
func Hex(hex string) RGBA {
	c, ok := parseHex(strings.TrimPrefix(hex, "#"))
	if !ok {
		return Black
	}
	return c
}

func parseHex(hex string) (RGBA, bool) {
	digits := make([]float64, len(hex))
	for i := 0; i < len(hex); i++ {
		v, err := strconv.ParseUint(hex[i:i+1], 16, 8)
		if err != nil {
			return RGBA{}, false
		}
		digits[i] = float64(v)
	}
	switch len(hex) {
	case 3, 4:
		c := RGBA{R: digits[0] * 17 / 255, G: digits[1] * 17 / 255, B: digits[2] * 17 / 255, A: 1}
		if len(hex) == 4 {
			c.A = digits[3] * 17 / 255
		}
		return c, true
	case 6, 8:
		c := RGBA{
			R: (digits[0]*16 + digits[1]) / 255,
			G: (digits[2]*16 + digits[3]) / 255,
			B: (digits[4]*16 + digits[5]) / 255,
			A: 1,
		}
		if len(hex) == 8 {
			c.A = (digits[6]*16 + digits[7]) / 255
		}
		return c, true
	}
	return RGBA{}, false
}

// ParseColor parses a CSS color: "#rgb", "#rrggbb", "#rrggbbaa",
// "rgb(r, g, b)", "rgba(r, g, b, a)" and the basic named colors.
func ParseColor(s string) (RGBA, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return RGBA{}, false
	}
	if strings.HasPrefix(s, "#") {
		return parseHex(s[1:])
	}
	if c, ok := namedColors[s]; ok {
		return c, true
	}

	var args string
	var wantAlpha bool
	switch {
	case strings.HasPrefix(s, "rgba(") && strings.HasSuffix(s, ")"):
		args, wantAlpha = s[5:len(s)-1], true
	case strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")"):
		args = s[4 : len(s)-1]
	default:
		return RGBA{}, false
	}

	parts := strings.Split(args, ",")
	if len(parts) != 3 && len(parts) != 4 || (wantAlpha && len(parts) != 4) {
		return RGBA{}, false
	}
	var v [4]float64
	v[3] = 1
	for i, p := range parts {
		p = strings.TrimSpace(p)
		pct := strings.HasSuffix(p, "%")
		f, err := strconv.ParseFloat(strings.TrimSuffix(p, "%"), 64)
		if err != nil {
			return RGBA{}, false
		}
		switch {
		case i == 3 && pct:
			v[i] = f / 100
		case i == 3:
			v[i] = f
		case pct:
			v[i] = f / 100
		default:
			v[i] = f / 255
		}
		v[i] = clamp01(v[i])
	}
	return RGBA{R: v[0], G: v[1], B: v[2], A: v[3]}, true
}

// Premultiply returns a premultiplied color.
func (c RGBA) Premultiply() RGBA {
	return RGBA{R: c.R * c.A, G: c.G * c.A, B: c.B * c.A, A: c.A}
}

// Lerp performs linear interpolation between two colors.
func (c RGBA) Lerp(other RGBA, t float64) RGBA {
	return RGBA{
		R: c.R + (other.R-c.R)*t,
		G: c.G + (other.G-c.G)*t,
		B: c.B + (other.B-c.B)*t,
		A: c.A + (other.A-c.A)*t,
	}
}

// WithAlpha returns c with its alpha multiplied by a.
func (c RGBA) WithAlpha(a float64) RGBA {
	c.A *= a
	return c
}

// clamp255 restricts a value to [0, 255] range.
func clamp255(x float64) float64 {
	if x < 0 || math.IsNaN(x) {
		return 0
	}
	if x > 255 {
		return 255
	}
	return x + 0.5
}

// clamp01 clamps a value to [0, 1] range.
func clamp01(x float64) float64 {
	if x < 0 || math.IsNaN(x) {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// Common colors
var (
	Black       = RGB(0, 0, 0)
	White       = RGB(1, 1, 1)
	Red         = RGB(1, 0, 0)
	Green       = RGB(0, 128.0/255, 0)
	Blue        = RGB(0, 0, 1)
	Transparent = RGBA2(0, 0, 0, 0)
)

var namedColors = map[string]RGBA{
	"transparent": Transparent,
	"black":       Black,
	"white":       White,
	"red":         Red,
	"green":       Green,
	"lime":        RGB(0, 1, 0),
	"blue":        Blue,
	"yellow":      RGB(1, 1, 0),
	"cyan":        RGB(0, 1, 1),
	"aqua":        RGB(0, 1, 1),
	"magenta":     RGB(1, 0, 1),
	"fuchsia":     RGB(1, 0, 1),
	"gray":        RGB(128.0/255, 128.0/255, 128.0/255),
	"grey":        RGB(128.0/255, 128.0/255, 128.0/255),
	"silver":      RGB(192.0/255, 192.0/255, 192.0/255),
	"maroon":      RGB(128.0/255, 0, 0),
	"olive":       RGB(128.0/255, 128.0/255, 0),
	"navy":        RGB(0, 0, 128.0/255),
	"purple":      RGB(128.0/255, 0, 128.0/255),
	"teal":        RGB(0, 128.0/255, 128.0/255),
	"orange":      RGB(1, 165.0/255, 0),
	"pink":        RGB(1, 192.0/255, 203.0/255),
}
