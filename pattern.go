package canvas

import (
	"image"
	"math"

	"golang.org/x/image/draw"
)

// PatternID is an opaque handle to a pattern owned by one renderer.
type PatternID int

// TileMode controls sampling outside the pattern image.
type TileMode int

const (
	// TileClamp repeats the edge pixels.
	TileClamp TileMode = iota
	// TileRepeat tiles the image.
	TileRepeat
	// TileDecal paints nothing outside the image.
	TileDecal
)

// repeatModes maps the canvas repetition strings to (x, y) tile modes.
var repeatModes = map[string][2]TileMode{
	"no-repeat": {TileDecal, TileDecal},
	"repeat":    {TileRepeat, TileRepeat},
	"repeat-x":  {TileRepeat, TileDecal},
	"repeat-y":  {TileDecal, TileRepeat},
}

// TileModes returns the tile modes for a repetition string, and false for
// unknown strings.
func TileModes(repetition string) (x, y TileMode, ok bool) {
	m, ok := repeatModes[repetition]
	return m[0], m[1], ok
}

// Pattern is an image repeated according to its repetition string.
type Pattern struct {
	img        *image.NRGBA
	Repetition string
}

// NewPattern creates a pattern from img.
func NewPattern(img image.Image, repetition string) *Pattern {
	return &Pattern{img: toNRGBA(img), Repetition: repetition}
}

// Image returns the pattern pixels.
func (p *Pattern) Image() *image.NRGBA { return p.img }

// Shader builds a device-space shader, or reports false when the
// repetition string is unknown.
func (p *Pattern) Shader(toUser Matrix) (Shader, bool) {
	tx, ty, ok := TileModes(p.Repetition)
	if !ok || p.img == nil {
		return nil, false
	}
	b := p.img.Bounds()
	if b.Empty() {
		return nil, false
	}
	return &patternShader{img: p.img, toUser: toUser, tileX: tx, tileY: ty}, true
}

type patternShader struct {
	img          *image.NRGBA
	toUser       Matrix
	tileX, tileY TileMode
}

// ColorAt implements Shader.
func (s *patternShader) ColorAt(x, y float64) RGBA {
	p := s.toUser.TransformPoint(Pt(x, y))
	b := s.img.Bounds()
	ix, okX := tile(int(math.Floor(p.X)), b.Dx(), s.tileX)
	iy, okY := tile(int(math.Floor(p.Y)), b.Dy(), s.tileY)
	if !okX || !okY {
		return Transparent
	}
	return FromColor(s.img.NRGBAAt(b.Min.X+ix, b.Min.Y+iy))
}

func tile(v, n int, mode TileMode) (int, bool) {
	switch mode {
	case TileRepeat:
		v %= n
		if v < 0 {
			v += n
		}
		return v, true
	case TileDecal:
		return v, v >= 0 && v < n
	default:
		return min(max(v, 0), n-1), true
	}
}

// patternArena owns the patterns of one renderer keyed by increasing ids.
type patternArena struct {
	next  PatternID
	items map[PatternID]*Pattern
}

func newPatternArena() *patternArena {
	return &patternArena{items: make(map[PatternID]*Pattern)}
}

func (a *patternArena) add(p *Pattern) PatternID {
	a.next++
	a.items[a.next] = p
	return a.next
}

func (a *patternArena) get(id PatternID) (*Pattern, bool) {
	p, ok := a.items[id]
	return p, ok
}

func toNRGBA(img image.Image) *image.NRGBA {
	if img == nil {
		return nil
	}
	if n, ok := img.(*image.NRGBA); ok {
		return n
	}
	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}
