package text

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/go-text/typesetting/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
)

// Face is one parsed font file, usable for both shaping and outlines.
type Face struct {
	Family string
	Bold   bool
	Italic bool

	id       uint64
	outlines *sfnt.Font
	shaping  *font.Font
}

var faceIDs atomic.Uint64

// ID returns a process-unique identifier of the parsed face.
func (f *Face) ID() uint64 { return f.id }

// ParseFace parses TrueType or OpenType data.
func ParseFace(family string, bold, italic bool, data []byte) (*Face, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	sf, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("text: parse %q: %w", family, err)
	}
	gf, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("text: parse %q: %w", family, err)
	}
	return &Face{
		Family:   family,
		Bold:     bold,
		Italic:   italic,
		id:       faceIDs.Add(1),
		outlines: sf,
		shaping:  gf.Font,
	}, nil
}

type faceKey struct {
	family       string
	bold, italic bool
}

// Fonts is a registry of faces keyed by family, weight and slant.
//
// Fonts is safe for concurrent use.
type Fonts struct {
	mu       sync.RWMutex
	faces    map[faceKey]*Face
	fallback string
}

// NewEmptyFonts creates a registry with no faces.
func NewEmptyFonts() *Fonts {
	return &Fonts{faces: make(map[faceKey]*Face)}
}

// NewFonts creates a registry serving the Go fonts. "sans-serif", "serif"
// and "go" map to Go Regular, "monospace" and "go mono" to Go Mono.
func NewFonts() *Fonts {
	f := NewEmptyFonts()
	proportional := [4][]byte{goregular.TTF, gobold.TTF, goitalic.TTF, gobolditalic.TTF}
	mono := [4][]byte{gomono.TTF, gomonobold.TTF, gomonoitalic.TTF, gomonobolditalic.TTF}
	f.registerSet(proportional, "go", "sans-serif", "serif", "system-ui")
	f.registerSet(mono, "go mono", "monospace")
	f.fallback = "sans-serif"
	return f
}

func (f *Fonts) registerSet(set [4][]byte, families ...string) {
	for i, data := range set {
		bold, italic := i&1 != 0, i&2 != 0
		face, err := ParseFace(families[0], bold, italic, data)
		if err != nil {
			Logger().Warn("text: builtin font", "family", families[0], "err", err)
			continue
		}
		for _, fam := range families {
			f.faces[faceKey{fam, bold, italic}] = face
		}
	}
}

// Register parses data and serves it for family with the given weight
// and slant.
func (f *Fonts) Register(family string, bold, italic bool, data []byte) error {
	face, err := ParseFace(family, bold, italic, data)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.faces[faceKey{strings.ToLower(family), bold, italic}] = face
	if f.fallback == "" {
		f.fallback = strings.ToLower(family)
	}
	return nil
}

// Face returns the best face for style: the first listed family that is
// registered, otherwise the fallback family.
func (f *Fonts) Face(style FontStyle) (*Face, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	bold, italic := style.Bold(), style.Italic()
	for _, fam := range style.Families {
		if face := f.lookup(strings.ToLower(fam), bold, italic); face != nil {
			return face, nil
		}
	}
	if f.fallback != "" {
		if face := f.lookup(f.fallback, bold, italic); face != nil {
			return face, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrFontNotFound, strings.Join(style.Families, ", "))
}

func (f *Fonts) lookup(family string, bold, italic bool) *Face {
	for _, k := range [...]faceKey{
		{family, bold, italic},
		{family, bold, false},
		{family, false, italic},
		{family, false, false},
	} {
		if face, ok := f.faces[k]; ok {
			return face
		}
	}
	return nil
}
