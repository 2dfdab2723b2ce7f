package main

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"strings"
	"testing"

	"github.com/gogpu/canvas"
)

func TestRenderDemoScene(t *testing.T) {
	r, err := render(bytes.NewReader(demoScene))
	if err != nil {
		t.Fatal(err)
	}
	if w, h := r.Size(); w != 320 || h != 200 {
		t.Errorf("Size() = %vx%v, want 320x200", w, h)
	}
	if got := r.Image().Bounds().Dx(); got != 640 {
		t.Errorf("device width = %d, want 640", got)
	}
	if got := r.Pending(); got != 0 {
		t.Errorf("Pending() = %d after render", got)
	}
}

func TestRenderCommands(t *testing.T) {
	scene := `
width: 10
height: 10
pipeline: deferred
commands:
  - op: fillStyle
    args: ["#0000FF"]
  - op: fillRect
    args: [0, 0, 10, 5]
  - op: beginPath
  - op: rect
    args: [0, 5, 10, 5]
  - op: fillStyle
    args: ["rgb(255, 0, 0)"]
  - op: fill
`
	r, err := render(strings.NewReader(scene))
	if err != nil {
		t.Fatal(err)
	}
	img := r.Image()
	if got := img.RGBAAt(5, 2); got != (color.RGBA{0, 0, 255, 255}) {
		t.Errorf("top pixel = %v, want blue", got)
	}
	if got := img.RGBAAt(5, 7); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("bottom pixel = %v, want red", got)
	}
}

func TestRenderAntialias(t *testing.T) {
	const triangle = `
width: 20
height: 20
%s
commands:
  - op: fillStyle
    args: ["#FF0000"]
  - op: beginPath
  - op: moveTo
    args: [0, 0]
  - op: lineTo
    args: [10, 0]
  - op: lineTo
    args: [10, 10]
  - op: closePath
  - op: fill
`
	tests := []struct {
		name    string
		setting string
		wantA   uint8
	}{
		{"default", "", 255},
		{"antialias", "antialias: true", 128},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := render(strings.NewReader(fmt.Sprintf(triangle, tt.setting)))
			if err != nil {
				t.Fatal(err)
			}
			if got := r.Image().RGBAAt(5, 5).A; got != tt.wantA {
				t.Errorf("pixel (5,5) alpha = %d, want %d", got, tt.wantA)
			}
		})
	}
}

func TestRenderSelection(t *testing.T) {
	scene := `
width: 100
height: 40
selection:
  first: [10, 10, 2, 10]
  second: [50, 10, 2, 10]
  drag: [60, 0]
`
	r, err := render(strings.NewReader(scene))
	if err != nil {
		t.Fatal(err)
	}
	img := r.Image()
	// The first handle was dragged past the second to x=70.
	if got := img.RGBAAt(71, 15); got.A != 255 {
		t.Errorf("dragged handle pixel = %v, want opaque", got)
	}
	if got := img.RGBAAt(11, 15); got.A != 0 {
		t.Errorf("old handle position = %v, want clear", got)
	}
	// The span between the handles is tinted.
	if got := img.RGBAAt(60, 15); got.A == 0 || got.A == 255 {
		t.Errorf("selection span = %v, want translucent", got)
	}
}

func TestReadSceneErrors(t *testing.T) {
	tests := []struct {
		name  string
		scene string
		want  string
	}{
		{"zero size", "width: 0\nheight: 10\n", "invalid size"},
		{"unknown field", "width: 1\nheight: 1\ncolour: red\n", "colour"},
		{"unknown pipeline", "width: 1\nheight: 1\npipeline: gpu\n", "unknown pipeline"},
		{"unknown op", "width: 1\nheight: 1\ncommands:\n  - op: explode\n", "unknown op"},
		{"missing args", "width: 1\nheight: 1\ncommands:\n  - op: fillRect\n    args: [1, 2]\n", "want argument 2"},
		{"wrong type", "width: 1\nheight: 1\ncommands:\n  - op: lineWidth\n    args: [wide]\n", "want number"},
		{"bad enum", "width: 1\nheight: 1\ncommands:\n  - op: lineCap\n    args: [pointy]\n", "pointy"},
		{"bad color", "width: 1\nheight: 1\ncommands:\n  - op: shadowColor\n    args: [notacolor]\n", "notacolor"},
		{"bad gradient target", "width: 1\nheight: 1\ncommands:\n  - op: conicGradient\n    args: [border, 0, 0, 0]\n", "border"},
		{"bad drawImage arity", "width: 1\nheight: 1\ncommands:\n  - op: drawImage\n    args: [a.png, 1]\n", "3, 5 or 9"},
		{"bad svg", "width: 1\nheight: 1\ncommands:\n  - op: fillPath2D\n    args: [\"M 1\"]\n", "fillPath2D"},
		{"bad handle", "width: 1\nheight: 1\nselection:\n  first: [1, 2]\n  second: [1, 2, 3, 4]\n", "handle"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := render(strings.NewReader(tt.scene))
			if err == nil {
				t.Fatal("render succeeded, want error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestReadSceneDefaults(t *testing.T) {
	s, err := readScene(strings.NewReader("width: 4\nheight: 3\n"))
	if err != nil {
		t.Fatal(err)
	}
	if s.ViewScale != 1 {
		t.Errorf("ViewScale = %v, want 1", s.ViewScale)
	}
	if _, err := readScene(strings.NewReader("width: -1\nheight: 3\n")); !errors.Is(err, canvas.ErrInvalidSize) {
		t.Errorf("error = %v, want ErrInvalidSize", err)
	}
}

func TestOpsCoverArgumentForms(t *testing.T) {
	scene := `
width: 20
height: 20
commands:
  - op: radialGradient
    args: [stroke, 10, 10, 0, 10, 10, 10]
    stops:
      - {offset: 0, color: red}
      - {offset: 1, color: blue}
  - op: arc
    args: [10, 10, 5, 0, 3.14, true]
  - op: ellipse
    args: [10, 10, 5, 3, 0.5, 0, 6.28]
  - op: strokeText
    args: ["hi", 2, 18, 10]
  - op: setTransform
    args: [1, 0, 0, 1, 0, 0]
  - op: imageSmoothingEnabled
    args: [false]
  - op: imageSmoothingQuality
    args: [high]
  - op: direction
    args: [rtl]
  - op: stroke
`
	if _, err := render(strings.NewReader(scene)); err != nil {
		t.Fatal(err)
	}
}
