// Command canvasdemo replays a YAML scene through the canvas renderer and
// writes the result as a PNG.
//
// Usage:
//
//	canvasdemo [-scene scene.yaml] [-output demo.png] [-backend software|gpu] [-url] [-v]
//
// Without -scene the built-in demo scene is drawn. The gpu backend needs a
// binary built with -tags gpu.
package main

import (
	"bytes"
	_ "embed"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"math"
	"os"

	"github.com/gogpu/canvas"
	"github.com/gogpu/canvas/selectoverlay"
)

//go:embed demo.yaml
var demoScene []byte

func main() {
	var (
		scenePath = flag.String("scene", "", "scene file (default: built-in demo)")
		output    = flag.String("output", "demo.png", "output file")
		backend   = flag.String("backend", "software", "render backend: software or gpu")
		printURL  = flag.Bool("url", false, "print the canvas as a PNG data URL")
		verbose   = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if *verbose {
		canvas.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	var src io.Reader = bytes.NewReader(demoScene)
	if *scenePath != "" {
		f, err := os.Open(*scenePath)
		if err != nil {
			log.Fatalf("Failed to open scene: %v", err)
		}
		defer f.Close()
		src = f
	}

	b, closeBackend, err := openBackend(*backend)
	if err != nil {
		log.Fatalf("Failed to open backend: %v", err)
	}
	defer closeBackend()

	r, err := render(src, canvas.WithBackend(b))
	if err != nil {
		log.Fatalf("Failed to render: %v", err)
	}

	out, err := os.Create(*output)
	if err != nil {
		log.Fatalf("Failed to create output: %v", err)
	}
	if err := r.EncodePNG(out); err != nil {
		out.Close()
		log.Fatalf("Failed to save: %v", err)
	}
	if err := out.Close(); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}

	w, h := r.Size()
	log.Printf("Demo saved to %s (%vx%v at %vx)\n", *output, w, h, r.ViewScale())
	if *printURL {
		fmt.Println(r.ToDataURL(`"image/png"`))
	}
}

// render reads a scene and draws it onto a new renderer. extra options
// are applied after the scene's own.
func render(src io.Reader, extra ...canvas.RendererOption) (*canvas.Renderer, error) {
	s, err := readScene(src)
	if err != nil {
		return nil, err
	}
	opts, err := s.rendererOptions()
	if err != nil {
		return nil, err
	}
	r := canvas.NewRenderer(s.Width, s.Height, append(opts, extra...)...)
	if err := s.replay(r); err != nil {
		return nil, err
	}
	if s.Selection != nil {
		if err := drawSelection(r, s.Selection); err != nil {
			return nil, err
		}
	}
	r.Flush()
	return r, nil
}

var errNoGPU = errors.New("gpu backend not built in; rebuild with -tags gpu")

// softwareBackend returns the CPU backend, rejecting unknown names.
func softwareBackend(name string) (canvas.Backend, func(), error) {
	switch name {
	case "", "software":
		return canvas.SoftwareBackend{}, func() {}, nil
	case "gpu":
		return nil, nil, errNoGPU
	}
	return nil, nil, fmt.Errorf("unknown backend %q", name)
}

func rectOf(v []float64) (selectoverlay.Rect, error) {
	if len(v) != 4 {
		return selectoverlay.Rect{}, fmt.Errorf("%w: handle needs [left, top, width, height]", errArgs)
	}
	return selectoverlay.Rect{Left: v[0], Top: v[1], Width: v[2], Height: v[3]}, nil
}

// drawSelection runs a drag of the first handle through a selection
// overlay and paints the resulting handles and the selected span.
func drawSelection(r *canvas.Renderer, sel *selection) error {
	first, err := rectOf(sel.First)
	if err != nil {
		return err
	}
	second, err := rectOf(sel.Second)
	if err != nil {
		return err
	}

	m := selectoverlay.NewManager()
	defer m.CloseAll(false)
	p := m.Show(1, selectoverlay.Info{
		First:  selectoverlay.HandleInfo{IsShow: true, PaintRect: first},
		Second: selectoverlay.HandleInfo{IsShow: true, PaintRect: second},
		Menu:   selectoverlay.MenuInfo{MenuIsShow: true, ShowCopy: true},
		OnHandleReverse: func(reversed bool) {
			canvas.Logger().Info("canvasdemo: handles reversed", "reversed", reversed)
		},
	})

	if len(sel.Drag) == 2 {
		start := first.Center()
		p.HandleTouchDown(start)
		p.HandlePanStart(start)
		p.HandlePanMove(selectoverlay.Offset{X: sel.Drag[0], Y: sel.Drag[1]})
		p.HandlePanEnd()
	}

	info := p.Info()
	a, b := info.First.PaintRect, info.Second.PaintRect
	if info.HandleReverse {
		a, b = b, a
	}

	r.Save()
	defer r.Restore()
	r.SetFillColor("rgba(51, 136, 255, 0.25)")
	if a.Top == b.Top {
		r.FillRect(a.Right(), a.Top, b.Left-a.Right(), a.Height)
	}
	r.SetFillColor("#3388FF")
	for _, h := range []selectoverlay.Rect{a, b} {
		r.FillRect(h.Left, h.Top, h.Width, h.Height)
		r.BeginPath()
		r.Arc(h.Left+h.Width/2, h.Bottom()+h.Width, h.Width, 0, 2*math.Pi, false)
		r.Fill()
	}
	return nil
}
