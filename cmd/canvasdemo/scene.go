package main

import (
	"errors"
	"fmt"
	"io"
	"math"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/canvas"
	"github.com/gogpu/canvas/text"
)

// scene is a canvas size plus the drawing commands replayed onto it.
type scene struct {
	Width     float64
	Height    float64
	ViewScale float64 `yaml:"viewScale"`
	// Pipeline is "immediate" (default) or "deferred".
	Pipeline  string
	Antialias bool
	// ImageRoot resolves relative drawImage sources.
	ImageRoot string `yaml:"imageRoot"`
	Commands  []command
	// Selection, when set, draws selection handles after the commands.
	Selection *selection
}

// command is one canvas call. Args holds the call's positional arguments;
// Stops holds color stops for gradient commands.
type command struct {
	Op    string
	Args  []any
	Stops []colorStop
}

type colorStop struct {
	Offset float64
	Color  string
}

// selection places two handles as [left, top, width, height] rectangles
// and optionally drags the first one by Drag [dx, dy].
type selection struct {
	First  []float64
	Second []float64
	Drag   []float64
}

func readScene(r io.Reader) (*scene, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var s scene
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("reading scene: %w", err)
	}
	if s.Width <= 0 || s.Height <= 0 {
		return nil, fmt.Errorf("scene size %vx%v: %w", s.Width, s.Height, canvas.ErrInvalidSize)
	}
	if s.ViewScale <= 0 {
		s.ViewScale = 1
	}
	return &s, nil
}

func (s *scene) rendererOptions() ([]canvas.RendererOption, error) {
	opts := []canvas.RendererOption{
		canvas.WithViewScale(s.ViewScale),
		canvas.WithImageLoader(canvas.FileLoader{Root: s.ImageRoot}),
		canvas.WithAntialias(s.Antialias),
	}
	switch s.Pipeline {
	case "", "immediate":
	case "deferred":
		opts = append(opts, canvas.WithPipeline(canvas.PipelineDeferred))
	default:
		return nil, fmt.Errorf("unknown pipeline %q", s.Pipeline)
	}
	return opts, nil
}

// replay issues every command against r in order.
func (s *scene) replay(r *canvas.Renderer) error {
	for i, c := range s.Commands {
		fn, ok := ops[c.Op]
		if !ok {
			return fmt.Errorf("command %d: unknown op %q", i, c.Op)
		}
		if err := fn(r, c); err != nil {
			return fmt.Errorf("command %d (%s): %w", i, c.Op, err)
		}
	}
	return nil
}

var errArgs = errors.New("bad arguments")

func num(c command, i int) (float64, error) {
	if i >= len(c.Args) {
		return 0, fmt.Errorf("%w: want argument %d", errArgs, i)
	}
	switch v := c.Args[i].(type) {
	case int:
		return float64(v), nil
	case float64:
		return v, nil
	default:
		return 0, fmt.Errorf("%w: argument %d is %T, want number", errArgs, i, c.Args[i])
	}
}

func nums(c command, n int) ([]float64, error) {
	out := make([]float64, n)
	for i := range out {
		v, err := num(c, i)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func str(c command, i int) (string, error) {
	if i >= len(c.Args) {
		return "", fmt.Errorf("%w: want argument %d", errArgs, i)
	}
	s, ok := c.Args[i].(string)
	if !ok {
		return "", fmt.Errorf("%w: argument %d is %T, want string", errArgs, i, c.Args[i])
	}
	return s, nil
}

func boolArg(c command, i int) bool {
	if i >= len(c.Args) {
		return false
	}
	b, _ := c.Args[i].(bool)
	return b
}

type opFunc func(*canvas.Renderer, command) error

func numbers(n int, fn func(r *canvas.Renderer, v []float64)) opFunc {
	return func(r *canvas.Renderer, c command) error {
		v, err := nums(c, n)
		if err != nil {
			return err
		}
		fn(r, v)
		return nil
	}
}

func noArgs(fn func(r *canvas.Renderer)) opFunc {
	return func(r *canvas.Renderer, _ command) error {
		fn(r)
		return nil
	}
}

func colorArg(c command, i int) (canvas.RGBA, error) {
	s, err := str(c, i)
	if err != nil {
		return canvas.RGBA{}, err
	}
	col, ok := canvas.ParseColor(s)
	if !ok {
		return canvas.RGBA{}, fmt.Errorf("%w: color %q", errArgs, s)
	}
	return col, nil
}

func enum[T any](parse func(string) (T, bool), set func(*canvas.Renderer, T)) opFunc {
	return func(r *canvas.Renderer, c command) error {
		s, err := str(c, 0)
		if err != nil {
			return err
		}
		v, ok := parse(s)
		if !ok {
			return fmt.Errorf("%w: %q", errArgs, s)
		}
		set(r, v)
		return nil
	}
}

func texts(draw func(r *canvas.Renderer, s string, x, y float64, maxWidth ...float64)) opFunc {
	return func(r *canvas.Renderer, c command) error {
		s, err := str(c, 0)
		if err != nil {
			return err
		}
		x, err := num(c, 1)
		if err != nil {
			return err
		}
		y, err := num(c, 2)
		if err != nil {
			return err
		}
		if len(c.Args) > 3 {
			w, err := num(c, 3)
			if err != nil {
				return err
			}
			draw(r, s, x, y, w)
			return nil
		}
		draw(r, s, x, y)
		return nil
	}
}

func path2D(draw func(r *canvas.Renderer, p *canvas.Path2D)) opFunc {
	return func(r *canvas.Renderer, c command) error {
		d, err := str(c, 0)
		if err != nil {
			return err
		}
		p, err := canvas.NewPath2DFromSVG(d)
		if err != nil {
			return err
		}
		draw(r, p)
		return nil
	}
}

// gradient builds a gradient from the numeric arguments after the target
// ("fill" or "stroke") and installs it as that style.
func gradient(n int, create func(r *canvas.Renderer, v []float64) *canvas.Gradient) opFunc {
	return func(r *canvas.Renderer, c command) error {
		target, err := str(c, 0)
		if err != nil {
			return err
		}
		v := make([]float64, n)
		for i := range v {
			if v[i], err = num(c, i+1); err != nil {
				return err
			}
		}
		g := create(r, v)
		for _, st := range c.Stops {
			col, ok := canvas.ParseColor(st.Color)
			if !ok {
				return fmt.Errorf("%w: stop color %q", errArgs, st.Color)
			}
			g.AddColorStop(st.Offset, col)
		}
		switch target {
		case "fill":
			r.SetFillStyle(canvas.GradientStyle(g))
		case "stroke":
			r.SetStrokeStyle(canvas.GradientStyle(g))
		default:
			return fmt.Errorf("%w: gradient target %q", errArgs, target)
		}
		return nil
	}
}

func drawImage(r *canvas.Renderer, c command) error {
	src, err := str(c, 0)
	if err != nil {
		return err
	}
	c.Args = c.Args[1:]
	var opts canvas.DrawImageOptions
	switch len(c.Args) {
	case 2:
		v, err := nums(c, 2)
		if err != nil {
			return err
		}
		opts = canvas.ImageAt(v[0], v[1])
	case 4:
		v, err := nums(c, 4)
		if err != nil {
			return err
		}
		opts = canvas.ImageScaled(v[0], v[1], v[2], v[3])
	case 8:
		v, err := nums(c, 8)
		if err != nil {
			return err
		}
		opts = canvas.ImageCropped(v[0], v[1], v[2], v[3], v[4], v[5], v[6], v[7])
	default:
		return fmt.Errorf("%w: drawImage takes 3, 5 or 9 arguments", errArgs)
	}
	r.DrawImageSource(src, opts)
	return nil
}

func arc(r *canvas.Renderer, c command) error {
	v, err := nums(c, 5)
	if err != nil {
		return err
	}
	r.Arc(v[0], v[1], v[2], v[3], v[4], boolArg(c, 5))
	return nil
}

func ellipse(r *canvas.Renderer, c command) error {
	v, err := nums(c, 7)
	if err != nil {
		return err
	}
	r.Ellipse(v[0], v[1], v[2], v[3], v[4], v[5], v[6], boolArg(c, 7))
	return nil
}

func lineDash(r *canvas.Renderer, c command) error {
	v, err := nums(c, len(c.Args))
	if err != nil {
		return err
	}
	r.SetLineDash(v)
	return nil
}

// degrees lets scenes write angles in degrees with the "deg" suffix ops.
func degrees(v float64) float64 { return v * math.Pi / 180 }

var ops = map[string]opFunc{
	"fillStyle": func(r *canvas.Renderer, c command) error {
		s, err := str(c, 0)
		if err == nil {
			r.SetFillColor(s)
		}
		return err
	},
	"strokeStyle": func(r *canvas.Renderer, c command) error {
		s, err := str(c, 0)
		if err == nil {
			r.SetStrokeColor(s)
		}
		return err
	},
	"linearGradient": gradient(4, func(r *canvas.Renderer, v []float64) *canvas.Gradient {
		return r.CreateLinearGradient(v[0], v[1], v[2], v[3])
	}),
	"radialGradient": gradient(6, func(r *canvas.Renderer, v []float64) *canvas.Gradient {
		return r.CreateRadialGradient(v[0], v[1], v[2], v[3], v[4], v[5])
	}),
	"conicGradient": gradient(3, func(r *canvas.Renderer, v []float64) *canvas.Gradient {
		return r.CreateConicGradient(v[0], v[1], v[2])
	}),

	"lineWidth":      numbers(1, func(r *canvas.Renderer, v []float64) { r.SetLineWidth(v[0]) }),
	"miterLimit":     numbers(1, func(r *canvas.Renderer, v []float64) { r.SetMiterLimit(v[0]) }),
	"lineDashOffset": numbers(1, func(r *canvas.Renderer, v []float64) { r.SetLineDashOffset(v[0]) }),
	"lineDash":       lineDash,
	"lineCap":        enum(canvas.ParseLineCap, (*canvas.Renderer).SetLineCap),
	"lineJoin":       enum(canvas.ParseLineJoin, (*canvas.Renderer).SetLineJoin),
	"fillRule":       enum(canvas.ParseFillRule, (*canvas.Renderer).SetFillRuleForPath),

	"globalAlpha":              numbers(1, func(r *canvas.Renderer, v []float64) { r.SetGlobalAlpha(v[0]) }),
	"globalCompositeOperation": enum(canvas.ParseCompositeOperation, (*canvas.Renderer).SetGlobalCompositeOperation),

	"shadowBlur":    numbers(1, func(r *canvas.Renderer, v []float64) { r.SetShadowBlur(v[0]) }),
	"shadowOffsetX": numbers(1, func(r *canvas.Renderer, v []float64) { r.SetShadowOffsetX(v[0]) }),
	"shadowOffsetY": numbers(1, func(r *canvas.Renderer, v []float64) { r.SetShadowOffsetY(v[0]) }),
	"shadowColor": func(r *canvas.Renderer, c command) error {
		col, err := colorArg(c, 0)
		if err == nil {
			r.SetShadowColor(col)
		}
		return err
	},

	"font": func(r *canvas.Renderer, c command) error {
		s, err := str(c, 0)
		if err == nil {
			r.SetFont(s)
		}
		return err
	},
	"textAlign":             enum(text.ParseAlign, (*canvas.Renderer).SetTextAlign),
	"textBaseline":          enum(text.ParseBaseline, (*canvas.Renderer).SetTextBaseline),
	"direction":             enum(text.ParseDirection, (*canvas.Renderer).SetDirection),
	"imageSmoothingQuality": enum(canvas.ParseImageSmoothingQuality, (*canvas.Renderer).SetImageSmoothingQuality),
	"imageSmoothingEnabled": func(r *canvas.Renderer, c command) error {
		r.SetImageSmoothingEnabled(boolArg(c, 0))
		return nil
	},

	"save":           noArgs((*canvas.Renderer).Save),
	"restore":        noArgs((*canvas.Renderer).Restore),
	"resetTransform": noArgs((*canvas.Renderer).ResetTransform),
	"translate":      numbers(2, func(r *canvas.Renderer, v []float64) { r.Translate(v[0], v[1]) }),
	"scale":          numbers(2, func(r *canvas.Renderer, v []float64) { r.Scale(v[0], v[1]) }),
	"rotate":         numbers(1, func(r *canvas.Renderer, v []float64) { r.Rotate(v[0]) }),
	"rotateDeg":      numbers(1, func(r *canvas.Renderer, v []float64) { r.Rotate(degrees(v[0])) }),
	"transform": numbers(6, func(r *canvas.Renderer, v []float64) {
		r.Transform(v[0], v[1], v[2], v[3], v[4], v[5])
	}),
	"setTransform": numbers(6, func(r *canvas.Renderer, v []float64) {
		r.SetTransform(v[0], v[1], v[2], v[3], v[4], v[5])
	}),

	"beginPath": noArgs((*canvas.Renderer).BeginPath),
	"closePath": noArgs((*canvas.Renderer).ClosePath),
	"moveTo":    numbers(2, func(r *canvas.Renderer, v []float64) { r.MoveTo(v[0], v[1]) }),
	"lineTo":    numbers(2, func(r *canvas.Renderer, v []float64) { r.LineTo(v[0], v[1]) }),
	"bezierCurveTo": numbers(6, func(r *canvas.Renderer, v []float64) {
		r.BezierCurveTo(v[0], v[1], v[2], v[3], v[4], v[5])
	}),
	"quadraticCurveTo": numbers(4, func(r *canvas.Renderer, v []float64) {
		r.QuadraticCurveTo(v[0], v[1], v[2], v[3])
	}),
	"arc":     arc,
	"arcTo":   numbers(5, func(r *canvas.Renderer, v []float64) { r.ArcTo(v[0], v[1], v[2], v[3], v[4]) }),
	"ellipse": ellipse,
	"rect":    numbers(4, func(r *canvas.Renderer, v []float64) { r.Rect(v[0], v[1], v[2], v[3]) }),
	"addPath": func(r *canvas.Renderer, c command) error {
		s, err := str(c, 0)
		if err == nil {
			r.AddPath(s)
		}
		return err
	},

	"fill":         noArgs((*canvas.Renderer).Fill),
	"stroke":       noArgs((*canvas.Renderer).Stroke),
	"clip":         noArgs((*canvas.Renderer).Clip),
	"fillPath2D":   path2D((*canvas.Renderer).FillPath2D),
	"strokePath2D": path2D((*canvas.Renderer).StrokePath2D),
	"clipPath2D":   path2D((*canvas.Renderer).ClipPath2D),
	"fillRect":     numbers(4, func(r *canvas.Renderer, v []float64) { r.FillRect(v[0], v[1], v[2], v[3]) }),
	"strokeRect":   numbers(4, func(r *canvas.Renderer, v []float64) { r.StrokeRect(v[0], v[1], v[2], v[3]) }),
	"clearRect":    numbers(4, func(r *canvas.Renderer, v []float64) { r.ClearRect(v[0], v[1], v[2], v[3]) }),

	"fillText":   texts((*canvas.Renderer).FillText),
	"strokeText": texts((*canvas.Renderer).StrokeText),
	"drawImage":  drawImage,
}
