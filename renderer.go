package canvas

import (
	"image"
	"math"
	"sync"

	"github.com/gogpu/canvas/internal/raster"
	"github.com/gogpu/canvas/text"
	textcache "github.com/gogpu/canvas/text/cache"
)

var (
	defaultFonts   = sync.OnceValue(text.NewFonts)
	defaultShaping = sync.OnceValue(func() *textcache.ShapingCache {
		return textcache.NewShapingCache(textcache.DefaultCapacity)
	})
)

// drawState is the part of the renderer saved by Save and restored by
// Restore.
type drawState struct {
	paint     PaintState
	transform Matrix
	clip      *raster.Mask // device space; nil means unclipped
}

func (s drawState) clone() drawState {
	return drawState{paint: s.paint.clone(), transform: s.transform, clip: s.clip}
}

// Renderer is the raster core of a canvas. It owns a persistent canvas
// surface and a blend cache surface of the same size, the current path
// and Path2D slot, the paint state stack and the per-canvas pattern arena.
//
// Composite source-over draws straight onto the canvas surface. Every
// other composite operation draws source-over onto the cleared cache,
// blends the cache onto the canvas with the operation, then clears the
// cache.
//
// A Renderer is not safe for concurrent use.
type Renderer struct {
	opts     rendererOptions
	backend  Backend
	fonts    *text.Fonts
	shaping  *textcache.ShapingCache
	patterns *patternArena
	images   *ImageCache

	width, height float64 // layout size
	viewScale     float64
	bmpW, bmpH    int // size of the current surfaces
	canvas        Surface
	cache         Surface
	raster        *raster.Rasterizer

	state   drawState
	stack   []drawState
	builder *PathBuilder

	queue        taskQueue
	needsRepaint bool
}

// NewRenderer creates a renderer for a canvas of the given layout size.
// Surfaces are allocated lazily on the first draw.
func NewRenderer(width, height float64, opts ...RendererOption) *Renderer {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	if options.backend == nil {
		options.backend = SoftwareBackend{}
	}
	if options.loader == nil {
		options.loader = FileLoader{}
	}
	if options.fonts == nil {
		options.fonts = defaultFonts()
	}
	if options.shaping == nil {
		options.shaping = defaultShaping()
	}

	return &Renderer{
		opts:      options,
		backend:   options.backend,
		fonts:     options.fonts,
		shaping:   options.shaping,
		patterns:  newPatternArena(),
		images:    NewImageCache(options.cacheCapacity),
		width:     math.Max(width, 0),
		height:    math.Max(height, 0),
		viewScale: options.viewScale,
		state:     drawState{paint: NewPaintState(), transform: Identity()},
		builder:   NewPathBuilder(),
	}
}

// exec runs t now in the immediate pipeline or queues it in the deferred
// pipeline.
func (r *Renderer) exec(t task) {
	if r.opts.pipeline == PipelineDeferred {
		r.queue.push(t)
		return
	}
	r.ensureBitmaps()
	t()
}

// Flush runs every queued command in order and clears the queue. This is
// the paint pass of the deferred pipeline; in the immediate pipeline it
// runs draws appended by finished image loads.
func (r *Renderer) Flush() {
	r.ensureBitmaps()
	if n := r.queue.run(); n > 0 {
		Logger().Debug("canvas: flushed tasks", "count", n)
	}
	r.needsRepaint = false
}

// Pending returns the number of queued commands.
func (r *Renderer) Pending() int {
	return r.queue.len()
}

// NeedsRepaint reports whether an image load queued a draw since the last
// Flush.
func (r *Renderer) NeedsRepaint() bool {
	return r.needsRepaint
}

// Pipeline returns the pipeline chosen at construction.
func (r *Renderer) Pipeline() Pipeline {
	return r.opts.pipeline
}

// Antialias reports whether edges get fractional coverage.
func (r *Renderer) Antialias() bool {
	return r.opts.antialias
}

// ViewScale returns the layout to device pixel factor.
func (r *Renderer) ViewScale() float64 {
	return r.viewScale
}

// Size returns the layout size.
func (r *Renderer) Size() (width, height float64) {
	return r.width, r.height
}

// Resize changes the layout size. The surfaces are reallocated and
// cleared when the device size changes.
func (r *Renderer) Resize(width, height float64) {
	r.exec(func() {
		r.width = math.Max(width, 0)
		r.height = math.Max(height, 0)
		r.ensureBitmaps()
	})
}

// deviceSize returns ceil(layout size * view scale).
func (r *Renderer) deviceSize() (int, int) {
	w := int(math.Ceil(r.width * r.viewScale))
	h := int(math.Ceil(r.height * r.viewScale))
	return w, h
}

// ensureBitmaps (re)allocates both surfaces when the device size differs
// from the last known size.
func (r *Renderer) ensureBitmaps() {
	w, h := r.deviceSize()
	if r.canvas != nil && w == r.bmpW && h == r.bmpH {
		return
	}
	Logger().Debug("canvas: allocate surfaces",
		"backend", r.backend.Name(), "width", w, "height", h)
	r.canvas = r.backend.NewSurface(w, h)
	r.cache = r.backend.NewSurface(w, h)
	r.canvas.Clear()
	r.cache.Clear()
	r.raster = raster.NewRasterizer(w, h)
	r.raster.SetAntialias(r.opts.antialias)
	r.bmpW, r.bmpH = w, h

	// Device-space clips no longer match the surface.
	r.state.clip = nil
	for i := range r.stack {
		r.stack[i].clip = nil
	}
}

// hasPixels reports whether the canvas surface has a non-empty area.
func (r *Renderer) hasPixels() bool {
	return r.canvas != nil && r.bmpW > 0 && r.bmpH > 0
}

// Image returns the canvas pixels after flushing pending commands. The
// returned image is premultiplied and owned by the renderer.
func (r *Renderer) Image() *image.RGBA {
	r.Flush()
	return r.canvas.Image()
}

// deviceMatrix maps user space to device pixels.
func (r *Renderer) deviceMatrix() Matrix {
	return Scale(r.viewScale, r.viewScale).Multiply(r.state.transform)
}

// Save pushes a copy of the drawing state.
func (r *Renderer) Save() {
	r.exec(func() {
		r.stack = append(r.stack, r.state.clone())
	})
}

// Restore pops the drawing state. Without a matching Save it does nothing.
func (r *Renderer) Restore() {
	r.exec(func() {
		if len(r.stack) == 0 {
			return
		}
		r.state = r.stack[len(r.stack)-1]
		r.stack = r.stack[:len(r.stack)-1]
	})
}

// Translate moves the origin of user space.
func (r *Renderer) Translate(x, y float64) {
	r.exec(func() { r.state.transform = r.state.transform.Multiply(Translate(x, y)) })
}

// Scale scales user space.
func (r *Renderer) Scale(x, y float64) {
	r.exec(func() { r.state.transform = r.state.transform.Multiply(Scale(x, y)) })
}

// Rotate rotates user space clockwise by angle radians.
func (r *Renderer) Rotate(angle float64) {
	r.exec(func() { r.state.transform = r.state.transform.Multiply(Rotate(angle)) })
}

// Transform multiplies the current transform by the canvas-order matrix
// (a, b, c, d, e, f).
func (r *Renderer) Transform(a, b, c, d, e, f float64) {
	r.exec(func() {
		r.state.transform = r.state.transform.Multiply(CanvasMatrix(a, b, c, d, e, f))
	})
}

// SetTransform replaces the current transform.
func (r *Renderer) SetTransform(a, b, c, d, e, f float64) {
	r.exec(func() { r.state.transform = CanvasMatrix(a, b, c, d, e, f) })
}

// ResetTransform sets the current transform to identity.
func (r *Renderer) ResetTransform() {
	r.exec(func() { r.state.transform = Identity() })
}

// CurrentTransform returns the current transform after flushing.
func (r *Renderer) CurrentTransform() Matrix {
	r.Flush()
	return r.state.transform
}

// State returns a copy of the paint state after flushing.
func (r *Renderer) State() PaintState {
	r.Flush()
	return r.state.paint.clone()
}

// shaderFor builds the device-space shader of a style. It returns nil
// when the style paints nothing.
func (r *Renderer) shaderFor(s Style) Shader {
	switch s.kind {
	case styleGradient:
		toUser := r.deviceMatrix()
		if !toUser.Invertible() {
			return nil
		}
		return s.gradient.Shader(toUser.Invert())
	case stylePattern:
		p, ok := r.patterns.get(s.pattern)
		if !ok {
			return nil
		}
		toUser := r.deviceMatrix()
		if !toUser.Invertible() {
			return nil
		}
		sh, ok := p.Shader(toUser.Invert())
		if !ok {
			return nil
		}
		return sh
	default:
		return SolidShader{Color: s.color}
	}
}

type shadowPass uint8

const (
	passBoth       shadowPass = iota // shadow, then shape
	passShadowOnly                   // shadow only
	passShapeOnly                    // shape only
)

// paint draws the coverage mask with sh according to p, handling the
// shadow, the clip and the composite state. mask is consumed.
func (r *Renderer) paint(mask *raster.Mask, p Paint, sh Shader, pass shadowPass) {
	if mask == nil || sh == nil || !r.hasPixels() {
		return
	}
	sh = withAlpha(sh, p.Alpha)
	clip := r.state.clip

	target := r.canvas
	direct := p.Composite.direct()
	if !direct {
		target = r.cache
		target.Clear()
	}

	if pass != passShapeOnly && p.Shadow.visible() {
		sm := r.shadowMask(mask, sh, p.Shadow)
		sm.Intersect(clip)
		target.FillCoverage(newCoverage(sm), SolidShader{Color: p.Shadow.Color})
	}
	if pass != passShadowOnly {
		mask.Intersect(clip)
		target.FillCoverage(newCoverage(mask), sh)
	}

	if !direct {
		r.canvas.Composite(r.cache, p.Composite, newCoverage(clip))
		r.cache.Clear()
	}
}

// shadowMask derives the shadow coverage: source alpha times coverage,
// offset in device pixels and blurred with sigma = blur / 2.
func (r *Renderer) shadowMask(mask *raster.Mask, sh Shader, s Shadow) *raster.Mask {
	m := mask.Clone()
	if solid, ok := sh.(SolidShader); ok {
		a := float32(solid.Color.A)
		for i := range m.Data {
			m.Data[i] *= a
		}
	} else {
		for y := 0; y < m.Height; y++ {
			for x := 0; x < m.Width; x++ {
				i := y*m.Width + x
				if m.Data[i] > 0 {
					m.Data[i] *= float32(sh.ColorAt(float64(x)+0.5, float64(y)+0.5).A)
				}
			}
		}
	}
	dx := int(math.Round(s.OffsetX * r.viewScale))
	dy := int(math.Round(s.OffsetY * r.viewScale))
	if dx != 0 || dy != 0 {
		m = m.Offset(dx, dy)
	}
	if s.Blur > 0 {
		m.GaussianBlur(s.Blur / 2 * r.viewScale)
	}
	return m
}
