package canvas

import (
	"github.com/gogpu/canvas/text"
	textcache "github.com/gogpu/canvas/text/cache"
)

// RendererOption configures a Renderer during creation.
//
// Example:
//
//	// Deferred pipeline on a 2x display
//	r := canvas.NewRenderer(300, 150,
//	    canvas.WithViewScale(2),
//	    canvas.WithPipeline(canvas.PipelineDeferred))
type RendererOption func(*rendererOptions)

type rendererOptions struct {
	viewScale     float64
	pipeline      Pipeline
	backend       Backend
	loader        ImageLoader
	cacheCapacity int
	fonts         *text.Fonts
	shaping       *textcache.ShapingCache
	antialias     bool
}

// DefaultImageCacheCapacity is the number of decoded images a renderer
// keeps by default.
const DefaultImageCacheCapacity = 32

func defaultOptions() rendererOptions {
	return rendererOptions{
		viewScale:     1,
		pipeline:      PipelineImmediate,
		cacheCapacity: DefaultImageCacheCapacity,
	}
}

// WithViewScale sets the factor from layout units to device pixels.
// Non-positive values are ignored.
func WithViewScale(scale float64) RendererOption {
	return func(o *rendererOptions) {
		if scale > 0 {
			o.viewScale = scale
		}
	}
}

// WithPipeline selects immediate or deferred command execution.
func WithPipeline(p Pipeline) RendererOption {
	return func(o *rendererOptions) {
		o.pipeline = p
	}
}

// WithBackend sets the backend that allocates the canvas surfaces.
// The default is SoftwareBackend.
func WithBackend(b Backend) RendererOption {
	return func(o *rendererOptions) {
		o.backend = b
	}
}

// WithImageLoader sets the loader used for image sources missing from
// the image cache. The default is a FileLoader rooted at the working
// directory.
func WithImageLoader(l ImageLoader) RendererOption {
	return func(o *rendererOptions) {
		o.loader = l
	}
}

// WithImageCacheCapacity bounds the number of cached decoded images.
func WithImageCacheCapacity(n int) RendererOption {
	return func(o *rendererOptions) {
		o.cacheCapacity = n
	}
}

// WithShapingCache sets the cache of laid out text. The default is shared
// by every renderer in the process.
func WithShapingCache(c *textcache.ShapingCache) RendererOption {
	return func(o *rendererOptions) {
		o.shaping = c
	}
}

// WithAntialias turns on fractional edge coverage. By default a pixel is
// painted only when its center lies inside the shape, so shapes keep
// hard edges.
func WithAntialias(on bool) RendererOption {
	return func(o *rendererOptions) {
		o.antialias = on
	}
}

// WithFonts sets the font registry used for text. The default serves the
// Go fonts.
func WithFonts(f *text.Fonts) RendererOption {
	return func(o *rendererOptions) {
		o.fonts = f
	}
}
