package canvas

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/canvas/internal/cache"
	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/webp" // register WebP decoder
)

// ImageLoader resolves image sources that are not in the image cache.
// Exactly one callback is invoked, on the goroutine that owns the
// renderer, either during Load or later.
type ImageLoader interface {
	Load(src string, onSuccess func(image.Image), onFailure func(error))
}

// DecodeImage decodes PNG, JPEG, GIF, BMP or WebP data.
func DecodeImage(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("canvas: decode image: %w", err)
	}
	return img, nil
}

// FileLoader loads images from files below Root and from base64 data
// URLs. It decodes synchronously, so callbacks run during Load.
type FileLoader struct {
	Root string
}

// Load implements ImageLoader.
func (l FileLoader) Load(src string, onSuccess func(image.Image), onFailure func(error)) {
	img, err := l.LoadSync(src)
	if err != nil {
		onFailure(err)
		return
	}
	onSuccess(img)
}

// LoadSync decodes src and returns the image.
func (l FileLoader) LoadSync(src string) (image.Image, error) {
	if strings.HasPrefix(src, "data:") {
		return decodeDataURL(src)
	}
	name := strings.TrimPrefix(src, "file://")
	if l.Root != "" && !filepath.IsAbs(name) {
		name = filepath.Join(l.Root, name)
	}
	f, err := os.Open(name)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrImageNotFound, src)
		}
		return nil, err
	}
	defer f.Close()
	return DecodeImage(f)
}

func decodeDataURL(src string) (image.Image, error) {
	header, payload, ok := strings.Cut(strings.TrimPrefix(src, "data:"), ",")
	if !ok {
		return nil, fmt.Errorf("%w: malformed data URL", ErrImageNotFound)
	}
	var data []byte
	if strings.HasSuffix(header, ";base64") {
		b, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("canvas: data URL: %w", err)
		}
		data = b
	} else {
		s, err := url.PathUnescape(payload)
		if err != nil {
			return nil, fmt.Errorf("canvas: data URL: %w", err)
		}
		data = []byte(s)
	}
	return DecodeImage(bytes.NewReader(data))
}

// ImageCache keeps decoded images keyed by source, bounded by capacity,
// and tracks loads in flight.
type ImageCache struct {
	lru     *cache.LRU[string, image.Image]
	loading map[string][]func(image.Image)
}

// NewImageCache creates a cache holding at most capacity images.
func NewImageCache(capacity int) *ImageCache {
	return &ImageCache{
		lru: cache.New[string, image.Image](capacity, func(src string, _ image.Image) {
			Logger().Debug("canvas: evict image", "src", src)
		}),
		loading: make(map[string][]func(image.Image)),
	}
}

// Get returns the cached image for src.
func (c *ImageCache) Get(src string) (image.Image, bool) {
	return c.lru.Get(src)
}

// Put caches img for src.
func (c *ImageCache) Put(src string, img image.Image) {
	c.lru.Put(src, img)
}

// Len returns the number of cached images.
func (c *ImageCache) Len() int {
	return c.lru.Len()
}

// Capacity returns the maximum number of cached images.
func (c *ImageCache) Capacity() int {
	return c.lru.Capacity()
}

// Loading reports whether a load of src is in flight.
func (c *ImageCache) Loading(src string) bool {
	_, ok := c.loading[src]
	return ok
}

// request calls ready with the image for src, from the cache when
// present, otherwise once loader delivers it. Concurrent requests for the
// same source share one load. It reports whether ready ran immediately.
func (c *ImageCache) request(src string, loader ImageLoader, ready func(image.Image)) bool {
	if img, ok := c.lru.Get(src); ok {
		ready(img)
		return true
	}
	if waiters, ok := c.loading[src]; ok {
		c.loading[src] = append(waiters, ready)
		return false
	}
	c.loading[src] = []func(image.Image){ready}
	loader.Load(src,
		func(img image.Image) {
			waiters := c.loading[src]
			delete(c.loading, src)
			c.lru.Put(src, img)
			for _, w := range waiters {
				w(img)
			}
		},
		func(err error) {
			delete(c.loading, src)
			Logger().Warn("canvas: load image", "src", src, "err", err)
		})
	return false
}
