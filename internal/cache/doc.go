// Package cache provides a capacity-bounded LRU map.
//
//	c := cache.New[string, image.Image](64, nil)
//	c.Put("logo.png", img)
//	img, ok := c.Get("logo.png")
//
// LRU is not safe for concurrent use; the canvas renderer owns its image
// cache on a single goroutine.
package cache
