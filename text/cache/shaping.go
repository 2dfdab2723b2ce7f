// Package cache provides a concurrent LRU cache of laid out text.
//
// Shaping and font metrics dominate the cost of measureText and fillText.
// A ShapingCache keyed by text, face and shaping parameters lets repeated
// draws of the same string reuse one Paragraph:
//
//	c := cache.NewShapingCache(0)
//	key := cache.NewShapingKey(s, face.ID(), style, dir)
//	p, err := c.GetOrCreate(key, func() (*text.Paragraph, error) {
//	    return text.NewParagraphFace(face, s, style, dir)
//	})
package cache

import (
	"hash/fnv"
	"math"
	"sync"
	"sync/atomic"

	lru "github.com/gogpu/canvas/internal/cache"
	"github.com/gogpu/canvas/text"
)

const (
	// DefaultShardCount is the number of shards. Must be a power of 2.
	DefaultShardCount = 16

	// DefaultCapacity is the default maximum entries per shard.
	DefaultCapacity = 64

	shardMask = DefaultShardCount - 1
)

// ShapingKey identifies a laid out paragraph. It holds every input that
// changes the result of text.NewParagraphFace.
type ShapingKey struct {
	Text   string
	FaceID uint64

	// SizeBits and SpacingBits are IEEE 754 bit patterns, so lookups
	// match exactly.
	SizeBits    uint64
	SpacingBits uint64

	// Direction is the requested direction, before inherit is resolved.
	Direction text.Direction
}

// NewShapingKey creates the key for s drawn with face in style and dir.
func NewShapingKey(s string, faceID uint64, style text.FontStyle, dir text.Direction) ShapingKey {
	return ShapingKey{
		Text:        s,
		FaceID:      faceID,
		SizeBits:    math.Float64bits(style.Size),
		SpacingBits: math.Float64bits(style.LetterSpacing),
		Direction:   dir,
	}
}

func (k *ShapingKey) shard() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(k.Text)) // fnv.Write never returns an error
	return (h.Sum64() ^ k.FaceID ^ k.SizeBits) & shardMask
}

// ShapingCache is a sharded LRU cache of paragraphs.
//
// ShapingCache is safe for concurrent use. Cached paragraphs are shared
// and must not be modified.
type ShapingCache struct {
	shards   [DefaultShardCount]*cacheShard
	capacity int

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

type cacheShard struct {
	mu      sync.Mutex
	entries *lru.LRU[ShapingKey, *text.Paragraph]
}

// NewShapingCache creates a cache holding capacity paragraphs per shard.
// If capacity <= 0, DefaultCapacity is used.
func NewShapingCache(capacity int) *ShapingCache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	c := &ShapingCache{capacity: capacity}
	for i := range c.shards {
		c.shards[i] = &cacheShard{
			entries: lru.New[ShapingKey, *text.Paragraph](capacity, func(ShapingKey, *text.Paragraph) {
				c.evictions.Add(1)
			}),
		}
	}
	return c
}

func (c *ShapingCache) getShard(key *ShapingKey) *cacheShard {
	return c.shards[key.shard()]
}

// Get returns the cached paragraph for key.
func (c *ShapingCache) Get(key ShapingKey) (*text.Paragraph, bool) {
	s := c.getShard(&key)
	s.mu.Lock()
	p, ok := s.entries.Get(key)
	s.mu.Unlock()
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return p, ok
}

// Set stores p for key, evicting the shard's least recently used entry
// when it is full. A nil p is ignored.
func (c *ShapingCache) Set(key ShapingKey, p *text.Paragraph) {
	if p == nil {
		return
	}
	s := c.getShard(&key)
	s.mu.Lock()
	s.entries.Put(key, p)
	s.mu.Unlock()
}

// GetOrCreate returns the cached paragraph for key or builds it with
// create. Errors are returned and not cached. create runs under the shard
// lock so concurrent misses on one key lay the text out once.
func (c *ShapingCache) GetOrCreate(key ShapingKey, create func() (*text.Paragraph, error)) (*text.Paragraph, error) {
	s := c.getShard(&key)
	s.mu.Lock()
	defer s.mu.Unlock()

	if p, ok := s.entries.Get(key); ok {
		c.hits.Add(1)
		return p, nil
	}
	c.misses.Add(1)
	p, err := create()
	if err != nil {
		return nil, err
	}
	if p != nil {
		s.entries.Put(key, p)
	}
	return p, nil
}

// Delete removes key. It reports whether the key was cached.
func (c *ShapingCache) Delete(key ShapingKey) bool {
	s := c.getShard(&key)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entries.Remove(key)
}

// Clear removes all entries.
func (c *ShapingCache) Clear() {
	for _, s := range c.shards {
		s.mu.Lock()
		s.entries.Clear()
		s.mu.Unlock()
	}
}

// Len returns the number of entries across all shards.
func (c *ShapingCache) Len() int {
	n := 0
	for _, s := range c.shards {
		s.mu.Lock()
		n += s.entries.Len()
		s.mu.Unlock()
	}
	return n
}

// Capacity returns the per-shard capacity.
func (c *ShapingCache) Capacity() int { return c.capacity }

// Stats is a snapshot of cache counters.
type Stats struct {
	Len       int
	Hits      uint64
	Misses    uint64
	Evictions uint64
	// HitRate is Hits / (Hits + Misses), or 0 before any lookup.
	HitRate float64
}

// Stats returns the current counters.
func (c *ShapingCache) Stats() Stats {
	hits, misses := c.hits.Load(), c.misses.Load()
	var rate float64
	if total := hits + misses; total > 0 {
		rate = float64(hits) / float64(total)
	}
	return Stats{
		Len:       c.Len(),
		Hits:      hits,
		Misses:    misses,
		Evictions: c.evictions.Load(),
		HitRate:   rate,
	}
}

// ResetStats zeroes the hit, miss and eviction counters.
func (c *ShapingCache) ResetStats() {
	c.hits.Store(0)
	c.misses.Store(0)
	c.evictions.Store(0)
}
