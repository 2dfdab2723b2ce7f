package cache

// LRU is a map bounded to a fixed number of entries. Inserting beyond the
// capacity evicts the least recently used entry.
type LRU[K comparable, V any] struct {
	capacity int
	entries  map[K]*lruNode[K, V]
	order    lruList[K, V]
	onEvict  func(K, V)
}

// New creates an LRU holding at most capacity entries. A capacity below
// one is treated as one. onEvict, if non-nil, is called for every entry
// removed by eviction.
func New[K comparable, V any](capacity int, onEvict func(K, V)) *LRU[K, V] {
	if capacity < 1 {
		capacity = 1
	}
	return &LRU[K, V]{
		capacity: capacity,
		entries:  make(map[K]*lruNode[K, V], capacity),
		onEvict:  onEvict,
	}
}

// Get returns the value for key and marks it recently used.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	node, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.order.moveToFront(node)
	return node.value, true
}

// Contains reports whether key is cached without touching its recency.
func (c *LRU[K, V]) Contains(key K) bool {
	_, ok := c.entries[key]
	return ok
}

// Put stores value for key, evicting the oldest entries if needed.
func (c *LRU[K, V]) Put(key K, value V) {
	if node, ok := c.entries[key]; ok {
		node.value = value
		c.order.moveToFront(node)
		return
	}
	c.entries[key] = c.order.pushFront(key, value)
	for c.order.len > c.capacity {
		old := c.order.removeOldest()
		delete(c.entries, old.key)
		if c.onEvict != nil {
			c.onEvict(old.key, old.value)
		}
	}
}

// Remove deletes key. It reports whether the key was present.
func (c *LRU[K, V]) Remove(key K) bool {
	node, ok := c.entries[key]
	if !ok {
		return false
	}
	c.order.unlink(node)
	delete(c.entries, key)
	return true
}

// Len returns the number of cached entries.
func (c *LRU[K, V]) Len() int {
	return c.order.len
}

// Capacity returns the maximum number of entries.
func (c *LRU[K, V]) Capacity() int {
	return c.capacity
}

// Clear removes all entries without calling onEvict.
func (c *LRU[K, V]) Clear() {
	clear(c.entries)
	c.order = lruList[K, V]{}
}
