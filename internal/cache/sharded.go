package cache

import (
	"hash/fnv"
	"sync"
	"sync/atomic"
)

// Default configuration constants.
const (
	// DefaultShardCount is the number of shards for reduced lock contention.
	// Must be a power of 2 for fast modulo via bitwise AND.
	DefaultShardCount = 16

	// DefaultCapacity is the default maximum entries per shard.
	DefaultCapacity = 64

	// shardMask is used for fast shard selection (DefaultShardCount - 1).
	shardMask = DefaultShardCount - 1
)

// Hasher is a function that computes a hash for a key.
// Used by ShardedCache for shard selection.
type Hasher[K any] func(K) uint64

// Uint64Hasher computes an FNV-1a hash of a uint64 key.
// A mixing hash matters here: shard selection uses the low bits, which for
// packed keys often carry the least-varying fields.
func Uint64Hasher(u uint64) uint64 {
	h := fnv.New64a()
	var buf [8]byte
	for i := range buf {
		buf[i] = byte(u >> (8 * i))
	}
	_, _ = h.Write(buf[:]) // fnv.Write never returns an error
	return h.Sum64()
}

// Stats holds cache statistics.
type Stats struct {
	// Len is the current number of entries.
	Len int
	// Capacity is the per-shard capacity.
	Capacity int
	// TotalCapacity is the total capacity across all shards.
	TotalCapacity int
	// Hits is the number of cache hits.
	Hits uint64
	// Misses is the number of cache misses.
	Misses uint64
	// HitRate is the cache hit rate 0.0 to 1.0.
	HitRate float64
	// Evictions is the number of evicted entries.
	Evictions uint64
}

// ShardedCache is a thread-safe, sharded LRU cache.
//
// Features:
//   - 16 shards for reduced lock contention
//   - LRU eviction with configurable capacity per shard
//   - Thread-safe for concurrent access
//   - Atomic statistics for monitoring
type ShardedCache[K comparable, V any] struct {
	shards   [DefaultShardCount]*shardedCacheShard[K, V]
	hasher   Hasher[K]
	capacity int // Per-shard capacity

	// Statistics (atomic for zero-allocation reads)
	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

// shardedCacheShard is a single shard of the cache.
// Each shard has its own mutex for reduced contention.
type shardedCacheShard[K comparable, V any] struct {
	mu      sync.RWMutex
	entries map[K]*shardedCacheEntry[K, V]
	lru     *lruList[K]
}

// shardedCacheEntry holds a cached value with its LRU node.
type shardedCacheEntry[K comparable, V any] struct {
	value V
	node  *lruNode[K]
}

// NewSharded creates a new sharded cache with the specified capacity per shard.
// Total capacity is approximately capacity * DefaultShardCount (16).
//
// The hasher function is used to compute hash values for shard selection.
//
// If capacity <= 0, DefaultCapacity is used.
func NewSharded[K comparable, V any](capacity int, hasher Hasher[K]) *ShardedCache[K, V] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	c := &ShardedCache[K, V]{
		hasher:   hasher,
		capacity: capacity,
	}

	for i := range c.shards {
		c.shards[i] = &shardedCacheShard[K, V]{
			entries: make(map[K]*shardedCacheEntry[K, V]),
			lru:     newLRUList[K](),
		}
	}

	return c
}

// getShard returns the shard for a given key.
// Uses bitwise AND for fast modulo (only works with power-of-2 shard count).
func (c *ShardedCache[K, V]) getShard(key K) *shardedCacheShard[K, V] {
	hash := c.hasher(key)
	return c.shards[hash&shardMask]
}

// Get retrieves a cached value by key.
// Returns (value, true) if found, (zero, false) otherwise.
//
// On cache hit, the entry is moved to the front of the LRU list.
func (c *ShardedCache[K, V]) Get(key K) (V, bool) {
	shard := c.getShard(key)

	// Fast path: read lock to check existence
	shard.mu.RLock()
	_, exists := shard.entries[key]
	shard.mu.RUnlock()

	if !exists {
		c.misses.Add(1)
		var zero V
		return zero, false
	}

	// Slow path: write lock for LRU update
	shard.mu.Lock()
	// Re-check after acquiring write lock (entry may have been evicted)
	entry, ok := shard.entries[key]
	if !ok {
		shard.mu.Unlock()
		c.misses.Add(1)
		var zero V
		return zero, false
	}
	shard.lru.MoveToFront(entry.node)
	value := entry.value
	shard.mu.Unlock()

	c.hits.Add(1)
	return value, true
}

// Set stores a value in the cache.
// If the shard exceeds capacity after insertion, oldest entries are evicted.
//
// The value is stored as-is (not copied). Callers should not modify it
// after caching.
func (c *ShardedCache[K, V]) Set(key K, value V) {
	shard := c.getShard(key)

	shard.mu.Lock()
	defer shard.mu.Unlock()

	if existing, ok := shard.entries[key]; ok {
		existing.value = value
		shard.lru.MoveToFront(existing.node)
		return
	}

	c.evictLocked(shard)

	node := shard.lru.PushFront(key)
	shard.entries[key] = &shardedCacheEntry[K, V]{
		value: value,
		node:  node,
	}
}

// GetOrCreate returns a cached value or creates it using the provided function.
// This is the preferred method for cache access as it prevents duplicate computation.
//
// The create function is called with the shard lock held to prevent thundering herd.
// Keep the create function fast to minimize lock contention.
func (c *ShardedCache[K, V]) GetOrCreate(key K, create func() V) V {
	if value, ok := c.Get(key); ok {
		return value
	}

	shard := c.getShard(key)

	shard.mu.Lock()
	defer shard.mu.Unlock()

	// Re-check after acquiring write lock. The Get above already counted
	// the miss, so no second count here.
	if entry, ok := shard.entries[key]; ok {
		shard.lru.MoveToFront(entry.node)
		c.hits.Add(1)
		return entry.value
	}

	value := create()

	c.evictLocked(shard)

	node := shard.lru.PushFront(key)
	shard.entries[key] = &shardedCacheEntry[K, V]{
		value: value,
		node:  node,
	}

	return value
}

// evictLocked removes oldest entries until the shard is below capacity.
// The shard lock must be held.
func (c *ShardedCache[K, V]) evictLocked(shard *shardedCacheShard[K, V]) {
	for shard.lru.Len() >= c.capacity {
		oldest, ok := shard.lru.RemoveOldest()
		if !ok {
			break
		}
		delete(shard.entries, oldest)
		c.evictions.Add(1)
	}
}

// Delete removes an entry from the cache.
// Returns true if the entry was found and removed.
func (c *ShardedCache[K, V]) Delete(key K) bool {
	shard := c.getShard(key)

	shard.mu.Lock()
	defer shard.mu.Unlock()

	entry, ok := shard.entries[key]
	if !ok {
		return false
	}

	shard.lru.Remove(entry.node)
	delete(shard.entries, key)
	return true
}

// Clear removes all entries from the cache.
func (c *ShardedCache[K, V]) Clear() {
	for _, shard := range c.shards {
		shard.mu.Lock()
		shard.entries = make(map[K]*shardedCacheEntry[K, V])
		shard.lru.Clear()
		shard.mu.Unlock()
	}
}

// Len returns the total number of entries across all shards.
func (c *ShardedCache[K, V]) Len() int {
	total := 0
	for _, shard := range c.shards {
		shard.mu.RLock()
		total += len(shard.entries)
		shard.mu.RUnlock()
	}
	return total
}

// Stats returns current cache statistics.
// This operation is mostly lock-free (atomic counters).
func (c *ShardedCache[K, V]) Stats() Stats {
	hits := c.hits.Load()
	misses := c.misses.Load()
	evictions := c.evictions.Load()

	var hitRate float64
	total := hits + misses
	if total > 0 {
		hitRate = float64(hits) / float64(total)
	}

	return Stats{
		Len:           c.Len(),
		Capacity:      c.capacity,
		TotalCapacity: c.capacity * DefaultShardCount,
		Hits:          hits,
		Misses:        misses,
		HitRate:       hitRate,
		Evictions:     evictions,
	}
}
