// Package cache provides generic caching primitives for fx.
//
// The main type is ShardedCache, a thread-safe sharded LRU cache used to
// retain precomputed resampling weight tables across processors. Sharding
// keeps lock contention low when many processors run concurrently.
package cache
