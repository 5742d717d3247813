package cache

// lruNode is an element of the recency ring. It carries the cache key so
// eviction can delete the map entry in O(1).
type lruNode[K comparable] struct {
	key  K
	prev *lruNode[K]
	next *lruNode[K]
}

// lruList tracks entry recency as a circular doubly-linked list around a
// sentinel node: sentinel.next is the most recently used entry,
// sentinel.prev the least. Not safe for concurrent use; the owning shard
// serializes access.
type lruList[K comparable] struct {
	sentinel lruNode[K]
	len      int
}

func newLRUList[K comparable]() *lruList[K] {
	l := &lruList[K]{}
	l.sentinel.prev = &l.sentinel
	l.sentinel.next = &l.sentinel
	return l
}

// Len returns the number of entries in the list.
func (l *lruList[K]) Len() int { return l.len }

// insertFront links node right after the sentinel.
func (l *lruList[K]) insertFront(node *lruNode[K]) {
	node.prev = &l.sentinel
	node.next = l.sentinel.next
	node.prev.next = node
	node.next.prev = node
}

// PushFront records key as the most recently used entry and returns its node.
func (l *lruList[K]) PushFront(key K) *lruNode[K] {
	node := &lruNode[K]{key: key}
	l.insertFront(node)
	l.len++
	return node
}

// MoveToFront marks an existing node as most recently used.
func (l *lruList[K]) MoveToFront(node *lruNode[K]) {
	if node == nil || l.sentinel.next == node {
		return
	}
	node.prev.next = node.next
	node.next.prev = node.prev
	l.insertFront(node)
}

// Remove unlinks a node from the list.
func (l *lruList[K]) Remove(node *lruNode[K]) {
	if node == nil || node.next == nil {
		return
	}
	node.prev.next = node.next
	node.next.prev = node.prev
	node.prev, node.next = nil, nil
	l.len--
}

// RemoveOldest unlinks the least recently used entry and returns its key.
// Returns false if the list is empty.
func (l *lruList[K]) RemoveOldest() (K, bool) {
	if l.len == 0 {
		var zero K
		return zero, false
	}
	oldest := l.sentinel.prev
	l.Remove(oldest)
	return oldest.key, true
}

// Clear drops all entries.
func (l *lruList[K]) Clear() {
	l.sentinel.prev = &l.sentinel
	l.sentinel.next = &l.sentinel
	l.len = 0
}
