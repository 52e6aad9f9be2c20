// Package reconcile keeps a screen's raw collection in step with remote
// mutations without refetching it after every change.
package reconcile

import (
	"slices"
	"sync"

	"github.com/jwalitptl/restaurant-admin/internal/model"
)

// Collection is a copy-on-write raw collection. Every change installs a new
// backing slice and bumps the version, so snapshots handed out earlier
// never observe later writes.
type Collection[T model.Record] struct {
	mu      sync.RWMutex
	items   []T
	version uint64
}

func NewCollection[T model.Record](items []T) *Collection[T] {
	c := &Collection[T]{}
	c.Replace(items)
	return c
}

// Replace installs a freshly fetched collection.
func (c *Collection[T]) Replace(items []T) {
	c.mu.Lock()
	c.items = slices.Clone(items)
	if c.items == nil {
		c.items = []T{}
	}
	c.version++
	c.mu.Unlock()
}

// Snapshot returns the current items and version. The slice must be
// treated as read-only.
func (c *Collection[T]) Snapshot() ([]T, uint64) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.items, c.version
}

func (c *Collection[T]) Version() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.version
}

func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Get returns the record with the given id.
func (c *Collection[T]) Get(id int64) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, it := range c.items {
		if it.RecordID() == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}

// Patch replaces the record with the given id by fn(record) at the same
// position. It reports false, leaving the collection unchanged, when no
// record has that id.
func (c *Collection[T]) Patch(id int64, fn func(T) T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	idx := slices.IndexFunc(c.items, func(it T) bool { return it.RecordID() == id })
	if idx < 0 {
		return false
	}
	next := slices.Clone(c.items)
	next[idx] = fn(next[idx])
	c.items = next
	c.version++
	return true
}

// Remove drops the record with the given id.
func (c *Collection[T]) Remove(id int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	idx := slices.IndexFunc(c.items, func(it T) bool { return it.RecordID() == id })
	if idx < 0 {
		return false
	}
	c.items = slices.Delete(slices.Clone(c.items), idx, idx+1)
	c.version++
	return true
}
