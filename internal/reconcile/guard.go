package reconcile

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

var ErrRowBusy = errors.New("row is updating")

// RowState is the per-row mutation state.
type RowState int

const (
	Idle RowState = iota
	Updating
)

func (s RowState) String() string {
	if s == Updating {
		return "updating"
	}
	return "idle"
}

// RowKey identifies a mutable row. ItemID is zero for record-level
// mutations and set for nested item mutations.
type RowKey struct {
	ID     int64
	ItemID int64
}

func (k RowKey) String() string {
	if k.ItemID == 0 {
		return fmt.Sprintf("%d", k.ID)
	}
	return fmt.Sprintf("%d/%d", k.ID, k.ItemID)
}

// Guard is the set of rows with a mutation in flight.
type Guard struct {
	mu   sync.Mutex
	busy map[RowKey]struct{}
}

func NewGuard() *Guard {
	return &Guard{busy: make(map[RowKey]struct{})}
}

// Acquire moves key to Updating. The returned release moves it back to
// Idle and is safe to call more than once.
func (g *Guard) Acquire(key RowKey) (release func(), err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.busy[key]; ok {
		return nil, fmt.Errorf("%w: %s", ErrRowBusy, key)
	}
	g.busy[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.busy, key)
			g.mu.Unlock()
		})
	}, nil
}

func (g *Guard) State(key RowKey) RowState {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.busy[key]; ok {
		return Updating
	}
	return Idle
}

// Busy reports whether the record, or any of its items, is updating.
func (g *Guard) Busy(id int64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	for k := range g.busy {
		if k.ID == id {
			return true
		}
	}
	return false
}

// BusyItems lists the item ids of record id that are updating.
func (g *Guard) BusyItems(id int64) []int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	var items []int64
	for k := range g.busy {
		if k.ID == id && k.ItemID != 0 {
			items = append(items, k.ItemID)
		}
	}
	slices.Sort(items)
	return items
}

// Reset clears every in-flight marker.
func (g *Guard) Reset() {
	g.mu.Lock()
	clear(g.busy)
	g.mu.Unlock()
}
