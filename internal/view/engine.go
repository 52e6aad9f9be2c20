package view

import (
	"slices"
	"sync"
)

// Engine memoizes the derived view of one catalog. The cache holds a
// single entry keyed by the raw collection version and the view state;
// any change to either recomputes.
type Engine[T any] struct {
	catalog *Catalog[T]

	mu    sync.Mutex
	key   memoKey
	cache []T
	valid bool
	hits  int
}

type memoKey struct {
	version uint64
	filters string
	term    string
	sort    SortState
}

func NewEngine[T any](c *Catalog[T]) *Engine[T] {
	return &Engine[T]{catalog: c}
}

func (e *Engine[T]) Catalog() *Catalog[T] { return e.catalog }

// Derived is one computed view.
type Derived[T any] struct {
	Rows     []T
	Sort     SortState
	Memoized bool
}

// Derive returns sort(filter(raw)) for the state. version must change
// whenever raw changes. The returned rows are owned by the caller.
func (e *Engine[T]) Derive(version uint64, raw []T, filters FilterState, term string, s SortState) (Derived[T], error) {
	q, err := e.catalog.Compile(filters, term, s)
	if err != nil {
		return Derived[T]{}, err
	}
	key := memoKey{
		version: version,
		filters: filters.canonical(),
		term:    NormalizeTerm(term),
		sort:    q.Sort(),
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.valid && e.key == key {
		e.hits++
		return Derived[T]{Rows: slices.Clone(e.cache), Sort: key.sort, Memoized: true}, nil
	}
	out := q.Apply(raw)
	e.key, e.cache, e.valid = key, out, true
	return Derived[T]{Rows: slices.Clone(out), Sort: key.sort}, nil
}

// Hits is the number of memoized results served.
func (e *Engine[T]) Hits() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.hits
}

// Reset drops the memoized result.
func (e *Engine[T]) Reset() {
	e.mu.Lock()
	e.cache, e.valid = nil, false
	e.mu.Unlock()
}
