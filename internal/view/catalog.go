package view

import (
	"fmt"
	"slices"
	"sort"
)

// Catalog describes one entity's filters, text fields and sort keys.
// Adding an entity means adding a catalog; the engine does not change.
type Catalog[T any] struct {
	Name        string
	Filters     []Filter[T]
	Search      func(T) []string
	Sorts       map[SortKey]Comparator[T]
	DefaultSort SortState
}

// FilterKeys lists every FilterState key the catalog reads.
func (c *Catalog[T]) FilterKeys() []string {
	var keys []string
	for _, f := range c.Filters {
		keys = append(keys, f.Keys...)
	}
	return keys
}

// SortKeys lists the sort keys in a stable order.
func (c *Catalog[T]) SortKeys() []SortKey {
	keys := make([]SortKey, 0, len(c.Sorts))
	for k := range c.Sorts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// ResolveSort fills in defaults and checks the key exists.
func (c *Catalog[T]) ResolveSort(s SortState) (SortState, error) {
	if s.Key == "" {
		s.Key = c.DefaultSort.Key
		if s.Direction == "" {
			s.Direction = c.DefaultSort.Direction
		}
	}
	if _, ok := c.Sorts[s.Key]; !ok {
		return s, fmt.Errorf("%w: %q for %s", ErrUnknownSortKey, s.Key, c.Name)
	}
	dir, err := ParseDirection(string(s.Direction))
	if err != nil {
		return s, err
	}
	s.Direction = dir
	return s, nil
}

// Query is a compiled filter, search and sort state.
type Query[T any] struct {
	predicates []Predicate[T]
	search     func(T) []string
	term       string
	compare    Comparator[T]
	sort       SortState
}

// Compile validates the state against the catalog.
func (c *Catalog[T]) Compile(filters FilterState, term string, s SortState) (*Query[T], error) {
	q := &Query[T]{search: c.Search, term: NormalizeTerm(term)}
	for _, f := range c.Filters {
		p, err := f.Build(filters)
		if err != nil {
			return nil, err
		}
		if p != nil {
			q.predicates = append(q.predicates, p)
		}
	}
	resolved, err := c.ResolveSort(s)
	if err != nil {
		return nil, err
	}
	q.sort = resolved
	q.compare = c.Sorts[resolved.Key].direction(resolved.Direction)
	return q, nil
}

// Sort is the resolved sort state.
func (q *Query[T]) Sort() SortState { return q.sort }

// Match reports whether r satisfies every active predicate and the search term.
func (q *Query[T]) Match(r T) bool {
	for _, p := range q.predicates {
		if !p(r) {
			return false
		}
	}
	if q.term == "" || q.search == nil {
		return true
	}
	return matchesText(q.search(r), q.term)
}

// Apply filters then stable-sorts into a new slice; raw is not modified.
func (q *Query[T]) Apply(raw []T) []T {
	out := make([]T, 0, len(raw))
	for _, r := range raw {
		if q.Match(r) {
			out = append(out, r)
		}
	}
	slices.SortStableFunc(out, q.compare)
	return out
}

// Compute returns sort(filter(raw)) for the given state.
func Compute[T any](raw []T, c *Catalog[T], filters FilterState, term string, s SortState) ([]T, error) {
	q, err := c.Compile(filters, term, s)
	if err != nil {
		return nil, err
	}
	return q.Apply(raw), nil
}
