// Package screen holds the state of one list screen for one session: the
// raw collection, filter, search and sort state, and the rows with a
// mutation in flight. Views are derived on demand.
package screen

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/restaurant-admin/internal/debounce"
	"github.com/jwalitptl/restaurant-admin/internal/model"
	"github.com/jwalitptl/restaurant-admin/internal/reconcile"
	"github.com/jwalitptl/restaurant-admin/internal/view"
	"github.com/jwalitptl/restaurant-admin/pkg/metrics"
)

// ErrUnavailable is returned while the last fetch of the collection failed.
var ErrUnavailable = errors.New("collection could not be loaded")

// Loader fetches the raw collection.
type Loader[T model.Record] func(ctx context.Context) ([]T, error)

type Option func(*options)

type options struct {
	wait    time.Duration
	metrics *metrics.Metrics
}

// WithSearchWait overrides the search debounce window.
func WithSearchWait(d time.Duration) Option {
	return func(o *options) { o.wait = d }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// Row is one displayed record with its in-flight state.
type Row[T any] struct {
	Record        T       `json:"record"`
	Updating      bool    `json:"updating"`
	UpdatingItems []int64 `json:"updating_items,omitempty"`
}

// View is the displayed view plus the state it was derived from.
type View[T any] struct {
	Screen        string           `json:"screen"`
	Rows          []Row[T]         `json:"rows"`
	Total         int              `json:"total"`
	Displayed     int              `json:"displayed"`
	Filters       view.FilterState `json:"filters"`
	Search        string           `json:"search"`
	SearchApplied string           `json:"search_applied"`
	SearchPending bool             `json:"search_pending"`
	Sort          view.SortState   `json:"sort"`
	Version       uint64           `json:"version"`
	LoadedAt      time.Time        `json:"loaded_at"`
}

// State is the screen-local state without rows.
type State struct {
	Filters  view.FilterState `json:"filters"`
	Search   string           `json:"search"`
	Sort     view.SortState   `json:"sort"`
	Loaded   bool             `json:"loaded"`
	Error    string           `json:"error,omitempty"`
	LoadedAt time.Time        `json:"loaded_at"`
}

type Screen[T model.Record] struct {
	name    string
	engine  *view.Engine[T]
	load    Loader[T]
	coll    *reconcile.Collection[T]
	guard   *reconcile.Guard
	search  *debounce.Search
	metrics *metrics.Metrics

	// loading serializes fetches
	loading sync.Mutex

	mu       sync.Mutex
	filters  view.FilterState
	sort     view.SortState
	loaded   bool
	loadErr  error
	loadedAt time.Time
}

// New creates an unmounted screen. The collection is fetched on the first
// call to View or Refresh.
func New[T model.Record](name string, cat *view.Catalog[T], load Loader[T], opts ...Option) *Screen[T] {
	o := options{wait: debounce.Wait}
	for _, opt := range opts {
		opt(&o)
	}
	return &Screen[T]{
		name:    name,
		engine:  view.NewEngine(cat),
		load:    load,
		coll:    reconcile.NewCollection[T](nil),
		guard:   reconcile.NewGuard(),
		search:  debounce.New(debounce.WithWait(o.wait)),
		metrics: o.metrics,
		filters: view.FilterState{},
		sort:    cat.DefaultSort,
	}
}

func (s *Screen[T]) Name() string { return s.name }

func (s *Screen[T]) Catalog() *view.Catalog[T] { return s.engine.Catalog() }

// Refresh refetches the raw collection. On failure the previous
// collection is kept but the screen reports ErrUnavailable until a fetch
// succeeds.
func (s *Screen[T]) Refresh(ctx context.Context) error {
	s.loading.Lock()
	defer s.loading.Unlock()
	return s.refreshLocked(ctx)
}

func (s *Screen[T]) refreshLocked(ctx context.Context) error {
	items, err := s.load(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded = true
	if err != nil {
		s.loadErr = err
		log.Error().Err(err).Str("screen", s.name).Msg("Failed to load collection")
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	s.coll.Replace(items)
	s.loadErr = nil
	s.loadedAt = time.Now()
	return nil
}

// Ensure fetches the collection unless the screen is already mounted.
func (s *Screen[T]) Ensure(ctx context.Context) error {
	s.loading.Lock()
	defer s.loading.Unlock()
	s.mu.Lock()
	loaded := s.loaded
	s.mu.Unlock()
	if loaded {
		return nil
	}
	return s.refreshLocked(ctx)
}

// View derives the displayed view for the current state.
func (s *Screen[T]) View(ctx context.Context) (*View[T], error) {
	if err := s.Ensure(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.loadErr != nil {
		err := s.loadErr
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	filters := s.filters.Clone()
	sort := s.sort
	loadedAt := s.loadedAt
	s.mu.Unlock()

	raw, version := s.coll.Snapshot()
	applied := s.search.Value()
	derived, err := s.engine.Derive(version, raw, filters, applied, sort)
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveView(s.name, derived.Memoized, len(derived.Rows))

	rows := make([]Row[T], len(derived.Rows))
	for i, r := range derived.Rows {
		id := r.RecordID()
		rows[i] = Row[T]{
			Record:        r,
			Updating:      s.guard.State(reconcile.RowKey{ID: id}) == reconcile.Updating,
			UpdatingItems: s.guard.BusyItems(id),
		}
	}
	return &View[T]{
		Screen:        s.name,
		Rows:          rows,
		Total:         len(raw),
		Displayed:     len(rows),
		Filters:       filters,
		Search:        s.search.Raw(),
		SearchApplied: applied,
		SearchPending: s.search.Pending(),
		Sort:          derived.Sort,
		Version:       version,
		LoadedAt:      loadedAt,
	}, nil
}

// SetFilters replaces the filter state. Invalid values are rejected and
// the previous state kept.
func (s *Screen[T]) SetFilters(fs view.FilterState) error {
	fs = fs.Clone()
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.Catalog().Compile(fs, "", s.sort); err != nil {
		return err
	}
	s.filters = fs
	return nil
}

// SetSort replaces the sort state. An empty key restores the default.
func (s *Screen[T]) SetSort(st view.SortState) (view.SortState, error) {
	resolved, err := s.Catalog().ResolveSort(st)
	if err != nil {
		return s.currentSort(), err
	}
	s.mu.Lock()
	s.sort = resolved
	s.mu.Unlock()
	return resolved, nil
}

// ToggleSort flips the direction of the current sort key.
func (s *Screen[T]) ToggleSort() view.SortState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sort = s.sort.Toggle()
	return s.sort
}

func (s *Screen[T]) currentSort() view.SortState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sort
}

// Search records a raw search term. It takes effect on views once the
// debounce window has passed without another call.
func (s *Screen[T]) Search(raw string) {
	s.search.Set(raw)
}

// Mutate runs a row mutation against the screen collection.
func (s *Screen[T]) Mutate(ctx context.Context, m reconcile.Mutation[T]) error {
	return reconcile.Mutate(ctx, s.coll, s.guard, m)
}

// Reload is the Reload hook for mutations that refetch the collection.
func (s *Screen[T]) Reload(ctx context.Context) ([]T, error) {
	items, err := s.load(ctx)
	if err == nil {
		s.mu.Lock()
		s.loadErr = nil
		s.loadedAt = time.Now()
		s.mu.Unlock()
	}
	return items, err
}

// Get returns a record of the raw collection.
func (s *Screen[T]) Get(id int64) (T, bool) { return s.coll.Get(id) }

func (s *Screen[T]) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := State{
		Filters:  s.filters.Clone(),
		Search:   s.search.Raw(),
		Sort:     s.sort,
		Loaded:   s.loaded,
		LoadedAt: s.loadedAt,
	}
	if s.loadErr != nil {
		st.Error = s.loadErr.Error()
	}
	return st
}

// Close unmounts the screen: pending search publication is cancelled and
// nothing is kept.
func (s *Screen[T]) Close() error {
	s.search.Close()
	s.guard.Reset()
	s.engine.Reset()
	return nil
}

// Create runs a mutation that adds a record and refetches on success.
func (s *Screen[T]) Create(ctx context.Context, m reconcile.Mutation[T]) error {
	if m.Reload == nil {
		m.Reload = s.Reload
	}
	return reconcile.Insert(ctx, s.coll, m)
}
