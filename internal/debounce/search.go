// Package debounce turns a rapidly changing search input into a trailing
// value that only moves once the input has been quiet for a fixed window.
package debounce

import (
	"strings"
	"sync"
	"time"

	trailing "github.com/romdo/go-debounce"
)

// Wait is the quiescence window used by every screen.
const Wait = 300 * time.Millisecond

type Option func(*Search)

// WithWait overrides the quiescence window.
func WithWait(d time.Duration) Option {
	return func(s *Search) { s.wait = d }
}

// OnChange registers a callback run with the new debounced value.
// It runs on the timer goroutine.
func OnChange(fn func(string)) Option {
	return func(s *Search) { s.onChange = fn }
}

// Search holds the raw term as typed and its debounced, normalized value.
type Search struct {
	wait     time.Duration
	onChange func(string)

	mu        sync.Mutex
	raw       string
	debounced string
	changedAt time.Time
	closed    bool

	schedule func()
	cancel   func()
}

func New(opts ...Option) *Search {
	s := &Search{wait: Wait}
	for _, opt := range opts {
		opt(s)
	}
	s.schedule, s.cancel = trailing.New(s.wait, s.publish)
	return s
}

// Set records the raw term and reschedules publication. A pending
// publication from an earlier Set is superseded.
func (s *Search) Set(raw string) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.raw = raw
	s.changedAt = time.Now()
	s.mu.Unlock()
	s.schedule()
}

func (s *Search) publish() {
	s.mu.Lock()
	if s.closed || time.Since(s.changedAt) < s.wait {
		s.mu.Unlock()
		return
	}
	next := strings.ToLower(strings.TrimSpace(s.raw))
	changed := next != s.debounced
	s.debounced = next
	fn := s.onChange
	s.mu.Unlock()

	if changed && fn != nil {
		fn(next)
	}
}

func (s *Search) Raw() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.raw
}

// Value is the last published term.
func (s *Search) Value() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.debounced
}

// Pending reports whether the raw term has not been published yet.
func (s *Search) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return strings.ToLower(strings.TrimSpace(s.raw)) != s.debounced
}

// Close cancels any pending publication. Later calls to Set are ignored.
func (s *Search) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.cancel()
}
