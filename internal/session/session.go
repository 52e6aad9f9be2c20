// Package session maps bearer tokens to signed-in console users and owns
// the screen state opened under each of them.
package session

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/restaurant-admin/internal/client"
	"github.com/jwalitptl/restaurant-admin/internal/model"
)

var ErrClosed = errors.New("session is closed")

type Session struct {
	Token     string
	Account   model.Account
	API       *client.API
	ExpiresAt time.Time

	mu       sync.Mutex
	attached map[string]io.Closer
	closed   bool
}

func newSession(token string, acc model.Account, api *client.API, expires time.Time) *Session {
	return &Session{
		Token:     token,
		Account:   acc,
		API:       api,
		ExpiresAt: expires,
		attached:  make(map[string]io.Closer),
	}
}

func (s *Session) RoleID() int64 { return s.Account.RoleID }

// Attach returns the value stored under key, creating it on first use.
// Attached values are closed with the session.
func (s *Session) Attach(key string, create func() io.Closer) (io.Closer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}
	if v, ok := s.attached[key]; ok {
		return v, nil
	}
	v := create()
	s.attached[key] = v
	return v, nil
}

// Detach closes and forgets the value under key.
func (s *Session) Detach(key string) bool {
	s.mu.Lock()
	v, ok := s.attached[key]
	delete(s.attached, key)
	s.mu.Unlock()
	if ok {
		closeQuietly(key, v)
	}
	return ok
}

// Close releases everything attached. It is idempotent.
func (s *Session) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	attached := s.attached
	s.attached = nil
	s.mu.Unlock()

	for key, v := range attached {
		closeQuietly(key, v)
	}
	return nil
}

func closeQuietly(key string, c io.Closer) {
	if err := c.Close(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Failed to close session state")
	}
}

type contextKey struct{}

// NewContext returns a copy of ctx carrying s.
func NewContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the session stored by NewContext.
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(contextKey{}).(*Session)
	return s, ok
}
