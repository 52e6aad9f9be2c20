package session

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/patrickmn/go-cache"

	"github.com/jwalitptl/restaurant-admin/internal/client"
	"github.com/jwalitptl/restaurant-admin/pkg/metrics"
)

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrExpired         = errors.New("token has expired")
)

type Config struct {
	// TTL bounds how long a session is cached; tokens that expire
	// sooner shorten it.
	TTL             time.Duration
	CleanupInterval time.Duration
}

type Store struct {
	client  *client.Client
	cache   *cache.Cache
	ttl     time.Duration
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewStore(c *client.Client, cfg Config, m *metrics.Metrics) *Store {
	if cfg.TTL <= 0 {
		cfg.TTL = 8 * time.Hour
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = time.Minute
	}
	s := &Store{
		client:  c,
		cache:   cache.New(cfg.TTL, cfg.CleanupInterval),
		ttl:     cfg.TTL,
		metrics: m,
		now:     time.Now,
	}
	s.cache.OnEvicted(func(_ string, v interface{}) {
		if sess, ok := v.(*Session); ok {
			_ = sess.Close()
			s.metrics.SessionClosed()
		}
	})
	return s
}

func key(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// Resolve returns the session for token, asking the API who the token
// belongs to on first use.
func (s *Store) Resolve(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}
	k := key(token)
	if v, ok := s.cache.Get(k); ok {
		return v.(*Session), nil
	}

	ttl, expires, err := s.lifetime(token)
	if err != nil {
		return nil, err
	}

	api := s.client.WithToken(token)
	acc, err := api.Me(ctx)
	if err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) && apiErr.Unauthorized() {
			return nil, ErrUnauthenticated
		}
		return nil, fmt.Errorf("failed to resolve session: %w", err)
	}

	sess := newSession(token, *acc, api, expires)
	if err := s.cache.Add(k, sess, ttl); err != nil {
		// another request created it first
		_ = sess.Close()
		if v, ok := s.cache.Get(k); ok {
			return v.(*Session), nil
		}
		return nil, fmt.Errorf("failed to store session: %w", err)
	}
	s.metrics.SessionOpened()
	return sess, nil
}

// lifetime reads the exp claim without verifying the signature; the API
// verifies tokens, this only bounds how long the session is cached.
// Opaque tokens get the configured TTL.
func (s *Store) lifetime(token string) (time.Duration, time.Time, error) {
	now := s.now()
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return s.ttl, now.Add(s.ttl), nil
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return s.ttl, now.Add(s.ttl), nil
	}
	left := exp.Sub(now)
	if left <= 0 {
		return 0, exp.Time, ErrExpired
	}
	if left > s.ttl {
		return s.ttl, now.Add(s.ttl), nil
	}
	return left, exp.Time, nil
}

// Drop ends the session for token, closing its screens.
func (s *Store) Drop(token string) {
	s.cache.Delete(key(token))
}

func (s *Store) Count() int {
	return s.cache.ItemCount()
}

// Close ends every session.
func (s *Store) Close() {
	for k := range s.cache.Items() {
		s.cache.Delete(k)
	}
}
