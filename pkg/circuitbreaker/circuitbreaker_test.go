package circuitbreaker

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var errBoom = errors.New("boom")

func TestOpensAfterConsecutiveFailures(t *testing.T) {
	cb := NewCircuitBreaker(Settings{Name: "api", MaxFailures: 2, Timeout: time.Hour})

	assert.ErrorIs(t, cb.Execute(func() error { return errBoom }), errBoom)
	assert.Equal(t, StateClosed, cb.State())
	assert.ErrorIs(t, cb.Execute(func() error { return errBoom }), errBoom)
	assert.Equal(t, StateOpen, cb.State())

	called := false
	err := cb.Execute(func() error { called = true; return nil })
	assert.ErrorIs(t, err, ErrOpen)
	assert.False(t, called)
}

func TestHalfOpenProbe(t *testing.T) {
	cb := NewCircuitBreaker(Settings{Name: "api", MaxFailures: 1, Timeout: 10 * time.Millisecond})
	_ = cb.Execute(func() error { return errBoom })
	assert.Equal(t, StateOpen, cb.State())

	time.Sleep(20 * time.Millisecond)
	assert.NoError(t, cb.Execute(func() error { return nil }))
	assert.Equal(t, StateClosed, cb.State())
}

func TestIgnoredErrorsDoNotTrip(t *testing.T) {
	errClient := errors.New("bad request")
	cb := NewCircuitBreaker(Settings{
		Name:        "api",
		MaxFailures: 1,
		IsFailure:   func(err error) bool { return !errors.Is(err, errClient) },
	})

	assert.ErrorIs(t, cb.Execute(func() error { return errClient }), errClient)
	assert.Equal(t, StateClosed, cb.State())
}
