package reconcile

import (
	"context"
	"errors"
	"fmt"

	"github.com/jwalitptl/restaurant-admin/internal/model"
)

// ErrStale is returned when a mutation succeeded but the collection could
// not be reloaded afterwards.
var ErrStale = errors.New("collection reload failed after mutation")

// MutationError reports a failed remote mutation. Message is what the
// user sees.
type MutationError struct {
	Key     RowKey
	Message string
	Err     error
}

func (e *MutationError) Error() string {
	return fmt.Sprintf("mutation on row %s failed: %s", e.Key, e.Message)
}

func (e *MutationError) Unwrap() error { return e.Err }

// Messenger is implemented by errors that carry a user-facing message.
type Messenger interface {
	UserMessage() string
}

// Mutation describes one remote change to one row. Set Apply to patch the
// row in place after success, or Reload to refetch the whole collection.
type Mutation[T model.Record] struct {
	Key      RowKey
	Call     func(ctx context.Context) error
	Apply    func(T) T
	Reload   func(ctx context.Context) ([]T, error)
	Fallback string
}

// Mutate runs m against c, holding the row in g for the duration of the
// remote call. Local state changes only after the call succeeds.
func Mutate[T model.Record](ctx context.Context, c *Collection[T], g *Guard, m Mutation[T]) error {
	release, err := g.Acquire(m.Key)
	if err != nil {
		return err
	}
	defer release()

	if err := m.Call(ctx); err != nil {
		return &MutationError{Key: m.Key, Message: userMessage(err, m.Fallback), Err: err}
	}
	switch {
	case m.Apply != nil:
		c.Patch(m.Key.ID, m.Apply)
	case m.Reload != nil:
		items, err := m.Reload(ctx)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrStale, err)
		}
		c.Replace(items)
	}
	return nil
}

func userMessage(err error, fallback string) string {
	var m Messenger
	if errors.As(err, &m) && m.UserMessage() != "" {
		return m.UserMessage()
	}
	if fallback != "" {
		return fallback
	}
	return "Operation failed"
}

// Insert runs a mutation that creates a record. There is no row to hold,
// so Key is only used for error reporting; on success the collection is
// reloaded.
func Insert[T model.Record](ctx context.Context, c *Collection[T], m Mutation[T]) error {
	if err := m.Call(ctx); err != nil {
		return &MutationError{Key: m.Key, Message: userMessage(err, m.Fallback), Err: err}
	}
	if m.Reload == nil {
		return nil
	}
	items, err := m.Reload(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStale, err)
	}
	c.Replace(items)
	return nil
}
