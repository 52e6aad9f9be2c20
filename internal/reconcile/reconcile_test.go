package reconcile

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/restaurant-admin/internal/model"
)

type serverErr struct{ msg string }

func (e serverErr) Error() string       { return "remote: " + e.msg }
func (e serverErr) UserMessage() string { return e.msg }

func orders() []model.Order {
	return []model.Order{
		{ID: 3, Status: model.OrderPending, Items: []model.OrderItem{{ID: 30, Status: "pending"}}},
		{ID: 5, Status: model.OrderPending, Items: []model.OrderItem{{ID: 50, Status: "pending"}, {ID: 51, Status: "pending"}}},
		{ID: 8, Status: model.OrderReady},
	}
}

func setStatus(status string) func(model.Order) model.Order {
	return func(o model.Order) model.Order {
		o = o.Clone()
		o.Status = status
		return o
	}
}

func TestSuccessfulMutationPatchesOnlyTarget(t *testing.T) {
	c := NewCollection(orders())
	before, v0 := c.Snapshot()

	err := Mutate(context.Background(), c, NewGuard(), Mutation[model.Order]{
		Key:   RowKey{ID: 5},
		Call:  func(context.Context) error { return nil },
		Apply: setStatus(model.OrderPreparing),
	})
	require.NoError(t, err)

	after, v1 := c.Snapshot()
	assert.Greater(t, v1, v0)
	require.Len(t, after, 3)
	assert.Equal(t, []int64{3, 5, 8}, []int64{after[0].ID, after[1].ID, after[2].ID}, "position is kept")
	assert.Equal(t, model.OrderPreparing, after[1].Status)
	assert.Equal(t, model.OrderPending, before[1].Status, "earlier snapshots are untouched")
	assert.Equal(t, before[0], after[0])
	assert.Equal(t, before[2], after[2])
	assert.Equal(t, before[1].Items, after[1].Items)
	assert.NotSame(t, &before[1].Items[0], &after[1].Items[0])
}

func TestFailedMutationLeavesStateUntouched(t *testing.T) {
	c := NewCollection(orders())
	before, v0 := c.Snapshot()
	g := NewGuard()

	err := Mutate(context.Background(), c, g, Mutation[model.Order]{
		Key:      RowKey{ID: 5},
		Call:     func(context.Context) error { return serverErr{"Order already delivered"} },
		Apply:    setStatus(model.OrderCancelled),
		Fallback: "Failed to update order status",
	})

	var merr *MutationError
	require.ErrorAs(t, err, &merr)
	assert.Equal(t, "Order already delivered", merr.Message)

	after, v1 := c.Snapshot()
	assert.Equal(t, v0, v1)
	assert.Equal(t, before, after)
	assert.Equal(t, Idle, g.State(RowKey{ID: 5}), "row returns to idle")
}

func TestFallbackMessage(t *testing.T) {
	c := NewCollection(orders())
	err := Mutate(context.Background(), c, NewGuard(), Mutation[model.Order]{
		Key:      RowKey{ID: 3},
		Call:     func(context.Context) error { return errors.New("connection reset") },
		Fallback: "Failed to update order status",
	})
	var merr *MutationError
	require.ErrorAs(t, err, &merr)
	assert.Equal(t, "Failed to update order status", merr.Message)
}

func TestInFlightGuardIsPerRow(t *testing.T) {
	c := NewCollection([]model.Order{{ID: 7}, {ID: 9}})
	g := NewGuard()
	started := make(chan struct{})
	finish := make(chan struct{})
	done := make(chan error, 1)

	go func() {
		done <- Mutate(context.Background(), c, g, Mutation[model.Order]{
			Key: RowKey{ID: 7},
			Call: func(context.Context) error {
				close(started)
				<-finish
				return nil
			},
			Apply: setStatus(model.OrderReady),
		})
	}()
	<-started

	assert.Equal(t, Updating, g.State(RowKey{ID: 7}))
	assert.True(t, g.Busy(7))

	err := Mutate(context.Background(), c, g, Mutation[model.Order]{
		Key:  RowKey{ID: 7},
		Call: func(context.Context) error {
			t.Error("second call on a busy row must not reach the server")
			return nil
		},
	})
	assert.ErrorIs(t, err, ErrRowBusy)

	err = Mutate(context.Background(), c, g, Mutation[model.Order]{
		Key:   RowKey{ID: 9},
		Call:  func(context.Context) error { return nil },
		Apply: setStatus(model.OrderReady),
	})
	require.NoError(t, err)

	close(finish)
	require.NoError(t, <-done)
	assert.Equal(t, Idle, g.State(RowKey{ID: 7}))

	o7, _ := c.Get(7)
	o9, _ := c.Get(9)
	assert.Equal(t, model.OrderReady, o7.Status)
	assert.Equal(t, model.OrderReady, o9.Status)
}

func TestItemKeysAreIndependent(t *testing.T) {
	g := NewGuard()
	release, err := g.Acquire(RowKey{ID: 5, ItemID: 50})
	require.NoError(t, err)

	_, err = g.Acquire(RowKey{ID: 5, ItemID: 51})
	assert.NoError(t, err)
	_, err = g.Acquire(RowKey{ID: 5, ItemID: 50})
	assert.ErrorIs(t, err, ErrRowBusy)

	release()
	release()
	assert.Equal(t, Idle, g.State(RowKey{ID: 5, ItemID: 50}))
}

func TestReloadReplacesCollection(t *testing.T) {
	c := NewCollection(orders())
	err := Mutate(context.Background(), c, NewGuard(), Mutation[model.Order]{
		Key:  RowKey{ID: 8},
		Call: func(context.Context) error { return nil },
		Reload: func(context.Context) ([]model.Order, error) {
			return []model.Order{{ID: 3}}, nil
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())

	err = Mutate(context.Background(), c, NewGuard(), Mutation[model.Order]{
		Key:    RowKey{ID: 3},
		Call:   func(context.Context) error { return nil },
		Reload: func(context.Context) ([]model.Order, error) { return nil, errors.New("timeout") },
	})
	assert.ErrorIs(t, err, ErrStale)
	assert.Equal(t, 1, c.Len())
}

func TestPatchAndRemoveMissingID(t *testing.T) {
	c := NewCollection(orders())
	v := c.Version()
	assert.False(t, c.Patch(99, setStatus("x")))
	assert.False(t, c.Remove(99))
	assert.Equal(t, v, c.Version())

	assert.True(t, c.Remove(5))
	assert.Equal(t, 2, c.Len())
}

func TestBusyItems(t *testing.T) {
	g := NewGuard()
	_, _ = g.Acquire(RowKey{ID: 5, ItemID: 51})
	_, _ = g.Acquire(RowKey{ID: 5, ItemID: 50})
	_, _ = g.Acquire(RowKey{ID: 6})

	assert.Equal(t, []int64{50, 51}, g.BusyItems(5))
	assert.Empty(t, g.BusyItems(6))
	assert.True(t, g.Busy(5))

	g.Reset()
	assert.False(t, g.Busy(6))
}

func TestInsertReloadsOnSuccess(t *testing.T) {
	c := NewCollection(orders())
	err := Insert(context.Background(), c, Mutation[model.Order]{
		Call: func(context.Context) error { return nil },
		Reload: func(context.Context) ([]model.Order, error) {
			return append(orders(), model.Order{ID: 12}), nil
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 4, c.Len())

	err = Insert(context.Background(), c, Mutation[model.Order]{
		Call:     func(context.Context) error { return errors.New("boom") },
		Reload:   func(context.Context) ([]model.Order, error) { return nil, nil },
		Fallback: "Failed to create order",
	})
	var me *MutationError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, "Failed to create order", me.Message)
	assert.Equal(t, 4, c.Len())
}
