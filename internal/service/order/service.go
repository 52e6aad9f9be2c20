package order

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/jwalitptl/restaurant-admin/internal/client"
	"github.com/jwalitptl/restaurant-admin/internal/model"
	"github.com/jwalitptl/restaurant-admin/internal/reconcile"
	"github.com/jwalitptl/restaurant-admin/internal/screen"
	"github.com/jwalitptl/restaurant-admin/internal/service/audit"
	"github.com/jwalitptl/restaurant-admin/pkg/event"
	"github.com/jwalitptl/restaurant-admin/pkg/validator"
)

const entity = "order"

type Screen = screen.Screen[model.Order]

type OrderServicer interface {
	Loader(api *client.API) screen.Loader[model.Order]
	UpdateStatus(ctx context.Context, api *client.API, scr *Screen, id int64, status string) error
	UpdateItemStatus(ctx context.Context, api *client.API, scr *Screen, id, itemID int64, status string) error
	MarkDelivered(ctx context.Context, api *client.API, scr *Screen, id int64) error
	Cancel(ctx context.Context, api *client.API, scr *Screen, id int64) error
}

// Order mutations only change status fields, so successful calls patch
// the cached order instead of refetching the list.
type Service struct {
	auditor *audit.Service
}

func NewService(auditor *audit.Service) *Service {
	return &Service{auditor: auditor}
}

func (s *Service) Loader(api *client.API) screen.Loader[model.Order] {
	return api.Orders
}

func checkStatus(status string, allowed []string) error {
	if slices.Contains(allowed, status) {
		return nil
	}
	ve := &validator.ValidationError{}
	ve.Add("status", "must be one of "+strings.Join(allowed, ", "))
	return ve
}

func withStatus(status string) func(model.Order) model.Order {
	return func(o model.Order) model.Order {
		o = o.Clone()
		o.Status = status
		return o
	}
}

func (s *Service) UpdateStatus(ctx context.Context, api *client.API, scr *Screen, id int64, status string) error {
	if err := checkStatus(status, model.OrderStatuses); err != nil {
		return err
	}
	return s.setStatus(ctx, scr, id, "status", status, "Failed to update order status", func(ctx context.Context) error {
		return api.UpdateOrderStatus(ctx, id, status)
	})
}

func (s *Service) MarkDelivered(ctx context.Context, api *client.API, scr *Screen, id int64) error {
	return s.setStatus(ctx, scr, id, "delivered", model.OrderDelivered, "Failed to mark order as delivered", func(ctx context.Context) error {
		return api.MarkDelivered(ctx, id)
	})
}

func (s *Service) Cancel(ctx context.Context, api *client.API, scr *Screen, id int64) error {
	return s.setStatus(ctx, scr, id, "cancel", model.OrderCancelled, "Failed to cancel order", func(ctx context.Context) error {
		return api.CancelOrder(ctx, id)
	})
}

func (s *Service) setStatus(ctx context.Context, scr *Screen, id int64, action, status, fallback string, call func(context.Context) error) error {
	before, _ := scr.Get(id)
	err := scr.Mutate(ctx, reconcile.Mutation[model.Order]{
		Key:      reconcile.RowKey{ID: id},
		Call:     call,
		Apply:    withStatus(status),
		Fallback: fallback,
	})
	after, _ := scr.Get(id)
	s.auditor.Log(ctx, entity, action, id, err, &audit.LogOptions{
		Changes: event.Changes(before, after, "status"),
	})
	return err
}

func (s *Service) UpdateItemStatus(ctx context.Context, api *client.API, scr *Screen, id, itemID int64, status string) error {
	if err := checkStatus(status, model.ItemStatuses); err != nil {
		return err
	}
	o, ok := scr.Get(id)
	if !ok || !slices.ContainsFunc(o.Items, func(it model.OrderItem) bool { return it.ID == itemID }) {
		return fmt.Errorf("%w: item %d of order %d", ErrNotFound, itemID, id)
	}

	err := scr.Mutate(ctx, reconcile.Mutation[model.Order]{
		Key:  reconcile.RowKey{ID: id, ItemID: itemID},
		Call: func(ctx context.Context) error { return api.UpdateOrderItemStatus(ctx, id, itemID, status) },
		Apply: func(o model.Order) model.Order {
			o = o.Clone()
			for i := range o.Items {
				if o.Items[i].ID == itemID {
					o.Items[i].Status = status
				}
			}
			return o
		},
		Fallback: "Failed to update item status",
	})
	s.auditor.Log(ctx, entity, "item_status", id, err, &audit.LogOptions{
		ItemID:  itemID,
		Changes: map[string]interface{}{"status": status},
	})
	return err
}
