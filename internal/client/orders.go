package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"

	"github.com/jwalitptl/restaurant-admin/internal/model"
)

func (a *API) Orders(ctx context.Context) ([]model.Order, error) {
	body, err := a.get(ctx, "/cashier/orders")
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return decodeList(body, "orders", normalizeOrder)
}

// normalizeOrder fills fields the API sometimes sends under other names.
func normalizeOrder(raw gjson.Result, o *model.Order) {
	if len(o.Items) == 0 {
		if items := raw.Get("order_items"); items.IsArray() {
			_ = json.Unmarshal([]byte(items.Raw), &o.Items)
		}
	}
	if o.Items == nil {
		o.Items = []model.OrderItem{}
	}
	if o.TableName == "" {
		o.TableName = raw.Get("table.name").String()
	}
	if o.CustomerName == "" {
		o.CustomerName = raw.Get("user.name").String()
	}
}

func (a *API) UpdateOrderStatus(ctx context.Context, id int64, status string) error {
	path := fmt.Sprintf("/cashier/orders/%d/status", id)
	if err := a.send(ctx, http.MethodPut, path, model.StatusInput{Status: status}); err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	return nil
}

func (a *API) UpdateOrderItemStatus(ctx context.Context, orderID, itemID int64, status string) error {
	path := fmt.Sprintf("/cashier/orders/%d/items/%d/status", orderID, itemID)
	if err := a.send(ctx, http.MethodPut, path, model.StatusInput{Status: status}); err != nil {
		return fmt.Errorf("failed to update order item status: %w", err)
	}
	return nil
}

func (a *API) MarkDelivered(ctx context.Context, id int64) error {
	if err := a.send(ctx, http.MethodPut, fmt.Sprintf("/cashier/orders/%d/delivered", id), nil); err != nil {
		return fmt.Errorf("failed to mark order delivered: %w", err)
	}
	return nil
}

func (a *API) CancelOrder(ctx context.Context, id int64) error {
	if err := a.send(ctx, http.MethodPut, fmt.Sprintf("/cashier/orders/%d/cancel", id), nil); err != nil {
		return fmt.Errorf("failed to cancel order: %w", err)
	}
	return nil
}
