package model

import (
	"fmt"
	"slices"

	"github.com/shopspring/decimal"
)

// Order statuses accepted by the cashier endpoints.
const (
	OrderPending        = "pending"
	OrderReady          = "ready"
	OrderReceived       = "received"
	OrderPreparing      = "preparing"
	OrderWithCourier    = "with_courier"
	OrderOutForDelivery = "out_for_delivery"
	OrderDelivered      = "delivered"
	OrderDeliveryFailed = "delivery_failed"
	OrderCancelled      = "cancelled"
)

// OrderStatuses lists every order status in workflow order.
var OrderStatuses = []string{
	OrderPending, OrderReady, OrderReceived, OrderPreparing, OrderWithCourier,
	OrderOutForDelivery, OrderDelivered, OrderDeliveryFailed, OrderCancelled,
}

// Order item statuses.
const (
	ItemPending   = "pending"
	ItemPreparing = "preparing"
	ItemReady     = "ready"
	ItemServed    = "served"
)

var ItemStatuses = []string{ItemPending, ItemPreparing, ItemReady, ItemServed}

type OrderItem struct {
	ID       int64            `json:"id"`
	Name     string           `json:"name,omitempty"`
	DishName string           `json:"dish_name,omitempty"`
	Quantity int              `json:"quantity,omitempty"`
	Price    *decimal.Decimal `json:"price,omitempty"`
	Status   string           `json:"status,omitempty"`
}

type Order struct {
	ID           int64            `json:"id"`
	TableID      *int64           `json:"table_id,omitempty"`
	TableName    string           `json:"table_name,omitempty"`
	UserID       *int64           `json:"user_id,omitempty"`
	CustomerName string           `json:"customer_name,omitempty"`
	Status       string           `json:"status"`
	TotalAmount  *decimal.Decimal `json:"total_amount,omitempty"`
	Items        []OrderItem      `json:"items"`
	Note         string           `json:"note,omitempty"`
	CreatedAt    Timestamp        `json:"created_at"`
	UpdatedAt    Timestamp        `json:"updated_at"`
}

func (o Order) RecordID() int64 { return o.ID }

// Clone returns a copy that shares no mutable state with o.
func (o Order) Clone() Order {
	o.Items = slices.Clone(o.Items)
	if o.TableID != nil {
		v := *o.TableID
		o.TableID = &v
	}
	if o.UserID != nil {
		v := *o.UserID
		o.UserID = &v
	}
	if o.TotalAmount != nil {
		v := *o.TotalAmount
		o.TotalAmount = &v
	}
	return o
}

// TableLabel is the table name, falling back to "Table <id>".
func (o Order) TableLabel() string {
	if o.TableName != "" {
		return o.TableName
	}
	if o.TableID != nil {
		return fmt.Sprintf("Table %d", *o.TableID)
	}
	return ""
}

// Total reports the order total when the API provided one.
func (o Order) Total() (float64, bool) {
	if o.TotalAmount == nil {
		return 0, false
	}
	return o.TotalAmount.InexactFloat64(), true
}

// StatusInput carries a single status transition.
type StatusInput struct {
	Status string `json:"status" validate:"required"`
}
