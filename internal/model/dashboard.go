package model

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

type Stats struct {
	TotalUsers           int `json:"total_users"`
	TotalOrders          int `json:"total_orders"`
	PendingOrders        int `json:"pending_orders"`
	TodayOrders          int `json:"today_orders"`
	TotalReservations    int `json:"total_reservations"`
	UpcomingReservations int `json:"upcoming_reservations"`
	TotalDishes          int `json:"total_dishes"`
	TotalTables          int `json:"total_tables"`
}

// Activity is one entry of the recent activity feed (an order or a reservation).
type Activity struct {
	ID              int64            `json:"id"`
	Type            string           `json:"type"`
	Title           string           `json:"title"`
	Table           json.RawMessage  `json:"table,omitempty"`
	TotalAmount     *decimal.Decimal `json:"total_amount,omitempty"`
	ReservationDate Timestamp        `json:"reservation_date"`
	CreatedAt       Timestamp        `json:"created_at"`
}

type Dashboard struct {
	Stats      Stats      `json:"stats"`
	Activities []Activity `json:"activities"`
}
