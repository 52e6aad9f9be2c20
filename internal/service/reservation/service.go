package reservation

import (
	"context"
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

const entity = "reservation"

type Screen = screen.Screen[model.Reservation]

type ReservationServicer interface {
	Loader(api *client.API) screen.Loader[model.Reservation]
	UpdateStatus(ctx context.Context, api *client.API, scr *Screen, id int64, status string) error
}

type Service struct {
	auditor *audit.Service
}

func NewService(auditor *audit.Service) *Service {
	return &Service{auditor: auditor}
}

func (s *Service) Loader(api *client.API) screen.Loader[model.Reservation] {
	return api.Reservations
}

// UpdateStatus changes the reservation status and patches the cached row.
func (s *Service) UpdateStatus(ctx context.Context, api *client.API, scr *Screen, id int64, status string) error {
	if !slices.Contains(model.ReservationStatuses, status) {
		ve := &validator.ValidationError{}
		ve.Add("status", "must be one of "+strings.Join(model.ReservationStatuses, ", "))
		return ve
	}

	before, _ := scr.Get(id)
	err := scr.Mutate(ctx, reconcile.Mutation[model.Reservation]{
		Key:  reconcile.RowKey{ID: id},
		Call: func(ctx context.Context) error { return api.UpdateReservationStatus(ctx, id, status) },
		Apply: func(r model.Reservation) model.Reservation {
			r = r.Clone()
			r.Status = status
			return r
		},
		Fallback: "Failed to update reservation status",
	})
	after, _ := scr.Get(id)
	s.auditor.Log(ctx, entity, "status", id, err, &audit.LogOptions{
		Changes: event.Changes(before, after, "status"),
	})
	return err
}
