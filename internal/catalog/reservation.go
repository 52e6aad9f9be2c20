package catalog

import (
	"time"

	"github.com/jwalitptl/restaurant-admin/internal/model"
	"github.com/jwalitptl/restaurant-admin/internal/view"
)

const SortGuests view.SortKey = "guests"

func Reservations(loc *time.Location) *view.Catalog[model.Reservation] {
	start := func(r model.Reservation) (time.Time, bool) { return r.StartDate.In(loc) }
	end := func(r model.Reservation) (time.Time, bool) { return r.EndDate.In(loc) }
	guests := func(r model.Reservation) float64 { return float64(r.NumberOfGuests) }

	return &view.Catalog[model.Reservation]{
		Name: "reservations",
		Filters: []view.Filter[model.Reservation]{
			view.Equal("status", func(r model.Reservation) string { return r.Status }),
			view.Range("guests", "min_guests", "max_guests", guests),
			view.DateRange("start", "start_from", "start_to", loc, start),
			view.DateRange("end", "end_from", "end_to", loc, end),
		},
		Search: func(r model.Reservation) []string {
			g := r.Guest()
			return []string{g.Name, g.Email, g.PhoneNumber, r.TableName(), r.SpecialRequests}
		},
		Sorts: map[view.SortKey]view.Comparator[model.Reservation]{
			SortDate:     view.Times(start),
			SortCustomer: view.Strings(func(r model.Reservation) string { return r.Guest().Name }),
			SortTable:    view.Strings(model.Reservation.TableName),
			SortGuests:   view.Numbers(guests),
			SortStatus:   view.Strings(func(r model.Reservation) string { return r.Status }),
		},
		DefaultSort: view.SortState{Key: SortDate, Direction: view.Asc},
	}
}
