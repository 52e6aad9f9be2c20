package catalog

import (
	"time"

	"github.com/jwalitptl/restaurant-admin/internal/model"
	"github.com/jwalitptl/restaurant-admin/internal/view"
)

const SortTotal view.SortKey = "total"

func Orders(loc *time.Location) *view.Catalog[model.Order] {
	created := func(o model.Order) (time.Time, bool) { return o.CreatedAt.In(loc) }
	return &view.Catalog[model.Order]{
		Name: "orders",
		Filters: []view.Filter[model.Order]{
			view.Equal("status", func(o model.Order) string { return o.Status }),
			view.OptionalRange("total", "min_total", "max_total", model.Order.Total),
			view.DateRange("date", "date_from", "date_to", loc, created),
		},
		Search: orderText,
		Sorts: map[view.SortKey]view.Comparator[model.Order]{
			SortDate:     view.Times(created),
			SortCustomer: view.Strings(func(o model.Order) string { return o.CustomerName }),
			SortTable:    view.Strings(model.Order.TableLabel),
			SortTotal:    view.OptionalNumbers(model.Order.Total),
			SortStatus:   view.Strings(func(o model.Order) string { return o.Status }),
		},
		DefaultSort: view.SortState{Key: SortDate, Direction: view.Asc},
	}
}

func orderText(o model.Order) []string {
	fields := []string{o.CustomerName, o.TableLabel(), o.Note, id(o.ID)}
	for _, it := range o.Items {
		fields = append(fields, it.DishName, it.Name)
	}
	return fields
}
