package catalog

import (
	"github.com/jwalitptl/restaurant-admin/internal/model"
	"github.com/jwalitptl/restaurant-admin/internal/view"
)

const (
	SortCapacity view.SortKey = "capacity"
	SortType     view.SortKey = "type"
	SortActive   view.SortKey = "is_active"
)

func Tables() *view.Catalog[model.Table] {
	capacity := func(t model.Table) float64 { return float64(t.Capacity) }
	active := func(t model.Table) bool { return bool(t.IsActive) }

	return &view.Catalog[model.Table]{
		Name: "tables",
		Filters: []view.Filter[model.Table]{
			view.Equal("type", func(t model.Table) string { return t.Type }),
			view.Equal("status", func(t model.Table) string { return t.Status }),
			view.Choice("active", "active", "inactive", active),
			view.Range("capacity", "min_capacity", "max_capacity", capacity),
		},
		Search: func(t model.Table) []string { return []string{t.Name, t.Description} },
		Sorts: map[view.SortKey]view.Comparator[model.Table]{
			SortName:     view.Strings(func(t model.Table) string { return t.Name }),
			SortCapacity: view.Numbers(capacity),
			SortType:     view.Strings(func(t model.Table) string { return t.Type }),
			SortStatus:   view.Strings(func(t model.Table) string { return t.Status }),
			SortActive:   view.Bools(active),
		},
		DefaultSort: view.SortState{Key: SortName, Direction: view.Asc},
	}
}
