package catalog

import (
	"time"

	"github.com/jwalitptl/restaurant-admin/internal/model"
	"github.com/jwalitptl/restaurant-admin/internal/view"
)

const (
	SortCreated view.SortKey = "created"
	SortEmail   view.SortKey = "email"
	SortRole    view.SortKey = "role"
)

func Users() *view.Catalog[model.User] {
	return &view.Catalog[model.User]{
		Name: "users",
		Filters: []view.Filter[model.User]{
			view.Equal("role", func(u model.User) string { return id(u.RoleID) }),
		},
		Search: func(u model.User) []string {
			return []string{u.Name, u.Email, u.PhoneNumber, u.Address}
		},
		Sorts: map[view.SortKey]view.Comparator[model.User]{
			SortName:    view.Strings(func(u model.User) string { return u.Name }),
			SortCreated: view.Times(func(u model.User) (time.Time, bool) { return u.CreatedAt.Get() }),
			SortEmail:   view.Strings(func(u model.User) string { return u.Email }),
			SortRole:    view.Strings(model.User.RoleName),
		},
		DefaultSort: view.SortState{Key: SortName, Direction: view.Asc},
	}
}
