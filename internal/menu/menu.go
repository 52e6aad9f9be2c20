// Package menu lists the console screens and which roles may open them.
package menu

import (
	"slices"

	"github.com/jwalitptl/restaurant-admin/internal/model"
)

// Screen keys.
const (
	Dashboard    = "dashboard"
	Users        = "users"
	Roles        = "roles"
	Tables       = "tables"
	Reservations = "reservations"
	Categories   = "categories"
	Dishes       = "dishes"
	Orders       = "orders"
)

type Entry struct {
	Key   string  `json:"key"`
	Title string  `json:"title"`
	Path  string  `json:"path"`
	Roles []int64 `json:"-"`
}

var (
	all      = []int64{model.RoleAdmin, model.RoleManager, model.RoleCashier}
	managers = []int64{model.RoleAdmin, model.RoleManager}
)

var entries = []Entry{
	{Key: Dashboard, Title: "Dashboard", Path: "/dashboard", Roles: all},
	{Key: Users, Title: "Users", Path: "/users", Roles: managers},
	{Key: Roles, Title: "Roles", Path: "/roles", Roles: []int64{model.RoleAdmin}},
	{Key: Tables, Title: "Tables", Path: "/tables", Roles: managers},
	{Key: Reservations, Title: "Reservations", Path: "/reservations", Roles: all},
	{Key: Categories, Title: "Categories", Path: "/categories", Roles: managers},
	{Key: Dishes, Title: "Dishes", Path: "/dishes", Roles: managers},
	{Key: Orders, Title: "Orders", Path: "/orders", Roles: all},
}

// Visible returns the entries roleID may open, in menu order.
func Visible(roleID int64) []Entry {
	var out []Entry
	for _, e := range entries {
		if slices.Contains(e.Roles, roleID) {
			out = append(out, e)
		}
	}
	return out
}

// Allowed reports whether roleID may open the screen. Unknown keys are denied.
func Allowed(key string, roleID int64) bool {
	for _, e := range entries {
		if e.Key == key {
			return slices.Contains(e.Roles, roleID)
		}
	}
	return false
}
