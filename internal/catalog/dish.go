// Package catalog declares, per entity, the filters, search fields and
// sort keys the view engine applies to a raw collection.
package catalog

import (
	"strconv"

	"github.com/jwalitptl/restaurant-admin/internal/model"
	"github.com/jwalitptl/restaurant-admin/internal/view"
)

// Sort keys shared by several entities.
const (
	SortName     view.SortKey = "name"
	SortDate     view.SortKey = "date"
	SortCustomer view.SortKey = "customer"
	SortTable    view.SortKey = "table"
	SortStatus   view.SortKey = "status"
)

const (
	SortPrice        view.SortKey = "price"
	SortCategory     view.SortKey = "category"
	SortAvailability view.SortKey = "availability"
	SortPrepTime     view.SortKey = "preptime"
)

func id(n int64) string { return strconv.FormatInt(n, 10) }

// Dishes expects each dish to carry its category, resolved at load time.
func Dishes() *view.Catalog[model.Dish] {
	return &view.Catalog[model.Dish]{
		Name: "dishes",
		Filters: []view.Filter[model.Dish]{
			view.Equal("category", func(d model.Dish) string { return id(d.CategoryID) }),
			view.Choice("availability", "available", "unavailable", func(d model.Dish) bool { return bool(d.IsAvailable) }),
			view.Flag("vegetarian", func(d model.Dish) bool { return bool(d.IsVegetarian) }),
			view.Flag("vegan", func(d model.Dish) bool { return bool(d.IsVegan) }),
			view.Flag("gluten_free", func(d model.Dish) bool { return bool(d.IsGlutenFree) }),
			view.Range("price", "min_price", "max_price", func(d model.Dish) float64 { return d.Price.InexactFloat64() }),
			view.OptionalRange("prep", "min_prep", "max_prep", model.Dish.PrepMinutes),
		},
		Search: func(d model.Dish) []string {
			return []string{d.Name, d.Description, d.Ingredients, d.Allergens, d.CategoryName()}
		},
		Sorts: map[view.SortKey]view.Comparator[model.Dish]{
			SortName:         view.Strings(func(d model.Dish) string { return d.Name }),
			SortPrice:        view.Numbers(func(d model.Dish) float64 { return d.Price.InexactFloat64() }),
			SortCategory:     view.Strings(model.Dish.CategoryName),
			SortAvailability: view.Bools(func(d model.Dish) bool { return bool(d.IsAvailable) }),
			SortPrepTime:     view.OptionalNumbers(model.Dish.PrepMinutes),
		},
		DefaultSort: view.SortState{Key: SortName, Direction: view.Asc},
	}
}

// AttachCategories sets each dish's Category from cats when the API did
// not embed one. Dishes whose category cannot be found keep a nil Category
// and display as model.UnknownLabel.
func AttachCategories(dishes []model.Dish, cats []model.Category) []model.Dish {
	byID := make(map[int64]model.Category, len(cats))
	for _, c := range cats {
		byID[c.ID] = c
	}
	out := make([]model.Dish, len(dishes))
	for i, d := range dishes {
		if d.Category == nil || d.Category.Name == "" {
			if c, ok := byID[d.CategoryID]; ok {
				d.Category = &c
			}
		}
		out[i] = d
	}
	return out
}
