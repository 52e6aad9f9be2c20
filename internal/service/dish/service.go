package dish

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/restaurant-admin/internal/catalog"
	"github.com/jwalitptl/restaurant-admin/internal/client"
	"github.com/jwalitptl/restaurant-admin/internal/model"
	"github.com/jwalitptl/restaurant-admin/internal/reconcile"
	"github.com/jwalitptl/restaurant-admin/internal/screen"
	"github.com/jwalitptl/restaurant-admin/internal/service/audit"
	"github.com/jwalitptl/restaurant-admin/pkg/validator"
)

const entity = "dish"

type Screen = screen.Screen[model.Dish]

type DishServicer interface {
	Loader(api *client.API) screen.Loader[model.Dish]
	CreateDish(ctx context.Context, api *client.API, scr *Screen, in *model.DishInput) error
	UpdateDish(ctx context.Context, api *client.API, scr *Screen, id int64, in *model.DishInput) error
	DeleteDish(ctx context.Context, api *client.API, scr *Screen, id int64) error
	ApplyDiscount(ctx context.Context, api *client.API, scr *Screen, id int64, in *model.DiscountInput) error
	RemoveDiscount(ctx context.Context, api *client.API, scr *Screen, id int64) error
}

type Service struct {
	validator validator.Validator
	auditor   *audit.Service
}

func NewService(v validator.Validator, auditor *audit.Service) *Service {
	return &Service{validator: v, auditor: auditor}
}

// Loader fetches dishes and resolves category names from the category
// list. A failed category fetch leaves names unresolved.
func (s *Service) Loader(api *client.API) screen.Loader[model.Dish] {
	return func(ctx context.Context) ([]model.Dish, error) {
		dishes, err := api.Dishes(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list dishes: %w", err)
		}
		cats, err := api.Categories(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to list categories for dish names")
			return dishes, nil
		}
		return catalog.AttachCategories(dishes, cats), nil
	}
}

func (s *Service) CreateDish(ctx context.Context, api *client.API, scr *Screen, in *model.DishInput) error {
	if err := s.validator.Validate(in); err != nil {
		return err
	}
	err := scr.Create(ctx, reconcile.Mutation[model.Dish]{
		Call:     func(ctx context.Context) error { return api.CreateDish(ctx, in) },
		Fallback: "Failed to create dish",
	})
	s.auditor.Log(ctx, entity, "create", 0, err, nil)
	return err
}

func (s *Service) UpdateDish(ctx context.Context, api *client.API, scr *Screen, id int64, in *model.DishInput) error {
	if err := s.validator.Validate(in); err != nil {
		return err
	}
	err := scr.Mutate(ctx, reconcile.Mutation[model.Dish]{
		Key:      reconcile.RowKey{ID: id},
		Call:     func(ctx context.Context) error { return api.UpdateDish(ctx, id, in) },
		Reload:   scr.Reload,
		Fallback: "Failed to update dish",
	})
	s.auditor.Log(ctx, entity, "update", id, err, nil)
	return err
}

func (s *Service) DeleteDish(ctx context.Context, api *client.API, scr *Screen, id int64) error {
	err := scr.Mutate(ctx, reconcile.Mutation[model.Dish]{
		Key:      reconcile.RowKey{ID: id},
		Call:     func(ctx context.Context) error { return api.DeleteDish(ctx, id) },
		Reload:   scr.Reload,
		Fallback: "Failed to delete dish",
	})
	s.auditor.Log(ctx, entity, "delete", id, err, nil)
	return err
}

func (s *Service) ApplyDiscount(ctx context.Context, api *client.API, scr *Screen, id int64, in *model.DiscountInput) error {
	if err := s.validator.Validate(in); err != nil {
		return err
	}
	err := scr.Mutate(ctx, reconcile.Mutation[model.Dish]{
		Key:      reconcile.RowKey{ID: id},
		Call:     func(ctx context.Context) error { return api.ApplyDiscount(ctx, id, in) },
		Reload:   scr.Reload,
		Fallback: "Failed to apply discount",
	})
	s.auditor.Log(ctx, entity, "discount", id, err, &audit.LogOptions{
		Changes: map[string]interface{}{"discount_percentage": in.Percentage.String()},
	})
	return err
}

func (s *Service) RemoveDiscount(ctx context.Context, api *client.API, scr *Screen, id int64) error {
	err := scr.Mutate(ctx, reconcile.Mutation[model.Dish]{
		Key:      reconcile.RowKey{ID: id},
		Call:     func(ctx context.Context) error { return api.RemoveDiscount(ctx, id) },
		Reload:   scr.Reload,
		Fallback: "Failed to remove discount",
	})
	s.auditor.Log(ctx, entity, "remove_discount", id, err, nil)
	return err
}
