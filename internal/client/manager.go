package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jwalitptl/restaurant-admin/internal/model"
)

func (a *API) Tables(ctx context.Context) ([]model.Table, error) {
	body, err := a.get(ctx, "/manager/tables")
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	return decodeList[model.Table](body, "tables", nil)
}

func (a *API) CreateTable(ctx context.Context, in *model.TableInput) error {
	if err := a.send(ctx, http.MethodPost, "/manager/tables", in); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}
	return nil
}

// UpdateTable uses POST, as the API expects for table updates.
func (a *API) UpdateTable(ctx context.Context, id int64, in *model.TableInput) error {
	if err := a.send(ctx, http.MethodPost, fmt.Sprintf("/manager/tables/%d", id), in); err != nil {
		return fmt.Errorf("failed to update table: %w", err)
	}
	return nil
}

func (a *API) DeleteTable(ctx context.Context, id int64) error {
	if err := a.send(ctx, http.MethodDelete, fmt.Sprintf("/manager/tables/%d", id), nil); err != nil {
		return fmt.Errorf("failed to delete table: %w", err)
	}
	return nil
}

func (a *API) Reservations(ctx context.Context) ([]model.Reservation, error) {
	body, err := a.get(ctx, "/manager/reservations")
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	return decodeList[model.Reservation](body, "reservations", nil)
}

func (a *API) UpdateReservationStatus(ctx context.Context, id int64, status string) error {
	path := fmt.Sprintf("/manager/reservations/%d/status", id)
	if err := a.send(ctx, http.MethodPut, path, model.StatusInput{Status: status}); err != nil {
		return fmt.Errorf("failed to update reservation status: %w", err)
	}
	return nil
}

func (a *API) Categories(ctx context.Context) ([]model.Category, error) {
	body, err := a.get(ctx, "/manager/categories")
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return decodeList[model.Category](body, "categories", nil)
}

func (a *API) CreateCategory(ctx context.Context, in *model.CategoryInput) error {
	if err := a.send(ctx, http.MethodPost, "/manager/categories", in); err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

func (a *API) UpdateCategory(ctx context.Context, id int64, in *model.CategoryInput) error {
	if err := a.send(ctx, http.MethodPut, fmt.Sprintf("/manager/categories/%d", id), in); err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	return nil
}

func (a *API) DeleteCategory(ctx context.Context, id int64) error {
	if err := a.send(ctx, http.MethodDelete, fmt.Sprintf("/manager/categories/%d", id), nil); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}

func (a *API) Dishes(ctx context.Context) ([]model.Dish, error) {
	body, err := a.get(ctx, "/manager/dishes")
	if err != nil {
		return nil, fmt.Errorf("failed to list dishes: %w", err)
	}
	return decodeList[model.Dish](body, "dishes", nil)
}

func (a *API) CreateDish(ctx context.Context, in *model.DishInput) error {
	if err := a.send(ctx, http.MethodPost, "/manager/dishes", in); err != nil {
		return fmt.Errorf("failed to create dish: %w", err)
	}
	return nil
}

// UpdateDish uses POST, as the API expects for dish updates.
func (a *API) UpdateDish(ctx context.Context, id int64, in *model.DishInput) error {
	if err := a.send(ctx, http.MethodPost, fmt.Sprintf("/manager/dishes/%d", id), in); err != nil {
		return fmt.Errorf("failed to update dish: %w", err)
	}
	return nil
}

func (a *API) DeleteDish(ctx context.Context, id int64) error {
	if err := a.send(ctx, http.MethodDelete, fmt.Sprintf("/manager/dishes/%d", id), nil); err != nil {
		return fmt.Errorf("failed to delete dish: %w", err)
	}
	return nil
}

func (a *API) ApplyDiscount(ctx context.Context, id int64, in *model.DiscountInput) error {
	if err := a.send(ctx, http.MethodPost, fmt.Sprintf("/manager/dishes/%d/discount", id), in); err != nil {
		return fmt.Errorf("failed to apply discount: %w", err)
	}
	return nil
}

func (a *API) RemoveDiscount(ctx context.Context, id int64) error {
	if err := a.send(ctx, http.MethodDelete, fmt.Sprintf("/manager/dishes/%d/discount", id), nil); err != nil {
		return fmt.Errorf("failed to remove discount: %w", err)
	}
	return nil
}
