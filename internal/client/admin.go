package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/jwalitptl/restaurant-admin/internal/model"
)

func (a *API) Users(ctx context.Context) ([]model.User, error) {
	body, err := a.get(ctx, "/admin/users")
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return decodeList[model.User](body, "users", nil)
}

func (a *API) CreateUser(ctx context.Context, in *model.UserInput) error {
	if err := a.send(ctx, http.MethodPost, "/admin/users", in); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (a *API) UpdateUser(ctx context.Context, id int64, in *model.UserInput) error {
	if err := a.send(ctx, http.MethodPut, fmt.Sprintf("/admin/users/%d", id), in); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

func (a *API) DeleteUser(ctx context.Context, id int64) error {
	if err := a.send(ctx, http.MethodDelete, fmt.Sprintf("/admin/users/%d", id), nil); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

func (a *API) Roles(ctx context.Context) ([]model.Role, error) {
	body, err := a.get(ctx, "/admin/roles")
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	return decodeList[model.Role](body, "roles", nil)
}

func (a *API) CreateRole(ctx context.Context, in *model.RoleInput) error {
	if err := a.send(ctx, http.MethodPost, "/admin/roles", in); err != nil {
		return fmt.Errorf("failed to create role: %w", err)
	}
	return nil
}

func (a *API) UpdateRole(ctx context.Context, id int64, in *model.RoleInput) error {
	if err := a.send(ctx, http.MethodPut, fmt.Sprintf("/admin/roles/%d", id), in); err != nil {
		return fmt.Errorf("failed to update role: %w", err)
	}
	return nil
}

func (a *API) DeleteRole(ctx context.Context, id int64) error {
	if err := a.send(ctx, http.MethodDelete, fmt.Sprintf("/admin/roles/%d", id), nil); err != nil {
		return fmt.Errorf("failed to delete role: %w", err)
	}
	return nil
}

func (a *API) Stats(ctx context.Context) (*model.Stats, error) {
	body, err := a.get(ctx, "/admin/stats")
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}
	var stats model.Stats
	if raw, ok := object(body, "stats", "data.stats", "data"); ok {
		if err := json.Unmarshal([]byte(raw.Raw), &stats); err != nil {
			return nil, fmt.Errorf("failed to decode stats: %w", err)
		}
	}
	return &stats, nil
}

// RecentActivities lists the latest orders and reservations. limit <= 0
// uses the server default.
func (a *API) RecentActivities(ctx context.Context, limit int) ([]model.Activity, error) {
	path := "/activity/recent"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	body, err := a.get(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent activities: %w", err)
	}
	return decodeList[model.Activity](body, "activities", nil)
}
