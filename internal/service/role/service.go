package role

import (
	"context"

	"github.com/jwalitptl/restaurant-admin/internal/client"
	"github.com/jwalitptl/restaurant-admin/internal/model"
	"github.com/jwalitptl/restaurant-admin/internal/service/audit"
	"github.com/jwalitptl/restaurant-admin/pkg/validator"
)

const entity = "role"

type RoleService interface {
	ListRoles(ctx context.Context, api *client.API) ([]model.Role, error)
	CreateRole(ctx context.Context, api *client.API, in *model.RoleInput) error
	UpdateRole(ctx context.Context, api *client.API, id int64, in *model.RoleInput) error
	DeleteRole(ctx context.Context, api *client.API, id int64) error
}

// Service manages roles. Roles have no list screen; callers list again
// after a change.
type Service struct {
	validator validator.Validator
	auditor   *audit.Service
}

func NewService(v validator.Validator, auditor *audit.Service) *Service {
	return &Service{validator: v, auditor: auditor}
}

func (s *Service) ListRoles(ctx context.Context, api *client.API) ([]model.Role, error) {
	return api.Roles(ctx)
}

func (s *Service) CreateRole(ctx context.Context, api *client.API, in *model.RoleInput) error {
	if err := s.validator.Validate(in); err != nil {
		return err
	}
	err := api.CreateRole(ctx, in)
	s.auditor.Log(ctx, entity, "create", 0, err, nil)
	return err
}

func (s *Service) UpdateRole(ctx context.Context, api *client.API, id int64, in *model.RoleInput) error {
	if err := s.validator.Validate(in); err != nil {
		return err
	}
	err := api.UpdateRole(ctx, id, in)
	s.auditor.Log(ctx, entity, "update", id, err, nil)
	return err
}

func (s *Service) DeleteRole(ctx context.Context, api *client.API, id int64) error {
	err := api.DeleteRole(ctx, id)
	s.auditor.Log(ctx, entity, "delete", id, err, nil)
	return err
}
