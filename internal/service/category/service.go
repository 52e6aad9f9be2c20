package category

import (
	"context"

	"github.com/jwalitptl/restaurant-admin/internal/client"
	"github.com/jwalitptl/restaurant-admin/internal/model"
	"github.com/jwalitptl/restaurant-admin/internal/service/audit"
	"github.com/jwalitptl/restaurant-admin/pkg/validator"
)

const entity = "category"

type CategoryServicer interface {
	ListCategories(ctx context.Context, api *client.API) ([]model.Category, error)
	CreateCategory(ctx context.Context, api *client.API, in *model.CategoryInput) error
	UpdateCategory(ctx context.Context, api *client.API, id int64, in *model.CategoryInput) error
	DeleteCategory(ctx context.Context, api *client.API, id int64) error
}

type Service struct {
	validator validator.Validator
	auditor   *audit.Service
}

func NewService(v validator.Validator, auditor *audit.Service) *Service {
	return &Service{validator: v, auditor: auditor}
}

func (s *Service) ListCategories(ctx context.Context, api *client.API) ([]model.Category, error) {
	return api.Categories(ctx)
}

func (s *Service) CreateCategory(ctx context.Context, api *client.API, in *model.CategoryInput) error {
	if err := s.validator.Validate(in); err != nil {
		return err
	}
	err := api.CreateCategory(ctx, in)
	s.auditor.Log(ctx, entity, "create", 0, err, nil)
	return err
}

func (s *Service) UpdateCategory(ctx context.Context, api *client.API, id int64, in *model.CategoryInput) error {
	if err := s.validator.Validate(in); err != nil {
		return err
	}
	err := api.UpdateCategory(ctx, id, in)
	s.auditor.Log(ctx, entity, "update", id, err, nil)
	return err
}

func (s *Service) DeleteCategory(ctx context.Context, api *client.API, id int64) error {
	err := api.DeleteCategory(ctx, id)
	s.auditor.Log(ctx, entity, "delete", id, err, nil)
	return err
}
