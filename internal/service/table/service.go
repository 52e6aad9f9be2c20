package table

import (
	"context"

	"github.com/jwalitptl/restaurant-admin/internal/client"
	"github.com/jwalitptl/restaurant-admin/internal/model"
	"github.com/jwalitptl/restaurant-admin/internal/reconcile"
	"github.com/jwalitptl/restaurant-admin/internal/screen"
	"github.com/jwalitptl/restaurant-admin/internal/service/audit"
	"github.com/jwalitptl/restaurant-admin/pkg/validator"
)

const entity = "table"

type Screen = screen.Screen[model.Table]

type TableServicer interface {
	Loader(api *client.API) screen.Loader[model.Table]
	CreateTable(ctx context.Context, api *client.API, scr *Screen, in *model.TableInput) error
	UpdateTable(ctx context.Context, api *client.API, scr *Screen, id int64, in *model.TableInput) error
	DeleteTable(ctx context.Context, api *client.API, scr *Screen, id int64) error
}

type Service struct {
	validator validator.Validator
	auditor   *audit.Service
}

func NewService(v validator.Validator, auditor *audit.Service) *Service {
	return &Service{validator: v, auditor: auditor}
}

func (s *Service) Loader(api *client.API) screen.Loader[model.Table] {
	return api.Tables
}

func (s *Service) CreateTable(ctx context.Context, api *client.API, scr *Screen, in *model.TableInput) error {
	if err := s.validator.Validate(in); err != nil {
		return err
	}
	err := scr.Create(ctx, reconcile.Mutation[model.Table]{
		Call:     func(ctx context.Context) error { return api.CreateTable(ctx, in) },
		Fallback: "Failed to create table",
	})
	s.auditor.Log(ctx, entity, "create", 0, err, nil)
	return err
}

func (s *Service) UpdateTable(ctx context.Context, api *client.API, scr *Screen, id int64, in *model.TableInput) error {
	if err := s.validator.Validate(in); err != nil {
		return err
	}
	err := scr.Mutate(ctx, reconcile.Mutation[model.Table]{
		Key:      reconcile.RowKey{ID: id},
		Call:     func(ctx context.Context) error { return api.UpdateTable(ctx, id, in) },
		Reload:   scr.Reload,
		Fallback: "Failed to update table",
	})
	s.auditor.Log(ctx, entity, "update", id, err, nil)
	return err
}

func (s *Service) DeleteTable(ctx context.Context, api *client.API, scr *Screen, id int64) error {
	err := scr.Mutate(ctx, reconcile.Mutation[model.Table]{
		Key:      reconcile.RowKey{ID: id},
		Call:     func(ctx context.Context) error { return api.DeleteTable(ctx, id) },
		Reload:   scr.Reload,
		Fallback: "Failed to delete table",
	})
	s.auditor.Log(ctx, entity, "delete", id, err, nil)
	return err
}
