package user

import (
	"context"

	"github.com/jwalitptl/restaurant-admin/internal/client"
	"github.com/jwalitptl/restaurant-admin/internal/model"
	"github.com/jwalitptl/restaurant-admin/internal/reconcile"
	"github.com/jwalitptl/restaurant-admin/internal/screen"
	"github.com/jwalitptl/restaurant-admin/internal/service/audit"
	"github.com/jwalitptl/restaurant-admin/pkg/validator"
)

const entity = "user"

type Screen = screen.Screen[model.User]

type UserServicer interface {
	Loader(api *client.API) screen.Loader[model.User]
	CreateUser(ctx context.Context, api *client.API, scr *Screen, in *model.UserInput) error
	UpdateUser(ctx context.Context, api *client.API, scr *Screen, id int64, in *model.UserInput) error
	DeleteUser(ctx context.Context, api *client.API, scr *Screen, id int64) error
}

type Service struct {
	validator validator.Validator
	auditor   *audit.Service
}

func NewService(v validator.Validator, auditor *audit.Service) *Service {
	return &Service{validator: v, auditor: auditor}
}

func (s *Service) Loader(api *client.API) screen.Loader[model.User] {
	return api.Users
}

// validate applies the tag rules plus the password rules. A new user
// needs a password; an update may leave both password fields empty.
func (s *Service) validate(in *model.UserInput, creating bool) error {
	ve := &validator.ValidationError{}
	ve.Merge(s.validator.Validate(in))

	switch {
	case in.Password == "" && in.PasswordConfirmation == "":
		if creating {
			ve.Add("password", "is required")
		}
	case in.Password == "":
		ve.Add("password", "is required when a confirmation is given")
	default:
		for _, p := range validator.PasswordProblems(in.Password) {
			ve.Add("password", p)
		}
		if validator.ContainsIdentity(in.Password, in.Name, in.Email) {
			ve.Add("password", "Password must not contain your name or email.")
		}
		if in.PasswordConfirmation != in.Password {
			ve.Add("password_confirmation", "Passwords do not match.")
		}
	}
	return ve.Err()
}

func (s *Service) CreateUser(ctx context.Context, api *client.API, scr *Screen, in *model.UserInput) error {
	if err := s.validate(in, true); err != nil {
		return err
	}
	err := scr.Create(ctx, reconcile.Mutation[model.User]{
		Call:     func(ctx context.Context) error { return api.CreateUser(ctx, in) },
		Fallback: "Failed to create user",
	})
	s.auditor.Log(ctx, entity, "create", 0, err, nil)
	return err
}

func (s *Service) UpdateUser(ctx context.Context, api *client.API, scr *Screen, id int64, in *model.UserInput) error {
	if err := s.validate(in, false); err != nil {
		return err
	}
	err := scr.Mutate(ctx, reconcile.Mutation[model.User]{
		Key:      reconcile.RowKey{ID: id},
		Call:     func(ctx context.Context) error { return api.UpdateUser(ctx, id, in) },
		Reload:   scr.Reload,
		Fallback: "Failed to update user",
	})
	s.auditor.Log(ctx, entity, "update", id, err, nil)
	return err
}

func (s *Service) DeleteUser(ctx context.Context, api *client.API, scr *Screen, id int64) error {
	err := scr.Mutate(ctx, reconcile.Mutation[model.User]{
		Key:      reconcile.RowKey{ID: id},
		Call:     func(ctx context.Context) error { return api.DeleteUser(ctx, id) },
		Reload:   scr.Reload,
		Fallback: "Failed to delete user",
	})
	s.auditor.Log(ctx, entity, "delete", id, err, nil)
	return err
}
