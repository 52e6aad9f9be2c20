package auth

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jwalitptl/restaurant-admin/internal/client"
	"github.com/jwalitptl/restaurant-admin/internal/model"
	"github.com/jwalitptl/restaurant-admin/internal/session"
	"github.com/jwalitptl/restaurant-admin/pkg/validator"
)

type Service struct {
	client    *client.Client
	sessions  *session.Store
	validator validator.Validator
}

func NewService(c *client.Client, sessions *session.Store, v validator.Validator) *Service {
	return &Service{client: c, sessions: sessions, validator: v}
}

// Login forwards credentials to the API and returns its token.
func (s *Service) Login(ctx context.Context, creds *model.Credentials) (*client.Auth, error) {
	if err := s.validator.Validate(creds); err != nil {
		return nil, err
	}
	auth, err := s.client.Login(ctx, *creds)
	if err != nil {
		return nil, err
	}
	zerolog.Ctx(ctx).Info().Str("email", creds.Email).Msg("User logged in")
	return auth, nil
}

// Logout revokes the token remotely and drops the local session. The
// session is dropped even when the remote call fails.
func (s *Service) Logout(ctx context.Context, sess *session.Session) error {
	defer s.sessions.Drop(sess.Token)
	if err := sess.API.Logout(ctx); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}
