package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"

	"github.com/jwalitptl/restaurant-admin/internal/model"
)

var ErrNoToken = errors.New("login response did not include a token")

type Auth struct {
	Token string        `json:"token"`
	User  model.Account `json:"user"`
}

// Login exchanges credentials for a token. It needs no session.
func (c *Client) Login(ctx context.Context, creds model.Credentials) (*Auth, error) {
	body, err := c.WithToken("").do(ctx, http.MethodPost, "/auth/login", creds)
	if err != nil {
		return nil, fmt.Errorf("failed to login: %w", err)
	}

	auth := &Auth{}
	for _, p := range []string{"token", "data.token", "access_token", "data.access_token"} {
		if t := gjson.GetBytes(body, p); t.Type == gjson.String && t.String() != "" {
			auth.Token = t.String()
			break
		}
	}
	if auth.Token == "" {
		return nil, ErrNoToken
	}
	if u, ok := object(body, "user", "data.user"); ok {
		if err := json.Unmarshal([]byte(u.Raw), &auth.User); err != nil {
			return nil, fmt.Errorf("failed to decode user: %w", err)
		}
	}
	return auth, nil
}

// Me returns the signed-in account.
func (a *API) Me(ctx context.Context) (*model.Account, error) {
	body, err := a.get(ctx, "/auth/me")
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	raw, ok := object(body, "user", "data.user", "data")
	if !ok {
		raw = gjson.ParseBytes(body)
	}
	var acc model.Account
	if err := json.Unmarshal([]byte(raw.Raw), &acc); err != nil {
		return nil, fmt.Errorf("failed to decode current user: %w", err)
	}
	return &acc, nil
}

func (a *API) Logout(ctx context.Context) error {
	if err := a.send(ctx, http.MethodPost, "/auth/logout", nil); err != nil {
		return fmt.Errorf("failed to logout: %w", err)
	}
	return nil
}
