package auth

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/restaurant-admin/internal/client"
	"github.com/jwalitptl/restaurant-admin/internal/model"
	"github.com/jwalitptl/restaurant-admin/internal/session"
	"github.com/jwalitptl/restaurant-admin/pkg/validator"
)

type closer struct{ closed atomic.Bool }

func (c *closer) Close() error {
	c.closed.Store(true)
	return nil
}

type remote struct {
	logoutStatus int
	logins       atomic.Int32
}

func (f *remote) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/auth/login":
		f.logins.Add(1)
		fmt.Fprint(w, `{"data":{"token":"tok-9","user":{"id":9,"name":"Rana","role_id":1}}}`)
	case "/auth/me":
		fmt.Fprint(w, `{"user":{"id":9,"name":"Rana","role_id":1}}`)
	case "/auth/logout":
		w.WriteHeader(f.logoutStatus)
		fmt.Fprint(w, `{"message":"logout unavailable"}`)
	default:
		http.NotFound(w, r)
	}
}

func setup(t *testing.T, logoutStatus int) (*Service, *session.Store, *remote) {
	t.Helper()
	f := &remote{logoutStatus: logoutStatus}
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)

	c := client.New(client.Config{BaseURL: srv.URL}, nil)
	store := session.NewStore(c, session.Config{}, nil)
	t.Cleanup(store.Close)
	return NewService(c, store, validator.New()), store, f
}

func TestLogin(t *testing.T) {
	svc, _, f := setup(t, http.StatusOK)

	_, err := svc.Login(context.Background(), &model.Credentials{Email: "rana", Password: "pw"})
	var ve *validator.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Zero(t, f.logins.Load(), "invalid credentials are not forwarded")

	auth, err := svc.Login(context.Background(), &model.Credentials{Email: "rana@example.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "tok-9", auth.Token)
	assert.Equal(t, "Rana", auth.User.Name)
}

func TestLogoutDropsSession(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr bool
	}{
		{"remote accepts", http.StatusOK, false},
		{"remote fails", http.StatusServiceUnavailable, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store, _ := setup(t, tt.status)
			ctx := context.Background()

			sess, err := store.Resolve(ctx, "tok-9")
			require.NoError(t, err)
			scr := &closer{}
			_, err = sess.Attach("orders", func() io.Closer { return scr })
			require.NoError(t, err)
			require.Equal(t, 1, store.Count())

			err = svc.Logout(ctx, sess)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Zero(t, store.Count(), "session dropped")
			assert.True(t, scr.closed.Load(), "screens closed")

			again, err := store.Resolve(ctx, "tok-9")
			require.NoError(t, err)
			assert.NotSame(t, sess, again)
		})
	}
}
