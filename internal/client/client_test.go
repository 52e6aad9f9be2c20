package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/restaurant-admin/internal/model"
)

func newTestAPI(t *testing.T, h http.HandlerFunc) (*API, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c := New(Config{
		BaseURL:        srv.URL,
		Timeout:        2 * time.Second,
		RetryCount:     2,
		RetryWait:      time.Millisecond,
		RetryMaxWait:   5 * time.Millisecond,
		BreakerTimeout: time.Minute,
	}, nil)
	return c.WithToken("secret-token"), srv
}

func reply(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}
}

func TestCollectionShapes(t *testing.T) {
	cases := map[string]string{
		"paginated": `{"dishes":{"data":[{"id":1,"name":"Soup","price":"4.50"}],"total":1}}`,
		"nested":    `{"dishes":[{"id":1,"name":"Soup","price":4.5}]}`,
		"data":      `{"data":[{"id":1,"name":"Soup","price":4.5}]}`,
		"root":      `[{"id":1,"name":"Soup","price":4.5}]`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			api, _ := newTestAPI(t, reply(body))
			dishes, err := api.Dishes(context.Background())
			require.NoError(t, err)
			require.Len(t, dishes, 1)
			assert.Equal(t, "Soup", dishes[0].Name)
			assert.Equal(t, "4.5", dishes[0].Price.String())
		})
	}
}

func TestUnknownShapeIsEmpty(t *testing.T) {
	api, _ := newTestAPI(t, reply(`{"message":"ok"}`))
	tables, err := api.Tables(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, tables)
	assert.Empty(t, tables)
}

func TestMalformedRecordsAreSkipped(t *testing.T) {
	api, _ := newTestAPI(t, reply(`{"tables":[{"id":1,"name":"A"},{"id":"x"},{"id":2,"name":"B"}]}`))
	tables, err := api.Tables(context.Background())
	require.NoError(t, err)
	require.Len(t, tables, 2)
	assert.Equal(t, int64(2), tables[1].ID)
}

func TestOrdersNormalization(t *testing.T) {
	api, _ := newTestAPI(t, reply(`{"orders":{"data":[
		{"id":1,"status":"pending","order_items":[{"id":10,"dish_name":"Falafel","status":"pending"}],
		 "table":{"name":"Patio 2"},"user":{"name":"Lina"},"total_amount":"18.00"},
		{"id":2,"status":"ready","items":[{"id":20,"name":"Tea"}],"table_name":"Bar","customer_name":"Omar"},
		{"id":3,"status":"ready","created_at":"not a date"}
	]}}`))
	orders, err := api.Orders(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 3)

	assert.Equal(t, "Patio 2", orders[0].TableName)
	assert.Equal(t, "Lina", orders[0].CustomerName)
	require.Len(t, orders[0].Items, 1)
	assert.Equal(t, "Falafel", orders[0].Items[0].DishName)
	total, ok := orders[0].Total()
	assert.True(t, ok)
	assert.Equal(t, 18.0, total)

	assert.Equal(t, "Bar", orders[1].TableName)
	assert.Equal(t, "Omar", orders[1].CustomerName)

	assert.NotNil(t, orders[2].Items)
	assert.False(t, orders[2].CreatedAt.Valid)
}

func TestBearerTokenAndStatusBody(t *testing.T) {
	var gotAuth, gotPath string
	var gotBody model.StatusInput
	api, _ := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.Method + " " + r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
	})

	require.NoError(t, api.UpdateOrderItemStatus(context.Background(), 5, 51, "served"))
	assert.Equal(t, "Bearer secret-token", gotAuth)
	assert.Equal(t, "PUT /cashier/orders/5/items/51/status", gotPath)
	assert.Equal(t, "served", gotBody.Status)
}

func TestServerMessageIsSurfaced(t *testing.T) {
	api, _ := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"Order cannot be cancelled","errors":{"status":["is final"]}}`))
	})

	err := api.CancelOrder(context.Background(), 9)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
	assert.Equal(t, "Order cannot be cancelled", apiErr.UserMessage())
	assert.Equal(t, []string{"is final"}, apiErr.Fields["status"])
	assert.Contains(t, err.Error(), "failed to cancel order")
}

func TestReadsRetryButWritesDoNot(t *testing.T) {
	var gets, puts int32
	api, _ := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			if atomic.AddInt32(&gets, 1) < 3 {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			_, _ = w.Write([]byte(`{"roles":[{"id":1,"name":"admin"}]}`))
			return
		}
		atomic.AddInt32(&puts, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	roles, err := api.Roles(context.Background())
	require.NoError(t, err)
	assert.Len(t, roles, 1)
	assert.Equal(t, int32(3), atomic.LoadInt32(&gets))

	err = api.UpdateReservationStatus(context.Background(), 1, "confirmed")
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&puts))
}

func TestClientErrorsDoNotTripBreaker(t *testing.T) {
	api, _ := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	for i := 0; i < 10; i++ {
		err := api.DeleteDish(context.Background(), 1)
		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr), "attempt %d: %v", i, err)
	}
}

func TestLogin(t *testing.T) {
	srv := httptest.NewServer(func() http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			assert.Empty(t, r.Header.Get("Authorization"))
			_, _ = w.Write([]byte(`{"token":"abc","user":{"id":"4","email":"a@b.co","name":"Aya","role":"admin","role_id":1}}`))
		}
	}())
	defer srv.Close()

	auth, err := New(Config{BaseURL: srv.URL}, nil).Login(context.Background(), model.Credentials{Email: "a@b.co", Password: "x"})
	require.NoError(t, err)
	assert.Equal(t, "abc", auth.Token)
	assert.Equal(t, model.RoleAdmin, auth.User.RoleID)
	assert.Equal(t, "4", auth.User.ID.String())
}

func TestLoginWithoutToken(t *testing.T) {
	srv := httptest.NewServer(reply(`{"message":"ok"}`))
	defer srv.Close()
	_, err := New(Config{BaseURL: srv.URL}, nil).Login(context.Background(), model.Credentials{})
	assert.ErrorIs(t, err, ErrNoToken)
}

func TestMeAndStats(t *testing.T) {
	api, _ := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/me":
			_, _ = w.Write([]byte(`{"user":{"id":7,"name":"Hadi","role_id":3}}`))
		case "/admin/stats":
			_, _ = w.Write([]byte(`{"stats":{"total_users":4,"pending_orders":2}}`))
		case "/activity/recent":
			assert.Equal(t, "5", r.URL.Query().Get("limit"))
			_, _ = w.Write([]byte(`{"activities":[{"id":1,"type":"order","title":"Order #1","total_amount":12}]}`))
		}
	})
	me, err := api.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.RoleCashier, me.RoleID)

	stats, err := api.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, stats.TotalUsers)
	assert.Equal(t, 2, stats.PendingOrders)

	acts, err := api.RecentActivities(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, acts, 1)
	assert.Equal(t, "order", acts[0].Type)
}
