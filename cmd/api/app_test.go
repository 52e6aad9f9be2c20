package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/restaurant-admin/internal/config"
)

// remote fakes the restaurant API for a signed-in cashier.
type remote struct {
	mu       sync.Mutex
	statuses map[int64]string
	fetches  int
}

func (f *remote) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/auth/login":
		fmt.Fprint(w, `{"token":"tok-1","user":{"id":1,"name":"Aya","role_id":3}}`)
	case r.Method == http.MethodGet && r.URL.Path == "/auth/me":
		if r.Header.Get("Authorization") != "Bearer tok-1" {
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `{"message":"Unauthenticated."}`)
			return
		}
		fmt.Fprint(w, `{"user":{"id":1,"name":"Aya","role_id":3}}`)
	case r.Method == http.MethodPost && r.URL.Path == "/auth/logout":
		fmt.Fprint(w, `{}`)
	case r.Method == http.MethodGet && r.URL.Path == "/cashier/orders":
		f.fetches++
		fmt.Fprintf(w, `{"orders":{"data":[
			{"id":1,"customer_name":"Alice","status":%q,"total_amount":"40.00","created_at":"2024-03-03T10:00:00Z","items":[]},
			{"id":2,"customer_name":"Bob","status":%q,"total_amount":"12.50","created_at":"2024-03-01T10:00:00Z","items":[]},
			{"id":3,"customer_name":"Carol","status":%q,"total_amount":"25.00","created_at":"2024-03-02T10:00:00Z","items":[]}
		]}}`, f.statuses[1], f.statuses[2], f.statuses[3])
	case r.Method == http.MethodPut && strings.HasSuffix(r.URL.Path, "/status"):
		var id int64
		_, _ = fmt.Sscanf(r.URL.Path, "/cashier/orders/%d/status", &id)
		if f.statuses[id] == "delivered" {
			w.WriteHeader(http.StatusUnprocessableEntity)
			fmt.Fprint(w, `{"message":"Cannot change a delivered order"}`)
			return
		}
		var body struct {
			Status string `json:"status"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.statuses[id] = body.Status
		fmt.Fprint(w, `{"message":"ok"}`)
	default:
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message":"not found"}`)
	}
}

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type orderView struct {
	Rows []struct {
		Record struct {
			ID     int64  `json:"id"`
			Status string `json:"status"`
		} `json:"record"`
		Updating bool `json:"updating"`
	} `json:"rows"`
	Total     int `json:"total"`
	Displayed int `json:"displayed"`
	Sort      struct {
		Key       string `json:"key"`
		Direction string `json:"direction"`
	} `json:"sort"`
}

func (v orderView) ids() []int64 {
	out := make([]int64, len(v.Rows))
	for i, r := range v.Rows {
		out[i] = r.Record.ID
	}
	return out
}

func setup(t *testing.T) (http.Handler, *remote) {
	t.Helper()
	f := &remote{statuses: map[int64]string{1: "pending", 2: "delivered", 3: "pending"}}
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)

	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)
	cfg.API.BaseURL = srv.URL
	cfg.API.RetryCount = 0
	cfg.Search.Debounce = 10 * time.Millisecond
	cfg.TimeZone = "UTC"

	a, err := newApp(cfg, prometheus.NewRegistry())
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a.handler, f
}

func call(t *testing.T, h http.Handler, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &env)
	}
	return w, env
}

func ordersView(t *testing.T, h http.Handler) orderView {
	t.Helper()
	w, env := call(t, h, http.MethodGet, "/api/v1/orders", "tok-1", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var v orderView
	require.NoError(t, json.Unmarshal(env.Data, &v))
	return v
}

func TestLoginAndMenu(t *testing.T) {
	h, _ := setup(t)

	w, env := call(t, h, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "aya@example.com", "password": "secret"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, string(env.Data), "tok-1")

	w, _ = call(t, h, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "not-an-email"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w, env = call(t, h, http.MethodGet, "/api/v1/menu", "tok-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"orders"`)
	assert.NotContains(t, string(env.Data), `"dishes"`)
}

func TestProtectedRoutes(t *testing.T) {
	h, _ := setup(t)

	w, _ := call(t, h, http.MethodGet, "/api/v1/orders", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = call(t, h, http.MethodGet, "/api/v1/orders", "someone-else", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = call(t, h, http.MethodGet, "/api/v1/dishes", "tok-1", nil)
	assert.Equal(t, http.StatusForbidden, w.Code, "cashiers cannot open dishes")

	w, _ = call(t, h, http.MethodGet, "/api/v1/health/live", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1.0", w.Header().Get("X-API-Version"))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestOrderScreen(t *testing.T) {
	h, f := setup(t)

	v := ordersView(t, h)
	assert.Equal(t, []int64{2, 3, 1}, v.ids(), "default sort is oldest first")
	assert.Equal(t, 3, v.Total)

	w, _ := call(t, h, http.MethodPut, "/api/v1/orders/filters", "tok-1", map[string]any{"filters": map[string]string{"status": "pending"}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w, _ = call(t, h, http.MethodPut, "/api/v1/orders/sort", "tok-1", map[string]string{"key": "total", "direction": "desc"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	v = ordersView(t, h)
	assert.Equal(t, []int64{1, 3}, v.ids())
	assert.Equal(t, 2, v.Displayed)
	assert.Equal(t, "desc", v.Sort.Direction)

	w, _ = call(t, h, http.MethodPut, "/api/v1/orders/filters", "tok-1", map[string]any{"filters": map[string]string{"min_total": "plenty"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w, _ = call(t, h, http.MethodPut, "/api/v1/orders/sort", "tok-1", map[string]string{"key": "weight"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = call(t, h, http.MethodPut, "/api/v1/orders/search", "tok-1", map[string]string{"term": "CAROL "})
	require.Equal(t, http.StatusAccepted, w.Code)
	require.Eventually(t, func() bool {
		return len(ordersView(t, h).Rows) == 1
	}, time.Second, 10*time.Millisecond)

	f.mu.Lock()
	fetches := f.fetches
	f.mu.Unlock()
	assert.Equal(t, 1, fetches, "view changes never refetch")
}

func TestOrderStatusMutation(t *testing.T) {
	h, f := setup(t)
	_ = ordersView(t, h)

	w, _ := call(t, h, http.MethodPut, "/api/v1/orders/3/status", "tok-1", map[string]string{"status": "preparing"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	for _, r := range ordersView(t, h).Rows {
		if r.Record.ID == 3 {
			assert.Equal(t, "preparing", r.Record.Status)
			assert.False(t, r.Updating)
		}
	}

	w, env := call(t, h, http.MethodPut, "/api/v1/orders/2/status", "tok-1", map[string]string{"status": "pending"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "Cannot change a delivered order", env.Message)

	w, _ = call(t, h, http.MethodPut, "/api/v1/orders/3/status", "tok-1", map[string]string{"status": "teleported"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	f.mu.Lock()
	assert.Equal(t, "preparing", f.statuses[3])
	assert.Equal(t, "delivered", f.statuses[2])
	f.mu.Unlock()
}

func TestLogoutClosesScreens(t *testing.T) {
	h, f := setup(t)
	_ = ordersView(t, h)

	w, _ := call(t, h, http.MethodPost, "/api/v1/auth/logout", "tok-1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	_ = ordersView(t, h)
	f.mu.Lock()
	assert.Equal(t, 2, f.fetches, "a new session mounts a fresh screen")
	f.mu.Unlock()
}
