package dashboard

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/restaurant-admin/internal/client"
)

func TestGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/admin/stats":
			fmt.Fprint(w, `{"data":{"total_orders":42,"pending_orders":5}}`)
		case "/activity/recent":
			assert.Equal(t, "10", r.URL.Query().Get("limit"))
			fmt.Fprint(w, `{"data":[{"id":1,"type":"order","title":"Order #1"}]}`)
		}
	}))
	defer srv.Close()

	api := client.New(client.Config{BaseURL: srv.URL}, nil).WithToken("t")
	d, err := NewService().Get(context.Background(), api)
	require.NoError(t, err)
	assert.Equal(t, 42, d.Stats.TotalOrders)
	assert.Equal(t, 5, d.Stats.PendingOrders)
	require.Len(t, d.Activities, 1)
	assert.Equal(t, "Order #1", d.Activities[0].Title)
}

func TestGetFailsWhenEitherCallFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/activity/recent" {
			w.WriteHeader(http.StatusForbidden)
			fmt.Fprint(w, `{"message":"Forbidden"}`)
			return
		}
		fmt.Fprint(w, `{"stats":{}}`)
	}))
	defer srv.Close()

	api := client.New(client.Config{BaseURL: srv.URL}, nil).WithToken("t")
	_, err := NewService().Get(context.Background(), api)
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.Status)
}
