package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/restaurant-admin/internal/client"
	"github.com/jwalitptl/restaurant-admin/internal/reconcile"
	"github.com/jwalitptl/restaurant-admin/internal/screen"
	"github.com/jwalitptl/restaurant-admin/internal/service/order"
	"github.com/jwalitptl/restaurant-admin/internal/session"
	"github.com/jwalitptl/restaurant-admin/internal/view"
	"github.com/jwalitptl/restaurant-admin/pkg/circuitbreaker"
	apperrors "github.com/jwalitptl/restaurant-admin/pkg/errors"
	"github.com/jwalitptl/restaurant-admin/pkg/validator"
)

func TestAsAppErrorStatus(t *testing.T) {
	ve := &validator.ValidationError{}
	ve.Add("name", "is required")
	rejected := &client.APIError{Status: http.StatusUnprocessableEntity, Message: "Name taken", Fields: map[string][]string{"name": {"taken"}}}

	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"app error", apperrors.Forbidden("no"), http.StatusForbidden},
		{"validation", fmt.Errorf("wrapped: %w", ve), http.StatusUnprocessableEntity},
		{"row busy", reconcile.ErrRowBusy, http.StatusConflict},
		{"bad filter", fmt.Errorf("%w: min_total", view.ErrInvalidFilter), http.StatusBadRequest},
		{"bad sort", view.ErrUnknownSortKey, http.StatusBadRequest},
		{"no session", session.ErrUnauthenticated, http.StatusUnauthorized},
		{"expired", session.ErrExpired, http.StatusUnauthorized},
		{"missing item", order.ErrNotFound, http.StatusNotFound},
		{"breaker open", circuitbreaker.ErrOpen, http.StatusServiceUnavailable},
		{"remote rejection", &reconcile.MutationError{Message: "Name taken", Err: rejected}, http.StatusUnprocessableEntity},
		{"remote failure", &reconcile.MutationError{Message: "Failed", Err: errors.New("reset")}, http.StatusBadGateway},
		{"stale", fmt.Errorf("%w: boom", reconcile.ErrStale), http.StatusBadGateway},
		{"load failure", fmt.Errorf("%w: %w", screen.ErrUnavailable, errors.New("refused")), http.StatusBadGateway},
		{"api not found", &client.APIError{Status: http.StatusNotFound}, http.StatusNotFound},
		{"deadline", context.DeadlineExceeded, http.StatusBadGateway},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, AsAppError(tt.err).Status())
		})
	}
}

func TestMutationErrorCarriesMessageAndFields(t *testing.T) {
	rejected := &client.APIError{Status: http.StatusUnprocessableEntity, Message: "Name taken", Fields: map[string][]string{"name": {"taken"}}}
	e := AsAppError(&reconcile.MutationError{Message: "Name taken", Err: rejected})
	assert.Equal(t, "Name taken", e.Message)
	assert.Equal(t, map[string][]string{"name": {"taken"}}, e.Details)
}

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	ve := &validator.ValidationError{}
	ve.Add("email", "must be a valid email")
	RespondError(c, ve)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.True(t, c.IsAborted())
	assert.JSONEq(t, `{"status":"error","message":"validation failed","errors":[{"field":"email","message":"must be a valid email"}]}`, w.Body.String())
}

func TestParseID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	for raw, ok := range map[string]bool{"12": true, "0": false, "-3": false, "abc": false} {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Params = gin.Params{{Key: "id", Value: raw}}
		id, got := ParseID(c, "id")
		assert.Equal(t, ok, got, raw)
		if ok {
			assert.EqualValues(t, 12, id)
		} else {
			assert.Equal(t, http.StatusBadRequest, w.Code)
		}
	}
}
