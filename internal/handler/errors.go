package handler

import (
	"context"
	"errors"
	"net/http"

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

// AsAppError classifies err for the HTTP layer.
func AsAppError(err error) *apperrors.AppError {
	var (
		appErr      *apperrors.AppError
		validation  *validator.ValidationError
		mutationErr *reconcile.MutationError
		apiErr      *client.APIError
	)
	switch {
	case errors.As(err, &appErr):
		return appErr
	case errors.As(err, &validation):
		return apperrors.Validation(validation.Fields, err)
	case errors.Is(err, reconcile.ErrRowBusy):
		return apperrors.Conflict("row is updating", err)
	case errors.Is(err, view.ErrInvalidFilter), errors.Is(err, view.ErrUnknownSortKey):
		return apperrors.BadRequest(err.Error(), err)
	case errors.Is(err, session.ErrUnauthenticated), errors.Is(err, session.ErrExpired), errors.Is(err, session.ErrClosed):
		return apperrors.Unauthorized(err)
	case errors.Is(err, order.ErrNotFound):
		return apperrors.NotFound("order item", err)
	case errors.Is(err, circuitbreaker.ErrOpen):
		return apperrors.Unavailable("restaurant API is unavailable", err)
	case errors.As(err, &mutationErr):
		e := apperrors.Upstream(upstreamStatus(err), mutationErr.Message, err)
		e.Details = upstreamFields(err)
		return e
	case errors.Is(err, reconcile.ErrStale):
		return apperrors.Upstream(0, "Changes were saved but the list could not be refreshed", err)
	case errors.Is(err, screen.ErrUnavailable):
		return apperrors.Upstream(upstreamStatus(err), "Failed to load data", err)
	case errors.As(err, &apiErr):
		msg := apiErr.Message
		if msg == "" {
			msg = http.StatusText(apiErr.Status)
		}
		e := apperrors.Upstream(apiErr.Status, msg, err)
		e.Details = upstreamFields(err)
		return e
	case errors.Is(err, context.DeadlineExceeded):
		return apperrors.Upstream(0, "restaurant API timed out", err)
	}
	return apperrors.Internal(err)
}

func upstreamStatus(err error) int {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

func upstreamFields(err error) interface{} {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && len(apiErr.Fields) > 0 {
		return apiErr.Fields
	}
	return nil
}
