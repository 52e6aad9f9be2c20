package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	cause := errors.New("boom")
	assert.Equal(t, http.StatusNotFound, NotFound("dish", cause).Status())
	assert.Equal(t, http.StatusUnprocessableEntity, Validation(nil, cause).Status())
	assert.Equal(t, http.StatusConflict, Conflict("row is updating", cause).Status())
	assert.Equal(t, http.StatusInternalServerError, (&AppError{Code: 42}).Status())
}

func TestUpstream(t *testing.T) {
	assert.Equal(t, ErrUpstream, Upstream(http.StatusInternalServerError, "x", nil).Code)
	assert.Equal(t, ErrUpstream, Upstream(0, "x", nil).Code)
	assert.Equal(t, ErrBadRequest, Upstream(http.StatusTeapot, "x", nil).Code)
	assert.Equal(t, ErrValidation, Upstream(http.StatusUnprocessableEntity, "x", nil).Code)
	assert.Equal(t, ErrUnauthorized, Upstream(http.StatusUnauthorized, "x", nil).Code)
}

func TestErrorWrapping(t *testing.T) {
	cause := errors.New("boom")
	err := Internal(cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "internal server error: boom", err.Error())
	assert.Equal(t, "forbidden", Forbidden("forbidden").Error())
}
