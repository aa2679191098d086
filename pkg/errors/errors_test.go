package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors(t *testing.T) {
	cases := []struct {
		name     string
		err      *AppError
		sentinel error
		status   int
	}{
		{"not found", NotFound("user", "u1"), ErrNotFound, http.StatusNotFound},
		{"already exists", AlreadyExists("user", "email", "a@b.com"), ErrAlreadyExists, http.StatusConflict},
		{"invalid input", InvalidInput("bad"), ErrInvalidInput, http.StatusBadRequest},
		{"unauthorized", Unauthorized("nope"), ErrUnauthorized, http.StatusUnauthorized},
		{"forbidden", Forbidden("nope"), ErrForbidden, http.StatusForbidden},
		{"service unavailable", ServiceUnavailable("db down"), ErrServiceUnavail, http.StatusServiceUnavailable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, tc.err, tc.sentinel)
			assert.Equal(t, tc.status, tc.err.Status)
			assert.NotEmpty(t, tc.err.Message)
		})
	}
}

func TestHTTPStatus_AppError(t *testing.T) {
	assert.Equal(t, http.StatusConflict, HTTPStatus(AlreadyExists("user", "email", "a@b.com")))
}

func TestHTTPStatus_WrappedSentinel(t *testing.T) {
	err := fmt.Errorf("lookup user: %w", ErrNotFound)
	assert.Equal(t, http.StatusNotFound, HTTPStatus(err))
}

func TestHTTPStatus_UnknownError(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("boom")))
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	appErr := Internal(cause)

	assert.ErrorIs(t, appErr, cause)
}

func TestWrap(t *testing.T) {
	err := Wrap(ErrNotFound, "get profile")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "get profile")
}
