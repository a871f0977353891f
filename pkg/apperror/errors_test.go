package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatus(t *testing.T) {
	cases := []struct {
		err  error
		code int
		kind string
	}{
		{ErrNotFound, http.StatusNotFound, "not_found"},
		{ErrBlocked, http.StatusNotAcceptable, "blocked"},
		{ErrProhibitedContent, http.StatusForbidden, "prohibited_content"},
		{ErrServiceUnavailable, http.StatusInternalServerError, "service_unavailable"},
		{ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
		{ErrForbidden, http.StatusForbidden, "forbidden"},
		{ErrInvalidInput, http.StatusBadRequest, "bad_request"},
		{ErrRateLimitExceeded, http.StatusTooManyRequests, "rate_limited"},
		{errors.New("boom"), http.StatusInternalServerError, "internal"},
	}

	for _, tc := range cases {
		t.Run(tc.kind, func(t *testing.T) {
			assert.Equal(t, tc.code, MapErrorToStatus(tc.err))
			assert.Equal(t, tc.kind, Kind(tc.err))
		})
	}
}

func TestWrapKeepsSentinel(t *testing.T) {
	err := Wrap(ErrBlocked, "Post is blocked")

	assert.Equal(t, "Post is blocked", err.Error())
	assert.Equal(t, http.StatusNotAcceptable, err.Code)
	assert.ErrorIs(t, err, ErrBlocked)

	wrapped := fmt.Errorf("update: %w", err)
	assert.Equal(t, http.StatusNotAcceptable, MapErrorToStatus(wrapped))
	assert.Equal(t, "blocked", Kind(wrapped))
}

func TestNewWithCustomCode(t *testing.T) {
	err := New(http.StatusConflict, "", nil)
	assert.Equal(t, http.StatusConflict, MapErrorToStatus(err))
	assert.Equal(t, "Conflict", err.Error())
}
