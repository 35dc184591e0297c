package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", fmt.Errorf("remove %q: %w", "x", ErrNotFound), http.StatusNotFound},
		{"duplicate", fmt.Errorf("add: %w", ErrDuplicateName), http.StatusConflict},
		{"invalid duration", ErrInvalidDuration, http.StatusBadRequest},
		{"invalid input", ErrInvalidInput, http.StatusBadRequest},
		{"empty collection", fmt.Errorf("stats: %w", ErrEmptyCollection), http.StatusUnprocessableEntity},
		{"rate limited", ErrRateLimited, http.StatusTooManyRequests},
		{"timeout", ErrTimeout, http.StatusServiceUnavailable},
		{"unknown", fmt.Errorf("boom"), http.StatusInternalServerError},
		{"app error wins", New(ErrNotFound, http.StatusGone, "gone"), http.StatusGone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatusCode(tt.err))
		})
	}
}

func TestAppErrorUnwrap(t *testing.T) {
	err := Newf(ErrInvalidInput, http.StatusBadRequest, "field %s", "name")
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, "invalid input: field name", err.Error())
}

func TestCode(t *testing.T) {
	assert.Equal(t, "ok", Code(nil))
	assert.Equal(t, "duplicate_name", Code(fmt.Errorf("wrap: %w", ErrDuplicateName)))
	assert.Equal(t, "empty_collection", Code(ErrEmptyCollection))
	assert.Equal(t, "internal", Code(fmt.Errorf("other")))
}
