package response_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/maxviazov/gamelib-analytics/internal/repository"
	"github.com/maxviazov/gamelib-analytics/internal/service"
	"github.com/maxviazov/gamelib-analytics/pkg/response"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"nil is ok", nil, http.StatusOK, "ok"},
		{"not found", repository.ErrNotFound, http.StatusNotFound, "not_found"},
		{"already exists", repository.ErrAlreadyExists, http.StatusConflict, "already_exists"},
		{"conflict", repository.ErrConflict, http.StatusConflict, "conflict"},
		{"unknown is internal", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			status, payload := response.MapError(tc.err)
			assert.Equal(t, tc.wantStatus, status)
			assert.Equal(t, tc.wantCode, payload.Error)
		})
	}
}

func TestMapErrorCarriesFieldErrors(t *testing.T) {
	err := service.NewInvalidInputError([]service.FieldError{
		{Field: "hours", Message: "must be a finite number >= 0"},
	})
	status, payload := response.MapError(err)

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "invalid_input", payload.Error)
	assert.Len(t, payload.FieldErrors, 1)
	assert.Equal(t, "hours", payload.FieldErrors[0].Field)
}
