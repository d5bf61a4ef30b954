package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/10xdevs/task-manager-api/internal/domain"
	"github.com/10xdevs/task-manager-api/internal/service"
	"github.com/10xdevs/task-manager-api/internal/service/auth"
	"github.com/10xdevs/task-manager-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "validation error",
			err:  &service.ValidationError{Violations: []service.FieldViolation{{Field: "title"}}},
			want: http.StatusBadRequest,
		},
		{name: "expired token", err: auth.ErrExpiredToken, want: http.StatusUnauthorized},
		{name: "invalid token", err: auth.ErrInvalidToken, want: http.StatusUnauthorized},
		{name: "unauthenticated", err: domain.ErrUnauthorized, want: http.StatusUnauthorized},
		{name: "not owned", err: service.ErrTaskNotOwned, want: http.StatusForbidden},
		{name: "not found", err: service.ErrTaskNotFound, want: http.StatusNotFound},
		{name: "store not found", err: store.ErrTaskNotFound, want: http.StatusNotFound},
		{name: "duplicate", err: service.ErrDuplicateTask, want: http.StatusConflict},
		{name: "invalid entity", err: store.ErrInvalidEntity, want: http.StatusBadRequest},
		{
			name: "wrapped sentinel",
			err:  fmt.Errorf("context: %w", service.ErrTaskNotOwned),
			want: http.StatusForbidden,
		},
		{
			name: "unknown error",
			err:  errors.New("something broke"),
			want: http.StatusInternalServerError,
		},
		{
			name: "wrapped service error",
			err: &service.TaskServiceError{
				Operation: "create_task",
				Message:   "failed to save task",
				Err:       errors.New("connection reset"),
			},
			want: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil error", err: nil, want: "An unexpected error occurred"},
		{
			name: "validation error",
			err:  &service.ValidationError{Violations: []service.FieldViolation{{Field: "title"}}},
			want: "Validation failed",
		},
		{name: "not owned", err: service.ErrTaskNotOwned, want: "You do not own this task"},
		{name: "not found", err: service.ErrTaskNotFound, want: "Task not found"},
		{name: "duplicate", err: service.ErrDuplicateTask, want: "Task already exists"},
		{name: "expired token", err: auth.ErrExpiredToken, want: "Token expired"},
		{
			name: "unknown error keeps internals private",
			err:  errors.New("pq: password authentication failed for user admin"),
			want: "An unexpected error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, GetSafeErrorMessage(tt.err))
		})
	}
}

func TestValidationFields(t *testing.T) {
	t.Parallel()

	t.Run("extracts violations", func(t *testing.T) {
		t.Parallel()
		vErr := &service.ValidationError{Violations: []service.FieldViolation{
			{Field: "title", Message: "is required"},
			{Field: "status", Message: "must be one of: pending, in_progress, done"},
		}}

		fields := validationFields(vErr)
		assert.Len(t, fields, 2)
		assert.Equal(t, "title", fields[0].Field)
	})

	t.Run("nil for non-validation errors", func(t *testing.T) {
		t.Parallel()
		assert.Nil(t, validationFields(errors.New("boom")))
		assert.Nil(t, validationFields(service.ErrTaskNotFound))
	})
}
