package api

import (
	"errors"
	"net/http"

	"github.com/10xdevs/task-manager-api/internal/api/shared"
	"github.com/10xdevs/task-manager-api/internal/domain"
	"github.com/10xdevs/task-manager-api/internal/service"
	"github.com/10xdevs/task-manager-api/internal/service/auth"
	"github.com/10xdevs/task-manager-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Validation errors
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest

	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, service.ErrTaskNotOwned):
		return http.StatusForbidden

	// Not found errors
	case errors.Is(err, service.ErrTaskNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, service.ErrDuplicateTask),
		errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrInvalidTaskStatus):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, domain.ErrValidation):
		return "Validation failed"

	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid token"

	case errors.Is(err, domain.ErrUnauthorized):
		return "Authentication required"

	case errors.Is(err, service.ErrTaskNotOwned):
		return "You do not own this task"

	case errors.Is(err, service.ErrTaskNotFound),
		errors.Is(err, store.ErrNotFound):
		return "Task not found"

	case errors.Is(err, service.ErrDuplicateTask),
		errors.Is(err, store.ErrDuplicate):
		return "Task already exists"

	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrInvalidTaskStatus):
		return "Invalid task data"

	default:
		return "An unexpected error occurred"
	}
}

// validationFields converts service-level violations into response field
// errors. Returns nil when err carries no field detail.
func validationFields(err error) []shared.FieldError {
	var vErr *service.ValidationError
	if !errors.As(err, &vErr) {
		return nil
	}
	fields := make([]shared.FieldError, 0, len(vErr.Violations))
	for _, v := range vErr.Violations {
		fields = append(fields, shared.FieldError{Field: v.Field, Message: v.Message})
	}
	return fields
}
