package service

import (
	"errors"
	"fmt"

	"github.com/10xdevs/task-manager-api/internal/store"
)

// Common service errors - sentinel errors used across service implementations.
// Callers check these with errors.Is(); the API layer maps each to an HTTP
// status code.
//
// Error handling principles:
//  1. Service methods return sentinel errors for expected error conditions
//  2. Unexpected errors are wrapped in TaskServiceError
//  3. Raw store or driver errors never cross the service boundary unmapped
var (
	// ErrTaskNotFound indicates that the task does not exist.
	// API layer maps this to HTTP 404 Not Found.
	ErrTaskNotFound = errors.New("task not found")

	// ErrTaskNotOwned indicates the task is owned by a different user than
	// the one making the request. API layer maps this to HTTP 403 Forbidden.
	// The disclosure policy is deliberate and uniform: existence of a
	// foreign-owned task is revealed, on every operation.
	ErrTaskNotOwned = errors.New("task is owned by another user")

	// ErrDuplicateTask indicates a uniqueness conflict while persisting a
	// task. API layer maps this to HTTP 409 Conflict.
	ErrDuplicateTask = errors.New("task already exists")
)

// TaskServiceError wraps unexpected errors from the task service with context.
type TaskServiceError struct {
	// Operation is the operation that failed (e.g., "create_task", "update_task")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for TaskServiceError.
func (e *TaskServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("task service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("task service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *TaskServiceError) Unwrap() error {
	return e.Err
}

// NewTaskServiceError maps err into the service error taxonomy.
// Store-level sentinels become service-level sentinels; everything else is
// wrapped in a TaskServiceError carrying the operation context, which the
// API layer renders as a storage failure.
func NewTaskServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	// Service-level sentinels pass through untouched
	if errors.Is(err, ErrTaskNotFound) || errors.Is(err, ErrTaskNotOwned) ||
		errors.Is(err, ErrDuplicateTask) {
		return err
	}

	// Validation errors keep their field detail
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return err
	}

	// Store-level sentinels map 1:1 into the service taxonomy
	if store.IsNotFoundError(err) {
		return ErrTaskNotFound
	}
	if store.IsDuplicateError(err) {
		return ErrDuplicateTask
	}

	return &TaskServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
