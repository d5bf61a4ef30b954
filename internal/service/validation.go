package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/10xdevs/task-manager-api/internal/domain"
)

// Shared validator instance for payload validation
var validate = validator.New()

// CreateTaskInput is the validated payload for task creation.
// Unknown fields in the raw request are ignored by the JSON decoder, which
// keeps forward-compatible clients working.
type CreateTaskInput struct {
	Title       string `json:"title"                 validate:"required,max=200"`
	Description string `json:"description,omitempty" validate:"max=2000"`
	Status      string `json:"status,omitempty"      validate:"omitempty,oneof=pending in_progress done"`
}

// UpdateTaskInput is the validated payload for a partial task update.
// Nil fields are left untouched on the task; the owner is never part of the
// payload and cannot be changed through an update.
type UpdateTaskInput struct {
	Title       *string `json:"title,omitempty"       validate:"omitempty,max=200"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	Status      *string `json:"status,omitempty"      validate:"omitempty,oneof=pending in_progress done"`
}

// ListTasksInput carries the filter and pagination options for listings.
type ListTasksInput struct {
	Status string `validate:"omitempty,oneof=pending in_progress done"`
	Limit  int    `validate:"min=0"`
	Offset int    `validate:"min=0"`
}

// FieldViolation describes a single invalid field in a request payload.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates the field violations of one payload.
// It is produced before any repository call and is never empty.
type ValidationError struct {
	Violations []FieldViolation
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, fmt.Sprintf("%s: %s", v.Field, v.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Unwrap lets callers match with errors.Is(err, domain.ErrValidation).
func (e *ValidationError) Unwrap() error {
	return domain.ErrValidation
}

// ValidateCreateTask normalizes and validates a creation payload.
// The title is trimmed before the required check so whitespace-only titles
// fail validation. Returns nil when the payload is valid.
func ValidateCreateTask(input *CreateTaskInput) *ValidationError {
	input.Title = strings.TrimSpace(input.Title)
	return collectViolations(validate.Struct(input))
}

// ValidateUpdateTask normalizes and validates a partial update payload.
// At least one field must be present; a present title must be non-blank
// after trimming.
func ValidateUpdateTask(input *UpdateTaskInput) *ValidationError {
	var violations []FieldViolation

	if input.Title == nil && input.Description == nil && input.Status == nil {
		violations = append(violations, FieldViolation{
			Field:   "payload",
			Message: "at least one field must be provided",
		})
	}

	if input.Title != nil {
		trimmed := strings.TrimSpace(*input.Title)
		*input.Title = trimmed
		if trimmed == "" {
			violations = append(violations, FieldViolation{
				Field:   "title",
				Message: "cannot be blank",
			})
		}
	}

	if structErr := collectViolations(validate.Struct(input)); structErr != nil {
		violations = append(violations, structErr.Violations...)
	}

	if len(violations) == 0 {
		return nil
	}
	return &ValidationError{Violations: violations}
}

// ValidateListTasks validates listing options.
func ValidateListTasks(input *ListTasksInput) *ValidationError {
	return collectViolations(validate.Struct(input))
}

// collectViolations converts validator errors into field violations with
// stable, safe messages. Unexpected validator failures (nothing to do with
// the payload content) become a generic payload violation rather than a
// panic or a leaked internal message.
func collectViolations(err error) *ValidationError {
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &ValidationError{Violations: []FieldViolation{
			{Field: "payload", Message: "invalid payload"},
		}}
	}

	violations := make([]FieldViolation, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		violations = append(violations, FieldViolation{
			Field:   strings.ToLower(fe.Field()),
			Message: violationMessage(fe),
		})
	}
	return &ValidationError{Violations: violations}
}

// violationMessage maps a validator tag to a user-facing message.
func violationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return "is invalid"
	}
}
