package domain

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// TaskStatus represents the workflow state of a task.
type TaskStatus string

// Possible task status values. Status assignment is free-form: any valid
// status may be set on update, there is no enforced transition order.
const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusDone       TaskStatus = "done"
)

// Field length limits for Task, counted in runes to match the validation
// tags and the VARCHAR column semantics.
const (
	MaxTaskTitleLength       = 200
	MaxTaskDescriptionLength = 2000
)

// Common validation errors for Task
var (
	ErrTaskIDEmpty         = errors.New("task ID cannot be empty")
	ErrTaskUserIDEmpty     = errors.New("task user ID cannot be empty")
	ErrTaskTitleEmpty      = errors.New("task title cannot be empty")
	ErrTaskTitleTooLong    = errors.New("task title exceeds maximum length")
	ErrTaskDescTooLong     = errors.New("task description exceeds maximum length")
	ErrTaskStatusInvalid   = errors.New("invalid task status")
	ErrTaskOwnerImmutable  = errors.New("task owner cannot be changed")
	ErrTaskTimestampsEmpty = errors.New("task timestamps cannot be zero")
)

// Task represents a single unit of work owned by exactly one user.
// The UserID is set at creation time and is immutable afterwards;
// every mutation bumps UpdatedAt.
type Task struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      TaskStatus `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewTask creates a new Task owned by the given user.
// It generates a new UUID for the task ID, trims the title, defaults the
// status to pending, and sets the creation/update timestamps.
// Returns an error if validation fails.
func NewTask(userID uuid.UUID, title, description string) (*Task, error) {
	now := time.Now().UTC()
	task := &Task{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       strings.TrimSpace(title),
		Description: description,
		Status:      TaskStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns an error if any field fails validation.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrTaskIDEmpty
	}

	if t.UserID == uuid.Nil {
		return ErrTaskUserIDEmpty
	}

	if strings.TrimSpace(t.Title) == "" {
		return ErrTaskTitleEmpty
	}

	if utf8.RuneCountInString(t.Title) > MaxTaskTitleLength {
		return ErrTaskTitleTooLong
	}

	if utf8.RuneCountInString(t.Description) > MaxTaskDescriptionLength {
		return ErrTaskDescTooLong
	}

	if !isValidTaskStatus(t.Status) {
		return ErrTaskStatusInvalid
	}

	return nil
}

// UpdateTitle replaces the task's title and bumps the UpdatedAt timestamp.
// Returns an error if the new title is invalid.
func (t *Task) UpdateTitle(title string) error {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return ErrTaskTitleEmpty
	}
	if utf8.RuneCountInString(trimmed) > MaxTaskTitleLength {
		return ErrTaskTitleTooLong
	}

	t.Title = trimmed
	t.UpdatedAt = time.Now().UTC()
	return nil
}

// UpdateDescription replaces the task's description and bumps UpdatedAt.
// An empty description is allowed.
func (t *Task) UpdateDescription(description string) error {
	if utf8.RuneCountInString(description) > MaxTaskDescriptionLength {
		return ErrTaskDescTooLong
	}

	t.Description = description
	t.UpdatedAt = time.Now().UTC()
	return nil
}

// UpdateStatus sets the task's status and bumps the UpdatedAt timestamp.
// Returns an error if the new status is invalid.
func (t *Task) UpdateStatus(status TaskStatus) error {
	if !isValidTaskStatus(status) {
		return ErrTaskStatusInvalid
	}

	t.Status = status
	t.UpdatedAt = time.Now().UTC()
	return nil
}

// IsOwnedBy reports whether the task belongs to the given user.
func (t *Task) IsOwnedBy(userID uuid.UUID) bool {
	return userID != uuid.Nil && t.UserID == userID
}

// ParseTaskStatus converts a string into a TaskStatus.
// Returns ErrTaskStatusInvalid for values outside the enum.
func ParseTaskStatus(s string) (TaskStatus, error) {
	status := TaskStatus(s)
	if !isValidTaskStatus(status) {
		return "", ErrTaskStatusInvalid
	}
	return status, nil
}

// isValidTaskStatus checks if the given status is a valid TaskStatus.
func isValidTaskStatus(status TaskStatus) bool {
	switch status {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusDone:
		return true
	default:
		return false
	}
}
