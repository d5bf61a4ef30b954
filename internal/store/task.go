package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/10xdevs/task-manager-api/internal/domain"
)

// Default and maximum page sizes for ListByOwner.
const (
	DefaultListLimit = 50
	MaxListLimit     = 100
)

// ListOptions controls filtering and pagination for task listings.
// A nil Status means no status filter. A Limit of zero falls back to
// DefaultListLimit; values above MaxListLimit are clamped.
type ListOptions struct {
	Status *domain.TaskStatus
	Limit  int
	Offset int
}

// TaskStore defines the interface for task data persistence.
//
// Every mutation is scoped by the owning user's ID in addition to the
// database's own row-level policies; the two checks are deliberately
// independent so that neither layer is trusted alone.
type TaskStore interface {
	// Create saves a new task to the store.
	// The task must be valid according to domain validation rules.
	// Returns ErrDuplicate if a task with the same ID already exists.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID regardless of owner.
	// Returns ErrTaskNotFound if the task does not exist.
	//
	// This deliberately ignores ownership: the service layer fetches the
	// task first and runs its own ownership check so it can distinguish
	// a missing task from a foreign-owned one. Handlers must never expose
	// the result without that check.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// ListByOwner retrieves the tasks owned by the given user, newest first,
	// applying the filter and pagination in opts. Returns an empty slice
	// when the user owns no matching tasks.
	ListByOwner(ctx context.Context, ownerID uuid.UUID, opts ListOptions) ([]*domain.Task, error)

	// Update saves changes to an existing task. The UPDATE statement is
	// scoped by both task ID and the task's UserID; returns ErrTaskNotFound
	// when no row matches that pair. UserID itself is never written.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes the task with the given ID owned by ownerID.
	// Returns ErrTaskNotFound when no row matches id+ownerID, which makes
	// a repeated delete a clean NotFound rather than a fault.
	Delete(ctx context.Context, id, ownerID uuid.UUID) error

	// WithTx returns a new TaskStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller
	// (typically a service using RunInTransaction).
	WithTx(tx *sql.Tx) TaskStore
}
