package service

import (
	"github.com/google/uuid"
	"github.com/10xdevs/task-manager-api/internal/domain"
)

// OwnershipGuard decides whether a requesting identity may act on a task.
// It is the service-level half of the double enforcement: the store scopes
// its mutations by owner in SQL, and the database carries row-level
// policies, but this check runs first and independently of both.
type OwnershipGuard struct{}

// NewOwnershipGuard creates a new OwnershipGuard.
func NewOwnershipGuard() *OwnershipGuard {
	return &OwnershipGuard{}
}

// AuthorizeCreate reports whether the identity may create tasks.
// Any authenticated identity may create; the created task's owner is always
// forced to the requester, never taken from the payload.
func (g *OwnershipGuard) AuthorizeCreate(requesterID uuid.UUID) error {
	if requesterID == uuid.Nil {
		return domain.ErrUnauthorized
	}
	return nil
}

// Authorize reports whether the identity may read, update or delete the
// given task. Only the owner is authorized; everyone else gets
// ErrTaskNotOwned regardless of the operation.
func (g *OwnershipGuard) Authorize(requesterID uuid.UUID, task *domain.Task) error {
	if requesterID == uuid.Nil {
		return domain.ErrUnauthorized
	}
	if !task.IsOwnedBy(requesterID) {
		return ErrTaskNotOwned
	}
	return nil
}
