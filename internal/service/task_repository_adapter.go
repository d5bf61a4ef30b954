package service

import (
	"database/sql"

	"github.com/10xdevs/task-manager-api/internal/store"
)

// TaskRepositoryAdapter adapts a store.TaskStore to service.TaskRepository,
// pairing it with the connection pool the service needs for transactions.
// This keeps the service decoupled from concrete store implementations.
type TaskRepositoryAdapter struct {
	store.TaskStore
	db *sql.DB
}

// NewTaskRepositoryAdapter creates a new adapter that implements
// service.TaskRepository by delegating to a store.TaskStore implementation.
func NewTaskRepositoryAdapter(taskStore store.TaskStore, db *sql.DB) *TaskRepositoryAdapter {
	return &TaskRepositoryAdapter{
		TaskStore: taskStore,
		db:        db,
	}
}

// WithTx returns a repository view bound to the given transaction.
func (a *TaskRepositoryAdapter) WithTx(tx *sql.Tx) TaskRepository {
	return &TaskRepositoryAdapter{
		TaskStore: a.TaskStore.WithTx(tx),
		db:        a.db,
	}
}

// DB returns the underlying connection pool.
func (a *TaskRepositoryAdapter) DB() *sql.DB {
	return a.db
}

// Ensure TaskRepositoryAdapter implements service.TaskRepository
var _ TaskRepository = (*TaskRepositoryAdapter)(nil)
