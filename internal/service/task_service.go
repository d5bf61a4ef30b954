package service

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"
	"github.com/10xdevs/task-manager-api/internal/domain"
	"github.com/10xdevs/task-manager-api/internal/platform/logger"
	"github.com/10xdevs/task-manager-api/internal/store"
)

// TaskRepository defines the repository interface for the service layer.
// It mirrors store.TaskStore and adds the transaction plumbing the service
// needs for multi-step operations.
type TaskRepository interface {
	// Create saves a new task to the store
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID regardless of owner
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// ListByOwner retrieves the tasks owned by the given user
	ListByOwner(ctx context.Context, ownerID uuid.UUID, opts store.ListOptions) ([]*domain.Task, error)

	// Update saves changes to an existing task, scoped by id+owner
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes the task with the given ID owned by ownerID
	Delete(ctx context.Context, id, ownerID uuid.UUID) error

	// WithTx returns a new repository instance that uses the provided transaction
	WithTx(tx *sql.Tx) TaskRepository

	// DB returns the underlying database connection
	DB() *sql.DB
}

// TaskService provides task CRUD operations on behalf of an authenticated
// identity. Implementations are stateless and safe for concurrent use; each
// invocation handles one logical operation to completion.
type TaskService interface {
	// CreateTask validates the payload and persists a new task owned by ownerID.
	CreateTask(ctx context.Context, ownerID uuid.UUID, input CreateTaskInput) (*domain.Task, error)

	// GetTask retrieves a single task after checking ownership.
	GetTask(ctx context.Context, requesterID, taskID uuid.UUID) (*domain.Task, error)

	// ListTasks retrieves the requester's tasks with optional filtering.
	ListTasks(ctx context.Context, requesterID uuid.UUID, input ListTasksInput) ([]*domain.Task, error)

	// UpdateTask applies a partial update to an owned task.
	UpdateTask(ctx context.Context, requesterID, taskID uuid.UUID, input UpdateTaskInput) (*domain.Task, error)

	// DeleteTask removes an owned task.
	DeleteTask(ctx context.Context, requesterID, taskID uuid.UUID) error
}

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	repo   TaskRepository
	guard  *OwnershipGuard
	logger *slog.Logger
}

// NewTaskService creates a new TaskService.
// It returns an error if any of the required dependencies are nil. All
// dependencies are passed explicitly; the service holds no package-level
// state.
func NewTaskService(
	repo TaskRepository,
	guard *OwnershipGuard,
	logger *slog.Logger,
) (TaskService, error) {
	if repo == nil {
		return nil, &TaskServiceError{
			Operation: "create_service",
			Message:   "repo cannot be nil",
		}
	}
	if guard == nil {
		return nil, &TaskServiceError{
			Operation: "create_service",
			Message:   "guard cannot be nil",
		}
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		repo:   repo,
		guard:  guard,
		logger: logger.With(slog.String("component", "task_service")),
	}, nil
}

// CreateTask implements TaskService.CreateTask
// Order of operations: validate, authorize, single repository call. A
// validation failure returns before the repository is ever touched, and the
// owner always comes from the authenticated identity, not the payload.
func (s *taskServiceImpl) CreateTask(
	ctx context.Context,
	ownerID uuid.UUID,
	input CreateTaskInput,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if vErr := ValidateCreateTask(&input); vErr != nil {
		log.Debug("task creation payload rejected",
			slog.String("user_id", ownerID.String()),
			slog.Int("violations", len(vErr.Violations)))
		return nil, vErr
	}

	if err := s.guard.AuthorizeCreate(ownerID); err != nil {
		return nil, err
	}

	task, err := domain.NewTask(ownerID, input.Title, input.Description)
	if err != nil {
		log.Error("failed to create task object",
			slog.String("error", err.Error()),
			slog.String("user_id", ownerID.String()))
		return nil, NewTaskServiceError("create_task", "failed to create task object", err)
	}

	if input.Status != "" {
		status, err := domain.ParseTaskStatus(input.Status)
		if err != nil {
			return nil, NewTaskServiceError("create_task", "invalid status", err)
		}
		task.Status = status
	}

	if err := s.repo.Create(ctx, task); err != nil {
		log.Error("failed to save task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()),
			slog.String("user_id", ownerID.String()))
		return nil, NewTaskServiceError("create_task", "failed to save task", err)
	}

	log.Info("task created",
		slog.String("task_id", task.ID.String()),
		slog.String("user_id", ownerID.String()))
	return task, nil
}

// GetTask implements TaskService.GetTask
// The task is fetched without owner scoping, then the ownership guard
// decides: a missing task is NotFound, a foreign-owned task is NotOwned.
func (s *taskServiceImpl) GetTask(
	ctx context.Context,
	requesterID, taskID uuid.UUID,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := s.repo.GetByID(ctx, taskID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, ErrTaskNotFound
		}
		log.Error("failed to retrieve task",
			slog.String("error", err.Error()),
			slog.String("task_id", taskID.String()))
		return nil, NewTaskServiceError("get_task", "failed to retrieve task", err)
	}

	if err := s.guard.Authorize(requesterID, task); err != nil {
		log.Warn("task access denied",
			slog.String("task_id", taskID.String()),
			slog.String("requester_id", requesterID.String()))
		return nil, err
	}

	return task, nil
}

// ListTasks implements TaskService.ListTasks
// Results are always scoped to the requester; other users' tasks are never
// visible regardless of the filter.
func (s *taskServiceImpl) ListTasks(
	ctx context.Context,
	requesterID uuid.UUID,
	input ListTasksInput,
) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if vErr := ValidateListTasks(&input); vErr != nil {
		return nil, vErr
	}

	opts := store.ListOptions{
		Limit:  input.Limit,
		Offset: input.Offset,
	}
	if input.Status != "" {
		status, err := domain.ParseTaskStatus(input.Status)
		if err != nil {
			return nil, NewTaskServiceError("list_tasks", "invalid status filter", err)
		}
		opts.Status = &status
	}

	tasks, err := s.repo.ListByOwner(ctx, requesterID, opts)
	if err != nil {
		log.Error("failed to list tasks",
			slog.String("error", err.Error()),
			slog.String("user_id", requesterID.String()))
		return nil, NewTaskServiceError("list_tasks", "failed to list tasks", err)
	}

	return tasks, nil
}

// UpdateTask implements TaskService.UpdateTask
// Fetch, guard and write run inside one transaction so the caller observes
// either the full mutation or nothing. The repository's own owner-scoped
// UPDATE acts as the second, independent barrier.
func (s *taskServiceImpl) UpdateTask(
	ctx context.Context,
	requesterID, taskID uuid.UUID,
	input UpdateTaskInput,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if vErr := ValidateUpdateTask(&input); vErr != nil {
		log.Debug("task update payload rejected",
			slog.String("task_id", taskID.String()),
			slog.Int("violations", len(vErr.Violations)))
		return nil, vErr
	}

	var updated *domain.Task
	err := runInRepoTx(ctx, s.repo, func(ctx context.Context, repo TaskRepository) error {
		task, err := repo.GetByID(ctx, taskID)
		if err != nil {
			if store.IsNotFoundError(err) {
				return ErrTaskNotFound
			}
			return NewTaskServiceError("update_task", "failed to retrieve task", err)
		}

		if err := s.guard.Authorize(requesterID, task); err != nil {
			log.Warn("task update denied",
				slog.String("task_id", taskID.String()),
				slog.String("requester_id", requesterID.String()))
			return err
		}

		if input.Title != nil {
			if err := task.UpdateTitle(*input.Title); err != nil {
				return NewTaskServiceError("update_task", "failed to apply title", err)
			}
		}
		if input.Description != nil {
			if err := task.UpdateDescription(*input.Description); err != nil {
				return NewTaskServiceError("update_task", "failed to apply description", err)
			}
		}
		if input.Status != nil {
			status, err := domain.ParseTaskStatus(*input.Status)
			if err != nil {
				return NewTaskServiceError("update_task", "failed to apply status", err)
			}
			if err := task.UpdateStatus(status); err != nil {
				return NewTaskServiceError("update_task", "failed to apply status", err)
			}
		}

		if err := repo.Update(ctx, task); err != nil {
			return NewTaskServiceError("update_task", "failed to save task", err)
		}

		updated = task
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("task updated",
		slog.String("task_id", taskID.String()),
		slog.String("user_id", requesterID.String()))
	return updated, nil
}

// DeleteTask implements TaskService.DeleteTask
// Deleting an already-deleted task reports NotFound; it is never a fault.
func (s *taskServiceImpl) DeleteTask(
	ctx context.Context,
	requesterID, taskID uuid.UUID,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := runInRepoTx(ctx, s.repo, func(ctx context.Context, repo TaskRepository) error {
		task, err := repo.GetByID(ctx, taskID)
		if err != nil {
			if store.IsNotFoundError(err) {
				return ErrTaskNotFound
			}
			return NewTaskServiceError("delete_task", "failed to retrieve task", err)
		}

		if err := s.guard.Authorize(requesterID, task); err != nil {
			log.Warn("task delete denied",
				slog.String("task_id", taskID.String()),
				slog.String("requester_id", requesterID.String()))
			return err
		}

		if err := repo.Delete(ctx, taskID, requesterID); err != nil {
			return NewTaskServiceError("delete_task", "failed to delete task", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Info("task deleted",
		slog.String("task_id", taskID.String()),
		slog.String("user_id", requesterID.String()))
	return nil
}

// runInRepoTx executes fn against a transactional view of the repository.
// Repositories without an underlying *sql.DB (in-memory fakes) run fn
// directly; their operations are individually atomic already.
func runInRepoTx(
	ctx context.Context,
	repo TaskRepository,
	fn func(ctx context.Context, repo TaskRepository) error,
) error {
	db := repo.DB()
	if db == nil {
		return fn(ctx, repo)
	}
	return store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
		return fn(ctx, repo.WithTx(tx))
	})
}
