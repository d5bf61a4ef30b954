package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/10xdevs/task-manager-api/internal/api/shared"
	"github.com/10xdevs/task-manager-api/internal/domain"
	"github.com/10xdevs/task-manager-api/internal/platform/logger"
	"github.com/10xdevs/task-manager-api/internal/redact"
	"github.com/10xdevs/task-manager-api/internal/service"
)

// TaskResponse represents the response data for a task
type TaskResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TaskListResponse wraps a page of tasks.
type TaskListResponse struct {
	Tasks []TaskResponse `json:"tasks"`
	Count int            `json:"count"`
}

// TaskHandler handles task-related HTTP requests
type TaskHandler struct {
	taskService service.TaskService
	logger      *slog.Logger
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskService service.TaskService, logger *slog.Logger) *TaskHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TaskHandler")
	}

	return &TaskHandler{
		taskService: taskService,
		logger:      logger.With(slog.String("component", "task_handler")),
	}
}

// CreateTask handles POST /tasks requests.
// The task owner is always the authenticated user; any owner field in the
// payload is ignored by the decoder.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	var input service.CreateTaskInput
	if err := shared.DecodeJSON(r, &input); err != nil {
		log.Warn("invalid request format",
			slog.String("error", redact.Error(err)),
			slog.String("user_id", userID.String()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	task, err := h.taskService.CreateTask(r.Context(), userID, input)
	if err != nil {
		h.respondWithServiceError(w, r, err)
		return
	}

	log.Debug("task created",
		slog.String("user_id", userID.String()),
		slog.String("task_id", task.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, taskToResponse(task))
}

// GetTask handles GET /tasks/{id} requests.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	taskID, ok := requireTaskID(w, r, log)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(r.Context(), userID, taskID)
	if err != nil {
		h.respondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// ListTasks handles GET /tasks requests.
// Supports optional status, limit and offset query parameters.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	input := service.ListTasksInput{
		Status: r.URL.Query().Get("status"),
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid limit parameter")
			return
		}
		input.Limit = limit
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid offset parameter")
			return
		}
		input.Offset = offset
	}

	tasks, err := h.taskService.ListTasks(r.Context(), userID, input)
	if err != nil {
		h.respondWithServiceError(w, r, err)
		return
	}

	response := TaskListResponse{
		Tasks: make([]TaskResponse, 0, len(tasks)),
		Count: len(tasks),
	}
	for _, task := range tasks {
		response.Tasks = append(response.Tasks, taskToResponse(task))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// UpdateTask handles PUT /tasks/{id} requests.
// Only the provided fields change; the full updated task comes back.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	taskID, ok := requireTaskID(w, r, log)
	if !ok {
		return
	}

	var input service.UpdateTaskInput
	if err := shared.DecodeJSON(r, &input); err != nil {
		log.Warn("invalid request format",
			slog.String("error", redact.Error(err)),
			slog.String("user_id", userID.String()),
			slog.String("task_id", taskID.String()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	task, err := h.taskService.UpdateTask(r.Context(), userID, taskID, input)
	if err != nil {
		h.respondWithServiceError(w, r, err)
		return
	}

	log.Debug("task updated",
		slog.String("user_id", userID.String()),
		slog.String("task_id", taskID.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// DeleteTask handles DELETE /tasks/{id} requests.
// A successful delete returns 204 with no body.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	taskID, ok := requireTaskID(w, r, log)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(r.Context(), userID, taskID); err != nil {
		h.respondWithServiceError(w, r, err)
		return
	}

	log.Debug("task deleted",
		slog.String("user_id", userID.String()),
		slog.String("task_id", taskID.String()))
	w.WriteHeader(http.StatusNoContent)
}

// respondWithServiceError translates a service error into the response
// contract. Validation errors carry their per-field violations; everything
// else maps to a status code and a safe message only.
func (h *TaskHandler) respondWithServiceError(w http.ResponseWriter, r *http.Request, err error) {
	statusCode := MapErrorToStatusCode(err)
	safeMessage := GetSafeErrorMessage(err)

	if fields := validationFields(err); fields != nil {
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err, shared.WithFields(fields))
		return
	}

	shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
}

// requireUserID extracts the authenticated user ID set by the auth
// middleware, responding 401 when it is absent.
func requireUserID(w http.ResponseWriter, r *http.Request, log *slog.Logger) (uuid.UUID, bool) {
	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return uuid.Nil, false
	}
	return userID, true
}

// requireTaskID parses the {id} URL parameter, responding 400 when it is
// missing or not a UUID.
func requireTaskID(w http.ResponseWriter, r *http.Request, log *slog.Logger) (uuid.UUID, bool) {
	pathTaskID := chi.URLParam(r, "id")
	if pathTaskID == "" {
		log.Warn("task ID not found in URL path")
		shared.RespondWithError(w, r, http.StatusBadRequest, "Task ID is required")
		return uuid.Nil, false
	}

	taskID, err := uuid.Parse(pathTaskID)
	if err != nil {
		log.Warn("invalid task ID format", slog.String("task_id", pathTaskID))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid task ID format")
		return uuid.Nil, false
	}
	return taskID, true
}

// taskToResponse converts a domain.Task to a TaskResponse
func taskToResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID.String(),
		UserID:      task.UserID.String(),
		Title:       task.Title,
		Description: task.Description,
		Status:      string(task.Status),
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}
