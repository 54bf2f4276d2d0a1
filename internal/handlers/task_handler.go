package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/taskvault/backend/internal/models"
)

// TaskService is the interface that wraps the task business logic used by the
// task handler
type TaskService interface {
	Create(ctx context.Context, userID int, req *models.CreateTaskRequest) (*models.Task, error)
	GetByID(ctx context.Context, taskID, userID int) (*models.Task, error)
	GetAll(ctx context.Context, userID int) ([]models.Task, error)
	GetPending(ctx context.Context, userID int) ([]models.Task, error)
	GetDueToday(ctx context.Context, userID int) ([]models.Task, error)
	GetOverdue(ctx context.Context, userID int) ([]models.Task, error)
	Update(ctx context.Context, taskID, userID int, req *models.UpdateTaskRequest) (*models.Task, error)
	UpdateStatus(ctx context.Context, taskID, userID int, isCompleted any) (*models.Task, error)
	Delete(ctx context.Context, taskID, userID int) error
}

// TaskHandler handles task requests
type TaskHandler struct {
	BaseHandler
	taskService TaskService
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskService TaskService, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		BaseHandler: BaseHandler{Logger: logger},
		taskService: taskService,
	}
}

// RegisterRoutes mounts the task routes, all session-gated. The filter routes
// are registered before the {task_id} subtree so "status" and "due" are never
// swallowed as IDs.
func (h *TaskHandler) RegisterRoutes(r chi.Router, authenticate func(http.Handler) http.Handler) {
	r.Route("/tasks", func(r chi.Router) {
		r.Use(authenticate)

		r.Post("/", h.Create)
		r.Get("/", h.GetAll)
		r.Get("/status/pending", h.GetPending)
		r.Get("/due/today", h.GetDueToday)
		r.Get("/due/overdue", h.GetOverdue)

		r.Route("/{task_id}", func(r chi.Router) {
			r.Get("/", h.GetByID)
			r.Put("/", h.Update)
			r.Delete("/", h.Delete)
			r.Put("/status", h.UpdateStatus)
		})
	})
}

// Create handles POST /tasks
// @Summary Create a task in one of the caller's lists
// @Tags tasks
// @Accept json
// @Produce json
// @Param request body models.CreateTaskRequest true "Task creation request"
// @Success 201 {object} models.Task
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 404 {object} map[string]string "List not found"
// @Security ApiKeyAuth
// @Router /tasks [post]
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req models.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	task, err := h.taskService.Create(r.Context(), userID, &req)
	if err != nil {
		h.RespondAppError(w, r, err)
		return
	}

	h.RespondSuccess(w, http.StatusCreated, task)
}

// GetByID handles GET /tasks/{task_id}
// @Summary Get a task
// @Tags tasks
// @Produce json
// @Param task_id path int true "Task ID"
// @Success 200 {object} models.Task
// @Failure 404 {object} map[string]string "Task not found"
// @Security ApiKeyAuth
// @Router /tasks/{task_id} [get]
func (h *TaskHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	taskID, ok := h.pathID(w, r, "task_id", "Valid task ID is required")
	if !ok {
		return
	}

	task, err := h.taskService.GetByID(r.Context(), taskID, userID)
	if err != nil {
		h.RespondAppError(w, r, err)
		return
	}

	h.RespondSuccess(w, http.StatusOK, task)
}

// GetAll handles GET /tasks
// @Summary Get every task reachable through the caller's lists
// @Tags tasks
// @Produce json
// @Success 200 {array} models.Task
// @Security ApiKeyAuth
// @Router /tasks [get]
func (h *TaskHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	h.respondTasks(w, r, h.taskService.GetAll)
}

// GetPending handles GET /tasks/status/pending
// @Summary Get the caller's incomplete tasks
// @Tags tasks
// @Produce json
// @Success 200 {array} models.Task
// @Security ApiKeyAuth
// @Router /tasks/status/pending [get]
func (h *TaskHandler) GetPending(w http.ResponseWriter, r *http.Request) {
	h.respondTasks(w, r, h.taskService.GetPending)
}

// GetDueToday handles GET /tasks/due/today
// @Summary Get the caller's tasks due today
// @Tags tasks
// @Produce json
// @Success 200 {array} models.Task
// @Security ApiKeyAuth
// @Router /tasks/due/today [get]
func (h *TaskHandler) GetDueToday(w http.ResponseWriter, r *http.Request) {
	h.respondTasks(w, r, h.taskService.GetDueToday)
}

// GetOverdue handles GET /tasks/due/overdue
// @Summary Get the caller's overdue incomplete tasks
// @Tags tasks
// @Produce json
// @Success 200 {array} models.Task
// @Security ApiKeyAuth
// @Router /tasks/due/overdue [get]
func (h *TaskHandler) GetOverdue(w http.ResponseWriter, r *http.Request) {
	h.respondTasks(w, r, h.taskService.GetOverdue)
}

// Update handles PUT /tasks/{task_id}
// @Summary Update a task
// @Description Apply a partial update. Providing list_id moves the task to another of the caller's lists.
// @Tags tasks
// @Accept json
// @Produce json
// @Param task_id path int true "Task ID"
// @Param request body models.UpdateTaskRequest true "Partial task update"
// @Success 200 {object} models.Task
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 404 {object} map[string]string "Task or list not found"
// @Security ApiKeyAuth
// @Router /tasks/{task_id} [put]
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	taskID, ok := h.pathID(w, r, "task_id", "Valid task ID is required")
	if !ok {
		return
	}

	var req models.UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	task, err := h.taskService.Update(r.Context(), taskID, userID, &req)
	if err != nil {
		h.RespondAppError(w, r, err)
		return
	}

	h.RespondSuccess(w, http.StatusOK, task)
}

// UpdateStatus handles PUT /tasks/{task_id}/status
// @Summary Set a task's completion flag
// @Tags tasks
// @Accept json
// @Produce json
// @Param task_id path int true "Task ID"
// @Param request body models.UpdateTaskStatusRequest true "Completion flag"
// @Success 200 {object} models.Task
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 404 {object} map[string]string "Task not found"
// @Security ApiKeyAuth
// @Router /tasks/{task_id}/status [put]
func (h *TaskHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	taskID, ok := h.pathID(w, r, "task_id", "Valid task ID is required")
	if !ok {
		return
	}

	var req models.UpdateTaskStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	task, err := h.taskService.UpdateStatus(r.Context(), taskID, userID, req.IsCompleted)
	if err != nil {
		h.RespondAppError(w, r, err)
		return
	}

	h.RespondSuccess(w, http.StatusOK, task)
}

// Delete handles DELETE /tasks/{task_id}
// @Summary Delete a task
// @Tags tasks
// @Produce json
// @Param task_id path int true "Task ID"
// @Success 200 {object} map[string]string "Task deleted"
// @Failure 404 {object} map[string]string "Task not found"
// @Security ApiKeyAuth
// @Router /tasks/{task_id} [delete]
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	taskID, ok := h.pathID(w, r, "task_id", "Valid task ID is required")
	if !ok {
		return
	}

	if err := h.taskService.Delete(r.Context(), taskID, userID); err != nil {
		h.RespondAppError(w, r, err)
		return
	}

	h.RespondSuccess(w, http.StatusOK, map[string]string{"message": "Task deleted successfully"})
}

// respondTasks runs one of the task collection queries for the caller
func (h *TaskHandler) respondTasks(w http.ResponseWriter, r *http.Request, query func(context.Context, int) ([]models.Task, error)) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	tasks, err := query(r.Context(), userID)
	if err != nil {
		h.RespondAppError(w, r, err)
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}

	h.RespondSuccess(w, http.StatusOK, tasks)
}
