package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/taskvault/backend/internal/models"
)

// ListService is the interface that wraps the list business logic used by the
// list handler
type ListService interface {
	Create(ctx context.Context, userID int, req *models.CreateListRequest) (*models.List, error)
	GetAll(ctx context.Context, userID int) ([]models.ListWithCounts, error)
	GetAllWithTasks(ctx context.Context, userID int) ([]models.ListWithTasks, error)
	GetByID(ctx context.Context, listID, userID int) (*models.List, error)
	GetByIDWithTasks(ctx context.Context, listID, userID int) (*models.ListDetail, error)
	Update(ctx context.Context, listID, userID int, req *models.UpdateListRequest) (*models.List, error)
	Delete(ctx context.Context, listID, userID int) error
	DeleteAll(ctx context.Context, userID int) error
	Clear(ctx context.Context, listID, userID int) error
	ClearAll(ctx context.Context, userID int) error
}

// ListHandler handles to-do list requests
type ListHandler struct {
	BaseHandler
	listService ListService
}

// NewListHandler creates a new list handler
func NewListHandler(listService ListService, logger *zap.Logger) *ListHandler {
	return &ListHandler{
		BaseHandler: BaseHandler{Logger: logger},
		listService: listService,
	}
}

// RegisterRoutes mounts the list routes, all session-gated
func (h *ListHandler) RegisterRoutes(r chi.Router, authenticate func(http.Handler) http.Handler) {
	r.Route("/lists", func(r chi.Router) {
		r.Use(authenticate)

		r.Post("/", h.Create)
		r.Get("/", h.GetAll)
		r.Delete("/", h.DeleteAll)
		r.Delete("/clear", h.ClearAll)

		r.Route("/{list_id}", func(r chi.Router) {
			r.Get("/", h.GetByID)
			r.Put("/", h.Update)
			r.Delete("/", h.Delete)
			r.Delete("/clear", h.Clear)
		})
	})
}

// Create handles POST /lists
// @Summary Create a to-do list
// @Tags lists
// @Accept json
// @Produce json
// @Param request body models.CreateListRequest true "List creation request"
// @Success 201 {object} models.List
// @Failure 400 {object} map[string]string "Validation error"
// @Security ApiKeyAuth
// @Router /lists [post]
func (h *ListHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req models.CreateListRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "Invalid request: empty body")
		return
	}

	list, err := h.listService.Create(r.Context(), userID, &req)
	if err != nil {
		h.RespondAppError(w, r, err)
		return
	}

	h.RespondSuccess(w, http.StatusCreated, list)
}

// GetAll handles GET /lists
// @Summary Get the caller's lists with task counts
// @Tags lists
// @Produce json
// @Param include_tasks query bool false "Embed each list's tasks"
// @Success 200 {array} models.ListWithCounts
// @Security ApiKeyAuth
// @Router /lists [get]
func (h *ListHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	if r.URL.Query().Get("include_tasks") == "true" {
		lists, err := h.listService.GetAllWithTasks(r.Context(), userID)
		if err != nil {
			h.RespondAppError(w, r, err)
			return
		}
		h.RespondSuccess(w, http.StatusOK, lists)
		return
	}

	lists, err := h.listService.GetAll(r.Context(), userID)
	if err != nil {
		h.RespondAppError(w, r, err)
		return
	}

	h.RespondSuccess(w, http.StatusOK, lists)
}

// GetByID handles GET /lists/{list_id}
// @Summary Get one of the caller's lists
// @Tags lists
// @Produce json
// @Param list_id path int true "List ID"
// @Param include_tasks query bool false "Embed the list's tasks"
// @Success 200 {object} models.List
// @Failure 404 {object} map[string]string "List not found"
// @Security ApiKeyAuth
// @Router /lists/{list_id} [get]
func (h *ListHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	listID, ok := h.pathID(w, r, "list_id", "Valid list ID is required")
	if !ok {
		return
	}

	if r.URL.Query().Get("include_tasks") == "true" {
		list, err := h.listService.GetByIDWithTasks(r.Context(), listID, userID)
		if err != nil {
			h.RespondAppError(w, r, err)
			return
		}
		h.RespondSuccess(w, http.StatusOK, list)
		return
	}

	list, err := h.listService.GetByID(r.Context(), listID, userID)
	if err != nil {
		h.RespondAppError(w, r, err)
		return
	}

	h.RespondSuccess(w, http.StatusOK, list)
}

// Update handles PUT /lists/{list_id}
// @Summary Update a list
// @Tags lists
// @Accept json
// @Produce json
// @Param list_id path int true "List ID"
// @Param request body models.UpdateListRequest true "Partial list update"
// @Success 200 {object} models.List
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 404 {object} map[string]string "List not found"
// @Security ApiKeyAuth
// @Router /lists/{list_id} [put]
func (h *ListHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	listID, ok := h.pathID(w, r, "list_id", "Valid list ID is required")
	if !ok {
		return
	}

	var req models.UpdateListRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "Invalid request: empty body")
		return
	}

	list, err := h.listService.Update(r.Context(), listID, userID, &req)
	if err != nil {
		h.RespondAppError(w, r, err)
		return
	}

	h.RespondSuccess(w, http.StatusOK, list)
}

// Delete handles DELETE /lists/{list_id}
// @Summary Delete a list and its tasks
// @Tags lists
// @Produce json
// @Param list_id path int true "List ID"
// @Success 200 {object} map[string]string "List deleted"
// @Failure 404 {object} map[string]string "List not found"
// @Security ApiKeyAuth
// @Router /lists/{list_id} [delete]
func (h *ListHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	listID, ok := h.pathID(w, r, "list_id", "Valid list ID is required")
	if !ok {
		return
	}

	if err := h.listService.Delete(r.Context(), listID, userID); err != nil {
		h.RespondAppError(w, r, err)
		return
	}

	h.RespondSuccess(w, http.StatusOK, map[string]string{"message": "List deleted successfully"})
}

// DeleteAll handles DELETE /lists
// @Summary Delete all of the caller's lists
// @Tags lists
// @Produce json
// @Success 200 {object} map[string]string "All lists deleted"
// @Security ApiKeyAuth
// @Router /lists [delete]
func (h *ListHandler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	if err := h.listService.DeleteAll(r.Context(), userID); err != nil {
		h.RespondAppError(w, r, err)
		return
	}

	h.RespondSuccess(w, http.StatusOK, map[string]string{"message": "All lists deleted successfully"})
}

// Clear handles DELETE /lists/{list_id}/clear, removing the list's tasks
// while keeping the list itself
// @Summary Clear a list's tasks
// @Tags lists
// @Produce json
// @Param list_id path int true "List ID"
// @Success 200 {object} map[string]string "List cleared"
// @Failure 404 {object} map[string]string "List not found"
// @Security ApiKeyAuth
// @Router /lists/{list_id}/clear [delete]
func (h *ListHandler) Clear(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	listID, ok := h.pathID(w, r, "list_id", "Valid list ID is required")
	if !ok {
		return
	}

	if err := h.listService.Clear(r.Context(), listID, userID); err != nil {
		h.RespondAppError(w, r, err)
		return
	}

	h.RespondSuccess(w, http.StatusOK, map[string]string{"message": "List cleared successfully"})
}

// ClearAll handles DELETE /lists/clear, removing all tasks from every list
// owned by the caller
// @Summary Clear all of the caller's lists
// @Tags lists
// @Produce json
// @Success 200 {object} map[string]string "All lists cleared"
// @Security ApiKeyAuth
// @Router /lists/clear [delete]
func (h *ListHandler) ClearAll(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	if err := h.listService.ClearAll(r.Context(), userID); err != nil {
		h.RespondAppError(w, r, err)
		return
	}

	h.RespondSuccess(w, http.StatusOK, map[string]string{"message": "All lists cleared successfully"})
}
