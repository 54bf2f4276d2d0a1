package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/taskvault/backend/internal/models"
)

// PriorityService is the interface that wraps the priority business logic
// used by the priority handler
type PriorityService interface {
	GetAll(ctx context.Context) ([]models.Priority, error)
	GetByID(ctx context.Context, priorityID int) (*models.Priority, error)
	GetByLevel(ctx context.Context, level int) (*models.Priority, error)
	Create(ctx context.Context, req *models.CreatePriorityRequest) (*models.Priority, error)
	Update(ctx context.Context, priorityID int, req *models.UpdatePriorityRequest) (*models.Priority, error)
	Delete(ctx context.Context, priorityID int) error
}

// PriorityHandler handles priority reference data requests
type PriorityHandler struct {
	BaseHandler
	priorityService PriorityService
}

// NewPriorityHandler creates a new priority handler
func NewPriorityHandler(priorityService PriorityService, logger *zap.Logger) *PriorityHandler {
	return &PriorityHandler{
		BaseHandler:     BaseHandler{Logger: logger},
		priorityService: priorityService,
	}
}

// RegisterRoutes mounts the priority routes. Reads need a session; writes
// additionally need the admin role.
func (h *PriorityHandler) RegisterRoutes(r chi.Router, authenticate, requireAdmin func(http.Handler) http.Handler) {
	r.Route("/priorities", func(r chi.Router) {
		r.Use(authenticate)

		r.Get("/", h.GetAll)
		r.Get("/id/{priority_id}", h.GetByID)
		r.Get("/level/{level}", h.GetByLevel)

		r.Group(func(r chi.Router) {
			r.Use(requireAdmin)
			r.Post("/", h.Create)
			r.Put("/{priority_id}", h.Update)
			r.Delete("/{priority_id}", h.Delete)
		})
	})
}

// GetAll handles GET /priorities
// @Summary Get all priorities in ascending severity
// @Tags priorities
// @Produce json
// @Success 200 {array} models.Priority
// @Security ApiKeyAuth
// @Router /priorities [get]
func (h *PriorityHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	priorities, err := h.priorityService.GetAll(r.Context())
	if err != nil {
		h.RespondAppError(w, r, err)
		return
	}

	h.RespondSuccess(w, http.StatusOK, priorities)
}

// GetByID handles GET /priorities/id/{priority_id}
// @Summary Get a priority by ID
// @Tags priorities
// @Produce json
// @Param priority_id path int true "Priority ID"
// @Success 200 {object} models.Priority
// @Failure 404 {object} map[string]string "Priority not found"
// @Security ApiKeyAuth
// @Router /priorities/id/{priority_id} [get]
func (h *PriorityHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	priorityID, ok := h.pathID(w, r, "priority_id", "Valid priority ID is required")
	if !ok {
		return
	}

	priority, err := h.priorityService.GetByID(r.Context(), priorityID)
	if err != nil {
		h.RespondAppError(w, r, err)
		return
	}

	h.RespondSuccess(w, http.StatusOK, priority)
}

// GetByLevel handles GET /priorities/level/{level}
// @Summary Get a priority by severity level
// @Tags priorities
// @Produce json
// @Param level path int true "Severity level"
// @Success 200 {object} models.Priority
// @Failure 404 {object} map[string]string "Priority level not found"
// @Security ApiKeyAuth
// @Router /priorities/level/{level} [get]
func (h *PriorityHandler) GetByLevel(w http.ResponseWriter, r *http.Request) {
	level, ok := h.pathID(w, r, "level", "Valid priority level is required")
	if !ok {
		return
	}

	priority, err := h.priorityService.GetByLevel(r.Context(), level)
	if err != nil {
		h.RespondAppError(w, r, err)
		return
	}

	h.RespondSuccess(w, http.StatusOK, priority)
}

// Create handles POST /priorities (admin only)
// @Summary Create a priority
// @Tags priorities
// @Accept json
// @Produce json
// @Param request body models.CreatePriorityRequest true "Priority creation request"
// @Success 201 {object} models.Priority
// @Failure 409 {object} map[string]string "Priority level already exists"
// @Security ApiKeyAuth
// @Router /priorities [post]
func (h *PriorityHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePriorityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "Invalid request: empty body")
		return
	}

	priority, err := h.priorityService.Create(r.Context(), &req)
	if err != nil {
		h.RespondAppError(w, r, err)
		return
	}

	h.RespondSuccess(w, http.StatusCreated, priority)
}

// Update handles PUT /priorities/{priority_id} (admin only)
// @Summary Update a priority
// @Tags priorities
// @Accept json
// @Produce json
// @Param priority_id path int true "Priority ID"
// @Param request body models.UpdatePriorityRequest true "Partial priority update"
// @Success 200 {object} models.Priority
// @Failure 404 {object} map[string]string "Priority not found"
// @Failure 409 {object} map[string]string "Priority level already exists"
// @Security ApiKeyAuth
// @Router /priorities/{priority_id} [put]
func (h *PriorityHandler) Update(w http.ResponseWriter, r *http.Request) {
	priorityID, ok := h.pathID(w, r, "priority_id", "Valid priority ID is required")
	if !ok {
		return
	}

	var req models.UpdatePriorityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "Invalid request: empty body")
		return
	}

	priority, err := h.priorityService.Update(r.Context(), priorityID, &req)
	if err != nil {
		h.RespondAppError(w, r, err)
		return
	}

	h.RespondSuccess(w, http.StatusOK, priority)
}

// Delete handles DELETE /priorities/{priority_id} (admin only)
// @Summary Delete a priority
// @Description Tasks referencing the priority fall back to null through the schema.
// @Tags priorities
// @Produce json
// @Param priority_id path int true "Priority ID"
// @Success 200 {object} map[string]string "Priority deleted"
// @Failure 404 {object} map[string]string "Priority not found"
// @Security ApiKeyAuth
// @Router /priorities/{priority_id} [delete]
func (h *PriorityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	priorityID, ok := h.pathID(w, r, "priority_id", "Valid priority ID is required")
	if !ok {
		return
	}

	if err := h.priorityService.Delete(r.Context(), priorityID); err != nil {
		h.RespondAppError(w, r, err)
		return
	}

	h.RespondSuccess(w, http.StatusOK, map[string]string{"message": "Priority deleted successfully"})
}
