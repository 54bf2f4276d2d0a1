package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/taskvault/backend/internal/models"
)

// AdminService is the interface that wraps the admin user management logic
// used by the admin handler
type AdminService interface {
	GetAllUsers(ctx context.Context) ([]models.User, error)
	GetUserByID(ctx context.Context, userID int) (*models.User, error)
	CreateUser(ctx context.Context, req *models.RegisterRequest) (*models.User, error)
	UpdateUser(ctx context.Context, userID int, req *models.UpdateUserRequest) (*models.User, error)
	DeleteUser(ctx context.Context, userID int) error
}

// AdminHandler handles admin-only user management requests
type AdminHandler struct {
	BaseHandler
	adminService AdminService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminService AdminService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		BaseHandler:  BaseHandler{Logger: logger},
		adminService: adminService,
	}
}

// RegisterRoutes mounts the user management routes behind the admin gate
func (h *AdminHandler) RegisterRoutes(r chi.Router, authenticate, requireAdmin func(http.Handler) http.Handler) {
	r.Route("/admin/users", func(r chi.Router) {
		r.Use(authenticate)
		r.Use(requireAdmin)

		r.Get("/", h.GetAllUsers)
		r.Post("/", h.CreateUser)

		r.Route("/{user_id}", func(r chi.Router) {
			r.Get("/", h.GetUserByID)
			r.Put("/", h.UpdateUser)
			r.Delete("/", h.DeleteUser)
		})
	})
}

// GetAllUsers handles GET /admin/users
// @Summary Get all users
// @Tags admin
// @Produce json
// @Success 200 {array} models.User
// @Security ApiKeyAuth
// @Router /admin/users [get]
func (h *AdminHandler) GetAllUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.adminService.GetAllUsers(r.Context())
	if err != nil {
		h.RespondAppError(w, r, err)
		return
	}

	h.RespondSuccess(w, http.StatusOK, users)
}

// GetUserByID handles GET /admin/users/{user_id}
// @Summary Get a user by ID
// @Tags admin
// @Produce json
// @Param user_id path int true "User ID"
// @Success 200 {object} models.User
// @Failure 404 {object} map[string]string "User not found"
// @Security ApiKeyAuth
// @Router /admin/users/{user_id} [get]
func (h *AdminHandler) GetUserByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.pathID(w, r, "user_id", "User ID is required")
	if !ok {
		return
	}

	user, err := h.adminService.GetUserByID(r.Context(), userID)
	if err != nil {
		h.RespondAppError(w, r, err)
		return
	}

	h.RespondSuccess(w, http.StatusOK, user)
}

// CreateUser handles POST /admin/users, creating a regular user on behalf of
// an admin
// @Summary Create a user
// @Tags admin
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "User creation request"
// @Success 201 {object} models.User
// @Failure 409 {object} map[string]string "Username or email already in use"
// @Security ApiKeyAuth
// @Router /admin/users [post]
func (h *AdminHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "No data provided!")
		return
	}

	user, err := h.adminService.CreateUser(r.Context(), &req)
	if err != nil {
		h.RespondAppError(w, r, err)
		return
	}

	h.RespondSuccess(w, http.StatusCreated, user)
}

// UpdateUser handles PUT /admin/users/{user_id}
// @Summary Update a user
// @Tags admin
// @Accept json
// @Produce json
// @Param user_id path int true "User ID"
// @Param request body models.UpdateUserRequest true "Partial user update"
// @Success 200 {object} models.User
// @Failure 404 {object} map[string]string "User not found"
// @Failure 409 {object} map[string]string "Username or email already in use"
// @Security ApiKeyAuth
// @Router /admin/users/{user_id} [put]
func (h *AdminHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.pathID(w, r, "user_id", "User ID is required")
	if !ok {
		return
	}

	var req models.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "No data provided!")
		return
	}

	user, err := h.adminService.UpdateUser(r.Context(), userID, &req)
	if err != nil {
		h.RespondAppError(w, r, err)
		return
	}

	h.RespondSuccess(w, http.StatusOK, user)
}

// DeleteUser handles DELETE /admin/users/{user_id}. The user's lists and
// tasks cascade in the schema.
// @Summary Delete a user
// @Tags admin
// @Produce json
// @Param user_id path int true "User ID"
// @Success 200 {object} map[string]string "User deleted"
// @Failure 404 {object} map[string]string "User not found"
// @Security ApiKeyAuth
// @Router /admin/users/{user_id} [delete]
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.pathID(w, r, "user_id", "User ID is required")
	if !ok {
		return
	}

	if err := h.adminService.DeleteUser(r.Context(), userID); err != nil {
		h.RespondAppError(w, r, err)
		return
	}

	h.RespondSuccess(w, http.StatusOK, map[string]string{"message": "User deleted successfully"})
}
