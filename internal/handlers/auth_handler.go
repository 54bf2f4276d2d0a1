package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/taskvault/backend/internal/middleware"
	"github.com/taskvault/backend/internal/models"
)

// AuthService is the interface that wraps the auth business logic used by the
// auth handler
type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.User, string, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.User, string, error)
	GetCurrentUser(ctx context.Context, userID int) (*models.User, error)
}

// authResponse pairs the user with the session token so non-browser clients
// can use the bearer fallback instead of the cookie
type authResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// AuthHandler handles registration, login, logout and current-user requests
type AuthHandler struct {
	BaseHandler
	authService AuthService
	tokenExpiry time.Duration
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService AuthService, tokenExpiry time.Duration, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: BaseHandler{Logger: logger},
		authService: authService,
		tokenExpiry: tokenExpiry,
	}
}

// RegisterRoutes mounts the auth routes. Registration and login are public;
// the rest require a session.
func (h *AuthHandler) RegisterRoutes(r chi.Router, authenticate func(http.Handler) http.Handler) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Get("/current-user", h.CurrentUser)
			r.Post("/logout", h.Logout)
		})
	})
}

// Register handles POST /auth/register
// @Summary Register a new user
// @Description Create an account with first name, username, email and password. Opens a session by setting the token cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "Registration request"
// @Success 201 {object} map[string]any "User created and session opened"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 409 {object} map[string]string "Username or email already in use"
// @Router /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "No data provided!")
		return
	}

	user, token, err := h.authService.Register(r.Context(), &req)
	if err != nil {
		h.RespondAppError(w, r, err)
		return
	}

	h.setTokenCookie(w, token)
	h.RespondSuccess(w, http.StatusCreated, authResponse{User: user, Token: token})
}

// Login handles POST /auth/login
// @Summary Login user
// @Description Authenticate with email and password. Opens a session by setting the token cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login request"
// @Success 200 {object} map[string]any "Login successful"
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "No data provided!")
		return
	}

	user, token, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		h.RespondAppError(w, r, err)
		return
	}

	h.setTokenCookie(w, token)
	h.RespondSuccess(w, http.StatusOK, authResponse{User: user, Token: token})
}

// CurrentUser handles GET /auth/current-user
// @Summary Get the authenticated user
// @Tags auth
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} map[string]string "Unauthenticated"
// @Security ApiKeyAuth
// @Router /auth/current-user [get]
func (h *AuthHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	user, err := h.authService.GetCurrentUser(r.Context(), userID)
	if err != nil {
		h.RespondAppError(w, r, err)
		return
	}

	h.RespondSuccess(w, http.StatusOK, user)
}

// Logout handles POST /auth/logout. The token itself stays valid until it
// expires; there is no server-side revocation.
// @Summary Logout user
// @Description Clear the session cookie.
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string "Logged out"
// @Security ApiKeyAuth
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.clearTokenCookie(w)
	h.RespondSuccess(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

func (h *AuthHandler) setTokenCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.TokenCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.tokenExpiry.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearTokenCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.TokenCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
