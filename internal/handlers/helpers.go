package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taskvault/backend/internal/middleware"
)

// userID pulls the authenticated caller's ID out of the request context.
// Handlers only run behind the auth middleware, so a miss means the route was
// mounted wrong; responding 401 keeps the failure contained.
func (h *BaseHandler) userID(w http.ResponseWriter, r *http.Request) (int, bool) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "Unauthenticated")
		return 0, false
	}
	return userID, true
}

// pathID parses a positive integer URL parameter, responding with the given
// validation message on failure
func (h *BaseHandler) pathID(w http.ResponseWriter, r *http.Request, param, message string) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, param))
	if err != nil || id < 1 {
		h.RespondError(w, http.StatusBadRequest, message)
		return 0, false
	}
	return id, true
}
