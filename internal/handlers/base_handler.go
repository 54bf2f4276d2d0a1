// Package handlers implements the HTTP controllers. Every response uses the
// uniform envelope: {"success":true,"data":...} or
// {"success":false,"message":...}.
package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/taskvault/backend/internal/apperrors"
	"github.com/taskvault/backend/internal/middleware"
)

// successEnvelope is the uniform success response body
type successEnvelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

// errorEnvelope is the uniform failure response body
type errorEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// BaseHandler provides common handler functionality
type BaseHandler struct {
	Logger *zap.Logger
}

// RespondSuccess sends an enveloped JSON success response
func (h *BaseHandler) RespondSuccess(w http.ResponseWriter, status int, data any) {
	h.respondJSON(w, status, successEnvelope{Success: true, Data: data})
}

// RespondError sends an enveloped JSON error response
func (h *BaseHandler) RespondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, errorEnvelope{Success: false, Message: message})
}

// RespondAppError maps an application error to its HTTP status. Internal
// causes are logged in full here and never leak to the caller.
func (h *BaseHandler) RespondAppError(w http.ResponseWriter, r *http.Request, err error) {
	kind := apperrors.KindOf(err)
	if kind == apperrors.KindInternal {
		h.Logger.Error("request failed",
			zap.String("request_id", middleware.GetRequestID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}

	h.RespondError(w, apperrors.HTTPStatus(kind), apperrors.MessageOf(err))
}

func (h *BaseHandler) respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.Logger.Error("failed to encode JSON response", zap.Error(err))
	}
}
