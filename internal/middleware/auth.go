package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/taskvault/backend/internal/auth"
	"github.com/taskvault/backend/internal/models"
)

const (
	userIDKey contextKey = "userID"
	roleKey   contextKey = "role"
)

// TokenCookieName is the session cookie carrying the signed token
const TokenCookieName = "token"

// Authenticate validates the session token and attaches the caller's
// identity to the request context. Missing, malformed and expired tokens all
// produce the same response so the failure reason never leaks.
func Authenticate(tokenManager *auth.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				respondUnauthenticated(w)
				return
			}

			userID, role, err := tokenManager.Validate(token)
			if err != nil {
				respondUnauthenticated(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), userID, role)))
		})
	}
}

// RequireAdmin gates a route to admin callers. It must run after
// Authenticate so the role is already attached to the context.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := GetRole(r.Context())
		if !ok {
			respondUnauthenticated(w)
			return
		}

		if role != models.RoleAdmin {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"success":false,"message":"Unauthorized"}`))
			return
		}

		next.ServeHTTP(w, r)
	})
}

// WithIdentity returns a context carrying the caller's identity. It is what
// Authenticate attaches on success.
func WithIdentity(ctx context.Context, userID int, role models.Role) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, roleKey, role)
}

// GetUserID retrieves the authenticated user ID from context
func GetUserID(ctx context.Context) (int, bool) {
	userID, ok := ctx.Value(userIDKey).(int)
	return userID, ok
}

// GetRole retrieves the authenticated user role from context
func GetRole(ctx context.Context) (models.Role, bool) {
	role, ok := ctx.Value(roleKey).(models.Role)
	return role, ok
}

// extractToken reads the session token from the cookie, falling back to a
// bearer Authorization header for non-browser clients
func extractToken(r *http.Request) string {
	if cookie, err := r.Cookie(TokenCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		// Expected format: "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
			return parts[1]
		}
	}

	return ""
}

func respondUnauthenticated(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"success":false,"message":"Unauthenticated"}`))
}
