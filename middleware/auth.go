package middleware

import (
	"context"
	"net/http"
	"strings"

	"confidence-pool-go/models"
	"confidence-pool-go/services"
)

// UserContextKey is the key used to store user in request context
type UserContextKey string

const UserKey UserContextKey = "user"

// AuthMiddleware handles JWT authentication
type AuthMiddleware struct {
	authService *services.AuthService
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(authService *services.AuthService) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
	}
}

// RequireAuth middleware that requires authentication
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := m.getUserFromRequest(r)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), UserKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin middleware that requires an authenticated admin
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return m.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := GetUserFromContext(r)
		if user == nil || !user.IsAdmin {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	}))
}

// getUserFromRequest extracts and validates user from request
func (m *AuthMiddleware) getUserFromRequest(r *http.Request) (*models.User, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		// Expected format: "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return m.authService.GetUserFromToken(r.Context(), parts[1])
		}
	}

	cookie, err := r.Cookie("auth_token")
	if err == nil && cookie.Value != "" {
		return m.authService.GetUserFromToken(r.Context(), cookie.Value)
	}

	return nil, http.ErrNoCookie
}

// GetUserFromContext retrieves the authenticated user from request context
func GetUserFromContext(r *http.Request) *models.User {
	if user, ok := r.Context().Value(UserKey).(*models.User); ok {
		return user
	}
	return nil
}

// IsAuthenticated checks if the request has an authenticated user
func IsAuthenticated(r *http.Request) bool {
	return GetUserFromContext(r) != nil
}
