// internal/api/middleware.go
package api

import (
	"context"
	"net/http"
	"strings"

	"papertrade/internal/lib/jwt"
)

type contextKey string

// userIDKey is the request-context key under which the authenticated user's
// id is stored. The acting user is always explicit context, never a global.
const userIDKey contextKey = "user_id"

// UserIDFromContext extracts the authenticated user id set by Authenticate.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

// Authenticate verifies the bearer token and injects the user id into the
// request context. Engine endpoints are only reachable through this.
func Authenticate(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				http.Error(w, "missing authorization token", http.StatusUnauthorized)
				return
			}

			parts := strings.Split(header, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				http.Error(w, "malformed authorization header", http.StatusUnauthorized)
				return
			}

			userID, err := jwt.ParseUserID(parts[1], jwtSecret)
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userIDKey, userID)))
		})
	}
}
