// Package middleware provides HTTP middleware for authentication,
// authorization, rate limiting and CORS handling.
package middleware

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/jamesbago101/promo-back/internal/auth"
	"github.com/jamesbago101/promo-back/internal/model"
	"github.com/jamesbago101/promo-back/internal/store"
)

// ContextKey is the type for request context keys set by this package.
type ContextKey string

// ContextKeyClaims is the context key holding the verified token claims.
const ContextKeyClaims ContextKey = "claims"

// WriteError writes the JSON error envelope used across the API.
func WriteError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header. Returns an empty string when the header is absent or malformed.
func BearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

// RequireAuth creates middleware that verifies the bearer token and stores
// its claims in the request context.
func RequireAuth(tokens *auth.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			if token == "" {
				WriteError(w, http.StatusUnauthorized, "No token provided")
				return
			}

			claims, err := tokens.Verify(token)
			if err != nil {
				WriteError(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyClaims, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetClaims retrieves the verified token claims from the request context.
// Returns nil if RequireAuth did not run for this request.
func GetClaims(r *http.Request) *auth.Claims {
	claims, ok := r.Context().Value(ContextKeyClaims).(*auth.Claims)
	if !ok {
		return nil
	}
	return claims
}

// RequireAdmin creates middleware that re-reads the authenticated user from
// the database and rejects the request unless their current role is Admin.
// The token's embedded role is deliberately not trusted, so a demotion takes
// effect on the next request even with an old token. Must run after
// RequireAuth.
func RequireAdmin(queries *store.Queries) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := GetClaims(r)
			if claims == nil {
				WriteError(w, http.StatusUnauthorized, "No token provided")
				return
			}

			user, err := queries.GetUserByID(r.Context(), claims.UserID)
			if err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					WriteError(w, http.StatusUnauthorized, "User not found")
					return
				}
				slog.Error("loading user for admin check", "user_id", claims.UserID, "error", err)
				WriteError(w, http.StatusInternalServerError, "Internal server error")
				return
			}

			if user.Role != model.RoleAdmin {
				WriteError(w, http.StatusForbidden, "Admin access required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
