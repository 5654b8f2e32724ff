package api

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/jamesbago101/promo-back/internal/auth"
	"github.com/jamesbago101/promo-back/internal/middleware"
)

type verifyAccessRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userPayload struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// VerifyAccess handles POST /auth/verify-access: exchanges a username and
// password for a signed token.
func (h *Handler) VerifyAccess(w http.ResponseWriter, r *http.Request) {
	var req verifyAccessRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.Username == "" || req.Password == "" {
		WriteError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	user, err := h.queries.GetUserByUsername(r.Context(), req.Username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		writeInternalError(w, "looking up user for login", err)
		return
	}

	if !auth.CheckPassword(req.Password, user.PasswordHash) {
		WriteError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := h.tokens.Issue(user.ID, user.Username, user.Role)
	if err != nil {
		writeInternalError(w, "issuing token", err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"token":   token,
		"user": userPayload{
			ID:       user.ID,
			Username: user.Username,
			Role:     user.Role,
		},
	})
}

// Check handles GET /auth/check: validates the bearer token and returns the
// user's current identity. The role comes from the database, not the token,
// so a role change is visible without re-login.
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	token := middleware.BearerToken(r)
	if token == "" {
		WriteJSON(w, http.StatusUnauthorized, map[string]bool{"valid": false})
		return
	}

	claims, err := h.tokens.Verify(token)
	if err != nil {
		WriteJSON(w, http.StatusUnauthorized, map[string]bool{"valid": false})
		return
	}

	user, err := h.queries.GetUserByID(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteJSON(w, http.StatusUnauthorized, map[string]bool{"valid": false})
			return
		}
		writeInternalError(w, "looking up user for token check", err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"valid": true,
		"user": userPayload{
			ID:       user.ID,
			Username: user.Username,
			Role:     user.Role,
		},
	})
}
