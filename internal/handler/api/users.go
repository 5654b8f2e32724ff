package api

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/jamesbago101/promo-back/internal/auth"
	"github.com/jamesbago101/promo-back/internal/middleware"
	"github.com/jamesbago101/promo-back/internal/model"
	"github.com/jamesbago101/promo-back/internal/store"
)

// User routes are mounted behind the Admin gate, so handlers here can assume
// the caller's current role is Admin.

type createUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"user_role"`
}

type updateUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"user_role"`
}

// ListUsers handles GET /users.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.queries.ListUsers(r.Context())
	if err != nil {
		writeInternalError(w, "listing users", err)
		return
	}
	WriteJSON(w, http.StatusOK, users)
}

// GetUser handles GET /users/{id}.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	user, err := h.queries.GetUserByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteError(w, http.StatusNotFound, "User not found")
			return
		}
		writeInternalError(w, "fetching user", err)
		return
	}
	WriteJSON(w, http.StatusOK, user)
}

// CreateUser handles POST /users.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.Username == "" || req.Password == "" {
		WriteError(w, http.StatusBadRequest, "Username and password are required")
		return
	}
	if !model.ValidRole(req.Role) {
		WriteError(w, http.StatusBadRequest, "Valid user_role (Admin or Editor) is required")
		return
	}

	exists, err := h.queries.UsernameExists(r.Context(), req.Username, 0)
	if err != nil {
		writeInternalError(w, "checking username", err)
		return
	}
	if exists {
		WriteError(w, http.StatusConflict, "Username already exists")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		writeInternalError(w, "hashing password", err)
		return
	}

	now := time.Now().UTC()
	user, err := h.queries.CreateUser(r.Context(), store.CreateUserParams{
		Username:     req.Username,
		PasswordHash: hash,
		Role:         req.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		writeInternalError(w, "creating user", err)
		return
	}

	WriteJSON(w, http.StatusCreated, user)
}

// UpdateUser handles PUT /users/{id}. All fields are optional; only the
// provided ones change. Demoting the sole remaining Admin is rejected.
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req updateUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	existing, err := h.queries.GetUserByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteError(w, http.StatusNotFound, "User not found")
			return
		}
		writeInternalError(w, "fetching user", err)
		return
	}

	changed := false
	updated := store.UpdateUserParams{
		ID:           id,
		Username:     existing.Username,
		PasswordHash: existing.PasswordHash,
		Role:         existing.Role,
		UpdatedAt:    time.Now().UTC(),
	}

	if req.Username != "" && req.Username != existing.Username {
		duplicate, err := h.queries.UsernameExists(r.Context(), req.Username, id)
		if err != nil {
			writeInternalError(w, "checking username", err)
			return
		}
		if duplicate {
			WriteError(w, http.StatusConflict, "Username already exists")
			return
		}
		updated.Username = req.Username
		changed = true
	}

	if req.Password != "" {
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			writeInternalError(w, "hashing password", err)
			return
		}
		updated.PasswordHash = hash
		changed = true
	}

	if req.Role != "" && model.ValidRole(req.Role) {
		if req.Role != model.RoleAdmin && existing.Role == model.RoleAdmin {
			admins, err := h.queries.CountUsersByRole(r.Context(), model.RoleAdmin)
			if err != nil {
				writeInternalError(w, "counting admins", err)
				return
			}
			if admins <= 1 {
				WriteError(w, http.StatusConflict,
					"Cannot change the role of the last remaining Admin user to Editor. At least one Admin user must exist in the system.")
				return
			}
		}
		updated.Role = req.Role
		changed = true
	}

	if !changed {
		WriteError(w, http.StatusBadRequest, "No valid fields to update")
		return
	}

	if err := h.queries.UpdateUser(r.Context(), updated); err != nil {
		writeInternalError(w, "updating user", err)
		return
	}

	user, err := h.queries.GetUserByID(r.Context(), id)
	if err != nil {
		writeInternalError(w, "fetching updated user", err)
		return
	}
	WriteJSON(w, http.StatusOK, user)
}

// DeleteUser handles DELETE /users/{id}. Self-deletion and deleting the last
// Admin are both rejected.
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	claims := middleware.GetClaims(r)
	if claims != nil && claims.UserID == id {
		WriteError(w, http.StatusConflict, "Cannot delete your own account")
		return
	}

	existing, err := h.queries.GetUserByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteError(w, http.StatusNotFound, "User not found")
			return
		}
		writeInternalError(w, "fetching user", err)
		return
	}

	if existing.Role == model.RoleAdmin {
		admins, err := h.queries.CountUsersByRole(r.Context(), model.RoleAdmin)
		if err != nil {
			writeInternalError(w, "counting admins", err)
			return
		}
		if admins <= 1 {
			WriteError(w, http.StatusConflict,
				"Cannot delete the last remaining Admin user. At least one Admin user must exist in the system.")
			return
		}
	}

	if err := h.queries.DeleteUser(r.Context(), id); err != nil {
		writeInternalError(w, "deleting user", err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "User deleted successfully",
	})
}
