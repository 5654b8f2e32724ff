// Package api provides the REST API handlers for the Promotheans backend.
package api

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/jamesbago101/promo-back/internal/auth"
	"github.com/jamesbago101/promo-back/internal/service"
	"github.com/jamesbago101/promo-back/internal/store"
)

// Handler holds shared dependencies for all API handlers.
type Handler struct {
	db      *sql.DB
	queries *store.Queries
	tokens  *auth.TokenService
	assets  *service.AssetService
}

// NewHandler creates a new API handler.
func NewHandler(db *sql.DB, tokens *auth.TokenService, assets *service.AssetService) *Handler {
	return &Handler{
		db:      db,
		queries: store.New(db),
		tokens:  tokens,
		assets:  assets,
	}
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteError writes the standard error envelope.
func WriteError(w http.ResponseWriter, statusCode int, message string) {
	WriteJSON(w, statusCode, map[string]string{"error": message})
}

// writeInternalError logs the underlying error and returns a generic message
// so internal detail never leaks to the client.
func writeInternalError(w http.ResponseWriter, op string, err error) {
	slog.Error(op, "error", err)
	WriteError(w, http.StatusInternalServerError, "Internal server error")
}

// parseID extracts the numeric id URL parameter. Returns false after writing
// a 400 response when the parameter is not a valid integer.
func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		WriteError(w, http.StatusBadRequest, "Invalid id")
		return 0, false
	}
	return id, true
}

// decodeJSON decodes the request body into dst. Returns false after writing
// a 400 response on malformed JSON.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}
