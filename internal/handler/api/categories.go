package api

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/jamesbago101/promo-back/internal/store"
)

type categoryRequest struct {
	Name string `json:"name"`
}

// ListCategories returns a handler for GET on one taxonomy.
func (h *Handler) ListCategories(tax store.Taxonomy) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := h.queries.ListCategories(r.Context(), tax)
		if err != nil {
			writeInternalError(w, "listing categories", err)
			return
		}
		WriteJSON(w, http.StatusOK, categories)
	}
}

// GetCategory returns a handler for GET /{id} on one taxonomy.
func (h *Handler) GetCategory(tax store.Taxonomy) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, r)
		if !ok {
			return
		}

		category, err := h.queries.GetCategory(r.Context(), tax, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				WriteError(w, http.StatusNotFound, "Category not found")
				return
			}
			writeInternalError(w, "fetching category", err)
			return
		}
		WriteJSON(w, http.StatusOK, category)
	}
}

// CreateCategory returns a handler for POST on one taxonomy.
func (h *Handler) CreateCategory(tax store.Taxonomy) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req categoryRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		name := strings.TrimSpace(req.Name)
		if name == "" {
			WriteError(w, http.StatusBadRequest, "Category name is required")
			return
		}

		exists, err := h.queries.CategoryNameExists(r.Context(), tax, name, 0)
		if err != nil {
			writeInternalError(w, "checking category name", err)
			return
		}
		if exists {
			WriteError(w, http.StatusConflict, "Category already exists")
			return
		}

		category, err := h.queries.CreateCategory(r.Context(), tax, name, time.Now().UTC())
		if err != nil {
			writeInternalError(w, "creating category", err)
			return
		}
		WriteJSON(w, http.StatusCreated, category)
	}
}

// UpdateCategory returns a handler for PUT /{id} on one taxonomy. The rename
// and the cascade over dependent items run in one transaction so they
// succeed or fail together.
func (h *Handler) UpdateCategory(tax store.Taxonomy) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, r)
		if !ok {
			return
		}

		var req categoryRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		name := strings.TrimSpace(req.Name)
		if name == "" {
			WriteError(w, http.StatusBadRequest, "Category name is required")
			return
		}

		existing, err := h.queries.GetCategory(r.Context(), tax, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				WriteError(w, http.StatusNotFound, "Category not found")
				return
			}
			writeInternalError(w, "fetching category", err)
			return
		}

		duplicate, err := h.queries.CategoryNameExists(r.Context(), tax, name, id)
		if err != nil {
			writeInternalError(w, "checking category name", err)
			return
		}
		if duplicate {
			WriteError(w, http.StatusConflict, "Category name already exists")
			return
		}

		tx, err := h.db.BeginTx(r.Context(), nil)
		if err != nil {
			writeInternalError(w, "starting rename transaction", err)
			return
		}
		defer func() { _ = tx.Rollback() }()

		qtx := h.queries.WithTx(tx)
		if err := qtx.RenameCategory(r.Context(), tax, id, name); err != nil {
			writeInternalError(w, "renaming category", err)
			return
		}
		if err := qtx.CascadeCategoryRename(r.Context(), tax, existing.Name, name); err != nil {
			writeInternalError(w, "cascading category rename", err)
			return
		}
		if err := tx.Commit(); err != nil {
			writeInternalError(w, "committing rename transaction", err)
			return
		}

		category, err := h.queries.GetCategory(r.Context(), tax, id)
		if err != nil {
			writeInternalError(w, "fetching renamed category", err)
			return
		}
		WriteJSON(w, http.StatusOK, category)
	}
}

// DeleteCategory returns a handler for DELETE /{id} on one taxonomy. A
// category still referenced by items cannot be deleted; the response carries
// the usage count.
func (h *Handler) DeleteCategory(tax store.Taxonomy, inUseMessage string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, r)
		if !ok {
			return
		}

		existing, err := h.queries.GetCategory(r.Context(), tax, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				WriteError(w, http.StatusNotFound, "Category not found")
				return
			}
			writeInternalError(w, "fetching category", err)
			return
		}

		usage, err := h.queries.CountCategoryUsage(r.Context(), tax, existing.Name)
		if err != nil {
			writeInternalError(w, "counting category usage", err)
			return
		}
		if usage > 0 {
			WriteJSON(w, http.StatusConflict, map[string]any{
				"error":      inUseMessage,
				"usageCount": usage,
			})
			return
		}

		if err := h.queries.DeleteCategory(r.Context(), tax, id); err != nil {
			writeInternalError(w, "deleting category", err)
			return
		}

		WriteJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"message": "Category deleted successfully",
		})
	}
}
