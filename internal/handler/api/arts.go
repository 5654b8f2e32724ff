package api

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/jamesbago101/promo-back/internal/model"
	"github.com/jamesbago101/promo-back/internal/store"
)

type artRequest struct {
	Image       string  `json:"image"`
	Title       string  `json:"title"`
	Category    string  `json:"category"`
	Artist      string  `json:"artist"`
	XHandle     *string `json:"xHandle"`
	XURL        *string `json:"xUrl"`
	Description *string `json:"description"`
}

// cleanArt strips the legacy " ART" suffix from the artist field before the
// record leaves the API.
func cleanArt(a model.CommunityArt) model.CommunityArt {
	a.Artist = model.CleanArtistName(a.Artist)
	return a
}

// ListCommunityArts handles GET /community-arts.
func (h *Handler) ListCommunityArts(w http.ResponseWriter, r *http.Request) {
	items, err := h.queries.ListCommunityArts(r.Context())
	if err != nil {
		writeInternalError(w, "listing community arts", err)
		return
	}

	for i := range items {
		items[i] = cleanArt(items[i])
	}
	WriteJSON(w, http.StatusOK, items)
}

// GetCommunityArt handles GET /community-arts/{id}.
func (h *Handler) GetCommunityArt(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	item, err := h.queries.GetCommunityArt(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteError(w, http.StatusNotFound, "Art item not found")
			return
		}
		writeInternalError(w, "fetching art item", err)
		return
	}

	WriteJSON(w, http.StatusOK, cleanArt(item))
}

// CreateCommunityArt handles POST /community-arts. The image field must
// already hold a stored asset path from the upload endpoint.
func (h *Handler) CreateCommunityArt(w http.ResponseWriter, r *http.Request) {
	var req artRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.Image == "" || req.Category == "" || req.Artist == "" {
		WriteError(w, http.StatusBadRequest, "Missing required fields: image, category, artist")
		return
	}

	now := time.Now().UTC()
	item, err := h.queries.CreateCommunityArt(r.Context(), store.CreateCommunityArtParams{
		Image:       req.Image,
		Title:       req.Title,
		Category:    req.Category,
		Artist:      model.CleanArtistName(req.Artist),
		XHandle:     req.XHandle,
		XURL:        req.XURL,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		writeInternalError(w, "creating art item", err)
		return
	}

	WriteJSON(w, http.StatusCreated, cleanArt(item))
}

// UpdateCommunityArt handles PUT /community-arts/{id}. Replacing the image
// triggers best-effort deletion of the previous asset; a failed cleanup is
// logged and audited but never blocks the record update.
func (h *Handler) UpdateCommunityArt(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req artRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	existing, err := h.queries.GetCommunityArt(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteError(w, http.StatusNotFound, "Art item not found")
			return
		}
		writeInternalError(w, "fetching art item", err)
		return
	}

	if existing.Image != "" && req.Image != "" && existing.Image != req.Image {
		_ = h.assets.Remove(r.Context(), existing.Image)
	}

	item, err := h.queries.UpdateCommunityArt(r.Context(), store.UpdateCommunityArtParams{
		ID:          id,
		Image:       req.Image,
		Title:       req.Title,
		Category:    req.Category,
		Artist:      model.CleanArtistName(req.Artist),
		XHandle:     req.XHandle,
		XURL:        req.XURL,
		Description: req.Description,
		UpdatedAt:   time.Now().UTC(),
	})
	if err != nil {
		writeInternalError(w, "updating art item", err)
		return
	}

	WriteJSON(w, http.StatusOK, cleanArt(item))
}

// DeleteCommunityArt handles DELETE /community-arts/{id}. The record goes
// first; asset cleanup afterwards is best-effort.
func (h *Handler) DeleteCommunityArt(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	existing, err := h.queries.GetCommunityArt(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteError(w, http.StatusNotFound, "Art item not found")
			return
		}
		writeInternalError(w, "fetching art item", err)
		return
	}

	if err := h.queries.DeleteCommunityArt(r.Context(), id); err != nil {
		writeInternalError(w, "deleting art item", err)
		return
	}

	if existing.Image != "" {
		_ = h.assets.Remove(r.Context(), existing.Image)
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Art item and associated image deleted successfully",
	})
}
