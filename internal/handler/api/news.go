package api

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/jamesbago101/promo-back/internal/model"
	"github.com/jamesbago101/promo-back/internal/store"
)

// newsDateLayout is the wire format for news dates.
const newsDateLayout = "2006-01-02"

// formatNewsDate renders a stored YYYY-MM-DD date as a display string like
// "January 02, 2006". Unparseable values pass through unchanged.
func formatNewsDate(date string) string {
	t, err := time.Parse(newsDateLayout, date)
	if err != nil {
		return date
	}
	return t.Format("January 02, 2006")
}

type newsRequest struct {
	Date     string  `json:"date"`
	Timezone string  `json:"timezone"`
	Category string  `json:"category"`
	Title    string  `json:"title"`
	Excerpt  string  `json:"excerpt"`
	Link     *string `json:"link"`
	Featured bool    `json:"featured"`
}

// newsDetail augments a news item with the display-formatted date while
// keeping the raw date editable.
type newsDetail struct {
	model.NewsItem
	DateFormatted string `json:"dateFormatted"`
}

// ListNews handles GET /news. Dates are returned display-formatted.
func (h *Handler) ListNews(w http.ResponseWriter, r *http.Request) {
	items, err := h.queries.ListNews(r.Context())
	if err != nil {
		writeInternalError(w, "listing news", err)
		return
	}

	for i := range items {
		items[i].Date = formatNewsDate(items[i].Date)
	}
	WriteJSON(w, http.StatusOK, items)
}

// GetNews handles GET /news/{id}. Returns both the raw and the formatted
// date so edit forms keep the machine-readable value.
func (h *Handler) GetNews(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	item, err := h.queries.GetNews(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteError(w, http.StatusNotFound, "News item not found")
			return
		}
		writeInternalError(w, "fetching news item", err)
		return
	}

	WriteJSON(w, http.StatusOK, newsDetail{
		NewsItem:      item,
		DateFormatted: formatNewsDate(item.Date),
	})
}

// CreateNews handles POST /news.
func (h *Handler) CreateNews(w http.ResponseWriter, r *http.Request) {
	var req newsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.Date == "" || req.Category == "" || req.Title == "" || req.Excerpt == "" {
		WriteError(w, http.StatusBadRequest, "Missing required fields")
		return
	}
	if req.Timezone == "" {
		req.Timezone = model.DefaultTimezone
	}

	now := time.Now().UTC()
	item, err := h.queries.CreateNews(r.Context(), store.CreateNewsParams{
		Date:      req.Date,
		Timezone:  req.Timezone,
		Category:  req.Category,
		Title:     req.Title,
		Excerpt:   req.Excerpt,
		Link:      req.Link,
		Featured:  req.Featured,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		writeInternalError(w, "creating news item", err)
		return
	}

	WriteJSON(w, http.StatusCreated, item)
}

// UpdateNews handles PUT /news/{id}.
func (h *Handler) UpdateNews(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req newsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if _, err := h.queries.GetNews(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteError(w, http.StatusNotFound, "News item not found")
			return
		}
		writeInternalError(w, "fetching news item", err)
		return
	}

	if req.Timezone == "" {
		req.Timezone = model.DefaultTimezone
	}

	item, err := h.queries.UpdateNews(r.Context(), store.UpdateNewsParams{
		ID:        id,
		Date:      req.Date,
		Timezone:  req.Timezone,
		Category:  req.Category,
		Title:     req.Title,
		Excerpt:   req.Excerpt,
		Link:      req.Link,
		Featured:  req.Featured,
		UpdatedAt: time.Now().UTC(),
	})
	if err != nil {
		writeInternalError(w, "updating news item", err)
		return
	}

	WriteJSON(w, http.StatusOK, item)
}

// DeleteNews handles DELETE /news/{id}.
func (h *Handler) DeleteNews(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if _, err := h.queries.GetNews(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteError(w, http.StatusNotFound, "News item not found")
			return
		}
		writeInternalError(w, "fetching news item", err)
		return
	}

	if err := h.queries.DeleteNews(r.Context(), id); err != nil {
		writeInternalError(w, "deleting news item", err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "News item deleted successfully",
	})
}
