package api

import (
	"database/sql"
	"errors"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/jamesbago101/promo-back/internal/model"
)

// The accepted YouTube URL shapes, tried in order.
var youtubeURLPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/)([^&\n?#]+)`),
	regexp.MustCompile(`youtube\.com/v/([^&\n?#]+)`),
	regexp.MustCompile(`youtube\.com/.*[?&]v=([^&\n?#]+)`),
}

var bareVideoID = regexp.MustCompile(`^[a-zA-Z0-9_-]{11}$`)

// extractVideoID pulls the canonical video id out of a YouTube URL, or
// accepts a bare 11-character id. Returns "" when nothing matches.
func extractVideoID(url string) string {
	url = strings.TrimSpace(url)
	if url == "" {
		return ""
	}

	for _, pattern := range youtubeURLPatterns {
		if m := pattern.FindStringSubmatch(url); m != nil && m[1] != "" {
			return m[1]
		}
	}

	if bareVideoID.MatchString(url) {
		return url
	}
	return ""
}

type youtubeRequest struct {
	VideoURL string `json:"video_url"`
}

// GetYoutubeVideo handles GET /youtube-video.
func (h *Handler) GetYoutubeVideo(w http.ResponseWriter, r *http.Request) {
	video, err := h.queries.GetYoutubeVideo(r.Context())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteError(w, http.StatusNotFound, "YouTube video not found")
			return
		}
		writeInternalError(w, "fetching youtube video", err)
		return
	}
	WriteJSON(w, http.StatusOK, video)
}

// UpdateYoutubeVideo handles PUT /youtube-video. The singleton row is only
// ever updated, never created here.
func (h *Handler) UpdateYoutubeVideo(w http.ResponseWriter, r *http.Request) {
	var req youtubeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.VideoURL == "" {
		WriteError(w, http.StatusBadRequest, "Video URL is required")
		return
	}

	videoID := extractVideoID(req.VideoURL)
	if videoID == "" {
		WriteError(w, http.StatusBadRequest, "Invalid YouTube URL. Please provide a valid YouTube video URL.")
		return
	}

	if err := h.queries.UpdateYoutubeVideo(r.Context(), videoID, req.VideoURL, time.Now().UTC()); err != nil {
		writeInternalError(w, "updating youtube video", err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"id":        model.YoutubeVideoID,
		"video_id":  videoID,
		"video_url": req.VideoURL,
		"message":   "YouTube video updated successfully",
	})
}
