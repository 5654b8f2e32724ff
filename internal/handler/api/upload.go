package api

import (
	"errors"
	"net/http"

	"github.com/jamesbago101/promo-back/internal/service"
)

// uploadResponse is the payload returned for a stored asset.
type uploadResponse struct {
	Success     bool   `json:"success"`
	Path        string `json:"path"`
	Filename    string `json:"filename"`
	Size        int64  `json:"size"`
	Width       int    `json:"width,omitempty"`
	Height      int    `json:"height,omitempty"`
	UploadedVia string `json:"uploadedVia"`
}

// UploadCommunityArt handles POST /upload/community-art: a multipart form
// with the file in field "image" plus artist and category fields used for
// the generated filename.
func (h *Handler) UploadCommunityArt(w http.ResponseWriter, r *http.Request) {
	// Bound the multipart read a bit above the per-file limit so the size
	// check in the asset service produces the client-facing error.
	r.Body = http.MaxBytesReader(w, r.Body, h.assets.MaxSize()+1024*1024)

	file, header, err := r.FormFile("image")
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			WriteError(w, http.StatusBadRequest, "File too large. Maximum size is 5MB.")
			return
		}
		WriteError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer func() { _ = file.Close() }()

	artist := r.FormValue("artist")
	category := r.FormValue("category")

	result, err := h.assets.Upload(r.Context(), file, header, artist, category)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFileTooLarge):
			WriteError(w, http.StatusBadRequest, "File too large. Maximum size is 5MB.")
		case errors.Is(err, service.ErrNotImage):
			WriteError(w, http.StatusBadRequest, "Only image files are allowed!")
		default:
			// Storage failures surface with the underlying message; the
			// staged local copy is retained for diagnosis.
			WriteError(w, http.StatusInternalServerError, "Upload failed: "+err.Error())
		}
		return
	}

	WriteJSON(w, http.StatusOK, uploadResponse{
		Success:     true,
		Path:        result.Path,
		Filename:    result.Filename,
		Size:        result.Size,
		Width:       result.Width,
		Height:      result.Height,
		UploadedVia: result.UploadedVia,
	})
}
