package api

import "net/http"

// ListCleanupAudit handles GET /cleanup-audit: the record of asset deletions
// that failed and may need manual cleanup. Admin only.
func (h *Handler) ListCleanupAudit(w http.ResponseWriter, r *http.Request) {
	entries, err := h.queries.ListCleanupAudit(r.Context())
	if err != nil {
		writeInternalError(w, "listing cleanup audit", err)
		return
	}
	WriteJSON(w, http.StatusOK, entries)
}
