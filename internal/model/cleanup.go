package model

import "time"

// CleanupAudit records a failed best-effort asset deletion. Record and asset
// lifecycles are deliberately non-transactional, so failures are audited
// instead of rolled back.
type CleanupAudit struct {
	ID        int64     `json:"id"`
	ImagePath string    `json:"image_path"`
	Backend   string    `json:"backend"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}
