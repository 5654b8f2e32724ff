package store

import (
	"context"
	"time"

	"github.com/jamesbago101/promo-back/internal/model"
)

// InsertCleanupAuditParams describes a failed best-effort asset deletion.
type InsertCleanupAuditParams struct {
	ImagePath string
	Backend   string
	Reason    string
	CreatedAt time.Time
}

// InsertCleanupAudit records a failed asset cleanup for later inspection.
func (q *Queries) InsertCleanupAudit(ctx context.Context, arg InsertCleanupAuditParams) error {
	_, err := q.db.ExecContext(ctx,
		"INSERT INTO cleanup_audit (image_path, backend, reason, created_at) VALUES (?, ?, ?, ?)",
		arg.ImagePath, arg.Backend, arg.Reason, arg.CreatedAt)
	return err
}

// ListCleanupAudit returns all recorded cleanup failures, newest first.
func (q *Queries) ListCleanupAudit(ctx context.Context) ([]model.CleanupAudit, error) {
	rows, err := q.db.QueryContext(ctx,
		"SELECT id, image_path, backend, reason, created_at FROM cleanup_audit ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []model.CleanupAudit{}
	for rows.Next() {
		var e model.CleanupAudit
		if err := rows.Scan(&e.ID, &e.ImagePath, &e.Backend, &e.Reason, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
