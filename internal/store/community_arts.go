package store

import (
	"context"
	"time"

	"github.com/jamesbago101/promo-back/internal/model"
)

const artColumns = "id, image, title, category, artist, x_handle, x_url, description, created_at, updated_at"

func scanArt(row interface{ Scan(...any) error }) (model.CommunityArt, error) {
	var a model.CommunityArt
	err := row.Scan(&a.ID, &a.Image, &a.Title, &a.Category, &a.Artist,
		&a.XHandle, &a.XURL, &a.Description, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

// ListCommunityArts returns all art items, newest first.
func (q *Queries) ListCommunityArts(ctx context.Context) ([]model.CommunityArt, error) {
	rows, err := q.db.QueryContext(ctx,
		"SELECT "+artColumns+" FROM community_arts ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []model.CommunityArt{}
	for rows.Next() {
		a, err := scanArt(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, rows.Err()
}

// GetCommunityArt returns a single art item by ID.
func (q *Queries) GetCommunityArt(ctx context.Context, id int64) (model.CommunityArt, error) {
	row := q.db.QueryRowContext(ctx,
		"SELECT "+artColumns+" FROM community_arts WHERE id = ?", id)
	return scanArt(row)
}

// CreateCommunityArtParams holds the fields for a new art item.
type CreateCommunityArtParams struct {
	Image       string
	Title       string
	Category    string
	Artist      string
	XHandle     *string
	XURL        *string
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateCommunityArt inserts an art item and returns the stored row.
func (q *Queries) CreateCommunityArt(ctx context.Context, arg CreateCommunityArtParams) (model.CommunityArt, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO community_arts (image, title, category, artist, x_handle, x_url, description, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		arg.Image, arg.Title, arg.Category, arg.Artist,
		arg.XHandle, arg.XURL, arg.Description, arg.CreatedAt, arg.UpdatedAt)
	if err != nil {
		return model.CommunityArt{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.CommunityArt{}, err
	}
	return q.GetCommunityArt(ctx, id)
}

// UpdateCommunityArtParams holds the full replacement state for an art item.
type UpdateCommunityArtParams struct {
	ID          int64
	Image       string
	Title       string
	Category    string
	Artist      string
	XHandle     *string
	XURL        *string
	Description *string
	UpdatedAt   time.Time
}

// UpdateCommunityArt replaces an art item's fields and returns the stored row.
func (q *Queries) UpdateCommunityArt(ctx context.Context, arg UpdateCommunityArtParams) (model.CommunityArt, error) {
	_, err := q.db.ExecContext(ctx,
		`UPDATE community_arts SET image = ?, title = ?, category = ?, artist = ?,
		 x_handle = ?, x_url = ?, description = ?, updated_at = ? WHERE id = ?`,
		arg.Image, arg.Title, arg.Category, arg.Artist,
		arg.XHandle, arg.XURL, arg.Description, arg.UpdatedAt, arg.ID)
	if err != nil {
		return model.CommunityArt{}, err
	}
	return q.GetCommunityArt(ctx, arg.ID)
}

// DeleteCommunityArt removes an art item.
func (q *Queries) DeleteCommunityArt(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, "DELETE FROM community_arts WHERE id = ?", id)
	return err
}
