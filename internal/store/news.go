package store

import (
	"context"
	"time"

	"github.com/jamesbago101/promo-back/internal/model"
)

const newsColumns = "id, date, timezone, category, title, excerpt, link, featured, created_at, updated_at"

func scanNews(row interface{ Scan(...any) error }) (model.NewsItem, error) {
	var n model.NewsItem
	err := row.Scan(&n.ID, &n.Date, &n.Timezone, &n.Category, &n.Title,
		&n.Excerpt, &n.Link, &n.Featured, &n.CreatedAt, &n.UpdatedAt)
	return n, err
}

// ListNews returns all news items, newest first.
func (q *Queries) ListNews(ctx context.Context) ([]model.NewsItem, error) {
	rows, err := q.db.QueryContext(ctx,
		"SELECT "+newsColumns+" FROM news ORDER BY date DESC, created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []model.NewsItem{}
	for rows.Next() {
		n, err := scanNews(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, n)
	}
	return items, rows.Err()
}

// GetNews returns a single news item by ID.
func (q *Queries) GetNews(ctx context.Context, id int64) (model.NewsItem, error) {
	row := q.db.QueryRowContext(ctx,
		"SELECT "+newsColumns+" FROM news WHERE id = ?", id)
	return scanNews(row)
}

// CreateNewsParams holds the fields for a new news item.
type CreateNewsParams struct {
	Date      string
	Timezone  string
	Category  string
	Title     string
	Excerpt   string
	Link      *string
	Featured  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateNews inserts a news item and returns the stored row.
func (q *Queries) CreateNews(ctx context.Context, arg CreateNewsParams) (model.NewsItem, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO news (date, timezone, category, title, excerpt, link, featured, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		arg.Date, arg.Timezone, arg.Category, arg.Title, arg.Excerpt,
		arg.Link, arg.Featured, arg.CreatedAt, arg.UpdatedAt)
	if err != nil {
		return model.NewsItem{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.NewsItem{}, err
	}
	return q.GetNews(ctx, id)
}

// UpdateNewsParams holds the full replacement state for a news item.
type UpdateNewsParams struct {
	ID        int64
	Date      string
	Timezone  string
	Category  string
	Title     string
	Excerpt   string
	Link      *string
	Featured  bool
	UpdatedAt time.Time
}

// UpdateNews replaces a news item's fields and returns the stored row.
func (q *Queries) UpdateNews(ctx context.Context, arg UpdateNewsParams) (model.NewsItem, error) {
	_, err := q.db.ExecContext(ctx,
		`UPDATE news SET date = ?, timezone = ?, category = ?, title = ?,
		 excerpt = ?, link = ?, featured = ?, updated_at = ? WHERE id = ?`,
		arg.Date, arg.Timezone, arg.Category, arg.Title, arg.Excerpt,
		arg.Link, arg.Featured, arg.UpdatedAt, arg.ID)
	if err != nil {
		return model.NewsItem{}, err
	}
	return q.GetNews(ctx, arg.ID)
}

// DeleteNews removes a news item.
func (q *Queries) DeleteNews(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, "DELETE FROM news WHERE id = ?", id)
	return err
}
