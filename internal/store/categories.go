package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jamesbago101/promo-back/internal/model"
)

// Taxonomy names the pair of tables behind one category variant: the
// category table itself and the item table carrying the denormalized
// category string. There is deliberately no foreign key between them; rename
// cascades and delete guards are maintained in application code.
type Taxonomy struct {
	CategoryTable string
	ItemTable     string
}

// The two category variants.
var (
	NewsTaxonomy = Taxonomy{CategoryTable: "news_categories", ItemTable: "news"}
	ArtTaxonomy  = Taxonomy{CategoryTable: "art_categories", ItemTable: "community_arts"}
)

func scanCategory(row interface{ Scan(...any) error }) (model.Category, error) {
	var c model.Category
	err := row.Scan(&c.ID, &c.Name, &c.CreatedAt)
	return c, err
}

// ListCategories returns all categories of a taxonomy, ordered by name.
func (q *Queries) ListCategories(ctx context.Context, tax Taxonomy) ([]model.Category, error) {
	rows, err := q.db.QueryContext(ctx,
		fmt.Sprintf("SELECT id, name, created_at FROM %s ORDER BY name ASC", tax.CategoryTable))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []model.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// GetCategory returns a category by ID.
func (q *Queries) GetCategory(ctx context.Context, tax Taxonomy, id int64) (model.Category, error) {
	row := q.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT id, name, created_at FROM %s WHERE id = ?", tax.CategoryTable), id)
	return scanCategory(row)
}

// CategoryNameExists reports whether another category (excluding excludeID)
// already holds the given name. Pass excludeID 0 to check all rows.
func (q *Queries) CategoryNameExists(ctx context.Context, tax Taxonomy, name string, excludeID int64) (bool, error) {
	var count int64
	err := q.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE name = ? AND id != ?", tax.CategoryTable),
		name, excludeID).Scan(&count)
	return count > 0, err
}

// CreateCategory inserts a category and returns the stored row.
func (q *Queries) CreateCategory(ctx context.Context, tax Taxonomy, name string, createdAt time.Time) (model.Category, error) {
	res, err := q.db.ExecContext(ctx,
		fmt.Sprintf("INSERT INTO %s (name, created_at) VALUES (?, ?)", tax.CategoryTable),
		name, createdAt)
	if err != nil {
		return model.Category{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Category{}, err
	}
	return q.GetCategory(ctx, tax, id)
}

// RenameCategory changes a category's name. Callers must run this inside a
// transaction together with CascadeCategoryRename so the rename and the
// cascade succeed or fail together.
func (q *Queries) RenameCategory(ctx context.Context, tax Taxonomy, id int64, name string) error {
	_, err := q.db.ExecContext(ctx,
		fmt.Sprintf("UPDATE %s SET name = ? WHERE id = ?", tax.CategoryTable), name, id)
	return err
}

// CascadeCategoryRename rewrites the denormalized category string on every
// dependent item that still references the old name.
func (q *Queries) CascadeCategoryRename(ctx context.Context, tax Taxonomy, oldName, newName string) error {
	_, err := q.db.ExecContext(ctx,
		fmt.Sprintf("UPDATE %s SET category = ? WHERE category = ?", tax.ItemTable),
		newName, oldName)
	return err
}

// CountCategoryUsage returns how many items reference the category name.
func (q *Queries) CountCategoryUsage(ctx context.Context, tax Taxonomy, name string) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE category = ?", tax.ItemTable),
		name).Scan(&count)
	return count, err
}

// DeleteCategory removes a category.
func (q *Queries) DeleteCategory(ctx context.Context, tax Taxonomy, id int64) error {
	_, err := q.db.ExecContext(ctx,
		fmt.Sprintf("DELETE FROM %s WHERE id = ?", tax.CategoryTable), id)
	return err
}
