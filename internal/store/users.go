package store

import (
	"context"
	"time"

	"github.com/jamesbago101/promo-back/internal/model"
)

const userColumns = "id, username, password_hash, user_role, created_at, updated_at"

func scanUser(row interface{ Scan(...any) error }) (model.AdminUser, error) {
	var u model.AdminUser
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// ListUsers returns all admin users, newest first.
func (q *Queries) ListUsers(ctx context.Context) ([]model.AdminUser, error) {
	rows, err := q.db.QueryContext(ctx,
		"SELECT "+userColumns+" FROM admin_users ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []model.AdminUser{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// GetUserByID returns a user by primary key.
func (q *Queries) GetUserByID(ctx context.Context, id int64) (model.AdminUser, error) {
	row := q.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM admin_users WHERE id = ?", id)
	return scanUser(row)
}

// GetUserByUsername returns a user by username.
func (q *Queries) GetUserByUsername(ctx context.Context, username string) (model.AdminUser, error) {
	row := q.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM admin_users WHERE username = ?", username)
	return scanUser(row)
}

// CountUsersByRole returns the number of users holding the given role.
func (q *Queries) CountUsersByRole(ctx context.Context, role string) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM admin_users WHERE user_role = ?", role).Scan(&count)
	return count, err
}

// UsernameExists reports whether another user (excluding excludeID) already
// holds the given username. Pass excludeID 0 to check all users.
func (q *Queries) UsernameExists(ctx context.Context, username string, excludeID int64) (bool, error) {
	var count int64
	err := q.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM admin_users WHERE username = ? AND id != ?",
		username, excludeID).Scan(&count)
	return count > 0, err
}

// CreateUserParams holds the fields for a new admin user.
type CreateUserParams struct {
	Username     string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CreateUser inserts an admin user and returns the stored row.
func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (model.AdminUser, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO admin_users (username, password_hash, user_role, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		arg.Username, arg.PasswordHash, arg.Role, arg.CreatedAt, arg.UpdatedAt)
	if err != nil {
		return model.AdminUser{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.AdminUser{}, err
	}
	return q.GetUserByID(ctx, id)
}

// UpdateUserParams holds the full replacement state for an admin user.
type UpdateUserParams struct {
	ID           int64
	Username     string
	PasswordHash string
	Role         string
	UpdatedAt    time.Time
}

// UpdateUser replaces a user's fields.
func (q *Queries) UpdateUser(ctx context.Context, arg UpdateUserParams) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE admin_users SET username = ?, password_hash = ?, user_role = ?, updated_at = ?
		 WHERE id = ?`,
		arg.Username, arg.PasswordHash, arg.Role, arg.UpdatedAt, arg.ID)
	return err
}

// UpdateUserRole changes only a user's role.
func (q *Queries) UpdateUserRole(ctx context.Context, id int64, role string, updatedAt time.Time) error {
	_, err := q.db.ExecContext(ctx,
		"UPDATE admin_users SET user_role = ?, updated_at = ? WHERE id = ?",
		role, updatedAt, id)
	return err
}

// DeleteUser removes an admin user.
func (q *Queries) DeleteUser(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, "DELETE FROM admin_users WHERE id = ?", id)
	return err
}
