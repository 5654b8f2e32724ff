// Package model defines domain models and types used throughout the
// application: news items, community art, admin users, categories and the
// YouTube video setting.
package model

import "time"

// User roles. Role names are stored verbatim in the admin_users table.
const (
	RoleAdmin  = "Admin"
	RoleEditor = "Editor"
)

// AdminUser represents an account that can manage site content.
type AdminUser struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Never expose in JSON
	Role         string    `json:"user_role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsAdmin returns true if the user has the Admin role.
func (u *AdminUser) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// ValidRole reports whether role is one of the known user roles.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleEditor
}
