package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jamesbago101/promo-back/internal/auth"
	"github.com/jamesbago101/promo-back/internal/model"
)

// Default seed data.
const (
	DefaultAdminUsername = "admin"

	DefaultYoutubeVideoID  = "zlMFsDJNneE"
	DefaultYoutubeVideoURL = "https://www.youtube.com/watch?v=" + DefaultYoutubeVideoID
)

// Seed creates the initial data: the default admin account and the singleton
// YouTube video row. Safe to run on every startup.
func Seed(ctx context.Context, db *sql.DB, adminPassword string) error {
	queries := New(db)
	now := time.Now()

	user, err := queries.GetUserByUsername(ctx, DefaultAdminUsername)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		passwordHash, err := auth.HashPassword(adminPassword)
		if err != nil {
			return fmt.Errorf("hashing admin password: %w", err)
		}

		created, err := queries.CreateUser(ctx, CreateUserParams{
			Username:     DefaultAdminUsername,
			PasswordHash: passwordHash,
			Role:         model.RoleAdmin,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		if err != nil {
			return fmt.Errorf("creating admin user: %w", err)
		}
		slog.Info("created default admin user",
			"id", created.ID,
			"username", created.Username,
			"note", "change the password after first login",
		)
	case err != nil:
		return fmt.Errorf("checking for admin user: %w", err)
	default:
		// The bootstrap account must always hold the Admin role.
		if !user.IsAdmin() {
			if err := queries.UpdateUserRole(ctx, user.ID, model.RoleAdmin, now); err != nil {
				return fmt.Errorf("restoring admin role: %w", err)
			}
			slog.Info("restored Admin role on bootstrap account", "id", user.ID)
		}
	}

	_, err = queries.GetYoutubeVideo(ctx)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if err := queries.InsertYoutubeVideo(ctx, DefaultYoutubeVideoID, DefaultYoutubeVideoURL, now); err != nil {
			return fmt.Errorf("creating default youtube video: %w", err)
		}
		slog.Info("created default youtube video", "video_id", DefaultYoutubeVideoID)
	case err != nil:
		return fmt.Errorf("checking youtube video: %w", err)
	}

	return nil
}
