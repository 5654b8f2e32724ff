package store

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamesbago101/promo-back/internal/model"
)

// testDB creates a temporary migrated test database.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	f, err := os.CreateTemp("", "promo-test-*.db")
	require.NoError(t, err)
	dbPath := f.Name()
	require.NoError(t, f.Close())

	db, err := NewDB(dbPath)
	require.NoError(t, err)

	require.NoError(t, Migrate(db))

	t.Cleanup(func() {
		_ = db.Close()
		_ = os.Remove(dbPath)
	})

	return db
}

func TestSeed(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	require.NoError(t, Seed(ctx, db, "seed-password"))

	q := New(db)
	admin, err := q.GetUserByUsername(ctx, DefaultAdminUsername)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, admin.Role)
	assert.NotEmpty(t, admin.PasswordHash)

	video, err := q.GetYoutubeVideo(ctx)
	require.NoError(t, err)
	assert.Equal(t, DefaultYoutubeVideoID, video.VideoID)

	// Seeding again must be a no-op.
	require.NoError(t, Seed(ctx, db, "different-password"))
	again, err := q.GetUserByUsername(ctx, DefaultAdminUsername)
	require.NoError(t, err)
	assert.Equal(t, admin.PasswordHash, again.PasswordHash)
}

func TestSeedRestoresAdminRole(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	q := New(db)

	require.NoError(t, Seed(ctx, db, "seed-password"))

	admin, err := q.GetUserByUsername(ctx, DefaultAdminUsername)
	require.NoError(t, err)
	require.NoError(t, q.UpdateUserRole(ctx, admin.ID, model.RoleEditor, time.Now()))

	require.NoError(t, Seed(ctx, db, "seed-password"))
	admin, err = q.GetUserByUsername(ctx, DefaultAdminUsername)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, admin.Role)
}

func TestNewsCRUD(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	q := New(db)

	now := time.Now()
	link := "https://example.com/article"
	created, err := q.CreateNews(ctx, CreateNewsParams{
		Date:      "2026-08-01",
		Timezone:  model.DefaultTimezone,
		Category:  "Announcements",
		Title:     "Launch",
		Excerpt:   "We are live.",
		Link:      &link,
		Featured:  true,
		CreatedAt: now,
		UpdatedAt: now,
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.True(t, created.Featured)
	require.NotNil(t, created.Link)
	assert.Equal(t, link, *created.Link)

	updated, err := q.UpdateNews(ctx, UpdateNewsParams{
		ID:        created.ID,
		Date:      "2026-08-02",
		Timezone:  created.Timezone,
		Category:  created.Category,
		Title:     "Launch (updated)",
		Excerpt:   created.Excerpt,
		Link:      nil,
		Featured:  false,
		UpdatedAt: time.Now(),
	})
	require.NoError(t, err)
	assert.Equal(t, "Launch (updated)", updated.Title)
	assert.Nil(t, updated.Link)

	require.NoError(t, q.DeleteNews(ctx, created.ID))
	_, err = q.GetNews(ctx, created.ID)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestCategoryRenameCascade(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	q := New(db)
	now := time.Now()

	cat, err := q.CreateCategory(ctx, NewsTaxonomy, "Events", now)
	require.NoError(t, err)

	for _, title := range []string{"one", "two"} {
		_, err := q.CreateNews(ctx, CreateNewsParams{
			Date: "2026-01-01", Timezone: model.DefaultTimezone,
			Category: "Events", Title: title, Excerpt: "x",
			CreatedAt: now, UpdatedAt: now,
		})
		require.NoError(t, err)
	}

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	qtx := q.WithTx(tx)
	require.NoError(t, qtx.RenameCategory(ctx, NewsTaxonomy, cat.ID, "Happenings"))
	require.NoError(t, qtx.CascadeCategoryRename(ctx, NewsTaxonomy, "Events", "Happenings"))
	require.NoError(t, tx.Commit())

	count, err := q.CountCategoryUsage(ctx, NewsTaxonomy, "Happenings")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	count, err = q.CountCategoryUsage(ctx, NewsTaxonomy, "Events")
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestCategoryRenameRollback(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	q := New(db)
	now := time.Now()

	cat, err := q.CreateCategory(ctx, ArtTaxonomy, "Fanart", now)
	require.NoError(t, err)

	_, err = q.CreateCommunityArt(ctx, CreateCommunityArtParams{
		Image: "assets/community_art/a.png", Category: "Fanart", Artist: "Jane",
		CreatedAt: now, UpdatedAt: now,
	})
	require.NoError(t, err)

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	qtx := q.WithTx(tx)
	require.NoError(t, qtx.RenameCategory(ctx, ArtTaxonomy, cat.ID, "Sketches"))
	require.NoError(t, qtx.CascadeCategoryRename(ctx, ArtTaxonomy, "Fanart", "Sketches"))
	require.NoError(t, tx.Rollback())

	// Rollback must leave both the category and the dependents untouched.
	got, err := q.GetCategory(ctx, ArtTaxonomy, cat.ID)
	require.NoError(t, err)
	assert.Equal(t, "Fanart", got.Name)

	count, err := q.CountCategoryUsage(ctx, ArtTaxonomy, "Fanart")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestUsernameExists(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	q := New(db)
	now := time.Now()

	u, err := q.CreateUser(ctx, CreateUserParams{
		Username: "editor", PasswordHash: "h", Role: model.RoleEditor,
		CreatedAt: now, UpdatedAt: now,
	})
	require.NoError(t, err)

	exists, err := q.UsernameExists(ctx, "editor", 0)
	require.NoError(t, err)
	assert.True(t, exists)

	// The user itself is excluded when checking for rename conflicts.
	exists, err = q.UsernameExists(ctx, "editor", u.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCleanupAudit(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	q := New(db)

	err := q.InsertCleanupAudit(ctx, InsertCleanupAuditParams{
		ImagePath: "assets/community_art/old.png",
		Backend:   "FTP",
		Reason:    "connection refused",
		CreatedAt: time.Now(),
	})
	require.NoError(t, err)

	entries, err := q.ListCleanupAudit(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "FTP", entries[0].Backend)
	assert.Equal(t, "assets/community_art/old.png", entries[0].ImagePath)
}
