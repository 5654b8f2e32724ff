package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	_ "modernc.org/sqlite"

	"github.com/jamesbago101/promo-back/internal/auth"
	"github.com/jamesbago101/promo-back/internal/middleware"
	"github.com/jamesbago101/promo-back/internal/model"
	"github.com/jamesbago101/promo-back/internal/service"
	"github.com/jamesbago101/promo-back/internal/storage"
	"github.com/jamesbago101/promo-back/internal/store"
)

const testJWTSecret = "test-secret-key-with-enough-length"

// testDB creates an in-memory SQLite database with the full schema.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	schema := `
		CREATE TABLE news (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			date TEXT NOT NULL,
			timezone TEXT NOT NULL DEFAULT '(UTC)',
			category TEXT NOT NULL,
			title TEXT NOT NULL,
			excerpt TEXT NOT NULL,
			link TEXT,
			featured BOOLEAN NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		);

		CREATE TABLE community_arts (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			image TEXT NOT NULL,
			title TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL,
			artist TEXT NOT NULL,
			x_handle TEXT,
			x_url TEXT,
			description TEXT,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		);

		CREATE TABLE admin_users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			user_role TEXT NOT NULL CHECK (user_role IN ('Admin', 'Editor')),
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		);

		CREATE TABLE news_categories (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE,
			created_at DATETIME NOT NULL
		);

		CREATE TABLE art_categories (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE,
			created_at DATETIME NOT NULL
		);

		CREATE TABLE youtube_video (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			video_id TEXT NOT NULL,
			video_url TEXT NOT NULL,
			updated_at DATETIME NOT NULL
		);

		CREATE TABLE cleanup_audit (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			image_path TEXT NOT NULL,
			backend TEXT NOT NULL,
			reason TEXT NOT NULL,
			created_at DATETIME NOT NULL
		);
	`

	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("failed to create test schema: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Close()
	})

	return db
}

// testEnv bundles everything a handler test needs.
type testEnv struct {
	db      *sql.DB
	queries *store.Queries
	handler *Handler
	router  chi.Router
	tokens  *auth.TokenService
	backend *storage.Local
}

// testSetup builds the full API router over an in-memory database and a
// local storage backend rooted in a temp directory.
func testSetup(t *testing.T) *testEnv {
	t.Helper()

	db := testDB(t)
	tokens := auth.NewTokenService(testJWTSecret, 0)
	backend := storage.NewLocal(t.TempDir())
	assets := service.NewAssetService(backend, store.New(db), 0)
	h := NewHandler(db, tokens, assets)

	// A limiter far above anything a test will hit.
	rl := middleware.NewRateLimiter(100000, time.Minute)
	router := h.Routes(rl, []string{"*"})

	return &testEnv{
		db:      db,
		queries: store.New(db),
		handler: h,
		router:  router,
		tokens:  tokens,
		backend: backend,
	}
}

// createTestUser inserts a user and returns it with its bearer token.
func (e *testEnv) createTestUser(t *testing.T, username, password, role string) (model.AdminUser, string) {
	t.Helper()

	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	now := time.Now().UTC()
	user, err := e.queries.CreateUser(context.Background(), store.CreateUserParams{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}

	token, err := e.tokens.Issue(user.ID, user.Username, user.Role)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	return user, token
}

// do issues a request against the full router. A non-empty token is sent as
// a bearer Authorization header.
func (e *testEnv) do(t *testing.T, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// decodeBody unmarshals a JSON response body into dst.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
}
