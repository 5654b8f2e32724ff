// Command promoback runs the Promotheans content backend: a REST API for
// news, the community art gallery, categories, admin accounts and the
// featured YouTube video, with image uploads stored locally or mirrored to a
// remote FTP host.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/jamesbago101/promo-back/internal/auth"
	"github.com/jamesbago101/promo-back/internal/config"
	"github.com/jamesbago101/promo-back/internal/handler/api"
	"github.com/jamesbago101/promo-back/internal/middleware"
	"github.com/jamesbago101/promo-back/internal/service"
	"github.com/jamesbago101/promo-back/internal/storage"
	"github.com/jamesbago101/promo-back/internal/store"
)

func main() {
	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Setup logger
	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Ensure data directory exists
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	if err := store.Seed(context.Background(), db, cfg.AdminPassword); err != nil {
		return fmt.Errorf("seeding database: %w", err)
	}
	slog.Info("database ready")

	// Storage backend: local disk, or an FTP mirror staged through the
	// local uploads directory.
	var backend storage.Storage
	if cfg.UseFTP() {
		backend = storage.NewFTPMirror(storage.FTPConfig{
			Host:       cfg.FTPHost,
			User:       cfg.FTPUser,
			Password:   cfg.FTPPassword,
			Port:       cfg.FTPPort,
			Secure:     cfg.FTPSecure,
			RemoteDir:  cfg.FTPRemoteDir,
			StagingDir: cfg.UploadsDir,
		})
		slog.Info("asset storage: FTP mirror", "host", cfg.FTPHost, "remote_dir", cfg.FTPRemoteDir)
	} else {
		backend = storage.NewLocal(cfg.UploadsDir)
		slog.Info("asset storage: local disk", "dir", cfg.UploadsDir)
	}

	tokens := auth.NewTokenService(cfg.JWTSecret, auth.DefaultTokenTTL)
	assets := service.NewAssetService(backend, store.New(db), cfg.MaxUploadSize)
	handler := api.NewHandler(db, tokens, assets)

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitMax,
		time.Duration(cfg.RateLimitWindow)*time.Minute)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Mount("/api/v1", handler.Routes(rateLimiter, []string{cfg.FrontendURL}))

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second, // uploads and remote mirroring can be slow
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
