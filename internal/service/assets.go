// Package service coordinates the lifecycle of uploaded assets: resolving
// filenames, writing bytes through the configured storage backend, and
// best-effort cleanup of replaced or orphaned files.
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/mozillazg/go-unidecode"

	"github.com/jamesbago101/promo-back/internal/storage"
	"github.com/jamesbago101/promo-back/internal/store"
)

// ArtAssetDir is the canonical relative directory stored in the database for
// community art images, regardless of which backend holds the bytes.
const ArtAssetDir = "assets/community_art"

// DefaultMaxUploadSize caps uploads at 5 MiB unless configured otherwise.
const DefaultMaxUploadSize = 5 * 1024 * 1024

// Filename component limits, applied after sanitizing.
const (
	artistPartLimit   = 30
	categoryPartLimit = 20
)

// Upload validation failures.
var (
	ErrFileTooLarge = errors.New("file too large")
	ErrNotImage     = errors.New("only image files are allowed")
)

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]`)

// SanitizeNamePart folds a form value to ASCII, lowercases it, replaces
// every non-alphanumeric character with an underscore and truncates to max.
func SanitizeNamePart(s string, max int) string {
	s = strings.ToLower(unidecode.Unidecode(s))
	s = nonAlphanumeric.ReplaceAllString(s, "_")
	if len(s) > max {
		s = s[:max]
	}
	return s
}

// MakeFilename builds the deterministic asset filename:
// sanitize(artist)[:30] + "_" + sanitize(category)[:20] + "_" + unix-millis +
// original extension. Absent fields default to "unknown" and "art".
func MakeFilename(artist, category, originalName string, ts time.Time) string {
	artist = strings.TrimSpace(artist)
	if artist == "" {
		artist = "unknown"
	}
	category = strings.TrimSpace(category)
	if category == "" {
		category = "art"
	}

	return fmt.Sprintf("%s_%s_%d%s",
		SanitizeNamePart(artist, artistPartLimit),
		SanitizeNamePart(category, categoryPartLimit),
		ts.UnixMilli(),
		path.Ext(originalName))
}

// ExtractFilename translates a stored relative path back to the bare
// filename a backend understands: the substring after the last
// "community_art/" segment, or the base name if no such segment exists.
func ExtractFilename(imagePath string) string {
	const marker = "community_art/"
	if idx := strings.LastIndex(imagePath, marker); idx >= 0 {
		return imagePath[idx+len(marker):]
	}
	return path.Base(imagePath)
}

// UploadResult describes a stored asset.
type UploadResult struct {
	// Path is the canonical relative path persisted in the database.
	Path     string
	Filename string
	Size     int64

	// Width and Height are best-effort image dimensions; zero when the
	// format could not be decoded.
	Width  int
	Height int

	// UploadedVia names the backend that holds the bytes.
	UploadedVia string
}

// AssetService resolves upload destinations and coordinates asset lifecycle
// with the database records referencing them.
type AssetService struct {
	storage storage.Storage
	queries *store.Queries
	maxSize int64
	now     func() time.Time
}

// NewAssetService creates an asset service over the given backend.
// A non-positive maxSize falls back to DefaultMaxUploadSize.
func NewAssetService(st storage.Storage, queries *store.Queries, maxSize int64) *AssetService {
	if maxSize <= 0 {
		maxSize = DefaultMaxUploadSize
	}
	return &AssetService{
		storage: st,
		queries: queries,
		maxSize: maxSize,
		now:     time.Now,
	}
}

// MaxSize returns the configured upload size limit in bytes.
func (s *AssetService) MaxSize() int64 { return s.maxSize }

// Upload validates the file and writes it through the storage backend.
// Returns ErrFileTooLarge or ErrNotImage for client mistakes; any other
// error is a storage failure.
func (s *AssetService) Upload(ctx context.Context, file multipart.File, header *multipart.FileHeader, artist, category string) (*UploadResult, error) {
	if header.Size > s.maxSize {
		return nil, fmt.Errorf("%w: %d bytes exceeds the %d byte limit", ErrFileTooLarge, header.Size, s.maxSize)
	}

	mimeType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, fmt.Errorf("%w: got %q", ErrNotImage, mimeType)
	}

	// Best-effort dimension probe; not all image formats decode.
	var width, height int
	if img, err := imaging.Decode(file); err == nil {
		bounds := img.Bounds()
		width, height = bounds.Dx(), bounds.Dy()
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewinding upload: %w", err)
	}

	filename := MakeFilename(artist, category, header.Filename, s.now())

	if err := s.storage.Save(ctx, filename, file); err != nil {
		return nil, fmt.Errorf("storing %q via %s: %w", filename, s.storage.Name(), err)
	}

	return &UploadResult{
		Path:        ArtAssetDir + "/" + filename,
		Filename:    filename,
		Size:        header.Size,
		Width:       width,
		Height:      height,
		UploadedVia: s.storage.Name(),
	}, nil
}

// Remove deletes the asset behind a stored relative path, best-effort. A
// failed deletion is logged and recorded in the cleanup audit; callers that
// must not block on cleanup ignore the returned error.
func (s *AssetService) Remove(ctx context.Context, imagePath string) error {
	if imagePath == "" {
		return nil
	}

	filename := ExtractFilename(imagePath)
	err := s.storage.Delete(ctx, filename)
	if err == nil {
		return nil
	}

	slog.Warn("asset cleanup failed",
		"image_path", imagePath,
		"backend", s.storage.Name(),
		"error", err,
	)
	if auditErr := s.queries.InsertCleanupAudit(ctx, store.InsertCleanupAuditParams{
		ImagePath: imagePath,
		Backend:   s.storage.Name(),
		Reason:    err.Error(),
		CreatedAt: s.now(),
	}); auditErr != nil {
		slog.Error("recording cleanup audit entry", "error", auditErr)
	}
	return err
}
