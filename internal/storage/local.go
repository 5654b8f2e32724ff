package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Local stores files on local disk under a configured root directory.
type Local struct {
	dir string
}

// NewLocal creates a local-disk backend rooted at dir.
func NewLocal(dir string) *Local {
	return &Local{dir: dir}
}

// Name implements Storage.
func (l *Local) Name() string { return "local" }

// Save implements Storage.
func (l *Local) Save(_ context.Context, filename string, r io.Reader) error {
	if !ValidFilename(filename) {
		return fmt.Errorf("%w: %q", ErrInvalidFilename, filename)
	}

	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return fmt.Errorf("creating upload directory: %w", err)
	}

	path := filepath.Join(l.dir, filename)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return fmt.Errorf("writing file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing file: %w", err)
	}
	return nil
}

// Delete implements Storage.
func (l *Local) Delete(_ context.Context, filename string) error {
	if !ValidFilename(filename) {
		return fmt.Errorf("%w: %q", ErrInvalidFilename, filename)
	}

	err := os.Remove(filepath.Join(l.dir, filename))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Exists implements Storage.
func (l *Local) Exists(_ context.Context, filename string) (bool, error) {
	if !ValidFilename(filename) {
		return false, fmt.Errorf("%w: %q", ErrInvalidFilename, filename)
	}

	_, err := os.Stat(filepath.Join(l.dir, filename))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
