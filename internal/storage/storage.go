// Package storage abstracts where uploaded asset bytes physically live.
// Backends share one interface so the rest of the application only ever
// deals in bare filenames; the canonical relative path stored in the
// database stays backend-agnostic.
package storage

import (
	"context"
	"errors"
	"io"
	"strings"
)

// ErrInvalidFilename is returned for names that could escape the backend's
// root directory.
var ErrInvalidFilename = errors.New("invalid filename")

// Storage is a file storage backend. Filenames are bare names without any
// directory component; each backend qualifies them against its own root.
type Storage interface {
	// Name identifies the backend in responses and audit records.
	Name() string

	// Save writes the file bytes under the given filename.
	Save(ctx context.Context, filename string, r io.Reader) error

	// Delete removes the file. Deleting a file that does not exist is not
	// an error.
	Delete(ctx context.Context, filename string) error

	// Exists reports whether the file is present.
	Exists(ctx context.Context, filename string) (bool, error)
}

// ValidFilename reports whether name is a bare filename safe to pass to a
// backend: no path separators, no traversal, no control characters.
func ValidFilename(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	if strings.ContainsAny(name, "/\\\x00") {
		return false
	}
	for _, r := range name {
		if r < 32 {
			return false
		}
	}
	return true
}
