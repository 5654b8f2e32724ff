package storage

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/textproto"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jlaffaye/ftp"
)

// Default FTP ports: plain FTP and implicit FTPS.
const (
	ftpDefaultPort  = 21
	ftpsDefaultPort = 990

	ftpDialTimeout = 60 * time.Second
)

// FTPConfig holds the remote file host connection settings.
type FTPConfig struct {
	Host     string
	User     string
	Password string
	Port     int // 0 picks the default for the chosen mode
	Secure   bool

	// RemoteDir is the directory on the remote host holding the assets,
	// relative to the FTP root.
	RemoteDir string

	// StagingDir holds local copies while an upload is in flight. A failed
	// upload leaves its staging file in place so the failure is diagnosable.
	StagingDir string
}

// FTPMirror mirrors asset bytes to a remote FTP host. Uploads are staged on
// local disk first, copied to the remote host, and the staging copy removed
// on success.
type FTPMirror struct {
	cfg FTPConfig
}

// NewFTPMirror creates an FTP mirror backend.
func NewFTPMirror(cfg FTPConfig) *FTPMirror {
	if cfg.Port == 0 {
		if cfg.Secure {
			cfg.Port = ftpsDefaultPort
		} else {
			cfg.Port = ftpDefaultPort
		}
	}
	return &FTPMirror{cfg: cfg}
}

// Name implements Storage.
func (m *FTPMirror) Name() string { return "FTP" }

func (m *FTPMirror) connect(ctx context.Context) (*ftp.ServerConn, error) {
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)

	opts := []ftp.DialOption{
		ftp.DialWithContext(ctx),
		ftp.DialWithTimeout(ftpDialTimeout),
	}
	if m.cfg.Secure {
		opts = append(opts, ftp.DialWithTLS(&tls.Config{ServerName: m.cfg.Host}))
	}

	conn, err := ftp.Dial(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", addr, err)
	}

	if err := conn.Login(m.cfg.User, m.cfg.Password); err != nil {
		_ = conn.Quit()
		return nil, fmt.Errorf("ftp login: %w", err)
	}
	return conn, nil
}

// enterRemoteDir changes into the configured remote directory, creating
// missing segments along the way.
func (m *FTPMirror) enterRemoteDir(conn *ftp.ServerConn) error {
	for _, segment := range strings.Split(path.Clean(m.cfg.RemoteDir), "/") {
		if segment == "" || segment == "." {
			continue
		}
		// MakeDir fails when the directory already exists; only the
		// subsequent ChangeDir matters.
		_ = conn.MakeDir(segment)
		if err := conn.ChangeDir(segment); err != nil {
			return fmt.Errorf("entering remote directory %q: %w", segment, err)
		}
	}
	return nil
}

// Save implements Storage. The bytes are written to a local staging file
// first, then uploaded. On upload failure the staging file is retained, not
// silently discarded.
func (m *FTPMirror) Save(ctx context.Context, filename string, r io.Reader) error {
	if !ValidFilename(filename) {
		return fmt.Errorf("%w: %q", ErrInvalidFilename, filename)
	}

	stagingPath, err := m.stage(filename, r)
	if err != nil {
		return err
	}

	if err := m.upload(ctx, filename, stagingPath); err != nil {
		slog.Error("ftp upload failed, staging file retained",
			"filename", filename, "staging_path", stagingPath, "error", err)
		return err
	}

	if err := os.Remove(stagingPath); err != nil {
		slog.Warn("removing staging file after upload", "path", stagingPath, "error", err)
	}
	return nil
}

// stage writes the upload to a local staging file and returns its path.
func (m *FTPMirror) stage(filename string, r io.Reader) (string, error) {
	if err := os.MkdirAll(m.cfg.StagingDir, 0o755); err != nil {
		return "", fmt.Errorf("creating staging directory: %w", err)
	}

	stagingPath := filepath.Join(m.cfg.StagingDir,
		uuid.New().String()+"_"+filename)

	f, err := os.Create(stagingPath)
	if err != nil {
		return "", fmt.Errorf("creating staging file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(stagingPath)
		return "", fmt.Errorf("writing staging file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing staging file: %w", err)
	}
	return stagingPath, nil
}

func (m *FTPMirror) upload(ctx context.Context, filename, stagingPath string) error {
	conn, err := m.connect(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Quit() }()

	if err := m.enterRemoteDir(conn); err != nil {
		return err
	}

	f, err := os.Open(stagingPath)
	if err != nil {
		return fmt.Errorf("opening staging file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := conn.Stor(filename, f); err != nil {
		return fmt.Errorf("uploading %q: %w", filename, err)
	}
	return nil
}

// Delete implements Storage. A file already missing on the remote host
// (FTP 550) is not an error.
func (m *FTPMirror) Delete(ctx context.Context, filename string) error {
	if !ValidFilename(filename) {
		return fmt.Errorf("%w: %q", ErrInvalidFilename, filename)
	}

	conn, err := m.connect(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Quit() }()

	if err := m.enterRemoteDir(conn); err != nil {
		return err
	}

	if err := conn.Delete(filename); err != nil {
		if isFTPNotFound(err) {
			return nil
		}
		return fmt.Errorf("deleting %q: %w", filename, err)
	}
	return nil
}

// Exists implements Storage.
func (m *FTPMirror) Exists(ctx context.Context, filename string) (bool, error) {
	if !ValidFilename(filename) {
		return false, fmt.Errorf("%w: %q", ErrInvalidFilename, filename)
	}

	conn, err := m.connect(ctx)
	if err != nil {
		return false, err
	}
	defer func() { _ = conn.Quit() }()

	if err := m.enterRemoteDir(conn); err != nil {
		return false, err
	}

	_, err = conn.FileSize(filename)
	if err != nil {
		if isFTPNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func isFTPNotFound(err error) bool {
	var protoErr *textproto.Error
	return errors.As(err, &protoErr) && protoErr.Code == ftp.StatusFileUnavailable
}
