// Package config loads application configuration from environment variables.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// MinJWTSecretLength is the minimum required length for the JWT signing secret.
const MinJWTSecretLength = 32

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath     string `env:"PROMO_DB_PATH" envDefault:"./data/promo.db"`
	ServerHost string `env:"PROMO_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"PROMO_SERVER_PORT" envDefault:"3001"`
	Env        string `env:"PROMO_ENV" envDefault:"development"`
	LogLevel   string `env:"PROMO_LOG_LEVEL" envDefault:"info"`

	// JWTSecret signs access tokens. Process-wide, read-only after startup.
	JWTSecret string `env:"PROMO_JWT_SECRET,required"`

	// AdminPassword is only used when seeding the default admin account.
	AdminPassword string `env:"PROMO_ADMIN_PASSWORD" envDefault:"admin123"`

	// FrontendURL is the allowed CORS origin; "*" allows any origin.
	FrontendURL string `env:"PROMO_FRONTEND_URL" envDefault:"*"`

	// Upload configuration
	UploadsDir    string `env:"PROMO_UPLOAD_DIR" envDefault:"./uploads/community_art"`
	MaxUploadSize int64  `env:"PROMO_MAX_FILE_SIZE" envDefault:"5242880"` // 5 MiB

	// Rate limiting: RateLimitMax requests per RateLimitWindow, per client IP.
	RateLimitWindow int `env:"PROMO_RATE_WINDOW_MINUTES" envDefault:"15"`
	RateLimitMax    int `env:"PROMO_RATE_MAX" envDefault:"100"`

	// FTP mirroring of uploaded assets to the remote file host.
	FTPEnabled  bool   `env:"PROMO_USE_FTP" envDefault:"false"`
	FTPHost     string `env:"PROMO_FTP_HOST"`
	FTPUser     string `env:"PROMO_FTP_USER"`
	FTPPassword string `env:"PROMO_FTP_PASSWORD"`
	FTPPort     int    `env:"PROMO_FTP_PORT" envDefault:"0"` // 0 picks 21 or 990 by FTPSecure
	FTPSecure   bool   `env:"PROMO_FTP_SECURE" envDefault:"false"`

	// FTPRemoteDir is where mirrored assets land on the remote host,
	// relative to the FTP root.
	FTPRemoteDir string `env:"PROMO_FTP_REMOTE_DIR" envDefault:"assets/community_art"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseFTP returns true if uploads should be mirrored to the remote FTP host.
// The flag alone is not enough: host and credentials must all be present.
func (c Config) UseFTP() bool {
	return c.FTPEnabled && c.FTPHost != "" && c.FTPUser != "" && c.FTPPassword != ""
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.JWTSecret) < MinJWTSecretLength {
		return nil, fmt.Errorf("PROMO_JWT_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinJWTSecretLength, len(cfg.JWTSecret))
	}

	if cfg.MaxUploadSize <= 0 {
		return nil, fmt.Errorf("PROMO_MAX_FILE_SIZE must be positive, got %d", cfg.MaxUploadSize)
	}

	return cfg, nil
}
