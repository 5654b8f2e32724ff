package model

import (
	"regexp"
	"strings"
	"time"
)

// CommunityArt represents a gallery entry. Image holds the canonical
// relative asset path (assets/community_art/<filename>) regardless of which
// storage backend physically holds the bytes.
type CommunityArt struct {
	ID          int64     `json:"id"`
	Image       string    `json:"image"`
	Title       string    `json:"title"`
	Category    string    `json:"category"`
	Artist      string    `json:"artist"`
	XHandle     *string   `json:"xHandle"`
	XURL        *string   `json:"xUrl"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

var trailingArtSuffix = regexp.MustCompile(`(?i)(\s+ART\s*)+$`)

// CleanArtistName strips a trailing " ART" suffix (case-insensitive, with
// surrounding whitespace) from an artist name. Idempotent: cleaning an
// already-clean name returns it unchanged.
func CleanArtistName(artist string) string {
	if artist == "" {
		return artist
	}
	return strings.TrimSpace(trailingArtSuffix.ReplaceAllString(strings.TrimSpace(artist), ""))
}
