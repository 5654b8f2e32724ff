package store

import (
	"context"
	"time"

	"github.com/jamesbago101/promo-back/internal/model"
)

// GetYoutubeVideo returns the singleton video setting.
func (q *Queries) GetYoutubeVideo(ctx context.Context) (model.YoutubeVideo, error) {
	var v model.YoutubeVideo
	err := q.db.QueryRowContext(ctx,
		"SELECT id, video_id, video_url, updated_at FROM youtube_video WHERE id = ?",
		model.YoutubeVideoID).Scan(&v.ID, &v.VideoID, &v.VideoURL, &v.UpdatedAt)
	return v, err
}

// InsertYoutubeVideo creates the singleton row. Only used at bootstrap.
func (q *Queries) InsertYoutubeVideo(ctx context.Context, videoID, videoURL string, updatedAt time.Time) error {
	_, err := q.db.ExecContext(ctx,
		"INSERT INTO youtube_video (id, video_id, video_url, updated_at) VALUES (?, ?, ?, ?)",
		model.YoutubeVideoID, videoID, videoURL, updatedAt)
	return err
}

// UpdateYoutubeVideo replaces the singleton video setting.
func (q *Queries) UpdateYoutubeVideo(ctx context.Context, videoID, videoURL string, updatedAt time.Time) error {
	_, err := q.db.ExecContext(ctx,
		"UPDATE youtube_video SET video_id = ?, video_url = ?, updated_at = ? WHERE id = ?",
		videoID, videoURL, updatedAt, model.YoutubeVideoID)
	return err
}
