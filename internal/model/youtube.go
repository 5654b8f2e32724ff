package model

import "time"

// YoutubeVideoID is the fixed primary key of the singleton youtube_video row.
const YoutubeVideoID = 1

// YoutubeVideo is the single featured-video setting. The row is created at
// bootstrap and only ever updated afterwards.
type YoutubeVideo struct {
	ID        int64     `json:"id"`
	VideoID   string    `json:"video_id"`
	VideoURL  string    `json:"video_url"`
	UpdatedAt time.Time `json:"updated_at"`
}
