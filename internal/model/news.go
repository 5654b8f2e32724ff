package model

import "time"

// DefaultTimezone is the timezone label applied to news items when the
// client omits one.
const DefaultTimezone = "(UTC)"

// NewsItem represents a news entry. Date is stored as YYYY-MM-DD text;
// Category is a denormalized copy of a news_categories name, kept in sync
// by category-rename cascades.
type NewsItem struct {
	ID        int64     `json:"id"`
	Date      string    `json:"date"`
	Timezone  string    `json:"timezone"`
	Category  string    `json:"category"`
	Title     string    `json:"title"`
	Excerpt   string    `json:"excerpt"`
	Link      *string   `json:"link"`
	Featured  bool      `json:"featured"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
