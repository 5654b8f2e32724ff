package model

import "time"

// Category is a taxonomy entry for either news or community art. The two
// variants live in separate tables with identical shape.
type Category struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
