package models

import "time"

// Event represents a community event
type Event struct {
	ID          int64     `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Date        time.Time `json:"date" db:"event_date"`
	CommunityID int64     `json:"community" db:"community_id"`
}
