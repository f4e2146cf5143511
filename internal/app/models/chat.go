package models

import "time"

// Chat represents a named conversation scoped to one community, backed by
// exactly one message thread. UserIDs carries no duplicates.
type Chat struct {
	ID          int64        `json:"id" db:"id"`
	Title       string       `json:"title" db:"title"`
	CommunityID int64        `json:"community" db:"community_id"`
	UserIDs     []int64      `json:"users" db:"user_ids"`
	CreatorID   int64        `json:"creator" db:"creator_id"`
	ThreadID    int64        `json:"message" db:"thread_id"`
	Status      EntityStatus `json:"status" db:"status"`
	CreatedAt   time.Time    `json:"creationDate" db:"created_at"`

	// Related entities
	Thread *MessageThread `json:"thread,omitempty"`
}
