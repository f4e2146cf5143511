package models

import "time"

// MessageThread is the append-only container of messages for one chat.
// It is created together with its chat and deleted together with it.
type MessageThread struct {
	ID          int64     `json:"id" db:"id"`
	UnseenCount int       `json:"unseenMessages" db:"unseen_count"`
	UpdatedAt   time.Time `json:"updatedDate" db:"updated_at"`

	Messages []Message `json:"messages,omitempty"`
}

// MessageSender identifies who sent a message
type MessageSender struct {
	Name string `json:"name"`
	ID   int64  `json:"id"`
}

// MessageRead carries the read receipt state of a message
type MessageRead struct {
	Status bool       `json:"status"`
	Time   *time.Time `json:"time,omitempty"`
}

// MessageReaction is a single reaction left on a message
type MessageReaction struct {
	Reaction string `json:"reaction"`
	By       int64  `json:"by"`
}

// Message is one entry in a chat's message thread
type Message struct {
	ID        int64             `json:"id" db:"id"`
	ThreadID  int64             `json:"-" db:"thread_id"`
	Text      string            `json:"text" db:"text"`
	Media     string            `json:"media" db:"media"`
	Sender    MessageSender     `json:"sender"`
	SentAt    time.Time         `json:"tnd" db:"sent_at"`
	Read      MessageRead       `json:"read"`
	Reactions []MessageReaction `json:"reactions"`
}
