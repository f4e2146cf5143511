package models

import "time"

// User defines the user model based on the 'users' table
type User struct {
	ID           int64     `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	ChatIDs      []int64   `json:"chats" db:"chat_ids"` // denormalized ids of chats the user belongs to
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`

	// Related entities
	Chats []*Chat `json:"chatDetails,omitempty"`
}
