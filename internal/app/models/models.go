package models

// EntityStatus represents the lifecycle status of a community or chat.
// Stored and reported; operations do not gate on it.
type EntityStatus string

const (
	StatusActive  EntityStatus = "ACTIVE"
	StatusBlocked EntityStatus = "BLOCKED"
	StatusDeleted EntityStatus = "DELETED"
)
