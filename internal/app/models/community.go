package models

import "time"

// Community represents a named group with admins, members, chats and events.
// The id sets on this struct are the canonical denormalized back-references;
// they are only mutated inside coordinator transactions.
type Community struct {
	ID              int64        `json:"id" db:"id"`
	Name            string       `json:"name" db:"name"`
	Description     string       `json:"description" db:"description"`
	IsPublic        bool         `json:"isPublic" db:"is_public"`
	CreatorID       int64        `json:"creator" db:"creator_id"`
	Status          EntityStatus `json:"status" db:"status"`
	AdminIDs        []int64      `json:"admins" db:"admin_ids"`
	MemberIDs       []int64      `json:"members" db:"member_ids"`
	ChatIDs         []int64      `json:"chats" db:"chat_ids"`
	EventIDs        []int64      `json:"events" db:"event_ids"`
	VisibleInSearch bool         `json:"visibleInSearch" db:"visible_in_search"`
	CreatedAt       time.Time    `json:"createdAt" db:"created_at"`
}
