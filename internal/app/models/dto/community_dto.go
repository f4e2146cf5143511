package dto

import (
	"time"

	"github.com/emre/communia/internal/app/models"
)

// CreateCommunityRequest carries the payload for community creation.
// Creator and admins are derived from the authenticated actor, never trusted
// from the body.
type CreateCommunityRequest struct {
	Community CommunityInput `json:"community" binding:"required"`
}

// CommunityInput is the community subdocument of a creation request
type CommunityInput struct {
	Name            string `json:"name" binding:"required,min=6"`
	Description     string `json:"description" binding:"required,min=20"`
	IsPublic        *bool  `json:"isPublic" binding:"required"`
	VisibleInSearch bool   `json:"visibleInSearch"`
}

// RemoveMemberRequest identifies a member to remove from a community
type RemoveMemberRequest struct {
	CommunityID int64 `json:"communityId" binding:"required,min=1"`
	MemberID    int64 `json:"memberId" binding:"required,min=1"`
}

// CommunityResponse represents a community in API responses
type CommunityResponse struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	IsPublic        bool      `json:"isPublic"`
	Creator         int64     `json:"creator"`
	Status          string    `json:"status"`
	Admins          []int64   `json:"admins"`
	Members         []int64   `json:"members"`
	Chats           []int64   `json:"chats"`
	Events          []int64   `json:"events"`
	VisibleInSearch bool      `json:"visibleInSearch"`
	CreatedAt       time.Time `json:"createdAt"`
}

// ToCommunityResponse converts a community model to its response representation
func ToCommunityResponse(community *models.Community) CommunityResponse {
	resp := CommunityResponse{
		ID:              community.ID,
		Name:            community.Name,
		Description:     community.Description,
		IsPublic:        community.IsPublic,
		Creator:         community.CreatorID,
		Status:          string(community.Status),
		Admins:          community.AdminIDs,
		Members:         community.MemberIDs,
		Chats:           community.ChatIDs,
		Events:          community.EventIDs,
		VisibleInSearch: community.VisibleInSearch,
		CreatedAt:       community.CreatedAt,
	}
	if resp.Admins == nil {
		resp.Admins = []int64{}
	}
	if resp.Members == nil {
		resp.Members = []int64{}
	}
	if resp.Chats == nil {
		resp.Chats = []int64{}
	}
	if resp.Events == nil {
		resp.Events = []int64{}
	}
	return resp
}
