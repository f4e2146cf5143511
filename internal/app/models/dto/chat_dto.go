package dto

import (
	"time"

	"github.com/emre/communia/internal/app/models"
)

// CreateChatRequest carries the payload for chat creation
type CreateChatRequest struct {
	Community int64   `json:"community" binding:"required,min=1"`
	Title     string  `json:"title" binding:"required"`
	Users     []int64 `json:"users" binding:"required"`
}

// ChatUsersRequest carries the user id batch for add/remove operations
type ChatUsersRequest struct {
	Users []int64 `json:"users" binding:"required,min=1"`
}

// ChatResponse represents a chat in API responses
type ChatResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Community int64     `json:"community"`
	Users     []int64   `json:"users"`
	Creator   int64     `json:"creator"`
	Thread    int64     `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"creationDate"`

	Messages []MessageResponse `json:"messages,omitempty"`
}

// ToChatResponse converts a chat model to its response representation
func ToChatResponse(chat *models.Chat) ChatResponse {
	resp := ChatResponse{
		ID:        chat.ID,
		Title:     chat.Title,
		Community: chat.CommunityID,
		Users:     chat.UserIDs,
		Creator:   chat.CreatorID,
		Thread:    chat.ThreadID,
		Status:    string(chat.Status),
		CreatedAt: chat.CreatedAt,
	}
	if resp.Users == nil {
		resp.Users = []int64{}
	}
	if chat.Thread != nil {
		for i := range chat.Thread.Messages {
			resp.Messages = append(resp.Messages, ToMessageResponse(&chat.Thread.Messages[i]))
		}
	}
	return resp
}
