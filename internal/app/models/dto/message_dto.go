package dto

import (
	"time"

	"github.com/emre/communia/internal/app/models"
)

// MessageSenderInput identifies the sender inside an add-message request
type MessageSenderInput struct {
	Name string `json:"name" binding:"required"`
	ID   int64  `json:"id" binding:"required,min=1"`
}

// AddMessageRequest carries a message to append to a chat's thread
type AddMessageRequest struct {
	ChatID int64              `json:"chatId" binding:"required,min=1"`
	Text   string             `json:"text" binding:"required"`
	Sender MessageSenderInput `json:"sender" binding:"required"`
	TND    time.Time          `json:"tnd" binding:"required"`
}

// MessageResponse represents a single message in API responses
type MessageResponse struct {
	ID        int64                    `json:"id"`
	Text      string                   `json:"text"`
	Media     string                   `json:"media"`
	Sender    models.MessageSender     `json:"sender"`
	TND       time.Time                `json:"tnd"`
	Read      models.MessageRead       `json:"read"`
	Reactions []models.MessageReaction `json:"reactions"`
}

// ToMessageResponse converts a message model to its response representation
func ToMessageResponse(msg *models.Message) MessageResponse {
	resp := MessageResponse{
		ID:        msg.ID,
		Text:      msg.Text,
		Media:     msg.Media,
		Sender:    msg.Sender,
		TND:       msg.SentAt,
		Read:      msg.Read,
		Reactions: msg.Reactions,
	}
	if resp.Reactions == nil {
		resp.Reactions = []models.MessageReaction{}
	}
	return resp
}
