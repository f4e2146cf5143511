package dto

import "github.com/emre/communia/internal/app/models"

// UserResponse represents a user with their chats populated
type UserResponse struct {
	ID       int64          `json:"id"`
	Username string         `json:"username"`
	Email    string         `json:"email"`
	ChatIDs  []int64        `json:"chats"`
	Chats    []ChatResponse `json:"chatDetails,omitempty"`
}

// ToUserResponse converts a user model to its response representation
func ToUserResponse(user *models.User) UserResponse {
	resp := UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		ChatIDs:  user.ChatIDs,
	}
	if resp.ChatIDs == nil {
		resp.ChatIDs = []int64{}
	}
	for _, chat := range user.Chats {
		resp.Chats = append(resp.Chats, ToChatResponse(chat))
	}
	return resp
}
