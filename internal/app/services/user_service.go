package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/emre/communia/internal/app/models/dto"
)

// UserService defines the interface for user read operations
type UserService interface {
	GetUser(ctx context.Context, userID int64) (*dto.UserResponse, error)
}

// userServiceImpl implements UserService
type userServiceImpl struct {
	userStore UserStore
	chatStore ChatStore
	logger    zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(userStore UserStore, chatStore ChatStore, logger zerolog.Logger) UserService {
	return &userServiceImpl{
		userStore: userStore,
		chatStore: chatStore,
		logger:    logger,
	}
}

// GetUser returns a user with their chats populated
func (s *userServiceImpl) GetUser(ctx context.Context, userID int64) (*dto.UserResponse, error) {
	user, err := s.userStore.GetByID(ctx, nil, userID)
	if err != nil {
		return nil, err
	}

	if len(user.ChatIDs) > 0 {
		chats, err := s.chatStore.ListByIDs(ctx, nil, user.ChatIDs)
		if err != nil {
			return nil, err
		}
		user.Chats = chats
	}

	resp := dto.ToUserResponse(user)
	return &resp, nil
}
