package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/emre/communia/internal/app/auth"
	"github.com/emre/communia/internal/app/models"
	"github.com/emre/communia/internal/app/models/dto"
	"github.com/emre/communia/internal/db"
	"github.com/emre/communia/internal/pkg/apperrors"
)

// MessageService defines the interface for message operations
type MessageService interface {
	AddMessage(ctx context.Context, actorID int64, req *dto.AddMessageRequest) (*dto.MessageResponse, error)
}

// messageServiceImpl implements MessageService
type messageServiceImpl struct {
	chatStore   ChatStore
	threadStore ThreadStore
	txRunner    db.TxRunner
	logger      zerolog.Logger
}

// NewMessageService creates a new MessageService
func NewMessageService(
	chatStore ChatStore,
	threadStore ThreadStore,
	txRunner db.TxRunner,
	logger zerolog.Logger,
) MessageService {
	return &messageServiceImpl{
		chatStore:   chatStore,
		threadStore: threadStore,
		txRunner:    txRunner,
		logger:      logger,
	}
}

// AddMessage appends a message to a chat's thread. Only chat members may
// write.
func (s *messageServiceImpl) AddMessage(ctx context.Context, actorID int64, req *dto.AddMessageRequest) (*dto.MessageResponse, error) {
	var created *models.Message

	err := s.txRunner.WithTransaction(ctx, func(ctx context.Context, q db.Querier) error {
		chat, err := s.chatStore.GetByID(ctx, q, req.ChatID)
		if err != nil {
			return err
		}

		if !auth.IsChatMember(chat, actorID) {
			return apperrors.ErrPermissionDenied
		}

		msg := &models.Message{
			ThreadID: chat.ThreadID,
			Text:     req.Text,
			Media:    "",
			Sender: models.MessageSender{
				Name: req.Sender.Name,
				ID:   req.Sender.ID,
			},
			SentAt:    req.TND,
			Read:      models.MessageRead{Status: false},
			Reactions: []models.MessageReaction{},
		}
		id, err := s.threadStore.AppendMessage(ctx, q, msg)
		if err != nil {
			return err
		}
		msg.ID = id

		created = msg
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug().
		Int64("chatId", req.ChatID).
		Int64("messageId", created.ID).
		Msg("Message added")

	resp := dto.ToMessageResponse(created)
	return &resp, nil
}
