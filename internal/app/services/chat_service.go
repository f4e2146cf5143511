package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/emre/communia/internal/app/auth"
	"github.com/emre/communia/internal/app/models"
	"github.com/emre/communia/internal/app/models/dto"
	"github.com/emre/communia/internal/db"
	"github.com/emre/communia/internal/pkg/apperrors"
	"github.com/emre/communia/internal/pkg/helpers"
)

// ChatService defines the interface for chat operations
type ChatService interface {
	CreateChat(ctx context.Context, actorID int64, req *dto.CreateChatRequest) (*dto.ChatResponse, error)
	DeleteChat(ctx context.Context, actorID int64, chatID int64) error
	AddUsers(ctx context.Context, actorID int64, chatID int64, userIDs []int64) (*dto.ChatResponse, error)
	RemoveUsers(ctx context.Context, actorID int64, chatID int64, userIDs []int64) (*dto.ChatResponse, error)
	GetChat(ctx context.Context, actorID int64, chatID int64) (*dto.ChatResponse, error)
}

// chatServiceImpl implements ChatService. Every mutation runs inside a single
// serializable transaction so the back-references held by users, communities
// and chats never drift apart.
type chatServiceImpl struct {
	chatStore      ChatStore
	threadStore    ThreadStore
	communityStore CommunityStore
	userStore      UserStore
	txRunner       db.TxRunner
	logger         zerolog.Logger
}

// NewChatService creates a new ChatService
func NewChatService(
	chatStore ChatStore,
	threadStore ThreadStore,
	communityStore CommunityStore,
	userStore UserStore,
	txRunner db.TxRunner,
	logger zerolog.Logger,
) ChatService {
	return &chatServiceImpl{
		chatStore:      chatStore,
		threadStore:    threadStore,
		communityStore: communityStore,
		userStore:      userStore,
		txRunner:       txRunner,
		logger:         logger,
	}
}

// CreateChat creates a chat together with its empty message thread and wires
// the chat id into every listed user and into the owning community.
func (s *chatServiceImpl) CreateChat(ctx context.Context, actorID int64, req *dto.CreateChatRequest) (*dto.ChatResponse, error) {
	var created *models.Chat

	err := s.txRunner.WithTransaction(ctx, func(ctx context.Context, q db.Querier) error {
		community, err := s.communityStore.GetByID(ctx, q, req.Community)
		if err != nil {
			return err
		}

		if !auth.IsCommunityAdmin(community, actorID) {
			return apperrors.ErrPermissionDenied
		}

		// The caller must hand over a duplicate-free user list; a list with
		// repeats is rejected rather than silently deduplicated.
		if len(helpers.DistinctIDs(req.Users)) != len(req.Users) {
			return apperrors.ErrDuplicateChatUsers
		}

		exists, err := s.chatStore.TitleExists(ctx, q, req.Community, req.Title)
		if err != nil {
			return err
		}
		if exists {
			return apperrors.ErrChatTitleExists
		}

		threadID, err := s.threadStore.Create(ctx, q)
		if err != nil {
			return err
		}

		chat := &models.Chat{
			Title:       req.Title,
			CommunityID: req.Community,
			UserIDs:     req.Users,
			CreatorID:   actorID,
			ThreadID:    threadID,
			Status:      models.StatusActive,
		}
		chatID, err := s.chatStore.Create(ctx, q, chat)
		if err != nil {
			return err
		}
		chat.ID = chatID

		if err := s.userStore.AddChatToUsers(ctx, q, chatID, req.Users); err != nil {
			return err
		}
		if err := s.communityStore.AddChat(ctx, q, req.Community, chatID); err != nil {
			return err
		}

		created = chat
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("chatId", created.ID).
		Int64("communityId", created.CommunityID).
		Int64("creatorId", actorID).
		Msg("Chat created")

	resp := dto.ToChatResponse(created)
	return &resp, nil
}

// DeleteChat removes a chat, its thread and all messages, and clears the chat
// id from the community and from every member's chat list.
func (s *chatServiceImpl) DeleteChat(ctx context.Context, actorID int64, chatID int64) error {
	err := s.txRunner.WithTransaction(ctx, func(ctx context.Context, q db.Querier) error {
		chat, err := s.chatStore.GetByID(ctx, q, chatID)
		if err != nil {
			return err
		}

		community, err := s.communityStore.GetByID(ctx, q, chat.CommunityID)
		if err != nil {
			return err
		}

		if !auth.IsChatCreatorOrCommunityAdmin(chat, community, actorID) {
			return apperrors.ErrPermissionDenied
		}

		if err := s.communityStore.RemoveChat(ctx, q, chat.CommunityID, chatID); err != nil {
			return err
		}
		if err := s.userStore.RemoveChatFromUsers(ctx, q, chatID, chat.UserIDs); err != nil {
			return err
		}
		// The chat row references the thread, so it has to go first or the
		// thread delete trips the foreign key.
		if err := s.chatStore.Delete(ctx, q, chatID); err != nil {
			return err
		}
		return s.threadStore.Delete(ctx, q, chat.ThreadID)
	})
	if err != nil {
		return err
	}

	s.logger.Info().
		Int64("chatId", chatID).
		Int64("actorId", actorID).
		Msg("Chat deleted")
	return nil
}

// AddUsers adds a batch of users to a chat. The batch is all-or-nothing: if
// any requested user is already in the chat, nothing is applied.
func (s *chatServiceImpl) AddUsers(ctx context.Context, actorID int64, chatID int64, userIDs []int64) (*dto.ChatResponse, error) {
	var updated *models.Chat

	err := s.txRunner.WithTransaction(ctx, func(ctx context.Context, q db.Querier) error {
		chat, err := s.chatStore.GetByID(ctx, q, chatID)
		if err != nil {
			return err
		}

		community, err := s.communityStore.GetByID(ctx, q, chat.CommunityID)
		if err != nil {
			return err
		}

		if !auth.IsCommunityAdmin(community, actorID) {
			return apperrors.ErrPermissionDenied
		}

		toAdd := helpers.DistinctIDs(userIDs)
		if len(toAdd) != len(userIDs) {
			return apperrors.ErrDuplicateChatUsers
		}
		for _, id := range toAdd {
			if helpers.ContainsID(chat.UserIDs, id) {
				return apperrors.ErrDuplicateChatUsers
			}
		}

		chat.UserIDs = append(chat.UserIDs, toAdd...)
		if err := s.chatStore.UpdateUsers(ctx, q, chatID, chat.UserIDs); err != nil {
			return err
		}
		if err := s.userStore.AddChatToUsers(ctx, q, chatID, toAdd); err != nil {
			return err
		}

		updated = chat
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("chatId", chatID).
		Int("count", len(userIDs)).
		Msg("Users added to chat")

	resp := dto.ToChatResponse(updated)
	return &resp, nil
}

// RemoveUsers removes users from a chat. An admin naming themselves in the
// batch leaves the chat alone; a batch naming another community admin is
// rejected; otherwise the whole batch is removed. The chat reference is pulled
// from every listed user's chat list in all branches.
func (s *chatServiceImpl) RemoveUsers(ctx context.Context, actorID int64, chatID int64, userIDs []int64) (*dto.ChatResponse, error) {
	var updated *models.Chat

	err := s.txRunner.WithTransaction(ctx, func(ctx context.Context, q db.Querier) error {
		chat, err := s.chatStore.GetByID(ctx, q, chatID)
		if err != nil {
			return err
		}

		community, err := s.communityStore.GetByID(ctx, q, chat.CommunityID)
		if err != nil {
			return err
		}

		if !auth.IsCommunityAdmin(community, actorID) {
			return apperrors.ErrPermissionDenied
		}

		switch {
		case helpers.ContainsID(userIDs, actorID):
			// Self-removal wins over everything else in the batch
			chat.UserIDs = helpers.RemoveID(chat.UserIDs, actorID)
		case auth.AnyCommunityAdmin(community, userIDs):
			return apperrors.ErrCannotRemoveAdmin
		default:
			chat.UserIDs = helpers.RemoveIDs(chat.UserIDs, userIDs)
		}

		if err := s.chatStore.UpdateUsers(ctx, q, chatID, chat.UserIDs); err != nil {
			return err
		}
		if err := s.userStore.RemoveChatFromUsers(ctx, q, chatID, userIDs); err != nil {
			return err
		}

		updated = chat
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("chatId", chatID).
		Int("count", len(userIDs)).
		Msg("Users removed from chat")

	resp := dto.ToChatResponse(updated)
	return &resp, nil
}

// GetChat returns a chat with its thread messages. Only chat members may read
// it.
func (s *chatServiceImpl) GetChat(ctx context.Context, actorID int64, chatID int64) (*dto.ChatResponse, error) {
	chat, err := s.chatStore.GetByID(ctx, nil, chatID)
	if err != nil {
		return nil, err
	}

	if !auth.IsChatMember(chat, actorID) {
		return nil, apperrors.ErrPermissionDenied
	}

	thread, err := s.threadStore.GetByID(ctx, nil, chat.ThreadID)
	if err != nil {
		return nil, err
	}
	messages, err := s.threadStore.ListMessages(ctx, nil, chat.ThreadID)
	if err != nil {
		return nil, err
	}
	thread.Messages = messages
	chat.Thread = thread

	resp := dto.ToChatResponse(chat)
	return &resp, nil
}
