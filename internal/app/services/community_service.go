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

// CommunityService defines the interface for community operations
type CommunityService interface {
	CreateCommunity(ctx context.Context, actorID int64, req *dto.CreateCommunityRequest) (*dto.CommunityResponse, error)
	DeleteCommunity(ctx context.Context, communityID int64) error
	ListCommunities(ctx context.Context) ([]dto.CommunityResponse, error)
	SearchCommunities(ctx context.Context, name string) ([]dto.CommunityResponse, error)
	JoinCommunity(ctx context.Context, userID int64, communityID int64) error
	LeaveCommunity(ctx context.Context, userID int64, communityID int64) error
	RemoveMember(ctx context.Context, actorID int64, communityID int64, memberID int64) error
}

// communityServiceImpl implements CommunityService
type communityServiceImpl struct {
	communityStore CommunityStore
	chatStore      ChatStore
	threadStore    ThreadStore
	userStore      UserStore
	eventStore     EventStore
	txRunner       db.TxRunner
	logger         zerolog.Logger
}

// NewCommunityService creates a new CommunityService
func NewCommunityService(
	communityStore CommunityStore,
	chatStore ChatStore,
	threadStore ThreadStore,
	userStore UserStore,
	eventStore EventStore,
	txRunner db.TxRunner,
	logger zerolog.Logger,
) CommunityService {
	return &communityServiceImpl{
		communityStore: communityStore,
		chatStore:      chatStore,
		threadStore:    threadStore,
		userStore:      userStore,
		eventStore:     eventStore,
		txRunner:       txRunner,
		logger:         logger,
	}
}

// CreateCommunity creates a community owned by the actor. The actor always
// lands in the admin and member lists regardless of the request body.
func (s *communityServiceImpl) CreateCommunity(ctx context.Context, actorID int64, req *dto.CreateCommunityRequest) (*dto.CommunityResponse, error) {
	community := &models.Community{
		Name:            req.Community.Name,
		Description:     req.Community.Description,
		IsPublic:        *req.Community.IsPublic,
		CreatorID:       actorID,
		Status:          models.StatusActive,
		AdminIDs:        []int64{actorID},
		MemberIDs:       []int64{actorID},
		ChatIDs:         []int64{},
		EventIDs:        []int64{},
		VisibleInSearch: req.Community.VisibleInSearch,
	}

	id, err := s.communityStore.Create(ctx, nil, community)
	if err != nil {
		return nil, err
	}
	community.ID = id

	s.logger.Info().
		Int64("communityId", id).
		Int64("creatorId", actorID).
		Msg("Community created")

	resp := dto.ToCommunityResponse(community)
	return &resp, nil
}

// DeleteCommunity deletes a community together with everything it owns: its
// chats (each with its thread, messages and member back-references) and its
// events. All of it happens in one transaction so a community is never left
// half-deleted.
func (s *communityServiceImpl) DeleteCommunity(ctx context.Context, communityID int64) error {
	err := s.txRunner.WithTransaction(ctx, func(ctx context.Context, q db.Querier) error {
		community, err := s.communityStore.GetByID(ctx, q, communityID)
		if err != nil {
			return err
		}

		for _, chatID := range community.ChatIDs {
			chat, err := s.chatStore.GetByID(ctx, q, chatID)
			if err != nil {
				return err
			}
			if err := s.userStore.RemoveChatFromUsers(ctx, q, chatID, chat.UserIDs); err != nil {
				return err
			}
			if err := s.chatStore.Delete(ctx, q, chatID); err != nil {
				return err
			}
			if err := s.threadStore.Delete(ctx, q, chat.ThreadID); err != nil {
				return err
			}
		}

		for _, eventID := range community.EventIDs {
			if err := s.eventStore.Delete(ctx, q, eventID); err != nil {
				return err
			}
		}

		return s.communityStore.Delete(ctx, q, communityID)
	})
	if err != nil {
		return err
	}

	s.logger.Info().
		Int64("communityId", communityID).
		Msg("Community deleted")
	return nil
}

// ListCommunities returns all public communities
func (s *communityServiceImpl) ListCommunities(ctx context.Context) ([]dto.CommunityResponse, error) {
	communities, err := s.communityStore.ListPublic(ctx, nil)
	if err != nil {
		return nil, err
	}
	return toCommunityResponses(communities), nil
}

// SearchCommunities returns communities whose name matches, restricted to
// those opted into search visibility.
func (s *communityServiceImpl) SearchCommunities(ctx context.Context, name string) ([]dto.CommunityResponse, error) {
	communities, err := s.communityStore.Search(ctx, nil, name)
	if err != nil {
		return nil, err
	}
	return toCommunityResponses(communities), nil
}

// JoinCommunity appends the user to the member list. Joining twice is a
// conflict.
func (s *communityServiceImpl) JoinCommunity(ctx context.Context, userID int64, communityID int64) error {
	err := s.txRunner.WithTransaction(ctx, func(ctx context.Context, q db.Querier) error {
		community, err := s.communityStore.GetByID(ctx, q, communityID)
		if err != nil {
			return err
		}

		if helpers.ContainsID(community.MemberIDs, userID) {
			return apperrors.ErrAlreadyMember
		}

		return s.communityStore.UpdateMembers(ctx, q, communityID, append(community.MemberIDs, userID))
	})
	if err != nil {
		return err
	}

	s.logger.Info().
		Int64("communityId", communityID).
		Int64("userId", userID).
		Msg("User joined community")
	return nil
}

// LeaveCommunity removes the user from the member list
func (s *communityServiceImpl) LeaveCommunity(ctx context.Context, userID int64, communityID int64) error {
	err := s.txRunner.WithTransaction(ctx, func(ctx context.Context, q db.Querier) error {
		community, err := s.communityStore.GetByID(ctx, q, communityID)
		if err != nil {
			return err
		}

		if !helpers.ContainsID(community.MemberIDs, userID) {
			return apperrors.ErrNotMember
		}

		return s.communityStore.UpdateMembers(ctx, q, communityID, helpers.RemoveID(community.MemberIDs, userID))
	})
	if err != nil {
		return err
	}

	s.logger.Info().
		Int64("communityId", communityID).
		Int64("userId", userID).
		Msg("User left community")
	return nil
}

// RemoveMember lets a community admin remove another member
func (s *communityServiceImpl) RemoveMember(ctx context.Context, actorID int64, communityID int64, memberID int64) error {
	err := s.txRunner.WithTransaction(ctx, func(ctx context.Context, q db.Querier) error {
		community, err := s.communityStore.GetByID(ctx, q, communityID)
		if err != nil {
			return err
		}

		if !auth.IsCommunityAdmin(community, actorID) {
			return apperrors.ErrPermissionDenied
		}
		if !helpers.ContainsID(community.MemberIDs, memberID) {
			return apperrors.ErrNotMember
		}

		return s.communityStore.UpdateMembers(ctx, q, communityID, helpers.RemoveID(community.MemberIDs, memberID))
	})
	if err != nil {
		return err
	}

	s.logger.Info().
		Int64("communityId", communityID).
		Int64("memberId", memberID).
		Int64("actorId", actorID).
		Msg("Member removed from community")
	return nil
}

func toCommunityResponses(communities []*models.Community) []dto.CommunityResponse {
	responses := make([]dto.CommunityResponse, 0, len(communities))
	for _, community := range communities {
		responses = append(responses, dto.ToCommunityResponse(community))
	}
	return responses
}
