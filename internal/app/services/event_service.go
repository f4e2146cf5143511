package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/emre/communia/internal/app/auth"
	"github.com/emre/communia/internal/app/models"
	"github.com/emre/communia/internal/app/models/dto"
	"github.com/emre/communia/internal/db"
	"github.com/emre/communia/internal/pkg/apperrors"
	"github.com/emre/communia/internal/pkg/validation"
)

// EventService defines the interface for event operations
type EventService interface {
	CreateEvent(ctx context.Context, actorID int64, req *dto.CreateEventRequest) (*dto.EventResponse, error)
	DeleteEvent(ctx context.Context, actorID int64, eventID int64) error
	GetEvent(ctx context.Context, eventID int64) (*dto.EventResponse, error)
	ListCommunityEvents(ctx context.Context, communityID int64) ([]dto.EventResponse, error)
}

// eventServiceImpl implements EventService
type eventServiceImpl struct {
	eventStore     EventStore
	communityStore CommunityStore
	txRunner       db.TxRunner
	logger         zerolog.Logger
}

// NewEventService creates a new EventService
func NewEventService(
	eventStore EventStore,
	communityStore CommunityStore,
	txRunner db.TxRunner,
	logger zerolog.Logger,
) EventService {
	return &eventServiceImpl{
		eventStore:     eventStore,
		communityStore: communityStore,
		txRunner:       txRunner,
		logger:         logger,
	}
}

// CreateEvent inserts an event and appends its id to the community's event
// list in one transaction. Only community admins may create events.
func (s *eventServiceImpl) CreateEvent(ctx context.Context, actorID int64, req *dto.CreateEventRequest) (*dto.EventResponse, error) {
	if !validation.NewStringValidation(req.Title).WithMinLength(validation.EventTitleMinLength).Validate() {
		return nil, apperrors.NewValidationError("event title is too short")
	}
	if !validation.NewStringValidation(req.Description).WithMinLength(validation.EventDescriptionMinLength).Validate() {
		return nil, apperrors.NewValidationError("event description is too short")
	}
	if req.Date.IsZero() {
		return nil, apperrors.NewValidationError("event date is required")
	}

	var created *models.Event

	err := s.txRunner.WithTransaction(ctx, func(ctx context.Context, q db.Querier) error {
		community, err := s.communityStore.GetByID(ctx, q, req.Community)
		if err != nil {
			return err
		}

		if !auth.IsCommunityAdmin(community, actorID) {
			return apperrors.ErrPermissionDenied
		}

		event := &models.Event{
			Title:       req.Title,
			Description: req.Description,
			Date:        req.Date,
			CommunityID: req.Community,
		}
		eventID, err := s.eventStore.Create(ctx, q, event)
		if err != nil {
			return err
		}
		event.ID = eventID

		if err := s.communityStore.AddEvent(ctx, q, req.Community, eventID); err != nil {
			return err
		}

		created = event
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("eventId", created.ID).
		Int64("communityId", created.CommunityID).
		Msg("Event created")

	resp := dto.ToEventResponse(created)
	return &resp, nil
}

// DeleteEvent deletes an event and removes its id from the community's event
// list in one transaction.
func (s *eventServiceImpl) DeleteEvent(ctx context.Context, actorID int64, eventID int64) error {
	err := s.txRunner.WithTransaction(ctx, func(ctx context.Context, q db.Querier) error {
		event, err := s.eventStore.GetByID(ctx, q, eventID)
		if err != nil {
			return err
		}

		community, err := s.communityStore.GetByID(ctx, q, event.CommunityID)
		if err != nil {
			return err
		}

		if !auth.IsCommunityAdmin(community, actorID) {
			return apperrors.ErrPermissionDenied
		}

		if err := s.eventStore.Delete(ctx, q, eventID); err != nil {
			return err
		}
		return s.communityStore.RemoveEvent(ctx, q, event.CommunityID, eventID)
	})
	if err != nil {
		return err
	}

	s.logger.Info().
		Int64("eventId", eventID).
		Int64("actorId", actorID).
		Msg("Event deleted")
	return nil
}

// GetEvent retrieves a single event
func (s *eventServiceImpl) GetEvent(ctx context.Context, eventID int64) (*dto.EventResponse, error) {
	event, err := s.eventStore.GetByID(ctx, nil, eventID)
	if err != nil {
		return nil, err
	}

	resp := dto.ToEventResponse(event)
	return &resp, nil
}

// ListCommunityEvents lists the events of a community. The community must
// exist.
func (s *eventServiceImpl) ListCommunityEvents(ctx context.Context, communityID int64) ([]dto.EventResponse, error) {
	if _, err := s.communityStore.GetByID(ctx, nil, communityID); err != nil {
		return nil, err
	}

	events, err := s.eventStore.ListByCommunity(ctx, nil, communityID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.EventResponse, 0, len(events))
	for _, event := range events {
		responses = append(responses, dto.ToEventResponse(event))
	}
	return responses, nil
}
