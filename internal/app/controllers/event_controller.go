package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/emre/communia/internal/app/models/dto"
	"github.com/emre/communia/internal/app/services"
	"github.com/emre/communia/internal/middleware"
)

// EventController handles event related operations
type EventController struct {
	eventService services.EventService
	logger       zerolog.Logger
}

// NewEventController creates a new EventController
func NewEventController(eventService services.EventService, logger zerolog.Logger) *EventController {
	return &EventController{
		eventService: eventService,
		logger:       logger,
	}
}

// CreateEvent handles event creation
func (c *EventController) CreateEvent(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		abortUnauthenticated(ctx)
		return
	}

	var req dto.CreateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid event creation payload")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(middleware.HandleValidationError(err)))
		return
	}

	event, err := c.eventService.CreateEvent(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(event))
}

// GetEvent returns a single event
func (c *EventController) GetEvent(ctx *gin.Context) {
	eventID, err := parseIDParam(ctx, "id")
	if err != nil {
		return
	}

	event, err := c.eventService.GetEvent(ctx.Request.Context(), eventID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(event))
}

// ListCommunityEvents returns all events of a community
func (c *EventController) ListCommunityEvents(ctx *gin.Context) {
	communityID, err := parseIDParam(ctx, "id")
	if err != nil {
		return
	}

	events, err := c.eventService.ListCommunityEvents(ctx.Request.Context(), communityID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(events))
}

// DeleteEvent handles event deletion
func (c *EventController) DeleteEvent(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		abortUnauthenticated(ctx)
		return
	}

	eventID, err := parseIDParam(ctx, "id")
	if err != nil {
		return
	}

	if err := c.eventService.DeleteEvent(ctx.Request.Context(), userID, eventID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Event deleted"))
}
