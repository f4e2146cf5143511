package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/emre/communia/internal/app/models/dto"
	"github.com/emre/communia/internal/app/services"
	"github.com/emre/communia/internal/middleware"
)

// MessageController handles message related operations
type MessageController struct {
	messageService services.MessageService
	logger         zerolog.Logger
}

// NewMessageController creates a new MessageController
func NewMessageController(messageService services.MessageService, logger zerolog.Logger) *MessageController {
	return &MessageController{
		messageService: messageService,
		logger:         logger,
	}
}

// AddMessage appends a message to a chat's thread
func (c *MessageController) AddMessage(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		abortUnauthenticated(ctx)
		return
	}

	var req dto.AddMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid add-message payload")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(middleware.HandleValidationError(err)))
		return
	}

	msg, err := c.messageService.AddMessage(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(msg))
}
