package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/emre/communia/internal/app/models/dto"
	"github.com/emre/communia/internal/app/services"
	"github.com/emre/communia/internal/middleware"
)

// ChatController handles chat related operations
type ChatController struct {
	chatService services.ChatService
	logger      zerolog.Logger
}

// NewChatController creates a new ChatController
func NewChatController(chatService services.ChatService, logger zerolog.Logger) *ChatController {
	return &ChatController{
		chatService: chatService,
		logger:      logger,
	}
}

// CreateChat handles chat creation
func (c *ChatController) CreateChat(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		abortUnauthenticated(ctx)
		return
	}

	var req dto.CreateChatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid chat creation payload")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(middleware.HandleValidationError(err)))
		return
	}

	chat, err := c.chatService.CreateChat(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(chat))
}

// DeleteChat handles chat deletion
func (c *ChatController) DeleteChat(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		abortUnauthenticated(ctx)
		return
	}

	chatID, err := parseIDParam(ctx, "chatId")
	if err != nil {
		return
	}

	if err := c.chatService.DeleteChat(ctx.Request.Context(), userID, chatID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Chat deleted"))
}

// AddUsers adds a batch of users to a chat
func (c *ChatController) AddUsers(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		abortUnauthenticated(ctx)
		return
	}

	chatID, err := parseIDParam(ctx, "chatId")
	if err != nil {
		return
	}

	var req dto.ChatUsersRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(middleware.HandleValidationError(err)))
		return
	}

	chat, err := c.chatService.AddUsers(ctx.Request.Context(), userID, chatID, req.Users)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(chat))
}

// RemoveUsers removes a batch of users from a chat
func (c *ChatController) RemoveUsers(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		abortUnauthenticated(ctx)
		return
	}

	chatID, err := parseIDParam(ctx, "chatId")
	if err != nil {
		return
	}

	var req dto.ChatUsersRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(middleware.HandleValidationError(err)))
		return
	}

	chat, err := c.chatService.RemoveUsers(ctx.Request.Context(), userID, chatID, req.Users)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(chat))
}

// GetChat returns a chat with its thread messages
func (c *ChatController) GetChat(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		abortUnauthenticated(ctx)
		return
	}

	chatID, err := parseIDParam(ctx, "chatId")
	if err != nil {
		return
	}

	chat, err := c.chatService.GetChat(ctx.Request.Context(), userID, chatID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(chat))
}
