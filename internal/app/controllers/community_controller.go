package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/emre/communia/internal/app/models/dto"
	"github.com/emre/communia/internal/app/services"
	"github.com/emre/communia/internal/middleware"
)

// CommunityController handles community related operations
type CommunityController struct {
	communityService services.CommunityService
	logger           zerolog.Logger
}

// NewCommunityController creates a new CommunityController
func NewCommunityController(communityService services.CommunityService, logger zerolog.Logger) *CommunityController {
	return &CommunityController{
		communityService: communityService,
		logger:           logger,
	}
}

// CreateCommunity handles community creation
func (c *CommunityController) CreateCommunity(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		abortUnauthenticated(ctx)
		return
	}

	var req dto.CreateCommunityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid community creation payload")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(middleware.HandleValidationError(err)))
		return
	}

	community, err := c.communityService.CreateCommunity(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(community))
}

// ListCommunities returns all public communities
func (c *CommunityController) ListCommunities(ctx *gin.Context) {
	communities, err := c.communityService.ListCommunities(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(communities))
}

// SearchCommunities returns communities matching the name query
func (c *CommunityController) SearchCommunities(ctx *gin.Context) {
	name := ctx.Query("name")
	if name == "" {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Query parameter 'name' is required").WithField("name")))
		return
	}

	communities, err := c.communityService.SearchCommunities(ctx.Request.Context(), name)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(communities))
}

// JoinCommunity adds the authenticated user to a community
func (c *CommunityController) JoinCommunity(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		abortUnauthenticated(ctx)
		return
	}

	communityID, err := parseIDParam(ctx, "id")
	if err != nil {
		return
	}

	if err := c.communityService.JoinCommunity(ctx.Request.Context(), userID, communityID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Joined community"))
}

// LeaveCommunity removes the authenticated user from a community
func (c *CommunityController) LeaveCommunity(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		abortUnauthenticated(ctx)
		return
	}

	communityID, err := parseIDParam(ctx, "id")
	if err != nil {
		return
	}

	if err := c.communityService.LeaveCommunity(ctx.Request.Context(), userID, communityID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Left community"))
}

// RemoveMember lets a community admin remove a member
func (c *CommunityController) RemoveMember(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		abortUnauthenticated(ctx)
		return
	}

	var req dto.RemoveMemberRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(middleware.HandleValidationError(err)))
		return
	}

	if err := c.communityService.RemoveMember(ctx.Request.Context(), userID, req.CommunityID, req.MemberID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Member removed"))
}

// DeleteCommunity deletes a community
func (c *CommunityController) DeleteCommunity(ctx *gin.Context) {
	communityID, err := parseIDParam(ctx, "id")
	if err != nil {
		return
	}

	if err := c.communityService.DeleteCommunity(ctx.Request.Context(), communityID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Community deleted"))
}

// parseIDParam reads a positive int64 path parameter; on failure it writes the
// error response and returns a non-nil error.
func parseIDParam(ctx *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id < 1 {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid id parameter").WithField(name)))
		return 0, strconv.ErrSyntax
	}
	return id, nil
}

func abortUnauthenticated(ctx *gin.Context) {
	ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
		dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
}
