package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emre/communia/internal/app/models/dto"
	"github.com/emre/communia/internal/pkg/apperrors"
	"github.com/emre/communia/internal/pkg/logger"
)

// HandleAPIError maps service errors to HTTP responses. Controllers funnel
// every non-nil service error through here so the status taxonomy lives in
// one place.
func HandleAPIError(c *gin.Context, err error) {
	message := err.Error()
	var customErr *apperrors.CustomError
	if errors.As(err, &customErr) && customErr.Message != "" {
		message = customErr.Message
	}

	switch {
	case apperrors.Is(err, apperrors.ErrResourceNotFound,
		apperrors.ErrUserNotFound,
		apperrors.ErrCommunityNotFound,
		apperrors.ErrChatNotFound,
		apperrors.ErrEventNotFound,
		apperrors.ErrNotMember):
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, message)))

	case apperrors.Is(err, apperrors.ErrPermissionDenied,
		apperrors.ErrCannotRemoveAdmin):
		c.JSON(http.StatusForbidden, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeForbidden, message)))

	case apperrors.Is(err, apperrors.ErrConflict,
		apperrors.ErrResourceAlreadyExists,
		apperrors.ErrUsernameOrEmailUsed,
		apperrors.ErrAlreadyMember,
		apperrors.ErrChatTitleExists,
		apperrors.ErrDuplicateChatUsers):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeConflict, message)))

	case apperrors.Is(err, apperrors.ErrValidationFailed, apperrors.ErrBadRequest):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, message)))

	case errors.Is(err, apperrors.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Invalid credentials")))

	case errors.Is(err, apperrors.ErrTokenExpired):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token expired")))

	case apperrors.Is(err, apperrors.ErrTokenInvalid, apperrors.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidToken, message)))

	case errors.Is(err, apperrors.ErrTxConflict):
		// Lost a serializable transaction race; the client should retry
		c.JSON(http.StatusServiceUnavailable, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeTransactionConflict, "Operation conflicted with a concurrent request, please retry")))

	default:
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled API error")
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInternalServer, "An internal error occurred")))
	}
}

// HandleValidationError converts a request binding failure into an error
// detail
func HandleValidationError(err error) *dto.ErrorDetail {
	return dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid request format").
		WithDetails(err.Error())
}
