package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/emre/communia/internal/app/models"
	"github.com/emre/communia/internal/app/models/dto"
	"github.com/emre/communia/internal/app/services"
	"github.com/emre/communia/internal/pkg/auth"
)

// Context keys set by the auth middleware
const (
	ContextUserIDKey = "userID"
	ContextUserKey   = "user"
)

// AuthMiddleware authenticates requests with bearer tokens
type AuthMiddleware struct {
	jwtService  *auth.JWTService
	authService services.AuthService
	logger      zerolog.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService, authService services.AuthService, logger zerolog.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService:  jwtService,
		authService: authService,
		logger:      logger,
	}
}

// Authenticate validates the bearer token and loads the account it refers to.
// The request only proceeds when the token is valid AND the user still
// exists.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := auth.ExtractBearerToken(c.GetHeader("Authorization"))
		if err != nil {
			m.abortUnauthorized(c, dto.ErrorCodeUnauthorized, "Authorization token required")
			return
		}

		claims, err := m.jwtService.ValidateAndExtractClaims(tokenString)
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				m.abortUnauthorized(c, dto.ErrorCodeExpiredToken, "Token expired")
				return
			}
			m.logger.Debug().Err(err).Msg("Token validation failed")
			m.abortUnauthorized(c, dto.ErrorCodeInvalidToken, "Invalid token")
			return
		}

		user, err := m.authService.LoadUser(c.Request.Context(), claims.UserID)
		if err != nil {
			m.logger.Debug().Err(err).Int64("userId", claims.UserID).Msg("Token user could not be loaded")
			m.abortUnauthorized(c, dto.ErrorCodeInvalidToken, "Invalid token")
			return
		}

		c.Set(ContextUserIDKey, user.ID)
		c.Set(ContextUserKey, user)
		c.Next()
	}
}

func (m *AuthMiddleware) abortUnauthorized(c *gin.Context, code dto.ErrorCode, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
		dto.NewErrorDetail(code, message)))
}

// GetUserID extracts the authenticated user's id from the gin context
func GetUserID(c *gin.Context) (int64, bool) {
	value, exists := c.Get(ContextUserIDKey)
	if !exists {
		return 0, false
	}
	userID, ok := value.(int64)
	return userID, ok
}

// GetUser extracts the authenticated user from the gin context
func GetUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}
