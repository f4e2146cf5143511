package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emre/communia/internal/app/models/dto"
)

// APIKeyMiddleware gates the API surface behind a shared key. The key is
// accepted from the X-API-Key header or the api_key query parameter.
func APIKeyMiddleware(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		provided := c.GetHeader("X-API-Key")
		if provided == "" {
			provided = c.Query("api_key")
		}

		if provided == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(apiKey)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
				dto.NewErrorDetail(dto.ErrorCodeInvalidAPIKey, "Invalid or missing API key")))
			return
		}

		c.Next()
	}
}
