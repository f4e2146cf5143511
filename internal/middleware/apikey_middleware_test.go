package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newAPIKeyRouter(key string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(APIKeyMiddleware(key))
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
	return router
}

func TestAPIKeyMiddleware(t *testing.T) {
	router := newAPIKeyRouter("secret-key")

	tests := []struct {
		name   string
		target string
		header string
		want   int
	}{
		{"header key", "/ping", "secret-key", http.StatusOK},
		{"query key", "/ping?api_key=secret-key", "", http.StatusOK},
		{"wrong key", "/ping", "other-key", http.StatusUnauthorized},
		{"missing key", "/ping", "", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.header != "" {
				req.Header.Set("X-API-Key", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}
