package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/emre/communia/internal/pkg/apperrors"
)

func statusFor(t *testing.T, err error) int {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	HandleAPIError(c, err)
	return w.Code
}

func TestHandleAPIErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"resource not found", apperrors.ErrResourceNotFound, http.StatusNotFound},
		{"community not found", apperrors.ErrCommunityNotFound, http.StatusNotFound},
		{"chat not found", apperrors.ErrChatNotFound, http.StatusNotFound},
		{"event not found", apperrors.ErrEventNotFound, http.StatusNotFound},
		{"not a member", apperrors.ErrNotMember, http.StatusNotFound},
		{"permission denied", apperrors.ErrPermissionDenied, http.StatusForbidden},
		{"admin in removal batch", apperrors.ErrCannotRemoveAdmin, http.StatusForbidden},
		{"username taken", apperrors.ErrUsernameOrEmailUsed, http.StatusBadRequest},
		{"already member", apperrors.ErrAlreadyMember, http.StatusBadRequest},
		{"duplicate chat title", apperrors.ErrChatTitleExists, http.StatusBadRequest},
		{"duplicate chat users", apperrors.ErrDuplicateChatUsers, http.StatusBadRequest},
		{"validation failure", apperrors.ErrValidationFailed, http.StatusBadRequest},
		{"invalid credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized},
		{"expired token", apperrors.ErrTokenExpired, http.StatusUnauthorized},
		{"unauthenticated", apperrors.ErrUnauthenticated, http.StatusUnauthorized},
		{"transaction conflict", apperrors.ErrTxConflict, http.StatusServiceUnavailable},
		{"unknown error", apperrors.NewCustomError(nil, "boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := statusFor(t, tt.err); got != tt.want {
				t.Errorf("status = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestHandleAPIErrorUnwrapsCustomErrors(t *testing.T) {
	err := apperrors.NewValidationError("event title is too short")
	if got := statusFor(t, err); got != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", got, http.StatusBadRequest)
	}

	wrapped := apperrors.NewCustomError(apperrors.ErrChatNotFound, "no such chat")
	if got := statusFor(t, wrapped); got != http.StatusNotFound {
		t.Errorf("status = %d, want %d", got, http.StatusNotFound)
	}

	// Errors annotated by the transaction runner must keep their sentinel in
	// the chain, so a rollback hiccup cannot turn a 403 into a 500.
	annotated := fmt.Errorf("%w (rollback failed: %v)", apperrors.ErrPermissionDenied, errors.New("conn closed"))
	if got := statusFor(t, annotated); got != http.StatusForbidden {
		t.Errorf("status = %d, want %d", got, http.StatusForbidden)
	}
}
