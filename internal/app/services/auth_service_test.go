package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/emre/communia/internal/app/models/dto"
	"github.com/emre/communia/internal/pkg/apperrors"
	"github.com/emre/communia/internal/pkg/auth"
)

func newAuthFixture() (*memDB, AuthService) {
	d := newMemDB()
	d.nextID = 100

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret-key",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "communia.test",
	})

	svc := NewAuthService(&memUserStore{d}, jwtService, zerolog.Nop())
	return d, svc
}

func registerRequest() *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Username: "gopher",
		Email:    "gopher@example.com",
		Password: "correct-horse-battery-staple",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	_, svc := newAuthFixture()

	token, err := svc.Register(context.Background(), registerRequest())
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if token.Token == "" || token.TokenType != "Bearer" {
		t.Errorf("token = %+v, want a bearer token", token)
	}

	login, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "gopher@example.com",
		Password: "correct-horse-battery-staple",
	})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if login.Token == "" {
		t.Error("login returned an empty token")
	}
}

func TestRegisterDuplicate(t *testing.T) {
	_, svc := newAuthFixture()

	if _, err := svc.Register(context.Background(), registerRequest()); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	_, err := svc.Register(context.Background(), registerRequest())
	if !errors.Is(err, apperrors.ErrUsernameOrEmailUsed) {
		t.Fatalf("err = %v, want ErrUsernameOrEmailUsed", err)
	}
}

func TestRegisterWeakPassword(t *testing.T) {
	_, svc := newAuthFixture()

	req := registerRequest()
	req.Password = "aaaaaaaa"
	_, err := svc.Register(context.Background(), req)
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("err = %v, want ErrValidationFailed", err)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	_, svc := newAuthFixture()

	if _, err := svc.Register(context.Background(), registerRequest()); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	tests := []struct {
		name string
		req  dto.LoginRequest
	}{
		{"wrong password", dto.LoginRequest{Email: "gopher@example.com", Password: "not-the-password"}},
		{"unknown email", dto.LoginRequest{Email: "nobody@example.com", Password: "correct-horse-battery-staple"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), &tt.req)
			if !errors.Is(err, apperrors.ErrInvalidCredentials) {
				t.Fatalf("err = %v, want ErrInvalidCredentials", err)
			}
		})
	}
}

func TestLoadUser(t *testing.T) {
	d, svc := newAuthFixture()

	if _, err := svc.Register(context.Background(), registerRequest()); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	var userID int64
	for id := range d.users {
		userID = id
	}

	user, err := svc.LoadUser(context.Background(), userID)
	if err != nil {
		t.Fatalf("LoadUser failed: %v", err)
	}
	if user.Username != "gopher" {
		t.Errorf("username = %q, want %q", user.Username, "gopher")
	}

	if _, err := svc.LoadUser(context.Background(), 9999); !errors.Is(err, apperrors.ErrUnauthenticated) {
		t.Fatalf("err = %v, want ErrUnauthenticated for a deleted account", err)
	}
}
