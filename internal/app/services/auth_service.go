package services

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/emre/communia/internal/app/models"
	"github.com/emre/communia/internal/app/models/dto"
	"github.com/emre/communia/internal/pkg/apperrors"
	"github.com/emre/communia/internal/pkg/auth"
)

// AuthService defines the interface for authentication operations
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	// LoadUser resolves the user referenced by a validated token. A missing
	// user means the token no longer identifies anyone.
	LoadUser(ctx context.Context, userID int64) (*models.User, error)
}

// authServiceImpl implements AuthService
type authServiceImpl struct {
	userStore  UserStore
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(userStore UserStore, jwtService *auth.JWTService, logger zerolog.Logger) AuthService {
	return &authServiceImpl{
		userStore:  userStore,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Register creates a user account and returns a fresh token
func (s *authServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenResponse, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	taken, err := s.userStore.UsernameOrEmailExists(ctx, nil, username, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperrors.ErrUsernameOrEmailUsed
	}

	if err := auth.ValidatePasswordStrength(req.Password); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		ChatIDs:      []int64{},
	}
	id, err := s.userStore.Create(ctx, nil, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("userId", id).
		Str("username", username).
		Msg("User registered")

	return s.issueToken(id)
}

// Login verifies credentials and returns a fresh token. Both an unknown email
// and a wrong password report the same invalid-credentials error.
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userStore.GetByEmail(ctx, nil, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	s.logger.Debug().
		Int64("userId", user.ID).
		Msg("User logged in")

	return s.issueToken(user.ID)
}

// LoadUser loads the account behind a token's user id
func (s *authServiceImpl) LoadUser(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.userStore.GetByID(ctx, nil, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrUnauthenticated
		}
		return nil, err
	}
	return user, nil
}

func (s *authServiceImpl) issueToken(userID int64) (*dto.TokenResponse, error) {
	token, expiresIn, err := s.jwtService.GenerateToken(userID)
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: expiresIn,
	}, nil
}
