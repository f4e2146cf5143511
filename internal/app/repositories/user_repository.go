package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emre/communia/internal/app/models"
	"github.com/emre/communia/internal/db"
	"github.com/emre/communia/internal/pkg/apperrors"
	"github.com/emre/communia/internal/pkg/dberrors"
)

// UserRepository handles database operations for users
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// querier resolves the effective querier: the transaction when one is in
// flight, the pool otherwise.
func (r *UserRepository) querier(q db.Querier) db.Querier {
	if q != nil {
		return q
	}
	return r.db
}

// Create inserts a new user and returns its id
func (r *UserRepository) Create(ctx context.Context, q db.Querier, user *models.User) (int64, error) {
	query := `
		INSERT INTO users (username, email, password_hash, chat_ids)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	var id int64
	err := r.querier(q).QueryRow(ctx, query,
		user.Username, user.Email, user.PasswordHash, []int64{}).Scan(&id)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return 0, apperrors.ErrUsernameOrEmailUsed
		}
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	return id, nil
}

// GetByID retrieves a user by id
func (r *UserRepository) GetByID(ctx context.Context, q db.Querier, id int64) (*models.User, error) {
	query := `
		SELECT id, username, email, password_hash, chat_ids, created_at
		FROM users
		WHERE id = $1
	`

	var user models.User
	err := r.querier(q).QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.ChatIDs,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return &user, nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, q db.Querier, email string) (*models.User, error) {
	query := `
		SELECT id, username, email, password_hash, chat_ids, created_at
		FROM users
		WHERE email = $1
	`

	var user models.User
	err := r.querier(q).QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.ChatIDs,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return &user, nil
}

// UsernameOrEmailExists reports whether any user already holds the given
// username or email
func (r *UserRepository) UsernameOrEmailExists(ctx context.Context, q db.Querier, username, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1 OR email = $2)`

	var exists bool
	err := r.querier(q).QueryRow(ctx, query, username, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error executing query: %w", err)
	}

	return exists, nil
}

// AddChatToUsers adds chatID to the chat_ids set of every listed user.
// Users that already reference the chat are left untouched.
func (r *UserRepository) AddChatToUsers(ctx context.Context, q db.Querier, chatID int64, userIDs []int64) error {
	query := `
		UPDATE users
		SET chat_ids = array_append(chat_ids, $1)
		WHERE id = ANY($2) AND NOT ($1 = ANY(chat_ids))
	`

	_, err := r.querier(q).Exec(ctx, query, chatID, userIDs)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	return nil
}

// RemoveChatFromUsers pulls chatID from the chat_ids set of every listed user
func (r *UserRepository) RemoveChatFromUsers(ctx context.Context, q db.Querier, chatID int64, userIDs []int64) error {
	query := `
		UPDATE users
		SET chat_ids = array_remove(chat_ids, $1)
		WHERE id = ANY($2)
	`

	_, err := r.querier(q).Exec(ctx, query, chatID, userIDs)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	return nil
}
