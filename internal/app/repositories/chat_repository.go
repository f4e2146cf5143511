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

// ChatRepository handles database operations for chats
type ChatRepository struct {
	db *pgxpool.Pool
}

// NewChatRepository creates a new ChatRepository
func NewChatRepository(db *pgxpool.Pool) *ChatRepository {
	return &ChatRepository{db: db}
}

func (r *ChatRepository) querier(q db.Querier) db.Querier {
	if q != nil {
		return q
	}
	return r.db
}

// Create inserts a new chat and returns its id
func (r *ChatRepository) Create(ctx context.Context, q db.Querier, chat *models.Chat) (int64, error) {
	query := `
		INSERT INTO chats (title, community_id, user_ids, creator_id, thread_id, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := r.querier(q).QueryRow(ctx, query,
		chat.Title,
		chat.CommunityID,
		chat.UserIDs,
		chat.CreatorID,
		chat.ThreadID,
		chat.Status,
	).Scan(&chat.ID, &chat.CreatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return 0, apperrors.ErrChatTitleExists
		}
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	return chat.ID, nil
}

// GetByID retrieves a chat by id
func (r *ChatRepository) GetByID(ctx context.Context, q db.Querier, id int64) (*models.Chat, error) {
	query := `
		SELECT id, title, community_id, user_ids, creator_id, thread_id, status, created_at
		FROM chats
		WHERE id = $1
	`

	var chat models.Chat
	err := r.querier(q).QueryRow(ctx, query, id).Scan(
		&chat.ID,
		&chat.Title,
		&chat.CommunityID,
		&chat.UserIDs,
		&chat.CreatorID,
		&chat.ThreadID,
		&chat.Status,
		&chat.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrChatNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return &chat, nil
}

// TitleExists reports whether the community already has a chat with the title
func (r *ChatRepository) TitleExists(ctx context.Context, q db.Querier, communityID int64, title string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM chats WHERE community_id = $1 AND title = $2)`

	var exists bool
	err := r.querier(q).QueryRow(ctx, query, communityID, title).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error executing query: %w", err)
	}

	return exists, nil
}

// UpdateUsers replaces the participant set of a chat
func (r *ChatRepository) UpdateUsers(ctx context.Context, q db.Querier, id int64, userIDs []int64) error {
	query := `UPDATE chats SET user_ids = $1 WHERE id = $2`

	result, err := r.querier(q).Exec(ctx, query, userIDs, id)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrChatNotFound
	}

	return nil
}

// Delete deletes a chat
func (r *ChatRepository) Delete(ctx context.Context, q db.Querier, id int64) error {
	query := `DELETE FROM chats WHERE id = $1`

	result, err := r.querier(q).Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrChatNotFound
	}

	return nil
}

// ListByIDs retrieves the chats with the given ids
func (r *ChatRepository) ListByIDs(ctx context.Context, q db.Querier, ids []int64) ([]*models.Chat, error) {
	if len(ids) == 0 {
		return []*models.Chat{}, nil
	}

	query := `
		SELECT id, title, community_id, user_ids, creator_id, thread_id, status, created_at
		FROM chats
		WHERE id = ANY($1)
		ORDER BY id
	`

	rows, err := r.querier(q).Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	chats := []*models.Chat{}
	for rows.Next() {
		var chat models.Chat
		err := rows.Scan(
			&chat.ID,
			&chat.Title,
			&chat.CommunityID,
			&chat.UserIDs,
			&chat.CreatorID,
			&chat.ThreadID,
			&chat.Status,
			&chat.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		chats = append(chats, &chat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return chats, nil
}
