package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emre/communia/internal/app/models"
	"github.com/emre/communia/internal/db"
	"github.com/emre/communia/internal/pkg/apperrors"
)

// ThreadRepository handles database operations for message threads and the
// messages embedded in them
type ThreadRepository struct {
	db *pgxpool.Pool
}

// NewThreadRepository creates a new ThreadRepository
func NewThreadRepository(db *pgxpool.Pool) *ThreadRepository {
	return &ThreadRepository{db: db}
}

func (r *ThreadRepository) querier(q db.Querier) db.Querier {
	if q != nil {
		return q
	}
	return r.db
}

// Create inserts an empty message thread and returns its id
func (r *ThreadRepository) Create(ctx context.Context, q db.Querier) (int64, error) {
	query := `INSERT INTO message_threads (unseen_count) VALUES (0) RETURNING id`

	var id int64
	err := r.querier(q).QueryRow(ctx, query).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	return id, nil
}

// GetByID retrieves a thread without its messages
func (r *ThreadRepository) GetByID(ctx context.Context, q db.Querier, id int64) (*models.MessageThread, error) {
	query := `SELECT id, unseen_count, updated_at FROM message_threads WHERE id = $1`

	var thread models.MessageThread
	err := r.querier(q).QueryRow(ctx, query, id).Scan(
		&thread.ID,
		&thread.UnseenCount,
		&thread.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return &thread, nil
}

// Delete removes a thread and, through the messages foreign key, its messages
func (r *ThreadRepository) Delete(ctx context.Context, q db.Querier, id int64) error {
	qr := r.querier(q)

	if _, err := qr.Exec(ctx, `DELETE FROM messages WHERE thread_id = $1`, id); err != nil {
		return fmt.Errorf("error deleting thread messages: %w", err)
	}

	result, err := qr.Exec(ctx, `DELETE FROM message_threads WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}

	return nil
}

// AppendMessage appends a message to a thread and bumps the thread's
// updated_at, mirroring the append-only nature of the sequence
func (r *ThreadRepository) AppendMessage(ctx context.Context, q db.Querier, msg *models.Message) (int64, error) {
	reactions := msg.Reactions
	if reactions == nil {
		reactions = []models.MessageReaction{}
	}
	reactionsJSON, err := json.Marshal(reactions)
	if err != nil {
		return 0, fmt.Errorf("error encoding reactions: %w", err)
	}

	qr := r.querier(q)

	query := `
		INSERT INTO messages (thread_id, text, media, sender_name, sender_id, sent_at, read_status, read_at, reactions)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	var id int64
	err = qr.QueryRow(ctx, query,
		msg.ThreadID,
		msg.Text,
		msg.Media,
		msg.Sender.Name,
		msg.Sender.ID,
		msg.SentAt,
		msg.Read.Status,
		msg.Read.Time,
		reactionsJSON,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	if _, err := qr.Exec(ctx, `UPDATE message_threads SET updated_at = NOW() WHERE id = $1`, msg.ThreadID); err != nil {
		return 0, fmt.Errorf("error touching thread: %w", err)
	}

	return id, nil
}

// ListMessages retrieves the thread's messages in append order
func (r *ThreadRepository) ListMessages(ctx context.Context, q db.Querier, threadID int64) ([]models.Message, error) {
	query := `
		SELECT id, thread_id, text, media, sender_name, sender_id, sent_at, read_status, read_at, reactions
		FROM messages
		WHERE thread_id = $1
		ORDER BY id
	`

	rows, err := r.querier(q).Query(ctx, query, threadID)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	messages := []models.Message{}
	for rows.Next() {
		var msg models.Message
		var reactionsJSON []byte
		err := rows.Scan(
			&msg.ID,
			&msg.ThreadID,
			&msg.Text,
			&msg.Media,
			&msg.Sender.Name,
			&msg.Sender.ID,
			&msg.SentAt,
			&msg.Read.Status,
			&msg.Read.Time,
			&reactionsJSON,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		if len(reactionsJSON) > 0 {
			if err := json.Unmarshal(reactionsJSON, &msg.Reactions); err != nil {
				return nil, fmt.Errorf("error decoding reactions: %w", err)
			}
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return messages, nil
}
