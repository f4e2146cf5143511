package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emre/communia/internal/app/models"
	"github.com/emre/communia/internal/db"
	"github.com/emre/communia/internal/pkg/apperrors"
)

// EventRepository handles database operations for events
type EventRepository struct {
	db *pgxpool.Pool
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) querier(q db.Querier) db.Querier {
	if q != nil {
		return q
	}
	return r.db
}

// Create inserts a new event and returns its id
func (r *EventRepository) Create(ctx context.Context, q db.Querier, event *models.Event) (int64, error) {
	query := `
		INSERT INTO events (title, description, event_date, community_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	var id int64
	err := r.querier(q).QueryRow(ctx, query,
		event.Title, event.Description, event.Date, event.CommunityID).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	return id, nil
}

// GetByID retrieves an event by id
func (r *EventRepository) GetByID(ctx context.Context, q db.Querier, id int64) (*models.Event, error) {
	query := `
		SELECT id, title, description, event_date, community_id
		FROM events
		WHERE id = $1
	`

	var event models.Event
	err := r.querier(q).QueryRow(ctx, query, id).Scan(
		&event.ID,
		&event.Title,
		&event.Description,
		&event.Date,
		&event.CommunityID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return &event, nil
}

// Delete deletes an event
func (r *EventRepository) Delete(ctx context.Context, q db.Querier, id int64) error {
	query := squirrel.Delete("events").
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.querier(q).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrEventNotFound
	}

	return nil
}

// ListByCommunity retrieves all events of a community
func (r *EventRepository) ListByCommunity(ctx context.Context, q db.Querier, communityID int64) ([]*models.Event, error) {
	query := squirrel.Select("id", "title", "description", "event_date", "community_id").
		From("events").
		Where("community_id = ?", communityID).
		OrderBy("event_date").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.querier(q).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	events := []*models.Event{}
	for rows.Next() {
		var event models.Event
		err := rows.Scan(
			&event.ID,
			&event.Title,
			&event.Description,
			&event.Date,
			&event.CommunityID,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		events = append(events, &event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return events, nil
}
