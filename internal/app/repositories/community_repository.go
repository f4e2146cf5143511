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

const communityColumns = `id, name, description, is_public, creator_id, status,
	admin_ids, member_ids, chat_ids, event_ids, visible_in_search, created_at`

// CommunityRepository handles database operations for communities
type CommunityRepository struct {
	db *pgxpool.Pool
}

// NewCommunityRepository creates a new CommunityRepository
func NewCommunityRepository(db *pgxpool.Pool) *CommunityRepository {
	return &CommunityRepository{db: db}
}

func (r *CommunityRepository) querier(q db.Querier) db.Querier {
	if q != nil {
		return q
	}
	return r.db
}

func scanCommunity(row pgx.Row) (*models.Community, error) {
	var community models.Community
	err := row.Scan(
		&community.ID,
		&community.Name,
		&community.Description,
		&community.IsPublic,
		&community.CreatorID,
		&community.Status,
		&community.AdminIDs,
		&community.MemberIDs,
		&community.ChatIDs,
		&community.EventIDs,
		&community.VisibleInSearch,
		&community.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &community, nil
}

// Create inserts a new community and returns its id
func (r *CommunityRepository) Create(ctx context.Context, q db.Querier, community *models.Community) (int64, error) {
	query := `
		INSERT INTO communities
			(name, description, is_public, creator_id, status, admin_ids, member_ids, chat_ids, event_ids, visible_in_search)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`

	var id int64
	err := r.querier(q).QueryRow(ctx, query,
		community.Name,
		community.Description,
		community.IsPublic,
		community.CreatorID,
		community.Status,
		community.AdminIDs,
		community.MemberIDs,
		community.ChatIDs,
		community.EventIDs,
		community.VisibleInSearch,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	return id, nil
}

// GetByID retrieves a community by id
func (r *CommunityRepository) GetByID(ctx context.Context, q db.Querier, id int64) (*models.Community, error) {
	query := fmt.Sprintf(`SELECT %s FROM communities WHERE id = $1`, communityColumns)

	community, err := scanCommunity(r.querier(q).QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCommunityNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return community, nil
}

// ListPublic retrieves all public communities
func (r *CommunityRepository) ListPublic(ctx context.Context, q db.Querier) ([]*models.Community, error) {
	query := squirrel.Select(
		"id", "name", "description", "is_public", "creator_id", "status",
		"admin_ids", "member_ids", "chat_ids", "event_ids", "visible_in_search", "created_at",
	).
		From("communities").
		Where("is_public = ?", true).
		OrderBy("id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	return r.list(ctx, q, sql, args)
}

// Search retrieves searchable communities whose name matches the given
// fragment, case-insensitively
func (r *CommunityRepository) Search(ctx context.Context, q db.Querier, name string) ([]*models.Community, error) {
	query := squirrel.Select(
		"id", "name", "description", "is_public", "creator_id", "status",
		"admin_ids", "member_ids", "chat_ids", "event_ids", "visible_in_search", "created_at",
	).
		From("communities").
		Where("name ILIKE ?", "%"+name+"%").
		Where("visible_in_search = ?", true).
		OrderBy("id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	return r.list(ctx, q, sql, args)
}

func (r *CommunityRepository) list(ctx context.Context, q db.Querier, sql string, args []interface{}) ([]*models.Community, error) {
	rows, err := r.querier(q).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	communities := []*models.Community{}
	for rows.Next() {
		community, err := scanCommunity(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		communities = append(communities, community)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return communities, nil
}

// Delete deletes a community
func (r *CommunityRepository) Delete(ctx context.Context, q db.Querier, id int64) error {
	query := squirrel.Delete("communities").
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
		return apperrors.ErrCommunityNotFound
	}

	return nil
}

// UpdateMembers replaces the member set of a community
func (r *CommunityRepository) UpdateMembers(ctx context.Context, q db.Querier, id int64, memberIDs []int64) error {
	query := `UPDATE communities SET member_ids = $1 WHERE id = $2`

	result, err := r.querier(q).Exec(ctx, query, memberIDs, id)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrCommunityNotFound
	}

	return nil
}

// AddChat adds chatID to the community's chat set if not already present
func (r *CommunityRepository) AddChat(ctx context.Context, q db.Querier, id, chatID int64) error {
	query := `
		UPDATE communities
		SET chat_ids = array_append(chat_ids, $1)
		WHERE id = $2 AND NOT ($1 = ANY(chat_ids))
	`

	_, err := r.querier(q).Exec(ctx, query, chatID, id)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	return nil
}

// RemoveChat pulls chatID from the community's chat set
func (r *CommunityRepository) RemoveChat(ctx context.Context, q db.Querier, id, chatID int64) error {
	query := `UPDATE communities SET chat_ids = array_remove(chat_ids, $1) WHERE id = $2`

	_, err := r.querier(q).Exec(ctx, query, chatID, id)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	return nil
}

// AddEvent adds eventID to the community's event set if not already present
func (r *CommunityRepository) AddEvent(ctx context.Context, q db.Querier, id, eventID int64) error {
	query := `
		UPDATE communities
		SET event_ids = array_append(event_ids, $1)
		WHERE id = $2 AND NOT ($1 = ANY(event_ids))
	`

	_, err := r.querier(q).Exec(ctx, query, eventID, id)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	return nil
}

// RemoveEvent pulls eventID from the community's event set
func (r *CommunityRepository) RemoveEvent(ctx context.Context, q db.Querier, id, eventID int64) error {
	query := `UPDATE communities SET event_ids = array_remove(event_ids, $1) WHERE id = $2`

	_, err := r.querier(q).Exec(ctx, query, eventID, id)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	return nil
}
