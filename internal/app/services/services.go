package services

import (
	"context"

	"github.com/emre/communia/internal/app/models"
	"github.com/emre/communia/internal/db"
)

// The services depend on narrow store interfaces rather than the concrete
// repository types so they can be exercised against in-memory stores.
// All are satisfied by the repositories package.

// UserStore covers the user rows a service touches.
type UserStore interface {
	Create(ctx context.Context, q db.Querier, user *models.User) (int64, error)
	GetByID(ctx context.Context, q db.Querier, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, q db.Querier, email string) (*models.User, error)
	UsernameOrEmailExists(ctx context.Context, q db.Querier, username, email string) (bool, error)
	AddChatToUsers(ctx context.Context, q db.Querier, chatID int64, userIDs []int64) error
	RemoveChatFromUsers(ctx context.Context, q db.Querier, chatID int64, userIDs []int64) error
}

// CommunityStore covers community rows and their reference arrays.
type CommunityStore interface {
	Create(ctx context.Context, q db.Querier, community *models.Community) (int64, error)
	GetByID(ctx context.Context, q db.Querier, id int64) (*models.Community, error)
	ListPublic(ctx context.Context, q db.Querier) ([]*models.Community, error)
	Search(ctx context.Context, q db.Querier, name string) ([]*models.Community, error)
	Delete(ctx context.Context, q db.Querier, id int64) error
	UpdateMembers(ctx context.Context, q db.Querier, id int64, memberIDs []int64) error
	AddChat(ctx context.Context, q db.Querier, id, chatID int64) error
	RemoveChat(ctx context.Context, q db.Querier, id, chatID int64) error
	AddEvent(ctx context.Context, q db.Querier, id, eventID int64) error
	RemoveEvent(ctx context.Context, q db.Querier, id, eventID int64) error
}

// ChatStore covers chat rows.
type ChatStore interface {
	Create(ctx context.Context, q db.Querier, chat *models.Chat) (int64, error)
	GetByID(ctx context.Context, q db.Querier, id int64) (*models.Chat, error)
	TitleExists(ctx context.Context, q db.Querier, communityID int64, title string) (bool, error)
	UpdateUsers(ctx context.Context, q db.Querier, id int64, userIDs []int64) error
	Delete(ctx context.Context, q db.Querier, id int64) error
	ListByIDs(ctx context.Context, q db.Querier, ids []int64) ([]*models.Chat, error)
}

// ThreadStore covers message threads and their messages.
type ThreadStore interface {
	Create(ctx context.Context, q db.Querier) (int64, error)
	GetByID(ctx context.Context, q db.Querier, id int64) (*models.MessageThread, error)
	Delete(ctx context.Context, q db.Querier, id int64) error
	AppendMessage(ctx context.Context, q db.Querier, msg *models.Message) (int64, error)
	ListMessages(ctx context.Context, q db.Querier, threadID int64) ([]models.Message, error)
}

// EventStore covers event rows.
type EventStore interface {
	Create(ctx context.Context, q db.Querier, event *models.Event) (int64, error)
	GetByID(ctx context.Context, q db.Querier, id int64) (*models.Event, error)
	Delete(ctx context.Context, q db.Querier, id int64) error
	ListByCommunity(ctx context.Context, q db.Querier, communityID int64) ([]*models.Event, error)
}
