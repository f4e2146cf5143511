package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all repository instances
type Repositories struct {
	User      *UserRepository
	Community *CommunityRepository
	Chat      *ChatRepository
	Thread    *ThreadRepository
	Event     *EventRepository
}

// NewRepositories creates all repositories backed by the given pool
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		User:      NewUserRepository(db),
		Community: NewCommunityRepository(db),
		Chat:      NewChatRepository(db),
		Thread:    NewThreadRepository(db),
		Event:     NewEventRepository(db),
	}
}
