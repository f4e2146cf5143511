package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/emre/communia/internal/app/models"
	"github.com/emre/communia/internal/db"
	"github.com/emre/communia/internal/pkg/apperrors"
	"github.com/emre/communia/internal/pkg/helpers"
)

// memDB is an in-memory stand-in for the Postgres-backed stores. It mirrors
// the store semantics (add-to-set appends, array removes, sentinel errors)
// closely enough to exercise the services without a database.
type memDB struct {
	users       map[int64]*models.User
	communities map[int64]*models.Community
	chats       map[int64]*models.Chat
	threads     map[int64]*models.MessageThread
	messages    map[int64][]models.Message
	events      map[int64]*models.Event
	nextID      int64
}

func newMemDB() *memDB {
	return &memDB{
		users:       map[int64]*models.User{},
		communities: map[int64]*models.Community{},
		chats:       map[int64]*models.Chat{},
		threads:     map[int64]*models.MessageThread{},
		messages:    map[int64][]models.Message{},
		events:      map[int64]*models.Event{},
	}
}

func (d *memDB) id() int64 {
	d.nextID++
	return d.nextID
}

// WithTransaction satisfies db.TxRunner. The fakes apply writes directly;
// service preconditions run before any write, so a failed operation leaves no
// partial state here either.
func (d *memDB) WithTransaction(ctx context.Context, fn db.TxFunc) error {
	return fn(ctx, nil)
}

func copyIDs(ids []int64) []int64 {
	out := make([]int64, len(ids))
	copy(out, ids)
	return out
}

// --- user store fake ---

type memUserStore struct{ db *memDB }

func (s *memUserStore) Create(_ context.Context, _ db.Querier, user *models.User) (int64, error) {
	for _, u := range s.db.users {
		if u.Username == user.Username || u.Email == user.Email {
			return 0, apperrors.ErrUsernameOrEmailUsed
		}
	}
	id := s.db.id()
	stored := *user
	stored.ID = id
	stored.ChatIDs = copyIDs(user.ChatIDs)
	stored.CreatedAt = time.Now()
	s.db.users[id] = &stored
	return id, nil
}

func (s *memUserStore) GetByID(_ context.Context, _ db.Querier, id int64) (*models.User, error) {
	user, ok := s.db.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	out := *user
	out.ChatIDs = copyIDs(user.ChatIDs)
	return &out, nil
}

func (s *memUserStore) GetByEmail(_ context.Context, _ db.Querier, email string) (*models.User, error) {
	for _, user := range s.db.users {
		if user.Email == email {
			out := *user
			out.ChatIDs = copyIDs(user.ChatIDs)
			return &out, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (s *memUserStore) UsernameOrEmailExists(_ context.Context, _ db.Querier, username, email string) (bool, error) {
	for _, user := range s.db.users {
		if user.Username == username || user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (s *memUserStore) AddChatToUsers(_ context.Context, _ db.Querier, chatID int64, userIDs []int64) error {
	for _, id := range userIDs {
		if user, ok := s.db.users[id]; ok && !helpers.ContainsID(user.ChatIDs, chatID) {
			user.ChatIDs = append(user.ChatIDs, chatID)
		}
	}
	return nil
}

func (s *memUserStore) RemoveChatFromUsers(_ context.Context, _ db.Querier, chatID int64, userIDs []int64) error {
	for _, id := range userIDs {
		if user, ok := s.db.users[id]; ok {
			user.ChatIDs = helpers.RemoveID(user.ChatIDs, chatID)
		}
	}
	return nil
}

// --- community store fake ---

type memCommunityStore struct{ db *memDB }

func (s *memCommunityStore) Create(_ context.Context, _ db.Querier, community *models.Community) (int64, error) {
	id := s.db.id()
	stored := *community
	stored.ID = id
	stored.AdminIDs = copyIDs(community.AdminIDs)
	stored.MemberIDs = copyIDs(community.MemberIDs)
	stored.ChatIDs = copyIDs(community.ChatIDs)
	stored.EventIDs = copyIDs(community.EventIDs)
	stored.CreatedAt = time.Now()
	s.db.communities[id] = &stored
	return id, nil
}

func (s *memCommunityStore) GetByID(_ context.Context, _ db.Querier, id int64) (*models.Community, error) {
	community, ok := s.db.communities[id]
	if !ok {
		return nil, apperrors.ErrCommunityNotFound
	}
	out := *community
	out.AdminIDs = copyIDs(community.AdminIDs)
	out.MemberIDs = copyIDs(community.MemberIDs)
	out.ChatIDs = copyIDs(community.ChatIDs)
	out.EventIDs = copyIDs(community.EventIDs)
	return &out, nil
}

func (s *memCommunityStore) ListPublic(_ context.Context, _ db.Querier) ([]*models.Community, error) {
	var out []*models.Community
	for _, community := range s.db.communities {
		if community.IsPublic {
			c, _ := s.GetByID(context.Background(), nil, community.ID)
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *memCommunityStore) Search(_ context.Context, _ db.Querier, name string) ([]*models.Community, error) {
	var out []*models.Community
	for _, community := range s.db.communities {
		if community.VisibleInSearch && strings.Contains(strings.ToLower(community.Name), strings.ToLower(name)) {
			c, _ := s.GetByID(context.Background(), nil, community.ID)
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *memCommunityStore) Delete(_ context.Context, _ db.Querier, id int64) error {
	if _, ok := s.db.communities[id]; !ok {
		return apperrors.ErrCommunityNotFound
	}
	delete(s.db.communities, id)
	return nil
}

func (s *memCommunityStore) UpdateMembers(_ context.Context, _ db.Querier, id int64, memberIDs []int64) error {
	community, ok := s.db.communities[id]
	if !ok {
		return apperrors.ErrCommunityNotFound
	}
	community.MemberIDs = copyIDs(memberIDs)
	return nil
}

func (s *memCommunityStore) AddChat(_ context.Context, _ db.Querier, id, chatID int64) error {
	community, ok := s.db.communities[id]
	if !ok {
		return apperrors.ErrCommunityNotFound
	}
	if !helpers.ContainsID(community.ChatIDs, chatID) {
		community.ChatIDs = append(community.ChatIDs, chatID)
	}
	return nil
}

func (s *memCommunityStore) RemoveChat(_ context.Context, _ db.Querier, id, chatID int64) error {
	community, ok := s.db.communities[id]
	if !ok {
		return apperrors.ErrCommunityNotFound
	}
	community.ChatIDs = helpers.RemoveID(community.ChatIDs, chatID)
	return nil
}

func (s *memCommunityStore) AddEvent(_ context.Context, _ db.Querier, id, eventID int64) error {
	community, ok := s.db.communities[id]
	if !ok {
		return apperrors.ErrCommunityNotFound
	}
	if !helpers.ContainsID(community.EventIDs, eventID) {
		community.EventIDs = append(community.EventIDs, eventID)
	}
	return nil
}

func (s *memCommunityStore) RemoveEvent(_ context.Context, _ db.Querier, id, eventID int64) error {
	community, ok := s.db.communities[id]
	if !ok {
		return apperrors.ErrCommunityNotFound
	}
	community.EventIDs = helpers.RemoveID(community.EventIDs, eventID)
	return nil
}

// --- chat store fake ---

type memChatStore struct{ db *memDB }

func (s *memChatStore) Create(_ context.Context, _ db.Querier, chat *models.Chat) (int64, error) {
	id := s.db.id()
	stored := *chat
	stored.ID = id
	stored.UserIDs = copyIDs(chat.UserIDs)
	stored.CreatedAt = time.Now()
	s.db.chats[id] = &stored
	return id, nil
}

func (s *memChatStore) GetByID(_ context.Context, _ db.Querier, id int64) (*models.Chat, error) {
	chat, ok := s.db.chats[id]
	if !ok {
		return nil, apperrors.ErrChatNotFound
	}
	out := *chat
	out.UserIDs = copyIDs(chat.UserIDs)
	return &out, nil
}

func (s *memChatStore) TitleExists(_ context.Context, _ db.Querier, communityID int64, title string) (bool, error) {
	for _, chat := range s.db.chats {
		if chat.CommunityID == communityID && chat.Title == title {
			return true, nil
		}
	}
	return false, nil
}

func (s *memChatStore) UpdateUsers(_ context.Context, _ db.Querier, id int64, userIDs []int64) error {
	chat, ok := s.db.chats[id]
	if !ok {
		return apperrors.ErrChatNotFound
	}
	chat.UserIDs = copyIDs(userIDs)
	return nil
}

func (s *memChatStore) Delete(_ context.Context, _ db.Querier, id int64) error {
	if _, ok := s.db.chats[id]; !ok {
		return apperrors.ErrChatNotFound
	}
	delete(s.db.chats, id)
	return nil
}

func (s *memChatStore) ListByIDs(_ context.Context, _ db.Querier, ids []int64) ([]*models.Chat, error) {
	var out []*models.Chat
	for _, id := range ids {
		if chat, err := s.GetByID(context.Background(), nil, id); err == nil {
			out = append(out, chat)
		}
	}
	return out, nil
}

// --- thread store fake ---

type memThreadStore struct{ db *memDB }

func (s *memThreadStore) Create(_ context.Context, _ db.Querier) (int64, error) {
	id := s.db.id()
	s.db.threads[id] = &models.MessageThread{ID: id, UpdatedAt: time.Now()}
	return id, nil
}

func (s *memThreadStore) GetByID(_ context.Context, _ db.Querier, id int64) (*models.MessageThread, error) {
	thread, ok := s.db.threads[id]
	if !ok {
		return nil, apperrors.ErrResourceNotFound
	}
	out := *thread
	return &out, nil
}

func (s *memThreadStore) Delete(_ context.Context, _ db.Querier, id int64) error {
	if _, ok := s.db.threads[id]; !ok {
		return apperrors.ErrResourceNotFound
	}
	// chats.thread_id references message_threads, so mirror the database and
	// refuse to delete a thread a chat still points at.
	for _, chat := range s.db.chats {
		if chat.ThreadID == id {
			return fmt.Errorf("thread %d still referenced by chat %d", id, chat.ID)
		}
	}
	delete(s.db.threads, id)
	delete(s.db.messages, id)
	return nil
}

func (s *memThreadStore) AppendMessage(_ context.Context, _ db.Querier, msg *models.Message) (int64, error) {
	if _, ok := s.db.threads[msg.ThreadID]; !ok {
		return 0, apperrors.ErrResourceNotFound
	}
	id := s.db.id()
	stored := *msg
	stored.ID = id
	s.db.messages[msg.ThreadID] = append(s.db.messages[msg.ThreadID], stored)
	s.db.threads[msg.ThreadID].UpdatedAt = time.Now()
	return id, nil
}

func (s *memThreadStore) ListMessages(_ context.Context, _ db.Querier, threadID int64) ([]models.Message, error) {
	out := make([]models.Message, len(s.db.messages[threadID]))
	copy(out, s.db.messages[threadID])
	return out, nil
}

// --- event store fake ---

type memEventStore struct{ db *memDB }

func (s *memEventStore) Create(_ context.Context, _ db.Querier, event *models.Event) (int64, error) {
	id := s.db.id()
	stored := *event
	stored.ID = id
	s.db.events[id] = &stored
	return id, nil
}

func (s *memEventStore) GetByID(_ context.Context, _ db.Querier, id int64) (*models.Event, error) {
	event, ok := s.db.events[id]
	if !ok {
		return nil, apperrors.ErrEventNotFound
	}
	out := *event
	return &out, nil
}

func (s *memEventStore) Delete(_ context.Context, _ db.Querier, id int64) error {
	if _, ok := s.db.events[id]; !ok {
		return apperrors.ErrEventNotFound
	}
	delete(s.db.events, id)
	return nil
}

func (s *memEventStore) ListByCommunity(_ context.Context, _ db.Querier, communityID int64) ([]*models.Event, error) {
	var out []*models.Event
	for _, event := range s.db.events {
		if event.CommunityID == communityID {
			e := *event
			out = append(out, &e)
		}
	}
	return out, nil
}
