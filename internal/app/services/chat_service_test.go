package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/emre/communia/internal/app/models"
	"github.com/emre/communia/internal/app/models/dto"
	"github.com/emre/communia/internal/pkg/apperrors"
	"github.com/emre/communia/internal/pkg/helpers"
)

const (
	adminID     = int64(1)
	memberID    = int64(2)
	member2ID   = int64(3)
	outsiderID  = int64(4)
	admin2ID    = int64(5)
	communityID = int64(10)
)

func seedUser(d *memDB, id int64, name string) {
	d.users[id] = &models.User{ID: id, Username: name, Email: name + "@example.com", ChatIDs: []int64{}}
}

func newFixture() (*memDB, ChatService) {
	d := newMemDB()
	d.nextID = 100

	seedUser(d, adminID, "admin")
	seedUser(d, memberID, "member")
	seedUser(d, member2ID, "member2")
	seedUser(d, outsiderID, "outsider")
	seedUser(d, admin2ID, "admin2")

	d.communities[communityID] = &models.Community{
		ID:        communityID,
		Name:      "Fixture Community",
		IsPublic:  true,
		CreatorID: adminID,
		Status:    models.StatusActive,
		AdminIDs:  []int64{adminID, admin2ID},
		MemberIDs: []int64{adminID, admin2ID, memberID, member2ID},
		ChatIDs:   []int64{},
		EventIDs:  []int64{},
	}

	svc := NewChatService(
		&memChatStore{d}, &memThreadStore{d}, &memCommunityStore{d}, &memUserStore{d},
		d, zerolog.Nop(),
	)
	return d, svc
}

func mustCreateChat(t *testing.T, svc ChatService, actorID int64, title string, users []int64) *dto.ChatResponse {
	t.Helper()
	chat, err := svc.CreateChat(context.Background(), actorID, &dto.CreateChatRequest{
		Community: communityID,
		Title:     title,
		Users:     users,
	})
	if err != nil {
		t.Fatalf("CreateChat(%q) failed: %v", title, err)
	}
	return chat
}

func TestCreateChat(t *testing.T) {
	d, svc := newFixture()

	chat := mustCreateChat(t, svc, adminID, "general", []int64{adminID, memberID})

	if chat.Creator != adminID {
		t.Errorf("creator = %d, want %d", chat.Creator, adminID)
	}
	if chat.Thread == 0 {
		t.Error("chat has no thread reference")
	}
	if _, ok := d.threads[chat.Thread]; !ok {
		t.Error("thread was not created")
	}
	if !helpers.ContainsID(d.communities[communityID].ChatIDs, chat.ID) {
		t.Error("chat id missing from community chat list")
	}
	for _, userID := range []int64{adminID, memberID} {
		if !helpers.ContainsID(d.users[userID].ChatIDs, chat.ID) {
			t.Errorf("chat id missing from user %d chat list", userID)
		}
	}
	if helpers.ContainsID(d.users[outsiderID].ChatIDs, chat.ID) {
		t.Error("chat id leaked to an unlisted user")
	}
}

func TestCreateChatNonAdmin(t *testing.T) {
	d, svc := newFixture()

	_, err := svc.CreateChat(context.Background(), memberID, &dto.CreateChatRequest{
		Community: communityID,
		Title:     "general",
		Users:     []int64{memberID},
	})
	if !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("err = %v, want ErrPermissionDenied", err)
	}
	if len(d.chats) != 0 || len(d.threads) != 0 {
		t.Error("rejected creation left state behind")
	}
}

func TestCreateChatUnknownCommunity(t *testing.T) {
	_, svc := newFixture()

	_, err := svc.CreateChat(context.Background(), adminID, &dto.CreateChatRequest{
		Community: 999,
		Title:     "general",
		Users:     []int64{adminID},
	})
	if !errors.Is(err, apperrors.ErrCommunityNotFound) {
		t.Fatalf("err = %v, want ErrCommunityNotFound", err)
	}
}

func TestCreateChatDuplicateTitle(t *testing.T) {
	_, svc := newFixture()

	mustCreateChat(t, svc, adminID, "general", []int64{adminID})

	_, err := svc.CreateChat(context.Background(), adminID, &dto.CreateChatRequest{
		Community: communityID,
		Title:     "general",
		Users:     []int64{adminID},
	})
	if !errors.Is(err, apperrors.ErrChatTitleExists) {
		t.Fatalf("err = %v, want ErrChatTitleExists", err)
	}
}

func TestCreateChatDuplicateUsers(t *testing.T) {
	d, svc := newFixture()

	_, err := svc.CreateChat(context.Background(), adminID, &dto.CreateChatRequest{
		Community: communityID,
		Title:     "general",
		Users:     []int64{memberID, memberID},
	})
	if !errors.Is(err, apperrors.ErrDuplicateChatUsers) {
		t.Fatalf("err = %v, want ErrDuplicateChatUsers", err)
	}
	if len(d.chats) != 0 {
		t.Error("rejected creation left a chat behind")
	}
}

func TestDeleteChatCleansAllReferences(t *testing.T) {
	d, svc := newFixture()

	chat := mustCreateChat(t, svc, adminID, "general", []int64{adminID, memberID, member2ID})

	if err := svc.DeleteChat(context.Background(), adminID, chat.ID); err != nil {
		t.Fatalf("DeleteChat failed: %v", err)
	}

	if _, ok := d.chats[chat.ID]; ok {
		t.Error("chat row still exists")
	}
	if _, ok := d.threads[chat.Thread]; ok {
		t.Error("thread row still exists")
	}
	if len(d.messages[chat.Thread]) != 0 {
		t.Error("messages still exist")
	}
	if helpers.ContainsID(d.communities[communityID].ChatIDs, chat.ID) {
		t.Error("chat id still referenced by community")
	}
	for _, userID := range []int64{adminID, memberID, member2ID} {
		if helpers.ContainsID(d.users[userID].ChatIDs, chat.ID) {
			t.Errorf("chat id still referenced by user %d", userID)
		}
	}
}

func TestDeleteChatAuthorization(t *testing.T) {
	d, svc := newFixture()

	// memberID creates nothing; chat is created by the admin
	chat := mustCreateChat(t, svc, adminID, "general", []int64{adminID, memberID})

	if err := svc.DeleteChat(context.Background(), memberID, chat.ID); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("err = %v, want ErrPermissionDenied", err)
	}
	if _, ok := d.chats[chat.ID]; !ok {
		t.Error("rejected deletion removed the chat")
	}

	// A second community admin may delete a chat they did not create
	if err := svc.DeleteChat(context.Background(), admin2ID, chat.ID); err != nil {
		t.Fatalf("admin deletion failed: %v", err)
	}
}

func TestAddUsers(t *testing.T) {
	d, svc := newFixture()

	chat := mustCreateChat(t, svc, adminID, "general", []int64{adminID})

	updated, err := svc.AddUsers(context.Background(), adminID, chat.ID, []int64{memberID, member2ID})
	if err != nil {
		t.Fatalf("AddUsers failed: %v", err)
	}
	if len(updated.Users) != 3 {
		t.Fatalf("chat has %d users, want 3", len(updated.Users))
	}
	for _, userID := range []int64{memberID, member2ID} {
		if !helpers.ContainsID(d.users[userID].ChatIDs, chat.ID) {
			t.Errorf("chat id missing from user %d chat list", userID)
		}
	}
}

func TestAddUsersBatchIsAllOrNothing(t *testing.T) {
	d, svc := newFixture()

	chat := mustCreateChat(t, svc, adminID, "general", []int64{adminID, memberID})

	// memberID is already in the chat, so member2ID must not be added either
	_, err := svc.AddUsers(context.Background(), adminID, chat.ID, []int64{member2ID, memberID})
	if !errors.Is(err, apperrors.ErrDuplicateChatUsers) {
		t.Fatalf("err = %v, want ErrDuplicateChatUsers", err)
	}
	if helpers.ContainsID(d.chats[chat.ID].UserIDs, member2ID) {
		t.Error("batch was partially applied")
	}
	if helpers.ContainsID(d.users[member2ID].ChatIDs, chat.ID) {
		t.Error("chat id leaked to user from a rejected batch")
	}
}

func TestAddUsersNonAdmin(t *testing.T) {
	_, svc := newFixture()

	chat := mustCreateChat(t, svc, adminID, "general", []int64{adminID, memberID})

	_, err := svc.AddUsers(context.Background(), memberID, chat.ID, []int64{member2ID})
	if !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("err = %v, want ErrPermissionDenied", err)
	}
}

func TestRemoveUsersBatch(t *testing.T) {
	d, svc := newFixture()

	chat := mustCreateChat(t, svc, adminID, "general", []int64{adminID, memberID, member2ID})

	updated, err := svc.RemoveUsers(context.Background(), adminID, chat.ID, []int64{memberID, member2ID})
	if err != nil {
		t.Fatalf("RemoveUsers failed: %v", err)
	}
	if len(updated.Users) != 1 || updated.Users[0] != adminID {
		t.Fatalf("chat users = %v, want [%d]", updated.Users, adminID)
	}
	for _, userID := range []int64{memberID, member2ID} {
		if helpers.ContainsID(d.users[userID].ChatIDs, chat.ID) {
			t.Errorf("chat id still referenced by removed user %d", userID)
		}
	}
}

func TestRemoveUsersSelfRemovalWins(t *testing.T) {
	d, svc := newFixture()

	chat := mustCreateChat(t, svc, adminID, "general", []int64{adminID, memberID, member2ID})

	// Actor names themselves plus another member; only the actor leaves the
	// chat member list, but the chat reference is pulled from every listed
	// user.
	updated, err := svc.RemoveUsers(context.Background(), adminID, chat.ID, []int64{adminID, memberID})
	if err != nil {
		t.Fatalf("RemoveUsers failed: %v", err)
	}
	if helpers.ContainsID(updated.Users, adminID) {
		t.Error("actor still in chat after self-removal")
	}
	if !helpers.ContainsID(updated.Users, memberID) {
		t.Error("other listed member was removed from the chat in the self-removal branch")
	}
	if helpers.ContainsID(d.users[adminID].ChatIDs, chat.ID) {
		t.Error("chat id still referenced by actor")
	}
	if helpers.ContainsID(d.users[memberID].ChatIDs, chat.ID) {
		t.Error("chat reference was not pulled from the listed member")
	}
}

func TestRemoveUsersRejectsAdminTargets(t *testing.T) {
	d, svc := newFixture()

	chat := mustCreateChat(t, svc, adminID, "general", []int64{adminID, admin2ID, memberID})

	_, err := svc.RemoveUsers(context.Background(), adminID, chat.ID, []int64{admin2ID, memberID})
	if !errors.Is(err, apperrors.ErrCannotRemoveAdmin) {
		t.Fatalf("err = %v, want ErrCannotRemoveAdmin", err)
	}
	if len(d.chats[chat.ID].UserIDs) != 3 {
		t.Error("rejected removal mutated the chat")
	}
}

func TestGetChat(t *testing.T) {
	_, svc := newFixture()

	chat := mustCreateChat(t, svc, adminID, "general", []int64{adminID, memberID})

	got, err := svc.GetChat(context.Background(), memberID, chat.ID)
	if err != nil {
		t.Fatalf("GetChat failed: %v", err)
	}
	if got.ID != chat.ID {
		t.Errorf("chat id = %d, want %d", got.ID, chat.ID)
	}

	if _, err := svc.GetChat(context.Background(), outsiderID, chat.ID); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("err = %v, want ErrPermissionDenied for non-member", err)
	}
}
