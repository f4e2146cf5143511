package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/emre/communia/internal/app/models"
	"github.com/emre/communia/internal/pkg/apperrors"
)

func TestGetUserPopulatesChats(t *testing.T) {
	d := newMemDB()
	d.nextID = 100
	seedUser(d, memberID, "member")

	threadID := d.id()
	d.threads[threadID] = &models.MessageThread{ID: threadID}
	chatID := d.id()
	d.chats[chatID] = &models.Chat{ID: chatID, Title: "general", UserIDs: []int64{memberID}, ThreadID: threadID}
	d.users[memberID].ChatIDs = []int64{chatID}

	svc := NewUserService(&memUserStore{d}, &memChatStore{d}, zerolog.Nop())

	user, err := svc.GetUser(context.Background(), memberID)
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}
	if len(user.Chats) != 1 || user.Chats[0].ID != chatID {
		t.Fatalf("chats = %+v, want the user's chat populated", user.Chats)
	}
}

func TestGetUserUnknown(t *testing.T) {
	d := newMemDB()
	svc := NewUserService(&memUserStore{d}, &memChatStore{d}, zerolog.Nop())

	if _, err := svc.GetUser(context.Background(), 42); !errors.Is(err, apperrors.ErrUserNotFound) {
		t.Fatalf("err = %v, want ErrUserNotFound", err)
	}
}
