package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/emre/communia/internal/app/models"
	"github.com/emre/communia/internal/app/models/dto"
	"github.com/emre/communia/internal/pkg/apperrors"
	"github.com/emre/communia/internal/pkg/helpers"
)

func newEventFixture() (*memDB, EventService) {
	d := newMemDB()
	d.nextID = 100
	seedUser(d, adminID, "admin")
	seedUser(d, memberID, "member")

	d.communities[communityID] = &models.Community{
		ID:        communityID,
		Name:      "Fixture Community",
		IsPublic:  true,
		CreatorID: adminID,
		Status:    models.StatusActive,
		AdminIDs:  []int64{adminID},
		MemberIDs: []int64{adminID, memberID},
		ChatIDs:   []int64{},
		EventIDs:  []int64{},
	}

	svc := NewEventService(&memEventStore{d}, &memCommunityStore{d}, d, zerolog.Nop())
	return d, svc
}

func eventRequest() *dto.CreateEventRequest {
	return &dto.CreateEventRequest{
		Title:       "Monthly Meetup",
		Description: "Talks, pizza and hallway chats.",
		Date:        time.Now().Add(72 * time.Hour),
		Community:   communityID,
	}
}

func TestCreateEvent(t *testing.T) {
	d, svc := newEventFixture()

	event, err := svc.CreateEvent(context.Background(), adminID, eventRequest())
	if err != nil {
		t.Fatalf("CreateEvent failed: %v", err)
	}

	if _, ok := d.events[event.ID]; !ok {
		t.Error("event row missing")
	}
	if !helpers.ContainsID(d.communities[communityID].EventIDs, event.ID) {
		t.Error("event id missing from community event list")
	}
}

func TestCreateEventValidation(t *testing.T) {
	_, svc := newEventFixture()

	tests := []struct {
		name   string
		mutate func(*dto.CreateEventRequest)
	}{
		{"short title", func(r *dto.CreateEventRequest) { r.Title = "Hey" }},
		{"short description", func(r *dto.CreateEventRequest) { r.Description = "Soon" }},
		{"missing date", func(r *dto.CreateEventRequest) { r.Date = time.Time{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := eventRequest()
			tt.mutate(req)
			_, err := svc.CreateEvent(context.Background(), adminID, req)
			if !errors.Is(err, apperrors.ErrValidationFailed) {
				t.Fatalf("err = %v, want ErrValidationFailed", err)
			}
		})
	}
}

func TestCreateEventNonAdmin(t *testing.T) {
	d, svc := newEventFixture()

	_, err := svc.CreateEvent(context.Background(), memberID, eventRequest())
	if !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("err = %v, want ErrPermissionDenied", err)
	}
	if len(d.events) != 0 {
		t.Error("rejected creation left an event behind")
	}
}

func TestDeleteEvent(t *testing.T) {
	d, svc := newEventFixture()

	event, err := svc.CreateEvent(context.Background(), adminID, eventRequest())
	if err != nil {
		t.Fatalf("CreateEvent failed: %v", err)
	}

	if err := svc.DeleteEvent(context.Background(), memberID, event.ID); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("err = %v, want ErrPermissionDenied for non-admin", err)
	}

	if err := svc.DeleteEvent(context.Background(), adminID, event.ID); err != nil {
		t.Fatalf("DeleteEvent failed: %v", err)
	}
	if _, ok := d.events[event.ID]; ok {
		t.Error("event row still exists")
	}
	if helpers.ContainsID(d.communities[communityID].EventIDs, event.ID) {
		t.Error("event id still referenced by community")
	}

	if err := svc.DeleteEvent(context.Background(), adminID, event.ID); !errors.Is(err, apperrors.ErrEventNotFound) {
		t.Fatalf("err = %v, want ErrEventNotFound on second delete", err)
	}
}

func TestListCommunityEvents(t *testing.T) {
	_, svc := newEventFixture()

	if _, err := svc.CreateEvent(context.Background(), adminID, eventRequest()); err != nil {
		t.Fatalf("CreateEvent failed: %v", err)
	}

	events, err := svc.ListCommunityEvents(context.Background(), communityID)
	if err != nil {
		t.Fatalf("ListCommunityEvents failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}

	if _, err := svc.ListCommunityEvents(context.Background(), 999); !errors.Is(err, apperrors.ErrCommunityNotFound) {
		t.Fatalf("err = %v, want ErrCommunityNotFound", err)
	}
}
