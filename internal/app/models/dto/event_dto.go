package dto

import (
	"time"

	"github.com/emre/communia/internal/app/models"
)

// CreateEventRequest carries the payload for event creation
type CreateEventRequest struct {
	Title       string    `json:"title" binding:"required,min=5"`
	Description string    `json:"description" binding:"required,min=10"`
	Date        time.Time `json:"date" binding:"required"`
	Community   int64     `json:"community" binding:"required,min=1"`
}

// EventResponse represents an event in API responses
type EventResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Community   int64     `json:"community"`
}

// ToEventResponse converts an event model to its response representation
func ToEventResponse(event *models.Event) EventResponse {
	return EventResponse{
		ID:          event.ID,
		Title:       event.Title,
		Description: event.Description,
		Date:        event.Date,
		Community:   event.CommunityID,
	}
}
