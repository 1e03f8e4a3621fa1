package domain

import (
	"context"
	"time"
)

// DateLayout is the wire format of event dates.
const DateLayout = "2006-01-02"

// DefaultMaxParticipants is the capacity prefilled on a new event form.
const DefaultMaxParticipants = 100

// Event is a community event as served by the content API.
// swagger:model Event
type Event struct {
	ID                int64      `json:"id"`
	Title             string     `json:"title"`
	Description       string     `json:"description"`
	Date              string     `json:"date"`
	Image             string     `json:"image"`
	Location          string     `json:"location"`
	MaxParticipants   int        `json:"max_participants"`
	IsActive          bool       `json:"is_active"`
	RegistrationCount int        `json:"registration_count"`
	IsFull            bool       `json:"is_full"`
	CreatedByName     string     `json:"created_by_name"`
	CreatedAt         *time.Time `json:"created_at,omitempty"`
	UpdatedAt         *time.Time `json:"updated_at,omitempty"`
}

// Day parses Date. The second result is false when the date is missing or malformed.
func (e *Event) Day() (time.Time, bool) {
	t, err := time.Parse(DateLayout, e.Date)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// EventInput is the body of an event create or update request.
type EventInput struct {
	Title           string `json:"title" validate:"required,max=200"`
	Description     string `json:"description" validate:"required"`
	Date            string `json:"date" validate:"required,datetime=2006-01-02"`
	Image           string `json:"image" validate:"omitempty,url,max=500"`
	Location        string `json:"location" validate:"max=200"`
	MaxParticipants int    `json:"max_participants" validate:"min=1"`
	IsActive        bool   `json:"is_active"`
}

// NewEventInput returns the defaults of an empty event form.
func NewEventInput() EventInput {
	return EventInput{MaxParticipants: DefaultMaxParticipants, IsActive: true}
}

// EventInputFrom prefills an edit form from an existing event.
func EventInputFrom(e *Event) EventInput {
	in := EventInput{
		Title:           e.Title,
		Description:     e.Description,
		Date:            e.Date,
		Image:           e.Image,
		Location:        e.Location,
		MaxParticipants: e.MaxParticipants,
		IsActive:        e.IsActive,
	}
	if in.MaxParticipants == 0 {
		in.MaxParticipants = DefaultMaxParticipants
	}
	return in
}

// FindEvent returns the event with the given id from a listing.
func FindEvent(events []*Event, id int64) (*Event, bool) {
	for _, e := range events {
		if e.ID == id {
			return e, true
		}
	}
	return nil, false
}

// EventBackend is the slice of the content API that manages events.
type EventBackend interface {
	ListEvents(ctx context.Context, token string) ([]*Event, error)
	CreateEvent(ctx context.Context, token string, in EventInput) (*Event, error)
	UpdateEvent(ctx context.Context, token string, id int64, in EventInput) (*Event, error)
	DeleteEvent(ctx context.Context, token string, id int64) error
}
