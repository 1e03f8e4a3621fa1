package domain

import (
	"context"
	"errors"
	"time"
)

// ErrRegistrationIncomplete is returned when a registration lacks a name or email.
// No request reaches the content API in that case.
var ErrRegistrationIncomplete = errors.New("registration needs both name and email")

// Registration links a person to an event they intend to attend.
// swagger:model Registration
type Registration struct {
	ID               int64      `json:"id"`
	Event            int64      `json:"event"`
	EventTitle       string     `json:"event_title"`
	Name             string     `json:"name"`
	Email            string     `json:"email"`
	Phone            string     `json:"phone"`
	RegistrationDate *time.Time `json:"registration_date,omitempty"`
	IsConfirmed      bool       `json:"is_confirmed"`
}

// RegistrationInput is the body of a public registration request.
type RegistrationInput struct {
	Event int64  `json:"event" validate:"required,gt=0"`
	Name  string `json:"name" validate:"required,max=100"`
	Email string `json:"email" validate:"required,email"`
}

// RegistrationBackend is the slice of the content API that accepts registrations.
type RegistrationBackend interface {
	Register(ctx context.Context, in RegistrationInput) (*Registration, error)
}
