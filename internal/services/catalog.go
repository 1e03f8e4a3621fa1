package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"devcatalyst/internal/domain"
)

// mailTimeout bounds the confirmation email so a slow provider does not hold the registration response.
const mailTimeout = 10 * time.Second

type catalogService struct {
	backend domain.Backend
	email   domain.EmailService
	logger  *slog.Logger
}

// NewCatalogService returns the public read and registration service.
func NewCatalogService(backend domain.Backend, email domain.EmailService, logger *slog.Logger) domain.CatalogService {
	return &catalogService{backend: backend, email: email, logger: logger}
}

func (s *catalogService) ListEvents(ctx context.Context) ([]*domain.Event, error) {
	events, err := s.backend.ListEvents(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

// ListGallery returns featured items first.
func (s *catalogService) ListGallery(ctx context.Context) ([]*domain.GalleryItem, error) {
	items, err := s.backend.ListGallery(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("list gallery: %w", err)
	}
	return domain.FeaturedFirst(items), nil
}

func (s *catalogService) Register(ctx context.Context, in domain.RegistrationInput) (*domain.Registration, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	if in.Name == "" || in.Email == "" {
		return nil, domain.ErrRegistrationIncomplete
	}
	reg, err := s.backend.Register(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	s.logger.InfoContext(ctx, "registration created", "event", in.Event, "registration_id", reg.ID)
	s.sendConfirmation(ctx, in, reg)
	return reg, nil
}

// sendConfirmation never fails the registration; problems are logged.
func (s *catalogService) sendConfirmation(ctx context.Context, in domain.RegistrationInput, reg *domain.Registration) {
	if s.email == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), mailTimeout)
	defer cancel()

	data := &domain.RegistrationConfirmationEmailData{
		Email:      in.Email,
		Name:       in.Name,
		EventTitle: reg.EventTitle,
	}
	if events, err := s.backend.ListEvents(ctx, ""); err == nil {
		if e, ok := domain.FindEvent(events, in.Event); ok {
			data.EventTitle = e.Title
			data.Location = e.Location
			data.EventDate = e.Date
			if day, ok := e.Day(); ok {
				data.EventDate = day.Format("January 2, 2006")
			}
		}
	} else {
		s.logger.WarnContext(ctx, "could not load event for confirmation email", "event", in.Event, "err", err)
	}
	if err := s.email.SendRegistrationConfirmation(ctx, data); err != nil {
		s.logger.WarnContext(ctx, "registration confirmation not sent", "to", in.Email, "err", err)
	}
}
