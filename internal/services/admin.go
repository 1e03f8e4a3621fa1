package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"devcatalyst/internal/domain"
)

type adminService struct {
	backend domain.Backend
}

// NewAdminService returns the admin console service. Every call forwards the session's backend token.
func NewAdminService(backend domain.Backend) domain.AdminService {
	return &adminService{backend: backend}
}

func (s *adminService) Dashboard(ctx context.Context, token string) (*domain.DashboardSummary, error) {
	sum, err := s.backend.Dashboard(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("load dashboard: %w", err)
	}
	return sum, nil
}

func (s *adminService) ListEvents(ctx context.Context, token string) ([]*domain.Event, error) {
	events, err := s.backend.ListEvents(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

func (s *adminService) SaveEvent(ctx context.Context, token string, id int64, in domain.EventInput) (*domain.Event, error) {
	var (
		e   *domain.Event
		err error
	)
	if id == 0 {
		e, err = s.backend.CreateEvent(ctx, token, in)
	} else {
		e, err = s.backend.UpdateEvent(ctx, token, id, in)
	}
	if err != nil {
		return nil, fmt.Errorf("save event: %w", err)
	}
	return e, nil
}

func (s *adminService) DeleteEvent(ctx context.Context, token string, id int64, confirmed bool) error {
	if !confirmed {
		return domain.ErrNotConfirmed
	}
	if err := s.backend.DeleteEvent(ctx, token, id); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

// GalleryPage loads the gallery and the event list concurrently; both must succeed.
func (s *adminService) GalleryPage(ctx context.Context, token string) ([]*domain.GalleryItem, []*domain.Event, error) {
	var (
		items  []*domain.GalleryItem
		events []*domain.Event
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = s.backend.ListGallery(gctx, token)
		return err
	})
	g.Go(func() error {
		var err error
		events, err = s.backend.ListEvents(gctx, token)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, fmt.Errorf("load gallery page: %w", err)
	}
	return items, events, nil
}

func (s *adminService) SaveGalleryItem(ctx context.Context, token string, id int64, in domain.GalleryInput) (*domain.GalleryItem, error) {
	var (
		it  *domain.GalleryItem
		err error
	)
	if id == 0 {
		it, err = s.backend.CreateGalleryItem(ctx, token, in)
	} else {
		it, err = s.backend.UpdateGalleryItem(ctx, token, id, in)
	}
	if err != nil {
		return nil, fmt.Errorf("save gallery item: %w", err)
	}
	return it, nil
}

func (s *adminService) DeleteGalleryItem(ctx context.Context, token string, id int64, confirmed bool) error {
	if !confirmed {
		return domain.ErrNotConfirmed
	}
	if err := s.backend.DeleteGalleryItem(ctx, token, id); err != nil {
		return fmt.Errorf("delete gallery item: %w", err)
	}
	return nil
}
