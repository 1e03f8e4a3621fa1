package domain

import (
	"context"
	"net/http"
	"time"
)

// PingResult is the reply of the content API health endpoint.
type PingResult struct {
	Status    string            `json:"status"`
	Endpoints map[string]string `json:"endpoints"`
}

// Backend is the full content API consumed by the console.
type Backend interface {
	EventBackend
	GalleryBackend
	RegistrationBackend
	AdminBackend
	Ping(ctx context.Context) (*PingResult, error)
}

// ProbeRequest is a raw request used by diagnostics.
type ProbeRequest struct {
	Method string
	Path   string
	Body   any
	Header http.Header
}

// ProbeResponse is what a probe observed. Non-2xx statuses are not errors.
type ProbeResponse struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	Duration   time.Duration
}

// Prober sends raw requests to the content API.
type Prober interface {
	Probe(ctx context.Context, req ProbeRequest) (*ProbeResponse, error)
	BaseURL() string
}

// CatalogService serves the public site.
type CatalogService interface {
	ListEvents(ctx context.Context) ([]*Event, error)
	ListGallery(ctx context.Context) ([]*GalleryItem, error)
	Register(ctx context.Context, in RegistrationInput) (*Registration, error)
}

// AdminService serves the admin console. Every call carries the backend bearer token.
type AdminService interface {
	Dashboard(ctx context.Context, token string) (*DashboardSummary, error)
	ListEvents(ctx context.Context, token string) ([]*Event, error)
	// SaveEvent creates the event when id is 0 and updates it otherwise.
	SaveEvent(ctx context.Context, token string, id int64, in EventInput) (*Event, error)
	// DeleteEvent returns ErrNotConfirmed without calling the API unless confirmed is true.
	DeleteEvent(ctx context.Context, token string, id int64, confirmed bool) error
	// GalleryPage loads gallery items and the events they can be attached to.
	GalleryPage(ctx context.Context, token string) ([]*GalleryItem, []*Event, error)
	SaveGalleryItem(ctx context.Context, token string, id int64, in GalleryInput) (*GalleryItem, error)
	DeleteGalleryItem(ctx context.Context, token string, id int64, confirmed bool) error
}
