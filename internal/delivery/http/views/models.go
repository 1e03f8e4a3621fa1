package views

import (
	"time"

	"devcatalyst/internal/delivery/http/helpers"
	"devcatalyst/internal/domain"
)

// HomeView is the marketing home page.
type HomeView struct {
	Site        domain.SiteContent
	Countdown   domain.Countdown
	NextEventAt time.Time
}

// EventsView is the public events page.
type EventsView struct {
	Events     []*domain.Event
	Pagination helpers.PaginationMeta
}

// GalleryView is the public gallery page.
type GalleryView struct {
	Items []*domain.GalleryItem
}

// LoginView is the admin login form.
type LoginView struct {
	Username string
}

// DashboardView is the admin dashboard. Summary is nil when loading failed.
type DashboardView struct {
	Summary *domain.DashboardSummary
}

// AdminEventsView is the admin event listing with its optional create/edit form.
type AdminEventsView struct {
	Events    []*domain.Event
	ShowForm  bool
	EditID    int64
	Form      domain.EventInput
	Errors    helpers.FieldErrors
	FormError string
}

// AdminGalleryView is the admin gallery listing with its optional create/edit form.
type AdminGalleryView struct {
	Items     []*domain.GalleryItem
	Events    []*domain.Event
	ShowForm  bool
	EditID    int64
	Form      domain.GalleryInput
	Errors    helpers.FieldErrors
	FormError string
}

// ConfirmDeleteView asks the administrator to confirm a deletion.
type ConfirmDeleteView struct {
	Kind      string
	Name      string
	Action    string
	CancelURL string
}

// DiagnosticsView shows a diagnostics report.
type DiagnosticsView struct {
	Heading string
	Report  *domain.DiagnosticsReport
}
