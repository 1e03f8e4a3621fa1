package controllers

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"devcatalyst/internal/delivery/http/helpers"
	"devcatalyst/internal/delivery/http/middleware"
	"devcatalyst/internal/delivery/http/views"
	"devcatalyst/internal/domain"

	"github.com/stretchr/testify/require"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

func newRenderer(t *testing.T) *views.Renderer {
	t.Helper()
	v, err := views.New()
	require.NoError(t, err)
	return v
}

// fakeCatalog implements domain.CatalogService for handler tests.
type fakeCatalog struct {
	events      []*domain.Event
	gallery     []*domain.GalleryItem
	listErr     error
	galleryErr  error
	registerErr error
	registered  []domain.RegistrationInput
}

func (f *fakeCatalog) ListEvents(context.Context) ([]*domain.Event, error) {
	return f.events, f.listErr
}

func (f *fakeCatalog) ListGallery(context.Context) ([]*domain.GalleryItem, error) {
	return f.gallery, f.galleryErr
}

func (f *fakeCatalog) Register(_ context.Context, in domain.RegistrationInput) (*domain.Registration, error) {
	if in.Name == "" || in.Email == "" {
		return nil, domain.ErrRegistrationIncomplete
	}
	f.registered = append(f.registered, in)
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return &domain.Registration{ID: 1, Event: in.Event, Name: in.Name, Email: in.Email}, nil
}

// savedEvent records one SaveEvent call.
type savedEvent struct {
	Token string
	ID    int64
	Input domain.EventInput
}

// savedGalleryItem records one SaveGalleryItem call.
type savedGalleryItem struct {
	ID    int64
	Input domain.GalleryInput
}

// fakeAdmin implements domain.AdminService for handler tests.
type fakeAdmin struct {
	summary      *domain.DashboardSummary
	dashboardErr error
	events       []*domain.Event
	listErr      error
	saveErr      error
	deleteErr    error
	gallery      []*domain.GalleryItem
	galleryErr   error

	dashboardCalls int
	savedEvents    []savedEvent
	deletedEvents  []int64
	savedItems     []savedGalleryItem
	deletedItems   []int64
}

func (f *fakeAdmin) Dashboard(context.Context, string) (*domain.DashboardSummary, error) {
	f.dashboardCalls++
	if f.dashboardErr != nil {
		return nil, f.dashboardErr
	}
	return f.summary, nil
}

func (f *fakeAdmin) ListEvents(context.Context, string) ([]*domain.Event, error) {
	return f.events, f.listErr
}

func (f *fakeAdmin) SaveEvent(_ context.Context, token string, id int64, in domain.EventInput) (*domain.Event, error) {
	f.savedEvents = append(f.savedEvents, savedEvent{Token: token, ID: id, Input: in})
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	return &domain.Event{ID: id, Title: in.Title}, nil
}

func (f *fakeAdmin) DeleteEvent(_ context.Context, _ string, id int64, confirmed bool) error {
	if !confirmed {
		return domain.ErrNotConfirmed
	}
	f.deletedEvents = append(f.deletedEvents, id)
	return f.deleteErr
}

func (f *fakeAdmin) GalleryPage(context.Context, string) ([]*domain.GalleryItem, []*domain.Event, error) {
	if f.galleryErr != nil {
		return nil, nil, f.galleryErr
	}
	return f.gallery, f.events, nil
}

func (f *fakeAdmin) SaveGalleryItem(_ context.Context, _ string, id int64, in domain.GalleryInput) (*domain.GalleryItem, error) {
	f.savedItems = append(f.savedItems, savedGalleryItem{ID: id, Input: in})
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	return &domain.GalleryItem{ID: id, Title: in.Title}, nil
}

func (f *fakeAdmin) DeleteGalleryItem(_ context.Context, _ string, id int64, confirmed bool) error {
	if !confirmed {
		return domain.ErrNotConfirmed
	}
	f.deletedItems = append(f.deletedItems, id)
	return f.deleteErr
}

// fakeAuth implements domain.AuthService. The access token "good" is accepted.
type fakeAuth struct {
	loginErr   error
	logoutErr  error
	refreshErr error

	loggedOut []string
	refreshed []string
}

func testTokens() *domain.SessionTokens {
	now := time.Now()
	return &domain.SessionTokens{
		AccessToken:      "access",
		AccessExpiresAt:  now.Add(15 * time.Minute),
		RefreshToken:     "refresh",
		RefreshExpiresAt: now.Add(24 * time.Hour),
	}
}

func testSession() *domain.AdminSession {
	return &domain.AdminSession{ID: "s1", BackendToken: "tok", User: domain.AdminUser{ID: 1, Username: "admin"}}
}

func (f *fakeAuth) Login(_ context.Context, username, password string) (*domain.AdminSession, *domain.SessionTokens, error) {
	if f.loginErr != nil {
		return nil, nil, f.loginErr
	}
	return testSession(), testTokens(), nil
}

func (f *fakeAuth) Authenticate(_ context.Context, token string) (*domain.AdminSession, error) {
	if token != "good" {
		return nil, domain.ErrInvalidToken
	}
	return testSession(), nil
}

func (f *fakeAuth) Refresh(_ context.Context, token string) (*domain.AdminSession, *domain.SessionTokens, error) {
	f.refreshed = append(f.refreshed, token)
	if f.refreshErr != nil {
		return nil, nil, f.refreshErr
	}
	return testSession(), testTokens(), nil
}

func (f *fakeAuth) Logout(_ context.Context, s *domain.AdminSession) error {
	f.loggedOut = append(f.loggedOut, s.ID)
	return f.logoutErr
}

func (f *fakeAuth) Prune(context.Context) (int64, error) { return 0, nil }

// fakeDiagnostics implements domain.DiagnosticsService.
type fakeDiagnostics struct {
	ran []domain.Suite
}

func (f *fakeDiagnostics) Run(_ context.Context, suite domain.Suite) (*domain.DiagnosticsReport, error) {
	f.ran = append(f.ran, suite)
	if suite != domain.SuiteConnection && suite != domain.SuiteDebug {
		return nil, domain.ErrValidation
	}
	return &domain.DiagnosticsReport{
		Suite:  suite,
		APIURL: "http://api",
		Checks: []domain.CheckResult{{Name: "Basic Connectivity", Status: domain.CheckPass, HTTPStatus: 200}},
	}, nil
}

// postForm builds a form POST. A non-nil session is attached as the guard would.
func postForm(target string, values url.Values, s *domain.AdminSession) *http.Request {
	r := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if s != nil {
		r = r.WithContext(middleware.WithSession(r.Context(), s))
	}
	return r
}

func getAs(target string, s *domain.AdminSession) *http.Request {
	r := httptest.NewRequest(http.MethodGet, target, nil)
	if s != nil {
		r = r.WithContext(middleware.WithSession(r.Context(), s))
	}
	return r
}

// flashOf decodes the flash cookie set on the response.
func flashOf(t *testing.T, rr *httptest.ResponseRecorder) (kind, msg string) {
	t.Helper()
	for _, c := range rr.Result().Cookies() {
		if c.Name == helpers.FlashCookie && c.MaxAge > 0 {
			decoded, err := url.QueryUnescape(c.Value)
			require.NoError(t, err)
			kind, msg, _ = strings.Cut(decoded, "|")
			return kind, msg
		}
	}
	return "", ""
}

func cookieNamed(rr *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rr.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
