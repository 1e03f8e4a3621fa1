package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"devcatalyst/internal/delivery/http/controllers"
	"devcatalyst/internal/delivery/http/helpers"
	"devcatalyst/internal/delivery/http/middleware"
	"devcatalyst/internal/delivery/http/views"
	"devcatalyst/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rejectingAuth never finds a session.
type rejectingAuth struct{}

func (rejectingAuth) Login(context.Context, string, string) (*domain.AdminSession, *domain.SessionTokens, error) {
	return nil, nil, domain.ErrLoginRejected
}

func (rejectingAuth) Authenticate(context.Context, string) (*domain.AdminSession, error) {
	return nil, domain.ErrInvalidToken
}

func (rejectingAuth) Refresh(context.Context, string) (*domain.AdminSession, *domain.SessionTokens, error) {
	return nil, nil, domain.ErrInvalidToken
}

func (rejectingAuth) Logout(context.Context, *domain.AdminSession) error { return nil }

func (rejectingAuth) Prune(context.Context) (int64, error) { return 0, nil }

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	v, err := views.New()
	require.NoError(t, err)
	auth := rejectingAuth{}
	guard := middleware.NewSessionGuard(auth, helpers.CookieOptions{}, logger)
	return NewRouter(
		logger,
		[]string{"https://devcatalyst.dev"},
		guard,
		controllers.NewPublicController(logger, v, nil, time.Now().Add(time.Hour)),
		controllers.NewAdminAuthController(logger, v, auth, guard, helpers.CookieOptions{}),
		controllers.NewAdminController(logger, v, nil),
		controllers.NewDiagnosticsController(logger, v, nil),
	)
}

func TestRouter(t *testing.T) {
	router := newTestRouter(t)
	tests := []struct {
		method       string
		path         string
		wantStatus   int
		wantLocation string
	}{
		{http.MethodGet, "/", http.StatusOK, ""},
		{http.MethodGet, "/missing", http.StatusNotFound, ""},
		{http.MethodGet, "/healthz", http.StatusOK, ""},
		{http.MethodGet, "/static/site.css", http.StatusOK, ""},
		{http.MethodGet, "/admin/login", http.StatusOK, ""},
		{http.MethodGet, "/admin", http.StatusSeeOther, "/admin/login"},
		{http.MethodGet, "/admin/dashboard", http.StatusSeeOther, "/admin/login"},
		{http.MethodGet, "/admin/events?form=new", http.StatusSeeOther, "/admin/login"},
		{http.MethodPost, "/admin/events/3/delete", http.StatusSeeOther, "/admin/login"},
		{http.MethodGet, "/admin/gallery", http.StatusSeeOther, "/admin/login"},
		{http.MethodGet, "/admin/test", http.StatusSeeOther, "/admin/login"},
		{http.MethodGet, "/api/diagnostics", http.StatusUnauthorized, ""},
		{http.MethodPost, "/admin/logout", http.StatusSeeOther, "/admin/login"},
		{http.MethodDelete, "/events", http.StatusMethodNotAllowed, ""},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantLocation != "" {
				assert.Equal(t, tt.wantLocation, rr.Header().Get("Location"))
			}
		})
	}
}

func TestRouter_CORS(t *testing.T) {
	router := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "https://devcatalyst.dev")
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	assert.Equal(t, "https://devcatalyst.dev", rr.Header().Get("Access-Control-Allow-Origin"))
}
