package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"devcatalyst/internal/delivery/http/helpers"
	"devcatalyst/internal/domain"
)

// LoginPath is where unauthenticated admin page requests are sent.
const LoginPath = "/admin/login"

type contextKey string

const sessionKey contextKey = "admin_session"

// WithSession stores the admin session in ctx.
func WithSession(ctx context.Context, s *domain.AdminSession) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// SessionFromContext returns the admin session stored by SessionGuard.
func SessionFromContext(ctx context.Context) (*domain.AdminSession, bool) {
	s, ok := ctx.Value(sessionKey).(*domain.AdminSession)
	return s, ok && s != nil
}

// SessionGuard resolves the admin session from the request cookies.
type SessionGuard struct {
	auth    domain.AuthService
	cookies helpers.CookieOptions
	logger  *slog.Logger
	now     func() time.Time
}

func NewSessionGuard(auth domain.AuthService, cookies helpers.CookieOptions, logger *slog.Logger) *SessionGuard {
	return &SessionGuard{auth: auth, cookies: cookies, logger: logger, now: time.Now}
}

// Resolve returns the current session. The access cookie is tried first; when it
// is missing or rejected the refresh cookie is redeemed and both cookies are
// rotated. If neither works any stale cookies are cleared and ok is false.
func (g *SessionGuard) Resolve(w http.ResponseWriter, r *http.Request) (*domain.AdminSession, bool) {
	ctx := r.Context()
	access := helpers.CookieValue(r, helpers.AccessCookie)
	if access != "" {
		s, err := g.auth.Authenticate(ctx, access)
		if err == nil {
			return s, true
		}
		g.logger.DebugContext(ctx, "access token rejected", "error", err)
	}

	refresh := helpers.CookieValue(r, helpers.RefreshCookie)
	if refresh != "" {
		s, tokens, err := g.auth.Refresh(ctx, refresh)
		if err == nil {
			helpers.SetSessionCookies(w, g.cookies, tokens, g.now())
			return s, true
		}
		g.logger.DebugContext(ctx, "refresh token rejected", "error", err)
	}

	if access != "" || refresh != "" {
		helpers.ClearSessionCookies(w, g.cookies)
	}
	return nil, false
}

// RequireAdmin guards HTML admin pages. Requests without a usable session are
// redirected to the login page before next runs.
func (g *SessionGuard) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, ok := g.Resolve(w, r)
		if !ok {
			http.Redirect(w, r, LoginPath, http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), s)))
	})
}

// RequireAdminAPI guards JSON routes and answers 401 in the API envelope.
func (g *SessionGuard) RequireAdminAPI(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, ok := g.Resolve(w, r)
		if !ok {
			helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "Admin session required")
			return
		}
		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), s)))
	})
}
