package helpers

import (
	"net/http"
	"time"

	"devcatalyst/internal/domain"
)

// Session cookie names.
const (
	AccessCookie  = "dc_access"
	RefreshCookie = "dc_refresh"
)

// CookieOptions controls attributes shared by both session cookies.
type CookieOptions struct {
	Secure bool
}

// SetSessionCookies writes the access and refresh cookies for tokens.
func SetSessionCookies(w http.ResponseWriter, opts CookieOptions, tokens *domain.SessionTokens, now time.Time) {
	http.SetCookie(w, sessionCookie(AccessCookie, tokens.AccessToken, tokens.AccessExpiresAt, now, opts))
	http.SetCookie(w, sessionCookie(RefreshCookie, tokens.RefreshToken, tokens.RefreshExpiresAt, now, opts))
}

// ClearSessionCookies expires both session cookies.
func ClearSessionCookies(w http.ResponseWriter, opts CookieOptions) {
	for _, name := range []string{AccessCookie, RefreshCookie} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			Expires:  time.Unix(0, 0),
			HttpOnly: true,
			Secure:   opts.Secure,
			SameSite: http.SameSiteLaxMode,
		})
	}
}

// CookieValue returns the named cookie's value or "".
func CookieValue(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}

func sessionCookie(name, value string, expires, now time.Time, opts CookieOptions) *http.Cookie {
	maxAge := int(expires.Sub(now) / time.Second)
	if maxAge < 1 {
		maxAge = 1
	}
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		Expires:  expires,
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}
