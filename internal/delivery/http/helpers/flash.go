package helpers

import (
	"net/http"
	"net/url"
	"strings"
)

// FlashCookie carries a one-shot notice across a post/redirect/get.
const FlashCookie = "dc_flash"

// Flash kinds.
const (
	FlashSuccess = "success"
	FlashError   = "error"
)

// SetFlash stores a notice to be shown by the next page.
func SetFlash(w http.ResponseWriter, kind, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:     FlashCookie,
		Value:    url.QueryEscape(kind + "|" + message),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// PopFlash returns the pending notice, if any, and clears it.
func PopFlash(w http.ResponseWriter, r *http.Request) (kind, message string, ok bool) {
	raw := CookieValue(r, FlashCookie)
	if raw == "" {
		return "", "", false
	}
	http.SetCookie(w, &http.Cookie{Name: FlashCookie, Value: "", Path: "/", MaxAge: -1, HttpOnly: true, SameSite: http.SameSiteLaxMode})
	decoded, err := url.QueryUnescape(raw)
	if err != nil {
		return "", "", false
	}
	kind, message, found := strings.Cut(decoded, "|")
	if !found || message == "" {
		return "", "", false
	}
	if kind != FlashSuccess {
		kind = FlashError
	}
	return kind, message, true
}
