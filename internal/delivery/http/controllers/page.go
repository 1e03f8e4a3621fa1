package controllers

import (
	"log/slog"
	"net/http"

	"devcatalyst/internal/delivery/http/helpers"
	"devcatalyst/internal/delivery/http/middleware"
	"devcatalyst/internal/delivery/http/views"
	"devcatalyst/internal/domain"
)

// pages is embedded by the HTML controllers.
type pages struct {
	Logger *slog.Logger
	Views  *views.Renderer
}

// render fills in the pending flash and the signed-in user, then writes the page.
func (p pages) render(w http.ResponseWriter, r *http.Request, status int, name string, page views.Page) {
	if kind, msg, ok := helpers.PopFlash(w, r); ok {
		page.Flash = &views.Flash{Kind: kind, Message: msg}
	}
	if s, ok := middleware.SessionFromContext(r.Context()); ok && page.User == nil {
		page.User = &s.User
	}
	if err := p.Views.Render(w, status, name, page); err != nil {
		p.Logger.ErrorContext(r.Context(), "render failed", "page", name, "path", r.URL.Path, "err", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// logFailure records a failed backend call behind a page.
func (p pages) logFailure(r *http.Request, err error) {
	p.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
}

// notFound renders the 404 page.
func (p pages) notFound(w http.ResponseWriter, r *http.Request) {
	p.render(w, r, http.StatusNotFound, views.PageError, views.Page{Title: "Page not found"})
}

// redirect sends a 303 so the browser follows with a GET.
func redirect(w http.ResponseWriter, r *http.Request, to string) {
	http.Redirect(w, r, to, http.StatusSeeOther)
}

// withReason appends the backend's own explanation, when it sent one.
func withReason(msg string, err error) string {
	if reason := domain.BackendMessage(err); reason != "" {
		return msg + " " + reason
	}
	return msg
}

// adminSession returns the session attached by the guard. Without one the
// request is sent to the login page.
func adminSession(w http.ResponseWriter, r *http.Request) (*domain.AdminSession, bool) {
	s, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		redirect(w, r, middleware.LoginPath)
		return nil, false
	}
	return s, true
}
