// Package views renders the server-side HTML pages of the site and admin console.
package views

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"devcatalyst/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Page names accepted by Render.
const (
	PageHome          = "home"
	PageEvents        = "events"
	PageGallery       = "gallery"
	PageAdminLogin    = "admin_login"
	PageDashboard     = "admin_dashboard"
	PageAdminEvents   = "admin_events"
	PageAdminGallery  = "admin_gallery"
	PageConfirmDelete = "admin_confirm_delete"
	PageDiagnostics   = "diagnostics"
	PageError         = "error"
)

var pages = []string{
	PageHome, PageEvents, PageGallery, PageAdminLogin, PageDashboard,
	PageAdminEvents, PageAdminGallery, PageConfirmDelete, PageDiagnostics, PageError,
}

// Flash is a one-shot notice carried across a redirect.
type Flash struct {
	Kind    string
	Message string
}

// Page is the data handed to every template. Content holds the page specific view model.
type Page struct {
	Title   string
	User    *domain.AdminUser
	Flash   *Flash
	Error   string
	Content any
}

// Renderer holds one parsed template set per page.
type Renderer struct {
	pages map[string]*template.Template
}

// New parses the embedded layout and page templates.
func New() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template, len(pages))}
	for _, name := range pages {
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// Render executes the page into a buffer and writes it with status. Nothing is
// written to w if execution fails.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, p Page) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout.html", p); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// Static serves the embedded stylesheet.
func Static() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FileServerFS(sub)
}

var funcs = template.FuncMap{
	"formatDate": FormatDate,
	"formatTime": func(t *time.Time) string {
		if t == nil || t.IsZero() {
			return ""
		}
		return t.Format("Jan 2, 2006 15:04")
	},
	"selected": func(p *int64, id int64) bool { return p != nil && *p == id },
	"deref": func(p *int64) int64 {
		if p == nil {
			return 0
		}
		return *p
	},
	"statusClass": func(s domain.CheckStatus) string { return strings.ToLower(string(s)) },
	"toJSON": func(v any) string {
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return ""
		}
		return string(b)
	},
	"pad2": func(n int) string { return fmt.Sprintf("%02d", n) },
}

// FormatDate renders a YYYY-MM-DD wire date as "January 2, 2006". Anything
// unparseable is returned unchanged.
func FormatDate(s string) string {
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		return s
	}
	return t.Format("January 2, 2006")
}
