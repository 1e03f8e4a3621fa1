package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"devcatalyst/internal/delivery/http/helpers"
	"devcatalyst/internal/delivery/http/views"
	"devcatalyst/internal/domain"
)

// Notices shown on the public pages.
const (
	msgRegistrationSuccess   = "Registration successful! Welcome to the event!"
	msgRegistrationCancelled = "Registration cancelled. Please provide both name and email."
	msgRegistrationFailed    = "Registration failed. Please try again."
	msgEventsLoadFailed      = "Failed to load events. Please try again later."
	msgGalleryLoadFailed     = "Failed to load gallery. Please try again later."
)

// PublicController serves the marketing site.
type PublicController struct {
	pages
	Catalog     domain.CatalogService
	Site        domain.SiteContent
	NextEventAt time.Time
	now         func() time.Time
}

func NewPublicController(logger *slog.Logger, v *views.Renderer, catalog domain.CatalogService, nextEventAt time.Time) *PublicController {
	return &PublicController{
		pages:       pages{Logger: logger, Views: v},
		Catalog:     catalog,
		Site:        domain.DefaultSiteContent(),
		NextEventAt: nextEventAt,
		now:         time.Now,
	}
}

// Home renders the landing page. Any other unmatched path is a 404.
func (c *PublicController) Home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		c.notFound(w, r)
		return
	}
	c.render(w, r, http.StatusOK, views.PageHome, views.Page{
		Title: "Home",
		Content: views.HomeView{
			Site:        c.Site,
			Countdown:   domain.CountdownUntil(c.NextEventAt, c.now()),
			NextEventAt: c.NextEventAt,
		},
	})
}

// Events lists events a page at a time.
func (c *PublicController) Events(w http.ResponseWriter, r *http.Request) {
	params := helpers.ParsePagination(r)
	events, err := c.Catalog.ListEvents(r.Context())
	if err != nil {
		c.logFailure(r, err)
		c.render(w, r, http.StatusBadGateway, views.PageEvents, views.Page{
			Title:   "Events",
			Error:   msgEventsLoadFailed,
			Content: views.EventsView{Pagination: helpers.NewPaginationMeta(params.Page, params.PageSize, 0)},
		})
		return
	}
	page, total := domain.Paginate(events, params)
	c.render(w, r, http.StatusOK, views.PageEvents, views.Page{
		Title: "Events",
		Content: views.EventsView{
			Events:     page,
			Pagination: helpers.NewPaginationMeta(params.Page, params.PageSize, total),
		},
	})
}

// Register handles the per-event registration form and redirects back to the listing.
func (c *PublicController) Register(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.ParseID(r, "id")
	if !ok {
		c.notFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	back := eventsListURL(r)

	in := domain.RegistrationInput{
		Event: id,
		Name:  strings.TrimSpace(r.PostFormValue("name")),
		Email: strings.TrimSpace(r.PostFormValue("email")),
	}
	if in.Name != "" && in.Email != "" {
		if errs := helpers.ValidateStruct(in); len(errs) > 0 {
			helpers.SetFlash(w, helpers.FlashError, msgRegistrationFailed+" "+strings.Join(errs.Messages(), "; "))
			redirect(w, r, back)
			return
		}
	}

	_, err := c.Catalog.Register(r.Context(), in)
	switch {
	case errors.Is(err, domain.ErrRegistrationIncomplete):
		helpers.SetFlash(w, helpers.FlashError, msgRegistrationCancelled)
	case err != nil:
		c.logFailure(r, err)
		helpers.SetFlash(w, helpers.FlashError, withReason(msgRegistrationFailed, err))
	default:
		helpers.SetFlash(w, helpers.FlashSuccess, msgRegistrationSuccess)
	}
	redirect(w, r, back)
}

// eventsListURL rebuilds the listing position the registration form was posted from.
func eventsListURL(r *http.Request) string {
	q := url.Values{}
	if p, err := strconv.Atoi(r.PostFormValue("page")); err == nil && p > 1 {
		q.Set("page", strconv.Itoa(p))
	}
	if size, err := strconv.Atoi(r.PostFormValue("page_size")); err == nil && size >= 1 && size != helpers.DefaultPageSize {
		q.Set("page_size", strconv.Itoa(min(size, helpers.MaxPageSize)))
	}
	if len(q) == 0 {
		return "/events"
	}
	return "/events?" + q.Encode()
}

// Gallery shows featured images first.
func (c *PublicController) Gallery(w http.ResponseWriter, r *http.Request) {
	items, err := c.Catalog.ListGallery(r.Context())
	if err != nil {
		c.logFailure(r, err)
		c.render(w, r, http.StatusBadGateway, views.PageGallery, views.Page{Title: "Gallery", Error: msgGalleryLoadFailed, Content: views.GalleryView{}})
		return
	}
	c.render(w, r, http.StatusOK, views.PageGallery, views.Page{Title: "Gallery", Content: views.GalleryView{Items: items}})
}
