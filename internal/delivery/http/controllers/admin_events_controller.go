package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"devcatalyst/internal/delivery/http/helpers"
	"devcatalyst/internal/delivery/http/views"
	"devcatalyst/internal/domain"
)

const (
	msgEventsAdminLoadFailed = "Failed to load events"
	msgEventSaveFailed       = "Failed to save event"
	msgEventDeleteFailed     = "Failed to delete event"
	msgEventNotFound         = "Event not found"
	eventsPath               = "/admin/events"
)

// Events lists events. ?form=new opens an empty form and ?edit={id} a prefilled one.
func (c *AdminController) Events(w http.ResponseWriter, r *http.Request) {
	s, ok := adminSession(w, r)
	if !ok {
		return
	}
	view := views.AdminEventsView{}
	page := views.Page{Title: "Manage events"}

	events, err := c.Admin.ListEvents(r.Context(), s.BackendToken)
	if err != nil {
		c.logFailure(r, err)
		page.Error = msgEventsAdminLoadFailed
		page.Content = view
		c.render(w, r, http.StatusBadGateway, views.PageAdminEvents, page)
		return
	}
	view.Events = events

	q := r.URL.Query()
	switch {
	case q.Get("edit") != "":
		id, _ := strconv.ParseInt(q.Get("edit"), 10, 64)
		e, found := domain.FindEvent(events, id)
		if !found {
			page.Error = msgEventNotFound
			break
		}
		view.ShowForm = true
		view.EditID = e.ID
		view.Form = domain.EventInputFrom(e)
	case q.Get("form") == "new":
		view.ShowForm = true
		view.Form = domain.NewEventInput()
	}
	page.Content = view
	c.render(w, r, http.StatusOK, views.PageAdminEvents, page)
}

// CreateEvent handles POST /admin/events.
func (c *AdminController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	c.saveEvent(w, r, 0)
}

// UpdateEvent handles POST /admin/events/{id}.
func (c *AdminController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.ParseID(r, "id")
	if !ok {
		c.notFound(w, r)
		return
	}
	c.saveEvent(w, r, id)
}

// saveEvent issues exactly one create or update. Invalid input is sent back
// with field errors and never reaches the API.
func (c *AdminController) saveEvent(w http.ResponseWriter, r *http.Request, id int64) {
	s, ok := adminSession(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	in := helpers.EventInputFromForm(r)
	view := views.AdminEventsView{ShowForm: true, EditID: id, Form: in}

	if errs := helpers.ValidateStruct(in); len(errs) > 0 {
		view.Errors = errs
		c.renderEventForm(w, r, s, http.StatusUnprocessableEntity, view)
		return
	}
	if _, err := c.Admin.SaveEvent(r.Context(), s.BackendToken, id, in); err != nil {
		c.logFailure(r, err)
		view.FormError = withReason(msgEventSaveFailed, err)
		c.renderEventForm(w, r, s, http.StatusBadGateway, view)
		return
	}
	if id == 0 {
		helpers.SetFlash(w, helpers.FlashSuccess, "Event created successfully!")
	} else {
		helpers.SetFlash(w, helpers.FlashSuccess, "Event updated successfully!")
	}
	redirect(w, r, eventsPath)
}

// renderEventForm re-renders the form above a fresh listing.
func (c *AdminController) renderEventForm(w http.ResponseWriter, r *http.Request, s *domain.AdminSession, status int, view views.AdminEventsView) {
	page := views.Page{Title: "Manage events"}
	events, err := c.Admin.ListEvents(r.Context(), s.BackendToken)
	if err != nil {
		c.logFailure(r, err)
		page.Error = msgEventsAdminLoadFailed
	}
	view.Events = events
	page.Content = view
	c.render(w, r, status, views.PageAdminEvents, page)
}

// ConfirmDeleteEvent asks for confirmation without touching the API.
func (c *AdminController) ConfirmDeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.ParseID(r, "id")
	if !ok {
		c.notFound(w, r)
		return
	}
	c.render(w, r, http.StatusOK, views.PageConfirmDelete, views.Page{
		Title: "Delete event",
		Content: views.ConfirmDeleteView{
			Kind:      "event",
			Name:      r.URL.Query().Get("name"),
			Action:    eventsPath + "/" + strconv.FormatInt(id, 10) + "/delete",
			CancelURL: eventsPath,
		},
	})
}

// DeleteEvent deletes only when the form carries confirm=yes.
func (c *AdminController) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	s, ok := adminSession(w, r)
	if !ok {
		return
	}
	id, ok := helpers.ParseID(r, "id")
	if !ok {
		c.notFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	err := c.Admin.DeleteEvent(r.Context(), s.BackendToken, id, r.PostFormValue("confirm") == "yes")
	switch {
	case errors.Is(err, domain.ErrNotConfirmed):
	case err != nil:
		c.logFailure(r, err)
		helpers.SetFlash(w, helpers.FlashError, withReason(msgEventDeleteFailed, err))
	default:
		helpers.SetFlash(w, helpers.FlashSuccess, "Event deleted successfully!")
	}
	redirect(w, r, eventsPath)
}
