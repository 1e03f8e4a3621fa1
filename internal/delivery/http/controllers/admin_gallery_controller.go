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
	msgGalleryAdminLoadFailed = "Failed to load gallery data"
	msgGallerySaveFailed      = "Failed to save gallery item"
	msgGalleryDeleteFailed    = "Failed to delete gallery item"
	msgGalleryItemNotFound    = "Gallery item not found"
	galleryPath               = "/admin/gallery"
)

// Gallery lists gallery items together with the events they can be attached to.
func (c *AdminController) Gallery(w http.ResponseWriter, r *http.Request) {
	s, ok := adminSession(w, r)
	if !ok {
		return
	}
	page := views.Page{Title: "Manage gallery"}
	items, events, err := c.Admin.GalleryPage(r.Context(), s.BackendToken)
	if err != nil {
		c.logFailure(r, err)
		page.Error = msgGalleryAdminLoadFailed
		page.Content = views.AdminGalleryView{}
		c.render(w, r, http.StatusBadGateway, views.PageAdminGallery, page)
		return
	}
	view := views.AdminGalleryView{Items: items, Events: events}

	q := r.URL.Query()
	switch {
	case q.Get("edit") != "":
		id, _ := strconv.ParseInt(q.Get("edit"), 10, 64)
		it, found := domain.FindGalleryItem(items, id)
		if !found {
			page.Error = msgGalleryItemNotFound
			break
		}
		view.ShowForm = true
		view.EditID = it.ID
		view.Form = domain.GalleryInputFrom(it)
	case q.Get("form") == "new":
		view.ShowForm = true
	}
	page.Content = view
	c.render(w, r, http.StatusOK, views.PageAdminGallery, page)
}

// CreateGalleryItem handles POST /admin/gallery.
func (c *AdminController) CreateGalleryItem(w http.ResponseWriter, r *http.Request) {
	c.saveGalleryItem(w, r, 0)
}

// UpdateGalleryItem handles POST /admin/gallery/{id}.
func (c *AdminController) UpdateGalleryItem(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.ParseID(r, "id")
	if !ok {
		c.notFound(w, r)
		return
	}
	c.saveGalleryItem(w, r, id)
}

func (c *AdminController) saveGalleryItem(w http.ResponseWriter, r *http.Request, id int64) {
	s, ok := adminSession(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	in := helpers.GalleryInputFromForm(r)
	view := views.AdminGalleryView{ShowForm: true, EditID: id, Form: in}

	if errs := helpers.ValidateStruct(in); len(errs) > 0 {
		view.Errors = errs
		c.renderGalleryForm(w, r, s, http.StatusUnprocessableEntity, view)
		return
	}
	if _, err := c.Admin.SaveGalleryItem(r.Context(), s.BackendToken, id, in); err != nil {
		c.logFailure(r, err)
		view.FormError = withReason(msgGallerySaveFailed, err)
		c.renderGalleryForm(w, r, s, http.StatusBadGateway, view)
		return
	}
	if id == 0 {
		helpers.SetFlash(w, helpers.FlashSuccess, "Gallery item added successfully!")
	} else {
		helpers.SetFlash(w, helpers.FlashSuccess, "Gallery item updated successfully!")
	}
	redirect(w, r, galleryPath)
}

func (c *AdminController) renderGalleryForm(w http.ResponseWriter, r *http.Request, s *domain.AdminSession, status int, view views.AdminGalleryView) {
	page := views.Page{Title: "Manage gallery"}
	items, events, err := c.Admin.GalleryPage(r.Context(), s.BackendToken)
	if err != nil {
		c.logFailure(r, err)
		page.Error = msgGalleryAdminLoadFailed
	}
	view.Items = items
	view.Events = events
	page.Content = view
	c.render(w, r, status, views.PageAdminGallery, page)
}

// ConfirmDeleteGalleryItem asks for confirmation without touching the API.
func (c *AdminController) ConfirmDeleteGalleryItem(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.ParseID(r, "id")
	if !ok {
		c.notFound(w, r)
		return
	}
	c.render(w, r, http.StatusOK, views.PageConfirmDelete, views.Page{
		Title: "Delete gallery item",
		Content: views.ConfirmDeleteView{
			Kind:      "gallery item",
			Name:      r.URL.Query().Get("name"),
			Action:    galleryPath + "/" + strconv.FormatInt(id, 10) + "/delete",
			CancelURL: galleryPath,
		},
	})
}

// DeleteGalleryItem deletes only when the form carries confirm=yes.
func (c *AdminController) DeleteGalleryItem(w http.ResponseWriter, r *http.Request) {
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
	err := c.Admin.DeleteGalleryItem(r.Context(), s.BackendToken, id, r.PostFormValue("confirm") == "yes")
	switch {
	case errors.Is(err, domain.ErrNotConfirmed):
	case err != nil:
		c.logFailure(r, err)
		helpers.SetFlash(w, helpers.FlashError, withReason(msgGalleryDeleteFailed, err))
	default:
		helpers.SetFlash(w, helpers.FlashSuccess, "Gallery item deleted successfully!")
	}
	redirect(w, r, galleryPath)
}
