package helpers

import (
	"net/http"
	"strconv"
	"strings"

	"devcatalyst/internal/domain"
)

// formBool reads an HTML checkbox.
func formBool(r *http.Request, key string) bool {
	switch strings.ToLower(r.PostFormValue(key)) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}

// ParseID reads a positive int64 path value.
func ParseID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// EventInputFromForm reads the admin event form. A non-numeric capacity is
// left at zero so validation reports it.
func EventInputFromForm(r *http.Request) domain.EventInput {
	maxParticipants, _ := strconv.Atoi(strings.TrimSpace(r.PostFormValue("max_participants")))
	return domain.EventInput{
		Title:           strings.TrimSpace(r.PostFormValue("title")),
		Description:     strings.TrimSpace(r.PostFormValue("description")),
		Date:            strings.TrimSpace(r.PostFormValue("date")),
		Image:           strings.TrimSpace(r.PostFormValue("image")),
		Location:        strings.TrimSpace(r.PostFormValue("location")),
		MaxParticipants: maxParticipants,
		IsActive:        formBool(r, "is_active"),
	}
}

// GalleryInputFromForm reads the admin gallery form. A blank event selection becomes nil.
func GalleryInputFromForm(r *http.Request) domain.GalleryInput {
	in := domain.GalleryInput{
		Title:       strings.TrimSpace(r.PostFormValue("title")),
		Description: strings.TrimSpace(r.PostFormValue("description")),
		Image:       strings.TrimSpace(r.PostFormValue("image")),
		IsFeatured:  formBool(r, "is_featured"),
	}
	if v := strings.TrimSpace(r.PostFormValue("event")); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil && id > 0 {
			in.Event = &id
		}
	}
	return in
}
