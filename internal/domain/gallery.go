package domain

import (
	"context"
	"sort"
	"time"
)

// GalleryItem is an image shown in the community gallery.
// swagger:model GalleryItem
type GalleryItem struct {
	ID            int64      `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Image         string     `json:"image"`
	Event         *int64     `json:"event"`
	EventTitle    string     `json:"event_title"`
	CreatedByName string     `json:"created_by_name"`
	CreatedAt     *time.Time `json:"created_at,omitempty"`
	IsFeatured    bool       `json:"is_featured"`
}

// GalleryInput is the body of a gallery create or update request.
// A nil Event is sent as JSON null and detaches the image from any event.
type GalleryInput struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description"`
	Image       string `json:"image" validate:"required,url,max=500"`
	Event       *int64 `json:"event"`
	IsFeatured  bool   `json:"is_featured"`
}

// GalleryInputFrom prefills an edit form from an existing item.
func GalleryInputFrom(item *GalleryItem) GalleryInput {
	return GalleryInput{
		Title:       item.Title,
		Description: item.Description,
		Image:       item.Image,
		Event:       item.Event,
		IsFeatured:  item.IsFeatured,
	}
}

// FindGalleryItem returns the item with the given id from a listing.
func FindGalleryItem(items []*GalleryItem, id int64) (*GalleryItem, bool) {
	for _, it := range items {
		if it.ID == id {
			return it, true
		}
	}
	return nil, false
}

// FeaturedFirst orders items with featured ones first, keeping the API order otherwise.
func FeaturedFirst(items []*GalleryItem) []*GalleryItem {
	out := make([]*GalleryItem, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].IsFeatured && !out[j].IsFeatured
	})
	return out
}

// GalleryBackend is the slice of the content API that manages gallery items.
type GalleryBackend interface {
	ListGallery(ctx context.Context, token string) ([]*GalleryItem, error)
	CreateGalleryItem(ctx context.Context, token string, in GalleryInput) (*GalleryItem, error)
	UpdateGalleryItem(ctx context.Context, token string, id int64, in GalleryInput) (*GalleryItem, error)
	DeleteGalleryItem(ctx context.Context, token string, id int64) error
}
