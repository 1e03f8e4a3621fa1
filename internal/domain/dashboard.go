package domain

// DashboardSummary is the admin dashboard payload.
// swagger:model DashboardSummary
type DashboardSummary struct {
	TotalEvents         int             `json:"total_events"`
	ActiveEvents        int             `json:"active_events"`
	TotalRegistrations  int             `json:"total_registrations"`
	TotalGalleryImages  int             `json:"total_gallery_images"`
	RecentEvents        []*Event        `json:"recent_events"`
	RecentRegistrations []*Registration `json:"recent_registrations"`
}
