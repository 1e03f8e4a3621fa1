package controllers

import (
	"log/slog"
	"net/http"

	"devcatalyst/internal/delivery/http/views"
	"devcatalyst/internal/domain"
)

const msgDashboardLoadFailed = "Failed to load dashboard data"

// AdminController serves the admin console pages. Every route runs behind the session guard.
type AdminController struct {
	pages
	Admin domain.AdminService
}

func NewAdminController(logger *slog.Logger, v *views.Renderer, admin domain.AdminService) *AdminController {
	return &AdminController{pages: pages{Logger: logger, Views: v}, Admin: admin}
}

// Dashboard shows the summary counters and recent activity. A failed load shows
// no partial data.
func (c *AdminController) Dashboard(w http.ResponseWriter, r *http.Request) {
	s, ok := adminSession(w, r)
	if !ok {
		return
	}
	summary, err := c.Admin.Dashboard(r.Context(), s.BackendToken)
	if err != nil {
		c.logFailure(r, err)
		c.render(w, r, http.StatusBadGateway, views.PageDashboard, views.Page{
			Title:   "Dashboard",
			Error:   msgDashboardLoadFailed,
			Content: views.DashboardView{},
		})
		return
	}
	c.render(w, r, http.StatusOK, views.PageDashboard, views.Page{
		Title:   "Dashboard",
		Content: views.DashboardView{Summary: summary},
	})
}
