package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"devcatalyst/internal/delivery/http/controllers"
	"devcatalyst/internal/delivery/http/middleware"
	"devcatalyst/internal/delivery/http/views"
)

// NewRouter initializes the HTTP router with all application routes and the
// logging and CORS middleware.
func NewRouter(
	logger *slog.Logger,
	corsOrigins []string,
	guard *middleware.SessionGuard,
	public *controllers.PublicController,
	auth *controllers.AdminAuthController,
	admin *controllers.AdminController,
	diagnostics *controllers.DiagnosticsController,
) http.Handler {
	mux := http.NewServeMux()
	page := func(h http.HandlerFunc) http.Handler { return guard.RequireAdmin(h) }

	// Public site
	mux.HandleFunc("GET /", public.Home)
	mux.HandleFunc("GET /events", public.Events)
	mux.HandleFunc("POST /events/{id}/register", public.Register)
	mux.HandleFunc("GET /gallery", public.Gallery)
	mux.HandleFunc("GET /debug", diagnostics.Debug)
	mux.Handle("GET /static/", http.StripPrefix("/static/", views.Static()))

	// Admin session
	mux.HandleFunc("GET /admin/login", auth.LoginPage)
	mux.HandleFunc("POST /admin/login", auth.Login)
	mux.HandleFunc("POST /admin/logout", auth.Logout)

	// Admin console
	mux.Handle("GET /admin", page(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, controllers.DashboardPath, http.StatusSeeOther)
	}))
	mux.Handle("GET /admin/dashboard", page(admin.Dashboard))
	mux.Handle("GET /admin/events", page(admin.Events))
	mux.Handle("POST /admin/events", page(admin.CreateEvent))
	mux.Handle("POST /admin/events/{id}", page(admin.UpdateEvent))
	mux.Handle("GET /admin/events/{id}/delete", page(admin.ConfirmDeleteEvent))
	mux.Handle("POST /admin/events/{id}/delete", page(admin.DeleteEvent))
	mux.Handle("GET /admin/gallery", page(admin.Gallery))
	mux.Handle("POST /admin/gallery", page(admin.CreateGalleryItem))
	mux.Handle("POST /admin/gallery/{id}", page(admin.UpdateGalleryItem))
	mux.Handle("GET /admin/gallery/{id}/delete", page(admin.ConfirmDeleteGalleryItem))
	mux.Handle("POST /admin/gallery/{id}/delete", page(admin.DeleteGalleryItem))
	mux.Handle("GET /admin/test", page(diagnostics.ConnectionTest))

	// API Routes
	mux.HandleFunc("GET /healthz", controllers.Healthz)
	mux.HandleFunc("POST /api/session/refresh", auth.RefreshSession)
	mux.Handle("GET /api/diagnostics", guard.RequireAdminAPI(http.HandlerFunc(diagnostics.Run)))

	// Swagger
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	return middleware.LoggingMiddleware(logger, middleware.CORS(corsOrigins, mux))
}
