package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	httpdelivery "devcatalyst/internal/delivery/http"
	"devcatalyst/internal/delivery/http/controllers"
	"devcatalyst/internal/delivery/http/helpers"
	"devcatalyst/internal/delivery/http/middleware"
	"devcatalyst/internal/delivery/http/views"
)

// pruneInterval is how often stale admin sessions are deleted while serving.
const pruneInterval = time.Hour

// serveCmd runs the HTTP server
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web server",
	Long: `Serve the public site, the admin console, the diagnostics pages, and
the swagger UI. Stops gracefully on SIGINT or SIGTERM.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	renderer, err := views.New()
	if err != nil {
		return err
	}
	cookies := helpers.CookieOptions{Secure: cfg.IsProduction()}
	guard := middleware.NewSessionGuard(a.auth, cookies, logger)
	handler := httpdelivery.NewRouter(
		logger,
		cfg.CORSAllowedOrigins,
		guard,
		controllers.NewPublicController(logger, renderer, a.catalog, cfg.NextEventAt),
		controllers.NewAdminAuthController(logger, renderer, a.auth, guard, cookies),
		controllers.NewAdminController(logger, renderer, a.admin),
		controllers.NewDiagnosticsController(logger, renderer, a.diagnostics),
	)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go a.pruneLoop(ctx, pruneInterval)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", srv.Addr, "env", cfg.Environment, "api_url", cfg.APIURL, "session_store", cfg.SessionStore)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down", "timeout", cfg.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

// pruneLoop deletes stale sessions every interval until ctx is done.
func (a *app) pruneLoop(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := a.auth.Prune(ctx)
			if err != nil {
				a.logger.WarnContext(ctx, "prune sessions failed", "err", err)
				continue
			}
			if n > 0 {
				a.logger.InfoContext(ctx, "pruned admin sessions", "count", n)
			}
		}
	}
}
