package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"devcatalyst/config"
	"devcatalyst/internal/adapters/auth"
	"devcatalyst/internal/adapters/backend"
	"devcatalyst/internal/adapters/email"
	"devcatalyst/internal/domain"
	"devcatalyst/internal/repository/postgres"
	"devcatalyst/internal/repository/sqlite"
	"devcatalyst/internal/services"
)

// app holds the wired services shared by the subcommands.
type app struct {
	cfg         *config.Config
	logger      *slog.Logger
	db          *sql.DB
	backend     *backend.Client
	auth        domain.AuthService
	catalog     domain.CatalogService
	admin       domain.AdminService
	diagnostics domain.DiagnosticsService
}

// loadConfig reads the configuration and builds the logger.
func loadConfig() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	logger := config.NewLogger(cfg)
	slog.SetDefault(logger)
	return cfg, logger, nil
}

// openSessionStore opens and migrates the configured session database.
func openSessionStore(ctx context.Context, cfg *config.Config) (*sql.DB, domain.AdminSessionRepository, error) {
	switch cfg.SessionStore {
	case "postgres":
		db, err := postgres.Open(ctx, cfg.DBUrl)
		if err != nil {
			return nil, nil, err
		}
		if err := postgres.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("migrate postgres: %w", err)
		}
		return db, postgres.NewAdminSessionRepository(db), nil
	default:
		db, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		if err := sqlite.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("migrate sqlite: %w", err)
		}
		return db, sqlite.NewAdminSessionRepository(db), nil
	}
}

// newApp wires every service. Close releases the session database.
func newApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*app, error) {
	db, repo, err := openSessionStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	sealer, err := auth.NewSealer(cfg.SessionSealKey)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("session seal key: %w", err)
	}
	client := backend.NewClient(cfg.APIURL, cfg.BackendTimeout)

	mailer := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:             cfg.Email.AWSRegion,
			AccessKeyID:        cfg.Email.AWSAccessKeyID,
			SecretAccessKey:    cfg.Email.AWSSecretAccessKey,
			InsecureSkipVerify: cfg.Email.SESInsecureSkipVerify,
		},
	}, logger)
	renderer, err := email.NewTemplateRenderer()
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("email templates: %w", err)
	}

	jwt := auth.NewJWT(cfg.JWTSecret)
	return &app{
		cfg:     cfg,
		logger:  logger,
		db:      db,
		backend: client,
		auth: services.NewAuthService(client, repo, jwt, jwt, sealer, auth.RefreshTokens{}, services.AuthConfig{
			AccessTTL:  cfg.AccessTokenTTL,
			RefreshTTL: cfg.RefreshTokenTTL,
		}, logger),
		catalog:     services.NewCatalogService(client, services.NewEmailService(mailer, renderer, logger), logger),
		admin:       services.NewAdminService(client),
		diagnostics: newDiagnostics(cfg, client),
	}, nil
}

func newDiagnostics(cfg *config.Config, client *backend.Client) domain.DiagnosticsService {
	return services.NewDiagnosticsService(client, client, services.DiagnosticsConfig{
		APIURL:        cfg.APIURL,
		PublicURL:     cfg.PublicURL,
		Environment:   cfg.Environment,
		ProbeUsername: cfg.ProbeUsername,
		ProbePassword: cfg.ProbePassword,
		CheckTimeout:  cfg.BackendTimeout,
	})
}

func (a *app) Close() error {
	return a.db.Close()
}
