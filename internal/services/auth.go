package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"devcatalyst/internal/domain"
)

// AuthConfig holds the lifetimes of the browser credentials.
type AuthConfig struct {
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

type authService struct {
	backend  domain.AdminBackend
	repo     domain.AdminSessionRepository
	issuer   domain.TokenIssuer
	verifier domain.TokenVerifier
	sealer   domain.TokenSealer
	refresh  domain.RefreshTokenGenerator
	cfg      AuthConfig
	logger   *slog.Logger
	now      func() time.Time
}

// NewAuthService creates an AuthService that keeps the backend bearer token in a
// server-side session and hands the browser an access and a refresh token.
func NewAuthService(
	backend domain.AdminBackend,
	repo domain.AdminSessionRepository,
	issuer domain.TokenIssuer,
	verifier domain.TokenVerifier,
	sealer domain.TokenSealer,
	refresh domain.RefreshTokenGenerator,
	cfg AuthConfig,
	logger *slog.Logger,
) domain.AuthService {
	return &authService{
		backend:  backend,
		repo:     repo,
		issuer:   issuer,
		verifier: verifier,
		sealer:   sealer,
		refresh:  refresh,
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *authService) Login(ctx context.Context, username, password string) (*domain.AdminSession, *domain.SessionTokens, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, nil, fmt.Errorf("%w: username and password are required", domain.ErrValidation)
	}

	res, err := s.backend.Login(ctx, username, password)
	if err != nil {
		return nil, nil, fmt.Errorf("admin login: %w", err)
	}
	if !res.Success || res.Token == "" {
		msg := res.Message
		if msg == "" {
			msg = "Login failed"
		}
		return nil, nil, &domain.LoginRejectedError{Message: msg}
	}

	sealed, err := s.sealer.Seal(res.Token)
	if err != nil {
		return nil, nil, fmt.Errorf("seal backend token: %w", err)
	}
	refreshToken, refreshHash, err := s.refresh.New()
	if err != nil {
		return nil, nil, err
	}

	user := domain.AdminUser{Username: username}
	if res.User != nil {
		user = *res.User
	}
	now := s.now()
	session := &domain.AdminSession{
		ID:               uuid.NewString(),
		User:             user,
		SealedToken:      sealed,
		RefreshTokenHash: refreshHash,
		CreatedAt:        now,
		RefreshedAt:      now,
		ExpiresAt:        now.Add(s.cfg.RefreshTTL),
	}
	if err := s.repo.Create(ctx, session); err != nil {
		return nil, nil, fmt.Errorf("create session: %w", err)
	}

	tokens, err := s.tokens(session, refreshToken, now)
	if err != nil {
		return nil, nil, err
	}
	session.BackendToken = res.Token
	s.logger.InfoContext(ctx, "admin logged in", "session_id", session.ID, "username", user.Username)
	return session, tokens, nil
}

func (s *authService) Authenticate(ctx context.Context, accessToken string) (*domain.AdminSession, error) {
	if accessToken == "" {
		return nil, domain.ErrInvalidToken
	}
	sessionID, err := s.verifier.Verify(accessToken)
	if err != nil {
		return nil, err
	}
	session, err := s.repo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.Check(s.now()); err != nil {
		return nil, err
	}
	if err := s.open(session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*domain.AdminSession, *domain.SessionTokens, error) {
	if refreshToken == "" {
		return nil, nil, domain.ErrInvalidToken
	}
	oldHash := s.refresh.Hash(refreshToken)
	session, err := s.repo.GetByRefreshHash(ctx, oldHash)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, nil, errors.Join(domain.ErrInvalidToken, err)
		}
		return nil, nil, err
	}
	now := s.now()
	if err := session.Check(now); err != nil {
		return nil, nil, err
	}

	newToken, newHash, err := s.refresh.New()
	if err != nil {
		return nil, nil, err
	}
	expiresAt := now.Add(s.cfg.RefreshTTL)
	if err := s.repo.Rotate(ctx, session.ID, oldHash, newHash, now, expiresAt); err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, nil, errors.Join(domain.ErrInvalidToken, err)
		}
		return nil, nil, fmt.Errorf("rotate refresh token: %w", err)
	}
	session.RefreshTokenHash = newHash
	session.RefreshedAt = now
	session.ExpiresAt = expiresAt

	if err := s.open(session); err != nil {
		return nil, nil, err
	}
	tokens, err := s.tokens(session, newToken, now)
	if err != nil {
		return nil, nil, err
	}
	return session, tokens, nil
}

// Logout revokes the session even when the content API logout fails.
func (s *authService) Logout(ctx context.Context, session *domain.AdminSession) error {
	if session == nil {
		return nil
	}
	if session.BackendToken != "" {
		if err := s.backend.Logout(ctx, session.BackendToken); err != nil {
			s.logger.WarnContext(ctx, "backend logout failed", "session_id", session.ID, "err", err)
		}
	}
	if err := s.repo.Revoke(ctx, session.ID, s.now()); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	s.logger.InfoContext(ctx, "admin logged out", "session_id", session.ID)
	return nil
}

func (s *authService) Prune(ctx context.Context) (int64, error) {
	n, err := s.repo.DeleteStale(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("prune sessions: %w", err)
	}
	return n, nil
}

func (s *authService) open(session *domain.AdminSession) error {
	token, err := s.sealer.Open(session.SealedToken)
	if err != nil {
		return errors.Join(domain.ErrInvalidToken, fmt.Errorf("open backend token: %w", err))
	}
	session.BackendToken = token
	return nil
}

func (s *authService) tokens(session *domain.AdminSession, refreshToken string, now time.Time) (*domain.SessionTokens, error) {
	access, err := s.issuer.Issue(session.ID, session.User.Username, s.cfg.AccessTTL)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}
	return &domain.SessionTokens{
		AccessToken:      access,
		AccessExpiresAt:  now.Add(s.cfg.AccessTTL),
		RefreshToken:     refreshToken,
		RefreshExpiresAt: session.ExpiresAt,
	}, nil
}
