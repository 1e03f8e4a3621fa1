package domain

import (
	"context"
	"errors"
	"time"
)

// Session errors.
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")
	ErrSessionRevoked  = errors.New("session revoked")
	ErrInvalidToken    = errors.New("invalid or expired token")
	ErrSessionConflict = errors.New("session already exists")
)

// AdminSession is the server-side record of a logged-in administrator.
// The backend bearer token is only persisted sealed; BackendToken is filled
// in after a successful Authenticate or Refresh and never stored.
type AdminSession struct {
	ID               string
	User             AdminUser
	SealedToken      string
	BackendToken     string
	RefreshTokenHash string
	CreatedAt        time.Time
	RefreshedAt      time.Time
	ExpiresAt        time.Time
	RevokedAt        *time.Time
}

// Check reports whether the session can still be used at now.
func (s *AdminSession) Check(now time.Time) error {
	if s.RevokedAt != nil {
		return ErrSessionRevoked
	}
	if !now.Before(s.ExpiresAt) {
		return ErrSessionExpired
	}
	return nil
}

// AdminSessionRepository stores admin sessions.
type AdminSessionRepository interface {
	Create(ctx context.Context, s *AdminSession) error
	GetByID(ctx context.Context, id string) (*AdminSession, error)
	GetByRefreshHash(ctx context.Context, hash string) (*AdminSession, error)
	// Rotate swaps the refresh hash only while oldHash is still current, so a
	// refresh token can be redeemed once. A lost race returns ErrSessionNotFound.
	Rotate(ctx context.Context, id, oldHash, newHash string, refreshedAt, expiresAt time.Time) error
	Revoke(ctx context.Context, id string, at time.Time) error
	DeleteStale(ctx context.Context, before time.Time) (int64, error)
}
