package domain

import (
	"context"
	"errors"
	"time"
)

// ErrLoginRejected is the cause of every LoginRejectedError.
var ErrLoginRejected = errors.New("login rejected")

// LoginRejectedError is returned when the content API answered a login with success=false.
type LoginRejectedError struct {
	Message string
}

func (e *LoginRejectedError) Error() string { return e.Message }

func (e *LoginRejectedError) Unwrap() error { return ErrLoginRejected }

// AdminUser is the profile the content API returns for a logged-in administrator.
// swagger:model AdminUser
type AdminUser struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	IsStaff   bool   `json:"is_staff"`
}

// DisplayName is the greeting name shown in the admin navigation.
func (u AdminUser) DisplayName() string {
	if u.FirstName != "" {
		return u.FirstName
	}
	return u.Username
}

// LoginResult is the content API reply to an admin login.
type LoginResult struct {
	Success bool       `json:"success"`
	Token   string     `json:"token"`
	User    *AdminUser `json:"user"`
	Message string     `json:"message"`
}

// AdminBackend is the slice of the content API used for admin authentication.
type AdminBackend interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	Logout(ctx context.Context, token string) error
	Dashboard(ctx context.Context, token string) (*DashboardSummary, error)
}

// TokenIssuer issues access tokens bound to an admin session.
type TokenIssuer interface {
	Issue(sessionID, username string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies an access token and returns the session it is bound to.
type TokenVerifier interface {
	Verify(token string) (sessionID string, err error)
}

// TokenSealer encrypts the backend bearer token for storage at rest.
type TokenSealer interface {
	Seal(plain string) (string, error)
	Open(sealed string) (string, error)
}

// RefreshTokenGenerator mints opaque refresh tokens and derives their storage hash.
type RefreshTokenGenerator interface {
	New() (token, hash string, err error)
	Hash(token string) string
}

// SessionTokens are the credentials handed to the browser after login or refresh.
type SessionTokens struct {
	AccessToken      string
	AccessExpiresAt  time.Time
	RefreshToken     string
	RefreshExpiresAt time.Time
}

// AuthService manages admin sessions on top of the content API login.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*AdminSession, *SessionTokens, error)
	Authenticate(ctx context.Context, accessToken string) (*AdminSession, error)
	Refresh(ctx context.Context, refreshToken string) (*AdminSession, *SessionTokens, error)
	Logout(ctx context.Context, session *AdminSession) error
	// Prune deletes sessions that expired or were revoked before now.
	Prune(ctx context.Context) (int64, error)
}
