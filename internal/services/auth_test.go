package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"devcatalyst/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type authFixture struct {
	svc     *authService
	backend *fakeBackend
	repo    *fakeSessionRepo
	now     time.Time
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	backend := &fakeBackend{login: &domain.LoginResult{
		Success: true,
		Token:   "backend-token",
		User:    &domain.AdminUser{ID: 1, Username: "admin", FirstName: "Dev", IsStaff: true},
	}}
	repo := newFakeSessionRepo()
	tokens := &fakeTokens{}
	svc := NewAuthService(backend, repo, tokens, tokens, fakeSealer{}, &fakeRefresh{},
		AuthConfig{AccessTTL: 15 * time.Minute, RefreshTTL: 7 * 24 * time.Hour}, testLogger).(*authService)
	f := &authFixture{svc: svc, backend: backend, repo: repo, now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	svc.now = func() time.Time { return f.now }
	return f
}

func TestAuthService_Login(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	session, tokens, err := f.svc.Login(ctx, " admin ", "pw")
	require.NoError(t, err)
	assert.NotEmpty(t, session.ID)
	assert.Equal(t, "backend-token", session.BackendToken)
	assert.Equal(t, "Dev", session.User.DisplayName())
	assert.Equal(t, "access:"+session.ID, tokens.AccessToken)
	assert.Equal(t, "refresh-1", tokens.RefreshToken)
	assert.Equal(t, f.now.Add(15*time.Minute), tokens.AccessExpiresAt)
	assert.Equal(t, f.now.Add(7*24*time.Hour), tokens.RefreshExpiresAt)

	stored, err := f.repo.GetByID(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, "sealed:backend-token", stored.SealedToken, "backend token is stored sealed")
	assert.Equal(t, "hash(refresh-1)", stored.RefreshTokenHash, "refresh token is stored hashed")
	assert.Empty(t, stored.BackendToken)
}

func TestAuthService_LoginFailures(t *testing.T) {
	tests := []struct {
		name     string
		user     string
		pass     string
		login    *domain.LoginResult
		loginErr error
		wantIs   error
		wantMsg  string
		wantCall bool
	}{
		{name: "missing password", user: "admin", wantIs: domain.ErrValidation},
		{name: "missing username", user: "  ", pass: "pw", wantIs: domain.ErrValidation},
		{name: "rejected with message", user: "admin", pass: "x", login: &domain.LoginResult{Success: false, Message: "Invalid credentials"}, wantIs: domain.ErrLoginRejected, wantMsg: "Invalid credentials", wantCall: true},
		{name: "rejected without message", user: "admin", pass: "x", login: &domain.LoginResult{Success: false}, wantIs: domain.ErrLoginRejected, wantMsg: "Login failed", wantCall: true},
		{name: "endpoint missing", user: "admin", pass: "x", loginErr: domain.NewBackendError("admin login", 404, ""), wantIs: domain.ErrEndpointMissing, wantCall: true},
		{name: "unreachable", user: "admin", pass: "x", loginErr: domain.NewBackendError("admin login", 0, "refused"), wantIs: domain.ErrBackendUnreachable, wantCall: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAuthFixture(t)
			f.backend.login = tt.login
			f.backend.loginErr = tt.loginErr

			_, _, err := f.svc.Login(context.Background(), tt.user, tt.pass)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantIs)
			if tt.wantMsg != "" {
				var rejected *domain.LoginRejectedError
				require.True(t, errors.As(err, &rejected))
				assert.Equal(t, tt.wantMsg, rejected.Message)
			}
			assert.Equal(t, tt.wantCall, len(f.backend.Calls()) > 0)
			assert.Empty(t, f.repo.byID, "no session on failure")
		})
	}
}

func TestAuthService_Authenticate(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	session, tokens, err := f.svc.Login(ctx, "admin", "pw")
	require.NoError(t, err)

	got, err := f.svc.Authenticate(ctx, tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, session.ID, got.ID)
	assert.Equal(t, "backend-token", got.BackendToken)

	_, err = f.svc.Authenticate(ctx, "")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
	_, err = f.svc.Authenticate(ctx, "forged")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
	_, err = f.svc.Authenticate(ctx, "access:unknown")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	f.now = f.now.Add(8 * 24 * time.Hour)
	_, err = f.svc.Authenticate(ctx, tokens.AccessToken)
	assert.ErrorIs(t, err, domain.ErrSessionExpired)
}

func TestAuthService_RefreshRotates(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	_, first, err := f.svc.Login(ctx, "admin", "pw")
	require.NoError(t, err)

	f.now = f.now.Add(20 * time.Minute)
	session, second, err := f.svc.Refresh(ctx, first.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "refresh-2", second.RefreshToken)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)
	assert.Equal(t, "backend-token", session.BackendToken)
	assert.Equal(t, f.now.Add(7*24*time.Hour), second.RefreshExpiresAt)

	_, _, err = f.svc.Refresh(ctx, first.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrInvalidToken, "old refresh token no longer works")

	_, _, err = f.svc.Refresh(ctx, second.RefreshToken)
	assert.NoError(t, err)

	_, _, err = f.svc.Refresh(ctx, "")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestAuthService_LogoutRevokesEvenWhenBackendFails(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	session, tokens, err := f.svc.Login(ctx, "admin", "pw")
	require.NoError(t, err)

	f.backend.logoutErr = domain.NewBackendError("admin logout", 0, "connection refused")
	require.NoError(t, f.svc.Logout(ctx, session))
	assert.Equal(t, "backend-token", f.backend.lastToken)

	_, err = f.svc.Authenticate(ctx, tokens.AccessToken)
	assert.ErrorIs(t, err, domain.ErrSessionRevoked)
	_, _, err = f.svc.Refresh(ctx, tokens.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrSessionRevoked)

	assert.NoError(t, f.svc.Logout(ctx, nil))
}

func TestAuthService_Prune(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	_, _, err := f.svc.Login(ctx, "admin", "pw")
	require.NoError(t, err)

	n, err := f.svc.Prune(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	f.now = f.now.Add(8 * 24 * time.Hour)
	n, err = f.svc.Prune(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
