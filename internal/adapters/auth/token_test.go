package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devcatalyst/internal/domain"
)

func TestJWT_IssueAndVerify(t *testing.T) {
	j := NewJWT("test-secret")

	token, err := j.Issue("session-123", "admin", 15*time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	// Parse and verify claims
	parsed, err := jwt.ParseWithClaims(token, &jwtClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims, ok := parsed.Claims.(*jwtClaims)
	require.True(t, ok)
	assert.Equal(t, "session-123", claims.Subject)
	assert.Equal(t, "admin", claims.Username)

	sid, err := j.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "session-123", sid)
}

func TestJWT_VerifyRejects(t *testing.T) {
	j := NewJWT("test-secret")
	good, err := j.Issue("s1", "admin", time.Minute)
	require.NoError(t, err)

	expired := NewJWT("test-secret")
	expired.now = func() time.Time { return time.Now().Add(-time.Hour) }
	old, err := expired.Issue("s1", "admin", time.Minute)
	require.NoError(t, err)

	other, err := NewJWT("other-secret").Issue("s1", "admin", time.Minute)
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   "s1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"expired", old},
		{"wrong secret", other},
		{"alg none", none},
		{"garbage", "not-a-jwt"},
		{"tampered", good + "x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := j.Verify(tt.token)
			assert.ErrorIs(t, err, domain.ErrInvalidToken)
		})
	}
}
