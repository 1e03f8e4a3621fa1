package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"devcatalyst/internal/domain"
)

// NewRefreshToken returns a random opaque token and the hash to store for it.
func NewRefreshToken() (token, hash string, err error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", "", fmt.Errorf("failed to generate refresh token: %w", err)
	}
	token = hex.EncodeToString(b)
	return token, HashRefreshToken(token), nil
}

// HashRefreshToken is the lookup key of a refresh token. Only hashes are persisted.
func HashRefreshToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// RefreshTokens is the domain.RefreshTokenGenerator backed by NewRefreshToken.
type RefreshTokens struct{}

var _ domain.RefreshTokenGenerator = RefreshTokens{}

func (RefreshTokens) New() (string, string, error) { return NewRefreshToken() }

func (RefreshTokens) Hash(token string) string { return HashRefreshToken(token) }
