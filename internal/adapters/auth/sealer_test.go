package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "00112233445566778899aabbccddeeff00112233445566778899aabbccddeeff"

func TestSealer_RoundTrip(t *testing.T) {
	s, err := NewSealer(testKey)
	require.NoError(t, err)

	sealed, err := s.Seal("backend-token-abc")
	require.NoError(t, err)
	assert.NotContains(t, sealed, "backend-token-abc")

	again, err := s.Seal("backend-token-abc")
	require.NoError(t, err)
	assert.NotEqual(t, sealed, again, "fresh nonce per seal")

	plain, err := s.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, "backend-token-abc", plain)
}

func TestSealer_OpenRejects(t *testing.T) {
	s, err := NewSealer(testKey)
	require.NoError(t, err)
	other, err := NewSealer(strings.Repeat("ab", 32))
	require.NoError(t, err)

	sealed, err := other.Seal("tok")
	require.NoError(t, err)

	_, err = s.Open(sealed)
	assert.Error(t, err, "wrong key")
	_, err = s.Open("!!!")
	assert.Error(t, err, "not base64")
	_, err = s.Open("AAAA")
	assert.Error(t, err, "too short")
}

func TestNewSealer_BadKey(t *testing.T) {
	_, err := NewSealer("zz")
	assert.Error(t, err)
	_, err = NewSealer("0011")
	assert.Error(t, err)
}

func TestNewRefreshToken(t *testing.T) {
	tok, hash, err := NewRefreshToken()
	require.NoError(t, err)
	assert.Len(t, tok, 64)
	assert.Equal(t, HashRefreshToken(tok), hash)
	assert.NotEqual(t, tok, hash)

	tok2, _, err := NewRefreshToken()
	require.NoError(t, err)
	assert.NotEqual(t, tok, tok2)
}
