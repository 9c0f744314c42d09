package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)

	assert.True(t, CheckPassword(hash, "s3cret"))
	assert.False(t, CheckPassword(hash, "S3cret"))
	assert.False(t, CheckPassword(hash, ""))
}

func TestTokenRoundTrip(t *testing.T) {
	secret := []byte("test-secret")

	raw, err := GenerateToken(secret, 7, "admin", time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(secret, raw)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "admin", claims.Username)
}

func TestParseTokenRejectsBadInput(t *testing.T) {
	secret := []byte("test-secret")

	raw, err := GenerateToken(secret, 7, "admin", time.Hour)
	require.NoError(t, err)

	_, err = ParseToken([]byte("other-secret"), raw)
	assert.Error(t, err, "wrong signing key")

	_, err = ParseToken(secret, "not-a-token")
	assert.Error(t, err)

	expired, err := GenerateToken(secret, 7, "admin", -time.Minute)
	require.NoError(t, err)
	_, err = ParseToken(secret, expired)
	assert.Error(t, err, "expired token")
}
