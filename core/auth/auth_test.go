package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_Roundtrip(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, CheckPasswordHash("s3cret-pass", hash))
	assert.False(t, CheckPasswordHash("wrong-pass", hash))
}

func TestIsLegacyHash(t *testing.T) {
	sum := sha256.Sum256([]byte("anything"))
	legacy := hex.EncodeToString(sum[:])
	assert.True(t, IsLegacyHash(legacy))

	bcryptHash, err := HashPassword("anything")
	require.NoError(t, err)
	assert.False(t, IsLegacyHash(bcryptHash))

	assert.False(t, IsLegacyHash(""))
	assert.False(t, IsLegacyHash("zz"+legacy[2:])) // right length, not hex
}

func TestCheckPasswordHash_LegacyDigest(t *testing.T) {
	sum := sha256.Sum256([]byte("imported-password"))
	legacy := hex.EncodeToString(sum[:])

	assert.True(t, CheckPasswordHash("imported-password", legacy))
	assert.False(t, CheckPasswordHash("other-password", legacy))
}

func TestToken_Roundtrip(t *testing.T) {
	token, err := GenerateToken("test-secret", 42, "ann@example.com", true)
	require.NoError(t, err)

	claims, err := ParseToken("test-secret", token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "ann@example.com", claims.Email)
	assert.True(t, claims.IsAdmin)
}

func TestParseToken_Rejections(t *testing.T) {
	token, err := GenerateToken("right-secret", 42, "ann@example.com", false)
	require.NoError(t, err)

	_, err = ParseToken("wrong-secret", token)
	assert.Error(t, err)

	_, err = ParseToken("right-secret", "not.a.token")
	assert.Error(t, err)
}
