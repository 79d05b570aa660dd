package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLegacyHash(t *testing.T) {
	// sha256("password")
	assert.Equal(t, "5e884898da28047151d0e56f8dc6292773603d0d6aabbdd62a11ef721d1542d8", LegacyHash("password"))
}

func TestHashPasswordRoundTrip(t *testing.T) {
	digest, err := HashPassword("correct horse")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(digest, "$argon2id$v=19$"))
	assert.True(t, VerifyPassword("correct horse", digest))
	assert.False(t, VerifyPassword("wrong horse", digest))
	assert.False(t, NeedsRehash(digest))
}

func TestHashPasswordIsSalted(t *testing.T) {
	a, err := HashPassword("same")
	require.NoError(t, err)
	b, err := HashPassword("same")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestVerifyLegacyDigest(t *testing.T) {
	digest := LegacyHash("hunter2")
	assert.True(t, VerifyPassword("hunter2", digest))
	assert.True(t, VerifyPassword("hunter2", strings.ToUpper(digest)))
	assert.False(t, VerifyPassword("hunter3", digest))
	assert.True(t, NeedsRehash(digest))
}

func TestVerifyMalformedArgonDigest(t *testing.T) {
	assert.False(t, VerifyPassword("x", "$argon2id$v=19$garbage"))
	assert.False(t, VerifyPassword("x", "$argon2id$v=19$m=65536,t=1,p=4$!!$!!"))
}
