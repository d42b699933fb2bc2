package lib

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple", DefaultArgonParams)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))

	match, err := VerifyPassword("correct horse battery staple", hash)
	require.NoError(t, err)
	assert.True(t, match)

	match, err = VerifyPassword("wrong password", hash)
	require.NoError(t, err)
	assert.False(t, match)
}

func TestHashPasswordUniqueSalts(t *testing.T) {
	first, err := HashPassword("password123", DefaultArgonParams)
	require.NoError(t, err)
	second, err := HashPassword("password123", DefaultArgonParams)
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "each hash carries a fresh salt")
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	_, err := VerifyPassword("whatever", "not-an-argon2-hash")
	assert.Error(t, err)
}
