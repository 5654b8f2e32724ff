package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("admin123")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "admin123", hash)

	assert.True(t, CheckPassword("admin123", hash))
	assert.False(t, CheckPassword("admin124", hash))
	assert.False(t, CheckPassword("", hash))
}

func TestHashPasswordUniqueSalts(t *testing.T) {
	h1, err := HashPassword("same-password")
	require.NoError(t, err)
	h2, err := HashPassword("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
}

func TestCheckPasswordBadHash(t *testing.T) {
	assert.False(t, CheckPassword("anything", "not-a-bcrypt-hash"))
}
