package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("securePassword123!", 4)
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "securePassword123!", hash)

	assert.True(t, VerifyPassword("securePassword123!", hash))
	assert.False(t, VerifyPassword("wrong-password", hash))
	assert.False(t, VerifyPassword("securePassword123!", "not-a-bcrypt-hash"))
}

func TestHashPasswordIsSalted(t *testing.T) {
	first, err := HashPassword("same-input", 4)
	require.NoError(t, err)
	second, err := HashPassword("same-input", 4)
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "two hashes of the same input must differ")
	assert.True(t, VerifyPassword("same-input", first))
	assert.True(t, VerifyPassword("same-input", second))
}

func TestHashPasswordClampsCost(t *testing.T) {
	hash, err := HashPassword("secret", 99)
	require.NoError(t, err)
	assert.True(t, VerifyPassword("secret", hash))
}
