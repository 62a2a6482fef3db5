package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("sup3rs3cret!")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "sup3rs3cret!", hash)

	t.Run("empty password rejected", func(t *testing.T) {
		_, err := HashPassword("")
		require.ErrorIs(t, err, ErrNoEmptyString)
	})
}

func TestComparePasswordAndHash(t *testing.T) {
	hash, err := HashPassword("sup3rs3cret!")
	require.NoError(t, err)

	require.NoError(t, ComparePasswordAndHash("sup3rs3cret!", hash))

	err = ComparePasswordAndHash("wrong-password", hash)
	require.ErrorIs(t, err, ErrMismatchedHashAndPassword)
}
