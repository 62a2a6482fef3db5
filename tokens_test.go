package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRefreshSecret(t *testing.T) {
	first, err := GenerateRefreshSecret()
	require.NoError(t, err)
	assert.Len(t, first, refreshSecretBytes*2)

	second, err := GenerateRefreshSecret()
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestHashRefreshSecret(t *testing.T) {
	key := []byte("signing-key")

	hash := HashRefreshSecret("raw-secret", key)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "raw-secret", hash)

	t.Run("deterministic under the same key", func(t *testing.T) {
		assert.Equal(t, hash, HashRefreshSecret("raw-secret", key))
	})

	t.Run("key dependent", func(t *testing.T) {
		assert.NotEqual(t, hash, HashRefreshSecret("raw-secret", []byte("other-key")))
	})

	t.Run("input dependent", func(t *testing.T) {
		assert.NotEqual(t, hash, HashRefreshSecret("other-secret", key))
	})
}
