package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSecret(t *testing.T) {
	seen := make(map[string]struct{})

	for i := 0; i < 32; i++ {
		secret, err := GenerateSecret()
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(secret, SecretPrefix))
		assert.Greater(t, len(secret), DefaultPrefixLength)

		_, dup := seen[secret]
		assert.False(t, dup, "generated secrets must not repeat")
		seen[secret] = struct{}{}
	}
}

func TestDeriveHash(t *testing.T) {
	secret, err := GenerateSecret()
	require.NoError(t, err)

	salt, err := GenerateSalt()
	require.NoError(t, err)

	first := DeriveHash(secret, salt, MinIterations)
	second := DeriveHash(secret, salt, MinIterations)
	assert.Equal(t, first, second, "same inputs must derive the same hash")
	assert.Len(t, first, 64, "hash is a hex-encoded sha256-sized digest")

	otherSalt, err := GenerateSalt()
	require.NoError(t, err)
	assert.NotEqual(t, first, DeriveHash(secret, otherSalt, MinIterations), "salt must change the digest")

	assert.NotEqual(t, first, DeriveHash(secret+"x", salt, MinIterations), "secret must change the digest")
}

func TestSecretPrefixOf(t *testing.T) {
	assert.Equal(t, "sk_AbCdE", SecretPrefixOf("sk_AbCdEfGh12345", 8))
	assert.Equal(t, "sk_a", SecretPrefixOf("sk_a", 8), "short secrets are returned whole")
}
