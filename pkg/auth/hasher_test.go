package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/novatech/tenantkit/pkg/auth"
)

func TestBcryptHasher(t *testing.T) {
	t.Parallel()

	t.Run("hash then verify roundtrip", func(t *testing.T) {
		t.Parallel()

		hasher := auth.NewBcryptHasher(4)
		hash, err := hasher.Hash("secret-password")
		require.NoError(t, err)
		require.NotEqual(t, "secret-password", hash)

		assert.NoError(t, hasher.Verify("secret-password", hash))
		assert.Error(t, hasher.Verify("wrong-password", hash))
	})

	t.Run("invalid cost falls back to default", func(t *testing.T) {
		t.Parallel()

		hasher := auth.NewBcryptHasher(-1)
		hash, err := hasher.Hash("secret-password")
		require.NoError(t, err)
		assert.NoError(t, hasher.Verify("secret-password", hash))
	})

	t.Run("hashes are salted", func(t *testing.T) {
		t.Parallel()

		hasher := auth.NewBcryptHasher(4)
		first, err := hasher.Hash("secret-password")
		require.NoError(t, err)
		second, err := hasher.Hash("secret-password")
		require.NoError(t, err)
		assert.NotEqual(t, first, second)
	})
}
