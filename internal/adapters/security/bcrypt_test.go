package security

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHashAndCompare(t *testing.T) {
	t.Parallel()

	hasher := NewBcryptHasher(bcrypt.MinCost)
	hash, err := hasher.Hash("secret-pass")
	require.NoError(t, err)
	require.NotEqual(t, "secret-pass", hash)

	require.NoError(t, hasher.Compare(hash, "secret-pass"))
	require.Error(t, hasher.Compare(hash, "wrong-pass"))
}

func TestBcryptCostFallback(t *testing.T) {
	t.Parallel()

	hasher := NewBcryptHasher(0)
	require.Equal(t, bcrypt.DefaultCost, hasher.cost)
}
