package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndComparePassword(t *testing.T) {
	hash, err := HashPassword("Secret#1", bcrypt.MinCost)
	require.NoError(t, err)
	require.NotEqual(t, "Secret#1", hash)

	assert.NoError(t, ComparePassword(hash, "Secret#1"))
	assert.Error(t, ComparePassword(hash, "wrong"))
}

func TestHashPasswordSaltsPerCall(t *testing.T) {
	first, err := HashPassword("Secret#1", bcrypt.MinCost)
	require.NoError(t, err)
	second, err := HashPassword("Secret#1", bcrypt.MinCost)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
