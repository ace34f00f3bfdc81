package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/farhan-shop/shop-api/internal/auth"
)

func TestSHA256Hasher(t *testing.T) {
	hasher := auth.SHA256Hasher{}

	hashed, err := hasher.Hash("pw123")
	require.NoError(t, err)
	// Hex digest of "pw123" — the stored format of the legacy user base.
	assert.Equal(t, "23d47445adfb8991789b459b6ba1b974d727d310aa9d80b7c2875b9430c0ba25", hashed)

	assert.True(t, hasher.Compare(hashed, "pw123"))
	assert.False(t, hasher.Compare(hashed, "pw124"))
}

func TestBcryptHasher(t *testing.T) {
	hasher := auth.BcryptHasher{Cost: bcrypt.MinCost}

	hashed, err := hasher.Hash("pw123")
	require.NoError(t, err)
	require.NotEqual(t, "pw123", hashed)

	assert.True(t, hasher.Compare(hashed, "pw123"))
	assert.False(t, hasher.Compare(hashed, "pw124"))
}

func TestNewHasher(t *testing.T) {
	hasher, err := auth.NewHasher("")
	require.NoError(t, err)
	assert.IsType(t, auth.SHA256Hasher{}, hasher)

	hasher, err = auth.NewHasher("sha256")
	require.NoError(t, err)
	assert.IsType(t, auth.SHA256Hasher{}, hasher)

	hasher, err = auth.NewHasher("bcrypt")
	require.NoError(t, err)
	assert.IsType(t, auth.BcryptHasher{}, hasher)

	_, err = auth.NewHasher("md5")
	require.Error(t, err)
}
