package auth_test

import (
	"testing"
	"time"

	"github.com/gofrs/uuid"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farhan-shop/shop-api/internal/auth"
)

const testSecret = "test-signing-secret"

func TestTokenManager_IssueAndVerify(t *testing.T) {
	manager := auth.NewTokenManager(testSecret, 24*time.Hour)

	userID := uuid.Must(uuid.NewV4())

	token, err := manager.Issue(userID, "alice")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
}

func TestTokenManager_Verify_Expired(t *testing.T) {
	// A negative TTL produces a token that is already past its expiry.
	manager := auth.NewTokenManager(testSecret, -time.Minute)

	userID := uuid.Must(uuid.NewV4())

	token, err := manager.Issue(userID, "alice")
	require.NoError(t, err)

	claims, err := manager.Verify(token)
	require.ErrorIs(t, err, auth.ErrTokenExpired)
	require.Nil(t, claims)
}

func TestTokenManager_Verify_WrongSecret(t *testing.T) {
	issuer := auth.NewTokenManager("other-secret", 24*time.Hour)
	verifier := auth.NewTokenManager(testSecret, 24*time.Hour)

	token, err := issuer.Issue(uuid.Must(uuid.NewV4()), "alice")
	require.NoError(t, err)

	claims, err := verifier.Verify(token)
	require.ErrorIs(t, err, auth.ErrTokenInvalid)
	require.Nil(t, claims)
}

func TestTokenManager_Verify_Garbage(t *testing.T) {
	manager := auth.NewTokenManager(testSecret, 24*time.Hour)

	claims, err := manager.Verify("not-a-token")
	require.ErrorIs(t, err, auth.ErrTokenInvalid)
	require.Nil(t, claims)
}

func TestTokenManager_Verify_WrongAlgorithm(t *testing.T) {
	manager := auth.NewTokenManager(testSecret, 24*time.Hour)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"user_id":  uuid.Must(uuid.NewV4()).String(),
		"username": "alice",
		"exp":      time.Now().Add(time.Hour).Unix(),
	})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	claims, err := manager.Verify(token)
	require.ErrorIs(t, err, auth.ErrTokenInvalid)
	require.Nil(t, claims)
}

func TestTokenManager_Verify_MissingClaims(t *testing.T) {
	manager := auth.NewTokenManager(testSecret, 24*time.Hour)

	signed := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	token, err := signed.SignedString([]byte(testSecret))
	require.NoError(t, err)

	claims, err := manager.Verify(token)
	require.ErrorIs(t, err, auth.ErrTokenInvalid)
	require.Nil(t, claims)
}
