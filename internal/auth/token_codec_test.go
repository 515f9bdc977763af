package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSigningSecret = "test-jwt-secret-key-32-characters"

func TestAccessTokenRoundTrip(t *testing.T) {
	codec := NewAccessTokenCodec(testSigningSecret)

	token, err := codec.Encode("user-123", time.Hour)
	require.NoError(t, err)
	assert.Contains(t, token, ".") // JWT format

	session, err := codec.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", session.UserID)
	assert.True(t, session.ExpiresAt.After(time.Now()))
}

func TestClientTokenRoundTrip(t *testing.T) {
	codec := NewClientTokenCodec(testSigningSecret)

	token, err := codec.Encode("client-abc", time.Hour)
	require.NoError(t, err)

	session, err := codec.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, "client-abc", session.ClientID)
}

func TestDecodeRejectsWrongSecret(t *testing.T) {
	token, err := NewAccessTokenCodec(testSigningSecret).Encode("user-123", time.Hour)
	require.NoError(t, err)

	_, err = NewAccessTokenCodec("a-different-secret-entirely").Decode(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestDecodeRejectsExpiredToken(t *testing.T) {
	codec := NewAccessTokenCodec(testSigningSecret)

	token, err := codec.Encode("user-123", -time.Minute)
	require.NoError(t, err)

	_, err = codec.Decode(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	codec := NewAccessTokenCodec(testSigningSecret)

	for _, tokenText := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := codec.Decode(tokenText)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}

// The two token kinds share a signing secret but not a claim shape. A token
// minted by one codec must never decode with the other.
func TestTokenKindsAreNotInterchangeable(t *testing.T) {
	access := NewAccessTokenCodec(testSigningSecret)
	client := NewClientTokenCodec(testSigningSecret)

	accessToken, err := access.Encode("user-123", time.Hour)
	require.NoError(t, err)
	clientToken, err := client.Encode("client-abc", time.Hour)
	require.NoError(t, err)

	_, err = client.Decode(accessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = access.Decode(clientToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestDecodeRequiresExpClaim(t *testing.T) {
	// Hand-sign a token with the right shape but no exp claim.
	claims := jwt.MapClaims{"userId": "user-123"}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(testSigningSecret))
	require.NoError(t, err)

	_, err = NewAccessTokenCodec(testSigningSecret).Decode(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestDecodeRejectsUnsignedToken(t *testing.T) {
	claims := jwt.MapClaims{
		"userId": "user-123",
		"exp":    time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewAccessTokenCodec(testSigningSecret).Decode(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
