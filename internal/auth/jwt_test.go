package auth

import (
	"testing"
	"time"

	"gamoiwere/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWTConfig() *config.JWTConfig {
	return &config.JWTConfig{
		AccessSecret:  "test-access-secret",
		RefreshSecret: "test-refresh-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: 7 * 24 * time.Hour,
		Issuer:        "gamoiwere",
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	cfg := testJWTConfig()
	token, err := GenerateAccessToken(cfg, 7, "nino@example.ge", "user")
	require.NoError(t, err)

	claims, err := ParseAccessToken(cfg, token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "nino@example.ge", claims.Email)
	assert.Equal(t, "user", claims.Role)
	assert.Equal(t, "gamoiwere", claims.Issuer)
}

func TestParseAccessTokenRejections(t *testing.T) {
	cfg := testJWTConfig()

	_, err := ParseAccessToken(cfg, "garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)

	// wrong secret
	other := testJWTConfig()
	other.AccessSecret = "different"
	token, err := GenerateAccessToken(other, 7, "n@example.ge", "user")
	require.NoError(t, err)
	_, err = ParseAccessToken(cfg, token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// expired
	short := testJWTConfig()
	short.AccessExpiry = -time.Minute
	token, err = GenerateAccessToken(short, 7, "n@example.ge", "user")
	require.NoError(t, err)
	_, err = ParseAccessToken(cfg, token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// refresh tokens are not access tokens: no uid claim
	refresh, err := GenerateRefreshToken(cfg, 7)
	require.NoError(t, err)
	_, err = ParseAccessToken(cfg, refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseAccessTokenRejectsNonHMAC(t *testing.T) {
	cfg := testJWTConfig()
	// alg:none style token
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, AccessClaims{UserID: 7})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = ParseAccessToken(cfg, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	cfg := testJWTConfig()
	token, err := GenerateRefreshToken(cfg, 42)
	require.NoError(t, err)

	userID, err := ParseRefreshToken(cfg, token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)

	// an access token does not pass as a refresh token
	access, err := GenerateAccessToken(cfg, 42, "n@example.ge", "user")
	require.NoError(t, err)
	_, err = ParseRefreshToken(cfg, access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
