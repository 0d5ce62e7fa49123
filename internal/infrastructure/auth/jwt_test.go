package auth

import (
	"testing"
	"time"

	"github.com/hrportal/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWTService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key",
		RefreshSecret:          "test-refresh-secret",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "hrportal-test",
	})
}

func TestGenerateTokenPair(t *testing.T) {
	service := testJWTService()
	profileID := uuid.New()

	pair, err := service.GenerateTokenPair(GenerateTokenInput{
		ProfileID: profileID,
		Email:     "luc.moreau@example.com",
		Role:      "driver",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.True(t, pair.RefreshTokenExpiresAt.After(pair.AccessTokenExpiresAt))
}

func TestValidateAccessToken(t *testing.T) {
	service := testJWTService()
	profileID := uuid.New()

	pair, err := service.GenerateTokenPair(GenerateTokenInput{
		ProfileID: profileID,
		Email:     "luc.moreau@example.com",
		Role:      "office",
	})
	require.NoError(t, err)

	t.Run("valid access token", func(t *testing.T) {
		claims, err := service.ValidateAccessToken(pair.AccessToken)

		require.NoError(t, err)
		assert.Equal(t, profileID.String(), claims.ProfileID)
		assert.Equal(t, "office", claims.Role)
		assert.Equal(t, TokenTypeAccess, claims.TokenType)

		parsed, err := claims.GetProfileUUID()
		require.NoError(t, err)
		assert.Equal(t, profileID, parsed)
	})

	t.Run("refresh token rejected as access token", func(t *testing.T) {
		_, err := service.ValidateAccessToken(pair.RefreshToken)

		assert.ErrorIs(t, err, ErrInvalidTokenType)
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		_, err := service.ValidateAccessToken("not.a.token")

		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("token signed with another secret rejected", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{
			Secret:                 "different-secret",
			AccessTokenExpiration:  15 * time.Minute,
			RefreshTokenExpiration: 24 * time.Hour,
			Issuer:                 "hrportal-test",
		})
		otherPair, err := other.GenerateTokenPair(GenerateTokenInput{ProfileID: profileID, Role: "driver"})
		require.NoError(t, err)

		_, err = service.ValidateAccessToken(otherPair.AccessToken)

		assert.Error(t, err)
	})
}

func TestValidateRefreshToken(t *testing.T) {
	service := testJWTService()
	profileID := uuid.New()

	pair, err := service.GenerateTokenPair(GenerateTokenInput{ProfileID: profileID, Role: "admin"})
	require.NoError(t, err)

	claims, err := service.ValidateRefreshToken(pair.RefreshToken)

	require.NoError(t, err)
	assert.Equal(t, TokenTypeRefresh, claims.TokenType)
	assert.Equal(t, profileID.String(), claims.ProfileID)
}

func TestExpiredToken(t *testing.T) {
	service := NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key",
		AccessTokenExpiration:  -1 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "hrportal-test",
	})

	pair, err := service.GenerateTokenPair(GenerateTokenInput{ProfileID: uuid.New(), Role: "driver"})
	require.NoError(t, err)

	_, err = service.ValidateAccessToken(pair.AccessToken)

	assert.ErrorIs(t, err, ErrExpiredToken)
}
