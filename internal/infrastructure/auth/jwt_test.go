package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siteops/backend/internal/infrastructure/config"
)

func newTestJWTService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-for-access-tokens",
		RefreshSecret:          "test-secret-key-for-refresh-tokens",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "siteops-test",
		MaxRefreshCount:        3,
	})
}

func newTestInput() GenerateTokenInput {
	siteID := uuid.New()
	return GenerateTokenInput{
		UserID:      uuid.New(),
		Username:    "site.engineer",
		RoleID:      uuid.New(),
		SiteID:      &siteID,
		Permissions: []string{"procurement:create", "stock:post"},
	}
}

func TestNewJWTService_UsesSecretForRefreshIfNotProvided(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{
		Secret:                 "only-secret",
		AccessTokenExpiration:  time.Minute,
		RefreshTokenExpiration: time.Hour,
	})
	assert.Equal(t, []byte("only-secret"), svc.refreshSecret)
}

func TestGenerateTokenPair(t *testing.T) {
	svc := newTestJWTService()
	pair, err := svc.GenerateTokenPair(newTestInput())

	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.True(t, pair.RefreshTokenExpiresAt.After(pair.AccessTokenExpiresAt))
}

func TestValidateAccessToken(t *testing.T) {
	svc := newTestJWTService()
	input := newTestInput()
	pair, err := svc.GenerateTokenPair(input)
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, input.UserID.String(), claims.UserID)
	assert.Equal(t, input.Username, claims.Username)
	assert.Equal(t, input.RoleID.String(), claims.RoleID)
	assert.Equal(t, input.SiteID.String(), claims.SiteID)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
	assert.ElementsMatch(t, input.Permissions, claims.Permissions)
}

func TestValidateAccessToken_Expired(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{
		Secret:                 "test-secret",
		AccessTokenExpiration:  -time.Minute,
		RefreshTokenExpiration: time.Hour,
	})
	pair, err := svc.GenerateTokenPair(newTestInput())
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateAccessToken_Garbage(t *testing.T) {
	svc := newTestJWTService()
	_, err := svc.ValidateAccessToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateAccessToken_RejectsRefreshToken(t *testing.T) {
	svc := newTestJWTService()
	pair, err := svc.GenerateTokenPair(newTestInput())
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(pair.RefreshToken)
	assert.Error(t, err)
}

func TestRefreshTokenPair(t *testing.T) {
	svc := newTestJWTService()
	input := newTestInput()
	pair, err := svc.GenerateTokenPair(input)
	require.NoError(t, err)

	newPair, err := svc.RefreshTokenPair(pair.RefreshToken, input.RoleID, input.SiteID, []string{"stock:view"})
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(newPair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, []string{"stock:view"}, claims.Permissions, "permissions come from current role data, not the old token")

	refreshClaims, err := svc.ValidateRefreshToken(newPair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, 1, refreshClaims.RefreshCount)
}

func TestRefreshTokenPair_MaxRefreshExceeded(t *testing.T) {
	svc := newTestJWTService()
	input := newTestInput()
	pair, err := svc.GenerateTokenPair(input)
	require.NoError(t, err)

	refresh := pair.RefreshToken
	for i := 0; i < 3; i++ {
		newPair, err := svc.RefreshTokenPair(refresh, input.RoleID, input.SiteID, nil)
		require.NoError(t, err)
		refresh = newPair.RefreshToken
	}

	_, err = svc.RefreshTokenPair(refresh, input.RoleID, input.SiteID, nil)
	assert.ErrorIs(t, err, ErrMaxRefreshExceeded)
}

func TestRefreshTokenPair_RejectsAccessToken(t *testing.T) {
	svc := newTestJWTService()
	input := newTestInput()
	pair, err := svc.GenerateTokenPair(input)
	require.NoError(t, err)

	_, err = svc.RefreshTokenPair(pair.AccessToken, input.RoleID, input.SiteID, nil)
	assert.Error(t, err)
}

func TestClaims_HasPermission(t *testing.T) {
	claims := &Claims{Permissions: []string{"procurement:create", "stock:*"}}

	assert.True(t, claims.HasPermission("procurement:create"))
	assert.True(t, claims.HasPermission("stock:post"), "module wildcard grants any action")
	assert.False(t, claims.HasPermission("finance:certify"))

	admin := &Claims{Permissions: []string{"*:*"}}
	assert.True(t, admin.HasPermission("finance:certify"))
}

func TestClaims_GetSiteUUID(t *testing.T) {
	siteID := uuid.New()
	claims := &Claims{SiteID: siteID.String()}
	got, err := claims.GetSiteUUID()
	require.NoError(t, err)
	assert.Equal(t, siteID, *got)

	allSites := &Claims{}
	got, err = allSites.GetSiteUUID()
	require.NoError(t, err)
	assert.Nil(t, got)
}
