package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dacosmicgiant/CodeCraft-backend/internal/config"
	"github.com/Dacosmicgiant/CodeCraft-backend/internal/domain"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:                   "test-secret-key-thats-long-enough-for-hmac",
		TokenLifetimeMinutes:        60,
		RefreshTokenLifetimeMinutes: 10080,
	}
}

func newTestJWTService(t *testing.T) *hmacJWTService {
	t.Helper()
	svc, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)
	return svc.(*hmacJWTService)
}

func TestNewJWTService(t *testing.T) {
	t.Parallel()

	t.Run("rejects short secret", func(t *testing.T) {
		t.Parallel()
		cfg := testAuthConfig()
		cfg.JWTSecret = "too-short"
		_, err := NewJWTService(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least 32 characters")
	})

	t.Run("accepts 32 character secret", func(t *testing.T) {
		t.Parallel()
		cfg := testAuthConfig()
		cfg.JWTSecret = "exactly-32-characters-long-key!!"
		_, err := NewJWTService(cfg)
		require.NoError(t, err)
	})
}

func TestAccessTokenRoundTrip(t *testing.T) {
	t.Parallel()

	svc := newTestJWTService(t)
	userID := uuid.New()

	tokenString, err := svc.GenerateToken(context.Background(), userID, domain.RoleAdmin)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	claims, err := svc.ValidateToken(context.Background(), tokenString)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
	assert.Equal(t, "access", claims.TokenType)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.NotEmpty(t, claims.ID)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	t.Parallel()

	svc := newTestJWTService(t)
	userID := uuid.New()

	tokenString, err := svc.GenerateRefreshToken(context.Background(), userID, domain.RoleRegular)
	require.NoError(t, err)

	claims, err := svc.ValidateRefreshToken(context.Background(), tokenString)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, domain.RoleRegular, claims.Role)
	assert.Equal(t, "refresh", claims.TokenType)
}

func TestTokenTypeEnforcement(t *testing.T) {
	t.Parallel()

	svc := newTestJWTService(t)
	userID := uuid.New()

	accessToken, err := svc.GenerateToken(context.Background(), userID, domain.RoleRegular)
	require.NoError(t, err)
	refreshToken, err := svc.GenerateRefreshToken(context.Background(), userID, domain.RoleRegular)
	require.NoError(t, err)

	t.Run("refresh token rejected as access token", func(t *testing.T) {
		t.Parallel()
		_, err := svc.ValidateToken(context.Background(), refreshToken)
		assert.ErrorIs(t, err, ErrWrongTokenType)
	})

	t.Run("access token rejected as refresh token", func(t *testing.T) {
		t.Parallel()
		_, err := svc.ValidateRefreshToken(context.Background(), accessToken)
		assert.ErrorIs(t, err, ErrWrongTokenType)
	})
}

func TestTokenExpiry(t *testing.T) {
	t.Parallel()

	svc := newTestJWTService(t)
	userID := uuid.New()

	issuedAt := time.Now()
	svc.timeFunc = func() time.Time { return issuedAt }

	tokenString, err := svc.GenerateToken(context.Background(), userID, domain.RoleRegular)
	require.NoError(t, err)

	t.Run("valid before expiry", func(t *testing.T) {
		_, err := svc.ValidateToken(context.Background(), tokenString)
		require.NoError(t, err)
	})

	t.Run("expired after lifetime plus skew", func(t *testing.T) {
		svc.timeFunc = func() time.Time {
			return issuedAt.Add(svc.tokenLifetime + svc.clockSkew + time.Minute)
		}
		_, err := svc.ValidateToken(context.Background(), tokenString)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("clock skew tolerated", func(t *testing.T) {
		svc.timeFunc = func() time.Time {
			return issuedAt.Add(svc.tokenLifetime + time.Minute)
		}
		_, err := svc.ValidateToken(context.Background(), tokenString)
		require.NoError(t, err)
	})
}

func TestExpiredRefreshToken(t *testing.T) {
	t.Parallel()

	svc := newTestJWTService(t)

	issuedAt := time.Now()
	svc.timeFunc = func() time.Time { return issuedAt }

	tokenString, err := svc.GenerateRefreshToken(context.Background(), uuid.New(), domain.RoleRegular)
	require.NoError(t, err)

	svc.timeFunc = func() time.Time {
		return issuedAt.Add(svc.refreshTokenLifetime + svc.clockSkew + time.Minute)
	}
	_, err = svc.ValidateRefreshToken(context.Background(), tokenString)
	assert.ErrorIs(t, err, ErrExpiredRefreshToken)
}

func TestInvalidTokens(t *testing.T) {
	t.Parallel()

	svc := newTestJWTService(t)

	t.Run("garbage input", func(t *testing.T) {
		t.Parallel()
		_, err := svc.ValidateToken(context.Background(), "not-a-jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong signing key", func(t *testing.T) {
		t.Parallel()
		otherCfg := testAuthConfig()
		otherCfg.JWTSecret = "a-different-secret-key-also-long-enough!"
		other, err := NewJWTService(otherCfg)
		require.NoError(t, err)

		tokenString, err := other.GenerateToken(context.Background(), uuid.New(), domain.RoleRegular)
		require.NoError(t, err)

		_, err = svc.ValidateToken(context.Background(), tokenString)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("tampered payload", func(t *testing.T) {
		t.Parallel()
		tokenString, err := svc.GenerateToken(context.Background(), uuid.New(), domain.RoleRegular)
		require.NoError(t, err)

		tampered := tokenString[:len(tokenString)-2] + "xx"
		_, err = svc.ValidateToken(context.Background(), tampered)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
