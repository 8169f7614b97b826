package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jewelscan/internal/config"
	"jewelscan/internal/domain"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret: "test-secret-key-for-unit-tests",
		Expiry: 15 * time.Minute,
		Issuer: "jewelscan-test",
	}
}

func TestAuthService_IssueAndValidate(t *testing.T) {
	svc := NewAuthService(testJWTConfig())

	tok, err := svc.IssueToken("counter-1")
	require.NoError(t, err)
	assert.NotEmpty(t, tok.AccessToken)
	assert.True(t, tok.ExpiresAt.After(time.Now()))

	claims, err := svc.ValidateToken(tok.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "counter-1", claims.Operator)
	assert.Equal(t, "counter-1", claims.Subject)
	assert.Equal(t, "jewelscan-test", claims.Issuer)
}

func TestAuthService_IssueToken_EmptyOperator(t *testing.T) {
	_, err := NewAuthService(testJWTConfig()).IssueToken("")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthService_ValidateToken_Rejections(t *testing.T) {
	cfg := testJWTConfig()
	svc := NewAuthService(cfg)
	tok, err := svc.IssueToken("counter-1")
	require.NoError(t, err)

	t.Run("wrong secret", func(t *testing.T) {
		other := cfg
		other.Secret = "another-secret"
		_, err := NewAuthService(other).ValidateToken(tok.AccessToken)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		other := cfg
		other.Issuer = "someone-else"
		_, err := NewAuthService(other).ValidateToken(tok.AccessToken)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("expired", func(t *testing.T) {
		late := &authService{cfg: cfg, now: func() time.Time { return time.Now().Add(time.Hour) }}
		_, err := late.ValidateToken(tok.AccessToken)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("wrong audience", func(t *testing.T) {
		claims := &Claims{RegisteredClaims: jwt.RegisteredClaims{
			Subject: "x", Issuer: cfg.Issuer, Audience: jwt.ClaimStrings{"refresh"},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		}}
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.Secret))
		require.NoError(t, err)
		_, err = svc.ValidateToken(signed)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.ValidateToken("not-a-jwt")
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})
}
