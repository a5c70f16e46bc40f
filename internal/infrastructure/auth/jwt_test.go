package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/escrowdesk/backend/internal/infrastructure/config"
)

func newTestService(expiration time.Duration) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:     "test-secret-key-at-least-32-chars!!",
		Expiration: expiration,
		Issuer:     "escrowdesk-backend",
	})
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	service := newTestService(time.Hour)

	token, err := service.GenerateServiceToken("telegram-bot")
	require.NoError(t, err)
	assert.NotEmpty(t, token.Token)
	assert.Equal(t, "Bearer", token.TokenType)
	assert.WithinDuration(t, time.Now().Add(time.Hour), token.ExpiresAt, time.Second)

	claims, err := service.ValidateToken(token.Token)
	require.NoError(t, err)
	assert.Equal(t, "telegram-bot", claims.ServiceName)
	assert.Equal(t, "escrowdesk-backend", claims.Issuer)
}

func TestJWTService_EmptyServiceName(t *testing.T) {
	service := newTestService(time.Hour)

	_, err := service.GenerateServiceToken("")
	assert.ErrorIs(t, err, ErrMissingService)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	service := newTestService(-time.Minute)

	token, err := service.GenerateServiceToken("telegram-bot")
	require.NoError(t, err)

	_, err = service.ValidateToken(token.Token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTService_WrongSecret(t *testing.T) {
	service := newTestService(time.Hour)
	other := NewJWTService(config.JWTConfig{
		Secret:     "a-different-secret-also-32-chars!!!",
		Expiration: time.Hour,
		Issuer:     "escrowdesk-backend",
	})

	token, err := other.GenerateServiceToken("telegram-bot")
	require.NoError(t, err)

	_, err = service.ValidateToken(token.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_GarbageToken(t *testing.T) {
	service := newTestService(time.Hour)

	_, err := service.ValidateToken("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_RejectsUnsignedAlgorithm(t *testing.T) {
	service := newTestService(time.Hour)

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   "telegram-bot",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		ServiceName: "telegram-bot",
	}
	token := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = service.ValidateToken(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
