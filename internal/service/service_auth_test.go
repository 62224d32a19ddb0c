package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-settings/internal/config"
	"github.com/MKhiriev/go-settings/internal/logger"
)

func newTestAuthService(key string) AuthService {
	return NewAuthService(config.Auth{
		TokenSignKey:  key,
		TokenIssuer:   "go-settings",
		TokenDuration: time.Hour,
	}, logger.Nop())
}

func TestAuthService_IssueAndParse(t *testing.T) {
	auth := newTestAuthService("secret")
	ctx := testContext()
	require.True(t, auth.Enabled())

	token, err := auth.IssueToken(ctx, "deploy-bot")
	require.NoError(t, err)

	subject, err := auth.ParseToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "deploy-bot", subject)
}

func TestAuthService_Disabled(t *testing.T) {
	auth := newTestAuthService("")
	ctx := testContext()
	assert.False(t, auth.Enabled())

	_, err := auth.IssueToken(ctx, "ops")
	assert.ErrorIs(t, err, ErrAuthDisabled)

	_, err = auth.ParseToken(ctx, "anything")
	assert.ErrorIs(t, err, ErrAuthDisabled)
}

func TestAuthService_ParseToken_Rejects(t *testing.T) {
	auth := newTestAuthService("secret")
	ctx := testContext()

	foreign, err := newTestAuthService("other-secret").IssueToken(ctx, "ops")
	require.NoError(t, err)

	_, err = auth.ParseToken(ctx, foreign)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &jwt.RegisteredClaims{
		Issuer:    "go-settings",
		Subject:   "ops",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = auth.ParseToken(ctx, expired)
	assert.ErrorIs(t, err, ErrTokenIsExpired)
}
