package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTokenConfig_EnvAndDefaults(t *testing.T) {
	setEnvVars(t, map[string]string{
		"AUTH_TOKEN_SIGN_KEY": "env-secret",
		"TOKEN_SUBJECT":       "deploy-bot",
	})

	cfg, err := GetTokenConfig(nil)
	require.NoError(t, err)

	assert.Equal(t, "deploy-bot", cfg.Subject)
	assert.Equal(t, "env-secret", cfg.Auth.TokenSignKey)
	assert.Equal(t, "go-settings", cfg.Auth.TokenIssuer)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenDuration)
}

func TestGetTokenConfig_FlagsBeatEnv(t *testing.T) {
	setEnvVars(t, map[string]string{
		"AUTH_TOKEN_SIGN_KEY": "env-secret",
		"TOKEN_SUBJECT":       "env-subject",
	})

	cfg, err := GetTokenConfig([]string{"-subject", "ops", "-sign-key", "flag-secret", "-issuer", "acme", "-duration", "1h"})
	require.NoError(t, err)

	assert.Equal(t, "ops", cfg.Subject)
	assert.Equal(t, "flag-secret", cfg.Auth.TokenSignKey)
	assert.Equal(t, "acme", cfg.Auth.TokenIssuer)
	assert.Equal(t, time.Hour, cfg.Auth.TokenDuration)
}

func TestGetTokenConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "no subject", args: []string{"-sign-key", "secret"}},
		{name: "no sign key", args: []string{"-subject", "ops"}},
		{name: "bad duration", args: []string{"-subject", "ops", "-sign-key", "secret", "-duration", "forever"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnvVars(t)

			_, err := GetTokenConfig(tt.args)
			assert.Error(t, err)
		})
	}

	clearEnvVars(t)
	_, err := GetTokenConfig([]string{"-subject", "ops"})
	assert.ErrorIs(t, err, ErrInvalidAuthConfigs)
}
