package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() *StructuredConfig {
	cfg := defaultConfig()
	cfg.Storage.DB.DSN = "postgres://localhost/settings"
	return cfg
}

func TestStructuredConfig_validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *StructuredConfig)
		wantErr error
	}{
		{name: "valid", mutate: func(*StructuredConfig) {}},
		{
			name:    "no handlers",
			mutate:  func(cfg *StructuredConfig) { cfg.Settings.Handlers = nil },
			wantErr: ErrInvalidSettingsConfigs,
		},
		{
			name:    "duplicate handler",
			mutate:  func(cfg *StructuredConfig) { cfg.Settings.Handlers = []string{"database", "database"} },
			wantErr: ErrInvalidSettingsConfigs,
		},
		{
			name:    "writable outside chain",
			mutate:  func(cfg *StructuredConfig) { cfg.Settings.Writable = []string{"redis"} },
			wantErr: ErrInvalidSettingsConfigs,
		},
		{
			name:    "unknown driver",
			mutate:  func(cfg *StructuredConfig) { cfg.Storage.DB.Driver = "mysql" },
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name:    "redis without address",
			mutate:  func(cfg *StructuredConfig) { cfg.Settings.Handlers = []string{"redis"} },
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name: "redis with address",
			mutate: func(cfg *StructuredConfig) {
				cfg.Settings.Handlers = []string{"redis"}
				cfg.Storage.Redis.Address = "localhost:6379"
			},
		},
		{
			name:    "static without file",
			mutate:  func(cfg *StructuredConfig) { cfg.Settings.Handlers = []string{"static", "array"} },
			wantErr: ErrInvalidSettingsConfigs,
		},
		{
			name:    "negative ttl",
			mutate:  func(cfg *StructuredConfig) { cfg.Settings.HydrationTTL = -time.Second },
			wantErr: ErrInvalidSettingsConfigs,
		},
		{
			name:    "no server address",
			mutate:  func(cfg *StructuredConfig) { cfg.Server.HTTPAddress = "" },
			wantErr: ErrInvalidServerConfigs,
		},
		{
			name:   "sign key with issuer",
			mutate: func(cfg *StructuredConfig) { cfg.Auth.TokenSignKey = "secret" },
		},
		{
			name: "sign key without issuer",
			mutate: func(cfg *StructuredConfig) {
				cfg.Auth.TokenSignKey = "secret"
				cfg.Auth.TokenIssuer = ""
			},
			wantErr: ErrInvalidAuthConfigs,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSettings_IsWritable(t *testing.T) {
	s := Settings{Handlers: []string{"static", "database", "redis"}}
	assert.False(t, s.IsWritable("static"))
	assert.True(t, s.IsWritable("database"))
	assert.True(t, s.IsWritable("redis"))

	s.Writable = []string{"database"}
	assert.True(t, s.IsWritable("database"))
	assert.False(t, s.IsWritable("redis"))
}
