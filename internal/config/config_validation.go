// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"slices"
)

// validate checks that the final merged [StructuredConfig] describes a chain
// the server can build: handler names are unique, writable handlers are part
// of the chain, and every backend used by the chain is configured.
func (cfg *StructuredConfig) validate() error {
	s := cfg.Settings
	if len(s.Handlers) == 0 {
		return fmt.Errorf("%w: no handlers configured", ErrInvalidSettingsConfigs)
	}

	seen := make(map[string]bool, len(s.Handlers))
	for _, name := range s.Handlers {
		if name == "" {
			return fmt.Errorf("%w: empty handler name", ErrInvalidSettingsConfigs)
		}
		if seen[name] {
			return fmt.Errorf("%w: handler %q listed twice", ErrInvalidSettingsConfigs, name)
		}
		seen[name] = true
	}

	for _, name := range s.Writable {
		if !seen[name] {
			return fmt.Errorf("%w: writable handler %q is not in the chain", ErrInvalidSettingsConfigs, name)
		}
	}

	if s.Uses("database") {
		if cfg.Storage.DB.DSN == "" {
			return fmt.Errorf("%w: database handler needs a DSN", ErrInvalidStorageConfigs)
		}
		if !slices.Contains([]string{"pgx", "sqlite3"}, cfg.Storage.DB.Driver) {
			return fmt.Errorf("%w: unsupported database driver %q", ErrInvalidStorageConfigs, cfg.Storage.DB.Driver)
		}
		if s.Table == "" {
			return fmt.Errorf("%w: database handler needs a table name", ErrInvalidSettingsConfigs)
		}
	}

	if s.Uses("redis") && cfg.Storage.Redis.Address == "" {
		return fmt.Errorf("%w: redis handler needs an address", ErrInvalidStorageConfigs)
	}

	if s.Uses("static") && s.StaticFile == "" {
		return fmt.Errorf("%w: static handler needs a file", ErrInvalidSettingsConfigs)
	}

	if s.HydrationTTL < 0 {
		return fmt.Errorf("%w: negative hydration ttl", ErrInvalidSettingsConfigs)
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 {
		return ErrInvalidServerConfigs
	}

	if cfg.Auth.TokenSignKey != "" && cfg.Auth.TokenIssuer == "" {
		return fmt.Errorf("%w: token issuer is required with a sign key", ErrInvalidAuthConfigs)
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 || cfg.WatchInterval <= 0 {
		return ErrInvalidAdapterConfigs
	}

	return nil
}

func (cfg *TokenConfig) validate() error {
	if cfg.Subject == "" {
		return fmt.Errorf("%w: subject is required", ErrInvalidAuthConfigs)
	}
	if cfg.Auth.TokenSignKey == "" || cfg.Auth.TokenIssuer == "" || cfg.Auth.TokenDuration <= 0 {
		return fmt.Errorf("%w: sign key, issuer and a positive duration are required", ErrInvalidAuthConfigs)
	}

	return nil
}
