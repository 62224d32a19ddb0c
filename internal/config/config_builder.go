package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"dario.cat/mergo"
)

type configBuilder struct {
	configs []*StructuredConfig
	err     error
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{
		configs: make([]*StructuredConfig, 0, 4),
	}
}

func (b *configBuilder) build() (*StructuredConfig, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occured during building config: %w", b.err)
	}

	config := new(StructuredConfig)
	for _, cfg := range b.configs {
		if err := mergo.Merge(config, cfg); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}

	if len(b.configs) == 0 {
		return config, nil
	}

	return config, config.validate()
}

func (b *configBuilder) withEnv() *configBuilder {
	envCfg := &StructuredConfig{}
	if err := parseEnv(envCfg); err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, envCfg)
	return b
}

func (b *configBuilder) withFlags() *configBuilder {
	return b.withArgs(os.Args[1:])
}

func (b *configBuilder) withArgs(args []string) *configBuilder {
	flags, err := parseFlags(args)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, flags)
	return b
}

func (b *configBuilder) withJSON() *configBuilder {
	var jsonPath string

	for _, cfg := range b.configs {
		if cfg.JSONFilePath != "" {
			jsonPath = cfg.JSONFilePath
			break
		}
	}

	if jsonPath == "" {
		return b
	}

	jsonCfg, err := parseJSON(jsonPath)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}
	b.configs = append(b.configs, jsonCfg)

	return b
}

func (b *configBuilder) withDefaults() *configBuilder {
	b.configs = append(b.configs, defaultConfig())
	return b
}

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			Version:  "dev",
			LogLevel: "info",
		},
		Settings: Settings{
			Handlers:    []string{"database"},
			Table:       "settings",
			RedisPrefix: "settings",
		},
		Storage: Storage{
			DB: DB{
				Driver:         "pgx",
				ConnectRetries: 5,
			},
			Redis: Redis{
				ConnectRetries: 5,
			},
		},
		Server: Server{
			HTTPAddress:    "localhost:8080",
			RequestTimeout: 10 * time.Second,
		},
		Auth: defaultAuth(),
	}
}

func defaultAuth() Auth {
	return Auth{
		TokenIssuer:   "go-settings",
		TokenDuration: 24 * time.Hour,
	}
}
