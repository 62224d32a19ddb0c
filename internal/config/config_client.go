package config

import (
	"flag"
	"fmt"
	"time"

	"dario.cat/mergo"
)

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the base URL of the settings server
	// (e.g. "http://localhost:8080").
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the default timeout for outbound client requests.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// Token is the bearer token sent with every request. Servers without a
	// sign key ignore it.
	// Env: ADAPTER_TOKEN
	Token string `env:"TOKEN"`
}

// ClientConfig is the configuration of the command-line client.
type ClientConfig struct {
	// Adapter contains the server address and request timeout.
	Adapter ClientAdapter `envPrefix:"ADAPTER_"`

	// Context is the settings context the command operates on. Empty means
	// the global scope.
	Context string `env:"SETTINGS_CONTEXT"`

	// WatchInterval is how often the watch command polls the server.
	// Env: WATCH_INTERVAL
	WatchInterval time.Duration `env:"WATCH_INTERVAL"`
}

// GetClientConfig builds the client configuration from environment variables
// and the flags in args, falling back to built-in defaults. It returns the
// positional arguments left after flag parsing (the command and its operands).
func GetClientConfig(args []string) (*ClientConfig, []string, error) {
	envCfg := &ClientConfig{}
	if err := parseEnv(envCfg); err != nil {
		return nil, nil, err
	}

	flagCfg := &ClientConfig{}
	fs := flag.NewFlagSet("settings-client", flag.ContinueOnError)
	fs.StringVar(&flagCfg.Adapter.HTTPAddress, "server", "", "Settings server base URL")
	fs.DurationVar(&flagCfg.Adapter.RequestTimeout, "timeout", 0, "Request timeout (e.g., 5s)")
	fs.StringVar(&flagCfg.Adapter.Token, "token", "", "Bearer token for set, forget and flush")
	fs.StringVar(&flagCfg.Context, "context", "", "Settings context (empty = global)")
	fs.DurationVar(&flagCfg.WatchInterval, "interval", 0, "Polling interval of the watch command")
	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("error parsing client flags: %w", err)
	}

	// flags beat the environment, both beat the defaults
	cfg := &ClientConfig{}
	for _, src := range []*ClientConfig{flagCfg, envCfg, defaultClientConfig()} {
		if err := mergo.Merge(cfg, src); err != nil {
			return nil, nil, fmt.Errorf("error merging client configs: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, nil, err
	}

	return cfg, fs.Args(), nil
}

func defaultClientConfig() *ClientConfig {
	return &ClientConfig{
		Adapter: ClientAdapter{
			HTTPAddress:    "http://localhost:8080",
			RequestTimeout: 10 * time.Second,
		},
		WatchInterval: 5 * time.Second,
	}
}
