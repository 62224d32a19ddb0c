package config

import (
	"flag"
	"fmt"

	"dario.cat/mergo"
)

// TokenConfig is the configuration of the token issuing command. It shares
// the AUTH_ environment variables with the server, so a token issued with
// the server's environment is accepted by that server.
type TokenConfig struct {
	Auth Auth `envPrefix:"AUTH_"`

	// Subject is the "sub" claim, naming who the token is issued to.
	// Env: TOKEN_SUBJECT
	Subject string `env:"TOKEN_SUBJECT"`
}

// GetTokenConfig builds the token command configuration from flags, the
// environment and defaults, in that order of precedence.
//
// Flags:
//
//	-subject token subject
//	-sign-key JWT signing secret
//	-issuer JWT issuer
//	-duration token lifetime (e.g., "24h")
func GetTokenConfig(args []string) (*TokenConfig, error) {
	envCfg := &TokenConfig{}
	if err := parseEnv(envCfg); err != nil {
		return nil, err
	}

	flagCfg := &TokenConfig{}
	fs := flag.NewFlagSet("settings-token", flag.ContinueOnError)
	fs.StringVar(&flagCfg.Subject, "subject", "", "Token subject")
	fs.StringVar(&flagCfg.Auth.TokenSignKey, "sign-key", "", "JWT signing secret")
	fs.StringVar(&flagCfg.Auth.TokenIssuer, "issuer", "", "JWT issuer")
	fs.DurationVar(&flagCfg.Auth.TokenDuration, "duration", 0, "Token lifetime (e.g., 24h)")
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing token flags: %w", err)
	}

	cfg := &TokenConfig{}
	for _, src := range []*TokenConfig{flagCfg, envCfg, {Auth: defaultAuth()}} {
		if err := mergo.Merge(cfg, src); err != nil {
			return nil, fmt.Errorf("error merging token configs: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
