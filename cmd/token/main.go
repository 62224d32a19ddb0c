package main

import (
	"context"
	"fmt"
	"os"

	"github.com/MKhiriev/go-settings/internal/config"
	"github.com/MKhiriev/go-settings/internal/logger"
	"github.com/MKhiriev/go-settings/internal/service"
)

const usage = `usage: settings-token -subject NAME [-sign-key KEY] [-issuer NAME] [-duration D]

Prints a bearer token accepted by a server running with the same
AUTH_TOKEN_SIGN_KEY and AUTH_TOKEN_ISSUER.
`

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	log := logger.NewClientLogger("go-settings-token")

	cfg, err := config.GetTokenConfig(args)
	if err != nil {
		log.Error().Err(err).Msg("error getting configs")
		fmt.Fprint(os.Stderr, usage)
		return 2
	}

	auth := service.NewAuthService(cfg.Auth, log)
	token, err := auth.IssueToken(log.WithContext(context.Background()), cfg.Subject)
	if err != nil {
		log.Error().Err(err).Str("subject", cfg.Subject).Msg("error issuing token")
		return 1
	}

	fmt.Println(token)
	return 0
}
