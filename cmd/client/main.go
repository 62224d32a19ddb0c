package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-settings/internal/adapter"
	"github.com/MKhiriev/go-settings/internal/client"
	"github.com/MKhiriev/go-settings/internal/config"
	"github.com/MKhiriev/go-settings/internal/logger"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

const usage = `usage: settings-client [-server URL] [-token JWT] [-context NAME] [-timeout D] [-interval D] COMMAND [ARGS]

commands:
  get KEY...        print resolved values as JSON
  set KEY VALUE     store VALUE (JSON or plain string), needs -token on guarded servers
  forget KEY...     remove overrides, needs -token on guarded servers
  flush             clear every writable handler, needs -token on guarded servers
  handlers          list the handler chain
  version           print client and server versions
  watch KEY...      print value changes until interrupted
`

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	log := logger.NewClientLogger("go-settings-client")

	cfg, rest, err := config.GetClientConfig(args)
	if err != nil {
		log.Error().Err(err).Msg("error getting configs")
		fmt.Fprint(os.Stderr, usage)
		return 2
	}

	if len(rest) > 0 && rest[0] == "version" {
		printBuildInfo()
	}

	settingsClient, err := adapter.NewHTTPSettingsClient(cfg.Adapter, log)
	if err != nil {
		log.Error().Err(err).Msg("error creating settings client")
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	app := client.NewApp(settingsClient, *cfg, os.Stdout, log)
	if err = app.Run(log.WithContext(ctx), rest); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, client.ErrUsage) {
			fmt.Fprint(os.Stderr, usage)
			return 2
		}
		return 1
	}

	return 0
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
