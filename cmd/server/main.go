package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-settings/internal/config"
	"github.com/MKhiriev/go-settings/internal/handler"
	"github.com/MKhiriev/go-settings/internal/logger"
	"github.com/MKhiriev/go-settings/internal/server"
	"github.com/MKhiriev/go-settings/internal/service"
	"github.com/MKhiriev/go-settings/internal/store"
	"github.com/MKhiriev/go-settings/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("go-settings-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	if err = logger.SetLevel(cfg.App.LogLevel); err != nil {
		log.Fatal().Err(err).Msg("invalid log level")
	}

	log.Debug().Any("handlers", cfg.Settings.Handlers).Any("writable", cfg.Settings.Writable).Msg("received configs")

	ctx := log.WithContext(context.Background())

	backends, closeBackends, err := openBackends(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting backends")
	}
	defer closeBackends()

	build := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	services, err := service.NewServices(ctx, backends, *cfg, build, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}
	if !services.AuthService.Enabled() {
		log.Warn().Msg("AUTH_TOKEN_SIGN_KEY is empty: write routes accept unauthenticated requests")
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	if err = srv.RunServer(ctx); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
	}
}

// openBackends connects only the backends the handler chain uses.
func openBackends(ctx context.Context, cfg *config.StructuredConfig, log *logger.Logger) (service.Backends, func(), error) {
	var backends service.Backends
	closers := make([]func() error, 0, 2)

	closeAll := func() {
		for _, c := range closers {
			if err := c(); err != nil {
				log.Err(err).Msg("error closing backend")
			}
		}
	}

	if cfg.Settings.Uses(service.HandlerDatabase) {
		db, err := store.NewConnect(ctx, cfg.Storage.DB, log)
		if err != nil {
			return backends, closeAll, err
		}
		closers = append(closers, db.Close)

		if err = db.Migrate(); err != nil {
			closeAll()
			return backends, func() {}, fmt.Errorf("error migrating database: %w", err)
		}
		backends.DB = db
	}

	if cfg.Settings.Uses(service.HandlerRedis) {
		client, err := store.NewRedisClient(ctx, cfg.Storage.Redis, log)
		if err != nil {
			closeAll()
			return backends, func() {}, err
		}
		closers = append(closers, client.Close)
		backends.Redis = client
	}

	return backends, closeAll, nil
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
