package service

import (
	"context"
	"fmt"
	"os"

	"github.com/redis/go-redis/v9"

	"github.com/MKhiriev/go-settings/internal/config"
	"github.com/MKhiriev/go-settings/internal/logger"
	"github.com/MKhiriev/go-settings/internal/settings"
	"github.com/MKhiriev/go-settings/internal/store"
)

// Handler names accepted in the chain configuration.
const (
	HandlerArray    = "array"
	HandlerDatabase = "database"
	HandlerRedis    = "redis"
	HandlerStatic   = "static"
)

// Backends carries the connections the handler factories close over. A nil
// backend is only an error when the chain names a handler that needs it.
type Backends struct {
	DB    *store.DB
	Redis redis.UniversalClient
}

// NewRegistry registers every handler this server knows how to build.
func NewRegistry(backends Backends, cfg config.Settings, defaults settings.Defaults) *settings.Registry {
	opts := []store.HandlerOption{store.WithHydrationTTL(cfg.HydrationTTL)}

	registry := settings.NewRegistry()

	registry.Register(HandlerArray, func(context.Context) (settings.Handler, error) {
		return settings.NewArrayHandler(), nil
	})

	registry.Register(HandlerDatabase, func(context.Context) (settings.Handler, error) {
		if backends.DB == nil {
			return nil, fmt.Errorf("%w: %s", ErrBackendNotConfigured, HandlerDatabase)
		}
		return store.NewDatabaseHandler(backends.DB, cfg.Table, opts...)
	})

	registry.Register(HandlerRedis, func(context.Context) (settings.Handler, error) {
		if backends.Redis == nil {
			return nil, fmt.Errorf("%w: %s", ErrBackendNotConfigured, HandlerRedis)
		}
		return store.NewRedisHandler(backends.Redis, cfg.RedisPrefix, opts...), nil
	})

	registry.Register(HandlerStatic, func(context.Context) (settings.Handler, error) {
		f, err := os.Open(cfg.StaticFile)
		if err != nil {
			return nil, fmt.Errorf("error opening static overrides: %w", err)
		}
		defer f.Close()

		return settings.LoadStaticHandlerYAML(f, defaults)
	})

	return registry
}

// NewEngine builds the handler chain described by cfg and the engine over it.
func NewEngine(ctx context.Context, backends Backends, cfg config.StructuredConfig, log *logger.Logger) (*settings.Settings, error) {
	defaults, err := loadDefaults(cfg.App.DefaultsFile)
	if err != nil {
		log.Err(err).Str("func", "NewEngine").Str("file", cfg.App.DefaultsFile).Msg("error loading defaults")
		return nil, err
	}

	specs := make([]settings.HandlerSpec, 0, len(cfg.Settings.Handlers))
	for _, name := range cfg.Settings.Handlers {
		specs = append(specs, settings.HandlerSpec{Name: name, Writable: cfg.Settings.IsWritable(name)})
	}

	links, err := NewRegistry(backends, cfg.Settings, defaults).Chain(ctx, specs)
	if err != nil {
		log.Err(err).Str("func", "NewEngine").Strs("handlers", cfg.Settings.Handlers).Msg("error building handler chain")
		return nil, err
	}

	opts := []settings.Option{settings.WithLogger(log)}
	if defaults != nil {
		opts = append(opts, settings.WithDefaults(defaults))
	}
	if cfg.Settings.IgnoreUnsupportedForget {
		opts = append(opts, settings.WithIgnoreUnsupportedForget())
	}

	return settings.New(links, opts...), nil
}

// loadDefaults returns nil, and no error, when path is empty.
func loadDefaults(path string) (settings.Defaults, error) {
	if path == "" {
		return nil, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening defaults file: %w", err)
	}
	defer f.Close()

	table, err := settings.LoadDefaultsYAML(f)
	if err != nil {
		return nil, err
	}
	return table, nil
}
