package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-settings/internal/adapter"
	"github.com/MKhiriev/go-settings/internal/config"
	"github.com/MKhiriev/go-settings/internal/logger"
	"github.com/MKhiriev/go-settings/internal/utils"
)

type App struct {
	settings      adapter.SettingsClient
	scope         string
	watchInterval time.Duration

	mu  sync.Mutex
	out io.Writer

	logger *logger.Logger
}

func NewApp(settings adapter.SettingsClient, cfg config.ClientConfig, out io.Writer, logger *logger.Logger) *App {
	return &App{
		settings:      settings,
		scope:         cfg.Context,
		watchInterval: cfg.WatchInterval,
		out:           out,
		logger:        logger,
	}
}

func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: no command given", ErrUsage)
	}

	command, operands := args[0], args[1:]
	switch command {
	case "get":
		return a.get(ctx, operands)
	case "set":
		return a.set(ctx, operands)
	case "forget":
		return a.forget(ctx, operands)
	case "flush":
		return a.flush(ctx, operands)
	case "handlers":
		return a.handlers(ctx, operands)
	case "version":
		return a.version(ctx, operands)
	case "watch":
		return a.watch(ctx, operands)
	default:
		return fmt.Errorf("%w: unknown command %q", ErrUsage, command)
	}
}

func (a *App) get(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return fmt.Errorf("%w: get KEY...", ErrUsage)
	}

	for _, key := range keys {
		setting, err := a.settings.Get(ctx, key, a.scope)
		if err != nil {
			return fmt.Errorf("get %s: %w", key, err)
		}
		if !setting.Found {
			return fmt.Errorf("%w: %s", ErrSettingNotSet, key)
		}

		line, err := formatValue(setting.Value)
		if err != nil {
			return fmt.Errorf("get %s: %w", key, err)
		}
		if len(keys) > 1 {
			line = key + "=" + line
		}
		a.println(line)
	}

	return nil
}

func (a *App) set(ctx context.Context, operands []string) error {
	if len(operands) != 2 {
		return fmt.Errorf("%w: set KEY VALUE", ErrUsage)
	}

	key, value := operands[0], parseValue(operands[1])
	if err := a.settings.Set(ctx, key, value, a.scope); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}

	a.logger.Debug().Str("key", key).Str("context", a.scope).Msg("setting stored")
	return nil
}

func (a *App) forget(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return fmt.Errorf("%w: forget KEY...", ErrUsage)
	}

	for _, key := range keys {
		if err := a.settings.Forget(ctx, key, a.scope); err != nil {
			return fmt.Errorf("forget %s: %w", key, err)
		}
	}
	return nil
}

func (a *App) flush(ctx context.Context, operands []string) error {
	if len(operands) != 0 {
		return fmt.Errorf("%w: flush takes no arguments", ErrUsage)
	}

	if err := a.settings.Flush(ctx); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	return nil
}

func (a *App) handlers(ctx context.Context, operands []string) error {
	if len(operands) != 0 {
		return fmt.Errorf("%w: handlers takes no arguments", ErrUsage)
	}

	handlers, err := a.settings.Handlers(ctx)
	if err != nil {
		return fmt.Errorf("handlers: %w", err)
	}

	for _, h := range handlers {
		mode := "read-only"
		if h.Writable {
			mode = "writable"
		}
		a.println(h.Name + "\t" + mode)
	}
	return nil
}

func (a *App) version(ctx context.Context, operands []string) error {
	if len(operands) != 0 {
		return fmt.Errorf("%w: version takes no arguments", ErrUsage)
	}

	v, err := a.settings.Version(ctx)
	if err != nil {
		return fmt.Errorf("version: %w", err)
	}

	a.println(v)
	return nil
}

func (a *App) println(line string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	fmt.Fprintln(a.out, line)
}

// parseValue reads raw as a JSON document and falls back to the raw string,
// so `set Site.limit 42` stores an integer and `set Site.name Foo` a string.
func parseValue(raw string) any {
	var value any
	if err := utils.DecodeJSON(strings.NewReader(raw), &value); err != nil {
		return raw
	}
	return value
}

func formatValue(value any) (string, error) {
	b, err := json.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("error encoding value: %w", err)
	}
	return string(b), nil
}
