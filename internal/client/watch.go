package client

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-settings/internal/workers"
)

const notSetMarker = "<not set>"

// watch polls every key on its own worker and prints "KEY VALUE" whenever
// the resolved value changes, starting with the current one. It returns
// when ctx is cancelled.
func (a *App) watch(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return fmt.Errorf("%w: watch KEY...", ErrUsage)
	}

	pollers := make([]workers.Worker, 0, len(keys))
	for _, key := range keys {
		pollers = append(pollers, workers.NewPoller("watch "+key, a.watchInterval, a.watchKey(key), a.logger))
	}

	workers.NewWorkers(pollers...).Run(ctx)
	return nil
}

func (a *App) watchKey(key string) func(ctx context.Context) error {
	last, seen := "", false

	return func(ctx context.Context) error {
		setting, err := a.settings.Get(ctx, key, a.scope)
		if err != nil {
			return err
		}

		current := notSetMarker
		if setting.Found {
			if current, err = formatValue(setting.Value); err != nil {
				return err
			}
		}

		if seen && current == last {
			return nil
		}
		last, seen = current, true

		a.println(key + " " + current)
		return nil
	}
}
