package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-settings/internal/logger"
)

// Poller calls a task immediately and then once per interval until the
// context is cancelled. Task errors are logged and do not stop the loop.
type Poller struct {
	name     string
	interval time.Duration
	task     func(ctx context.Context) error

	logger *logger.Logger
}

func NewPoller(name string, interval time.Duration, task func(ctx context.Context) error, logger *logger.Logger) *Poller {
	return &Poller{
		name:     name,
		interval: interval,
		task:     task,
		logger:   logger,
	}
}

func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for ctx.Err() == nil {
		if err := p.task(ctx); err != nil && ctx.Err() == nil {
			p.logger.Err(err).Str("func", "*Poller.Run").Str("worker", p.name).Msg("poll failed")
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
