package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/MKhiriev/go-settings/internal/logger"
	"github.com/MKhiriev/go-settings/internal/utils"
	"github.com/MKhiriev/go-settings/models"
)

// SettingsLoggingService logs every settings operation with its duration.
type SettingsLoggingService struct {
	inner SettingsService
}

func NewSettingsLoggingService() SettingsServiceWrapper {
	return &SettingsLoggingService{}
}

func (l *SettingsLoggingService) Wrap(inner SettingsService) SettingsService {
	l.inner = inner
	return l
}

func (l *SettingsLoggingService) Get(ctx context.Context, key, scope string) (resp models.SettingResponse, err error) {
	defer l.log(ctx, "get", key, scope, time.Now(), &err, func(e *zerolog.Event) {
		e.Bool("found", resp.Found)
	})

	return l.inner.Get(ctx, key, scope)
}

func (l *SettingsLoggingService) Set(ctx context.Context, key string, value any, scope string) (err error) {
	defer l.log(ctx, "set", key, scope, time.Now(), &err, nil)

	return l.inner.Set(ctx, key, value, scope)
}

func (l *SettingsLoggingService) Forget(ctx context.Context, key, scope string) (err error) {
	defer l.log(ctx, "forget", key, scope, time.Now(), &err, nil)

	return l.inner.Forget(ctx, key, scope)
}

func (l *SettingsLoggingService) Flush(ctx context.Context) (err error) {
	defer l.log(ctx, "flush", "", "", time.Now(), &err, nil)

	return l.inner.Flush(ctx)
}

func (l *SettingsLoggingService) Handlers() []models.HandlerInfo {
	return l.inner.Handlers()
}

func (l *SettingsLoggingService) log(ctx context.Context, op, key, scope string, start time.Time, err *error, extra func(*zerolog.Event)) {
	log := logger.FromContext(ctx)

	event := log.Debug()
	if *err != nil {
		event = log.Err(*err)
	}

	event = event.
		Str("op", op).
		Str("key", key).
		Str("context", scope).
		Dur("duration", time.Since(start))
	if subject, ok := utils.GetSubjectFromContext(ctx); ok {
		event = event.Str("subject", subject)
	}
	if extra != nil && *err == nil {
		extra(event)
	}

	event.Msg("settings operation")
}
