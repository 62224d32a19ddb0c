package service

import (
	"context"

	"github.com/MKhiriev/go-settings/internal/config"
	"github.com/MKhiriev/go-settings/internal/logger"
	"github.com/MKhiriev/go-settings/models"
)

type Services struct {
	AppInfoService  AppInfoService
	SettingsService SettingsService
	AuthService     AuthService
}

func NewServices(ctx context.Context, backends Backends, cfg config.StructuredConfig, build models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg.App, build, logger)
	if err != nil {
		return nil, err
	}

	engine, err := NewEngine(ctx, backends, cfg, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		AppInfoService:  appInfo,
		SettingsService: NewSettingsLoggingService().Wrap(
			NewSettingsValidationService().Wrap(
				NewSettingsService(engine, logger),
			),
		),
		AuthService: NewAuthService(cfg.Auth, logger),
	}, nil
}
