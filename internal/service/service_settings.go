package service

import (
	"context"
	"sync"

	"github.com/MKhiriev/go-settings/internal/logger"
	"github.com/MKhiriev/go-settings/internal/settings"
	"github.com/MKhiriev/go-settings/models"
)

// settingsService serialises access to the engine. The engine and its
// handlers keep per-instance caches and are not safe for concurrent use.
type settingsService struct {
	mu     sync.Mutex
	engine *settings.Settings

	logger *logger.Logger
}

func NewSettingsService(engine *settings.Settings, logger *logger.Logger) SettingsService {
	return &settingsService{
		engine: engine,
		logger: logger,
	}
}

func (s *settingsService) Get(ctx context.Context, key, scope string) (models.SettingResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, found, err := s.engine.Get(ctx, key, models.InScope(scope))
	if err != nil {
		return models.SettingResponse{}, err
	}

	return models.SettingResponse{
		Key:     key,
		Context: scope,
		Value:   value,
		Found:   found,
	}, nil
}

func (s *settingsService) Set(ctx context.Context, key string, value any, scope string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.engine.Set(ctx, key, value, models.InScope(scope))
}

func (s *settingsService) Forget(ctx context.Context, key, scope string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.engine.Forget(ctx, key, models.InScope(scope))
}

func (s *settingsService) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.engine.Flush(ctx)
}

func (s *settingsService) Handlers() []models.HandlerInfo {
	links := s.engine.Handlers()

	infos := make([]models.HandlerInfo, 0, len(links))
	for _, link := range links {
		infos = append(infos, models.HandlerInfo{Name: link.Name, Writable: link.Writable})
	}
	return infos
}
