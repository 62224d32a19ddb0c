package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-settings/internal/validators"
	"github.com/MKhiriev/go-settings/models"
)

// SettingsValidationService rejects keys and contexts the persistent stores
// cannot hold before they reach the engine.
type SettingsValidationService struct {
	inner     SettingsService
	validator validators.Validator
}

func NewSettingsValidationService() SettingsServiceWrapper {
	return &SettingsValidationService{
		validator: validators.NewSettingValidator(),
	}
}

func (v *SettingsValidationService) Wrap(inner SettingsService) SettingsService {
	v.inner = inner
	return v
}

func (v *SettingsValidationService) Get(ctx context.Context, key, scope string) (models.SettingResponse, error) {
	if err := v.validate(ctx, key, scope); err != nil {
		return models.SettingResponse{}, err
	}

	return v.inner.Get(ctx, key, scope)
}

func (v *SettingsValidationService) Set(ctx context.Context, key string, value any, scope string) error {
	if err := v.validate(ctx, key, scope); err != nil {
		return err
	}

	return v.inner.Set(ctx, key, value, scope)
}

func (v *SettingsValidationService) Forget(ctx context.Context, key, scope string) error {
	if err := v.validate(ctx, key, scope); err != nil {
		return err
	}

	return v.inner.Forget(ctx, key, scope)
}

func (v *SettingsValidationService) Flush(ctx context.Context) error {
	return v.inner.Flush(ctx)
}

func (v *SettingsValidationService) Handlers() []models.HandlerInfo {
	return v.inner.Handlers()
}

func (v *SettingsValidationService) validate(ctx context.Context, key, scope string) error {
	if err := v.validator.Validate(ctx, models.SettingTarget{Key: key, Context: scope}); err != nil {
		return fmt.Errorf("error validating setting target: %w", err)
	}
	return nil
}
