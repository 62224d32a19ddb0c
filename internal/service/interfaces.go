package service

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock -exclude_interfaces=SettingsServiceWrapper

import (
	"context"

	"github.com/MKhiriev/go-settings/models"
)

// SettingsService is the goroutine-safe facade over the settings engine used
// by the transport layer. scope is the context name; "" means global.
type SettingsService interface {
	Get(ctx context.Context, key, scope string) (models.SettingResponse, error)
	Set(ctx context.Context, key string, value any, scope string) error
	Forget(ctx context.Context, key, scope string) error
	Flush(ctx context.Context) error

	// Handlers describes the configured chain in read order.
	Handlers() []models.HandlerInfo
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

// AuthService issues and verifies the bearer tokens that guard Set, Forget
// and Flush over HTTP.
type AuthService interface {
	// Enabled reports whether a sign key is configured. Without one the
	// mutating routes are open.
	Enabled() bool

	// IssueToken signs a token for subject.
	IssueToken(ctx context.Context, subject string) (string, error)

	// ParseToken verifies token and returns its subject. Expired tokens
	// yield [ErrTokenIsExpired], anything else unacceptable
	// [ErrInvalidToken].
	ParseToken(ctx context.Context, token string) (string, error)
}

// SettingsServiceWrapper defines middleware composition for SettingsService.
// Implementations wrap an existing SettingsService to add behavior such as
// logging.
type SettingsServiceWrapper interface {
	Wrap(SettingsService) SettingsService // returns a decorated SettingsService applying additional behavior
}
