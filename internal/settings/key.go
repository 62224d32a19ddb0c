package settings

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/go-settings/models"
)

// ParseKey splits a dotted key into namespace and property.
//
// The split happens at the last dot so namespaces may themselves be dotted
// ("app.config.Mail.from" → "app.config.Mail", "from").
func ParseKey(key string) (models.SettingKey, error) {
	idx := strings.LastIndex(key, ".")
	if idx <= 0 || idx == len(key)-1 {
		return models.SettingKey{}, fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}

	namespace, property := strings.TrimSpace(key[:idx]), strings.TrimSpace(key[idx+1:])
	if namespace == "" || property == "" {
		return models.SettingKey{}, fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}

	return models.SettingKey{Namespace: namespace, Property: property}, nil
}
