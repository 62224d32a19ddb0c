package validators

import (
	"context"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/MKhiriev/go-settings/models"
)

// Field name constants accepted by [SettingValidator.Validate].
const (
	FieldKey     = "key"
	FieldContext = "context"
)

// Column widths of the settings table.
const (
	MaxNamespaceLength = 255
	MaxPropertyLength  = 255
	MaxContextLength   = 255
)

// SettingValidator checks a [models.SettingTarget] against the limits of the
// persistent stores. Key syntax itself (namespace.property) is checked by
// the engine.
type SettingValidator struct {
}

func NewSettingValidator() Validator {
	return &SettingValidator{}
}

func (v *SettingValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.SettingTarget:
		return v.validateTarget(value, fields...)
	case *models.SettingTarget:
		return v.validateTarget(*value, fields...)
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedType, obj)
	}
}

func (v *SettingValidator) validateTarget(target models.SettingTarget, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldKey, FieldContext}
	}

	for _, field := range fields {
		var err error
		switch field {
		case FieldKey:
			err = validateKey(target.Key)
		case FieldContext:
			err = validateContext(target.Context)
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidSettingTarget, field, err)
		}
	}

	return nil
}

func validateKey(key string) error {
	if hasControlCharacter(key) {
		return ErrControlCharacter
	}

	idx := strings.LastIndex(key, ".")
	if idx < 0 {
		// malformed keys are reported by the engine
		return nil
	}

	if utf8.RuneCountInString(key[:idx]) > MaxNamespaceLength || utf8.RuneCountInString(key[idx+1:]) > MaxPropertyLength {
		return ErrKeyTooLong
	}
	return nil
}

func validateContext(name string) error {
	if hasControlCharacter(name) {
		return ErrControlCharacter
	}
	if utf8.RuneCountInString(name) > MaxContextLength {
		return ErrContextTooLong
	}
	return nil
}

func hasControlCharacter(s string) bool {
	return strings.IndexFunc(s, unicode.IsControl) >= 0
}
