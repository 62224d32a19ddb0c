package validators

import "errors"

// ErrInvalidSettingTarget is wrapped by every rule violation below.
var ErrInvalidSettingTarget = errors.New("invalid setting target")

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrKeyTooLong       = errors.New("key is too long")
	ErrContextTooLong   = errors.New("context is too long")
	ErrControlCharacter = errors.New("control characters are not allowed")
)
