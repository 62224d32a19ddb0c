package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/MKhiriev/go-settings/internal/codec"
	"github.com/MKhiriev/go-settings/internal/settings"
	"github.com/MKhiriev/go-settings/internal/validators"
)

// errorStatuses is checked in order: a storage error caused by a deadline
// reports the deadline.
var errorStatuses = []struct {
	err    error
	status int
}{
	{ErrInvalidRequestBody, http.StatusBadRequest},
	{settings.ErrInvalidKey, http.StatusBadRequest},
	{validators.ErrInvalidSettingTarget, http.StatusBadRequest},
	{codec.ErrUnsupportedValue, http.StatusUnprocessableEntity},
	{settings.ErrNotSupported, http.StatusConflict},
	{settings.ErrNoWritableHandler, http.StatusConflict},
	{context.DeadlineExceeded, http.StatusGatewayTimeout},
	{codec.ErrCorruptValue, http.StatusInternalServerError},
	{settings.ErrStorage, http.StatusInternalServerError},
}

func statusFromError(err error) int {
	for _, e := range errorStatuses {
		if errors.Is(err, e.err) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}

// errorMessage hides server-side details behind fallback.
func errorMessage(err error, status int, fallback string) string {
	if status < http.StatusInternalServerError {
		return err.Error()
	}
	return fallback
}
