// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-settings/models"
)

var statusErrors = map[int]error{
	http.StatusBadRequest:          ErrBadRequest,
	http.StatusUnauthorized:        ErrUnauthorized,
	http.StatusNotFound:            ErrNotFound,
	http.StatusConflict:            ErrConflict,
	http.StatusUnprocessableEntity: ErrUnprocessable,
	http.StatusInternalServerError: ErrInternalServerError,
	http.StatusGatewayTimeout:      ErrGatewayTimeout,
}

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	message := errorBody(resp.Body())
	if message == "" {
		message = http.StatusText(resp.StatusCode())
	}

	if err, ok := statusErrors[resp.StatusCode()]; ok {
		return fmt.Errorf("%w: %s", err, message)
	}
	return fmt.Errorf("http %d: %s", resp.StatusCode(), message)
}

// errorBody returns the message of a JSON error response, or the raw body.
func errorBody(body []byte) string {
	var errResp models.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return errResp.Error
	}
	return strings.TrimSpace(string(body))
}
