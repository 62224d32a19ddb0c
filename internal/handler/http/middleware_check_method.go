// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-settings/internal/utils"
)

// CheckHTTPMethod is registered as the router's MethodNotAllowed handler.
//
// Chi answers 405 when a path matches a route but the method does not. The
// settings API answers 404 instead, so callers using an unsupported method
// cannot tell which paths exist.
func CheckHTTPMethod(w http.ResponseWriter, r *http.Request) {
	utils.WriteError(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
}
