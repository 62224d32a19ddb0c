package models

// SettingResponse is the body returned by GET /api/settings/{key}.
type SettingResponse struct {
	// Key is the dotted key as requested by the client.
	Key string `json:"key"`

	// Context is the requested context, empty for the global scope.
	Context string `json:"context,omitempty"`

	// Value is the resolved value. It is only meaningful when Found is true.
	Value any `json:"value"`

	// Found reports whether any handler or the default table supplied a value.
	Found bool `json:"found"`
}

// HandlerInfo describes one link of the handler chain in
// GET /api/handlers.
type HandlerInfo struct {
	Name     string `json:"name"`
	Writable bool   `json:"writable"`
}

// SetSettingRequest is the body accepted by PUT /api/settings/{key}.
type SetSettingRequest struct {
	Value any `json:"value"`
}

// ErrorResponse is returned by the HTTP API for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}
