package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-settings/models"
)

func TestWriteJSON_Success(t *testing.T) {
	w := httptest.NewRecorder()
	data := map[string]string{"key": "value"}

	n, err := WriteJSON(w, data, http.StatusOK)

	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if n == 0 {
		t.Error("expected non-zero bytes written")
	}
	if w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected Content-Type 'application/json', got '%s'", ct)
	}

	expected, _ := json.Marshal(data)
	if w.Body.String() != string(expected) {
		t.Errorf("expected body %s, got %s", expected, w.Body.String())
	}
}

func TestWriteJSON_InvalidData(t *testing.T) {
	w := httptest.NewRecorder()

	// channels cannot be marshaled to JSON
	_, err := WriteJSON(w, make(chan int), http.StatusOK)

	if err == nil {
		t.Fatal("expected error for non-serializable data, got nil")
	}
	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
	}
}

func TestWriteJSON_NilData(t *testing.T) {
	w := httptest.NewRecorder()

	_, err := WriteJSON(w, nil, http.StatusOK)

	if err != nil {
		t.Fatalf("expected no error for nil data, got: %v", err)
	}
	if w.Body.String() != "null" {
		t.Errorf("expected body 'null', got '%s'", w.Body.String())
	}
}

func TestWriteError(t *testing.T) {
	w := httptest.NewRecorder()

	WriteError(w, "boom", http.StatusConflict)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"error":"boom"}`, w.Body.String())
}

func TestDecodeJSON_Numbers(t *testing.T) {
	tests := []struct {
		name string
		body string
		want any
	}{
		{name: "integer", body: `{"value": 42}`, want: 42},
		{name: "negative integer", body: `{"value": -7}`, want: -7},
		{name: "float", body: `{"value": 0.5}`, want: 0.5},
		{name: "integral float stays float", body: `{"value": 2.0}`, want: 2.0},
		{name: "exponent", body: `{"value": 1e3}`, want: 1000.0},
		{name: "string", body: `{"value": "42"}`, want: "42"},
		{name: "bool", body: `{"value": true}`, want: true},
		{name: "null", body: `{"value": null}`, want: nil},
		{
			name: "nested",
			body: `{"value": {"limit": 10, "ratio": 1.5, "tags": [1, "a"]}}`,
			want: map[string]any{"limit": 10, "ratio": 1.5, "tags": []any{1, "a"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req models.SetSettingRequest
			require.NoError(t, DecodeJSON(strings.NewReader(tt.body), &req))
			assert.Equal(t, tt.want, req.Value)
		})
	}
}

func TestDecodeJSON_Response(t *testing.T) {
	var resp models.SettingResponse
	require.NoError(t, DecodeJSON(strings.NewReader(`{"key":"Test.limit","value":5,"found":true}`), &resp))

	assert.Equal(t, 5, resp.Value)
	assert.True(t, resp.Found)
}

func TestDecodeJSON_Errors(t *testing.T) {
	var req models.SetSettingRequest

	assert.Error(t, DecodeJSON(strings.NewReader(`{"value":`), &req))
	assert.Error(t, DecodeJSON(strings.NewReader(`{"value":1} {"value":2}`), &req))
}
