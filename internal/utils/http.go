package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/MKhiriev/go-settings/internal/codec"
	"github.com/MKhiriev/go-settings/models"
)

// WriteJSON serializes data to JSON and writes it with statusCode.
//
// If marshaling fails, it responds with 500 Internal Server Error
// and returns a wrapped error.
//
// Example usage:
//
//	WriteJSON(w, models.SettingResponse{Key: "Site.siteName"}, http.StatusOK)
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "error writing data to JSON", http.StatusInternalServerError)
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return w.Write(jsonData)
}

// WriteError writes a [models.ErrorResponse] with the given message.
func WriteError(w http.ResponseWriter, message string, statusCode int) {
	_, _ = WriteJSON(w, models.ErrorResponse{Error: message}, statusCode)
}

// DecodeJSON decodes a single JSON document from r into dst. Numbers inside
// untyped values (any, map[string]any, []any) are restored as int when they
// are integral and as float64 otherwise.
func DecodeJSON(r io.Reader, dst any) error {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	if err := dec.Decode(dst); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("unexpected data after JSON document")
	}

	normalizeNumbers(dst)
	return nil
}

func normalizeNumbers(dst any) {
	switch v := dst.(type) {
	case *any:
		*v = codec.NormalizeNumbers(*v)
	case *models.SetSettingRequest:
		v.Value = codec.NormalizeNumbers(v.Value)
	case *map[string]any:
		for k, item := range *v {
			(*v)[k] = codec.NormalizeNumbers(item)
		}
	case *[]any:
		for i, item := range *v {
			(*v)[i] = codec.NormalizeNumbers(item)
		}
	case *models.SettingResponse:
		v.Value = codec.NormalizeNumbers(v.Value)
	}
}
