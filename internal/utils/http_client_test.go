package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNewHTTPClient_NotNil(t *testing.T) {
	client := NewHTTPClient("http://localhost", time.Second)

	if client == nil {
		t.Fatal("expected non-nil *HTTPClient, got nil")
	}

	if client.Client == nil {
		t.Fatal("expected embedded *resty.Client to be non-nil, got nil")
	}
}

func TestNewHTTPClient_Independence(t *testing.T) {
	client1 := NewHTTPClient("http://localhost", 0)
	client2 := NewHTTPClient("http://localhost", 0)

	if client1.Client == client2.Client {
		t.Fatal("expected NewHTTPClient to return HTTPClients with different *resty.Client instances")
	}
}

func TestNewHTTPClient_Settings(t *testing.T) {
	client := NewHTTPClient("http://example.com", 3*time.Second)

	if client.BaseURL != "http://example.com" {
		t.Errorf("expected base URL 'http://example.com', got '%s'", client.BaseURL)
	}
	if client.GetClient().Timeout != 3*time.Second {
		t.Errorf("expected timeout 3s, got %s", client.GetClient().Timeout)
	}
}

func TestNewHTTPClient_UsesBaseURL(t *testing.T) {
	var gotPath, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAccept = r.Header.Get("Accept")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	resp, err := NewHTTPClient(srv.URL, time.Second).R().Get("/api/version")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode() != http.StatusNoContent {
		t.Errorf("expected status 204, got %d", resp.StatusCode())
	}
	if gotPath != "/api/version" {
		t.Errorf("expected path '/api/version', got '%s'", gotPath)
	}
	if gotAccept != "application/json" {
		t.Errorf("expected Accept 'application/json', got '%s'", gotAccept)
	}
}
