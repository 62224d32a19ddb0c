// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-settings/internal/config"
	myHTTP "github.com/MKhiriev/go-settings/internal/handler/http"
	"github.com/MKhiriev/go-settings/internal/logger"
	"github.com/MKhiriev/go-settings/internal/service"
	"github.com/MKhiriev/go-settings/internal/settings"
	"github.com/MKhiriev/go-settings/models"
)

func newTestClient(t *testing.T, serverURL string) SettingsClient {
	t.Helper()

	c, err := NewHTTPSettingsClient(config.ClientAdapter{HTTPAddress: serverURL, RequestTimeout: 5 * time.Second}, logger.Nop())
	require.NoError(t, err)
	return c
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

// ── NewHTTPSettingsClient ────────────────────────────────────────────────────

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{raw: "http://localhost:8080", want: "http://localhost:8080"},
		{raw: "localhost:8080", want: "http://localhost:8080"},
		{raw: "  https://settings.example.com/ ", want: "https://settings.example.com"},
		{raw: "", wantErr: true},
		{raw: "http://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewHTTPSettingsClient_InvalidAddress(t *testing.T) {
	c, err := NewHTTPSettingsClient(config.ClientAdapter{}, logger.Nop())

	assert.ErrorContains(t, err, "invalid adapter http address")
	assert.Nil(t, c)
}

// ── Get ─────────────────────────────────────────────────────────────────────

func TestGet_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/settings/Test.limit", r.URL.Path)
		assert.Equal(t, "tenant:acme", r.URL.Query().Get("context"))

		writeJSON(t, w, http.StatusOK, models.SettingResponse{Key: "Test.limit", Context: "tenant:acme", Value: 42, Found: true})
	}))
	defer srv.Close()

	got, err := newTestClient(t, srv.URL).Get(context.Background(), "Test.limit", "tenant:acme")

	require.NoError(t, err)
	assert.Equal(t, models.SettingResponse{Key: "Test.limit", Context: "tenant:acme", Value: 42, Found: true}, got)
}

func TestGet_GlobalOmitsContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok := r.URL.Query()["context"]
		assert.False(t, ok)
		writeJSON(t, w, http.StatusOK, models.SettingResponse{Key: "Test.siteName"})
	}))
	defer srv.Close()

	got, err := newTestClient(t, srv.URL).Get(context.Background(), "Test.siteName", "")

	require.NoError(t, err)
	assert.False(t, got.Found)
}

func TestGet_ErrorResponses(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
		wantMsg string
	}{
		{name: "bad request", status: http.StatusBadRequest, body: `{"error":"invalid setting key"}`, wantErr: ErrBadRequest, wantMsg: "invalid setting key"},
		{name: "not found", status: http.StatusNotFound, body: `{"error":"Not Found"}`, wantErr: ErrNotFound},
		{name: "internal", status: http.StatusInternalServerError, body: `{"error":"error resolving setting"}`, wantErr: ErrInternalServerError},
		{name: "timeout", status: http.StatusGatewayTimeout, wantErr: ErrGatewayTimeout, wantMsg: "Gateway Timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := newTestClient(t, srv.URL).Get(context.Background(), "Test.siteName", "")

			require.ErrorIs(t, err, tt.wantErr)
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestGet_MalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"key":`))
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).Get(context.Background(), "Test.siteName", "")

	assert.ErrorContains(t, err, "decode setting response")
}

func TestGet_ServerUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := newTestClient(t, url).Get(context.Background(), "Test.siteName", "")

	assert.ErrorContains(t, err, "get setting request")
}

// ── Set / Forget / Flush ─────────────────────────────────────────────────────

func TestSet_SendsValue(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/settings/Test.mail", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]any{"value": map[string]any{"host": "smtp"}}, body)

		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	err := newTestClient(t, srv.URL).Set(context.Background(), "Test.mail", map[string]any{"host": "smtp"}, "")

	assert.NoError(t, err)
}

func TestSet_Conflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusConflict, models.ErrorResponse{Error: "no writable settings handler"})
	}))
	defer srv.Close()

	err := newTestClient(t, srv.URL).Set(context.Background(), "Test.siteName", "Foo", "")

	require.ErrorIs(t, err, ErrConflict)
	assert.Contains(t, err.Error(), "no writable settings handler")
}

func TestForget(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/settings/Test.siteName", r.URL.Path)
		assert.Equal(t, "context:male", r.URL.Query().Get("context"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	assert.NoError(t, newTestClient(t, srv.URL).Forget(context.Background(), "Test.siteName", "context:male"))
}

func TestFlush(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/settings", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	assert.NoError(t, newTestClient(t, srv.URL).Flush(context.Background()))
}

func TestFlush_UnmappedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	err := newTestClient(t, srv.URL).Flush(context.Background())

	assert.EqualError(t, err, "http 503: Service Unavailable")
}

// ── Handlers / Version ───────────────────────────────────────────────────────

func TestHandlers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/handlers", r.URL.Path)
		writeJSON(t, w, http.StatusOK, []models.HandlerInfo{
			{Name: "static"},
			{Name: "database", Writable: true},
		})
	}))
	defer srv.Close()

	got, err := newTestClient(t, srv.URL).Handlers(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []models.HandlerInfo{
		{Name: "static"},
		{Name: "database", Writable: true},
	}, got)
}

func TestVersion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/version", r.URL.Path)
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("1.2.3\n"))
	}))
	defer srv.Close()

	got, err := newTestClient(t, srv.URL).Version(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "1.2.3", got)
}

// ── round trip against the real router ───────────────────────────────────────

type staticVersion string

func (v staticVersion) GetAppVersion(context.Context) string { return string(v) }

func TestRoundTrip(t *testing.T) {
	engine := settings.New([]settings.Link{
		{Name: "array", Handler: settings.NewArrayHandler(), Writable: true},
	})
	services := &service.Services{
		AppInfoService:  staticVersion("9.9.9"),
		SettingsService: service.NewSettingsService(engine, logger.Nop()),
		AuthService:     service.NewAuthService(config.Auth{}, logger.Nop()),
	}
	srv := httptest.NewServer(myHTTP.NewHandler(services, time.Second, logger.Nop()).Init())
	defer srv.Close()

	ctx := context.Background()
	c := newTestClient(t, srv.URL)

	require.NoError(t, c.Set(ctx, "Test.siteName", "Humpty", ""))
	require.NoError(t, c.Set(ctx, "Test.siteName", "Jack", "context:male"))
	require.NoError(t, c.Set(ctx, "Test.mail", map[string]any{"host": "smtp", "port": 25}, ""))

	got, err := c.Get(ctx, "Test.siteName", "context:male")
	require.NoError(t, err)
	assert.Equal(t, "Jack", got.Value)

	got, err = c.Get(ctx, "Test.siteName", "context:female")
	require.NoError(t, err)
	assert.Equal(t, "Humpty", got.Value, "unknown context falls back to global")

	got, err = c.Get(ctx, "Test.mail", "")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"host": "smtp", "port": 25}, got.Value)

	require.NoError(t, c.Forget(ctx, "Test.siteName", "context:male"))
	got, err = c.Get(ctx, "Test.siteName", "context:male")
	require.NoError(t, err)
	assert.Equal(t, "Humpty", got.Value)

	_, err = c.Get(ctx, "siteName", "")
	assert.ErrorIs(t, err, ErrBadRequest)

	handlers, err := c.Handlers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.HandlerInfo{{Name: "array", Writable: true}}, handlers)

	version, err := c.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, "9.9.9", version)

	require.NoError(t, c.Flush(ctx))
	got, err = c.Get(ctx, "Test.mail", "")
	require.NoError(t, err)
	assert.False(t, got.Found)
}

// ── bearer token ─────────────────────────────────────────────────────────────

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name       string
		token      string
		wantHeader string
	}{
		{name: "configured token", token: "tkn", wantHeader: "Bearer tkn"},
		{name: "no token", token: "", wantHeader: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = r.Header.Get("Authorization")
				w.WriteHeader(http.StatusNoContent)
			}))
			defer srv.Close()

			c, err := NewHTTPSettingsClient(config.ClientAdapter{HTTPAddress: srv.URL, Token: tt.token}, logger.Nop())
			require.NoError(t, err)

			require.NoError(t, c.Flush(context.Background()))
			assert.Equal(t, tt.wantHeader, got)
		})
	}
}

func TestRoundTrip_TokenRequired(t *testing.T) {
	authCfg := config.Auth{TokenSignKey: "round-trip-key", TokenIssuer: "go-settings", TokenDuration: time.Minute}
	auth := service.NewAuthService(authCfg, logger.Nop())

	engine := settings.New([]settings.Link{
		{Name: "array", Handler: settings.NewArrayHandler(), Writable: true},
	})
	services := &service.Services{
		AppInfoService:  staticVersion("9.9.9"),
		SettingsService: service.NewSettingsService(engine, logger.Nop()),
		AuthService:     auth,
	}
	srv := httptest.NewServer(myHTTP.NewHandler(services, time.Second, logger.Nop()).Init())
	defer srv.Close()

	ctx := context.Background()

	anonymous := newTestClient(t, srv.URL)
	err := anonymous.Set(ctx, "Test.siteName", "Humpty", "")
	assert.ErrorIs(t, err, ErrUnauthorized)

	token, err := auth.IssueToken(ctx, "deploy-bot")
	require.NoError(t, err)
	authorized, err := NewHTTPSettingsClient(config.ClientAdapter{HTTPAddress: srv.URL, Token: token}, logger.Nop())
	require.NoError(t, err)

	require.NoError(t, authorized.Set(ctx, "Test.siteName", "Humpty", ""))

	got, err := anonymous.Get(ctx, "Test.siteName", "")
	require.NoError(t, err)
	assert.Equal(t, "Humpty", got.Value)
}
