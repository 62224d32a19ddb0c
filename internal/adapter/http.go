package adapter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-settings/internal/config"
	"github.com/MKhiriev/go-settings/internal/logger"
	"github.com/MKhiriev/go-settings/internal/utils"
	"github.com/MKhiriev/go-settings/models"
)

const (
	settingPath  = "/api/settings/{key}"
	settingsPath = "/api/settings"
	handlersPath = "/api/handlers"
	versionPath  = "/api/version"
)

type httpSettingsClient struct {
	client *utils.HTTPClient

	logger *logger.Logger
}

// NewHTTPSettingsClient constructs an HTTP/REST implementation of
// [SettingsClient]. It normalises and validates the base URL from
// cfg.HTTPAddress; a bare "host:port" gets the http scheme.
//
// Returns an error if cfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
//
// A non-empty cfg.Token is sent as a bearer token on every request.
func NewHTTPSettingsClient(cfg config.ClientAdapter, logger *logger.Logger) (SettingsClient, error) {
	baseURL, err := normalizeBaseURL(cfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client := utils.NewHTTPClient(baseURL, cfg.RequestTimeout)
	if cfg.Token != "" {
		client.SetAuthToken(cfg.Token)
	}

	return &httpSettingsClient{
		client: client,
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errors.New("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", errors.New("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// Get implements [SettingsClient]. GET /api/settings/{key}?context=...
func (h *httpSettingsClient) Get(ctx context.Context, key, scope string) (models.SettingResponse, error) {
	resp, err := h.settingRequest(ctx, key, scope).Get(settingPath)
	if err != nil {
		return models.SettingResponse{}, fmt.Errorf("get setting request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.SettingResponse{}, err
	}

	var setting models.SettingResponse
	if err = utils.DecodeJSON(bytes.NewReader(resp.Body()), &setting); err != nil {
		h.logger.Err(err).Str("func", "*httpSettingsClient.Get").Str("key", key).Msg("error decoding response")
		return models.SettingResponse{}, fmt.Errorf("decode setting response: %w", err)
	}

	return setting, nil
}

// Set implements [SettingsClient]. PUT /api/settings/{key}?context=...
func (h *httpSettingsClient) Set(ctx context.Context, key string, value any, scope string) error {
	resp, err := h.settingRequest(ctx, key, scope).
		SetHeader("Content-Type", "application/json").
		SetBody(models.SetSettingRequest{Value: value}).
		Put(settingPath)
	if err != nil {
		return fmt.Errorf("set setting request: %w", err)
	}

	return mapHTTPError(resp)
}

// Forget implements [SettingsClient]. DELETE /api/settings/{key}?context=...
func (h *httpSettingsClient) Forget(ctx context.Context, key, scope string) error {
	resp, err := h.settingRequest(ctx, key, scope).Delete(settingPath)
	if err != nil {
		return fmt.Errorf("forget setting request: %w", err)
	}

	return mapHTTPError(resp)
}

// Flush implements [SettingsClient]. DELETE /api/settings
func (h *httpSettingsClient) Flush(ctx context.Context) error {
	resp, err := h.client.R().SetContext(ctx).Delete(settingsPath)
	if err != nil {
		return fmt.Errorf("flush settings request: %w", err)
	}

	return mapHTTPError(resp)
}

// Handlers implements [SettingsClient]. GET /api/handlers
func (h *httpSettingsClient) Handlers(ctx context.Context) ([]models.HandlerInfo, error) {
	var handlers []models.HandlerInfo

	resp, err := h.client.R().
		SetContext(ctx).
		SetResult(&handlers).
		Get(handlersPath)
	if err != nil {
		return nil, fmt.Errorf("list handlers request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return handlers, nil
}

// Version implements [SettingsClient]. GET /api/version
func (h *httpSettingsClient) Version(ctx context.Context) (string, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Accept", "text/plain").
		Get(versionPath)
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return strings.TrimSpace(resp.String()), nil
}

func (h *httpSettingsClient) settingRequest(ctx context.Context, key, scope string) *resty.Request {
	req := h.client.R().
		SetContext(ctx).
		SetPathParam("key", key)
	if scope != "" {
		req.SetQueryParam("context", scope)
	}
	return req
}
