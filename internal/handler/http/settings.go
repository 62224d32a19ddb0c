package http

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-settings/internal/app"
	"github.com/MKhiriev/go-settings/internal/logger"
	"github.com/MKhiriev/go-settings/internal/utils"
	"github.com/MKhiriev/go-settings/models"
)

const (
	keyURLParam       = "key"
	contextQueryParam = "context"

	maxRequestBodySize = 1 << 20
)

func (h *Handler) getSetting(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	key, scope := settingTarget(r)

	response, err := h.services.SettingsService.Get(r.Context(), key, scope)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getSetting").Str("key", key).Str("context", scope).Msg(app.MsgErrorResolvingSetting)
		writeServiceError(w, err, app.MsgErrorResolvingSetting)
		return
	}

	if _, err = utils.WriteJSON(w, response, http.StatusOK); err != nil {
		log.Err(err).Str("func", "*Handler.getSetting").Str("key", key).Msg(app.MsgErrorWritingResponse)
	}
}

func (h *Handler) setSetting(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	key, scope := settingTarget(r)

	var request models.SetSettingRequest
	if err := utils.DecodeJSON(http.MaxBytesReader(w, r.Body, maxRequestBodySize), &request); err != nil {
		log.Err(err).Str("func", "*Handler.setSetting").Msg(app.MsgInvalidDataProvided)
		writeServiceError(w, fmt.Errorf("%w: %w", ErrInvalidRequestBody, err), "")
		return
	}

	if err := h.services.SettingsService.Set(r.Context(), key, request.Value, scope); err != nil {
		log.Err(err).Str("func", "*Handler.setSetting").Str("key", key).Str("context", scope).Msg(app.MsgErrorStoringSetting)
		writeServiceError(w, err, app.MsgErrorStoringSetting)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) forgetSetting(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	key, scope := settingTarget(r)

	if err := h.services.SettingsService.Forget(r.Context(), key, scope); err != nil {
		log.Err(err).Str("func", "*Handler.forgetSetting").Str("key", key).Str("context", scope).Msg(app.MsgErrorForgettingSetting)
		writeServiceError(w, err, app.MsgErrorForgettingSetting)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) flushSettings(w http.ResponseWriter, r *http.Request) {
	if err := h.services.SettingsService.Flush(r.Context()); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.flushSettings").Msg(app.MsgErrorFlushingSettings)
		writeServiceError(w, err, app.MsgErrorFlushingSettings)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listHandlers(w http.ResponseWriter, r *http.Request) {
	if _, err := utils.WriteJSON(w, h.services.SettingsService.Handlers(), http.StatusOK); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.listHandlers").Msg(app.MsgErrorWritingResponse)
	}
}

func settingTarget(r *http.Request) (key, scope string) {
	return chi.URLParam(r, keyURLParam), r.URL.Query().Get(contextQueryParam)
}

func writeServiceError(w http.ResponseWriter, err error, fallback string) {
	status := statusFromError(err)
	utils.WriteError(w, errorMessage(err, status, fallback), status)
}

func notFound(w http.ResponseWriter, r *http.Request) {
	utils.WriteError(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
}
