package http

import (
	"encoding/json"
	"net/http"

	"github.com/wagewise-hq/wagewise-backend-go/internal/domain/settings"
	"github.com/wagewise-hq/wagewise-backend-go/internal/handler/http/middleware"
	"github.com/wagewise-hq/wagewise-backend-go/internal/handler/http/response"
)

type SettingsHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	Upsert(w http.ResponseWriter, r *http.Request)
}

type settingsHandlerImpl struct {
	settingsService settings.SettingsService
}

func NewSettingsHandler(settingsService settings.SettingsService) SettingsHandler {
	return &settingsHandlerImpl{settingsService: settingsService}
}

func (h *settingsHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	companyID, err := middleware.CompanyID(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	key := r.URL.Query().Get("key")
	if key == "" {
		response.BadRequest(w, "key query parameter is required", nil)
		return
	}

	value, err := h.settingsService.Get(r.Context(), companyID, key)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]string{"key": key, "value": value})
}

func (h *settingsHandlerImpl) Upsert(w http.ResponseWriter, r *http.Request) {
	companyID, err := middleware.CompanyID(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req settings.UpsertSettingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.settingsService.Upsert(r.Context(), companyID, req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Setting saved", nil)
}
