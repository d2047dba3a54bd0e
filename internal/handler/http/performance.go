package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/wagewise-hq/wagewise-backend-go/internal/domain/performance"
	"github.com/wagewise-hq/wagewise-backend-go/internal/handler/http/middleware"
	"github.com/wagewise-hq/wagewise-backend-go/internal/handler/http/response"
)

type PerformanceHandler interface {
	RunScan(w http.ResponseWriter, r *http.Request)
	ListEvents(w http.ResponseWriter, r *http.Request)
	UpdateAdminStatus(w http.ResponseWriter, r *http.Request)
}

type performanceHandlerImpl struct {
	rewardFlagService performance.RewardFlagService
}

func NewPerformanceHandler(rewardFlagService performance.RewardFlagService) PerformanceHandler {
	return &performanceHandlerImpl{rewardFlagService: rewardFlagService}
}

func (h *performanceHandlerImpl) RunScan(w http.ResponseWriter, r *http.Request) {
	companyID, err := middleware.CompanyID(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	target := time.Now().UTC()
	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		target, err = time.Parse("2006-01-02", dateStr)
		if err != nil {
			response.BadRequest(w, "date query parameter must be YYYY-MM-DD", nil)
			return
		}
	}

	result, err := h.rewardFlagService.Run(r.Context(), companyID, target)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *performanceHandlerImpl) ListEvents(w http.ResponseWriter, r *http.Request) {
	companyID, err := middleware.CompanyID(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err = strconv.Atoi(limitStr)
		if err != nil {
			response.BadRequest(w, "limit query parameter must be an integer", nil)
			return
		}
	}

	events, err := h.rewardFlagService.ListRecent(r.Context(), companyID, limit)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, events)
}

func (h *performanceHandlerImpl) UpdateAdminStatus(w http.ResponseWriter, r *http.Request) {
	companyID, err := middleware.CompanyID(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req struct {
		AdminStatus string `json:"admin_status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.rewardFlagService.SetAdminStatus(r.Context(), id, performance.AdminStatus(req.AdminStatus), companyID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Admin status updated", nil)
}
