package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/wagewise-hq/wagewise-backend-go/internal/domain/advance"
	"github.com/wagewise-hq/wagewise-backend-go/internal/domain/penalty"
	"github.com/wagewise-hq/wagewise-backend-go/internal/domain/salary"
	"github.com/wagewise-hq/wagewise-backend-go/internal/domain/shiftbonus"
	"github.com/wagewise-hq/wagewise-backend-go/internal/handler/http/middleware"
	"github.com/wagewise-hq/wagewise-backend-go/internal/handler/http/response"
)

type PayrollHandler interface {
	EnsureMonthlySalary(w http.ResponseWriter, r *http.Request)
	BackfillBonuses(w http.ResponseWriter, r *http.Request)
	CreateManualPenalty(w http.ResponseWriter, r *http.Request)
	CreateAdvance(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	salaryService  salary.SalarySnapshotService
	bonusService   shiftbonus.ShiftBonusService
	penaltyService penalty.LatePenaltyService
	advanceService advance.AdvanceService
}

func NewPayrollHandler(
	salaryService salary.SalarySnapshotService,
	bonusService shiftbonus.ShiftBonusService,
	penaltyService penalty.LatePenaltyService,
	advanceService advance.AdvanceService,
) PayrollHandler {
	return &payrollHandlerImpl{
		salaryService:  salaryService,
		bonusService:   bonusService,
		penaltyService: penaltyService,
		advanceService: advanceService,
	}
}

func (h *payrollHandlerImpl) EnsureMonthlySalary(w http.ResponseWriter, r *http.Request) {
	companyID, err := middleware.CompanyID(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	year, month, err := yearMonthFromQuery(r)
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	if err := h.salaryService.EnsureMonthlySalary(r.Context(), companyID, year, month); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Monthly salaries reconciled", nil)
}

func (h *payrollHandlerImpl) BackfillBonuses(w http.ResponseWriter, r *http.Request) {
	companyID, err := middleware.CompanyID(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	year, month, err := yearMonthFromQuery(r)
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	processed, err := h.bonusService.BackfillMonth(r.Context(), companyID, year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Bonus backfill finished", map[string]int{"processed": processed})
}

func (h *payrollHandlerImpl) CreateManualPenalty(w http.ResponseWriter, r *http.Request) {
	companyID, err := middleware.CompanyID(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req penalty.ManualEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	entry, err := h.penaltyService.RecordManual(r.Context(), companyID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Penalty recorded", entry)
}

func (h *payrollHandlerImpl) CreateAdvance(w http.ResponseWriter, r *http.Request) {
	companyID, err := middleware.CompanyID(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req advance.CreateAdvanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	entry, err := h.advanceService.Record(r.Context(), companyID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Advance recorded", entry)
}

func yearMonthFromQuery(r *http.Request) (int, time.Month, error) {
	now := time.Now().UTC()
	year, month := now.Year(), now.Month()

	q := r.URL.Query()
	if yearStr := q.Get("year"); yearStr != "" {
		y, err := strconv.Atoi(yearStr)
		if err != nil {
			return 0, 0, errBadDateParam
		}
		year = y
	}
	if monthStr := q.Get("month"); monthStr != "" {
		m, err := strconv.Atoi(monthStr)
		if err != nil || m < 1 || m > 12 {
			return 0, 0, errBadDateParam
		}
		month = time.Month(m)
	}

	return year, month, nil
}
