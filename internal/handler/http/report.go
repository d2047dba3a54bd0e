package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/wagewise-hq/wagewise-backend-go/internal/domain/report"
	"github.com/wagewise-hq/wagewise-backend-go/internal/handler/http/middleware"
	"github.com/wagewise-hq/wagewise-backend-go/internal/handler/http/response"
)

var errBadDateParam = errors.New("date parameters must be valid YYYY-MM-DD values")

type ReportHandler interface {
	GetPayrollReport(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.PayrollReportService
}

func NewReportHandler(reportService report.PayrollReportService) ReportHandler {
	return &reportHandlerImpl{reportService: reportService}
}

// GetPayrollReport supports three scopes: ?date= for one day,
// ?from=&to= for a range, ?year=&month= for a whole month. Month is
// the default, anchored at the current month.
func (h *reportHandlerImpl) GetPayrollReport(w http.ResponseWriter, r *http.Request) {
	companyID, err := middleware.CompanyID(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	sel, err := selectorFromQuery(r)
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	result, err := h.reportService.BuildPayrollReport(r.Context(), companyID, sel)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func selectorFromQuery(r *http.Request) (report.DateSelector, error) {
	q := r.URL.Query()

	if dateStr := q.Get("date"); dateStr != "" {
		day, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return report.DateSelector{}, errBadDateParam
		}
		return report.SelectorForDay(day), nil
	}

	if fromStr, toStr := q.Get("from"), q.Get("to"); fromStr != "" || toStr != "" {
		from, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			return report.DateSelector{}, errBadDateParam
		}
		to, err := time.Parse("2006-01-02", toStr)
		if err != nil {
			return report.DateSelector{}, errBadDateParam
		}
		if to.Before(from) {
			return report.DateSelector{}, errBadDateParam
		}
		return report.SelectorForRange(from, to), nil
	}

	now := time.Now().UTC()
	year, month := now.Year(), now.Month()

	if yearStr := q.Get("year"); yearStr != "" {
		y, err := strconv.Atoi(yearStr)
		if err != nil {
			return report.DateSelector{}, errBadDateParam
		}
		year = y
	}
	if monthStr := q.Get("month"); monthStr != "" {
		m, err := strconv.Atoi(monthStr)
		if err != nil || m < 1 || m > 12 {
			return report.DateSelector{}, errBadDateParam
		}
		month = time.Month(m)
	}

	return report.SelectorForMonth(year, month), nil
}
