package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/wagewise-hq/wagewise-backend-go/internal/domain/attendance"
	"github.com/wagewise-hq/wagewise-backend-go/internal/handler/http/middleware"
	"github.com/wagewise-hq/wagewise-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	Adjust(w http.ResponseWriter, r *http.Request)
	MarkAbsentees(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{attendanceService: attendanceService}
}

func (h *attendanceHandlerImpl) Adjust(w http.ResponseWriter, r *http.Request) {
	companyID, err := middleware.CompanyID(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req attendance.AdjustRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.attendanceService.Adjust(r.Context(), companyID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *attendanceHandlerImpl) MarkAbsentees(w http.ResponseWriter, r *http.Request) {
	companyID, err := middleware.CompanyID(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	dateStr := r.URL.Query().Get("date")
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		response.BadRequest(w, "date query parameter must be YYYY-MM-DD", nil)
		return
	}

	marked, err := h.attendanceService.MarkAbsentees(r.Context(), companyID, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Absentees marked", map[string]int{"marked": marked})
}
