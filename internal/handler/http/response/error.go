package response

import (
	"errors"
	"net/http"

	"github.com/wagewise-hq/wagewise-backend-go/internal/domain/attendance"
	"github.com/wagewise-hq/wagewise-backend-go/internal/domain/employee"
	"github.com/wagewise-hq/wagewise-backend-go/internal/domain/penalty"
	"github.com/wagewise-hq/wagewise-backend-go/internal/domain/performance"
	"github.com/wagewise-hq/wagewise-backend-go/internal/domain/salary"
	"github.com/wagewise-hq/wagewise-backend-go/internal/domain/settings"
	"github.com/wagewise-hq/wagewise-backend-go/internal/domain/shiftbonus"
	"github.com/wagewise-hq/wagewise-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrInvalidPunchOrder):
		BadRequest(w, "Punch-out must be after punch-in", nil)

	// Compensation domain errors
	case errors.Is(err, salary.ErrPeriodSalaryNotFound):
		NotFound(w, "Period salary record not found")
	case errors.Is(err, shiftbonus.ErrEntryNotFound):
		NotFound(w, "Shift bonus entry not found")
	case errors.Is(err, penalty.ErrPenaltyNotFound):
		NotFound(w, "Penalty entry not found")
	case errors.Is(err, performance.ErrEventNotFound):
		NotFound(w, "Performance event not found")
	case errors.Is(err, settings.ErrSettingNotFound):
		NotFound(w, "Setting not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
