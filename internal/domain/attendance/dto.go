package attendance

import (
	"github.com/wagewise-hq/wagewise-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

// AdjustRequest is a manual correction of one ledger day. Punch times
// use "15:04" on the row's date; a nil punch field clears the punch.
// Status is normally derived from punch-in presence; setting Status
// forces it instead.
type AdjustRequest struct {
	EmployeeID    string  `json:"employee_id"`
	Date          string  `json:"date"`
	PunchIn       *string `json:"punch_in"`
	PunchOut      *string `json:"punch_out"`
	BreakHours    *string `json:"break_hours"`
	OvertimeHours *string `json:"overtime_hours"`
	Status        *string `json:"status"`
	SpansMidnight *bool   `json:"spans_midnight"`
}

func (r *AdjustRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if !validator.IsValidDate(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if r.PunchIn != nil && !validator.IsValidClockTime(*r.PunchIn) {
		errs = append(errs, validator.ValidationError{
			Field:   "punch_in",
			Message: "punch_in must be in HH:MM format",
		})
	}

	if r.PunchOut != nil && !validator.IsValidClockTime(*r.PunchOut) {
		errs = append(errs, validator.ValidationError{
			Field:   "punch_out",
			Message: "punch_out must be in HH:MM format",
		})
	}

	if r.Status != nil {
		switch Status(*r.Status) {
		case StatusPresent, StatusAbsent, StatusHalfDay, StatusFullDay:
		default:
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of Present, Absent, HalfDay, FullDay",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type DayResponse struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employee_id"`
	Date          string  `json:"date"`
	PunchIn       *string `json:"punch_in"`
	PunchOut      *string `json:"punch_out"`
	WorkedHours   string  `json:"worked_hours"`
	BreakHours    string  `json:"break_hours"`
	OvertimeHours string  `json:"overtime_hours"`
	Status        string  `json:"status"`
	SpansMidnight bool    `json:"spans_midnight"`
}
