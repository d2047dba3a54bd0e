package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status of a ledger day. Present/Absent are derived from punch-in
// presence; HalfDay/FullDay are only ever set explicitly.
type Status string

const (
	StatusPresent Status = "Present"
	StatusAbsent  Status = "Absent"
	StatusHalfDay Status = "HalfDay"
	StatusFullDay Status = "FullDay"
)

// Day is one attendance ledger row, exactly one per (employee, date).
type Day struct {
	ID            string
	EmployeeID    string
	CompanyID     string
	Date          time.Time
	PunchIn       *time.Time
	PunchOut      *time.Time
	WorkedHours   decimal.Decimal
	BreakHours    decimal.Decimal
	OvertimeHours decimal.Decimal
	Status        Status
	ShiftStart    *time.Time
	ShiftEnd      *time.Time
	SpansMidnight bool
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// DTO
	EmployeeName *string
}

// DeriveStatus computes the status implied by punch-in presence.
func DeriveStatus(punchIn *time.Time) Status {
	if punchIn != nil {
		return StatusPresent
	}
	return StatusAbsent
}

// MonthlyTotals is a per-employee aggregate of the ledger over one
// calendar month, the input to the salary snapshot engine.
type MonthlyTotals struct {
	EmployeeID        string
	TotalWorkingHours decimal.Decimal
	OvertimeHours     decimal.Decimal
	DaysPresent       int
}
