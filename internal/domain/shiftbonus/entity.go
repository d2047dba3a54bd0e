package shiftbonus

import (
	"time"

	"github.com/shopspring/decimal"
)

// Entry is the paper trail for one day's shift-overtime bonus: why
// BonusHours on the period salary changed. Unique per (employee,
// date); replaced or deleted when the day is recomputed.
type Entry struct {
	ID          string
	EmployeeID  string
	CompanyID   string
	Date        time.Time
	BonusHours  decimal.Decimal
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DayRef identifies a ledger day that has no bonus entry yet.
type DayRef struct {
	EmployeeID string
	Date       time.Time
}
