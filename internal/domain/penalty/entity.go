package penalty

import (
	"time"

	"github.com/shopspring/decimal"
)

// Entry is a salary deduction for one day. Auto entries (IsManual
// false) are engine-owned: one per (employee, date), fully replaced or
// deleted on recompute. Manual entries coexist independently and are
// never touched by the engine.
type Entry struct {
	ID          string
	EmployeeID  string
	CompanyID   string
	Date        time.Time
	Month       int
	Year        int
	MinutesLate int
	Deduction   decimal.Decimal
	RateUsed    decimal.Decimal
	IsManual    bool
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
