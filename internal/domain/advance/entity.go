package advance

import (
	"time"

	"github.com/shopspring/decimal"
)

// Entry is a salary advance paid out ahead of the payroll run. The
// payroll report subtracts the period's advances from the row total.
type Entry struct {
	ID         string
	EmployeeID string
	CompanyID  string
	Date       time.Time
	Amount     decimal.Decimal
	Note       string
	CreatedAt  time.Time
}
