package salary

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/wagewise-hq/wagewise-backend-go/internal/domain/employee"
)

// PeriodSalary is the one-per-(employee, month, year) payroll
// snapshot. BonusHours is shared mutable state: the snapshot engine
// seeds it, the shift bonus engine adjusts it by delta, and manual
// grants add to it. Nothing overwrites it blindly.
type PeriodSalary struct {
	ID                string
	EmployeeID        string
	CompanyID         string
	Month             int
	Year              int
	SalaryType        employee.SalaryType
	BaseSalary        decimal.Decimal
	TotalWorkingHours decimal.Decimal
	OvertimeHours     decimal.Decimal
	DaysPresent       int
	BonusHours        decimal.Decimal
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
