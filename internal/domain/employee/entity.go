package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID               string
	CompanyID        string
	FullName         string
	Department       string
	SalaryType       SalaryType
	BaseSalary       decimal.Decimal
	ShiftStart       *time.Time
	ShiftEnd         *time.Time
	EmploymentStatus string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Employed reports whether the employee is currently on the payroll.
func (e Employee) Employed() bool {
	return e.EmploymentStatus == "employed"
}
