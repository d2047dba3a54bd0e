package salary

import (
	"context"

	"github.com/shopspring/decimal"
)

type PeriodSalaryRepository interface {
	// GetByEmployeePeriod retrieves the snapshot for one employee
	// month, or ErrPeriodSalaryNotFound.
	GetByEmployeePeriod(ctx context.Context, employeeID string, month, year int, companyID string) (PeriodSalary, error)

	// Create inserts a new snapshot row.
	Create(ctx context.Context, ps PeriodSalary) (PeriodSalary, error)

	// UpdateSnapshot refreshes every aggregate field except
	// BonusHours, which belongs to the bonus engines.
	UpdateSnapshot(ctx context.Context, ps PeriodSalary) error

	// AddBonusHours applies a signed delta to BonusHours in place.
	// The increment happens inside the database so concurrent
	// recomputations of different days never lose each other's
	// contribution.
	AddBonusHours(ctx context.Context, employeeID string, month, year int, companyID string, delta decimal.Decimal) error
}
