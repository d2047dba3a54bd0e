package penalty

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type EntryRepository interface {
	// GetAutoByEmployeeAndDate returns the engine-generated entry for
	// one day, or (nil, nil) when none exists.
	GetAutoByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, companyID string) (*Entry, error)

	// UpsertAuto writes the single auto entry for (employee, date).
	UpsertAuto(ctx context.Context, entry Entry) (Entry, error)

	// DeleteAutoByEmployeeAndDate removes the auto entry for one day.
	// Manual entries for the same day are left alone.
	DeleteAutoByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, companyID string) error

	// SumMonthExcludingAuto totals every deduction (manual included)
	// for the employee's calendar month, excluding the auto entry on
	// excludeDate so re-entry does not double count.
	SumMonthExcludingAuto(ctx context.Context, employeeID string, month, year int, excludeDate time.Time, companyID string) (decimal.Decimal, error)

	// CreateManual inserts an operator-entered deduction.
	CreateManual(ctx context.Context, entry Entry) (Entry, error)

	// TotalsForRange sums deductions per employee over [from, to].
	TotalsForRange(ctx context.Context, companyID string, from, to time.Time) (map[string]decimal.Decimal, error)
}
