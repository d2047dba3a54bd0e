package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access for the attendance ledger.
// All methods carry companyID to prevent cross-company data access.
type AttendanceRepository interface {
	// GetByEmployeeAndDate returns the ledger row for one day, or
	// (nil, nil) when no row exists.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, companyID string) (*Day, error)

	// Upsert writes the single row for (employee, date), inserting or
	// replacing as needed.
	Upsert(ctx context.Context, day Day) (Day, error)

	// ListByEmployeeAndRange returns ledger rows for one employee over
	// [from, to], ordered by date ascending.
	ListByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time, companyID string) ([]Day, error)

	// ListByCompanyAndRange returns all ledger rows in [from, to] for
	// a company, ordered by employee then date.
	ListByCompanyAndRange(ctx context.Context, companyID string, from, to time.Time) ([]Day, error)

	// MonthlyTotals aggregates worked hours, overtime hours and
	// Present-day counts per employee for one calendar month.
	MonthlyTotals(ctx context.Context, companyID string, year int, month time.Month) ([]MonthlyTotals, error)

	// BulkCreateAbsences inserts Absent rows; rows whose (employee,
	// date) already exists are skipped, never overwritten.
	BulkCreateAbsences(ctx context.Context, days []Day) error
}
