package shiftbonus

import (
	"context"
	"time"
)

type EntryRepository interface {
	// GetByEmployeeAndDate returns the entry for one day, or
	// (nil, nil) when none exists.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, companyID string) (*Entry, error)

	// Create inserts a new entry.
	Create(ctx context.Context, entry Entry) (Entry, error)

	// Update rewrites bonus hours and description of an existing entry.
	Update(ctx context.Context, entry Entry) error

	// DeleteByEmployeeAndDate removes the single entry for one day.
	DeleteByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, companyID string) error

	// ListLedgerDaysWithoutEntry returns (employee, date) pairs in
	// [from, to] that exist in the attendance ledger but have no bonus
	// entry. Drives retroactive backfill.
	ListLedgerDaysWithoutEntry(ctx context.Context, companyID string, from, to time.Time) ([]DayRef, error)
}
