package shiftbonus

import (
	"context"
	"time"
)

// ShiftBonusService converts hours worked beyond the shift threshold
// into whole bonus hours on the period salary record.
type ShiftBonusService interface {
	// Apply performs one-shot bonus creation for a freshly recorded
	// day. No-op when the day is in the future, below threshold, or
	// already has an entry.
	Apply(ctx context.Context, employeeID string, date time.Time, companyID string) error

	// Recalculate re-derives the day's bonus after a manual attendance
	// edit and applies only the difference to the period salary, so
	// contributions from other days survive.
	Recalculate(ctx context.Context, employeeID string, date time.Time, companyID string) error

	// BackfillMonth applies the bonus rule to every ledger day in the
	// month that has no entry yet, capped at today. Returns the number
	// of days processed.
	BackfillMonth(ctx context.Context, companyID string, year int, month time.Month) (int, error)
}
