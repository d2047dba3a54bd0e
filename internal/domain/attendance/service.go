package attendance

import (
	"context"
	"time"
)

// AttendanceService owns mutation of the ledger. Every mutation
// synchronously re-derives the affected day's shift bonus and late
// penalty before returning.
type AttendanceService interface {
	// Adjust applies a manual correction to one ledger day and
	// triggers recomputation of the day's derived compensation.
	Adjust(ctx context.Context, companyID string, req AdjustRequest) (DayResponse, error)

	// MarkAbsentees inserts Absent rows for every employed worker
	// without a ledger row on the given date. Safe to call repeatedly.
	MarkAbsentees(ctx context.Context, companyID string, date time.Time) (int, error)
}
