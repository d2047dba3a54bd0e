package penalty

import (
	"context"
	"time"

	"github.com/wagewise-hq/wagewise-backend-go/internal/domain/attendance"
)

// LatePenaltyService maintains the auto-generated late-arrival
// deduction for a ledger day.
type LatePenaltyService interface {
	// Recalculate re-derives the day's deduction from the current
	// punch-in. Pass the attendance row when the caller already holds
	// it; nil makes the service load it. The auto entry vanishes the
	// moment tardiness is corrected.
	Recalculate(ctx context.Context, employeeID string, date time.Time, companyID string, day *attendance.Day) error

	// RecordManual stores an operator-entered deduction, additive to
	// and independent of the engine's auto entries.
	RecordManual(ctx context.Context, companyID string, req ManualEntryRequest) (Entry, error)
}
