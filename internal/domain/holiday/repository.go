package holiday

import (
	"context"
	"time"
)

// HolidayRepository is read-only to the engines.
type HolidayRepository interface {
	// ListDatesInRange returns holiday dates within [from, to].
	ListDatesInRange(ctx context.Context, companyID string, from, to time.Time) ([]time.Time, error)
}
