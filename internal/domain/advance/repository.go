package advance

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type EntryRepository interface {
	// Create records a paid-out advance.
	Create(ctx context.Context, entry Entry) (Entry, error)

	// TotalsForRange sums advances per employee over [from, to].
	TotalsForRange(ctx context.Context, companyID string, from, to time.Time) (map[string]decimal.Decimal, error)
}
