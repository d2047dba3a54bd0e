package settings

import (
	"context"

	"github.com/shopspring/decimal"
)

// Resolver looks up a tunable with tenant → global → legacy → default
// precedence. It never returns an error: malformed stored values fall
// back to the caller-supplied default, because engine recomputation
// must not fail over a bad settings row.
type Resolver interface {
	Resolve(ctx context.Context, key, companyID, def string) string
	ResolveDecimal(ctx context.Context, key, companyID string, def decimal.Decimal) decimal.Decimal
	ResolveInt(ctx context.Context, key, companyID string, def int) int
}
