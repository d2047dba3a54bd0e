package settings

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/wagewise-hq/wagewise-backend-go/internal/domain/settings"
)

// layer is one step of the precedence chain. ok=false means "not my
// answer, ask the next layer".
type layer struct {
	name   string
	lookup func(ctx context.Context, key, companyID string) (string, bool)
}

type LayeredResolver struct {
	layers []layer
}

// logMiss downgrades infrastructure failures to "no value here" so a
// settings outage can never fail a recomputation.
func logMiss(err error) {
	if !errors.Is(err, settings.ErrSettingNotFound) {
		slog.Warn("settings lookup failed, treating as unset", "error", err)
	}
}

// NewResolver builds the precedence chain: tenant override → global
// override → legacy single-tenant table. The caller-supplied default
// is the implicit final layer. Keeping the chain as an ordered slice
// makes the precedence testable on its own.
func NewResolver(repo settings.SettingsRepository) *LayeredResolver {
	return &LayeredResolver{
		layers: []layer{
			{
				name: "tenant",
				lookup: func(ctx context.Context, key, companyID string) (string, bool) {
					if companyID == "" {
						return "", false
					}
					v, err := repo.GetOverride(ctx, key, &companyID)
					if err != nil {
						logMiss(err)
						return "", false
					}
					return v, true
				},
			},
			{
				name: "global",
				lookup: func(ctx context.Context, key, _ string) (string, bool) {
					v, err := repo.GetOverride(ctx, key, nil)
					if err != nil {
						logMiss(err)
						return "", false
					}
					return v, true
				},
			},
			{
				name: "legacy",
				lookup: func(ctx context.Context, key, _ string) (string, bool) {
					v, err := repo.GetLegacy(ctx, key)
					if err != nil {
						logMiss(err)
						return "", false
					}
					return v, true
				},
			},
		},
	}
}

// Resolve implements settings.Resolver.
func (r *LayeredResolver) Resolve(ctx context.Context, key, companyID, def string) string {
	for _, l := range r.layers {
		if v, ok := l.lookup(ctx, key, companyID); ok {
			return v
		}
	}
	return def
}

// ResolveDecimal implements settings.Resolver. Malformed stored values
// fall back to def rather than erroring.
func (r *LayeredResolver) ResolveDecimal(ctx context.Context, key, companyID string, def decimal.Decimal) decimal.Decimal {
	raw := r.Resolve(ctx, key, companyID, def.String())
	v, err := decimal.NewFromString(raw)
	if err != nil {
		slog.Warn("malformed decimal setting, using default", "key", key, "value", raw)
		return def
	}
	return v
}

// ResolveInt implements settings.Resolver.
func (r *LayeredResolver) ResolveInt(ctx context.Context, key, companyID string, def int) int {
	raw := r.Resolve(ctx, key, companyID, strconv.Itoa(def))
	v, err := strconv.Atoi(raw)
	if err != nil {
		slog.Warn("malformed integer setting, using default", "key", key, "value", raw)
		return def
	}
	return v
}

var _ settings.Resolver = (*LayeredResolver)(nil)
