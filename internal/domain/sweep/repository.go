package sweep

import (
	"context"
	"time"
)

// StateRepository persists the last day each named sweep finished, so
// once-per-day gating survives process restarts instead of living in
// a package-level variable.
type StateRepository interface {
	// GetLastProcessed returns the most recent processed day for the
	// named sweep, or nil when it has never run.
	GetLastProcessed(ctx context.Context, name string) (*time.Time, error)

	// SetLastProcessed atomically records the processed day.
	SetLastProcessed(ctx context.Context, name string, day time.Time) error
}
