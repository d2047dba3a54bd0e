package performance

import (
	"context"
	"time"
)

// RewardFlagService scans recent ledger history for presence streaks,
// heavy weekly overtime, and consecutive-absence risk.
type RewardFlagService interface {
	// Run executes all three scans anchored at target. Safe to invoke
	// any number of times per day: existing same-day events suppress
	// duplicates.
	Run(ctx context.Context, companyID string, target time.Time) (RunResult, error)

	// ListRecent returns the company's latest events, newest first.
	ListRecent(ctx context.Context, companyID string, limit int) ([]Event, error)

	// SetAdminStatus moves an Action event through its follow-up
	// workflow.
	SetAdminStatus(ctx context.Context, id string, status AdminStatus, companyID string) error
}
