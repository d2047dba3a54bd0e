package salary

import (
	"context"
	"time"
)

// SalarySnapshotService reconciles period salary snapshots against the
// attendance ledger.
type SalarySnapshotService interface {
	// EnsureMonthlySalary creates or refreshes the snapshot for every
	// employed worker for the given month. Idempotent and cheap: it is
	// invoked as a side effect of unrelated read endpoints.
	EnsureMonthlySalary(ctx context.Context, companyID string, year int, month time.Month) error

	// EnsureForEmployee lazily creates the snapshot for a single
	// employee month, used by the per-day engines before applying a
	// bonus delta.
	EnsureForEmployee(ctx context.Context, employeeID string, month, year int, companyID string) (PeriodSalary, error)
}
