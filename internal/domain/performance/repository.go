package performance

import (
	"context"
	"time"
)

type EventRepository interface {
	// ExistsForDay reports whether an event with this exact trigger
	// reason was already created for the employee on the given
	// calendar day. This check, not a lock, is what makes engine runs
	// idempotent within a day.
	ExistsForDay(ctx context.Context, employeeID, triggerReason string, day time.Time, companyID string) (bool, error)

	// Create appends an event.
	Create(ctx context.Context, event Event) (Event, error)

	// UpdateAdminStatus moves an Action event through its follow-up
	// workflow.
	UpdateAdminStatus(ctx context.Context, id string, status AdminStatus, companyID string) error

	// ListByCompany returns recent events, newest first.
	ListByCompany(ctx context.Context, companyID string, limit int) ([]Event, error)
}
