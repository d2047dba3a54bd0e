package advance

import "context"

type AdvanceService interface {
	// Record stores a paid-out advance against the employee.
	Record(ctx context.Context, companyID string, req CreateAdvanceRequest) (Entry, error)
}
