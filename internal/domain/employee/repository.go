package employee

import "context"

// EmployeeRepository is read-only to the compensation engines: the
// directory is owned by HR administration flows outside this service.
type EmployeeRepository interface {
	// GetByID retrieves an employee with company isolation.
	GetByID(ctx context.Context, id string, companyID string) (Employee, error)

	// GetEmployedByCompanyID retrieves all currently employed workers.
	GetEmployedByCompanyID(ctx context.Context, companyID string) ([]Employee, error)

	// ListCompanyIDs returns every company with at least one employed
	// worker. Used by the daily sweep to fan out per tenant.
	ListCompanyIDs(ctx context.Context) ([]string, error)
}
