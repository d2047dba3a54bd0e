package report

import (
	"context"
)

// PayrollReportService builds the payroll matrix and its department
// roll-up from the ledger and the period salary snapshots.
type PayrollReportService interface {
	BuildPayrollReport(ctx context.Context, companyID string, sel DateSelector) (PayrollReport, error)
}
