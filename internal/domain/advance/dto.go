package advance

import (
	"github.com/wagewise-hq/wagewise-backend-go/internal/pkg/validator"
)

type CreateAdvanceRequest struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	Amount     string `json:"amount"`
	Note       string `json:"note"`
}

func (r *CreateAdvanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if !validator.IsValidDate(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if !validator.IsPositiveDecimal(r.Amount) {
		errs = append(errs, validator.ValidationError{
			Field:   "amount",
			Message: "amount must be a positive number",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
