package settings

import (
	"github.com/wagewise-hq/wagewise-backend-go/internal/pkg/validator"
)

// UpsertSettingRequest writes a tenant override; Global writes the
// row shared by every tenant without its own override instead.
type UpsertSettingRequest struct {
	Key    string `json:"key"`
	Value  string `json:"value"`
	Global bool   `json:"global"`
}

func (r *UpsertSettingRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Key) {
		errs = append(errs, validator.ValidationError{
			Field:   "key",
			Message: "key is required",
		})
	}

	if validator.IsEmpty(r.Value) {
		errs = append(errs, validator.ValidationError{
			Field:   "value",
			Message: "value is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
