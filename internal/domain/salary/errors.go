package salary

import "errors"

var (
	ErrPeriodSalaryNotFound = errors.New("period salary record not found")
)
