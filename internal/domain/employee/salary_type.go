package employee

import "github.com/shopspring/decimal"

// SalaryType is a closed set: every value carries its own rate
// derivation so callers never branch on raw strings.
type SalaryType string

const (
	SalaryTypeMonthly SalaryType = "Monthly"
	SalaryTypeHourly  SalaryType = "Hourly"
	SalaryTypeFixed   SalaryType = "Fixed"
)

// monthlyHours is the fixed denominator for converting a monthly base
// salary to an hourly figure: 26 workdays of 8 hours.
var monthlyHours = decimal.NewFromInt(26 * 8)

// ParseSalaryType maps a stored string to a SalaryType. Unknown values
// fall back to Monthly, the historical default.
func ParseSalaryType(s string) SalaryType {
	switch SalaryType(s) {
	case SalaryTypeHourly:
		return SalaryTypeHourly
	case SalaryTypeFixed:
		return SalaryTypeFixed
	default:
		return SalaryTypeMonthly
	}
}

// DailyHourlyRate returns the rate used to price a single worked hour
// on a payroll date column. Fixed-salary employees earn nothing per
// day; their base is paid as a lump sum instead.
func (t SalaryType) DailyHourlyRate(base decimal.Decimal) decimal.Decimal {
	switch t {
	case SalaryTypeHourly:
		return base
	case SalaryTypeFixed:
		return decimal.Zero
	default:
		return base.Div(monthlyHours)
	}
}

// BonusHourlyRate returns the rate used to convert bonus hours to
// money. Unlike daily pay, Fixed employees do get paid for bonus
// hours, priced against the base/208 approximation.
func (t SalaryType) BonusHourlyRate(base decimal.Decimal) decimal.Decimal {
	switch t {
	case SalaryTypeHourly:
		return base
	default:
		return base.Div(monthlyHours)
	}
}
