package report

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/wagewise-hq/wagewise-backend-go/internal/domain/employee"
)

// DateSelector resolves the supported report scopes (explicit range,
// single day, whole month) into one closed form. SingleDay switches
// the department roll-up's "Total Salary" to the independent
// month-to-date figure.
type DateSelector struct {
	From      time.Time
	To        time.Time
	SingleDay bool
}

func SelectorForRange(from, to time.Time) DateSelector {
	return DateSelector{From: from, To: to}
}

func SelectorForDay(day time.Time) DateSelector {
	return DateSelector{From: day, To: day, SingleDay: true}
}

func SelectorForMonth(year int, month time.Month) DateSelector {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return DateSelector{From: first, To: first.AddDate(0, 1, -1)}
}

// Dates expands the selector into its distinct date columns.
func (s DateSelector) Dates() []time.Time {
	var dates []time.Time
	for d := s.From; !d.After(s.To); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}

// EmployeeRow is one line of the payroll matrix.
type EmployeeRow struct {
	EmployeeID  string                     `json:"employee_id"`
	FullName    string                     `json:"full_name"`
	Department  string                     `json:"department"`
	SalaryType  employee.SalaryType        `json:"salary_type"`
	Daily       map[string]decimal.Decimal `json:"daily"`
	Total       decimal.Decimal            `json:"total"`
	BonusHours  decimal.Decimal            `json:"bonus_hours"`
	BonusAmount decimal.Decimal            `json:"bonus_amount"`
	Advances    decimal.Decimal            `json:"advances"`
	Penalties   decimal.Decimal            `json:"penalties"`
	NetPayable  decimal.Decimal            `json:"net_payable"`
}

// DepartmentRow is the department roll-up of the matrix.
type DepartmentRow struct {
	Department     string          `json:"department"`
	Headcount      int             `json:"headcount"`
	ManHours       decimal.Decimal `json:"man_hours"`
	PresentDays    int             `json:"present_days"`
	AbsentDays     int             `json:"absent_days"`
	AbsenteeismPct decimal.Decimal `json:"absenteeism_pct"`
	TotalSalary    decimal.Decimal `json:"total_salary"`
	AvgPayPerHead  decimal.Decimal `json:"avg_pay_per_head"`
	AvgPayPerHour  decimal.Decimal `json:"avg_pay_per_hour"`
}

// PayrollReport is the full response: matrix plus roll-up.
type PayrollReport struct {
	DateColumns []string        `json:"date_columns"`
	Rows        []EmployeeRow   `json:"rows"`
	Departments []DepartmentRow `json:"departments"`
	GeneratedAt string          `json:"generated_at"`
}
