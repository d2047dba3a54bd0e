package report

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wagewise-hq/wagewise-backend-go/internal/domain/advance"
	"github.com/wagewise-hq/wagewise-backend-go/internal/domain/attendance"
	"github.com/wagewise-hq/wagewise-backend-go/internal/domain/employee"
	"github.com/wagewise-hq/wagewise-backend-go/internal/domain/penalty"
	"github.com/wagewise-hq/wagewise-backend-go/internal/domain/report"
	"github.com/wagewise-hq/wagewise-backend-go/internal/domain/salary"
)

type fakeEmployeeRepo struct {
	employees []employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id, companyID string) (employee.Employee, error) {
	for _, emp := range f.employees {
		if emp.ID == id && emp.CompanyID == companyID {
			return emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) GetEmployedByCompanyID(_ context.Context, companyID string) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, emp := range f.employees {
		if emp.CompanyID == companyID {
			out = append(out, emp)
		}
	}
	return out, nil
}

func (f *fakeEmployeeRepo) ListCompanyIDs(context.Context) ([]string, error) { return nil, nil }

type fakeAttendanceRepo struct {
	days []attendance.Day
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(context.Context, string, time.Time, string) (*attendance.Day, error) {
	return nil, nil
}

func (f *fakeAttendanceRepo) Upsert(_ context.Context, day attendance.Day) (attendance.Day, error) {
	return day, nil
}

func (f *fakeAttendanceRepo) ListByEmployeeAndRange(_ context.Context, employeeID string, from, to time.Time, _ string) ([]attendance.Day, error) {
	var out []attendance.Day
	for _, d := range f.days {
		if d.EmployeeID == employeeID && !d.Date.Before(from) && !d.Date.After(to) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) ListByCompanyAndRange(_ context.Context, companyID string, from, to time.Time) ([]attendance.Day, error) {
	var out []attendance.Day
	for _, d := range f.days {
		if d.CompanyID == companyID && !d.Date.Before(from) && !d.Date.After(to) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) MonthlyTotals(context.Context, string, int, time.Month) ([]attendance.MonthlyTotals, error) {
	return nil, nil
}

func (f *fakeAttendanceRepo) BulkCreateAbsences(context.Context, []attendance.Day) error { return nil }

// fakeSalarySource serves snapshots and treats reconciliation as done.
type fakeSalarySource struct {
	rows []salary.PeriodSalary
}

func (f *fakeSalarySource) EnsureMonthlySalary(context.Context, string, int, time.Month) error {
	return nil
}

func (f *fakeSalarySource) EnsureForEmployee(_ context.Context, employeeID string, month, year int, companyID string) (salary.PeriodSalary, error) {
	return f.GetByEmployeePeriod(context.Background(), employeeID, month, year, companyID)
}

func (f *fakeSalarySource) GetByEmployeePeriod(_ context.Context, employeeID string, month, year int, _ string) (salary.PeriodSalary, error) {
	for _, r := range f.rows {
		if r.EmployeeID == employeeID && r.Month == month && r.Year == year {
			return r, nil
		}
	}
	return salary.PeriodSalary{}, salary.ErrPeriodSalaryNotFound
}

func (f *fakeSalarySource) Create(_ context.Context, ps salary.PeriodSalary) (salary.PeriodSalary, error) {
	return ps, nil
}

func (f *fakeSalarySource) UpdateSnapshot(context.Context, salary.PeriodSalary) error { return nil }

func (f *fakeSalarySource) AddBonusHours(context.Context, string, int, int, string, decimal.Decimal) error {
	return nil
}

type fakeTotalsRepoAdvance struct {
	totals map[string]decimal.Decimal
}

func (f *fakeTotalsRepoAdvance) Create(_ context.Context, e advance.Entry) (advance.Entry, error) {
	return e, nil
}

func (f *fakeTotalsRepoAdvance) TotalsForRange(context.Context, string, time.Time, time.Time) (map[string]decimal.Decimal, error) {
	return f.totals, nil
}

type fakeTotalsRepoPenalty struct {
	totals map[string]decimal.Decimal
}

func (f *fakeTotalsRepoPenalty) GetAutoByEmployeeAndDate(context.Context, string, time.Time, string) (*penalty.Entry, error) {
	return nil, nil
}

func (f *fakeTotalsRepoPenalty) UpsertAuto(_ context.Context, e penalty.Entry) (penalty.Entry, error) {
	return e, nil
}

func (f *fakeTotalsRepoPenalty) DeleteAutoByEmployeeAndDate(context.Context, string, time.Time, string) error {
	return nil
}

func (f *fakeTotalsRepoPenalty) SumMonthExcludingAuto(context.Context, string, int, int, time.Time, string) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func (f *fakeTotalsRepoPenalty) CreateManual(_ context.Context, e penalty.Entry) (penalty.Entry, error) {
	return e, nil
}

func (f *fakeTotalsRepoPenalty) TotalsForRange(context.Context, string, time.Time, time.Time) (map[string]decimal.Decimal, error) {
	return f.totals, nil
}

func date(s string) time.Time {
	d, _ := time.Parse("2006-01-02", s)
	return d
}

func workedDay(employeeID, dateStr string, worked float64, status attendance.Status) attendance.Day {
	return attendance.Day{
		EmployeeID:  employeeID,
		CompanyID:   "acme",
		Date:        date(dateStr),
		WorkedHours: decimal.NewFromFloat(worked),
		Status:      status,
	}
}

func TestBuildPayrollReport_Matrix(t *testing.T) {
	ctx := context.Background()

	hourlyRate := decimal.NewFromInt(200)
	monthlyBase := hourlyRate.Mul(decimal.NewFromInt(208))

	employees := &fakeEmployeeRepo{employees: []employee.Employee{
		{ID: "m1", CompanyID: "acme", FullName: "Mona", Department: "Ops", SalaryType: employee.SalaryTypeMonthly, BaseSalary: monthlyBase, EmploymentStatus: "employed"},
		{ID: "f1", CompanyID: "acme", FullName: "Farid", Department: "Ops", SalaryType: employee.SalaryTypeFixed, BaseSalary: decimal.NewFromInt(50000), EmploymentStatus: "employed"},
	}}
	att := &fakeAttendanceRepo{days: []attendance.Day{
		workedDay("m1", "2025-03-10", 8, attendance.StatusPresent),
		workedDay("m1", "2025-03-11", 0, attendance.StatusAbsent),
		workedDay("f1", "2025-03-10", 8, attendance.StatusPresent),
		workedDay("f1", "2025-03-11", 8, attendance.StatusPresent),
	}}
	salaries := &fakeSalarySource{rows: []salary.PeriodSalary{
		{EmployeeID: "f1", Month: 3, Year: 2025, BonusHours: decimal.NewFromInt(2)},
	}}
	advances := &fakeTotalsRepoAdvance{totals: map[string]decimal.Decimal{"m1": decimal.NewFromInt(500)}}
	penalties := &fakeTotalsRepoPenalty{totals: map[string]decimal.Decimal{"m1": decimal.NewFromInt(100)}}

	svc := NewPayrollReportService(employees, att, salaries, salaries, advances, penalties)

	got, err := svc.BuildPayrollReport(ctx, "acme", report.SelectorForRange(date("2025-03-10"), date("2025-03-11")))
	require.NoError(t, err)

	require.Equal(t, []string{"2025-03-10", "2025-03-11"}, got.DateColumns)
	require.Len(t, got.Rows, 2)

	rows := make(map[string]report.EmployeeRow)
	for _, r := range got.Rows {
		rows[r.EmployeeID] = r
	}

	// Monthly: 8h x 200 on the worked day, zero on the absence.
	mona := rows["m1"]
	assert.True(t, decimal.NewFromInt(1600).Equal(mona.Daily["2025-03-10"]))
	assert.True(t, decimal.Zero.Equal(mona.Daily["2025-03-11"]))
	assert.True(t, decimal.NewFromInt(1600).Equal(mona.Total))
	// 1600 + 0 bonus - 500 advances - 100 penalties
	assert.True(t, decimal.NewFromInt(1000).Equal(mona.NetPayable), "net=%s", mona.NetPayable)

	// Fixed: zero daily cells, lump-sum total, bonus priced at
	// base/208.
	farid := rows["f1"]
	assert.True(t, decimal.Zero.Equal(farid.Daily["2025-03-10"]))
	assert.True(t, decimal.NewFromInt(50000).Equal(farid.Total))
	wantBonus := decimal.NewFromInt(50000).Div(decimal.NewFromInt(208)).Mul(decimal.NewFromInt(2))
	assert.True(t, wantBonus.Equal(farid.BonusAmount), "bonus=%s", farid.BonusAmount)
	assert.True(t, decimal.NewFromInt(50000).Add(wantBonus).Equal(farid.NetPayable))
}

func TestBuildPayrollReport_DepartmentRollup(t *testing.T) {
	ctx := context.Background()

	employees := &fakeEmployeeRepo{employees: []employee.Employee{
		{ID: "h1", CompanyID: "acme", Department: "Floor", SalaryType: employee.SalaryTypeHourly, BaseSalary: decimal.NewFromInt(100), EmploymentStatus: "employed"},
		{ID: "h2", CompanyID: "acme", Department: "Floor", SalaryType: employee.SalaryTypeHourly, BaseSalary: decimal.NewFromInt(100), EmploymentStatus: "employed"},
		{ID: "q1", CompanyID: "acme", Department: "Quiet", SalaryType: employee.SalaryTypeHourly, BaseSalary: decimal.NewFromInt(100), EmploymentStatus: "employed"},
	}}
	att := &fakeAttendanceRepo{days: []attendance.Day{
		workedDay("h1", "2025-03-10", 10, attendance.StatusPresent),
		workedDay("h2", "2025-03-10", 0, attendance.StatusAbsent),
		// q1 has no ledger rows at all.
	}}
	salaries := &fakeSalarySource{}
	advances := &fakeTotalsRepoAdvance{totals: map[string]decimal.Decimal{}}
	penalties := &fakeTotalsRepoPenalty{totals: map[string]decimal.Decimal{}}

	svc := NewPayrollReportService(employees, att, salaries, salaries, advances, penalties)

	got, err := svc.BuildPayrollReport(ctx, "acme", report.SelectorForRange(date("2025-03-10"), date("2025-03-10")))
	require.NoError(t, err)

	require.Len(t, got.Departments, 2)
	byName := make(map[string]report.DepartmentRow)
	for _, d := range got.Departments {
		byName[d.Department] = d
	}

	floor := byName["Floor"]
	assert.Equal(t, 2, floor.Headcount)
	assert.True(t, decimal.NewFromInt(10).Equal(floor.ManHours))
	assert.Equal(t, 1, floor.PresentDays)
	assert.Equal(t, 1, floor.AbsentDays)
	assert.True(t, decimal.NewFromInt(50).Equal(floor.AbsenteeismPct), "pct=%s", floor.AbsenteeismPct)
	assert.True(t, decimal.NewFromInt(1000).Equal(floor.TotalSalary))
	// Pay per head averages over the days actually worked, not the
	// headcount: one present day in a two-person department still
	// means the whole 1000 was earned by a single attendance.
	assert.True(t, decimal.NewFromInt(1000).Equal(floor.AvgPayPerHead), "perHead=%s", floor.AvgPayPerHead)
	assert.True(t, decimal.NewFromInt(100).Equal(floor.AvgPayPerHour))

	// No ledger rows: every ratio degrades to zero instead of
	// dividing by it.
	quiet := byName["Quiet"]
	assert.True(t, decimal.Zero.Equal(quiet.AbsenteeismPct))
	assert.True(t, decimal.Zero.Equal(quiet.AvgPayPerHead))
	assert.True(t, decimal.Zero.Equal(quiet.AvgPayPerHour))
	assert.True(t, decimal.Zero.Equal(quiet.TotalSalary))
}

func TestBuildPayrollReport_SingleDayUsesMonthToDateSalaries(t *testing.T) {
	ctx := context.Background()

	employees := &fakeEmployeeRepo{employees: []employee.Employee{
		{ID: "h1", CompanyID: "acme", Department: "Floor", SalaryType: employee.SalaryTypeHourly, BaseSalary: decimal.NewFromInt(100), EmploymentStatus: "employed"},
	}}
	att := &fakeAttendanceRepo{days: []attendance.Day{
		workedDay("h1", "2025-03-03", 8, attendance.StatusPresent),
		workedDay("h1", "2025-03-04", 8, attendance.StatusPresent),
		workedDay("h1", "2025-03-10", 8, attendance.StatusPresent),
	}}
	salaries := &fakeSalarySource{}
	svc := NewPayrollReportService(employees, att, salaries, salaries,
		&fakeTotalsRepoAdvance{totals: map[string]decimal.Decimal{}},
		&fakeTotalsRepoPenalty{totals: map[string]decimal.Decimal{}})

	got, err := svc.BuildPayrollReport(ctx, "acme", report.SelectorForDay(date("2025-03-10")))
	require.NoError(t, err)

	// The single column prices one day, but the department total is
	// the whole month to date: 24h x 100.
	require.Len(t, got.Rows, 1)
	assert.True(t, decimal.NewFromInt(800).Equal(got.Rows[0].Total))

	require.Len(t, got.Departments, 1)
	assert.True(t, decimal.NewFromInt(2400).Equal(got.Departments[0].TotalSalary), "total=%s", got.Departments[0].TotalSalary)
}
