package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wagewise-hq/wagewise-backend-go/internal/domain/advance"
	"github.com/wagewise-hq/wagewise-backend-go/internal/domain/attendance"
	"github.com/wagewise-hq/wagewise-backend-go/internal/domain/employee"
	"github.com/wagewise-hq/wagewise-backend-go/internal/domain/penalty"
	"github.com/wagewise-hq/wagewise-backend-go/internal/domain/report"
	"github.com/wagewise-hq/wagewise-backend-go/internal/domain/salary"
)

var hundred = decimal.NewFromInt(100)

type payrollReportService struct {
	employeeRepo   employee.EmployeeRepository
	attendanceRepo attendance.AttendanceRepository
	salaryRepo     salary.PeriodSalaryRepository
	salaryService  salary.SalarySnapshotService
	advanceRepo    advance.EntryRepository
	penaltyRepo    penalty.EntryRepository
	now            func() time.Time
}

func NewPayrollReportService(
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	salaryRepo salary.PeriodSalaryRepository,
	salaryService salary.SalarySnapshotService,
	advanceRepo advance.EntryRepository,
	penaltyRepo penalty.EntryRepository,
) report.PayrollReportService {
	return &payrollReportService{
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		salaryRepo:     salaryRepo,
		salaryService:  salaryService,
		advanceRepo:    advanceRepo,
		penaltyRepo:    penaltyRepo,
		now:            time.Now,
	}
}

// BuildPayrollReport implements report.PayrollReportService.
func (s *payrollReportService) BuildPayrollReport(ctx context.Context, companyID string, sel report.DateSelector) (report.PayrollReport, error) {
	// Reading the report is also what keeps snapshots fresh: reconcile
	// every month the selector touches before rendering. A failure
	// here degrades bonus columns, it does not block the report.
	for _, ym := range monthsIn(sel) {
		if err := s.salaryService.EnsureMonthlySalary(ctx, companyID, ym.year, ym.month); err != nil {
			slog.Error("failed to reconcile salaries for report",
				"company_id", companyID, "year", ym.year, "month", int(ym.month), "error", err)
		}
	}

	employees, err := s.employeeRepo.GetEmployedByCompanyID(ctx, companyID)
	if err != nil {
		return report.PayrollReport{}, fmt.Errorf("failed to list employees for report: %w", err)
	}

	ledger, err := s.attendanceRepo.ListByCompanyAndRange(ctx, companyID, sel.From, sel.To)
	if err != nil {
		return report.PayrollReport{}, fmt.Errorf("failed to list attendance for report: %w", err)
	}
	ledgerByEmployee := groupByEmployee(ledger)

	advances, err := s.advanceRepo.TotalsForRange(ctx, companyID, sel.From, sel.To)
	if err != nil {
		return report.PayrollReport{}, fmt.Errorf("failed to total advances for report: %w", err)
	}

	penalties, err := s.penaltyRepo.TotalsForRange(ctx, companyID, sel.From, sel.To)
	if err != nil {
		return report.PayrollReport{}, fmt.Errorf("failed to total penalties for report: %w", err)
	}

	dates := sel.Dates()
	columns := make([]string, len(dates))
	for i, d := range dates {
		columns[i] = d.Format("2006-01-02")
	}

	rows := make([]report.EmployeeRow, 0, len(employees))
	for _, emp := range employees {
		row, err := s.buildRow(ctx, emp, sel, columns, ledgerByEmployee[emp.ID], advances[emp.ID], penalties[emp.ID])
		if err != nil {
			return report.PayrollReport{}, err
		}
		rows = append(rows, row)
	}

	departments, err := s.rollUpDepartments(ctx, companyID, sel, employees, rows, ledgerByEmployee)
	if err != nil {
		return report.PayrollReport{}, err
	}

	return report.PayrollReport{
		DateColumns: columns,
		Rows:        rows,
		Departments: departments,
		GeneratedAt: s.now().UTC().Format(time.RFC3339),
	}, nil
}

func (s *payrollReportService) buildRow(ctx context.Context, emp employee.Employee, sel report.DateSelector, columns []string, days map[string]attendance.Day, advances, penalties decimal.Decimal) (report.EmployeeRow, error) {
	dailyRate := emp.SalaryType.DailyHourlyRate(emp.BaseSalary)

	daily := make(map[string]decimal.Decimal, len(columns))
	total := decimal.Zero
	for _, col := range columns {
		pay := decimal.Zero
		if day, ok := days[col]; ok {
			pay = day.WorkedHours.Mul(dailyRate)
		}
		daily[col] = pay
		total = total.Add(pay)
	}

	// Fixed salaries are a lump sum, not a per-day accumulation.
	if emp.SalaryType == employee.SalaryTypeFixed {
		total = emp.BaseSalary
	}

	bonusHours, err := s.bonusHoursFor(ctx, emp, sel)
	if err != nil {
		return report.EmployeeRow{}, err
	}
	bonusAmount := bonusHours.Mul(emp.SalaryType.BonusHourlyRate(emp.BaseSalary))

	return report.EmployeeRow{
		EmployeeID:  emp.ID,
		FullName:    emp.FullName,
		Department:  emp.Department,
		SalaryType:  emp.SalaryType,
		Daily:       daily,
		Total:       total,
		BonusHours:  bonusHours,
		BonusAmount: bonusAmount,
		Advances:    advances,
		Penalties:   penalties,
		NetPayable:  total.Add(bonusAmount).Sub(advances).Sub(penalties),
	}, nil
}

// bonusHoursFor sums snapshot bonus hours over every month the
// selector touches. Missing snapshots read as zero rather than
// erroring, so a brand-new month renders an empty column set.
func (s *payrollReportService) bonusHoursFor(ctx context.Context, emp employee.Employee, sel report.DateSelector) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, ym := range monthsIn(sel) {
		ps, err := s.salaryRepo.GetByEmployeePeriod(ctx, emp.ID, int(ym.month), ym.year, emp.CompanyID)
		if err != nil {
			if errors.Is(err, salary.ErrPeriodSalaryNotFound) {
				continue
			}
			return decimal.Zero, fmt.Errorf("failed to load period salary for report: %w", err)
		}
		total = total.Add(ps.BonusHours)
	}
	return total, nil
}

func (s *payrollReportService) rollUpDepartments(ctx context.Context, companyID string, sel report.DateSelector, employees []employee.Employee, rows []report.EmployeeRow, ledgerByEmployee map[string]map[string]attendance.Day) ([]report.DepartmentRow, error) {
	type acc struct {
		headcount   int
		manHours    decimal.Decimal
		presentDays int
		absentDays  int
		totalSalary decimal.Decimal
	}
	accs := make(map[string]*acc)
	accFor := func(dept string) *acc {
		a, ok := accs[dept]
		if !ok {
			a = &acc{manHours: decimal.Zero, totalSalary: decimal.Zero}
			accs[dept] = a
		}
		return a
	}

	deptByEmployee := make(map[string]string, len(employees))
	for _, emp := range employees {
		deptByEmployee[emp.ID] = emp.Department
		a := accFor(emp.Department)
		a.headcount++
		for _, day := range ledgerByEmployee[emp.ID] {
			a.manHours = a.manHours.Add(day.WorkedHours)
			switch day.Status {
			case attendance.StatusAbsent:
				a.absentDays++
			case attendance.StatusPresent, attendance.StatusFullDay:
				a.presentDays++
			}
		}
	}

	if sel.SingleDay {
		// A one-day report still answers "what has this department
		// cost so far this month", independent of the single column.
		mtd, err := s.monthToDateSalaries(ctx, companyID, sel.To, employees)
		if err != nil {
			return nil, err
		}
		for dept, sum := range mtd {
			accFor(dept).totalSalary = sum
		}
	} else {
		for _, row := range rows {
			a := accFor(row.Department)
			a.totalSalary = a.totalSalary.Add(row.NetPayable)
		}
	}

	depts := make([]string, 0, len(accs))
	for dept := range accs {
		depts = append(depts, dept)
	}
	sort.Strings(depts)

	out := make([]report.DepartmentRow, 0, len(depts))
	for _, dept := range depts {
		a := accs[dept]

		absenteeism := decimal.Zero
		if scheduled := a.presentDays + a.absentDays; scheduled > 0 {
			absenteeism = decimal.NewFromInt(int64(a.absentDays)).
				Div(decimal.NewFromInt(int64(scheduled))).
				Mul(hundred)
		}

		perHead := decimal.Zero
		if a.presentDays > 0 {
			perHead = a.totalSalary.Div(decimal.NewFromInt(int64(a.presentDays)))
		}

		perHour := decimal.Zero
		if a.manHours.IsPositive() {
			perHour = a.totalSalary.Div(a.manHours)
		}

		out = append(out, report.DepartmentRow{
			Department:     dept,
			Headcount:      a.headcount,
			ManHours:       a.manHours,
			PresentDays:    a.presentDays,
			AbsentDays:     a.absentDays,
			AbsenteeismPct: absenteeism,
			TotalSalary:    a.totalSalary,
			AvgPayPerHead:  perHead,
			AvgPayPerHour:  perHour,
		})
	}

	return out, nil
}

// monthToDateSalaries prices each department's ledger from the first
// of the month through day, using the same per-hour rates as the
// matrix. Fixed employees contribute their lump sum.
func (s *payrollReportService) monthToDateSalaries(ctx context.Context, companyID string, day time.Time, employees []employee.Employee) (map[string]decimal.Decimal, error) {
	monthStart := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)

	ledger, err := s.attendanceRepo.ListByCompanyAndRange(ctx, companyID, monthStart, day)
	if err != nil {
		return nil, fmt.Errorf("failed to list month-to-date attendance: %w", err)
	}
	byEmployee := groupByEmployee(ledger)

	out := make(map[string]decimal.Decimal)
	for _, emp := range employees {
		pay := decimal.Zero
		if emp.SalaryType == employee.SalaryTypeFixed {
			pay = emp.BaseSalary
		} else {
			rate := emp.SalaryType.DailyHourlyRate(emp.BaseSalary)
			for _, d := range byEmployee[emp.ID] {
				pay = pay.Add(d.WorkedHours.Mul(rate))
			}
		}

		if existing, ok := out[emp.Department]; ok {
			out[emp.Department] = existing.Add(pay)
		} else {
			out[emp.Department] = pay
		}
	}

	return out, nil
}

type yearMonth struct {
	year  int
	month time.Month
}

func monthsIn(sel report.DateSelector) []yearMonth {
	var months []yearMonth
	cursor := time.Date(sel.From.Year(), sel.From.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(sel.To.Year(), sel.To.Month(), 1, 0, 0, 0, 0, time.UTC)
	for !cursor.After(end) {
		months = append(months, yearMonth{year: cursor.Year(), month: cursor.Month()})
		cursor = cursor.AddDate(0, 1, 0)
	}
	return months
}

func groupByEmployee(days []attendance.Day) map[string]map[string]attendance.Day {
	out := make(map[string]map[string]attendance.Day)
	for _, d := range days {
		if out[d.EmployeeID] == nil {
			out[d.EmployeeID] = make(map[string]attendance.Day)
		}
		out[d.EmployeeID][d.Date.Format("2006-01-02")] = d
	}
	return out
}

var _ report.PayrollReportService = (*payrollReportService)(nil)
