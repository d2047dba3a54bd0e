package salary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wagewise-hq/wagewise-backend-go/internal/domain/attendance"
	"github.com/wagewise-hq/wagewise-backend-go/internal/domain/employee"
	"github.com/wagewise-hq/wagewise-backend-go/internal/domain/salary"
)

type salarySnapshotService struct {
	employeeRepo   employee.EmployeeRepository
	attendanceRepo attendance.AttendanceRepository
	salaryRepo     salary.PeriodSalaryRepository
}

func NewSalarySnapshotService(
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	salaryRepo salary.PeriodSalaryRepository,
) salary.SalarySnapshotService {
	return &salarySnapshotService{
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		salaryRepo:     salaryRepo,
	}
}

var bonusSeedDivisor = decimal.NewFromInt(2)

// seedBonusHours is the initial BonusHours for a brand-new snapshot
// row. Only hourly employees with accumulated overtime get a seed;
// existing rows are never reseeded because the bonus engines own the
// column after creation.
func seedBonusHours(st employee.SalaryType, overtime decimal.Decimal) decimal.Decimal {
	if st == employee.SalaryTypeHourly && overtime.IsPositive() {
		return overtime.Div(bonusSeedDivisor).Floor()
	}
	return decimal.Zero
}

// EnsureMonthlySalary implements salary.SalarySnapshotService.
func (s *salarySnapshotService) EnsureMonthlySalary(ctx context.Context, companyID string, year int, month time.Month) error {
	employees, err := s.employeeRepo.GetEmployedByCompanyID(ctx, companyID)
	if err != nil {
		return fmt.Errorf("failed to list employees for salary snapshot: %w", err)
	}

	totals, err := s.attendanceRepo.MonthlyTotals(ctx, companyID, year, month)
	if err != nil {
		return fmt.Errorf("failed to aggregate attendance for salary snapshot: %w", err)
	}

	totalsByEmployee := make(map[string]attendance.MonthlyTotals, len(totals))
	for _, t := range totals {
		totalsByEmployee[t.EmployeeID] = t
	}

	for _, emp := range employees {
		// One bad row must not starve the rest of the company.
		if _, err := s.reconcile(ctx, emp, totalsByEmployee[emp.ID], int(month), year); err != nil {
			slog.Error("failed to reconcile period salary",
				"employee_id", emp.ID,
				"company_id", companyID,
				"error", err,
			)
		}
	}

	return nil
}

// EnsureForEmployee implements salary.SalarySnapshotService.
func (s *salarySnapshotService) EnsureForEmployee(ctx context.Context, employeeID string, month, year int, companyID string) (salary.PeriodSalary, error) {
	existing, err := s.salaryRepo.GetByEmployeePeriod(ctx, employeeID, month, year, companyID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, salary.ErrPeriodSalaryNotFound) {
		return salary.PeriodSalary{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, employeeID, companyID)
	if err != nil {
		return salary.PeriodSalary{}, err
	}

	totals, err := s.monthTotalsForEmployee(ctx, employeeID, month, year, companyID)
	if err != nil {
		return salary.PeriodSalary{}, err
	}

	return s.reconcile(ctx, emp, totals, month, year)
}

// reconcile creates the snapshot when absent and refreshes its
// aggregates when present. BonusHours is written exactly once, at
// creation time.
func (s *salarySnapshotService) reconcile(ctx context.Context, emp employee.Employee, totals attendance.MonthlyTotals, month, year int) (salary.PeriodSalary, error) {
	existing, err := s.salaryRepo.GetByEmployeePeriod(ctx, emp.ID, month, year, emp.CompanyID)
	if err != nil {
		if !errors.Is(err, salary.ErrPeriodSalaryNotFound) {
			return salary.PeriodSalary{}, err
		}

		created, err := s.salaryRepo.Create(ctx, salary.PeriodSalary{
			EmployeeID:        emp.ID,
			CompanyID:         emp.CompanyID,
			Month:             month,
			Year:              year,
			SalaryType:        emp.SalaryType,
			BaseSalary:        emp.BaseSalary,
			TotalWorkingHours: totals.TotalWorkingHours,
			OvertimeHours:     totals.OvertimeHours,
			DaysPresent:       totals.DaysPresent,
			BonusHours:        seedBonusHours(emp.SalaryType, totals.OvertimeHours),
		})
		if err != nil {
			return salary.PeriodSalary{}, fmt.Errorf("failed to create period salary: %w", err)
		}
		return created, nil
	}

	existing.SalaryType = emp.SalaryType
	existing.BaseSalary = emp.BaseSalary
	existing.TotalWorkingHours = totals.TotalWorkingHours
	existing.OvertimeHours = totals.OvertimeHours
	existing.DaysPresent = totals.DaysPresent

	if err := s.salaryRepo.UpdateSnapshot(ctx, existing); err != nil {
		return salary.PeriodSalary{}, fmt.Errorf("failed to update period salary: %w", err)
	}

	return existing, nil
}

func (s *salarySnapshotService) monthTotalsForEmployee(ctx context.Context, employeeID string, month, year int, companyID string) (attendance.MonthlyTotals, error) {
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)

	days, err := s.attendanceRepo.ListByEmployeeAndRange(ctx, employeeID, from, to, companyID)
	if err != nil {
		return attendance.MonthlyTotals{}, fmt.Errorf("failed to list attendance for salary snapshot: %w", err)
	}

	totals := attendance.MonthlyTotals{EmployeeID: employeeID}
	for _, d := range days {
		totals.TotalWorkingHours = totals.TotalWorkingHours.Add(d.WorkedHours)
		totals.OvertimeHours = totals.OvertimeHours.Add(d.OvertimeHours)
		if d.Status == attendance.StatusPresent {
			totals.DaysPresent++
		}
	}

	return totals, nil
}

var _ salary.SalarySnapshotService = (*salarySnapshotService)(nil)
