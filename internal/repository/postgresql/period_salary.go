package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/wagewise-hq/wagewise-backend-go/internal/domain/employee"
	"github.com/wagewise-hq/wagewise-backend-go/internal/domain/salary"
	"github.com/wagewise-hq/wagewise-backend-go/internal/pkg/database"
)

type periodSalaryRepository struct {
	db *database.DB
}

func NewPeriodSalaryRepository(db *database.DB) salary.PeriodSalaryRepository {
	return &periodSalaryRepository{db: db}
}

// GetByEmployeePeriod implements salary.PeriodSalaryRepository.
func (r *periodSalaryRepository) GetByEmployeePeriod(ctx context.Context, employeeID string, month, year int, companyID string) (salary.PeriodSalary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, company_id, month, year, salary_type, base_salary,
			   total_working_hours, overtime_hours, days_present, bonus_hours,
			   created_at, updated_at
		FROM period_salaries
		WHERE employee_id = $1 AND month = $2 AND year = $3 AND company_id = $4
	`

	var ps salary.PeriodSalary
	var salaryType string
	err := q.QueryRow(ctx, query, employeeID, month, year, companyID).Scan(
		&ps.ID, &ps.EmployeeID, &ps.CompanyID, &ps.Month, &ps.Year, &salaryType, &ps.BaseSalary,
		&ps.TotalWorkingHours, &ps.OvertimeHours, &ps.DaysPresent, &ps.BonusHours,
		&ps.CreatedAt, &ps.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return salary.PeriodSalary{}, salary.ErrPeriodSalaryNotFound
		}
		return salary.PeriodSalary{}, fmt.Errorf("failed to get period salary: %w", err)
	}
	ps.SalaryType = employee.ParseSalaryType(salaryType)

	return ps, nil
}

// Create implements salary.PeriodSalaryRepository.
func (r *periodSalaryRepository) Create(ctx context.Context, ps salary.PeriodSalary) (salary.PeriodSalary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO period_salaries (
			employee_id, company_id, month, year, salary_type, base_salary,
			total_working_hours, overtime_hours, days_present, bonus_hours
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		ps.EmployeeID,
		ps.CompanyID,
		ps.Month,
		ps.Year,
		string(ps.SalaryType),
		ps.BaseSalary,
		ps.TotalWorkingHours,
		ps.OvertimeHours,
		ps.DaysPresent,
		ps.BonusHours,
	).Scan(&ps.ID, &ps.CreatedAt, &ps.UpdatedAt)

	if err != nil {
		return salary.PeriodSalary{}, fmt.Errorf("failed to create period salary: %w", err)
	}

	return ps, nil
}

// UpdateSnapshot implements salary.PeriodSalaryRepository. BonusHours
// is deliberately absent from the SET list.
func (r *periodSalaryRepository) UpdateSnapshot(ctx context.Context, ps salary.PeriodSalary) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE period_salaries SET
			salary_type = $1,
			base_salary = $2,
			total_working_hours = $3,
			overtime_hours = $4,
			days_present = $5,
			updated_at = NOW()
		WHERE employee_id = $6 AND month = $7 AND year = $8 AND company_id = $9
	`

	tag, err := q.Exec(ctx, query,
		string(ps.SalaryType),
		ps.BaseSalary,
		ps.TotalWorkingHours,
		ps.OvertimeHours,
		ps.DaysPresent,
		ps.EmployeeID,
		ps.Month,
		ps.Year,
		ps.CompanyID,
	)
	if err != nil {
		return fmt.Errorf("failed to update period salary snapshot: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return salary.ErrPeriodSalaryNotFound
	}

	return nil
}

// AddBonusHours implements salary.PeriodSalaryRepository.
func (r *periodSalaryRepository) AddBonusHours(ctx context.Context, employeeID string, month, year int, companyID string, delta decimal.Decimal) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE period_salaries SET
			bonus_hours = bonus_hours + $1,
			updated_at = NOW()
		WHERE employee_id = $2 AND month = $3 AND year = $4 AND company_id = $5
	`

	tag, err := q.Exec(ctx, query, delta, employeeID, month, year, companyID)
	if err != nil {
		return fmt.Errorf("failed to adjust bonus hours: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return salary.ErrPeriodSalaryNotFound
	}

	return nil
}
