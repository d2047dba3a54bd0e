package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/wagewise-hq/wagewise-backend-go/internal/domain/attendance"
	"github.com/wagewise-hq/wagewise-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	id, employee_id, company_id, date, punch_in, punch_out,
	worked_hours, break_hours, overtime_hours, status,
	shift_start, shift_end, spans_midnight, created_at, updated_at
`

func scanDay(row pgx.Row) (attendance.Day, error) {
	var day attendance.Day
	err := row.Scan(
		&day.ID, &day.EmployeeID, &day.CompanyID, &day.Date, &day.PunchIn, &day.PunchOut,
		&day.WorkedHours, &day.BreakHours, &day.OvertimeHours, &day.Status,
		&day.ShiftStart, &day.ShiftEnd, &day.SpansMidnight, &day.CreatedAt, &day.UpdatedAt,
	)
	return day, err
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, companyID string) (*attendance.Day, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_days
		WHERE employee_id = $1 AND date = $2 AND company_id = $3
		LIMIT 1
	`

	day, err := scanDay(q.QueryRow(ctx, query, employeeID, date, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil // no ledger row for this day
		}
		return nil, fmt.Errorf("failed to get attendance day: %w", err)
	}

	return &day, nil
}

// Upsert implements attendance.AttendanceRepository.
func (r *attendanceRepository) Upsert(ctx context.Context, day attendance.Day) (attendance.Day, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_days (
			employee_id, company_id, date, punch_in, punch_out,
			worked_hours, break_hours, overtime_hours, status,
			shift_start, shift_end, spans_midnight
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (employee_id, date) DO UPDATE SET
			punch_in = EXCLUDED.punch_in,
			punch_out = EXCLUDED.punch_out,
			worked_hours = EXCLUDED.worked_hours,
			break_hours = EXCLUDED.break_hours,
			overtime_hours = EXCLUDED.overtime_hours,
			status = EXCLUDED.status,
			shift_start = EXCLUDED.shift_start,
			shift_end = EXCLUDED.shift_end,
			spans_midnight = EXCLUDED.spans_midnight,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		day.EmployeeID,
		day.CompanyID,
		day.Date,
		day.PunchIn,
		day.PunchOut,
		day.WorkedHours,
		day.BreakHours,
		day.OvertimeHours,
		day.Status,
		day.ShiftStart,
		day.ShiftEnd,
		day.SpansMidnight,
	).Scan(&day.ID, &day.CreatedAt, &day.UpdatedAt)

	if err != nil {
		return attendance.Day{}, fmt.Errorf("failed to upsert attendance day: %w", err)
	}

	return day, nil
}

// ListByEmployeeAndRange implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time, companyID string) ([]attendance.Day, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_days
		WHERE employee_id = $1 AND date BETWEEN $2 AND $3 AND company_id = $4
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, employeeID, from, to, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance days: %w", err)
	}
	defer rows.Close()

	return collectDays(rows)
}

// ListByCompanyAndRange implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListByCompanyAndRange(ctx context.Context, companyID string, from, to time.Time) ([]attendance.Day, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_days
		WHERE company_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY employee_id, date
	`

	rows, err := q.Query(ctx, query, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance days: %w", err)
	}
	defer rows.Close()

	return collectDays(rows)
}

func collectDays(rows pgx.Rows) ([]attendance.Day, error) {
	var days []attendance.Day
	for rows.Next() {
		day, err := scanDay(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance day: %w", err)
		}
		days = append(days, day)
	}
	return days, rows.Err()
}

// MonthlyTotals implements attendance.AttendanceRepository.
func (r *attendanceRepository) MonthlyTotals(ctx context.Context, companyID string, year int, month time.Month) ([]attendance.MonthlyTotals, error) {
	q := GetQuerier(ctx, r.db)

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	query := `
		SELECT employee_id,
			   COALESCE(SUM(worked_hours), 0),
			   COALESCE(SUM(overtime_hours), 0),
			   COUNT(*) FILTER (WHERE status = 'Present')
		FROM attendance_days
		WHERE company_id = $1 AND date BETWEEN $2 AND $3
		GROUP BY employee_id
	`

	rows, err := q.Query(ctx, query, companyID, first, last)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate monthly totals: %w", err)
	}
	defer rows.Close()

	var totals []attendance.MonthlyTotals
	for rows.Next() {
		var t attendance.MonthlyTotals
		if err := rows.Scan(&t.EmployeeID, &t.TotalWorkingHours, &t.OvertimeHours, &t.DaysPresent); err != nil {
			return nil, fmt.Errorf("failed to scan monthly totals: %w", err)
		}
		totals = append(totals, t)
	}

	return totals, rows.Err()
}

// BulkCreateAbsences implements attendance.AttendanceRepository.
func (r *attendanceRepository) BulkCreateAbsences(ctx context.Context, days []attendance.Day) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_days (
			employee_id, company_id, date, worked_hours, break_hours,
			overtime_hours, status
		) VALUES ($1, $2, $3, 0, 0, 0, $4)
		ON CONFLICT (employee_id, date) DO NOTHING
	`

	for _, day := range days {
		if _, err := q.Exec(ctx, query, day.EmployeeID, day.CompanyID, day.Date, day.Status); err != nil {
			return fmt.Errorf("failed to insert absence for employee %s: %w", day.EmployeeID, err)
		}
	}

	return nil
}
