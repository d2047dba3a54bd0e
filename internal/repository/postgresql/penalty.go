package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/wagewise-hq/wagewise-backend-go/internal/domain/penalty"
	"github.com/wagewise-hq/wagewise-backend-go/internal/pkg/database"
)

type penaltyRepository struct {
	db *database.DB
}

func NewPenaltyRepository(db *database.DB) penalty.EntryRepository {
	return &penaltyRepository{db: db}
}

const penaltyColumns = `
	id, employee_id, company_id, date, month, year, minutes_late,
	deduction, rate_used, is_manual, description, created_at, updated_at
`

func scanPenalty(row pgx.Row) (penalty.Entry, error) {
	var e penalty.Entry
	err := row.Scan(
		&e.ID, &e.EmployeeID, &e.CompanyID, &e.Date, &e.Month, &e.Year, &e.MinutesLate,
		&e.Deduction, &e.RateUsed, &e.IsManual, &e.Description, &e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

// GetAutoByEmployeeAndDate implements penalty.EntryRepository.
func (r *penaltyRepository) GetAutoByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, companyID string) (*penalty.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + penaltyColumns + `
		FROM penalty_entries
		WHERE employee_id = $1 AND date = $2 AND company_id = $3 AND is_manual = FALSE
		LIMIT 1
	`

	entry, err := scanPenalty(q.QueryRow(ctx, query, employeeID, date, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil // no auto penalty for this day
		}
		return nil, fmt.Errorf("failed to get auto penalty: %w", err)
	}

	return &entry, nil
}

// UpsertAuto implements penalty.EntryRepository. The partial unique
// index on (employee_id, date) WHERE is_manual = FALSE enforces the
// one-auto-row-per-day invariant.
func (r *penaltyRepository) UpsertAuto(ctx context.Context, entry penalty.Entry) (penalty.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO penalty_entries (
			employee_id, company_id, date, month, year, minutes_late,
			deduction, rate_used, is_manual, description
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, FALSE, $9)
		ON CONFLICT (employee_id, date) WHERE is_manual = FALSE DO UPDATE SET
			minutes_late = EXCLUDED.minutes_late,
			deduction = EXCLUDED.deduction,
			rate_used = EXCLUDED.rate_used,
			description = EXCLUDED.description,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		entry.EmployeeID,
		entry.CompanyID,
		entry.Date,
		entry.Month,
		entry.Year,
		entry.MinutesLate,
		entry.Deduction,
		entry.RateUsed,
		entry.Description,
	).Scan(&entry.ID, &entry.CreatedAt, &entry.UpdatedAt)

	if err != nil {
		return penalty.Entry{}, fmt.Errorf("failed to upsert auto penalty: %w", err)
	}

	return entry, nil
}

// DeleteAutoByEmployeeAndDate implements penalty.EntryRepository.
func (r *penaltyRepository) DeleteAutoByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, companyID string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `
		DELETE FROM penalty_entries
		WHERE employee_id = $1 AND date = $2 AND company_id = $3 AND is_manual = FALSE
	`, employeeID, date, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete auto penalty: %w", err)
	}

	return nil
}

// SumMonthExcludingAuto implements penalty.EntryRepository.
func (r *penaltyRepository) SumMonthExcludingAuto(ctx context.Context, employeeID string, month, year int, excludeDate time.Time, companyID string) (decimal.Decimal, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(deduction), 0)
		FROM penalty_entries
		WHERE employee_id = $1 AND month = $2 AND year = $3 AND company_id = $4
		  AND NOT (is_manual = FALSE AND date = $5)
	`

	var total decimal.Decimal
	err := q.QueryRow(ctx, query, employeeID, month, year, companyID, excludeDate).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum monthly penalties: %w", err)
	}

	return total, nil
}

// CreateManual implements penalty.EntryRepository.
func (r *penaltyRepository) CreateManual(ctx context.Context, entry penalty.Entry) (penalty.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO penalty_entries (
			employee_id, company_id, date, month, year, minutes_late,
			deduction, rate_used, is_manual, description
		) VALUES ($1, $2, $3, $4, $5, 0, $6, 0, TRUE, $7)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		entry.EmployeeID,
		entry.CompanyID,
		entry.Date,
		entry.Month,
		entry.Year,
		entry.Deduction,
		entry.Description,
	).Scan(&entry.ID, &entry.CreatedAt, &entry.UpdatedAt)

	if err != nil {
		return penalty.Entry{}, fmt.Errorf("failed to create manual penalty: %w", err)
	}
	entry.IsManual = true

	return entry, nil
}

// TotalsForRange implements penalty.EntryRepository.
func (r *penaltyRepository) TotalsForRange(ctx context.Context, companyID string, from, to time.Time) (map[string]decimal.Decimal, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT employee_id, COALESCE(SUM(deduction), 0)
		FROM penalty_entries
		WHERE company_id = $1 AND date BETWEEN $2 AND $3
		GROUP BY employee_id
	`

	rows, err := q.Query(ctx, query, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to total penalties: %w", err)
	}
	defer rows.Close()

	totals := make(map[string]decimal.Decimal)
	for rows.Next() {
		var id string
		var sum decimal.Decimal
		if err := rows.Scan(&id, &sum); err != nil {
			return nil, fmt.Errorf("failed to scan penalty total: %w", err)
		}
		totals[id] = sum
	}

	return totals, rows.Err()
}
