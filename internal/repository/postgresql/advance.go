package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wagewise-hq/wagewise-backend-go/internal/domain/advance"
	"github.com/wagewise-hq/wagewise-backend-go/internal/pkg/database"
)

type advanceRepository struct {
	db *database.DB
}

func NewAdvanceRepository(db *database.DB) advance.EntryRepository {
	return &advanceRepository{db: db}
}

// Create implements advance.EntryRepository.
func (r *advanceRepository) Create(ctx context.Context, entry advance.Entry) (advance.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO salary_advances (employee_id, company_id, date, amount, note)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		entry.EmployeeID,
		entry.CompanyID,
		entry.Date,
		entry.Amount,
		entry.Note,
	).Scan(&entry.ID, &entry.CreatedAt)

	if err != nil {
		return advance.Entry{}, fmt.Errorf("failed to create salary advance: %w", err)
	}

	return entry, nil
}

// TotalsForRange implements advance.EntryRepository.
func (r *advanceRepository) TotalsForRange(ctx context.Context, companyID string, from, to time.Time) (map[string]decimal.Decimal, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT employee_id, COALESCE(SUM(amount), 0)
		FROM salary_advances
		WHERE company_id = $1 AND date BETWEEN $2 AND $3
		GROUP BY employee_id
	`

	rows, err := q.Query(ctx, query, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to total salary advances: %w", err)
	}
	defer rows.Close()

	totals := make(map[string]decimal.Decimal)
	for rows.Next() {
		var id string
		var sum decimal.Decimal
		if err := rows.Scan(&id, &sum); err != nil {
			return nil, fmt.Errorf("failed to scan advance total: %w", err)
		}
		totals[id] = sum
	}

	return totals, rows.Err()
}
