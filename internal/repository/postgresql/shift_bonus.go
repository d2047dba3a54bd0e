package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/wagewise-hq/wagewise-backend-go/internal/domain/shiftbonus"
	"github.com/wagewise-hq/wagewise-backend-go/internal/pkg/database"
)

type shiftBonusRepository struct {
	db *database.DB
}

func NewShiftBonusRepository(db *database.DB) shiftbonus.EntryRepository {
	return &shiftBonusRepository{db: db}
}

// GetByEmployeeAndDate implements shiftbonus.EntryRepository.
func (r *shiftBonusRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, companyID string) (*shiftbonus.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, company_id, date, bonus_hours, description, created_at, updated_at
		FROM shift_bonus_entries
		WHERE employee_id = $1 AND date = $2 AND company_id = $3
		LIMIT 1
	`

	var entry shiftbonus.Entry
	err := q.QueryRow(ctx, query, employeeID, date, companyID).Scan(
		&entry.ID, &entry.EmployeeID, &entry.CompanyID, &entry.Date,
		&entry.BonusHours, &entry.Description, &entry.CreatedAt, &entry.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil // no entry for this day
		}
		return nil, fmt.Errorf("failed to get shift bonus entry: %w", err)
	}

	return &entry, nil
}

// Create implements shiftbonus.EntryRepository.
func (r *shiftBonusRepository) Create(ctx context.Context, entry shiftbonus.Entry) (shiftbonus.Entry, error) {
	q := GetQuerier(ctx, r.db)

	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}

	query := `
		INSERT INTO shift_bonus_entries (id, employee_id, company_id, date, bonus_hours, description)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		entry.ID,
		entry.EmployeeID,
		entry.CompanyID,
		entry.Date,
		entry.BonusHours,
		entry.Description,
	).Scan(&entry.CreatedAt, &entry.UpdatedAt)

	if err != nil {
		return shiftbonus.Entry{}, fmt.Errorf("failed to create shift bonus entry: %w", err)
	}

	return entry, nil
}

// Update implements shiftbonus.EntryRepository.
func (r *shiftBonusRepository) Update(ctx context.Context, entry shiftbonus.Entry) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE shift_bonus_entries SET
			bonus_hours = $1,
			description = $2,
			updated_at = NOW()
		WHERE employee_id = $3 AND date = $4 AND company_id = $5
	`

	tag, err := q.Exec(ctx, query, entry.BonusHours, entry.Description, entry.EmployeeID, entry.Date, entry.CompanyID)
	if err != nil {
		return fmt.Errorf("failed to update shift bonus entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shiftbonus.ErrEntryNotFound
	}

	return nil
}

// DeleteByEmployeeAndDate implements shiftbonus.EntryRepository.
func (r *shiftBonusRepository) DeleteByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, companyID string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `
		DELETE FROM shift_bonus_entries
		WHERE employee_id = $1 AND date = $2 AND company_id = $3
	`, employeeID, date, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete shift bonus entry: %w", err)
	}

	return nil
}

// ListLedgerDaysWithoutEntry implements shiftbonus.EntryRepository.
func (r *shiftBonusRepository) ListLedgerDaysWithoutEntry(ctx context.Context, companyID string, from, to time.Time) ([]shiftbonus.DayRef, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT a.employee_id, a.date
		FROM attendance_days a
		LEFT JOIN shift_bonus_entries b
		  ON b.employee_id = a.employee_id AND b.date = a.date
		WHERE a.company_id = $1
		  AND a.date BETWEEN $2 AND $3
		  AND b.id IS NULL
		ORDER BY a.employee_id, a.date
	`

	rows, err := q.Query(ctx, query, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger days without bonus entry: %w", err)
	}
	defer rows.Close()

	var refs []shiftbonus.DayRef
	for rows.Next() {
		var ref shiftbonus.DayRef
		if err := rows.Scan(&ref.EmployeeID, &ref.Date); err != nil {
			return nil, fmt.Errorf("failed to scan day ref: %w", err)
		}
		refs = append(refs, ref)
	}

	return refs, rows.Err()
}
