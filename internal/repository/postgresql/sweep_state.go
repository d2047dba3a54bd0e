package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/wagewise-hq/wagewise-backend-go/internal/domain/sweep"
	"github.com/wagewise-hq/wagewise-backend-go/internal/pkg/database"
)

type sweepStateRepository struct {
	db *database.DB
}

func NewSweepStateRepository(db *database.DB) sweep.StateRepository {
	return &sweepStateRepository{db: db}
}

// GetLastProcessed implements sweep.StateRepository.
func (r *sweepStateRepository) GetLastProcessed(ctx context.Context, name string) (*time.Time, error) {
	q := GetQuerier(ctx, r.db)

	var day time.Time
	err := q.QueryRow(ctx, `SELECT last_processed FROM sweep_state WHERE name = $1`, name).Scan(&day)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // sweep has never run
		}
		return nil, fmt.Errorf("failed to get sweep state: %w", err)
	}

	return &day, nil
}

// SetLastProcessed implements sweep.StateRepository.
func (r *sweepStateRepository) SetLastProcessed(ctx context.Context, name string, day time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO sweep_state (name, last_processed)
		VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET
			last_processed = EXCLUDED.last_processed,
			updated_at = NOW()
	`

	if _, err := q.Exec(ctx, query, name, day); err != nil {
		return fmt.Errorf("failed to set sweep state: %w", err)
	}

	return nil
}
