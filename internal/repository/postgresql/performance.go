package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/wagewise-hq/wagewise-backend-go/internal/domain/performance"
	"github.com/wagewise-hq/wagewise-backend-go/internal/pkg/database"
)

type performanceRepository struct {
	db *database.DB
}

func NewPerformanceRepository(db *database.DB) performance.EventRepository {
	return &performanceRepository{db: db}
}

// ExistsForDay implements performance.EventRepository.
func (r *performanceRepository) ExistsForDay(ctx context.Context, employeeID, triggerReason string, day time.Time, companyID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM performance_events
			WHERE employee_id = $1
			  AND trigger_reason = $2
			  AND created_at::date = $3::date
			  AND company_id = $4
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, triggerReason, day, companyID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check event existence: %w", err)
	}

	return exists, nil
}

// Create implements performance.EventRepository.
func (r *performanceRepository) Create(ctx context.Context, event performance.Event) (performance.Event, error) {
	q := GetQuerier(ctx, r.db)

	metric, err := json.Marshal(event.MetricData)
	if err != nil {
		return performance.Event{}, fmt.Errorf("failed to marshal metric data: %w", err)
	}

	query := `
		INSERT INTO performance_events (
			employee_id, company_id, kind, trigger_reason, metric_data,
			is_on_leaderboard, admin_status
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err = q.QueryRow(ctx, query,
		event.EmployeeID,
		event.CompanyID,
		string(event.Kind),
		event.TriggerReason,
		metric,
		event.OnLeaderboard,
		event.AdminStatus,
	).Scan(&event.ID, &event.CreatedAt)

	if err != nil {
		return performance.Event{}, fmt.Errorf("failed to create performance event: %w", err)
	}

	return event, nil
}

// UpdateAdminStatus implements performance.EventRepository.
func (r *performanceRepository) UpdateAdminStatus(ctx context.Context, id string, status performance.AdminStatus, companyID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE performance_events SET admin_status = $1
		WHERE id = $2 AND company_id = $3 AND kind = 'Action'
	`, string(status), id, companyID)
	if err != nil {
		return fmt.Errorf("failed to update admin status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return performance.ErrEventNotFound
	}

	return nil
}

// ListByCompany implements performance.EventRepository.
func (r *performanceRepository) ListByCompany(ctx context.Context, companyID string, limit int) ([]performance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, company_id, kind, trigger_reason, metric_data,
			   is_on_leaderboard, admin_status, created_at
		FROM performance_events
		WHERE company_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := q.Query(ctx, query, companyID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list performance events: %w", err)
	}
	defer rows.Close()

	var events []performance.Event
	for rows.Next() {
		var e performance.Event
		var kind string
		var metric []byte
		if err := rows.Scan(&e.ID, &e.EmployeeID, &e.CompanyID, &kind, &e.TriggerReason,
			&metric, &e.OnLeaderboard, &e.AdminStatus, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan performance event: %w", err)
		}
		e.Kind = performance.Kind(kind)
		if len(metric) > 0 {
			if err := json.Unmarshal(metric, &e.MetricData); err != nil {
				return nil, fmt.Errorf("failed to unmarshal metric data: %w", err)
			}
		}
		events = append(events, e)
	}

	return events, rows.Err()
}
