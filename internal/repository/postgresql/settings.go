package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/wagewise-hq/wagewise-backend-go/internal/domain/settings"
	"github.com/wagewise-hq/wagewise-backend-go/internal/pkg/database"
)

type settingsRepository struct {
	db *database.DB
}

func NewSettingsRepository(db *database.DB) settings.SettingsRepository {
	return &settingsRepository{db: db}
}

// GetOverride implements settings.SettingsRepository.
func (r *settingsRepository) GetOverride(ctx context.Context, key string, companyID *string) (string, error) {
	q := GetQuerier(ctx, r.db)

	var query string
	var row pgx.Row
	if companyID != nil {
		query = `SELECT value FROM setting_overrides WHERE key = $1 AND company_id = $2`
		row = q.QueryRow(ctx, query, key, *companyID)
	} else {
		query = `SELECT value FROM setting_overrides WHERE key = $1 AND company_id IS NULL`
		row = q.QueryRow(ctx, query, key)
	}

	var value string
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", settings.ErrSettingNotFound
		}
		return "", fmt.Errorf("failed to get setting override: %w", err)
	}

	return value, nil
}

// GetLegacy implements settings.SettingsRepository.
func (r *settingsRepository) GetLegacy(ctx context.Context, key string) (string, error) {
	q := GetQuerier(ctx, r.db)

	var value string
	err := q.QueryRow(ctx, `SELECT value FROM legacy_settings WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", settings.ErrSettingNotFound
		}
		return "", fmt.Errorf("failed to get legacy setting: %w", err)
	}

	return value, nil
}

// Upsert implements settings.SettingsRepository.
func (r *settingsRepository) Upsert(ctx context.Context, key, value string, companyID *string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO setting_overrides (key, company_id, value)
		VALUES ($1, $2, $3)
		ON CONFLICT (key, company_id) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = NOW()
	`

	if _, err := q.Exec(ctx, query, key, companyID, value); err != nil {
		return fmt.Errorf("failed to upsert setting: %w", err)
	}

	return nil
}
