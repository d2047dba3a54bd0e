package settings

import "context"

type SettingsRepository interface {
	// GetOverride looks up a key in the override table. companyID nil
	// selects the global row. Returns ErrSettingNotFound when absent.
	GetOverride(ctx context.Context, key string, companyID *string) (string, error)

	// GetLegacy looks up a key in the pre-multi-tenant settings table,
	// kept for installations that never migrated.
	GetLegacy(ctx context.Context, key string) (string, error)

	// Upsert writes an override. companyID nil writes the global row.
	Upsert(ctx context.Context, key, value string, companyID *string) error
}
