package settings

import "context"

// SettingsService is the admin-facing surface for tunables. Reads go
// through the same precedence chain the engines use, so what an admin
// sees is what the engines will apply.
type SettingsService interface {
	// Get returns the effective value of key for the tenant, or
	// ErrSettingNotFound when no layer carries it.
	Get(ctx context.Context, companyID, key string) (string, error)

	// Upsert writes a tenant override, or the global one when the
	// request says so.
	Upsert(ctx context.Context, companyID string, req UpsertSettingRequest) error
}
