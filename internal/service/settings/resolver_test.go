package settings

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domain "github.com/wagewise-hq/wagewise-backend-go/internal/domain/settings"
)

type fakeSettingsRepo struct {
	tenant map[string]map[string]string // companyID -> key -> value
	global map[string]string
	legacy map[string]string
	err    error
}

func newFakeSettingsRepo() *fakeSettingsRepo {
	return &fakeSettingsRepo{
		tenant: make(map[string]map[string]string),
		global: make(map[string]string),
		legacy: make(map[string]string),
	}
}

func (f *fakeSettingsRepo) GetOverride(_ context.Context, key string, companyID *string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if companyID == nil {
		if v, ok := f.global[key]; ok {
			return v, nil
		}
		return "", domain.ErrSettingNotFound
	}
	if v, ok := f.tenant[*companyID][key]; ok {
		return v, nil
	}
	return "", domain.ErrSettingNotFound
}

func (f *fakeSettingsRepo) GetLegacy(_ context.Context, key string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if v, ok := f.legacy[key]; ok {
		return v, nil
	}
	return "", domain.ErrSettingNotFound
}

func (f *fakeSettingsRepo) Upsert(_ context.Context, key, value string, companyID *string) error {
	if companyID == nil {
		f.global[key] = value
		return nil
	}
	if f.tenant[*companyID] == nil {
		f.tenant[*companyID] = make(map[string]string)
	}
	f.tenant[*companyID][key] = value
	return nil
}

func TestResolver_Precedence(t *testing.T) {
	ctx := context.Background()
	repo := newFakeSettingsRepo()
	resolver := NewResolver(repo)

	const key = domain.KeyLateMonthlyThreshold

	// Nothing set anywhere: default wins.
	assert.Equal(t, "300", resolver.Resolve(ctx, key, "acme", "300"))

	// Legacy beats the default.
	repo.legacy[key] = "250"
	assert.Equal(t, "250", resolver.Resolve(ctx, key, "acme", "300"))

	// Global beats legacy.
	repo.global[key] = "280"
	assert.Equal(t, "280", resolver.Resolve(ctx, key, "acme", "300"))

	// Tenant beats global, and only for its own tenant.
	require.NoError(t, repo.Upsert(ctx, key, "320", strPtr("acme")))
	assert.Equal(t, "320", resolver.Resolve(ctx, key, "acme", "300"))
	assert.Equal(t, "280", resolver.Resolve(ctx, key, "globex", "300"))
}

func TestResolver_MalformedValueFallsBackToDefault(t *testing.T) {
	ctx := context.Background()
	repo := newFakeSettingsRepo()
	repo.global[domain.KeyLateRatePerMinute] = "not-a-number"
	repo.global[domain.KeyStreakDays] = "four"
	resolver := NewResolver(repo)

	def := decimal.RequireFromString("2.5")
	assert.True(t, def.Equal(resolver.ResolveDecimal(ctx, domain.KeyLateRatePerMinute, "acme", def)))
	assert.Equal(t, 4, resolver.ResolveInt(ctx, domain.KeyStreakDays, "acme", 4))
}

func TestResolver_InfrastructureErrorIsTreatedAsUnset(t *testing.T) {
	ctx := context.Background()
	repo := newFakeSettingsRepo()
	repo.err = errors.New("connection refused")
	resolver := NewResolver(repo)

	assert.Equal(t, "12", resolver.Resolve(ctx, domain.KeyShiftBonusMinHours, "acme", "12"))
}

func TestResolver_EmptyCompanySkipsTenantLayer(t *testing.T) {
	ctx := context.Background()
	repo := newFakeSettingsRepo()
	repo.global[domain.KeyShiftBonusMinHours] = "10"
	resolver := NewResolver(repo)

	assert.Equal(t, "10", resolver.Resolve(ctx, domain.KeyShiftBonusMinHours, "", "12"))
}

func strPtr(s string) *string { return &s }
