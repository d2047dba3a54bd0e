package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/wagewise-hq/wagewise-backend-go/internal/domain/settings"
)

type settingsService struct {
	repo settings.SettingsRepository
}

func NewSettingsService(repo settings.SettingsRepository) settings.SettingsService {
	return &settingsService{repo: repo}
}

// Get implements settings.SettingsService.
func (s *settingsService) Get(ctx context.Context, companyID, key string) (string, error) {
	lookups := []func() (string, error){
		func() (string, error) { return s.repo.GetOverride(ctx, key, &companyID) },
		func() (string, error) { return s.repo.GetOverride(ctx, key, nil) },
		func() (string, error) { return s.repo.GetLegacy(ctx, key) },
	}

	for _, lookup := range lookups {
		value, err := lookup()
		if err == nil {
			return value, nil
		}
		if !errors.Is(err, settings.ErrSettingNotFound) {
			return "", fmt.Errorf("failed to resolve setting: %w", err)
		}
	}

	return "", settings.ErrSettingNotFound
}

// Upsert implements settings.SettingsService.
func (s *settingsService) Upsert(ctx context.Context, companyID string, req settings.UpsertSettingRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	scope := &companyID
	if req.Global {
		scope = nil
	}

	if err := s.repo.Upsert(ctx, req.Key, req.Value, scope); err != nil {
		return fmt.Errorf("failed to upsert setting: %w", err)
	}

	return nil
}

var _ settings.SettingsService = (*settingsService)(nil)
