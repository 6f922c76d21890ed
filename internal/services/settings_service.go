package services

import (
	"context"
	"errors"

	"boutique/internal/models"
	"boutique/internal/repositories"
)

// Setting keys with their lazily-created defaults.
const (
	SettingAdminPath     = "admin-path"
	SettingFeaturedCount = "featured-count"
	SettingStoreName     = "store-name"
)

var settingDefaults = map[string]string{
	SettingAdminPath:     "admin",
	SettingFeaturedCount: "8",
	SettingStoreName:     "Boutique",
}

// SettingsService handles the admin-configurable key/value store.
type SettingsService struct {
	store repositories.Store
}

// NewSettingsService creates a new SettingsService.
func NewSettingsService(store repositories.Store) *SettingsService {
	return &SettingsService{store: store}
}

// GetSetting returns the value for key, creating the row with its default
// value on first read. Unknown keys default to the empty string.
func (s *SettingsService) GetSetting(ctx context.Context, key string) (*models.AppSetting, error) {
	setting, err := s.store.Settings().Get(ctx, key)
	if err == nil {
		return setting, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	setting = &models.AppSetting{Key: key, Value: settingDefaults[key]}
	if err := s.store.Settings().Upsert(ctx, setting); err != nil {
		return nil, err
	}
	return setting, nil
}

// SetSetting writes the value for key. Last write wins.
func (s *SettingsService) SetSetting(ctx context.Context, key, value string) (*models.AppSetting, error) {
	setting := &models.AppSetting{Key: key, Value: value}
	if err := s.store.Settings().Upsert(ctx, setting); err != nil {
		return nil, err
	}
	return s.store.Settings().Get(ctx, key)
}
