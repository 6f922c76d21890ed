package services_test

import (
	"context"
	"testing"

	"boutique/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSetting_CreatesDefaultOnFirstRead(t *testing.T) {
	store := newTestStore(t)
	svc := services.NewSettingsService(store)
	ctx := context.Background()

	setting, err := svc.GetSetting(ctx, services.SettingFeaturedCount)
	require.NoError(t, err)
	assert.Equal(t, "8", setting.Value)

	// The default is persisted, so the second read hits the stored row.
	again, err := svc.GetSetting(ctx, services.SettingFeaturedCount)
	require.NoError(t, err)
	assert.Equal(t, "8", again.Value)
}

func TestGetSetting_UnknownKeyDefaultsEmpty(t *testing.T) {
	store := newTestStore(t)
	svc := services.NewSettingsService(store)

	setting, err := svc.GetSetting(context.Background(), "custom_key")
	require.NoError(t, err)
	assert.Equal(t, "", setting.Value)
}

func TestSetSetting_OverridesDefault(t *testing.T) {
	store := newTestStore(t)
	svc := services.NewSettingsService(store)
	ctx := context.Background()

	_, err := svc.SetSetting(ctx, services.SettingAdminPath, "backoffice")
	require.NoError(t, err)

	setting, err := svc.GetSetting(ctx, services.SettingAdminPath)
	require.NoError(t, err)
	assert.Equal(t, "backoffice", setting.Value)

	// Updating an existing key upserts rather than duplicating.
	_, err = svc.SetSetting(ctx, services.SettingAdminPath, "ops")
	require.NoError(t, err)
	setting, err = svc.GetSetting(ctx, services.SettingAdminPath)
	require.NoError(t, err)
	assert.Equal(t, "ops", setting.Value)
}
