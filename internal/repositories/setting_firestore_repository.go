package repositories

import (
	"context"
	"fmt"
	"time"

	"boutique/internal/models"
)

// settingDoc is the Firestore shape of an app setting; the document ID is
// the setting key.
type settingDoc struct {
	Key       string
	Value     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// firestoreSettingRepository is the Firestore implementation of
// SettingRepository.
type firestoreSettingRepository struct {
	store *firestoreStore
}

func (r *firestoreSettingRepository) Get(ctx context.Context, key string) (*models.AppSetting, error) {
	snap, err := r.store.getDoc(ctx, r.store.client.Collection("settings").Doc(key))
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("setting %s %w", key, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get setting %s: %w", key, err)
	}
	var d settingDoc
	if err := snap.DataTo(&d); err != nil {
		return nil, fmt.Errorf("failed to decode setting %s: %w", key, err)
	}
	return &models.AppSetting{
		Key:       d.Key,
		Value:     d.Value,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}, nil
}

func (r *firestoreSettingRepository) Upsert(ctx context.Context, setting *models.AppSetting) error {
	now := time.Now()
	if setting.CreatedAt.IsZero() {
		setting.CreatedAt = now
	}
	setting.UpdatedAt = now
	ref := r.store.client.Collection("settings").Doc(setting.Key)
	err := r.store.setDoc(ctx, ref, settingDoc{
		Key:       setting.Key,
		Value:     setting.Value,
		CreatedAt: setting.CreatedAt,
		UpdatedAt: setting.UpdatedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to upsert setting %s: %w", setting.Key, err)
	}
	return nil
}
