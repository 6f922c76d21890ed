package repositories

import (
	"context"
	"errors"
	"fmt"

	"boutique/internal/models"

	"gorm.io/gorm"
)

// gormBannerRepository is the GORM implementation of BannerRepository.
type gormBannerRepository struct {
	db *gorm.DB
}

func (r *gormBannerRepository) GetAll(ctx context.Context) ([]models.Banner, error) {
	var banners []models.Banner
	if err := r.db.WithContext(ctx).Order("display_order, id").Find(&banners).Error; err != nil {
		return nil, fmt.Errorf("failed to get banners: %w", err)
	}
	return banners, nil
}

func (r *gormBannerRepository) GetActive(ctx context.Context) ([]models.Banner, error) {
	var banners []models.Banner
	err := r.db.WithContext(ctx).Where("active = ?", true).Order("display_order, id").Find(&banners).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get active banners: %w", err)
	}
	return banners, nil
}

func (r *gormBannerRepository) GetByID(ctx context.Context, id uint) (*models.Banner, error) {
	var banner models.Banner
	err := r.db.WithContext(ctx).First(&banner, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("banner with ID %d %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get banner by ID %d: %w", id, err)
	}
	return &banner, nil
}

func (r *gormBannerRepository) Create(ctx context.Context, banner *models.Banner) error {
	if err := r.db.WithContext(ctx).Create(banner).Error; err != nil {
		return fmt.Errorf("failed to create banner: %w", err)
	}
	return nil
}

func (r *gormBannerRepository) Update(ctx context.Context, banner *models.Banner) error {
	res := r.db.WithContext(ctx).Save(banner)
	if res.Error != nil {
		return fmt.Errorf("failed to update banner: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("banner with ID %d %w", banner.ID, ErrNotFound)
	}
	return nil
}

func (r *gormBannerRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Banner{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete banner: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("banner with ID %d %w", id, ErrNotFound)
	}
	return nil
}
