package services

import (
	"context"

	"boutique/internal/models"
	"boutique/internal/repositories"

	"gorm.io/datatypes"
)

// BannerInput is the request shape for creating or updating a banner.
type BannerInput struct {
	Title        string                 `json:"title"`
	Text         string                 `json:"text"`
	MediaURL     string                 `json:"mediaUrl" validate:"required"`
	MediaType    string                 `json:"mediaType" validate:"required,oneof=image video"`
	DisplayOrder int                    `json:"displayOrder"`
	Active       bool                   `json:"active"`
	Position     string                 `json:"position" validate:"omitempty,oneof=left center right"`
	Animation    string                 `json:"animation" validate:"omitempty,oneof=none fade slide zoom"`
	Overlay      string                 `json:"overlay" validate:"omitempty,oneof=none light dark gradient"`
	Elements     []models.BannerElement `json:"elements"`
}

// BannerService handles business logic related to banners.
type BannerService struct {
	store repositories.Store
}

// NewBannerService creates a new BannerService.
func NewBannerService(store repositories.Store) *BannerService {
	return &BannerService{store: store}
}

func (in BannerInput) apply(b *models.Banner) {
	b.Title = in.Title
	b.Text = in.Text
	b.MediaURL = in.MediaURL
	b.MediaType = in.MediaType
	b.DisplayOrder = in.DisplayOrder
	b.Active = in.Active
	b.Position = in.Position
	b.Animation = in.Animation
	b.Overlay = in.Overlay
	b.Elements = datatypes.JSONSlice[models.BannerElement](in.Elements)
}

// GetAllBanners retrieves all banners ordered for display.
func (s *BannerService) GetAllBanners(ctx context.Context) ([]models.Banner, error) {
	return s.store.Banners().GetAll(ctx)
}

// GetActiveBanners retrieves active banners ordered for display.
func (s *BannerService) GetActiveBanners(ctx context.Context) ([]models.Banner, error) {
	return s.store.Banners().GetActive(ctx)
}

// GetBannerByID retrieves a single banner.
func (s *BannerService) GetBannerByID(ctx context.Context, id uint) (*models.Banner, error) {
	return s.store.Banners().GetByID(ctx, id)
}

// CreateBanner creates a banner.
func (s *BannerService) CreateBanner(ctx context.Context, in BannerInput) (*models.Banner, error) {
	banner := &models.Banner{}
	in.apply(banner)
	if err := s.store.Banners().Create(ctx, banner); err != nil {
		return nil, err
	}
	return banner, nil
}

// UpdateBanner updates a banner.
func (s *BannerService) UpdateBanner(ctx context.Context, id uint, in BannerInput) (*models.Banner, error) {
	banner, err := s.store.Banners().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	in.apply(banner)
	if err := s.store.Banners().Update(ctx, banner); err != nil {
		return nil, err
	}
	return banner, nil
}

// DeleteBanner deletes a banner.
func (s *BannerService) DeleteBanner(ctx context.Context, id uint) error {
	return s.store.Banners().Delete(ctx, id)
}

// ReorderBanners rewrites display order to match the given ID sequence.
// Unknown IDs fail the whole call; nothing is partially reordered.
func (s *BannerService) ReorderBanners(ctx context.Context, ids []uint) ([]models.Banner, error) {
	if len(ids) == 0 {
		return nil, validationError("banner ID list must not be empty")
	}
	err := s.store.RunInTransaction(ctx, func(tx repositories.Store) error {
		banners := make([]*models.Banner, 0, len(ids))
		for _, id := range ids {
			banner, err := tx.Banners().GetByID(ctx, id)
			if err != nil {
				return err
			}
			banners = append(banners, banner)
		}
		for i, banner := range banners {
			banner.DisplayOrder = i
			if err := tx.Banners().Update(ctx, banner); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.store.Banners().GetAll(ctx)
}
