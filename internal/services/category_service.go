package services

import (
	"context"

	"boutique/internal/models"
	"boutique/internal/repositories"
)

// CategoryInput is the request shape for creating or updating a category.
type CategoryInput struct {
	Name         string `json:"name" validate:"required,min=1,max=120"`
	Slug         string `json:"slug" validate:"required,min=1,max=120"`
	Description  string `json:"description"`
	IsTopSelling bool   `json:"isTopSelling"`
	IsFeatured   bool   `json:"isFeatured"`
}

// CategoryService handles business logic related to categories.
type CategoryService struct {
	store repositories.Store
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(store repositories.Store) *CategoryService {
	return &CategoryService{store: store}
}

// GetAllCategories retrieves all categories.
func (s *CategoryService) GetAllCategories(ctx context.Context) ([]models.Category, error) {
	return s.store.Categories().GetAll(ctx)
}

// GetCategoryByID retrieves a single category.
func (s *CategoryService) GetCategoryByID(ctx context.Context, id uint) (*models.Category, error) {
	return s.store.Categories().GetByID(ctx, id)
}

// CreateCategory creates a category. When an exclusivity flag is requested
// it is cleared on every other category inside the same transaction as the
// create, so at most one holder exists at any time.
func (s *CategoryService) CreateCategory(ctx context.Context, in CategoryInput) (*models.Category, error) {
	category := &models.Category{
		Name:         in.Name,
		Slug:         in.Slug,
		Description:  in.Description,
		IsTopSelling: in.IsTopSelling,
		IsFeatured:   in.IsFeatured,
	}
	err := s.store.RunInTransaction(ctx, func(tx repositories.Store) error {
		if in.IsTopSelling || in.IsFeatured {
			if err := tx.Categories().ClearExclusiveFlags(ctx, 0, in.IsTopSelling, in.IsFeatured); err != nil {
				return err
			}
		}
		return tx.Categories().Create(ctx, category)
	})
	if err != nil {
		return nil, err
	}
	return category, nil
}

// UpdateCategory updates a category, keeping the exclusivity flags unique.
// Setting a flag on the category that already holds it is idempotent: the
// clear step excludes the target by ID.
func (s *CategoryService) UpdateCategory(ctx context.Context, id uint, in CategoryInput) (*models.Category, error) {
	err := s.store.RunInTransaction(ctx, func(tx repositories.Store) error {
		category, err := tx.Categories().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if in.IsTopSelling || in.IsFeatured {
			if err := tx.Categories().ClearExclusiveFlags(ctx, id, in.IsTopSelling, in.IsFeatured); err != nil {
				return err
			}
		}
		category.Name = in.Name
		category.Slug = in.Slug
		category.Description = in.Description
		category.IsTopSelling = in.IsTopSelling
		category.IsFeatured = in.IsFeatured
		return tx.Categories().Update(ctx, category)
	})
	if err != nil {
		return nil, err
	}
	return s.store.Categories().GetByID(ctx, id)
}

// SetCategoryProducts replaces the category's product membership in one
// transaction.
func (s *CategoryService) SetCategoryProducts(ctx context.Context, id uint, productIDs []uint) (*models.Category, error) {
	err := s.store.RunInTransaction(ctx, func(tx repositories.Store) error {
		return tx.Categories().SetProducts(ctx, id, productIDs)
	})
	if err != nil {
		return nil, err
	}
	return s.store.Categories().GetByID(ctx, id)
}

// DeleteCategory removes a category; member products survive and merely
// lose the membership.
func (s *CategoryService) DeleteCategory(ctx context.Context, id uint) error {
	return s.store.RunInTransaction(ctx, func(tx repositories.Store) error {
		return tx.Categories().Delete(ctx, id)
	})
}
