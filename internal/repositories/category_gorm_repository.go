package repositories

import (
	"context"
	"errors"
	"fmt"

	"boutique/internal/models"

	"gorm.io/gorm"
)

// gormCategoryRepository is the GORM implementation of CategoryRepository.
type gormCategoryRepository struct {
	db *gorm.DB
}

func (r *gormCategoryRepository) GetAll(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.WithContext(ctx).Order("id").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	return categories, nil
}

func (r *gormCategoryRepository) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("category with ID %d %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get category by ID %d: %w", id, err)
	}
	return &category, nil
}

func (r *gormCategoryRepository) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var category models.Category
	err := r.db.WithContext(ctx).First(&category, "slug = ?", slug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("category with slug %s %w", slug, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get category by slug %s: %w", slug, err)
	}
	return &category, nil
}

func (r *gormCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	if err := r.db.WithContext(ctx).Omit("Products").Create(category).Error; err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

func (r *gormCategoryRepository) Update(ctx context.Context, category *models.Category) error {
	res := r.db.WithContext(ctx).Omit("Products").Save(category)
	if res.Error != nil {
		return fmt.Errorf("failed to update category: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("category with ID %d %w", category.ID, ErrNotFound)
	}
	return nil
}

// Delete removes the category and its membership rows. Products themselves
// are untouched; ones that were only in this category become uncategorized.
func (r *gormCategoryRepository) Delete(ctx context.Context, id uint) error {
	category := models.Category{ID: id}
	if err := r.db.WithContext(ctx).Model(&category).Association("Products").Clear(); err != nil {
		return fmt.Errorf("failed to clear category products: %w", err)
	}
	res := r.db.WithContext(ctx).Delete(&models.Category{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete category: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("category with ID %d %w", id, ErrNotFound)
	}
	return nil
}

func (r *gormCategoryRepository) ClearExclusiveFlags(ctx context.Context, exceptID uint, topSelling, featured bool) error {
	if topSelling {
		err := r.db.WithContext(ctx).Model(&models.Category{}).
			Where("id <> ? AND is_top_selling = ?", exceptID, true).
			Update("is_top_selling", false).Error
		if err != nil {
			return fmt.Errorf("failed to clear top-selling flag: %w", err)
		}
	}
	if featured {
		err := r.db.WithContext(ctx).Model(&models.Category{}).
			Where("id <> ? AND is_featured = ?", exceptID, true).
			Update("is_featured", false).Error
		if err != nil {
			return fmt.Errorf("failed to clear featured flag: %w", err)
		}
	}
	return nil
}

// SetProducts replaces the category's product membership in one shot.
func (r *gormCategoryRepository) SetProducts(ctx context.Context, categoryID uint, productIDs []uint) error {
	var products []models.Product
	if len(productIDs) > 0 {
		if err := r.db.WithContext(ctx).Where("id IN ?", productIDs).Find(&products).Error; err != nil {
			return fmt.Errorf("failed to load products: %w", err)
		}
		if len(products) != len(productIDs) {
			return fmt.Errorf("one or more products %w", ErrNotFound)
		}
	}
	category := models.Category{ID: categoryID}
	if err := r.db.WithContext(ctx).Model(&category).Association("Products").Replace(products); err != nil {
		return fmt.Errorf("failed to set category products: %w", err)
	}
	return nil
}
