package repositories

import (
	"context"
	"errors"
	"fmt"

	"boutique/internal/models"

	"gorm.io/gorm"
)

// gormProductRepository is the GORM implementation of ProductRepository.
type gormProductRepository struct {
	db *gorm.DB
}

// GetAll retrieves products, optionally narrowed by category slug and
// featured flag. Categories are preloaded for serialization.
func (r *gormProductRepository) GetAll(ctx context.Context, filter ProductFilter) ([]models.Product, error) {
	q := r.db.WithContext(ctx).Model(&models.Product{}).Preload("Categories")
	if filter.CategorySlug != "" {
		q = q.Joins("JOIN product_categories pc ON pc.product_id = products.id").
			Joins("JOIN categories c ON c.id = pc.category_id").
			Where("c.slug = ?", filter.CategorySlug)
	}
	if filter.FeaturedOnly {
		q = q.Where("featured = ?", true)
	}

	var products []models.Product
	if err := q.Order("products.id").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product with its categories.
func (r *gormProductRepository) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).Preload("Categories").First(&product, "products.id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product with ID %d %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get product by ID %d: %w", id, err)
	}
	return &product, nil
}

// GetByIDs retrieves products by ID in one batch. Missing IDs are simply
// absent from the result; callers compare counts.
func (r *gormProductRepository) GetByIDs(ctx context.Context, ids []uint) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get products by IDs: %w", err)
	}
	return products, nil
}

// Create inserts a new product.
func (r *gormProductRepository) Create(ctx context.Context, product *models.Product) error {
	if err := r.db.WithContext(ctx).Omit("Categories").Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update writes the full row, including zero values and the JSON columns.
// Category membership is managed separately through SetCategories.
func (r *gormProductRepository) Update(ctx context.Context, product *models.Product) error {
	res := r.db.WithContext(ctx).Omit("Categories").Save(product)
	if res.Error != nil {
		return fmt.Errorf("failed to update product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product with ID %d %w", product.ID, ErrNotFound)
	}
	return nil
}

// Delete removes a product and its category membership rows.
func (r *gormProductRepository) Delete(ctx context.Context, id uint) error {
	product := models.Product{ID: id}
	if err := r.db.WithContext(ctx).Model(&product).Association("Categories").Clear(); err != nil {
		return fmt.Errorf("failed to clear product categories: %w", err)
	}
	res := r.db.WithContext(ctx).Delete(&models.Product{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product with ID %d %w", id, ErrNotFound)
	}
	return nil
}

// SetCategories replaces the product's category membership.
func (r *gormProductRepository) SetCategories(ctx context.Context, productID uint, categoryIDs []uint) error {
	var categories []models.Category
	if len(categoryIDs) > 0 {
		if err := r.db.WithContext(ctx).Where("id IN ?", categoryIDs).Find(&categories).Error; err != nil {
			return fmt.Errorf("failed to load categories: %w", err)
		}
		if len(categories) != len(categoryIDs) {
			return fmt.Errorf("one or more categories %w", ErrNotFound)
		}
	}
	product := models.Product{ID: productID}
	if err := r.db.WithContext(ctx).Model(&product).Association("Categories").Replace(categories); err != nil {
		return fmt.Errorf("failed to set product categories: %w", err)
	}
	return nil
}
