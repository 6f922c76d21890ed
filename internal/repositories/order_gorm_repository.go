package repositories

import (
	"context"
	"errors"
	"fmt"

	"boutique/internal/models"

	"gorm.io/gorm"
)

// gormOrderRepository is the GORM implementation of OrderRepository.
type gormOrderRepository struct {
	db *gorm.DB
}

func (r *gormOrderRepository) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Product").
		Preload("User")
}

func (r *gormOrderRepository) GetAll(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := r.withRelations(ctx).Order("id DESC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to get orders: %w", err)
	}
	return orders, nil
}

func (r *gormOrderRepository) GetByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	err := r.withRelations(ctx).First(&order, "orders.id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order with ID %d %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get order by ID %d: %w", id, err)
	}
	return &order, nil
}

func (r *gormOrderRepository) GetByUser(ctx context.Context, userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := r.withRelations(ctx).Where("user_id = ?", userID).Order("id DESC").Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get orders for user %d: %w", userID, err)
	}
	return orders, nil
}

// Create inserts the order together with its items.
func (r *gormOrderRepository) Create(ctx context.Context, order *models.Order) error {
	if err := r.db.WithContext(ctx).Omit("User", "Items.Product").Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// Update writes status and tracking changes. Items are snapshots and never
// rewritten here.
func (r *gormOrderRepository) Update(ctx context.Context, order *models.Order) error {
	res := r.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", order.ID).
		Updates(map[string]interface{}{
			"status":          order.Status,
			"tracking_number": order.TrackingNumber,
			"tracking_url":    order.TrackingURL,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to update order: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order with ID %d %w", order.ID, ErrNotFound)
	}
	return nil
}
