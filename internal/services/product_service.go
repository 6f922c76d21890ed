package services

import (
	"context"

	"boutique/internal/models"
	"boutique/internal/repositories"

	"gorm.io/datatypes"
)

// ProductInput is the request shape for creating or updating a product.
type ProductInput struct {
	Name              string                    `json:"name" validate:"required,min=1,max=200"`
	Description       string                    `json:"description" validate:"omitempty,max=5000"`
	PriceCents        int64                     `json:"priceCents" validate:"gte=0"`
	Image             string                    `json:"image"`
	Gallery           []string                  `json:"gallery"`
	Colors            []models.ProductColor     `json:"colors" validate:"dive"`
	Sizes             []models.ProductSize      `json:"sizes" validate:"dive"`
	ItemType          string                    `json:"itemType"`
	Inventory         int                       `json:"inventory" validate:"gte=0"`
	InventoryVariants []models.InventoryVariant `json:"inventoryVariants" validate:"dive"`
	Featured          bool                      `json:"featured"`
	CategoryIDs       []uint                    `json:"categoryIds"`
}

// ProductService handles business logic related to products.
type ProductService struct {
	store repositories.Store
}

// NewProductService creates a new ProductService.
func NewProductService(store repositories.Store) *ProductService {
	return &ProductService{store: store}
}

// GetAllProducts retrieves products, optionally filtered.
func (s *ProductService) GetAllProducts(ctx context.Context, filter repositories.ProductFilter) ([]models.Product, error) {
	return s.store.Products().GetAll(ctx, filter)
}

// GetProductByID retrieves a single product.
func (s *ProductService) GetProductByID(ctx context.Context, id uint) (*models.Product, error) {
	return s.store.Products().GetByID(ctx, id)
}

func (in ProductInput) apply(p *models.Product) {
	p.Name = in.Name
	p.Description = in.Description
	p.PriceCents = in.PriceCents
	p.Image = in.Image
	p.Gallery = datatypes.JSONSlice[string](in.Gallery)
	p.Colors = datatypes.JSONSlice[models.ProductColor](in.Colors)
	p.Sizes = datatypes.JSONSlice[models.ProductSize](in.Sizes)
	p.ItemType = in.ItemType
	p.Inventory = in.Inventory
	p.InventoryVariants = datatypes.JSONSlice[models.InventoryVariant](in.InventoryVariants)
	p.Featured = in.Featured
}

// CreateProduct creates a product and sets its category membership.
func (s *ProductService) CreateProduct(ctx context.Context, in ProductInput) (*models.Product, error) {
	product := &models.Product{}
	in.apply(product)
	if err := s.store.Products().Create(ctx, product); err != nil {
		return nil, err
	}
	if len(in.CategoryIDs) > 0 {
		if err := s.store.Products().SetCategories(ctx, product.ID, in.CategoryIDs); err != nil {
			return nil, err
		}
	}
	return s.store.Products().GetByID(ctx, product.ID)
}

// UpdateProduct updates a product and replaces its category membership.
func (s *ProductService) UpdateProduct(ctx context.Context, id uint, in ProductInput) (*models.Product, error) {
	product, err := s.store.Products().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	in.apply(product)
	if err := s.store.Products().Update(ctx, product); err != nil {
		return nil, err
	}
	if err := s.store.Products().SetCategories(ctx, id, in.CategoryIDs); err != nil {
		return nil, err
	}
	return s.store.Products().GetByID(ctx, id)
}

// DeleteProduct deletes a product.
func (s *ProductService) DeleteProduct(ctx context.Context, id uint) error {
	return s.store.Products().Delete(ctx, id)
}
