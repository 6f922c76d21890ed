package repositories

import (
	"context"
	"errors"

	"boutique/internal/models"
)

// ErrNotFound is wrapped by every repository when a requested row or
// document does not exist, whichever backend is active.
var ErrNotFound = errors.New("not found")

// ProductFilter narrows a product listing.
type ProductFilter struct {
	CategorySlug string
	FeaturedOnly bool
}

// ProductRepository defines product data access.
type ProductRepository interface {
	GetAll(ctx context.Context, filter ProductFilter) ([]models.Product, error)
	GetByID(ctx context.Context, id uint) (*models.Product, error)
	GetByIDs(ctx context.Context, ids []uint) ([]models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uint) error
	SetCategories(ctx context.Context, productID uint, categoryIDs []uint) error
}

// CategoryRepository defines category data access.
type CategoryRepository interface {
	GetAll(ctx context.Context) ([]models.Category, error)
	GetByID(ctx context.Context, id uint) (*models.Category, error)
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
	Create(ctx context.Context, category *models.Category) error
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id uint) error
	// ClearExclusiveFlags unsets the requested exclusivity flags on every
	// category except the given one, in one read-then-write pass.
	ClearExclusiveFlags(ctx context.Context, exceptID uint, topSelling, featured bool) error
	// SetProducts replaces the category's product membership.
	SetProducts(ctx context.Context, categoryID uint, productIDs []uint) error
}

// UserRepository defines user data access.
type UserRepository interface {
	GetAll(ctx context.Context) ([]models.User, error)
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
}

// OrderRepository defines order data access. Reads return orders with items,
// item products and the owning user populated.
type OrderRepository interface {
	GetAll(ctx context.Context) ([]models.Order, error)
	GetByID(ctx context.Context, id uint) (*models.Order, error)
	GetByUser(ctx context.Context, userID uint) ([]models.Order, error)
	Create(ctx context.Context, order *models.Order) error
	Update(ctx context.Context, order *models.Order) error
}

// BannerRepository defines banner data access.
type BannerRepository interface {
	GetAll(ctx context.Context) ([]models.Banner, error)
	GetActive(ctx context.Context) ([]models.Banner, error)
	GetByID(ctx context.Context, id uint) (*models.Banner, error)
	Create(ctx context.Context, banner *models.Banner) error
	Update(ctx context.Context, banner *models.Banner) error
	Delete(ctx context.Context, id uint) error
}

// SettingRepository defines settings data access.
type SettingRepository interface {
	Get(ctx context.Context, key string) (*models.AppSetting, error)
	Upsert(ctx context.Context, setting *models.AppSetting) error
}

// Store is the storage port. The relational and document backends each
// implement it once; services never know which one is live.
//
// RunInTransaction executes fn against a transaction-scoped Store. Any error
// returned by fn rolls back every write made through that scope.
type Store interface {
	Products() ProductRepository
	Categories() CategoryRepository
	Users() UserRepository
	Orders() OrderRepository
	Banners() BannerRepository
	Settings() SettingRepository
	RunInTransaction(ctx context.Context, fn func(Store) error) error
}
