package repositories

import (
	"context"

	"boutique/internal/models"

	"gorm.io/gorm"
)

// gormStore is the relational implementation of Store.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a Store backed by a GORM database handle.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// AutoMigrate creates or updates the schema for every model.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Product{},
		&models.Category{},
		&models.User{},
		&models.Order{},
		&models.OrderItem{},
		&models.Banner{},
		&models.AppSetting{},
	)
}

func (s *gormStore) Products() ProductRepository    { return &gormProductRepository{db: s.db} }
func (s *gormStore) Categories() CategoryRepository { return &gormCategoryRepository{db: s.db} }
func (s *gormStore) Users() UserRepository          { return &gormUserRepository{db: s.db} }
func (s *gormStore) Orders() OrderRepository        { return &gormOrderRepository{db: s.db} }
func (s *gormStore) Banners() BannerRepository      { return &gormBannerRepository{db: s.db} }
func (s *gormStore) Settings() SettingRepository    { return &gormSettingRepository{db: s.db} }

// RunInTransaction wraps fn in a database transaction. fn receives a Store
// bound to the transaction handle, so every repository call inside shares
// one atomic scope.
func (s *gormStore) RunInTransaction(ctx context.Context, fn func(Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}
