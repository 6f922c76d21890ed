package services_test

import (
	"context"
	"fmt"
	"testing"

	"boutique/internal/models"
	"boutique/internal/repositories"
	"boutique/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockProductRepository is a mock implementation of repositories.ProductRepository.
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetAll(ctx context.Context, filter repositories.ProductFilter) ([]models.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByIDs(ctx context.Context, ids []uint) ([]models.Product, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) SetCategories(ctx context.Context, productID uint, categoryIDs []uint) error {
	args := m.Called(ctx, productID, categoryIDs)
	return args.Error(0)
}

// mockStore exposes the mocked product repository through the storage port.
// Transactions run against the same mocks.
type mockStore struct {
	products *MockProductRepository
}

func (s *mockStore) Products() repositories.ProductRepository { return s.products }

func (s *mockStore) Categories() repositories.CategoryRepository { return nil }

func (s *mockStore) Users() repositories.UserRepository { return nil }

func (s *mockStore) Orders() repositories.OrderRepository { return nil }

func (s *mockStore) Banners() repositories.BannerRepository { return nil }

func (s *mockStore) Settings() repositories.SettingRepository { return nil }
func (s *mockStore) RunInTransaction(ctx context.Context, fn func(repositories.Store) error) error {
	return fn(s)
}

func TestProductService_GetAllProducts(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(&mockStore{products: mockRepo})
	ctx := context.Background()

	expected := []models.Product{
		{ID: 1, Name: "Silk Dress", PriceCents: 12999},
		{ID: 2, Name: "Scarf", PriceCents: 2500},
	}
	filter := repositories.ProductFilter{CategorySlug: "sale"}

	mockRepo.On("GetAll", ctx, filter).Return(expected, nil).Once()

	products, err := service.GetAllProducts(ctx, filter)

	assert.NoError(t, err)
	assert.Equal(t, expected, products)
	mockRepo.AssertExpectations(t)
}

func TestProductService_GetProductByID(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(&mockStore{products: mockRepo})
	ctx := context.Background()

	expected := &models.Product{ID: 1, Name: "Silk Dress", PriceCents: 12999}

	mockRepo.On("GetByID", ctx, uint(1)).Return(expected, nil).Once()
	product, err := service.GetProductByID(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, expected, product)

	mockRepo.On("GetByID", ctx, uint(99)).
		Return(nil, fmt.Errorf("product 99: %w", repositories.ErrNotFound)).Once()
	product, err = service.GetProductByID(ctx, 99)
	assert.Error(t, err)
	assert.Nil(t, product)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	mockRepo.AssertExpectations(t)
}

func TestProductService_CreateProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(&mockStore{products: mockRepo})
	ctx := context.Background()

	in := services.ProductInput{
		Name:        "Silk Dress",
		PriceCents:  12999,
		CategoryIDs: []uint{3, 4},
	}

	mockRepo.On("Create", ctx, mock.MatchedBy(func(p *models.Product) bool {
		return p.Name == "Silk Dress" && p.PriceCents == 12999
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Product).ID = 7
	}).Return(nil).Once()
	mockRepo.On("SetCategories", ctx, uint(7), []uint{3, 4}).Return(nil).Once()
	mockRepo.On("GetByID", ctx, uint(7)).
		Return(&models.Product{ID: 7, Name: "Silk Dress", PriceCents: 12999}, nil).Once()

	product, err := service.CreateProduct(ctx, in)

	assert.NoError(t, err)
	assert.Equal(t, uint(7), product.ID)
	mockRepo.AssertExpectations(t)
}

func TestProductService_UpdateProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(&mockStore{products: mockRepo})
	ctx := context.Background()

	existing := &models.Product{ID: 7, Name: "Silk Dress", PriceCents: 12999}
	in := services.ProductInput{Name: "Silk Dress II", PriceCents: 13999}

	mockRepo.On("GetByID", ctx, uint(7)).Return(existing, nil).Once()
	mockRepo.On("Update", ctx, mock.MatchedBy(func(p *models.Product) bool {
		return p.ID == 7 && p.Name == "Silk Dress II" && p.PriceCents == 13999
	})).Return(nil).Once()
	// An empty id list still replaces the membership, clearing it.
	mockRepo.On("SetCategories", ctx, uint(7), []uint(nil)).Return(nil).Once()
	mockRepo.On("GetByID", ctx, uint(7)).
		Return(&models.Product{ID: 7, Name: "Silk Dress II", PriceCents: 13999}, nil).Once()

	product, err := service.UpdateProduct(ctx, 7, in)

	assert.NoError(t, err)
	assert.Equal(t, "Silk Dress II", product.Name)
	mockRepo.AssertExpectations(t)
}

func TestProductService_DeleteProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(&mockStore{products: mockRepo})
	ctx := context.Background()

	mockRepo.On("Delete", ctx, uint(7)).Return(nil).Once()
	assert.NoError(t, service.DeleteProduct(ctx, 7))

	mockRepo.On("Delete", ctx, uint(99)).
		Return(fmt.Errorf("product 99: %w", repositories.ErrNotFound)).Once()
	err := service.DeleteProduct(ctx, 99)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	mockRepo.AssertExpectations(t)
}
