package services_test

import (
	"context"
	"errors"
	"testing"

	"boutique/internal/models"
	"boutique/internal/repositories"
	"boutique/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryExclusiveFlags_TransferOnCreate(t *testing.T) {
	store := newTestStore(t)
	svc := services.NewCategoryService(store)
	ctx := context.Background()

	first, err := svc.CreateCategory(ctx, services.CategoryInput{
		Name: "Dresses", Slug: "dresses", IsTopSelling: true, IsFeatured: true,
	})
	require.NoError(t, err)

	second, err := svc.CreateCategory(ctx, services.CategoryInput{
		Name: "Shoes", Slug: "shoes", IsTopSelling: true,
	})
	require.NoError(t, err)

	// Top-selling moved to the new category, featured stayed put.
	reloaded, err := svc.GetCategoryByID(ctx, first.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.IsTopSelling)
	assert.True(t, reloaded.IsFeatured)

	holder, err := svc.GetCategoryByID(ctx, second.ID)
	require.NoError(t, err)
	assert.True(t, holder.IsTopSelling)
	assert.False(t, holder.IsFeatured)
}

func TestCategoryExclusiveFlags_TransferOnUpdate(t *testing.T) {
	store := newTestStore(t)
	svc := services.NewCategoryService(store)
	ctx := context.Background()

	first, err := svc.CreateCategory(ctx, services.CategoryInput{
		Name: "Dresses", Slug: "dresses", IsFeatured: true,
	})
	require.NoError(t, err)
	second, err := svc.CreateCategory(ctx, services.CategoryInput{
		Name: "Shoes", Slug: "shoes",
	})
	require.NoError(t, err)

	_, err = svc.UpdateCategory(ctx, second.ID, services.CategoryInput{
		Name: "Shoes", Slug: "shoes", IsFeatured: true,
	})
	require.NoError(t, err)

	reloaded, err := svc.GetCategoryByID(ctx, first.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.IsFeatured)
}

func TestCategoryExclusiveFlags_IdempotentOnHolder(t *testing.T) {
	store := newTestStore(t)
	svc := services.NewCategoryService(store)
	ctx := context.Background()

	cat, err := svc.CreateCategory(ctx, services.CategoryInput{
		Name: "Dresses", Slug: "dresses", IsTopSelling: true,
	})
	require.NoError(t, err)

	// Re-asserting the flag on its current holder keeps it set.
	updated, err := svc.UpdateCategory(ctx, cat.ID, services.CategoryInput{
		Name: "Dresses", Slug: "dresses", IsTopSelling: true,
	})
	require.NoError(t, err)
	assert.True(t, updated.IsTopSelling)
}

func TestSetCategoryProducts_ReplacesMembership(t *testing.T) {
	store := newTestStore(t)
	svc := services.NewCategoryService(store)
	ctx := context.Background()

	a := seedProduct(t, store, &models.Product{Name: "A", PriceCents: 100})
	b := seedProduct(t, store, &models.Product{Name: "B", PriceCents: 200})
	c := seedProduct(t, store, &models.Product{Name: "C", PriceCents: 300})

	cat, err := svc.CreateCategory(ctx, services.CategoryInput{Name: "Sale", Slug: "sale"})
	require.NoError(t, err)

	withAB, err := svc.SetCategoryProducts(ctx, cat.ID, []uint{a.ID, b.ID})
	require.NoError(t, err)
	assert.Len(t, withAB.Products, 2)

	// The second call replaces, not appends.
	withC, err := svc.SetCategoryProducts(ctx, cat.ID, []uint{c.ID})
	require.NoError(t, err)
	require.Len(t, withC.Products, 1)
	assert.Equal(t, c.ID, withC.Products[0].ID)
}

func TestDeleteCategory_KeepsProducts(t *testing.T) {
	store := newTestStore(t)
	svc := services.NewCategoryService(store)
	ctx := context.Background()

	p := seedProduct(t, store, &models.Product{Name: "A", PriceCents: 100})
	cat, err := svc.CreateCategory(ctx, services.CategoryInput{Name: "Sale", Slug: "sale"})
	require.NoError(t, err)
	_, err = svc.SetCategoryProducts(ctx, cat.ID, []uint{p.ID})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCategory(ctx, cat.ID))

	_, err = svc.GetCategoryByID(ctx, cat.ID)
	assert.True(t, errors.Is(err, repositories.ErrNotFound))

	survivor, err := store.Products().GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, survivor.Categories)
}

func TestCategoryFilterOnProductListing(t *testing.T) {
	store := newTestStore(t)
	catSvc := services.NewCategoryService(store)
	prodSvc := services.NewProductService(store)
	ctx := context.Background()

	a := seedProduct(t, store, &models.Product{Name: "A", PriceCents: 100, Featured: true})
	seedProduct(t, store, &models.Product{Name: "B", PriceCents: 200})

	cat, err := catSvc.CreateCategory(ctx, services.CategoryInput{Name: "Sale", Slug: "sale"})
	require.NoError(t, err)
	_, err = catSvc.SetCategoryProducts(ctx, cat.ID, []uint{a.ID})
	require.NoError(t, err)

	bySlug, err := prodSvc.GetAllProducts(ctx, repositories.ProductFilter{CategorySlug: "sale"})
	require.NoError(t, err)
	require.Len(t, bySlug, 1)
	assert.Equal(t, a.ID, bySlug[0].ID)

	featured, err := prodSvc.GetAllProducts(ctx, repositories.ProductFilter{FeaturedOnly: true})
	require.NoError(t, err)
	require.Len(t, featured, 1)
	assert.Equal(t, a.ID, featured[0].ID)

	all, err := prodSvc.GetAllProducts(ctx, repositories.ProductFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
