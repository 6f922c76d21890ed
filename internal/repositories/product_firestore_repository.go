package repositories

import (
	"context"
	"fmt"
	"time"

	"boutique/internal/models"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"gorm.io/datatypes"
)

// productDoc is the Firestore shape of a product. Category membership is a
// plain ID array on the product document.
type productDoc struct {
	ID                int64
	Name              string
	Description       string
	PriceCents        int64
	Image             string
	Gallery           []string
	Colors            []models.ProductColor
	Sizes             []models.ProductSize
	ItemType          string
	Inventory         int
	InventoryVariants []models.InventoryVariant
	Featured          bool
	CategoryIDs       []int64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func productToDoc(p *models.Product) productDoc {
	catIDs := make([]int64, 0, len(p.Categories))
	for _, c := range p.Categories {
		catIDs = append(catIDs, int64(c.ID))
	}
	return productDoc{
		ID:                int64(p.ID),
		Name:              p.Name,
		Description:       p.Description,
		PriceCents:        p.PriceCents,
		Image:             p.Image,
		Gallery:           p.Gallery,
		Colors:            p.Colors,
		Sizes:             p.Sizes,
		ItemType:          p.ItemType,
		Inventory:         p.Inventory,
		InventoryVariants: p.InventoryVariants,
		Featured:          p.Featured,
		CategoryIDs:       catIDs,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

func (d productDoc) toModel(categories map[uint]models.Category) models.Product {
	p := models.Product{
		ID:                uint(d.ID),
		Name:              d.Name,
		Description:       d.Description,
		PriceCents:        d.PriceCents,
		Image:             d.Image,
		Gallery:           datatypes.JSONSlice[string](d.Gallery),
		Colors:            datatypes.JSONSlice[models.ProductColor](d.Colors),
		Sizes:             datatypes.JSONSlice[models.ProductSize](d.Sizes),
		ItemType:          d.ItemType,
		Inventory:         d.Inventory,
		InventoryVariants: datatypes.JSONSlice[models.InventoryVariant](d.InventoryVariants),
		Featured:          d.Featured,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}
	for _, cid := range d.CategoryIDs {
		if c, ok := categories[uint(cid)]; ok {
			p.Categories = append(p.Categories, c)
		}
	}
	return p
}

// firestoreProductRepository is the Firestore implementation of
// ProductRepository.
type firestoreProductRepository struct {
	store *firestoreStore
}

// productHolder pairs a decoded product document with its ref for two-phase
// read-then-write sequences.
type productHolder struct {
	ref *firestore.DocumentRef
	doc productDoc
}

func (s *firestoreStore) collectProductDocs(ctx context.Context, q firestore.Query) ([]productHolder, error) {
	iter := s.runQuery(ctx, q)
	defer iter.Stop()

	var holders []productHolder
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var d productDoc
		if err := snap.DataTo(&d); err != nil {
			return nil, fmt.Errorf("failed to decode product %s: %w", snap.Ref.ID, err)
		}
		holders = append(holders, productHolder{ref: snap.Ref, doc: d})
	}
	return holders, nil
}

func (r *firestoreProductRepository) categoryIndex(ctx context.Context) (map[uint]models.Category, error) {
	categories, err := (&firestoreCategoryRepository{r.store}).GetAll(ctx)
	if err != nil {
		return nil, err
	}
	index := make(map[uint]models.Category, len(categories))
	for _, c := range categories {
		index[c.ID] = c
	}
	return index, nil
}

func (r *firestoreProductRepository) GetAll(ctx context.Context, filter ProductFilter) ([]models.Product, error) {
	q := r.store.client.Collection("products").Query
	if filter.CategorySlug != "" {
		category, err := (&firestoreCategoryRepository{r.store}).GetBySlug(ctx, filter.CategorySlug)
		if err != nil {
			return nil, err
		}
		q = q.Where("CategoryIDs", "array-contains", int64(category.ID))
	}
	if filter.FeaturedOnly {
		q = q.Where("Featured", "==", true)
	}

	index, err := r.categoryIndex(ctx)
	if err != nil {
		return nil, err
	}

	iter := r.store.runQuery(ctx, q)
	defer iter.Stop()

	var products []models.Product
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to get products: %w", err)
		}
		var d productDoc
		if err := snap.DataTo(&d); err != nil {
			return nil, fmt.Errorf("failed to decode product %s: %w", snap.Ref.ID, err)
		}
		products = append(products, d.toModel(index))
	}
	return products, nil
}

func (r *firestoreProductRepository) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	snap, err := r.store.getDoc(ctx, r.store.client.Collection("products").Doc(docID(id)))
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("product with ID %d %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get product by ID %d: %w", id, err)
	}
	var d productDoc
	if err := snap.DataTo(&d); err != nil {
		return nil, fmt.Errorf("failed to decode product %d: %w", id, err)
	}
	index, err := r.categoryIndex(ctx)
	if err != nil {
		return nil, err
	}
	product := d.toModel(index)
	return &product, nil
}

func (r *firestoreProductRepository) GetByIDs(ctx context.Context, ids []uint) ([]models.Product, error) {
	var products []models.Product
	for _, id := range ids {
		snap, err := r.store.getDoc(ctx, r.store.client.Collection("products").Doc(docID(id)))
		if err != nil {
			if isNotFound(err) {
				continue
			}
			return nil, fmt.Errorf("failed to get product by ID %d: %w", id, err)
		}
		var d productDoc
		if err := snap.DataTo(&d); err != nil {
			return nil, fmt.Errorf("failed to decode product %d: %w", id, err)
		}
		products = append(products, d.toModel(nil))
	}
	return products, nil
}

func (r *firestoreProductRepository) Create(ctx context.Context, product *models.Product) error {
	if product.ID == 0 {
		id, err := r.store.nextID(ctx, "products")
		if err != nil {
			return err
		}
		product.ID = id
	}
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now
	ref := r.store.client.Collection("products").Doc(docID(product.ID))
	if err := r.store.setDoc(ctx, ref, productToDoc(product)); err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

func (r *firestoreProductRepository) Update(ctx context.Context, product *models.Product) error {
	ref := r.store.client.Collection("products").Doc(docID(product.ID))
	if r.store.tx == nil {
		if _, err := ref.Get(ctx); err != nil {
			if isNotFound(err) {
				return fmt.Errorf("product with ID %d %w", product.ID, ErrNotFound)
			}
			return fmt.Errorf("failed to update product: %w", err)
		}
	}
	product.UpdatedAt = time.Now()
	if err := r.store.setDoc(ctx, ref, productToDoc(product)); err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	return nil
}

func (r *firestoreProductRepository) Delete(ctx context.Context, id uint) error {
	ref := r.store.client.Collection("products").Doc(docID(id))
	if _, err := ref.Get(ctx); err != nil {
		if isNotFound(err) {
			return fmt.Errorf("product with ID %d %w", id, ErrNotFound)
		}
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if err := r.store.deleteDoc(ctx, ref); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}

func (r *firestoreProductRepository) SetCategories(ctx context.Context, productID uint, categoryIDs []uint) error {
	product, err := r.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	product.Categories = nil
	for _, cid := range categoryIDs {
		category, err := (&firestoreCategoryRepository{r.store}).GetByID(ctx, cid)
		if err != nil {
			return err
		}
		product.Categories = append(product.Categories, *category)
	}
	return r.Update(ctx, product)
}
