package repositories

import (
	"context"
	"fmt"
	"time"

	"boutique/internal/models"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
)

// categoryDoc is the Firestore shape of a category. Membership lives on the
// product documents, not here.
type categoryDoc struct {
	ID           int64
	Name         string
	Slug         string
	Description  string
	IsTopSelling bool
	IsFeatured   bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func categoryToDoc(c *models.Category) categoryDoc {
	return categoryDoc{
		ID:           int64(c.ID),
		Name:         c.Name,
		Slug:         c.Slug,
		Description:  c.Description,
		IsTopSelling: c.IsTopSelling,
		IsFeatured:   c.IsFeatured,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func (d categoryDoc) toModel() models.Category {
	return models.Category{
		ID:           uint(d.ID),
		Name:         d.Name,
		Slug:         d.Slug,
		Description:  d.Description,
		IsTopSelling: d.IsTopSelling,
		IsFeatured:   d.IsFeatured,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

// firestoreCategoryRepository is the Firestore implementation of
// CategoryRepository.
type firestoreCategoryRepository struct {
	store *firestoreStore
}

func (r *firestoreCategoryRepository) GetAll(ctx context.Context) ([]models.Category, error) {
	iter := r.store.runQuery(ctx, r.store.client.Collection("categories").Query)
	defer iter.Stop()

	var categories []models.Category
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to get categories: %w", err)
		}
		var d categoryDoc
		if err := snap.DataTo(&d); err != nil {
			return nil, fmt.Errorf("failed to decode category %s: %w", snap.Ref.ID, err)
		}
		categories = append(categories, d.toModel())
	}
	return categories, nil
}

func (r *firestoreCategoryRepository) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	snap, err := r.store.getDoc(ctx, r.store.client.Collection("categories").Doc(docID(id)))
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("category with ID %d %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get category by ID %d: %w", id, err)
	}
	var d categoryDoc
	if err := snap.DataTo(&d); err != nil {
		return nil, fmt.Errorf("failed to decode category %d: %w", id, err)
	}
	category := d.toModel()
	return &category, nil
}

func (r *firestoreCategoryRepository) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	q := r.store.client.Collection("categories").Where("Slug", "==", slug).Limit(1)
	iter := r.store.runQuery(ctx, q)
	defer iter.Stop()

	snap, err := iter.Next()
	if err == iterator.Done {
		return nil, fmt.Errorf("category with slug %s %w", slug, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category by slug %s: %w", slug, err)
	}
	var d categoryDoc
	if err := snap.DataTo(&d); err != nil {
		return nil, fmt.Errorf("failed to decode category %s: %w", slug, err)
	}
	category := d.toModel()
	return &category, nil
}

func (r *firestoreCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	if category.ID == 0 {
		id, err := r.store.nextID(ctx, "categories")
		if err != nil {
			return err
		}
		category.ID = id
	}
	now := time.Now()
	category.CreatedAt = now
	category.UpdatedAt = now
	ref := r.store.client.Collection("categories").Doc(docID(category.ID))
	if err := r.store.setDoc(ctx, ref, categoryToDoc(category)); err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

func (r *firestoreCategoryRepository) Update(ctx context.Context, category *models.Category) error {
	ref := r.store.client.Collection("categories").Doc(docID(category.ID))
	if r.store.tx == nil {
		if _, err := ref.Get(ctx); err != nil {
			if isNotFound(err) {
				return fmt.Errorf("category with ID %d %w", category.ID, ErrNotFound)
			}
			return fmt.Errorf("failed to update category: %w", err)
		}
	}
	category.UpdatedAt = time.Now()
	if err := r.store.setDoc(ctx, ref, categoryToDoc(category)); err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	return nil
}

// Delete removes the category and strips its ID from every product that
// referenced it. Products themselves are kept.
func (r *firestoreCategoryRepository) Delete(ctx context.Context, id uint) error {
	ref := r.store.client.Collection("categories").Doc(docID(id))
	if _, err := r.store.getDoc(ctx, ref); err != nil {
		if isNotFound(err) {
			return fmt.Errorf("category with ID %d %w", id, ErrNotFound)
		}
		return fmt.Errorf("failed to delete category: %w", err)
	}

	// All reads happen before the writes so this also works inside a
	// Firestore transaction.
	q := r.store.client.Collection("products").Where("CategoryIDs", "array-contains", int64(id))
	members, err := r.store.collectProductDocs(ctx, q)
	if err != nil {
		return fmt.Errorf("failed to list products for category %d: %w", id, err)
	}
	for _, m := range members {
		kept := make([]int64, 0, len(m.doc.CategoryIDs))
		for _, cid := range m.doc.CategoryIDs {
			if cid != int64(id) {
				kept = append(kept, cid)
			}
		}
		m.doc.CategoryIDs = kept
		m.doc.UpdatedAt = time.Now()
		if err := r.store.setDoc(ctx, m.ref, m.doc); err != nil {
			return fmt.Errorf("failed to detach product %d: %w", m.doc.ID, err)
		}
	}

	if err := r.store.deleteDoc(ctx, ref); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}

type categoryHolder struct {
	ref *firestore.DocumentRef
	doc categoryDoc
}

func (r *firestoreCategoryRepository) collectFlagged(ctx context.Context, field string, exceptID uint) ([]categoryHolder, error) {
	q := r.store.client.Collection("categories").Where(field, "==", true)
	iter := r.store.runQuery(ctx, q)
	defer iter.Stop()

	var holders []categoryHolder
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list categories for %s: %w", field, err)
		}
		var d categoryDoc
		if err := snap.DataTo(&d); err != nil {
			return nil, fmt.Errorf("failed to decode category %s: %w", snap.Ref.ID, err)
		}
		if uint(d.ID) == exceptID {
			continue
		}
		holders = append(holders, categoryHolder{ref: snap.Ref, doc: d})
	}
	return holders, nil
}

// ClearExclusiveFlags performs every read before the first write so it can
// run inside a Firestore transaction.
func (r *firestoreCategoryRepository) ClearExclusiveFlags(ctx context.Context, exceptID uint, topSelling, featured bool) error {
	var topHolders, featHolders []categoryHolder
	var err error
	if topSelling {
		if topHolders, err = r.collectFlagged(ctx, "IsTopSelling", exceptID); err != nil {
			return err
		}
	}
	if featured {
		if featHolders, err = r.collectFlagged(ctx, "IsFeatured", exceptID); err != nil {
			return err
		}
	}

	// A category may appear in both lists; merge so the single write clears
	// both flags.
	type pending struct {
		holder              categoryHolder
		clearTop, clearFeat bool
	}
	byID := make(map[int64]*pending)
	order := make([]int64, 0, len(topHolders)+len(featHolders))
	for _, h := range topHolders {
		p := &pending{holder: h, clearTop: true}
		byID[h.doc.ID] = p
		order = append(order, h.doc.ID)
	}
	for _, h := range featHolders {
		if p, ok := byID[h.doc.ID]; ok {
			p.clearFeat = true
			continue
		}
		byID[h.doc.ID] = &pending{holder: h, clearFeat: true}
		order = append(order, h.doc.ID)
	}

	for _, id := range order {
		p := byID[id]
		if p.clearTop {
			p.holder.doc.IsTopSelling = false
		}
		if p.clearFeat {
			p.holder.doc.IsFeatured = false
		}
		p.holder.doc.UpdatedAt = time.Now()
		if err := r.store.setDoc(ctx, p.holder.ref, p.holder.doc); err != nil {
			return fmt.Errorf("failed to clear flags on category %d: %w", p.holder.doc.ID, err)
		}
	}
	return nil
}

// SetProducts replaces the category's membership by rewriting the
// CategoryIDs array on each affected product document.
func (r *firestoreCategoryRepository) SetProducts(ctx context.Context, categoryID uint, productIDs []uint) error {
	if _, err := r.GetByID(ctx, categoryID); err != nil {
		return err
	}

	wanted := make(map[int64]bool, len(productIDs))
	for _, pid := range productIDs {
		wanted[int64(pid)] = true
	}

	// Read phase: current members, then wanted non-members.
	q := r.store.client.Collection("products").Where("CategoryIDs", "array-contains", int64(categoryID))
	members, err := r.store.collectProductDocs(ctx, q)
	if err != nil {
		return fmt.Errorf("failed to list category products: %w", err)
	}

	var toDetach []productHolder
	for _, m := range members {
		if wanted[m.doc.ID] {
			delete(wanted, m.doc.ID) // already a member
			continue
		}
		toDetach = append(toDetach, m)
	}

	var toAttach []productHolder
	for pid := range wanted {
		ref := r.store.client.Collection("products").Doc(docID(uint(pid)))
		snap, err := r.store.getDoc(ctx, ref)
		if err != nil {
			if isNotFound(err) {
				return fmt.Errorf("product with ID %d %w", pid, ErrNotFound)
			}
			return fmt.Errorf("failed to get product %d: %w", pid, err)
		}
		var d productDoc
		if err := snap.DataTo(&d); err != nil {
			return fmt.Errorf("failed to decode product %d: %w", pid, err)
		}
		toAttach = append(toAttach, productHolder{ref: ref, doc: d})
	}

	// Write phase.
	for _, m := range toDetach {
		kept := make([]int64, 0, len(m.doc.CategoryIDs))
		for _, cid := range m.doc.CategoryIDs {
			if cid != int64(categoryID) {
				kept = append(kept, cid)
			}
		}
		m.doc.CategoryIDs = kept
		m.doc.UpdatedAt = time.Now()
		if err := r.store.setDoc(ctx, m.ref, m.doc); err != nil {
			return fmt.Errorf("failed to detach product %d: %w", m.doc.ID, err)
		}
	}
	for _, a := range toAttach {
		a.doc.CategoryIDs = append(a.doc.CategoryIDs, int64(categoryID))
		a.doc.UpdatedAt = time.Now()
		if err := r.store.setDoc(ctx, a.ref, a.doc); err != nil {
			return fmt.Errorf("failed to attach product %d: %w", a.doc.ID, err)
		}
	}
	return nil
}
