package repositories

import (
	"context"
	"fmt"
	"sort"
	"time"

	"boutique/internal/models"

	"gorm.io/datatypes"

	"google.golang.org/api/iterator"
)

// bannerDoc is the Firestore shape of a banner.
type bannerDoc struct {
	ID           int64
	Title        string
	Text         string
	MediaURL     string
	MediaType    string
	DisplayOrder int
	Active       bool
	Position     string
	Animation    string
	Overlay      string
	Elements     []models.BannerElement
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func bannerToDoc(b *models.Banner) bannerDoc {
	return bannerDoc{
		ID:           int64(b.ID),
		Title:        b.Title,
		Text:         b.Text,
		MediaURL:     b.MediaURL,
		MediaType:    b.MediaType,
		DisplayOrder: b.DisplayOrder,
		Active:       b.Active,
		Position:     b.Position,
		Animation:    b.Animation,
		Overlay:      b.Overlay,
		Elements:     b.Elements,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

func (d bannerDoc) toModel() models.Banner {
	return models.Banner{
		ID:           uint(d.ID),
		Title:        d.Title,
		Text:         d.Text,
		MediaURL:     d.MediaURL,
		MediaType:    d.MediaType,
		DisplayOrder: d.DisplayOrder,
		Active:       d.Active,
		Position:     d.Position,
		Animation:    d.Animation,
		Overlay:      d.Overlay,
		Elements:     datatypes.JSONSlice[models.BannerElement](d.Elements),
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

// firestoreBannerRepository is the Firestore implementation of
// BannerRepository.
type firestoreBannerRepository struct {
	store *firestoreStore
}

func (r *firestoreBannerRepository) collect(ctx context.Context, activeOnly bool) ([]models.Banner, error) {
	q := r.store.client.Collection("banners").Query
	if activeOnly {
		q = q.Where("Active", "==", true)
	}
	iter := r.store.runQuery(ctx, q)
	defer iter.Stop()

	var banners []models.Banner
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to get banners: %w", err)
		}
		var d bannerDoc
		if err := snap.DataTo(&d); err != nil {
			return nil, fmt.Errorf("failed to decode banner %s: %w", snap.Ref.ID, err)
		}
		banners = append(banners, d.toModel())
	}
	// Sorted client-side; a DisplayOrder index may not exist yet.
	sort.Slice(banners, func(i, j int) bool {
		if banners[i].DisplayOrder != banners[j].DisplayOrder {
			return banners[i].DisplayOrder < banners[j].DisplayOrder
		}
		return banners[i].ID < banners[j].ID
	})
	return banners, nil
}

func (r *firestoreBannerRepository) GetAll(ctx context.Context) ([]models.Banner, error) {
	return r.collect(ctx, false)
}

func (r *firestoreBannerRepository) GetActive(ctx context.Context) ([]models.Banner, error) {
	return r.collect(ctx, true)
}

func (r *firestoreBannerRepository) GetByID(ctx context.Context, id uint) (*models.Banner, error) {
	snap, err := r.store.getDoc(ctx, r.store.client.Collection("banners").Doc(docID(id)))
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("banner with ID %d %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get banner by ID %d: %w", id, err)
	}
	var d bannerDoc
	if err := snap.DataTo(&d); err != nil {
		return nil, fmt.Errorf("failed to decode banner %d: %w", id, err)
	}
	banner := d.toModel()
	return &banner, nil
}

func (r *firestoreBannerRepository) Create(ctx context.Context, banner *models.Banner) error {
	if banner.ID == 0 {
		id, err := r.store.nextID(ctx, "banners")
		if err != nil {
			return err
		}
		banner.ID = id
	}
	now := time.Now()
	banner.CreatedAt = now
	banner.UpdatedAt = now
	ref := r.store.client.Collection("banners").Doc(docID(banner.ID))
	if err := r.store.setDoc(ctx, ref, bannerToDoc(banner)); err != nil {
		return fmt.Errorf("failed to create banner: %w", err)
	}
	return nil
}

func (r *firestoreBannerRepository) Update(ctx context.Context, banner *models.Banner) error {
	ref := r.store.client.Collection("banners").Doc(docID(banner.ID))
	if r.store.tx == nil {
		if _, err := ref.Get(ctx); err != nil {
			if isNotFound(err) {
				return fmt.Errorf("banner with ID %d %w", banner.ID, ErrNotFound)
			}
			return fmt.Errorf("failed to update banner: %w", err)
		}
	}
	banner.UpdatedAt = time.Now()
	if err := r.store.setDoc(ctx, ref, bannerToDoc(banner)); err != nil {
		return fmt.Errorf("failed to update banner: %w", err)
	}
	return nil
}

func (r *firestoreBannerRepository) Delete(ctx context.Context, id uint) error {
	ref := r.store.client.Collection("banners").Doc(docID(id))
	if _, err := r.store.getDoc(ctx, ref); err != nil {
		if isNotFound(err) {
			return fmt.Errorf("banner with ID %d %w", id, ErrNotFound)
		}
		return fmt.Errorf("failed to delete banner: %w", err)
	}
	if err := r.store.deleteDoc(ctx, ref); err != nil {
		return fmt.Errorf("failed to delete banner: %w", err)
	}
	return nil
}
