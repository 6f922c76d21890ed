package repositories

import (
	"context"
	"fmt"
	"time"

	"boutique/internal/models"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
)

// orderItemDoc is an order line embedded in the order document. All product
// details here are purchase-time snapshots.
type orderItemDoc struct {
	ID             int64
	ProductID      int64
	Quantity       int
	UnitPriceCents int64
	ColorName      string
	ColorHex       string
	ColorImage     string
	SizeName       string
}

// orderDoc is the Firestore shape of an order; items are embedded rather
// than kept in their own collection.
type orderDoc struct {
	ID             int64
	Status         string
	TotalCents     int64
	Source         string
	TrackingNumber string
	TrackingURL    string
	UserID         int64
	Items          []orderItemDoc
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func orderToDoc(o *models.Order) orderDoc {
	items := make([]orderItemDoc, 0, len(o.Items))
	for i, it := range o.Items {
		items = append(items, orderItemDoc{
			ID:             int64(i + 1),
			ProductID:      int64(it.ProductID),
			Quantity:       it.Quantity,
			UnitPriceCents: it.UnitPriceCents,
			ColorName:      it.ColorName,
			ColorHex:       it.ColorHex,
			ColorImage:     it.ColorImage,
			SizeName:       it.SizeName,
		})
	}
	return orderDoc{
		ID:             int64(o.ID),
		Status:         string(o.Status),
		TotalCents:     o.TotalCents,
		Source:         string(o.Source),
		TrackingNumber: o.TrackingNumber,
		TrackingURL:    o.TrackingURL,
		UserID:         int64(o.UserID),
		Items:          items,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
}

func (d orderDoc) toModel() models.Order {
	items := make([]models.OrderItem, 0, len(d.Items))
	for _, it := range d.Items {
		items = append(items, models.OrderItem{
			ID:             uint(it.ID),
			OrderID:        uint(d.ID),
			ProductID:      uint(it.ProductID),
			Quantity:       it.Quantity,
			UnitPriceCents: it.UnitPriceCents,
			ColorName:      it.ColorName,
			ColorHex:       it.ColorHex,
			ColorImage:     it.ColorImage,
			SizeName:       it.SizeName,
		})
	}
	return models.Order{
		ID:             uint(d.ID),
		Status:         models.OrderStatus(d.Status),
		TotalCents:     d.TotalCents,
		Source:         models.OrderSource(d.Source),
		TrackingNumber: d.TrackingNumber,
		TrackingURL:    d.TrackingURL,
		UserID:         uint(d.UserID),
		Items:          items,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

// firestoreOrderRepository is the Firestore implementation of
// OrderRepository.
type firestoreOrderRepository struct {
	store *firestoreStore
}

// populate attaches user and product documents to an order read outside a
// transaction. Missing references are left nil instead of failing the read.
func (r *firestoreOrderRepository) populate(ctx context.Context, order *models.Order) {
	if user, err := (&firestoreUserRepository{r.store}).GetByID(ctx, order.UserID); err == nil {
		order.User = user
	}
	products := &firestoreProductRepository{r.store}
	for i := range order.Items {
		if p, err := products.GetByID(ctx, order.Items[i].ProductID); err == nil {
			order.Items[i].Product = p
		}
	}
}

func (r *firestoreOrderRepository) GetAll(ctx context.Context) ([]models.Order, error) {
	q := r.store.client.Collection("orders").OrderBy("ID", firestore.Desc)
	iter := r.store.runQuery(ctx, q)
	defer iter.Stop()

	var orders []models.Order
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to get orders: %w", err)
		}
		var d orderDoc
		if err := snap.DataTo(&d); err != nil {
			return nil, fmt.Errorf("failed to decode order %s: %w", snap.Ref.ID, err)
		}
		order := d.toModel()
		r.populate(ctx, &order)
		orders = append(orders, order)
	}
	return orders, nil
}

func (r *firestoreOrderRepository) GetByID(ctx context.Context, id uint) (*models.Order, error) {
	snap, err := r.store.getDoc(ctx, r.store.client.Collection("orders").Doc(docID(id)))
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("order with ID %d %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get order by ID %d: %w", id, err)
	}
	var d orderDoc
	if err := snap.DataTo(&d); err != nil {
		return nil, fmt.Errorf("failed to decode order %d: %w", id, err)
	}
	order := d.toModel()
	if r.store.tx == nil {
		r.populate(ctx, &order)
	}
	return &order, nil
}

func (r *firestoreOrderRepository) GetByUser(ctx context.Context, userID uint) ([]models.Order, error) {
	q := r.store.client.Collection("orders").Where("UserID", "==", int64(userID))
	iter := r.store.runQuery(ctx, q)
	defer iter.Stop()

	var orders []models.Order
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to get orders for user %d: %w", userID, err)
		}
		var d orderDoc
		if err := snap.DataTo(&d); err != nil {
			return nil, fmt.Errorf("failed to decode order %s: %w", snap.Ref.ID, err)
		}
		order := d.toModel()
		r.populate(ctx, &order)
		orders = append(orders, order)
	}
	return orders, nil
}

func (r *firestoreOrderRepository) Create(ctx context.Context, order *models.Order) error {
	if order.ID == 0 {
		id, err := r.store.nextID(ctx, "orders")
		if err != nil {
			return err
		}
		order.ID = id
	}
	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now
	for i := range order.Items {
		order.Items[i].ID = uint(i + 1)
		order.Items[i].OrderID = order.ID
	}
	ref := r.store.client.Collection("orders").Doc(docID(order.ID))
	if err := r.store.setDoc(ctx, ref, orderToDoc(order)); err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

func (r *firestoreOrderRepository) Update(ctx context.Context, order *models.Order) error {
	ref := r.store.client.Collection("orders").Doc(docID(order.ID))
	snap, err := r.store.getDoc(ctx, ref)
	if err != nil {
		if isNotFound(err) {
			return fmt.Errorf("order with ID %d %w", order.ID, ErrNotFound)
		}
		return fmt.Errorf("failed to update order: %w", err)
	}
	var d orderDoc
	if err := snap.DataTo(&d); err != nil {
		return fmt.Errorf("failed to decode order %d: %w", order.ID, err)
	}
	d.Status = string(order.Status)
	d.TrackingNumber = order.TrackingNumber
	d.TrackingURL = order.TrackingURL
	d.UpdatedAt = time.Now()
	if err := r.store.setDoc(ctx, ref, d); err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}
	return nil
}
