package services

import (
	"context"
	"errors"
	"log"

	"boutique/internal/models"
	"boutique/internal/repositories"
	"boutique/pkg/rabbitmq"
)

// OrderItemInput is one requested line of a new order.
type OrderItemInput struct {
	ProductID     uint   `json:"productId" validate:"required"`
	Quantity      int    `json:"quantity" validate:"required,gt=0"`
	SelectedColor string `json:"selectedColor"`
	SelectedSize  string `json:"selectedSize"`
}

// CustomerInput is the contact and shipping block of a checkout.
type CustomerInput struct {
	Name         string `json:"name" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Phone        string `json:"phone"`
	AddressLine1 string `json:"addressLine1" validate:"required"`
	AddressLine2 string `json:"addressLine2"`
	City         string `json:"city" validate:"required"`
	State        string `json:"state"`
	PostalCode   string `json:"postalCode" validate:"required"`
	Country      string `json:"country" validate:"required"`
}

// PlaceOrderInput is a checkout request. UserID is set by the handler from
// an optional bearer token, never by the client body.
type PlaceOrderInput struct {
	Items    []OrderItemInput   `json:"items" validate:"required,min=1,dive"`
	Customer CustomerInput      `json:"customer" validate:"required"`
	Source   models.OrderSource `json:"source" validate:"omitempty,oneof=WEBSITE INSTAGRAM PHONE IN_PERSON OTHER"`
	UserID   uint               `json:"-"`
}

// OrderUpdateInput carries the admin-mutable order fields.
type OrderUpdateInput struct {
	Status         models.OrderStatus `json:"status" validate:"required,oneof=PENDING PROCESSING SHIPPED DELIVERED CANCELLED"`
	TrackingNumber string             `json:"trackingNumber"`
	TrackingURL    string             `json:"trackingUrl"`
}

// OrderService handles business logic related to orders.
type OrderService struct {
	store    repositories.Store
	mqClient *rabbitmq.Client
}

// NewOrderService creates a new OrderService. mqClient may be nil; order
// events are then skipped.
func NewOrderService(store repositories.Store, mqClient *rabbitmq.Client) *OrderService {
	return &OrderService{store: store, mqClient: mqClient}
}

// GetAllOrders retrieves all orders.
func (s *OrderService) GetAllOrders(ctx context.Context) ([]models.Order, error) {
	return s.store.Orders().GetAll(ctx)
}

// GetOrderByID retrieves a single order with relations.
func (s *OrderService) GetOrderByID(ctx context.Context, id uint) (*models.Order, error) {
	return s.store.Orders().GetByID(ctx, id)
}

// GetOrdersForUser retrieves the authenticated user's orders.
func (s *OrderService) GetOrdersForUser(ctx context.Context, userID uint) ([]models.Order, error) {
	return s.store.Orders().GetByUser(ctx, userID)
}

// PlaceOrder validates availability, computes the total, resolves the owning
// user, persists the order with purchase-time snapshots and decrements stock.
// Every step runs in one transaction; any failure rolls back all of it.
func (s *OrderService) PlaceOrder(ctx context.Context, in PlaceOrderInput) (*models.Order, error) {
	source := in.Source
	if source == "" {
		source = models.SourceWebsite
	}

	var orderID uint
	err := s.store.RunInTransaction(ctx, func(tx repositories.Store) error {
		// Batch-load every referenced product once.
		seen := make(map[uint]bool, len(in.Items))
		ids := make([]uint, 0, len(in.Items))
		for _, item := range in.Items {
			if !seen[item.ProductID] {
				seen[item.ProductID] = true
				ids = append(ids, item.ProductID)
			}
		}
		products, err := tx.Products().GetByIDs(ctx, ids)
		if err != nil {
			return err
		}
		if len(products) != len(ids) {
			return validationError("one or more products not found")
		}
		byID := make(map[uint]*models.Product, len(products))
		for i := range products {
			byID[products[i].ID] = &products[i]
		}

		// Validate each line in request order and accumulate the total.
		var total int64
		for _, item := range in.Items {
			p := byID[item.ProductID]

			if len(p.Colors) > 0 && item.SelectedColor == "" {
				return validationError("please select a color for %s", p.Name)
			}
			if item.SelectedColor != "" && !p.HasColor(item.SelectedColor) {
				return validationError("selected color is not available")
			}
			if len(p.Sizes) > 0 && item.SelectedSize == "" {
				return validationError("please select a size for %s", p.Name)
			}
			if item.SelectedSize != "" && !p.HasSize(item.SelectedSize) {
				return validationError("selected size is not available")
			}

			available := p.AvailableQuantity(item.SelectedColor, item.SelectedSize)
			if available < item.Quantity {
				return validationError("insufficient inventory for %s. Available: %d, Requested: %d",
					p.Name, available, item.Quantity)
			}
			total += p.PriceCents * int64(item.Quantity)
		}

		// Resolve the owning user: the authenticated account, or an upsert
		// by checkout email for guests.
		user, err := s.resolveUser(ctx, tx, in)
		if err != nil {
			return err
		}

		// Create the order with purchase-time snapshots.
		order := &models.Order{
			Status:     models.OrderPending,
			Source:     source,
			TotalCents: total,
			UserID:     user.ID,
		}
		for _, item := range in.Items {
			p := byID[item.ProductID]
			line := models.OrderItem{
				ProductID:      p.ID,
				Quantity:       item.Quantity,
				UnitPriceCents: p.PriceCents,
				SizeName:       item.SelectedSize,
			}
			if color := p.ColorByName(item.SelectedColor); color != nil {
				line.ColorName = color.Name
				line.ColorHex = color.Hex
				line.ColorImage = color.Image
			}
			order.Items = append(order.Items, line)
		}
		if err := tx.Orders().Create(ctx, order); err != nil {
			return err
		}

		// Decrement stock per line, then persist each touched product once.
		for _, item := range in.Items {
			byID[item.ProductID].DecrementStock(item.SelectedColor, item.SelectedSize, item.Quantity)
		}
		for _, id := range ids {
			if err := tx.Products().Update(ctx, byID[id]); err != nil {
				return err
			}
		}

		orderID = order.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	order, err := s.store.Orders().GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	s.publishOrderPlaced(order)
	return order, nil
}

// resolveUser finds or creates the customer record and refreshes its
// contact and address fields from the checkout block.
func (s *OrderService) resolveUser(ctx context.Context, tx repositories.Store, in PlaceOrderInput) (*models.User, error) {
	c := in.Customer

	if in.UserID != 0 {
		user, err := tx.Users().GetByID(ctx, in.UserID)
		if err != nil {
			return nil, err
		}
		applyCustomer(user, c)
		if err := tx.Users().Update(ctx, user); err != nil {
			return nil, err
		}
		return user, nil
	}

	user, err := tx.Users().GetByEmail(ctx, c.Email)
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			return nil, err
		}
		user = &models.User{Email: c.Email}
		applyCustomer(user, c)
		if err := tx.Users().Create(ctx, user); err != nil {
			return nil, err
		}
		return user, nil
	}
	// Guest checkout with a known email merges into that account.
	applyCustomer(user, c)
	if err := tx.Users().Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func applyCustomer(user *models.User, c CustomerInput) {
	user.Name = c.Name
	user.Phone = c.Phone
	user.AddressLine1 = c.AddressLine1
	user.AddressLine2 = c.AddressLine2
	user.City = c.City
	user.State = c.State
	user.PostalCode = c.PostalCode
	user.Country = c.Country
}

// UpdateOrder applies an admin status/tracking change.
func (s *OrderService) UpdateOrder(ctx context.Context, id uint, in OrderUpdateInput) (*models.Order, error) {
	if !in.Status.Valid() {
		return nil, validationError("invalid order status: %s", in.Status)
	}
	order, err := s.store.Orders().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	order.Status = in.Status
	order.TrackingNumber = in.TrackingNumber
	order.TrackingURL = in.TrackingURL
	if err := s.store.Orders().Update(ctx, order); err != nil {
		return nil, err
	}
	return s.store.Orders().GetByID(ctx, id)
}

func (s *OrderService) publishOrderPlaced(order *models.Order) {
	if s.mqClient == nil {
		return
	}
	event := map[string]interface{}{
		"orderID":    order.ID,
		"userID":     order.UserID,
		"status":     order.Status,
		"totalCents": order.TotalCents,
		"source":     order.Source,
	}
	if err := s.mqClient.PublishOrderPlaced(event); err != nil {
		log.Printf("Warning: failed to publish order placed event for order %d: %v", order.ID, err)
	} else {
		log.Printf("Published order placed event for order %d", order.ID)
	}
}
