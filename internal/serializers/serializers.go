// Package serializers converts persisted models into the wire shapes the
// storefront and admin clients consume: cents become decimal money strings
// alongside the raw integer, and relations are flattened to summaries.
package serializers

import (
	"fmt"
	"time"

	"boutique/internal/models"
)

// FormatCents renders minor currency units as a decimal string, e.g.
// 12999 -> "129.99".
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

// CategorySummary is the flattened category attached to products.
type CategorySummary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// ProductResponse is the wire form of a product.
type ProductResponse struct {
	ID                uint                      `json:"id"`
	Name              string                    `json:"name"`
	Description       string                    `json:"description"`
	PriceCents        int64                     `json:"priceCents"`
	Price             string                    `json:"price"`
	Image             string                    `json:"image"`
	Gallery           []string                  `json:"gallery"`
	Colors            []models.ProductColor     `json:"colors"`
	Sizes             []models.ProductSize      `json:"sizes"`
	ItemType          string                    `json:"itemType"`
	Inventory         int                       `json:"inventory"`
	InventoryVariants []models.InventoryVariant `json:"inventoryVariants"`
	Featured          bool                      `json:"featured"`
	Categories        []CategorySummary         `json:"categories"`
	CreatedAt         time.Time                 `json:"createdAt"`
	UpdatedAt         time.Time                 `json:"updatedAt"`
}

// Product serializes one product.
func Product(p *models.Product) ProductResponse {
	categories := make([]CategorySummary, 0, len(p.Categories))
	for _, c := range p.Categories {
		categories = append(categories, CategorySummary{ID: c.ID, Name: c.Name, Slug: c.Slug})
	}
	return ProductResponse{
		ID:                p.ID,
		Name:              p.Name,
		Description:       p.Description,
		PriceCents:        p.PriceCents,
		Price:             FormatCents(p.PriceCents),
		Image:             p.Image,
		Gallery:           p.Gallery,
		Colors:            p.Colors,
		Sizes:             p.Sizes,
		ItemType:          p.ItemType,
		Inventory:         p.Inventory,
		InventoryVariants: p.InventoryVariants,
		Featured:          p.Featured,
		Categories:        categories,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

// Products serializes a product list.
func Products(products []models.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, Product(&products[i]))
	}
	return out
}

// UserSummary is the flattened user attached to orders.
type UserSummary struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// OrderItemResponse is the wire form of an order line.
type OrderItemResponse struct {
	ID             uint   `json:"id"`
	ProductID      uint   `json:"productId"`
	ProductName    string `json:"productName,omitempty"`
	ProductImage   string `json:"productImage,omitempty"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unitPriceCents"`
	UnitPrice      string `json:"unitPrice"`
	ColorName      string `json:"colorName,omitempty"`
	ColorHex       string `json:"colorHex,omitempty"`
	ColorImage     string `json:"colorImage,omitempty"`
	SizeName       string `json:"sizeName,omitempty"`
}

// OrderResponse is the wire form of an order.
type OrderResponse struct {
	ID             uint                `json:"id"`
	Status         models.OrderStatus  `json:"status"`
	Source         models.OrderSource  `json:"source"`
	TotalCents     int64               `json:"totalCents"`
	Total          string              `json:"total"`
	TrackingNumber string              `json:"trackingNumber,omitempty"`
	TrackingURL    string              `json:"trackingUrl,omitempty"`
	User           *UserSummary        `json:"user,omitempty"`
	Items          []OrderItemResponse `json:"items"`
	CreatedAt      time.Time           `json:"createdAt"`
	UpdatedAt      time.Time           `json:"updatedAt"`
}

// Order serializes one order with its relations flattened.
func Order(o *models.Order) OrderResponse {
	resp := OrderResponse{
		ID:             o.ID,
		Status:         o.Status,
		Source:         o.Source,
		TotalCents:     o.TotalCents,
		Total:          FormatCents(o.TotalCents),
		TrackingNumber: o.TrackingNumber,
		TrackingURL:    o.TrackingURL,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
	if o.User != nil {
		resp.User = &UserSummary{ID: o.User.ID, Name: o.User.Name, Email: o.User.Email, Phone: o.User.Phone}
	}
	resp.Items = make([]OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		line := OrderItemResponse{
			ID:             item.ID,
			ProductID:      item.ProductID,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
			UnitPrice:      FormatCents(item.UnitPriceCents),
			ColorName:      item.ColorName,
			ColorHex:       item.ColorHex,
			ColorImage:     item.ColorImage,
			SizeName:       item.SizeName,
		}
		if item.Product != nil {
			line.ProductName = item.Product.Name
			line.ProductImage = item.Product.Image
		}
		resp.Items = append(resp.Items, line)
	}
	return resp
}

// Orders serializes an order list.
func Orders(orders []models.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, Order(&orders[i]))
	}
	return out
}
