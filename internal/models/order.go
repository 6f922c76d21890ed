package models

import "time"

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderPending    OrderStatus = "PENDING"
	OrderProcessing OrderStatus = "PROCESSING"
	OrderShipped    OrderStatus = "SHIPPED"
	OrderDelivered  OrderStatus = "DELIVERED"
	OrderCancelled  OrderStatus = "CANCELLED"
)

// Valid reports whether s is a known status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// OrderSource records which channel an order came in through.
type OrderSource string

const (
	SourceWebsite   OrderSource = "WEBSITE"
	SourceInstagram OrderSource = "INSTAGRAM"
	SourcePhone     OrderSource = "PHONE"
	SourceInPerson  OrderSource = "IN_PERSON"
	SourceOther     OrderSource = "OTHER"
)

// Valid reports whether s is a known source.
func (s OrderSource) Valid() bool {
	switch s {
	case SourceWebsite, SourceInstagram, SourcePhone, SourceInPerson, SourceOther:
		return true
	}
	return false
}

// OrderItem is one line of an order. Unit price and selected color/size are
// snapshots taken at purchase time; later edits to the product never change
// them.
type OrderItem struct {
	ID             uint     `json:"id" gorm:"primaryKey"`
	OrderID        uint     `json:"orderId"`
	ProductID      uint     `json:"productId"`
	Product        *Product `json:"product,omitempty"`
	Quantity       int      `json:"quantity"`
	UnitPriceCents int64    `json:"unitPriceCents"`
	ColorName      string   `json:"colorName,omitempty"`
	ColorHex       string   `json:"colorHex,omitempty"`
	ColorImage     string   `json:"colorImage,omitempty"`
	SizeName       string   `json:"sizeName,omitempty"`
}

// Order is a customer order. It is created atomically with its items and
// the matching stock decrement, and afterwards mutated only through status
// and tracking updates.
type Order struct {
	ID             uint        `json:"id" gorm:"primaryKey"`
	Status         OrderStatus `json:"status" gorm:"type:varchar(20)"`
	TotalCents     int64       `json:"totalCents"`
	Source         OrderSource `json:"source" gorm:"type:varchar(20)"`
	TrackingNumber string      `json:"trackingNumber,omitempty"`
	TrackingURL    string      `json:"trackingUrl,omitempty"`
	UserID         uint        `json:"userId"`
	User           *User       `json:"user,omitempty"`
	Items          []OrderItem `json:"items" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}
