package models

import "time"

// Category groups products. IsTopSelling and IsFeatured are exclusivity
// flags: at most one category in the whole table may hold each of them,
// enforced by clearing the flag on every other row in the same transaction
// that sets it.
type Category struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"type:varchar(120)" validate:"required,min=1,max=120"`
	Slug         string    `json:"slug" gorm:"uniqueIndex;type:varchar(120)" validate:"required,min=1,max=120"`
	Description  string    `json:"description"`
	IsTopSelling bool      `json:"isTopSelling"`
	IsFeatured   bool      `json:"isFeatured"`
	Products     []Product `json:"products,omitempty" gorm:"many2many:product_categories"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
