package models

import (
	"time"

	"gorm.io/datatypes"
)

// ProductColor is one selectable color of a product.
type ProductColor struct {
	Name  string `json:"name" validate:"required"`
	Hex   string `json:"hex,omitempty"`
	Image string `json:"image,omitempty"`
}

// ProductSize is one selectable size of a product.
type ProductSize struct {
	Name string `json:"name" validate:"required"`
}

// InventoryVariant tracks stock for a specific (color, size) combination.
// When a product has any variants they are authoritative for availability;
// the general Inventory field is only a fallback for variant-less products.
type InventoryVariant struct {
	ColorName string `json:"colorName" validate:"required"`
	SizeName  string `json:"sizeName" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gte=0"`
}

// Product represents a product in the store.
type Product struct {
	ID                uint                                  `json:"id" gorm:"primaryKey"`
	Name              string                                `json:"name" gorm:"type:varchar(200)" validate:"required,min=1,max=200"`
	Description       string                                `json:"description" validate:"omitempty,max=5000"`
	PriceCents        int64                                 `json:"priceCents" validate:"gte=0"`
	Image             string                                `json:"image"`
	Gallery           datatypes.JSONSlice[string]           `json:"gallery"`
	Colors            datatypes.JSONSlice[ProductColor]     `json:"colors"`
	Sizes             datatypes.JSONSlice[ProductSize]      `json:"sizes"`
	ItemType          string                                `json:"itemType"`
	Inventory         int                                   `json:"inventory" validate:"gte=0"`
	InventoryVariants datatypes.JSONSlice[InventoryVariant] `json:"inventoryVariants"`
	Featured          bool                                  `json:"featured"`
	Categories        []Category                            `json:"categories" gorm:"many2many:product_categories"`
	CreatedAt         time.Time                             `json:"createdAt"`
	UpdatedAt         time.Time                             `json:"updatedAt"`
}

// HasColor reports whether name matches one of the product's colors.
func (p *Product) HasColor(name string) bool {
	for _, c := range p.Colors {
		if c.Name == name {
			return true
		}
	}
	return false
}

// HasSize reports whether name matches one of the product's sizes.
func (p *Product) HasSize(name string) bool {
	for _, s := range p.Sizes {
		if s.Name == name {
			return true
		}
	}
	return false
}

// ColorByName returns the color entry matching name, or nil.
func (p *Product) ColorByName(name string) *ProductColor {
	for i := range p.Colors {
		if p.Colors[i].Name == name {
			return &p.Colors[i]
		}
	}
	return nil
}

// AvailableQuantity resolves the purchasable stock for a (color, size)
// selection. Variants always win when any exist: an incomplete selection
// or an unknown combination yields 0 rather than falling back to the
// general inventory, so unidentified variants are never sold.
func (p *Product) AvailableQuantity(colorName, sizeName string) int {
	if len(p.InventoryVariants) == 0 {
		return p.Inventory
	}
	if colorName == "" || sizeName == "" {
		return 0
	}
	for _, v := range p.InventoryVariants {
		if v.ColorName == colorName && v.SizeName == sizeName {
			return v.Quantity
		}
	}
	return 0
}

// DecrementStock removes quantity units from the stock pool that
// AvailableQuantity resolved for the same selection. Variant quantities are
// clamped at zero; the variant list is rewritten as a whole.
func (p *Product) DecrementStock(colorName, sizeName string, quantity int) {
	if len(p.InventoryVariants) == 0 {
		p.Inventory -= quantity
		if p.Inventory < 0 {
			p.Inventory = 0
		}
		return
	}
	variants := make([]InventoryVariant, len(p.InventoryVariants))
	copy(variants, p.InventoryVariants)
	for i, v := range variants {
		if v.ColorName == colorName && v.SizeName == sizeName {
			v.Quantity -= quantity
			if v.Quantity < 0 {
				v.Quantity = 0
			}
			variants[i] = v
			break
		}
	}
	p.InventoryVariants = variants
}
