package models_test

import (
	"testing"

	"boutique/internal/models"

	"github.com/stretchr/testify/assert"
)

func variantProduct() *models.Product {
	return &models.Product{
		ID:        1,
		Name:      "Silk Dress",
		Inventory: 99,
		Colors: []models.ProductColor{
			{Name: "Red", Hex: "#ff0000"},
			{Name: "Black", Hex: "#000000"},
		},
		Sizes: []models.ProductSize{{Name: "S"}, {Name: "M"}},
		InventoryVariants: []models.InventoryVariant{
			{ColorName: "Red", SizeName: "S", Quantity: 5},
			{ColorName: "Red", SizeName: "M", Quantity: 2},
			{ColorName: "Black", SizeName: "M", Quantity: 0},
		},
	}
}

func TestAvailableQuantity_VariantsAuthoritative(t *testing.T) {
	p := variantProduct()

	assert.Equal(t, 5, p.AvailableQuantity("Red", "S"))
	assert.Equal(t, 2, p.AvailableQuantity("Red", "M"))
	assert.Equal(t, 0, p.AvailableQuantity("Black", "M"))

	// Unknown combinations never fall back to the general inventory.
	assert.Equal(t, 0, p.AvailableQuantity("Black", "S"))
	assert.Equal(t, 0, p.AvailableQuantity("Green", "M"))

	// Incomplete selections resolve to zero as well.
	assert.Equal(t, 0, p.AvailableQuantity("Red", ""))
	assert.Equal(t, 0, p.AvailableQuantity("", "M"))
	assert.Equal(t, 0, p.AvailableQuantity("", ""))
}

func TestAvailableQuantity_NoVariants(t *testing.T) {
	p := &models.Product{ID: 2, Name: "Scarf", Inventory: 7}

	assert.Equal(t, 7, p.AvailableQuantity("", ""))
	// Selections are irrelevant without variants.
	assert.Equal(t, 7, p.AvailableQuantity("Red", "M"))
}

func TestDecrementStock_Variant(t *testing.T) {
	p := variantProduct()

	p.DecrementStock("Red", "M", 2)

	assert.Equal(t, 0, p.AvailableQuantity("Red", "M"))
	// Sibling variants and the general inventory are untouched.
	assert.Equal(t, 5, p.AvailableQuantity("Red", "S"))
	assert.Equal(t, 99, p.Inventory)
}

func TestDecrementStock_ClampsAtZero(t *testing.T) {
	p := variantProduct()
	p.DecrementStock("Red", "S", 10)
	assert.Equal(t, 0, p.AvailableQuantity("Red", "S"))

	general := &models.Product{ID: 3, Name: "Belt", Inventory: 3}
	general.DecrementStock("", "", 5)
	assert.Equal(t, 0, general.Inventory)
}

func TestDecrementStock_General(t *testing.T) {
	p := &models.Product{ID: 4, Name: "Hat", Inventory: 10}
	p.DecrementStock("", "", 4)
	assert.Equal(t, 6, p.Inventory)
}

func TestColorLookups(t *testing.T) {
	p := variantProduct()

	assert.True(t, p.HasColor("Red"))
	assert.False(t, p.HasColor("Green"))
	assert.True(t, p.HasSize("M"))
	assert.False(t, p.HasSize("XL"))

	red := p.ColorByName("Red")
	if assert.NotNil(t, red) {
		assert.Equal(t, "#ff0000", red.Hex)
	}
	assert.Nil(t, p.ColorByName("Green"))
}
