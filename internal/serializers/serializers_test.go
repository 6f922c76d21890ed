package serializers_test

import (
	"testing"

	"boutique/internal/models"
	"boutique/internal/serializers"

	"github.com/stretchr/testify/assert"
)

func TestFormatCents(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{0, "0.00"},
		{5, "0.05"},
		{99, "0.99"},
		{100, "1.00"},
		{12999, "129.99"},
		{-2550, "-25.50"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, serializers.FormatCents(tc.cents))
	}
}

func TestProductSerialization(t *testing.T) {
	p := &models.Product{
		ID:         3,
		Name:       "Silk Dress",
		PriceCents: 12999,
		Categories: []models.Category{
			{ID: 1, Name: "Dresses", Slug: "dresses", Description: "ignored"},
		},
	}

	resp := serializers.Product(p)

	assert.Equal(t, "129.99", resp.Price)
	assert.Equal(t, int64(12999), resp.PriceCents)
	if assert.Len(t, resp.Categories, 1) {
		assert.Equal(t, "dresses", resp.Categories[0].Slug)
	}
}

func TestOrderSerialization(t *testing.T) {
	o := &models.Order{
		ID:         9,
		Status:     models.OrderPending,
		Source:     models.SourceWebsite,
		TotalCents: 15499,
		User:       &models.User{ID: 4, Name: "Ada", Email: "ada@example.com", Password: "hash"},
		Items: []models.OrderItem{
			{
				ID:             1,
				ProductID:      3,
				Quantity:       1,
				UnitPriceCents: 12999,
				ColorName:      "Red",
				SizeName:       "S",
				Product:        &models.Product{ID: 3, Name: "Silk Dress", Image: "/uploads/dress.jpg"},
			},
			{ID: 2, ProductID: 5, Quantity: 1, UnitPriceCents: 2500},
		},
	}

	resp := serializers.Order(o)

	assert.Equal(t, "154.99", resp.Total)
	if assert.NotNil(t, resp.User) {
		assert.Equal(t, "Ada", resp.User.Name)
	}
	if assert.Len(t, resp.Items, 2) {
		assert.Equal(t, "129.99", resp.Items[0].UnitPrice)
		assert.Equal(t, "Silk Dress", resp.Items[0].ProductName)
		// The second line's product relation was not loaded; the snapshot
		// fields still render.
		assert.Empty(t, resp.Items[1].ProductName)
		assert.Equal(t, "25.00", resp.Items[1].UnitPrice)
	}
}
