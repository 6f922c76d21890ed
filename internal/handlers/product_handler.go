package handlers

import (
	"log"

	"boutique/internal/repositories"
	"boutique/internal/serializers"
	"boutique/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the product routes. Reads are public, writes
// require an admin token.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, adminRequired fiber.Handler) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Post("/", adminRequired, h.HandleCreateProduct)
	productRoutes.Put("/:id", adminRequired, h.HandleUpdateProduct)
	productRoutes.Delete("/:id", adminRequired, h.HandleDeleteProduct)
}

// HandleGetProducts retrieves products, optionally filtered by category slug
// or limited to featured items.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	filter := repositories.ProductFilter{
		CategorySlug: c.Query("category"),
		FeaturedOnly: c.QueryBool("featured"),
	}
	products, err := h.service.GetAllProducts(c.Context(), filter)
	if err != nil {
		log.Printf("Error getting products: %v", err)
		return serviceError(c, err, "Could not retrieve products")
	}
	return c.JSON(serializers.Products(products))
}

// HandleGetProductByID retrieves a single product.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	product, err := h.service.GetProductByID(c.Context(), id)
	if err != nil {
		log.Printf("Error getting product %d: %v", id, err)
		return serviceError(c, err, "Could not retrieve product")
	}
	return c.JSON(serializers.Product(product))
}

// HandleCreateProduct creates a new product.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var in services.ProductInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := h.validate.Struct(in); err != nil {
		return validationFailed(c, err)
	}

	product, err := h.service.CreateProduct(c.Context(), in)
	if err != nil {
		log.Printf("Error creating product: %v", err)
		return serviceError(c, err, "Could not create product")
	}
	return c.Status(fiber.StatusCreated).JSON(serializers.Product(product))
}

// HandleUpdateProduct updates an existing product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	var in services.ProductInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := h.validate.Struct(in); err != nil {
		return validationFailed(c, err)
	}

	product, err := h.service.UpdateProduct(c.Context(), id, in)
	if err != nil {
		log.Printf("Error updating product %d: %v", id, err)
		return serviceError(c, err, "Could not update product")
	}
	return c.JSON(serializers.Product(product))
}

// HandleDeleteProduct deletes a product.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	if err := h.service.DeleteProduct(c.Context(), id); err != nil {
		log.Printf("Error deleting product %d: %v", id, err)
		return serviceError(c, err, "Could not delete product")
	}
	return c.JSON(fiber.Map{
		"message": "Product deleted successfully",
	})
}
