package handlers

import (
	"log"

	"boutique/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CategoryHandler handles HTTP requests for categories.
type CategoryHandler struct {
	service  *services.CategoryService
	validate *validator.Validate
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(service *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the category routes. Reads are public, writes
// require an admin token.
func (h *CategoryHandler) RegisterRoutes(router fiber.Router, adminRequired fiber.Handler) {
	categoryRoutes := router.Group("/categories")
	categoryRoutes.Get("/", h.HandleGetCategories)
	categoryRoutes.Get("/:id", h.HandleGetCategoryByID)
	categoryRoutes.Post("/", adminRequired, h.HandleCreateCategory)
	categoryRoutes.Put("/:id", adminRequired, h.HandleUpdateCategory)
	categoryRoutes.Put("/:id/products", adminRequired, h.HandleSetCategoryProducts)
	categoryRoutes.Delete("/:id", adminRequired, h.HandleDeleteCategory)
}

// HandleGetCategories retrieves all categories.
func (h *CategoryHandler) HandleGetCategories(c *fiber.Ctx) error {
	categories, err := h.service.GetAllCategories(c.Context())
	if err != nil {
		log.Printf("Error getting categories: %v", err)
		return serviceError(c, err, "Could not retrieve categories")
	}
	return c.JSON(categories)
}

// HandleGetCategoryByID retrieves a single category with its products.
func (h *CategoryHandler) HandleGetCategoryByID(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	category, err := h.service.GetCategoryByID(c.Context(), id)
	if err != nil {
		log.Printf("Error getting category %d: %v", id, err)
		return serviceError(c, err, "Could not retrieve category")
	}
	return c.JSON(category)
}

// HandleCreateCategory creates a new category.
func (h *CategoryHandler) HandleCreateCategory(c *fiber.Ctx) error {
	var in services.CategoryInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := h.validate.Struct(in); err != nil {
		return validationFailed(c, err)
	}

	category, err := h.service.CreateCategory(c.Context(), in)
	if err != nil {
		log.Printf("Error creating category: %v", err)
		return serviceError(c, err, "Could not create category")
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

// HandleUpdateCategory updates an existing category.
func (h *CategoryHandler) HandleUpdateCategory(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	var in services.CategoryInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := h.validate.Struct(in); err != nil {
		return validationFailed(c, err)
	}

	category, err := h.service.UpdateCategory(c.Context(), id, in)
	if err != nil {
		log.Printf("Error updating category %d: %v", id, err)
		return serviceError(c, err, "Could not update category")
	}
	return c.JSON(category)
}

// HandleSetCategoryProducts replaces the category's product membership.
func (h *CategoryHandler) HandleSetCategoryProducts(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	var body struct {
		ProductIDs []uint `json:"productIds"`
	}
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	category, err := h.service.SetCategoryProducts(c.Context(), id, body.ProductIDs)
	if err != nil {
		log.Printf("Error setting products for category %d: %v", id, err)
		return serviceError(c, err, "Could not update category products")
	}
	return c.JSON(category)
}

// HandleDeleteCategory deletes a category. Its products survive and only
// lose the association.
func (h *CategoryHandler) HandleDeleteCategory(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	if err := h.service.DeleteCategory(c.Context(), id); err != nil {
		log.Printf("Error deleting category %d: %v", id, err)
		return serviceError(c, err, "Could not delete category")
	}
	return c.JSON(fiber.Map{
		"message": "Category deleted successfully",
	})
}
