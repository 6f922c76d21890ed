package handlers

import (
	"log"

	"boutique/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// BannerHandler handles HTTP requests for homepage banners.
type BannerHandler struct {
	service  *services.BannerService
	validate *validator.Validate
}

// NewBannerHandler creates a new BannerHandler.
func NewBannerHandler(service *services.BannerService) *BannerHandler {
	return &BannerHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the banner routes. The storefront only ever sees
// the active list, already ordered; everything else requires an admin token.
func (h *BannerHandler) RegisterRoutes(router fiber.Router, adminRequired fiber.Handler) {
	bannerRoutes := router.Group("/banners")
	bannerRoutes.Get("/active", h.HandleGetActiveBanners)
	bannerRoutes.Get("/", adminRequired, h.HandleGetBanners)
	bannerRoutes.Post("/", adminRequired, h.HandleCreateBanner)
	bannerRoutes.Post("/reorder", adminRequired, h.HandleReorderBanners)
	bannerRoutes.Put("/:id", adminRequired, h.HandleUpdateBanner)
	bannerRoutes.Delete("/:id", adminRequired, h.HandleDeleteBanner)
}

// HandleGetActiveBanners retrieves the active banners in display order.
func (h *BannerHandler) HandleGetActiveBanners(c *fiber.Ctx) error {
	banners, err := h.service.GetActiveBanners(c.Context())
	if err != nil {
		log.Printf("Error getting active banners: %v", err)
		return serviceError(c, err, "Could not retrieve banners")
	}
	return c.JSON(banners)
}

// HandleGetBanners retrieves every banner, active or not.
func (h *BannerHandler) HandleGetBanners(c *fiber.Ctx) error {
	banners, err := h.service.GetAllBanners(c.Context())
	if err != nil {
		log.Printf("Error getting banners: %v", err)
		return serviceError(c, err, "Could not retrieve banners")
	}
	return c.JSON(banners)
}

// HandleCreateBanner creates a new banner.
func (h *BannerHandler) HandleCreateBanner(c *fiber.Ctx) error {
	var in services.BannerInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := h.validate.Struct(in); err != nil {
		return validationFailed(c, err)
	}

	banner, err := h.service.CreateBanner(c.Context(), in)
	if err != nil {
		log.Printf("Error creating banner: %v", err)
		return serviceError(c, err, "Could not create banner")
	}
	return c.Status(fiber.StatusCreated).JSON(banner)
}

// HandleUpdateBanner updates an existing banner.
func (h *BannerHandler) HandleUpdateBanner(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	var in services.BannerInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := h.validate.Struct(in); err != nil {
		return validationFailed(c, err)
	}

	banner, err := h.service.UpdateBanner(c.Context(), id, in)
	if err != nil {
		log.Printf("Error updating banner %d: %v", id, err)
		return serviceError(c, err, "Could not update banner")
	}
	return c.JSON(banner)
}

// HandleReorderBanners rewrites the display order from the given id list.
func (h *BannerHandler) HandleReorderBanners(c *fiber.Ctx) error {
	var body struct {
		BannerIDs []uint `json:"bannerIds" validate:"required,min=1"`
	}
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := h.validate.Struct(body); err != nil {
		return validationFailed(c, err)
	}

	banners, err := h.service.ReorderBanners(c.Context(), body.BannerIDs)
	if err != nil {
		log.Printf("Error reordering banners: %v", err)
		return serviceError(c, err, "Could not reorder banners")
	}
	return c.JSON(banners)
}

// HandleDeleteBanner deletes a banner.
func (h *BannerHandler) HandleDeleteBanner(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	if err := h.service.DeleteBanner(c.Context(), id); err != nil {
		log.Printf("Error deleting banner %d: %v", id, err)
		return serviceError(c, err, "Could not delete banner")
	}
	return c.JSON(fiber.Map{
		"message": "Banner deleted successfully",
	})
}
