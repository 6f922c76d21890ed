package handlers

import (
	"log"

	"boutique/internal/services"

	"github.com/gofiber/fiber/v2"
)

// SettingsHandler handles HTTP requests for application settings.
type SettingsHandler struct {
	service *services.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(service *services.SettingsService) *SettingsHandler {
	return &SettingsHandler{service: service}
}

// RegisterRoutes registers the settings routes. Reads are public so the
// storefront can fetch things like the featured product count; writes
// require an admin token.
func (h *SettingsHandler) RegisterRoutes(router fiber.Router, adminRequired fiber.Handler) {
	router.Get("/settings/:key", h.HandleGetSetting)
	router.Put("/settings/:key", adminRequired, h.HandleSetSetting)
}

// HandleGetSetting returns a setting, creating it with its default value on
// first read.
func (h *SettingsHandler) HandleGetSetting(c *fiber.Ctx) error {
	setting, err := h.service.GetSetting(c.Context(), c.Params("key"))
	if err != nil {
		log.Printf("Error getting setting %s: %v", c.Params("key"), err)
		return serviceError(c, err, "Could not retrieve setting")
	}
	return c.JSON(setting)
}

// HandleSetSetting updates a setting's value.
func (h *SettingsHandler) HandleSetSetting(c *fiber.Ctx) error {
	var body struct {
		Value string `json:"value"`
	}
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	setting, err := h.service.SetSetting(c.Context(), c.Params("key"), body.Value)
	if err != nil {
		log.Printf("Error setting %s: %v", c.Params("key"), err)
		return serviceError(c, err, "Could not update setting")
	}
	return c.JSON(setting)
}
