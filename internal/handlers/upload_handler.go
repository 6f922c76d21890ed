package handlers

import (
	"log"

	"boutique/internal/services"

	"github.com/gofiber/fiber/v2"
)

// UploadHandler handles media uploads for the admin panel.
type UploadHandler struct {
	service *services.UploadService
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(service *services.UploadService) *UploadHandler {
	return &UploadHandler{service: service}
}

// RegisterRoutes registers the upload routes. Uploads are admin-only.
func (h *UploadHandler) RegisterRoutes(router fiber.Router, adminRequired fiber.Handler) {
	uploadRoutes := router.Group("/upload", adminRequired)
	uploadRoutes.Post("/image", h.HandleUploadImage)
	uploadRoutes.Post("/video", h.HandleUploadVideo)
}

// HandleUploadImage stores an uploaded image and returns its public URL.
func (h *UploadHandler) HandleUploadImage(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "A 'file' form field is required")
	}
	if file.Size > services.MaxImageUploadBytes {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{
			"message": "Image exceeds the maximum upload size",
		})
	}

	url, err := h.service.SaveImage(c.Context(), file)
	if err != nil {
		log.Printf("Error saving image upload: %v", err)
		return serviceError(c, err, "Could not store upload")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"url": url,
	})
}

// HandleUploadVideo stores an uploaded video and returns its public URL.
func (h *UploadHandler) HandleUploadVideo(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "A 'file' form field is required")
	}
	if file.Size > services.MaxVideoUploadBytes {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{
			"message": "Video exceeds the maximum upload size",
		})
	}

	url, err := h.service.SaveVideo(c.Context(), file)
	if err != nil {
		log.Printf("Error saving video upload: %v", err)
		return serviceError(c, err, "Could not store upload")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"url": url,
	})
}
