package handlers

import (
	"log"

	"boutique/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AdminHandler handles admin authentication, user listing and reporting.
type AdminHandler struct {
	authService   *services.AuthService
	reportService *services.ReportService
	validate      *validator.Validate
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(authService *services.AuthService, reportService *services.ReportService) *AdminHandler {
	return &AdminHandler{
		authService:   authService,
		reportService: reportService,
		validate:      validator.New(),
	}
}

// RegisterRoutes registers the admin login route, which is the only admin
// route reachable without a token.
func (h *AdminHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/admin/login", h.HandleAdminLogin)
}

// RegisterAdminRoutes registers the token-protected admin routes.
func (h *AdminHandler) RegisterAdminRoutes(router fiber.Router) {
	router.Get("/me", h.HandleAdminMe)
	router.Get("/users", h.HandleGetUsers)
	router.Get("/users/:id", h.HandleGetUserByID)
	router.Get("/reports/overview", h.HandleOverviewReport)
}

// HandleAdminLogin authenticates against the configured admin credentials.
func (h *AdminHandler) HandleAdminLogin(c *fiber.Ctx) error {
	var in services.LoginInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := h.validate.Struct(in); err != nil {
		return validationFailed(c, err)
	}

	token, err := h.authService.AdminLogin(in)
	if err != nil {
		log.Printf("Admin login failed for %s: %v", in.Email, err)
		return serviceError(c, err, "Authentication failed")
	}
	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   token,
	})
}

// HandleAdminMe confirms the admin session.
func (h *AdminHandler) HandleAdminMe(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"email": h.authService.AdminEmail(),
		"role":  "admin",
	})
}

// HandleGetUsers retrieves all registered customers.
func (h *AdminHandler) HandleGetUsers(c *fiber.Ctx) error {
	users, err := h.authService.GetAllUsers(c.Context())
	if err != nil {
		log.Printf("Error getting users: %v", err)
		return serviceError(c, err, "Could not retrieve users")
	}
	return c.JSON(users)
}

// HandleGetUserByID retrieves a single customer with their orders.
func (h *AdminHandler) HandleGetUserByID(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	user, err := h.authService.GetUser(c.Context(), id)
	if err != nil {
		log.Printf("Error getting user %d: %v", id, err)
		return serviceError(c, err, "Could not retrieve user")
	}
	return c.JSON(user)
}

// HandleOverviewReport returns the dashboard overview numbers.
func (h *AdminHandler) HandleOverviewReport(c *fiber.Ctx) error {
	report, err := h.reportService.Overview(c.Context())
	if err != nil {
		log.Printf("Error building overview report: %v", err)
		return serviceError(c, err, "Could not build report")
	}
	return c.JSON(report)
}
