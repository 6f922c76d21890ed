package handlers

import (
	"log"
	"strings"

	"boutique/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for customer authentication.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router, userRequired fiber.Handler) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/register", h.HandleRegister)
	authRoutes.Post("/login", h.HandleLogin)
	authRoutes.Post("/google", h.HandleGoogleSignIn)
	authRoutes.Get("/me", userRequired, h.HandleGetProfile)
	authRoutes.Put("/profile", userRequired, h.HandleUpdateProfile)
}

// HandleRegister handles new user registration.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var in services.RegisterInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := h.validate.Struct(in); err != nil {
		return validationFailed(c, err)
	}

	user, token, err := h.authService.RegisterUser(c.Context(), in)
	if err != nil {
		log.Printf("Error registering user: %v", err)
		if strings.Contains(err.Error(), "already registered") {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": err.Error(),
			})
		}
		return serviceError(c, err, "Could not register user")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"user":    user,
		"token":   token,
	})
}

// HandleLogin handles user login and issues a JWT token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var in services.LoginInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := h.validate.Struct(in); err != nil {
		return validationFailed(c, err)
	}

	user, token, err := h.authService.LoginUser(c.Context(), in)
	if err != nil {
		log.Printf("Error during login for %s: %v", in.Email, err)
		return serviceError(c, err, "Authentication failed")
	}
	return c.JSON(fiber.Map{
		"message": "Login successful",
		"user":    user,
		"token":   token,
	})
}

// HandleGoogleSignIn exchanges a Google ID token for a session token,
// creating the account on first sign-in.
func (h *AuthHandler) HandleGoogleSignIn(c *fiber.Ctx) error {
	var body struct {
		IDToken string `json:"idToken" validate:"required"`
	}
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := h.validate.Struct(body); err != nil {
		return validationFailed(c, err)
	}

	user, token, err := h.authService.GoogleSignIn(c.Context(), body.IDToken)
	if err != nil {
		log.Printf("Error during Google sign-in: %v", err)
		return serviceError(c, err, "Authentication failed")
	}
	return c.JSON(fiber.Map{
		"message": "Login successful",
		"user":    user,
		"token":   token,
	})
}

// HandleGetProfile returns the authenticated user's profile.
func (h *AuthHandler) HandleGetProfile(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Authentication required",
		})
	}
	user, err := h.authService.GetUser(c.Context(), userID)
	if err != nil {
		log.Printf("Error getting user %d: %v", userID, err)
		return serviceError(c, err, "Could not retrieve profile")
	}
	return c.JSON(user)
}

// HandleUpdateProfile updates the authenticated user's profile fields.
func (h *AuthHandler) HandleUpdateProfile(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Authentication required",
		})
	}
	var in services.ProfileInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := h.validate.Struct(in); err != nil {
		return validationFailed(c, err)
	}

	user, err := h.authService.UpdateProfile(c.Context(), userID, in)
	if err != nil {
		log.Printf("Error updating profile for user %d: %v", userID, err)
		return serviceError(c, err, "Could not update profile")
	}
	return c.JSON(user)
}
