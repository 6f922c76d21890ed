package handlers

import (
	"log"

	"boutique/internal/serializers"
	"boutique/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service  *services.OrderService
	validate *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the order routes. userOptional attaches JWT
// claims when present so logged-in customers get their orders linked, but
// guests can still check out. Listing and updating orders is admin-only.
func (h *OrderHandler) RegisterRoutes(router fiber.Router, userOptional, userRequired, adminRequired fiber.Handler) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Post("/", userOptional, h.HandlePlaceOrder)
	orderRoutes.Get("/me", userRequired, h.HandleGetMyOrders)
	orderRoutes.Get("/", adminRequired, h.HandleGetOrders)
	orderRoutes.Get("/:id", adminRequired, h.HandleGetOrderByID)
	orderRoutes.Put("/:id", adminRequired, h.HandleUpdateOrder)
}

// HandlePlaceOrder creates a new order from a checkout request.
func (h *OrderHandler) HandlePlaceOrder(c *fiber.Ctx) error {
	var in services.PlaceOrderInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := h.validate.Struct(in); err != nil {
		return validationFailed(c, err)
	}
	if userID, ok := currentUserID(c); ok {
		in.UserID = userID
	}

	order, err := h.service.PlaceOrder(c.Context(), in)
	if err != nil {
		log.Printf("Error placing order: %v", err)
		return serviceError(c, err, "Could not place order")
	}
	return c.Status(fiber.StatusCreated).JSON(serializers.Order(order))
}

// HandleGetMyOrders retrieves the authenticated customer's orders.
func (h *OrderHandler) HandleGetMyOrders(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Authentication required",
		})
	}
	orders, err := h.service.GetOrdersForUser(c.Context(), userID)
	if err != nil {
		log.Printf("Error getting orders for user %d: %v", userID, err)
		return serviceError(c, err, "Could not retrieve orders")
	}
	return c.JSON(serializers.Orders(orders))
}

// HandleGetOrders retrieves all orders, newest first.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	orders, err := h.service.GetAllOrders(c.Context())
	if err != nil {
		log.Printf("Error getting orders: %v", err)
		return serviceError(c, err, "Could not retrieve orders")
	}
	return c.JSON(serializers.Orders(orders))
}

// HandleGetOrderByID retrieves a single order.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	order, err := h.service.GetOrderByID(c.Context(), id)
	if err != nil {
		log.Printf("Error getting order %d: %v", id, err)
		return serviceError(c, err, "Could not retrieve order")
	}
	return c.JSON(serializers.Order(order))
}

// HandleUpdateOrder updates an order's status and tracking details.
func (h *OrderHandler) HandleUpdateOrder(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	var in services.OrderUpdateInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := h.validate.Struct(in); err != nil {
		return validationFailed(c, err)
	}

	order, err := h.service.UpdateOrder(c.Context(), id, in)
	if err != nil {
		log.Printf("Error updating order %d: %v", id, err)
		return serviceError(c, err, "Could not update order")
	}
	return c.JSON(serializers.Order(order))
}
