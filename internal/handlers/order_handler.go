package handlers

import (
	"errors"
	"fmt"
	"log"
	"strconv"

	"orderhub/internal/models"
	"orderhub/internal/services"

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

// RegisterRoutes registers the order routes with the Fiber app.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Post("/", h.HandlePlaceOrder)
	orderRoutes.Get("/user", h.HandleGetUserOrders)
	orderRoutes.Get("/user/details", h.HandleGetUserOrderDetails)
	orderRoutes.Get("/analytics/count", h.HandleGetOrderCount)
	orderRoutes.Get("/analytics/revenue", h.HandleGetTotalRevenue)
	orderRoutes.Get("/analytics/pending", h.HandleGetPendingOrderCount)
	orderRoutes.Get("/analytics/completed", h.HandleGetCompletedOrderCount)
	orderRoutes.Get("/", h.HandleGetOrders)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)
	orderRoutes.Delete("/:id", h.HandleDeleteOrder)
	orderRoutes.Patch("/:id/status", h.HandleUpdateOrderStatus)
	orderRoutes.Patch("/:id/tracking", h.HandleUpdateOrderTracking)
	orderRoutes.Patch("/:id/payment-status", h.HandleUpdatePaymentStatus)
	orderRoutes.Post("/:id/delivered", h.HandleMarkOrderAsDelivered)
}

// authenticatedUserID reads the user id placed in the context by the auth
// middleware.
func authenticatedUserID(c *fiber.Ctx) (int64, error) {
	userID, ok := c.Locals("user_id").(int64)
	if !ok {
		return 0, fmt.Errorf("no authenticated user in request context")
	}
	return userID, nil
}

func orderIDParam(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid order id %q", c.Params("id"))
	}
	return uint(id), nil
}

// serviceError maps the service error taxonomy to HTTP status codes.
func serviceError(c *fiber.Ctx, err error) error {
	var (
		validationErr *services.ValidationError
		stockErr      *services.StockError
		paymentErr    *services.PaymentError
		notFoundErr   *services.NotFoundError
	)
	switch {
	case errors.As(err, &validationErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   validationErr.Message,
		})
	case errors.As(err, &stockErr):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": "Order creation failed due to insufficient stock",
			"error":   stockErr.Message,
		})
	case errors.As(err, &paymentErr):
		return c.Status(fiber.StatusPaymentRequired).JSON(fiber.Map{
			"message": "Payment failed",
			"error":   paymentErr.Message,
		})
	case errors.As(err, &notFoundErr):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": notFoundErr.Message,
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Internal server error",
			"error":   err.Error(),
		})
	}
}

// HandlePlaceOrder runs the place-order workflow for the authenticated user.
func (h *OrderHandler) HandlePlaceOrder(c *fiber.Ctx) error {
	userID, err := authenticatedUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": err.Error(),
		})
	}

	var request models.OrderRequest
	if err := c.BodyParser(&request); err != nil {
		log.Printf("Error parsing order request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(request); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errorMessages,
		})
	}

	response, err := h.service.PlaceOrder(request, userID)
	if err != nil {
		log.Printf("Error placing order for user %d: %v", userID, err)
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(response)
}

// HandleGetUserOrders retrieves the authenticated user's orders.
func (h *OrderHandler) HandleGetUserOrders(c *fiber.Ctx) error {
	userID, err := authenticatedUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": err.Error(),
		})
	}

	orders, err := h.service.GetOrdersByUserID(userID)
	if err != nil {
		log.Printf("Error getting orders for user %d: %v", userID, err)
		return serviceError(c, err)
	}
	return c.JSON(orders)
}

// HandleGetUserOrderDetails retrieves the authenticated user's orders with
// full item details.
func (h *OrderHandler) HandleGetUserOrderDetails(c *fiber.Ctx) error {
	userID, err := authenticatedUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": err.Error(),
		})
	}

	responses, err := h.service.GetUserOrderDetails(userID)
	if err != nil {
		log.Printf("Error getting order details for user %d: %v", userID, err)
		return serviceError(c, err)
	}
	return c.JSON(responses)
}

// HandleGetOrders retrieves all orders.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	orders, err := h.service.GetAllOrders()
	if err != nil {
		log.Printf("Error getting all orders: %v", err)
		return serviceError(c, err)
	}
	return c.JSON(orders)
}

// HandleGetOrderByID retrieves a single order by its ID.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	orderID, err := orderIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	order, err := h.service.GetOrderByID(orderID)
	if err != nil {
		log.Printf("Error getting order by ID %d: %v", orderID, err)
		return serviceError(c, err)
	}
	return c.JSON(order)
}

// HandleDeleteOrder removes an order (administrative).
func (h *OrderHandler) HandleDeleteOrder(c *fiber.Ctx) error {
	orderID, err := orderIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	if err := h.service.DeleteOrder(orderID); err != nil {
		log.Printf("Error deleting order %d: %v", orderID, err)
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Order %d deleted successfully", orderID),
	})
}

// HandleUpdateOrderStatus updates the status of an existing order.
func (h *OrderHandler) HandleUpdateOrderStatus(c *fiber.Ctx) error {
	orderID, err := orderIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	var updateData struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&updateData); err != nil {
		log.Printf("Error parsing request body for status update: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body for status update",
			"error":   err.Error(),
		})
	}
	if updateData.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Status is required for order status update.",
		})
	}

	order, err := h.service.UpdateOrderStatus(orderID, updateData.Status)
	if err != nil {
		log.Printf("Error updating order status for order %d: %v", orderID, err)
		return serviceError(c, err)
	}
	return c.JSON(order)
}

// HandleUpdateOrderTracking updates the tracking number and carrier.
func (h *OrderHandler) HandleUpdateOrderTracking(c *fiber.Ctx) error {
	orderID, err := orderIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	var updateData struct {
		TrackingNumber string `json:"tracking_number"`
		Carrier        string `json:"carrier"`
	}
	if err := c.BodyParser(&updateData); err != nil {
		log.Printf("Error parsing request body for tracking update: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body for tracking update",
			"error":   err.Error(),
		})
	}

	order, err := h.service.UpdateOrderTracking(orderID, updateData.TrackingNumber, updateData.Carrier)
	if err != nil {
		log.Printf("Error updating tracking for order %d: %v", orderID, err)
		return serviceError(c, err)
	}
	return c.JSON(order)
}

// HandleUpdatePaymentStatus updates the payment status field.
func (h *OrderHandler) HandleUpdatePaymentStatus(c *fiber.Ctx) error {
	orderID, err := orderIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	var updateData struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&updateData); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body for payment status update",
			"error":   err.Error(),
		})
	}
	if updateData.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Status is required for payment status update.",
		})
	}

	order, err := h.service.UpdatePaymentStatus(orderID, updateData.Status)
	if err != nil {
		log.Printf("Error updating payment status for order %d: %v", orderID, err)
		return serviceError(c, err)
	}
	return c.JSON(order)
}

// HandleMarkOrderAsDelivered marks an order as delivered.
func (h *OrderHandler) HandleMarkOrderAsDelivered(c *fiber.Ctx) error {
	orderID, err := orderIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	order, err := h.service.MarkOrderAsDelivered(orderID)
	if err != nil {
		log.Printf("Error marking order %d as delivered: %v", orderID, err)
		return serviceError(c, err)
	}
	return c.JSON(order)
}

// HandleGetOrderCount returns the total number of orders.
func (h *OrderHandler) HandleGetOrderCount(c *fiber.Ctx) error {
	count, err := h.service.GetOrderCount()
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"count": count})
}

// HandleGetTotalRevenue returns the revenue over completed orders.
func (h *OrderHandler) HandleGetTotalRevenue(c *fiber.Ctx) error {
	revenue, err := h.service.GetTotalRevenue()
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"revenue": revenue})
}

// HandleGetPendingOrderCount returns the number of pending orders.
func (h *OrderHandler) HandleGetPendingOrderCount(c *fiber.Ctx) error {
	count, err := h.service.GetPendingOrderCount()
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"count": count})
}

// HandleGetCompletedOrderCount returns the number of completed orders.
func (h *OrderHandler) HandleGetCompletedOrderCount(c *fiber.Ctx) error {
	count, err := h.service.GetCompletedOrderCount()
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"count": count})
}
