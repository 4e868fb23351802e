package handlers

import (
	"fmt"

	"storefront/internal/apperr"
	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// CreateOrderRequest is the checkout body of POST /api/orders.
type CreateOrderRequest struct {
	ProductID          uint             `json:"product_id" validate:"required"`
	ProductName        *string          `json:"product_name"`
	ProductPrice       *decimal.Decimal `json:"product_price" validate:"required"`
	ProductImageURL    *string          `json:"product_image_url"`
	ProductDescription *string          `json:"product_description"`
	UserName           *string          `json:"user_name" validate:"required"`
	PhoneNumber        *string          `json:"phone_number"`
	Address            *string          `json:"address" validate:"required"`
	PaymentMethod      *string          `json:"payment_method"`
}

// UpdateOrderRequest is the body of PUT /api/orders/:id.
type UpdateOrderRequest struct {
	UserName      *string `json:"user_name"`
	PhoneNumber   *string `json:"phone_number"`
	Address       *string `json:"address"`
	PaymentMethod *string `json:"payment_method"`
}

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

// RegisterRoutes registers the order routes.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/api/orders")
	orderRoutes.Get("/", h.HandleGetOrders)
	orderRoutes.Post("/", h.HandleCreateOrder)
	orderRoutes.Put("/:id", h.HandleUpdateOrder)
	orderRoutes.Delete("/:id", h.HandleDeleteOrder)
}

// Not-found goes under "message", everything else under "error".
func orderErrorKey(err error) string {
	if apperr.IsKind(err, apperr.KindNotFound) {
		return "message"
	}
	return "error"
}

func (h *OrderHandler) fail(c *fiber.Ctx, err error) error {
	return respondError(c, err, orderErrorKey(err))
}

// HandleGetOrders lists every order, newest first.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	orders, err := h.service.GetAllOrders(c.UserContext())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(orders)
}

// HandleCreateOrder records a checkout.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	var req CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return h.fail(c, apperr.Invalid(services.MsgOrderMissingDetails))
	}
	if err := h.validate.Struct(req); err != nil {
		return h.fail(c, apperr.Invalid(services.MsgOrderMissingDetails))
	}

	order := &models.Order{
		ProductID:          req.ProductID,
		UserName:           req.UserName,
		Phone:              req.PhoneNumber,
		ProductName:        req.ProductName,
		ProductURL:         req.ProductImageURL,
		ProductDescription: req.ProductDescription,
		Price:              *req.ProductPrice,
		Address:            req.Address,
		PaymentMethod:      req.PaymentMethod,
	}
	if err := h.service.CreateOrder(c.UserContext(), order); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Order Placed Successfully!",
		"orderId": order.ID,
	})
}

// HandleUpdateOrder changes the customer fields of an order.
func (h *OrderHandler) HandleUpdateOrder(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return h.fail(c, apperr.NotFound(services.MsgOrderNotFound))
	}

	var req UpdateOrderRequest
	if err := parseOptionalBody(c, &req); err != nil {
		return h.fail(c, apperr.Invalid("Invalid request body"))
	}

	contact := models.OrderContact{
		UserName:      req.UserName,
		Phone:         req.PhoneNumber,
		Address:       req.Address,
		PaymentMethod: req.PaymentMethod,
	}
	if err := h.service.UpdateOrder(c.UserContext(), id, contact); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"message": fmt.Sprintf("Order ID %d updated successfully.", id)})
}

// HandleDeleteOrder removes an order.
func (h *OrderHandler) HandleDeleteOrder(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return h.fail(c, apperr.NotFound(services.MsgOrderNotFound))
	}
	if err := h.service.DeleteOrder(c.UserContext(), id); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"message": fmt.Sprintf("Order ID %d deleted successfully.", id)})
}
