package handlers

import (
	"storefront/internal/apperr"
	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// ProductRequest is the body of POST and PUT /products.
type ProductRequest struct {
	Name        *string          `json:"Product_name" validate:"required"`
	Price       *decimal.Decimal `json:"Price" validate:"required"`
	Image       *string          `json:"Image"`
	Category    *string          `json:"Category"`
	Description *string          `json:"Description"`
}

func (r ProductRequest) toModel() *models.Product {
	return &models.Product{
		Name:        r.Name,
		Price:       r.Price,
		Image:       r.Image,
		Category:    r.Category,
		Description: r.Description,
	}
}

// ProductHandler handles HTTP requests for the product catalog.
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

// RegisterRoutes registers the product routes.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Put("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
}

// Server failures go under "error", everything else under "message".
func productErrorKey(err error) string {
	if apperr.IsKind(err, apperr.KindInvalid) || apperr.IsKind(err, apperr.KindNotFound) {
		return "message"
	}
	return "error"
}

func (h *ProductHandler) fail(c *fiber.Ctx, err error) error {
	return respondError(c, err, productErrorKey(err))
}

// HandleGetProducts lists every product.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts(c.UserContext())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(products)
}

// HandleCreateProduct adds a product and returns its new id.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var req ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return h.fail(c, apperr.Invalid(services.MsgProductRequired))
	}
	if err := h.validate.Struct(req); err != nil {
		return h.fail(c, apperr.Invalid(services.MsgProductRequired))
	}

	product := req.toModel()
	if err := h.service.CreateProduct(c.UserContext(), product); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Product Added Successfully!",
		"id":      product.ID,
	})
}

// HandleUpdateProduct overwrites all five fields; absent fields become null.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return h.fail(c, apperr.NotFound(services.MsgProductNotFound))
	}

	var req ProductRequest
	if err := parseOptionalBody(c, &req); err != nil {
		return h.fail(c, apperr.Invalid("Invalid request body"))
	}

	if err := h.service.UpdateProduct(c.UserContext(), id, req.toModel()); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product Updated Successfully!"})
}

// HandleDeleteProduct removes a product.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return h.fail(c, apperr.NotFound(services.MsgProductNotFound))
	}
	if err := h.service.DeleteProduct(c.UserContext(), id); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product Deleted Successfully!"})
}
