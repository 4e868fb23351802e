package server

import (
	"context"
	"time"

	"storefront/internal/database"
	"storefront/internal/handlers"
	"storefront/internal/middleware"
	"storefront/internal/repositories"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

const healthTimeout = 2 * time.Second

// Deps are the collaborators of the HTTP app. ProductCache, Publisher and
// Registry are optional.
type Deps struct {
	DB           *gorm.DB
	ProductCache services.ProductCache
	Publisher    services.OrderEventPublisher
	// Registry enables request metrics and GET /metrics.
	Registry *prometheus.Registry
}

// New wires repositories, services and handlers into a fiber app.
func New(deps Deps) *fiber.App {
	productRepo := repositories.NewGORMProductRepository(deps.DB)
	accountRepo := repositories.NewGORMAccountRepository(deps.DB)
	orderRepo := repositories.NewGORMOrderRepository(deps.DB)

	productService := services.NewProductService(productRepo, deps.ProductCache)
	accountService := services.NewAccountService(accountRepo)
	orderService := services.NewOrderService(orderRepo, deps.Publisher)

	app := fiber.New(fiber.Config{
		AppName:               "storefront",
		JSONDecoder:           handlers.StrictJSONDecoder,
		DisableStartupMessage: true,
	})

	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(middleware.RequestLogger())
	app.Use(recover.New())
	if deps.Registry != nil {
		app.Use(middleware.NewMetrics(deps.Registry).Handler())
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{})))
	}
	// Any origin may call the API.
	app.Use(cors.New())

	app.Get("/health", healthHandler(deps.DB))

	handlers.NewProductHandler(productService).RegisterRoutes(app)
	handlers.NewAccountHandler(accountService).RegisterRoutes(app)
	handlers.NewOrderHandler(orderService).RegisterRoutes(app)

	return app
}

func healthHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), healthTimeout)
		defer cancel()

		if err := database.Ping(ctx, db); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "unhealthy",
				"time":   time.Now().Format(time.RFC3339),
			})
		}
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	}
}
