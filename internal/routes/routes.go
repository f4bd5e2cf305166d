package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/tokapos/tokapos-backend/internal/config"
	"github.com/tokapos/tokapos-backend/internal/handlers"
	"github.com/tokapos/tokapos-backend/internal/middleware"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	orgHandler *handlers.OrganizationHandler,
	productHandler *handlers.ProductHandler,
	saleHandler *handlers.SaleHandler,
	subscriptionHandler *handlers.SubscriptionHandler,
	webhookHandler *handlers.WebhookHandler,
	reportHandler *handlers.ReportHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	// Health (no auth required)
	api.Get("/health", healthHandler.Check)

	// Auth — public, with a stricter rate limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)

	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)

	// Webhooks — authenticated by payload signature, not JWT
	webhooks := api.Group("/webhooks")
	webhooks.Post("/midtrans", webhookHandler.Midtrans)

	// Subscription and payments (account-level, no organization scope)
	subscription := api.Group("/subscription", middleware.JWTProtected(cfg))
	subscription.Get("/", subscriptionHandler.Status)
	subscription.Post("/", subscriptionHandler.Action)
	subscription.Patch("/", subscriptionHandler.Reconcile)
	api.Get("/payments/status", middleware.JWTProtected(cfg), subscriptionHandler.PaymentStatus)

	// Organizations (JWT required; ownership enforced per organization)
	orgs := api.Group("/organizations", middleware.JWTProtected(cfg))
	orgs.Get("/", orgHandler.List)
	orgs.Post("/", orgHandler.Create)

	// Everything below is scoped to one organization owned by the caller.
	org := orgs.Group("/:organizationId", middleware.RequireOrganization(db))
	org.Get("/", orgHandler.Get)
	org.Put("/", middleware.OrgAdminRequired(cfg), orgHandler.Update)
	org.Delete("/", middleware.OrgAdminRequired(cfg), orgHandler.Delete)
	org.Post("/auth", orgHandler.Auth)
	org.Put("/password", middleware.OrgAdminRequired(cfg), orgHandler.ChangePassword)

	org.Get("/products", productHandler.List)
	org.Post("/products", productHandler.Create)
	org.Get("/products/:productId", productHandler.Get)
	org.Put("/products/:productId", productHandler.Update)
	org.Delete("/products/:productId", productHandler.Delete)
	org.Post("/products/:productId/stock", productHandler.AdjustStock)
	org.Get("/products/:productId/stock", productHandler.StockHistory)

	org.Get("/sales", saleHandler.List)
	org.Post("/sales", saleHandler.Create)
	org.Get("/sales/stats", reportHandler.SalesStats)
	org.Get("/sales/:saleId", saleHandler.Get)

	org.Get("/dashboard", reportHandler.Dashboard)
	org.Get("/inventory/summary", reportHandler.InventorySummary)
}
