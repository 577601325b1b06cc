// Package server assembles the fiber application from handlers and middleware.
package server

import (
	"context"
	"time"

	"vendorhub/internal/handlers"
	"vendorhub/internal/middleware"
	"vendorhub/internal/services"
	"vendorhub/pkg/logger"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// multipart framing on top of the largest accepted upload
const bodyLimitSlack = 1 << 20

// Deps are the services the HTTP layer is built from.
type Deps struct {
	Log         *logger.Logger
	Provider    services.IdentityProvider
	Resolver    *services.SessionResolver
	Discord     *services.DiscordLinker
	Profiles    *services.ProfileService
	Deals       *services.DealService
	Commitments *services.CommitmentService
	Invoices    *services.InvoiceService
	Labels      *services.LabelService
	Files       *services.FileService
	Warehouses  *services.WarehouseService

	// HealthCheck reports whether backing stores are reachable. Optional.
	HealthCheck    func(ctx context.Context) error
	SecureCookies  bool
	MaxUploadBytes int64
	AccessLog      bool
}

// New builds the fiber app with every route registered under /api.
func New(d Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "vendorhub",
		BodyLimit:             int(d.MaxUploadBytes) + bodyLimitSlack,
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	if d.AccessLog {
		app.Use(fiberlogger.New())
	}

	health := healthHandler(d.HealthCheck, d.Log)
	app.Get("/health", health)

	api := app.Group("/api")
	api.Get("/health", health)

	authHandler := handlers.NewAuthHandler(d.Provider, d.Resolver, d.Discord, d.Log, d.SecureCookies)
	authHandler.RegisterRoutes(api)

	// Everything below requires a resolved session.
	protected := api.Group("", middleware.SessionRequired(d.Resolver, d.Log, d.SecureCookies))
	authHandler.RegisterSessionRoutes(protected)
	handlers.NewProfileHandler(d.Profiles, d.Log).RegisterRoutes(protected)
	handlers.NewDealHandler(d.Deals, d.Log).RegisterRoutes(protected)
	handlers.NewCommitmentHandler(d.Commitments, d.Log).RegisterRoutes(protected)
	handlers.NewInvoiceHandler(d.Invoices, d.Log).RegisterRoutes(protected)
	handlers.NewLabelHandler(d.Labels, d.Files, d.Log).RegisterRoutes(protected)
	handlers.NewFileHandler(d.Files, d.Log).RegisterRoutes(protected)
	handlers.NewWarehouseHandler(d.Warehouses, d.Log).RegisterRoutes(protected)

	return app
}

func healthHandler(check func(ctx context.Context) error, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		status := fiber.StatusOK
		body := fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		}
		if check != nil {
			ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
			defer cancel()
			if err := check(ctx); err != nil {
				log.Warn("Health check failed", "error", err)
				status = fiber.StatusServiceUnavailable
				body["status"] = "unhealthy"
			}
		}
		return c.Status(status).JSON(body)
	}
}
