package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"vendorhub/internal/config"
	"vendorhub/internal/database"
	"vendorhub/internal/repositories"
	"vendorhub/internal/server"
	"vendorhub/internal/services"
	"vendorhub/pkg/logger"
	"vendorhub/pkg/rabbitmq"
	"vendorhub/pkg/storage"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.App.LogMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	app, cleanup, err := newApp(context.Background(), cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize application", "error", err)
	}
	defer cleanup()

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info("Starting server", "port", cfg.App.Port, "env", cfg.App.Env)
		if err := app.Listen(cfg.App.Port); err != nil {
			log.Fatal("Server failed to start", "error", err)
		}
	}()

	<-quit
	log.Info("Shutting down server")
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		log.Error("Error during Fiber shutdown", "error", err)
	}
	log.Info("Server gracefully stopped")
}

// newApp connects every backing service and builds the HTTP app. The returned cleanup
// closes what was opened.
func newApp(ctx context.Context, cfg *config.Config, log *logger.Logger) (*fiber.App, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, cleanup, err
	}

	// --- Database ---
	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, cleanup, err
	}
	closers = append(closers, func() {
		if err := database.Close(db); err != nil {
			log.Error("Error closing database", "error", err)
		}
	})
	if err := database.Migrate(db); err != nil {
		return nil, cleanup, err
	}

	// --- Object storage ---
	store, err := openStore(ctx, cfg.Storage)
	if err != nil {
		return nil, cleanup, err
	}
	closers = append(closers, func() {
		if err := store.Close(); err != nil {
			log.Error("Error closing object store", "error", err)
		}
	})

	// --- Event publisher (optional) ---
	var publisher services.EventPublisher
	if cfg.RabbitMQ.URL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQ.URL, Exchange: cfg.RabbitMQ.Exchange}, log)
		if err != nil {
			log.Warn("RabbitMQ unavailable, domain events disabled", "error", err)
		} else {
			publisher = mqClient
			closers = append(closers, func() {
				if err := mqClient.Close(); err != nil {
					log.Error("Error closing RabbitMQ client", "error", err)
				}
			})
		}
	} else {
		log.Info("RABBITMQ_URL not set, domain events disabled")
	}

	// --- Repositories ---
	identityRepo := repositories.NewGORMIdentityRepository(db)
	profileRepo := repositories.NewGORMProfileRepository(db)
	dealRepo := repositories.NewGORMDealRepository(db)
	commitmentRepo := repositories.NewGORMCommitmentRepository(db)
	invoiceRepo := repositories.NewGORMInvoiceRepository(db)
	labelRepo := repositories.NewGORMLabelRequestRepository(db)
	warehouseRepo := repositories.NewGORMWarehouseRepository(db)

	// --- Services ---
	authService := services.NewAuthService(identityRepo, services.AuthOptions{
		Secret:     cfg.Auth.JWTSecret,
		AccessTTL:  cfg.Auth.AccessTokenTTL,
		RefreshTTL: cfg.Auth.RefreshTokenTTL,
	})
	resolver := services.NewSessionResolver(authService, profileRepo, services.CookieNames{
		Access:  cfg.Auth.AccessCookieName,
		Refresh: cfg.Auth.RefreshCookieName,
	})
	profileService := services.NewProfileService(profileRepo, authService, log)

	if cfg.Bootstrap.AdminEmail != "" && cfg.Bootstrap.AdminPassword != "" {
		if _, err := profileService.EnsureAdmin(ctx, cfg.Bootstrap.AdminEmail, cfg.Bootstrap.AdminPassword, cfg.Bootstrap.AdminName); err != nil {
			return nil, cleanup, fmt.Errorf("failed to seed admin profile: %w", err)
		}
	}

	app := server.New(server.Deps{
		Log:         log,
		Provider:    authService,
		Resolver:    resolver,
		Discord:     services.NewDiscordLinker(cfg.Discord.ClientID, cfg.App.URL),
		Profiles:    profileService,
		Deals:       services.NewDealService(dealRepo),
		Commitments: services.NewCommitmentService(commitmentRepo, dealRepo, publisher, log),
		Invoices:    services.NewInvoiceService(invoiceRepo, commitmentRepo),
		Labels:      services.NewLabelService(labelRepo, commitmentRepo, warehouseRepo, publisher, log),
		Files: services.NewFileService(store, labelRepo, services.FileOptions{
			Buckets:        cfg.Storage.Buckets,
			LabelsBucket:   cfg.Storage.LabelsBucket,
			MaxUploadBytes: cfg.Storage.MaxUploadBytes,
		}),
		Warehouses:     services.NewWarehouseService(warehouseRepo),
		HealthCheck:    pingDatabase(db),
		SecureCookies:  cfg.Auth.CookieSecure,
		MaxUploadBytes: cfg.Storage.MaxUploadBytes,
		AccessLog:      cfg.App.Env != "test",
	})
	return app, cleanup, nil
}

func openStore(ctx context.Context, cfg config.StorageConfig) (storage.ObjectStore, error) {
	switch cfg.Driver {
	case "gcs":
		return storage.NewGCSStore(ctx, cfg.CredentialsFile)
	case "memory", "":
		return storage.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
	}
}

func pingDatabase(db *gorm.DB) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
}
