package main

import (
	"context"
	"fmt"
	"log"

	firebase "firebase.google.com/go/v4"
	firebaseauth "firebase.google.com/go/v4/auth"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gocloud.dev/blob"
	"google.golang.org/api/option"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"boutique/internal/config"
	"boutique/internal/handlers"
	"boutique/internal/middleware"
	"boutique/internal/repositories"
	"boutique/internal/services"
	"boutique/internal/storage"
	"boutique/pkg/rabbitmq"
)

// App bundles the Fiber app with the resources it owns so main can shut
// everything down in order.
type App struct {
	Fiber    *fiber.App
	MQClient *rabbitmq.Client

	bucket *blob.Bucket
}

// openStore picks the storage backend the configuration asks for. Exactly
// one backend is active per process.
func openStore(ctx context.Context, cfg *config.Config) (repositories.Store, error) {
	if cfg.UseFirestore {
		var opts []option.ClientOption
		if cfg.FirebaseServiceAccount != "" {
			opts = append(opts, option.WithCredentialsFile(cfg.FirebaseServiceAccount))
		}
		fbApp, err := firebase.NewApp(ctx, nil, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
		}
		client, err := fbApp.Firestore(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create Firestore client: %w", err)
		}
		return repositories.NewFirestoreStore(client), nil
	}

	var (
		db  *gorm.DB
		err error
	)
	if cfg.DatabaseURL != "" {
		db, err = gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	} else {
		db, err = gorm.Open(sqlite.Open("boutique.db"), &gorm.Config{})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := repositories.AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return repositories.NewGormStore(db), nil
}

// openFirebaseAuth builds the Firebase Auth client used to verify Google ID
// tokens. Returns nil when no service account is configured; Google sign-in
// is then disabled.
func openFirebaseAuth(ctx context.Context, cfg *config.Config) (*firebaseauth.Client, error) {
	if cfg.FirebaseServiceAccount == "" {
		return nil, nil
	}
	opt := option.WithCredentialsFile(cfg.FirebaseServiceAccount)
	fbApp, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}
	client, err := fbApp.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create Firebase Auth client: %w", err)
	}
	return client, nil
}

// NewApp wires configuration into storage, services, handlers and routes.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	store, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	fbAuth, err := openFirebaseAuth(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if fbAuth == nil {
		log.Println("Firebase service account not configured, Google sign-in disabled")
	}

	bucket, publicBase, err := storage.OpenBucket(ctx, cfg)
	if err != nil {
		return nil, err
	}

	// RabbitMQ is optional; without it order events are logged and dropped.
	var mqClient *rabbitmq.Client
	if cfg.RabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			return nil, err
		}
	} else {
		log.Println("RABBITMQ_URL not configured, order events disabled")
	}

	authService := services.NewAuthService(store, cfg.JWTSecret, cfg.AdminEmail, cfg.AdminPasswordHash, fbAuth)
	productService := services.NewProductService(store)
	categoryService := services.NewCategoryService(store)
	orderService := services.NewOrderService(store, mqClient)
	bannerService := services.NewBannerService(store)
	settingsService := services.NewSettingsService(store)
	reportService := services.NewReportService(store)
	uploadService := services.NewUploadService(bucket, publicBase)

	productHandler := handlers.NewProductHandler(productService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	orderHandler := handlers.NewOrderHandler(orderService)
	authHandler := handlers.NewAuthHandler(authService)
	adminHandler := handlers.NewAdminHandler(authService, reportService)
	bannerHandler := handlers.NewBannerHandler(bannerService)
	settingsHandler := handlers.NewSettingsHandler(settingsService)
	uploadHandler := handlers.NewUploadHandler(uploadService)

	app := fiber.New(fiber.Config{
		// Video uploads are the largest accepted bodies.
		BodyLimit: services.MaxVideoUploadBytes + 1<<20,
	})
	app.Use(logger.New())
	app.Use(cors.New())

	// Local media lives on disk and is served by the app itself; with a
	// cloud bucket the public URL points at the bucket instead.
	if cfg.StorageBucketURL == "" {
		app.Static("/uploads", cfg.UploadDir)
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy"})
	})

	api := app.Group("/api")

	userRequired := middleware.UserRequired(authService)
	userOptional := middleware.UserOptional(authService)
	adminRequired := middleware.AdminRequired(authService)

	productHandler.RegisterRoutes(api, adminRequired)
	categoryHandler.RegisterRoutes(api, adminRequired)
	bannerHandler.RegisterRoutes(api, adminRequired)
	settingsHandler.RegisterRoutes(api, adminRequired)
	authHandler.RegisterRoutes(api, userRequired)
	orderHandler.RegisterRoutes(api, userOptional, userRequired, adminRequired)
	uploadHandler.RegisterRoutes(api, adminRequired)
	adminHandler.RegisterRoutes(api)

	admin := api.Group("/admin", adminRequired)
	adminHandler.RegisterAdminRoutes(admin)

	return &App{
		Fiber:    app,
		MQClient: mqClient,
		bucket:   bucket,
	}, nil
}

// Close releases the resources the app owns.
func (a *App) Close() {
	if a.MQClient != nil {
		if err := a.MQClient.Close(); err != nil {
			log.Printf("Error closing RabbitMQ client: %v", err)
		}
	}
	if a.bucket != nil {
		if err := a.bucket.Close(); err != nil {
			log.Printf("Error closing storage bucket: %v", err)
		}
	}
}
