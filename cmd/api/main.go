package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/BobadilloLeftLane/medweg-api/internal/cache"
	"github.com/BobadilloLeftLane/medweg-api/internal/config"
	"github.com/BobadilloLeftLane/medweg-api/internal/database"
	"github.com/BobadilloLeftLane/medweg-api/internal/handler"
	"github.com/BobadilloLeftLane/medweg-api/internal/middleware"
	"github.com/BobadilloLeftLane/medweg-api/internal/repository"
	"github.com/BobadilloLeftLane/medweg-api/internal/service"
	"github.com/BobadilloLeftLane/medweg-api/internal/utils"
	"github.com/BobadilloLeftLane/medweg-api/internal/worker"
)

// main is the application entrypoint for the medweg API.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Msg("starting medweg api")

	// 3. Connect database
	db, err := database.Connect(&cfg.DB)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		fmt.Fprintf(os.Stderr, "database connection failed: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	// 3a. Run migrations
	if err := runMigrations(db.DB); err != nil {
		log.Error().Err(err).Msg("migration failed")
		fmt.Fprintf(os.Stderr, "migration failed: %v\n", err)
		os.Exit(1)
	}
	log.Info().Msg("migrations completed successfully")

	// 3b. Connect to Redis
	redisClient, err := cache.NewRedisClient(&cfg.Redis)
	if err != nil {
		log.Error().Err(err).Msg("redis connection failed")
		fmt.Fprintf(os.Stderr, "redis connection failed: %v\n", err)
		os.Exit(1)
	}
	defer redisClient.Close()
	log.Info().Msg("redis connected successfully")

	// 3c. Initialize caches
	verificationCache := cache.NewVerificationCache(redisClient, cfg.Auth.VerificationCodeTTL)
	tokenCache := cache.NewTokenCache(redisClient, cfg.Auth.RefreshTokenTTL)
	stockAlertCache := cache.NewStockAlertCache(redisClient)

	// 4. Initialize repositories
	institutionRepo := repository.NewInstitutionRepository(db)
	patientRepo := repository.NewPatientRepository(db)
	workerRepo := repository.NewWorkerRepository(db)
	adminRepo := repository.NewAdminUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	settingsRepo := repository.NewCostSettingsRepository(db)

	// 5. Initialize services
	mailer := service.NewLogMailer()
	authSvc := service.NewAuthService(institutionRepo, workerRepo, verificationCache, tokenCache, mailer, cfg.Auth)
	adminAuthSvc := service.NewAdminAuthService(adminRepo, cfg.Auth.AccessTokenTTL)
	institutionSvc := service.NewInstitutionService(institutionRepo, workerRepo, patientRepo)
	patientSvc := service.NewPatientService(patientRepo)
	warehouseSvc := service.NewWarehouseService(productRepo, stockAlertCache)
	orderSvc := service.NewOrderService(orderRepo, productRepo, patientRepo)
	calculatorSvc := service.NewCalculatorService(orderRepo, productRepo, settingsRepo)
	invoiceSvc := service.NewInvoiceService(invoiceRepo, orderRepo, productRepo)
	settingsSvc := service.NewCostSettingsService(settingsRepo)

	// Seed the bootstrap admin account when configured.
	if cfg.AdminSeed.Email != "" {
		if err := adminAuthSvc.EnsureAdmin(cfg.AdminSeed.Email, cfg.AdminSeed.Password, cfg.AdminSeed.Name); err != nil {
			log.Fatal().Err(err).Msg("Failed to seed admin account")
		}
	}

	// 6. Initialize handlers
	loginLimiter := middleware.NewInvalidAuthRateLimiter()
	handlers := &Handlers{
		Health:       handler.NewHealthHandler(db, redisClient),
		Auth:         handler.NewAuthHandler(authSvc, adminAuthSvc, loginLimiter),
		Institution:  handler.NewInstitutionHandler(institutionSvc),
		Patient:      handler.NewPatientHandler(patientSvc),
		Warehouse:    handler.NewWarehouseHandler(warehouseSvc),
		Order:        handler.NewOrderHandler(orderSvc),
		Calculator:   handler.NewCalculatorHandler(calculatorSvc),
		CostSettings: handler.NewCostSettingsHandler(settingsSvc),
		Invoice:      handler.NewInvoiceHandler(invoiceSvc),
	}

	// 7. Setup router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.LoggingMiddleware())
	setupRoutes(router, handlers, middleware.NewJWTMiddleware())

	// 8. Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 9. Start workers
	go worker.NewStockCheckWorker(productRepo, stockAlertCache, cfg.Worker.StockCheckInterval).Start(ctx)

	// 10. Start HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 11. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// 12. Cancel context to stop workers
	cancel()

	// 13. Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

// Handlers groups all HTTP handlers used by the server.
type Handlers struct {
	Health       *handler.HealthHandler
	Auth         *handler.AuthHandler
	Institution  *handler.InstitutionHandler
	Patient      *handler.PatientHandler
	Warehouse    *handler.WarehouseHandler
	Order        *handler.OrderHandler
	Calculator   *handler.CalculatorHandler
	CostSettings *handler.CostSettingsHandler
	Invoice      *handler.InvoiceHandler
}

// setupRoutes registers all routes.
func setupRoutes(router *gin.Engine, handlers *Handlers, jwtMiddleware *middleware.JWTMiddleware) {
	router.GET("/v1/health", handlers.Health.GetHealth)

	// Institution and worker authentication
	auth := router.Group("/v1/auth")
	{
		auth.POST("/register", handlers.Auth.Register)
		auth.POST("/verify", handlers.Auth.Verify)
		auth.POST("/verify/resend", handlers.Auth.ResendVerification)
		auth.POST("/login", handlers.Auth.Login)
		auth.POST("/worker-login", handlers.Auth.WorkerLogin)
		auth.POST("/refresh", handlers.Auth.Refresh)
		auth.POST("/logout", handlers.Auth.Logout)
	}

	// Product catalog for ordering
	router.GET("/v1/products",
		jwtMiddleware.Handle(utils.RoleInstitution, utils.RoleWorker),
		handlers.Warehouse.Catalog)

	// Order placement and history
	orders := router.Group("/v1/orders")
	orders.Use(jwtMiddleware.Handle(utils.RoleInstitution, utils.RoleWorker))
	{
		orders.POST("", handlers.Order.Create)
		orders.GET("", handlers.Order.List)
		orders.GET("/:id", handlers.Order.Get)
	}

	// Patient roster (institution accounts only)
	patients := router.Group("/v1/patients")
	patients.Use(jwtMiddleware.Handle(utils.RoleInstitution))
	{
		patients.GET("", handlers.Patient.List)
		patients.POST("", handlers.Patient.Create)
		patients.GET("/:id", handlers.Patient.Get)
		patients.PUT("/:id", handlers.Patient.Update)
	}

	// Institution self-service: own profile and worker sub-accounts
	me := router.Group("/v1/institutions/me")
	me.Use(jwtMiddleware.Handle(utils.RoleInstitution))
	{
		me.GET("", handlers.Institution.Me)
		me.GET("/workers", handlers.Institution.ListWorkers)
		me.POST("/workers", handlers.Institution.CreateWorker)
		me.DELETE("/workers/:id", handlers.Institution.DeactivateWorker)
	}

	// Admin routes
	admin := router.Group("/v1/admin")
	admin.POST("/auth/login", handlers.Auth.AdminLogin)
	admin.Use(jwtMiddleware.Handle(utils.RoleAdmin))
	{
		// Customer management
		admin.GET("/institutions", handlers.Institution.List)
		admin.GET("/institutions/:id", handlers.Institution.Get)
		admin.PUT("/institutions/:id", handlers.Institution.Update)

		// Warehouse management
		admin.GET("/warehouse/stock", handlers.Warehouse.Stock)
		admin.GET("/products/low-stock", handlers.Warehouse.LowStock)
		admin.POST("/products", handlers.Warehouse.Create)
		admin.GET("/products/:id", handlers.Warehouse.Get)
		admin.PUT("/products/:id", handlers.Warehouse.Update)
		admin.PATCH("/products/:id/stock", handlers.Warehouse.AdjustStock)

		// Order management
		admin.GET("/orders/all", handlers.Order.ListAll)
		admin.GET("/orders/:id", handlers.Order.Get)
		admin.PATCH("/orders/:id/status", handlers.Order.UpdateStatus)
		admin.GET("/orders/:id/shipping-options", handlers.Order.ShippingOptions)
		admin.PATCH("/orders/:id/shipping", handlers.Order.SelectShipping)

		// Profit calculator and cost buckets
		admin.GET("/calculator", handlers.Calculator.Calculate)
		admin.GET("/cost-settings", handlers.CostSettings.Get)
		admin.PUT("/cost-settings", handlers.CostSettings.Update)

		// Invoicing
		admin.POST("/invoices", handlers.Invoice.Issue)
		admin.GET("/invoices", handlers.Invoice.ListByPeriod)
		admin.GET("/invoices/:id", handlers.Invoice.Get)
	}
}

// runMigrations runs database migrations using golang-migrate.
func runMigrations(db *sql.DB) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres", driver)
	if err != nil {
		return fmt.Errorf("could not create migration instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}
