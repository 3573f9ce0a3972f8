package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	coreport "github.com/auctionhub/currency-service/internal/domain/port/core"
	msgport "github.com/auctionhub/currency-service/internal/domain/port/messaging"
	"github.com/auctionhub/currency-service/internal/domain/usecase/account"
	"github.com/auctionhub/currency-service/internal/domain/usecase/currency"
	"github.com/auctionhub/currency-service/internal/infrastructure/adapter/api/handler"
	"github.com/auctionhub/currency-service/internal/infrastructure/adapter/api/routes"
	"github.com/auctionhub/currency-service/internal/infrastructure/adapter/api/validation"
	"github.com/auctionhub/currency-service/internal/infrastructure/adapter/auth"
	"github.com/auctionhub/currency-service/internal/infrastructure/adapter/database"
	"github.com/auctionhub/currency-service/internal/infrastructure/adapter/database/migration"
	"github.com/auctionhub/currency-service/internal/infrastructure/adapter/logger"
	"github.com/auctionhub/currency-service/internal/infrastructure/adapter/messaging"
	"github.com/auctionhub/currency-service/internal/infrastructure/adapter/metrics"
	"github.com/auctionhub/currency-service/internal/infrastructure/adapter/ratelimit"
	"github.com/auctionhub/currency-service/internal/infrastructure/adapter/scheduler"
	"github.com/auctionhub/currency-service/internal/infrastructure/adapter/security"
	timeProvider "github.com/auctionhub/currency-service/internal/infrastructure/adapter/time"
	"github.com/auctionhub/currency-service/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Validate essential configuration
	if err := validateConfig(cfg); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	// Set Gin mode based on environment
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	appLogger := logger.NewZapLogger(cfg.IsProduction(), loggerConfig(cfg))
	defer func() { _ = appLogger.Flush() }()

	tp := timeProvider.NewRealTimeProvider()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	promMetrics := metrics.NewPrometheusMetrics(registry)

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancelStartup()

	// Connect to the database
	dbManager := database.NewManager(databaseConfig(cfg), appLogger, tp, promMetrics)
	if _, err := dbManager.Connect(startupCtx); err != nil {
		appLogger.Error("Failed to connect to database", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	defer func() { _ = dbManager.Close() }()

	// Run migrations
	if cfg.Database.AutoMigrate {
		if err := dbManager.Migrate(startupCtx); err != nil {
			appLogger.Error("Failed to run migrations", map[string]any{
				"error": err.Error(),
			})
			os.Exit(1)
		}
	}

	publisher := newEventPublisher(cfg, appLogger, tp)
	defer func() { _ = publisher.Close() }()

	// Initialize use cases
	uow := dbManager.CreateUnitOfWork()
	currencyService := currency.NewCurrencyService(uow, tp, appLogger.Named("currency"), promMetrics, publisher, currencyConfig(cfg))
	accountService := account.NewAccountService(uow, tp, appLogger.Named("account"),
		security.NewBcryptHasher(cfg.Auth.BcryptCost), cfg.Ledger.MaxPageSize)
	accountService.OnUserCreated(currencyService.ProvisionLedger)
	accountService.OnUserSaved(currencyService.TouchLedger)

	// Create the bootstrap administrator
	if err := migration.CreateDefaultAdmin(startupCtx, accountService, migration.AdminAccount{
		Username: cfg.Admin.Username,
		Email:    cfg.Admin.Email,
		Password: cfg.Admin.Password,
	}); err != nil {
		appLogger.Error("Failed to create default admin", map[string]any{
			"error": err.Error(),
		})
	}

	sweeper, err := scheduler.NewSuspensionSweeper(cfg.Scheduler.SuspensionSweep, accountService, promMetrics, appLogger)
	if err != nil {
		appLogger.Error("Failed to schedule suspension sweeper", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	sweeper.Start()

	jwtManager, err := auth.NewJWTManager(auth.Config{
		JWTSecret: cfg.Auth.JWTSecret,
		Issuer:    cfg.Auth.Issuer,
		TokenTTL:  cfg.Auth.TokenTTL,
	}, tp)
	if err != nil {
		appLogger.Error("Failed to initialize token verifier", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	limiter, closeLimiter := newRateLimiter(startupCtx, cfg, appLogger)
	defer closeLimiter()

	if err := validation.RegisterValidators(); err != nil {
		appLogger.Error("Failed to register request validators", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	// Initialize Gin router
	router := gin.New()
	routes.SetupMiddlewares(router, appLogger.Named("http"), promMetrics, cfg.Server.AllowedOrigins)
	routes.SetupRoutes(router, routes.Handlers{
		Currency: handler.NewCurrencyHandler(currencyService, appLogger),
		Account:  handler.NewAccountHandler(accountService, appLogger),
		Admin:    handler.NewAdminHandler(currencyService, accountService, appLogger),
		Health:   handler.NewHealthHandler(dbManager, appLogger),
		Metrics:  promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}),
	}, routes.Security{
		Verifier:    jwtManager,
		Limiter:     limiter,
		RateLimited: promMetrics,
	}, appLogger)

	// Create HTTP server with configurable timeout values
	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	// Start the server in a goroutine
	go func() {
		appLogger.Info("Starting server", map[string]any{
			"addr": server.Addr,
			"env":  cfg.Environment,
		})

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("Failed to start server", map[string]any{
				"error": err.Error(),
			})
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// Stop accepting requests before draining the mutation queues
	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{
			"error": err.Error(),
		})
	}

	sweeper.Stop(ctx)

	appLogger.Info("Shutting down mutation queues...", nil)
	currencyService.Shutdown()

	appLogger.Info("Server exited gracefully", nil)
}

// newEventPublisher connects to RabbitMQ when configured; otherwise events are only logged
func newEventPublisher(cfg *config.Config, appLogger coreport.Logger, tp coreport.TimeProvider) msgport.EventPublisher {
	if cfg.AMQP.URL == "" {
		appLogger.Info("AMQP url not configured, ledger events will not be published", nil)
		return messaging.NewNoopPublisher(appLogger)
	}

	publisher, err := messaging.NewAMQPPublisher(messaging.Config{
		URL:      cfg.AMQP.URL,
		Exchange: cfg.AMQP.Exchange,
	}, appLogger, tp)
	if err != nil {
		appLogger.Error("Failed to connect event publisher, continuing without events", map[string]any{
			"error": err.Error(),
		})
		return messaging.NewNoopPublisher(appLogger)
	}
	return publisher
}

// newRateLimiter prefers the shared Redis limiter and falls back to a per-process one
func newRateLimiter(ctx context.Context, cfg *config.Config, appLogger coreport.Logger) (ratelimit.Limiter, func()) {
	if !cfg.RateLimit.Enabled {
		return nil, func() {}
	}

	limits := ratelimit.Config{
		Enabled:  true,
		Requests: cfg.RateLimit.Requests,
		Window:   cfg.RateLimit.Window,
	}

	if cfg.Redis.Addr == "" {
		return ratelimit.NewMemoryLimiter(limits), func() {}
	}

	client, err := ratelimit.NewRedisClient(ctx, ratelimit.RedisConfig{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		appLogger.Warn("Redis unavailable, using in-memory rate limiter", map[string]any{
			"error": err.Error(),
		})
		return ratelimit.NewMemoryLimiter(limits), func() {}
	}

	return ratelimit.NewRedisLimiter(client, limits, appLogger), func() { _ = client.Close() }
}
