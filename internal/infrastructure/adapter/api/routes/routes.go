package routes

import (
	"net/http"

	"github.com/auctionhub/currency-service/internal/domain/entity"
	coreport "github.com/auctionhub/currency-service/internal/domain/port/core"
	"github.com/auctionhub/currency-service/internal/infrastructure/adapter/api/handler"
	"github.com/auctionhub/currency-service/internal/infrastructure/adapter/api/middleware"
	"github.com/auctionhub/currency-service/internal/infrastructure/adapter/ratelimit"
	"github.com/gin-gonic/gin"
)

// Handlers groups the HTTP handlers mounted by SetupRoutes
type Handlers struct {
	Currency *handler.CurrencyHandler
	Account  *handler.AccountHandler
	Admin    *handler.AdminHandler
	Health   *handler.HealthHandler
	// Metrics serves the Prometheus exposition; nil leaves /metrics unmounted
	Metrics http.Handler
}

// Security carries the authentication and throttling collaborators
type Security struct {
	Verifier    middleware.TokenVerifier
	Limiter     ratelimit.Limiter
	RateLimited middleware.RateLimitRecorder
}

// SetupRoutes configures all the routes for the API
func SetupRoutes(router *gin.Engine, h Handlers, sec Security, logger coreport.Logger) {
	router.NoRoute(middleware.NoRoute())

	router.GET("/health", h.Health.Health)
	if h.Metrics != nil {
		router.GET("/metrics", gin.WrapH(h.Metrics))
	}

	throttle := middleware.RateLimit(sec.Limiter, sec.RateLimited, logger)
	requireAuth := middleware.RequireAuth(sec.Verifier, logger)

	api := router.Group("/api")

	// POST /api/accounts/register is the only public route
	api.POST("/accounts/register", throttle, h.Account.Register)

	accounts := api.Group("/accounts", requireAuth)
	{
		accounts.GET("/me", h.Account.Me)
		accounts.PATCH("/me", h.Account.UpdateMe)
	}

	currency := api.Group("/currency", requireAuth)
	{
		currency.GET("", h.Currency.GetCurrency)
		currency.GET("/transactions", h.Currency.ListTransactions)
		currency.POST("/charge", throttle, h.Currency.Charge)
	}

	admin := api.Group("/admin", requireAuth, middleware.RequireRole(entity.RoleAdmin))
	{
		admin.GET("/currencies", h.Admin.ListCurrencies)
		admin.GET("/currencies/:userId", h.Admin.GetCurrency)
		admin.GET("/transactions", h.Admin.ListTransactions)
		admin.GET("/transactions/:id", h.Admin.GetTransaction)
		admin.GET("/users", h.Admin.ListUsers)
		admin.GET("/profiles", h.Admin.ListProfiles)
		admin.POST("/users/:userId/suspend", h.Admin.SuspendUser)
		admin.DELETE("/users/:userId/suspend", h.Admin.UnsuspendUser)
	}
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger, recorder middleware.HTTPRecorder, allowedOrigins []string) {
	// Apply middlewares in the correct order
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Logger(logger))
	if recorder != nil {
		router.Use(middleware.Metrics(recorder))
	}
	router.Use(middleware.CORS(allowedOrigins))
}
