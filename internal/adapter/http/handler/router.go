package handler

import (
	"currency-ledger/internal/adapter/http/middleware"
	redisStore "currency-ledger/internal/adapter/storage/redis"
	"currency-ledger/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	LedgerSvc      ports.LedgerService
	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Health check (verifies Redis when wired)
	healthHandler := NewHealthHandler(deps.HealthCheckers...)
	r.GET("/health", healthHandler.Check)

	// Rate limit rules
	rules := middleware.DefaultRateLimitRules()

	// Helper: return rate limiter middleware if store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	// API v1 routes
	v1 := r.Group("/api/v1")

	accountHandler := NewAccountHandler(deps.LedgerSvc)
	accounts := v1.Group("/accounts")
	{
		accounts.POST("", rl("accounts_create"), accountHandler.Create)
		accounts.DELETE("/:id", rl("accounts_destroy"), accountHandler.Destroy)

		accounts.POST("/:id/currencies", rl("mutations"), accountHandler.AuthorizeCurrency)
		accounts.POST("/:id/deposits", rl("mutations"), accountHandler.Deposit)
		accounts.POST("/:id/withdrawals", rl("mutations"), accountHandler.Withdraw)
		accounts.POST("/:id/currencies/:currency/close", rl("mutations"), accountHandler.CloseBalance)

		accounts.GET("/:id/currencies/:currency", rl("reads"), accountHandler.GetBalance)
		accounts.GET("/:id/summary", rl("reads"), accountHandler.GetSummary)
	}

	return r
}
