// Package http wires the HTTP interface layer: routing, middleware and
// request handlers for the escrow backend API.
package http

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/escrowdesk/backend/internal/infrastructure/auth"
	"github.com/escrowdesk/backend/internal/infrastructure/logger"
	"github.com/escrowdesk/backend/internal/interfaces/http/handler"
	"github.com/escrowdesk/backend/internal/interfaces/http/middleware"
)

// RouterConfig carries the handlers and services the router depends on
type RouterConfig struct {
	Logger      *zap.Logger
	JWTService  *auth.JWTService
	MaxBodySize int64
	RateLimiter *middleware.RateLimiter

	HealthHandler     *handler.HealthHandler
	UserHandler       *handler.UserHandler
	AccountHandler    *handler.AccountHandler
	OrderHandler      *handler.OrderHandler
	PaymentHandler    *handler.PaymentHandler
	WithdrawalHandler *handler.WithdrawalHandler
}

// NewRouter builds the gin engine with all routes registered
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(logger.GinMiddleware(cfg.Logger))
	router.Use(middleware.CORS())
	router.Use(middleware.BodyLimit(cfg.MaxBodySize))
	if cfg.RateLimiter != nil {
		router.Use(middleware.RateLimit(cfg.RateLimiter))
	}
	router.Use(middleware.ServiceAuth(middleware.ServiceAuthConfig{
		JWTService: cfg.JWTService,
		SkipPaths:  []string{"/health", "/ready"},
	}))

	router.GET("/health", cfg.HealthHandler.Health)
	router.GET("/ready", cfg.HealthHandler.Ready)

	v1 := router.Group("/api/v1")
	{
		users := v1.Group("/users")
		{
			users.POST("", cfg.UserHandler.Register)
			users.GET("/:id", cfg.UserHandler.Get)
			users.PUT("/:id/bank-details", cfg.UserHandler.SetBankDetails)
		}

		accounts := v1.Group("/accounts")
		{
			accounts.POST("", cfg.AccountHandler.Create)
			accounts.GET("", cfg.AccountHandler.List)
			accounts.GET("/:id", cfg.AccountHandler.Get)
			accounts.DELETE("/:id", cfg.AccountHandler.Delete)
			accounts.POST("/:id/reserve", cfg.AccountHandler.Reserve)
		}

		orders := v1.Group("/orders")
		{
			orders.POST("", cfg.OrderHandler.Create)
			orders.GET("/:id", cfg.OrderHandler.Get)
			orders.POST("/:id/complete", cfg.OrderHandler.Complete)
			orders.POST("/:id/cancel", cfg.OrderHandler.Cancel)
			orders.POST("/:id/fail", cfg.OrderHandler.Fail)
		}

		payments := v1.Group("/payments")
		{
			payments.POST("/verify", cfg.PaymentHandler.Verify)
		}

		withdrawals := v1.Group("/withdrawals")
		{
			withdrawals.POST("", cfg.WithdrawalHandler.Request)
			withdrawals.GET("/:id", cfg.WithdrawalHandler.Get)
			withdrawals.POST("/:id/mark-paid", cfg.WithdrawalHandler.MarkPaid)
			withdrawals.POST("/:id/reject", cfg.WithdrawalHandler.Reject)
		}
	}

	return router
}
