package router

import (
	"fmt"
	"strings"

	"github.com/minikart-next/minikart/internal/cache"
	"github.com/minikart-next/minikart/internal/config"
	adminhandlers "github.com/minikart-next/minikart/internal/http/handlers/admin"
	publichandlers "github.com/minikart-next/minikart/internal/http/handlers/public"
	"github.com/minikart-next/minikart/internal/logger"
	"github.com/minikart-next/minikart/internal/metrics"
	"github.com/minikart-next/minikart/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter wires the HTTP surface.
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)

	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "mk"
	}
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		Message:       "too many login attempts, try again later",
	}

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))
	if cfg.Metrics.Enabled {
		r.Use(MetricsMiddleware())
		r.GET("/metrics", gin.WrapH(metrics.Handler()))
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"success": true, "message": "ok"})
	})

	auth := JWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo)

	apiV1 := r.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", publicHandler.Register)
			authGroup.POST("/login", RateLimitMiddleware(cache.Client(), loginRule, KeyByIPAndJSONField("email")), publicHandler.Login)
			authGroup.POST("/forgot-password", publicHandler.ForgotPassword)
			authGroup.POST("/federated/callback", publicHandler.FederatedCallback)
			authGroup.GET("/me", auth, publicHandler.Me)
		}

		product := apiV1.Group("/product")
		{
			product.GET("", publicHandler.ListProducts)
			product.GET("/product-photo/:id", publicHandler.GetProductPhoto)
			product.GET("/braintree/token", publicHandler.BraintreeToken)
			product.POST("/braintree/payment", auth, publicHandler.BraintreePayment)
			product.GET("/:slug", publicHandler.GetProduct)
		}

		apiV1.GET("/category", publicHandler.ListCategories)

		cartGroup := apiV1.Group("/cart")
		{
			cartGroup.GET("", publicHandler.GetCart)
			cartGroup.PUT("", publicHandler.ReplaceCart)
			cartGroup.DELETE("/items/:id", publicHandler.RemoveCartItem)
			cartGroup.PATCH("/quantity", publicHandler.ChangeCartQuantity)
			cartGroup.GET("/loading", publicHandler.CheckoutLoading)
		}

		orders := apiV1.Group("/orders")
		orders.Use(auth)
		{
			orders.GET("", publicHandler.ListOrders)
			orders.GET("/:id", publicHandler.GetOrder)
		}

		adminGroup := apiV1.Group("/admin")
		adminGroup.Use(auth, AdminOnlyMiddleware())
		{
			adminGroup.GET("/dashboard", adminHandler.Dashboard)
			adminGroup.GET("/users", adminHandler.ListUsers)

			adminGroup.GET("/products", adminHandler.ListProducts)
			adminGroup.POST("/products", adminHandler.CreateProduct)
			adminGroup.PUT("/products/:id", adminHandler.UpdateProduct)
			adminGroup.DELETE("/products/:id", adminHandler.DeleteProduct)

			adminGroup.POST("/categories", adminHandler.CreateCategory)
			adminGroup.PUT("/categories/:id", adminHandler.UpdateCategory)
			adminGroup.DELETE("/categories/:id", adminHandler.DeleteCategory)

			adminGroup.GET("/orders", adminHandler.ListOrders)
			adminGroup.PUT("/orders/:id/status", adminHandler.UpdateOrderStatus)
		}
	}

	return r
}
