package routes

import (
	"time"

	"github.com/collinsdev/marketplace-api/internal/config"
	"github.com/collinsdev/marketplace-api/internal/presentation/http/handler"
	"github.com/collinsdev/marketplace-api/internal/presentation/http/middleware"
	"github.com/collinsdev/marketplace-api/pkg/utils"
	"github.com/gin-gonic/gin"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth        *handler.AuthHandler
	Order       *handler.OrderHandler
	Payment     *handler.PaymentHandler
	Procurement *handler.ProcurementHandler
	Product     *handler.ProductHandler
	Category    *handler.CategoryHandler
	Vendor      *handler.VendorHandler
	Location    *handler.LocationHandler
	Discount    *handler.DiscountHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager *utils.JWTManager
	Cfg        *config.Config
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/register", h.Auth.Register)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h)
	}

	return router
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers) {
	// Profile routes
	protected.GET("/profile", h.Auth.Profile)
	protected.PUT("/profile/password", h.Auth.ChangePassword)

	// Orders
	orders := protected.Group("/orders")
	{
		orders.GET("", h.Order.List)
		orders.POST("", h.Order.Create)
		orders.GET("/:id", h.Order.Get)
		orders.PUT("/:id", h.Order.Update)
		orders.POST("/:id/cancel", h.Order.Cancel)
		orders.DELETE("/:id", h.Order.Delete)

		orders.GET("/:id/payments", h.Payment.ListByOrder)

		orders.POST("/:id/details", h.Order.AddDetail)
		orders.PUT("/:id/details/:detailId", h.Order.UpdateDetail)
		orders.DELETE("/:id/details/:detailId", h.Order.DeleteDetail)
	}

	// Payments
	payments := protected.Group("/payments")
	{
		payments.GET("", h.Payment.List)
		payments.POST("", h.Payment.Create)
		payments.GET("/:id", h.Payment.Get)
		payments.PUT("/:id", h.Payment.Update)
		payments.DELETE("/:id", h.Payment.Delete)
	}

	// Procurements
	procurements := protected.Group("/procurements")
	{
		procurements.GET("", h.Procurement.List)
		procurements.POST("", h.Procurement.Create)
		procurements.GET("/:id", h.Procurement.Get)
		procurements.PUT("/:id", h.Procurement.Update)
		procurements.DELETE("/:id", h.Procurement.Delete)

		procurements.POST("/:id/details", h.Procurement.AddDetail)
		procurements.PUT("/:id/details/:detailId", h.Procurement.UpdateDetail)
		procurements.DELETE("/:id/details/:detailId", h.Procurement.DeleteDetail)
	}

	// Products
	products := protected.Group("/products")
	{
		products.GET("", h.Product.List)
		products.POST("", h.Product.Create)
		products.GET("/low-stock", h.Product.LowStock)
		products.GET("/:id", h.Product.Get)
		products.PUT("/:id", h.Product.Update)
		products.DELETE("/:id", h.Product.Delete)
		products.POST("/:id/stock", h.Product.AdjustStock)
	}

	// Categories
	categories := protected.Group("/categories")
	{
		categories.GET("", h.Category.List)
		categories.POST("", h.Category.Create)
		categories.GET("/:id", h.Category.Get)
		categories.PUT("/:id", h.Category.Update)
		categories.DELETE("/:id", h.Category.Delete)
	}

	// Vendors
	vendors := protected.Group("/vendors")
	{
		vendors.GET("", h.Vendor.List)
		vendors.POST("", h.Vendor.Create)
		vendors.GET("/:id", h.Vendor.Get)
		vendors.PUT("/:id", h.Vendor.Update)
		vendors.DELETE("/:id", h.Vendor.Delete)
	}

	// Locations
	locations := protected.Group("/locations")
	{
		locations.GET("", h.Location.List)
		locations.POST("", h.Location.Create)
		locations.GET("/:id", h.Location.Get)
		locations.PUT("/:id", h.Location.Update)
		locations.DELETE("/:id", h.Location.Delete)
	}

	// Discounts
	discounts := protected.Group("/discounts")
	{
		discounts.GET("", h.Discount.List)
		discounts.POST("", h.Discount.Create)
		discounts.GET("/:id", h.Discount.Get)
		discounts.PUT("/:id", h.Discount.Update)
		discounts.DELETE("/:id", h.Discount.Delete)
	}
}
