// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/biloop252/suuqsade-backend/internal/config"
	"github.com/biloop252/suuqsade-backend/internal/domain/cart"
	"github.com/biloop252/suuqsade-backend/internal/domain/checkout"
	"github.com/biloop252/suuqsade-backend/internal/domain/delivery"
	"github.com/biloop252/suuqsade-backend/internal/domain/discount"
	"github.com/biloop252/suuqsade-backend/internal/domain/order"
	"github.com/biloop252/suuqsade-backend/internal/domain/product"
	"github.com/biloop252/suuqsade-backend/internal/domain/user"
	"github.com/biloop252/suuqsade-backend/internal/domain/vendor"
	"github.com/biloop252/suuqsade-backend/internal/interfaces/http/handlers"
	"github.com/biloop252/suuqsade-backend/internal/interfaces/http/middleware"
	"github.com/biloop252/suuqsade-backend/internal/pkg/email"
	"github.com/biloop252/suuqsade-backend/internal/pkg/pdf"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SetupRoutes wires the service graph and registers all API routes
func SetupRoutes(api *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config, logger *logrus.Logger) {
	// Services
	userService := user.NewService(db, cfg)
	vendorService := vendor.NewService(db, cfg)
	productService := product.NewService(db, cfg)
	discountService := discount.NewService(db, cfg)
	cartService := cart.NewService(db, redisClient, cfg)
	deliveryService := delivery.NewService(db, cfg)
	checkoutService := checkout.NewService(redisClient, cfg, cartService, discountService, deliveryService, userService)
	emailService := email.NewService(cfg)
	orderService := order.NewService(db, cfg, logger, cartService, checkoutService, discountService, userService, emailService)
	pdfService := pdf.NewService(cfg)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService, cartService)
	productHandler := handlers.NewProductHandler(productService, discountService)
	vendorHandler := handlers.NewVendorHandler(vendorService)
	cartHandler := handlers.NewCartHandler(cartService)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService)
	orderHandler := handlers.NewOrderHandler(orderService)
	discountHandler := handlers.NewDiscountHandler(discountService)
	deliveryHandler := handlers.NewDeliveryHandler(deliveryService)
	invoiceHandler := handlers.NewInvoiceHandler(orderService, pdfService)

	// Public routes
	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.RefreshToken)
	}

	products := api.Group("/products")
	{
		products.GET("", productHandler.GetProducts)
		products.GET("/:id", productHandler.GetProduct)
		products.GET("/slug/:slug", productHandler.GetProductBySlug)
	}

	vendors := api.Group("/vendors")
	{
		vendors.GET("", vendorHandler.GetVendors)
		vendors.GET("/:id", vendorHandler.GetVendor)
	}

	api.GET("/delivery/check", deliveryHandler.CheckDeliverability)
	api.GET("/delivery/zones", deliveryHandler.GetZones)
	api.GET("/discounts/automatic", discountHandler.GetAutomaticDiscount)

	// Cart works for guests (X-Session-ID) and authenticated users
	cartRoutes := api.Group("/cart")
	cartRoutes.Use(middleware.OptionalAuthMiddleware(cfg))
	{
		cartRoutes.GET("", cartHandler.GetCart)
		cartRoutes.POST("/items", cartHandler.AddToCart)
		cartRoutes.PUT("/items/:id", cartHandler.UpdateCartItem)
		cartRoutes.DELETE("/items/:id", cartHandler.RemoveFromCart)
		cartRoutes.DELETE("", cartHandler.ClearCart)
	}

	// Authenticated routes
	authenticated := api.Group("")
	authenticated.Use(middleware.AuthMiddleware(cfg))
	{
		authenticated.GET("/auth/me", authHandler.GetProfile)
		authenticated.POST("/auth/addresses", authHandler.CreateAddress)
		authenticated.GET("/auth/addresses", authHandler.GetAddresses)
		authenticated.DELETE("/auth/addresses/:id", authHandler.DeleteAddress)

		checkoutRoutes := authenticated.Group("/checkout")
		{
			checkoutRoutes.POST("", checkoutHandler.StartCheckout)
			checkoutRoutes.GET("", checkoutHandler.GetCheckout)
			checkoutRoutes.PUT("/address", checkoutHandler.SelectAddress)
			checkoutRoutes.PUT("/payment-method", checkoutHandler.SelectPaymentMethod)
			checkoutRoutes.POST("/coupon", checkoutHandler.ApplyCoupon)
			checkoutRoutes.DELETE("/coupon", checkoutHandler.RemoveCoupon)
			checkoutRoutes.POST("/advance", checkoutHandler.Advance)
			checkoutRoutes.POST("/back", checkoutHandler.Back)
			checkoutRoutes.GET("/quote", checkoutHandler.GetQuote)
		}

		orderRoutes := authenticated.Group("/orders")
		{
			orderRoutes.POST("", orderHandler.PlaceOrder)
			orderRoutes.GET("", orderHandler.GetOrders)
			orderRoutes.GET("/:id", orderHandler.GetOrder)
			orderRoutes.POST("/:id/cancel", orderHandler.CancelOrder)
			orderRoutes.GET("/:id/invoice", invoiceHandler.DownloadInvoice)
		}
	}

	// Admin routes
	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.AdminMiddleware())
	{
		admin.POST("/vendors", vendorHandler.CreateVendor)
		admin.PUT("/vendors/:id/status", vendorHandler.SetVendorStatus)

		admin.POST("/discounts", discountHandler.CreateDiscount)
		admin.GET("/discounts", discountHandler.GetDiscounts)
		admin.GET("/discounts/:id", discountHandler.GetDiscount)
		admin.DELETE("/discounts/:id", discountHandler.DeactivateDiscount)

		admin.POST("/delivery/zones", deliveryHandler.CreateZone)
		admin.POST("/delivery/rates", deliveryHandler.CreateRate)
		admin.GET("/delivery/rates", deliveryHandler.GetRates)
		admin.POST("/delivery/pickup-locations", deliveryHandler.CreatePickupLocation)
		admin.GET("/delivery/pickup-locations", deliveryHandler.GetPickupLocations)

		admin.PUT("/orders/:id/status", orderHandler.UpdateOrderStatus)
	}
}
