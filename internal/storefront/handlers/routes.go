package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/thrillee/glowshop/internal/auth"
	"github.com/thrillee/glowshop/internal/database"
	"github.com/thrillee/glowshop/internal/pricing"
	"github.com/thrillee/glowshop/internal/ratelimit"
	"github.com/thrillee/glowshop/internal/session"
)

// Dependencies are the collaborators the storefront routes need.
type Dependencies struct {
	Queries  database.Querier
	Resolver CountryResolver
	Sessions *session.Manager
	Calc     *pricing.Calculator
	Checkout Checkout
	Orders   OrderService
	Webhook  WebhookConfig
	// DetectLimiter guards the endpoints that call geolocation providers.
	DetectLimiter *ratelimit.Limiter
}

// SetupRoutes configures the Gin engine with all storefront routes.
func SetupRoutes(router gin.IRouter, deps Dependencies) {
	geoHandler := NewGeoHandler(deps.Resolver)
	pricingHandler := NewPricingHandler(deps.Calc)
	sessionHandler := NewSessionHandler(deps.Sessions, deps.Calc.Table())
	catalogHandler := NewCatalogHandler(deps.Queries, deps.Sessions, deps.Calc.BaseCurrency())
	cartHandler := NewCartHandler(deps.Queries, deps.Checkout, deps.Calc.BaseCurrency())
	checkoutHandler := NewCheckoutHandler(deps.Checkout)
	orderHandler := NewOrderHandler(deps.Orders)
	webhookHandler := NewWebhookHandler(deps.Orders, deps.Webhook)

	detectLimit := ratelimit.Middleware(deps.DetectLimiter, nil)

	router.GET("/geo/detect", detectLimit, geoHandler.DetectCountry)

	pricingGroup := router.Group("/pricing")
	{
		pricingGroup.GET("/countries", pricingHandler.ListCountries)
		pricingGroup.GET("/quote", pricingHandler.QuotePrice)
	}

	sessionGroup := router.Group("/sessions")
	{
		sessionGroup.POST("", detectLimit, sessionHandler.CreateSession)
		sessionGroup.GET("/:id", sessionHandler.GetSession)
		sessionGroup.PUT("/:id/regional-pricing", sessionHandler.SetRegionalPricing)
		sessionGroup.PUT("/:id/country", sessionHandler.SelectCountry)
		sessionGroup.DELETE("/:id", sessionHandler.DeleteSession)
	}

	productGroup := router.Group("/products")
	{
		productGroup.GET("", catalogHandler.ListProducts)
		productGroup.GET("/:slug", catalogHandler.GetProduct)
	}

	router.POST("/webhooks/payments", webhookHandler.HandlePaymentEvent)

	// Everything below acts on behalf of a signed-in customer.
	userGroup := router.Group("", auth.RequireUser())
	{
		userGroup.GET("/cart", cartHandler.GetCart)
		userGroup.POST("/cart/items", cartHandler.AddCartItem)
		userGroup.PUT("/cart/items/:product_id", cartHandler.UpdateCartItem)
		userGroup.DELETE("/cart/items/:product_id", cartHandler.RemoveCartItem)

		userGroup.GET("/wishlist", cartHandler.ListWishlist)
		userGroup.POST("/wishlist/:product_id", cartHandler.AddWishlistItem)
		userGroup.DELETE("/wishlist/:product_id", cartHandler.RemoveWishlistItem)

		userGroup.POST("/checkout", checkoutHandler.CreateCheckout)

		userGroup.GET("/orders", orderHandler.ListOrders)
		userGroup.GET("/orders/:id", orderHandler.GetOrder)
	}
}
