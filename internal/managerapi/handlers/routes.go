package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/thrillee/glowshop/internal/auth"
	"github.com/thrillee/glowshop/internal/database"
)

type Dependencies struct {
	Queries      database.Querier
	Orders       OrderService
	Guard        *auth.AdminGuard
	BaseCurrency string
}

// SetupRoutes configures the Gin engine with all back office routes. Every
// route requires the admin key.
func SetupRoutes(router gin.IRouter, deps Dependencies) {
	dashboardHandler := NewDashboardHandler(deps.Queries, deps.BaseCurrency)
	orderHandler := NewOrderHandler(deps.Orders)
	productHandler := NewProductHandler(deps.Queries)
	settingHandler := NewSettingHandler(deps.Queries)

	admin := router.Group("", deps.Guard.RequireAdmin())

	admin.GET("/dashboard", dashboardHandler.GetDashboard)

	orderGroup := admin.Group("/orders")
	{
		orderGroup.GET("", orderHandler.ListOrders)
		orderGroup.GET("/:id", orderHandler.GetOrder)
		orderGroup.PUT("/:id/status", orderHandler.UpdateOrderStatus)
	}

	productGroup := admin.Group("/products")
	{
		productGroup.POST("", productHandler.CreateProduct)
		productGroup.PUT("/:id", productHandler.UpdateProduct)
	}

	settingGroup := admin.Group("/settings")
	{
		settingGroup.GET("", settingHandler.ListSettings)
		settingGroup.GET("/:key", settingHandler.GetSetting)
		settingGroup.PUT("/:key", settingHandler.PutSetting)
		settingGroup.DELETE("/:key", settingHandler.DeleteSetting)
	}
}
