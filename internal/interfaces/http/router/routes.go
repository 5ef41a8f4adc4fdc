package router

import (
	"github.com/atelier/backend/internal/interfaces/http/handler"
	"github.com/gin-gonic/gin"
)

// Handlers are the API handlers wired by the server
type Handlers struct {
	System       *handler.SystemHandler
	Auth         *handler.AuthHandler
	Orders       *handler.OrderHandler
	Products     *handler.ProductHandler
	Fabrics      *handler.FabricHandler
	Seamstresses *handler.SeamstressHandler
	Dashboard    *handler.DashboardHandler
}

// Public paths, relative to the API base path, that need no bearer token
var publicPaths = []string{"/health", "/auth/login", "/auth/refresh"}

// PublicPaths returns the unauthenticated API routes under basePath
func PublicPaths(basePath string) []string {
	out := make([]string, len(publicPaths))
	for i, p := range publicPaths {
		out[i] = basePath + p
	}
	return out
}

// APIGroups builds the route groups of the workshop API. authLimit guards
// the credential endpoints and may be nil.
func APIGroups(h Handlers, authLimit gin.HandlerFunc) []RouteRegistrar {
	system := NewDomainGroup("system", "")
	system.GET("/health", h.System.Health)

	authRoutes := NewDomainGroup("auth", "/auth")
	if authLimit != nil {
		authRoutes.Use(authLimit)
	}
	authRoutes.POST("/login", h.Auth.Login)
	authRoutes.POST("/refresh", h.Auth.Refresh)
	authRoutes.POST("/logout", h.Auth.Logout)

	orders := NewDomainGroup("production", "/orders")
	orders.GET("", h.Orders.List)
	orders.POST("", h.Orders.Create)
	orders.GET("/export", h.Orders.Export)
	orders.POST("/export", h.Orders.Publish)
	orders.GET("/:id", h.Orders.GetByID)
	orders.PUT("/:id", h.Orders.Update)
	orders.DELETE("/:id", h.Orders.Delete)
	orders.POST("/:id/confirm-cut", h.Orders.ConfirmCut)
	orders.POST("/:id/distribute", h.Orders.Distribute)
	orders.POST("/:id/splits/:splitId/finish", h.Orders.FinishSplit)
	orders.POST("/:id/finish", h.Orders.Finish)

	products := NewDomainGroup("catalog", "/products")
	products.GET("", h.Products.List)
	products.POST("", h.Products.Create)
	products.GET("/:id", h.Products.GetByID)
	products.PUT("/:id", h.Products.Update)
	products.DELETE("/:id", h.Products.Delete)

	fabrics := NewDomainGroup("catalog", "/fabrics")
	fabrics.GET("", h.Fabrics.List)
	fabrics.POST("", h.Fabrics.Create)
	fabrics.GET("/:id", h.Fabrics.GetByID)
	fabrics.PUT("/:id", h.Fabrics.Update)
	fabrics.DELETE("/:id", h.Fabrics.Delete)
	fabrics.POST("/:id/stock", h.Fabrics.AdjustStock)

	seamstresses := NewDomainGroup("workforce", "/seamstresses")
	seamstresses.GET("", h.Seamstresses.List)
	seamstresses.POST("", h.Seamstresses.Create)
	seamstresses.GET("/:id", h.Seamstresses.GetByID)
	seamstresses.PUT("/:id", h.Seamstresses.Update)
	seamstresses.DELETE("/:id", h.Seamstresses.Delete)

	dashboard := NewDomainGroup("dashboard", "/dashboard")
	dashboard.GET("", h.Dashboard.Get)
	dashboard.GET("/insights", h.Dashboard.Insights)

	return []RouteRegistrar{system, authRoutes, orders, products, fabrics, seamstresses, dashboard}
}
